package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	pkgerrors "fasttrack/pkg/errors"
	"fasttrack/pkg/redis"
)

// ErrLockBusy 锁已被其他请求持有
var ErrLockBusy = errors.New("锁已被占用")

// Locker 按键互斥，Acquire 不阻塞，占用时返回 ErrLockBusy
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

const (
	lockTTL      = 5 * time.Second
	lockWait     = 2 * time.Second
	lockInterval = 25 * time.Millisecond
)

// withLock 在 lockWait 内重试获取锁，超时返回 ErrOptimisticLock
func withLock(ctx context.Context, l Locker, key string, fn func() error) error {
	deadline := time.Now().Add(lockWait)
	for {
		release, err := l.Acquire(ctx, key, lockTTL)
		if err == nil {
			defer release()
			return fn()
		}
		if !errors.Is(err, ErrLockBusy) {
			return err
		}
		if time.Now().After(deadline) {
			return pkgerrors.ErrOptimisticLock
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockInterval):
		}
	}
}

// ── Redis 分布式锁 ──

type redisLocker struct {
	rdb *redis.Client
}

// NewRedisLocker 多实例部署时使用
func NewRedisLocker(rdb *redis.Client) Locker {
	return &redisLocker{rdb: rdb}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	release, err := l.rdb.AcquireLock(ctx, key, ttl)
	if errors.Is(err, redis.ErrLockNotAcquired) {
		return nil, ErrLockBusy
	}
	if err != nil {
		return nil, fmt.Errorf("%w: 获取锁 %s: %w", pkgerrors.ErrStore, key, err)
	}
	return release, nil
}

// ── 进程内锁 ──

type localLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalLocker 单实例部署或未启用 Redis 时使用，忽略 ttl
func NewLocalLocker() Locker {
	return &localLocker{held: make(map[string]struct{})}
}

func (l *localLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return nil, ErrLockBusy
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
