package repository

import (
	"context"
	"sort"
	"strings"

	"fasttrack/pkg/redis"
)

// redisStore 基于 Redis 字符串键的 Store 实现
// 所有键统一加 namespace 前缀，前缀扫描使用 SCAN MATCH + MGET
type redisStore struct {
	rdb       *redis.Client
	namespace string
}

// NewRedisStore 创建 Redis 键值存储
func NewRedisStore(rdb *redis.Client, namespace string) Store {
	ns := strings.TrimSuffix(namespace, ":")
	if ns != "" {
		ns += ":"
	}
	return &redisStore{rdb: rdb, namespace: ns}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, found, err := s.rdb.GetBytes(ctx, s.namespace+key)
	if err != nil {
		return nil, false, storeErr("get", key, err)
	}
	return v, found, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.SetBytes(ctx, s.namespace+key, value); err != nil {
		return storeErr("set", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.namespace+key); err != nil {
		return storeErr("delete", key, err)
	}
	return nil
}

func (s *redisStore) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	keys, err := s.rdb.ScanKeys(ctx, escapeGlob(s.namespace+prefix)+"*")
	if err != nil {
		return nil, storeErr("list", prefix, err)
	}

	// SCAN 可能返回重复键
	sort.Strings(keys)
	keys = dedupSorted(keys)

	vals, err := s.rdb.MGetBytes(ctx, keys)
	if err != nil {
		return nil, storeErr("list", prefix, err)
	}

	out := make([]Entry, 0, len(keys))
	for i, k := range keys {
		if vals[i] == nil {
			continue // SCAN 与 MGET 之间被删除
		}
		out = append(out, Entry{Key: strings.TrimPrefix(k, s.namespace), Value: vals[i]})
	}
	return out, nil
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string { return globEscaper.Replace(s) }

func dedupSorted(keys []string) []string {
	if len(keys) < 2 {
		return keys
	}
	out := keys[:1]
	for _, k := range keys[1:] {
		if k != out[len(out)-1] {
			out = append(out, k)
		}
	}
	return out
}
