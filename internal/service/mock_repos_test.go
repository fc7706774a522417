package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"fasttrack/internal/model"
	"fasttrack/internal/repository"
	pkgerrors "fasttrack/pkg/errors"
)

// ── 故障 Store ──

// faultyStore 包装内存存储，对匹配前缀的写操作返回 ErrStore
type faultyStore struct {
	repository.Store
	mu         sync.Mutex
	failPrefix []string
	failDelete []string
	failReads  bool
}

func newFaultyStore() *faultyStore {
	return &faultyStore{Store: repository.NewMemoryStore()}
}

func (s *faultyStore) failOn(prefixes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPrefix = prefixes
}

func (s *faultyStore) failAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads = true
	s.failPrefix = []string{""}
}

// failDeleteOn 仅让匹配前缀的删除失败
func (s *faultyStore) failDeleteOn(prefixes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDelete = prefixes
}

func (s *faultyStore) heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads = false
	s.failPrefix = nil
	s.failDelete = nil
}

func (s *faultyStore) shouldFail(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return hasAnyPrefix(key, s.failPrefix)
}

func (s *faultyStore) deleteFails(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return hasAnyPrefix(key, s.failPrefix) || hasAnyPrefix(key, s.failDelete)
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func (s *faultyStore) readFails() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failReads
}

func (s *faultyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.readFails() {
		return nil, false, fmt.Errorf("%w: get %s: connection refused", pkgerrors.ErrStore, key)
	}
	return s.Store.Get(ctx, key)
}

func (s *faultyStore) ListByPrefix(ctx context.Context, prefix string) ([]repository.Entry, error) {
	if s.readFails() {
		return nil, fmt.Errorf("%w: list %s: connection refused", pkgerrors.ErrStore, prefix)
	}
	return s.Store.ListByPrefix(ctx, prefix)
}

func (s *faultyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.shouldFail(key) {
		return fmt.Errorf("%w: set %s: connection refused", pkgerrors.ErrStore, key)
	}
	return s.Store.Set(ctx, key, value)
}

func (s *faultyStore) Delete(ctx context.Context, key string) error {
	if s.deleteFails(key) {
		return fmt.Errorf("%w: delete %s: connection refused", pkgerrors.ErrStore, key)
	}
	return s.Store.Delete(ctx, key)
}

// snapshot 返回全部键值，用于比较写入前后状态
func (s *faultyStore) snapshot(t *testing.T) map[string]string {
	t.Helper()
	entries, err := s.Store.ListByPrefix(context.Background(), "")
	if err != nil {
		t.Fatalf("读取存储快照失败: %v", err)
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Key] = string(e.Value)
	}
	return out
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	mu   sync.Mutex
	jtis map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{jtis: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jtis[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.jtis[jti]
	return ok, nil
}

// ── 测试数据 ──

func newTestRepo() (*repository.Repository, *faultyStore) {
	store := newFaultyStore()
	return repository.NewRepository(store), store
}

func seedUser(t *testing.T, repo *repository.Repository, id, name, role string) *model.User {
	t.Helper()
	now := time.Now()
	u := &model.User{
		UserID:    id,
		Name:      name,
		Email:     id + "@test.com",
		Role:      role,
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
	}
	if err := repo.User.Create(context.Background(), u); err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return u
}

func seedStudentProfile(t *testing.T, repo *repository.Repository, userID, token string) *model.StudentProfile {
	t.Helper()
	now := time.Now()
	p := &model.StudentProfile{
		ID:          "profile-" + userID,
		UserID:      userID,
		University:  "开普敦大学",
		Degree:      "计算机科学",
		YearOfStudy: "大三",
		QRToken:     token,
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
	}
	p.Normalize()
	ctx := context.Background()
	if err := repo.StudentProfile.PutQRToken(ctx, token, userID); err != nil {
		t.Fatalf("写入二维码索引失败: %v", err)
	}
	if err := repo.StudentProfile.Save(ctx, p); err != nil {
		t.Fatalf("创建测试学生档案失败: %v", err)
	}
	return p
}

func seedCompany(t *testing.T, repo *repository.Repository, id, ownerID, name string) *model.Company {
	t.Helper()
	now := time.Now()
	c := &model.Company{
		ID:          id,
		UserID:      ownerID,
		Name:        name,
		Industry:    "Technology",
		Description: name + " 是一家测试企业",
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
	}
	c.Normalize()
	ctx := context.Background()
	if err := repo.Company.PutOwner(ctx, ownerID, id); err != nil {
		t.Fatalf("写入企业负责人索引失败: %v", err)
	}
	if err := repo.Company.Save(ctx, c); err != nil {
		t.Fatalf("创建测试企业失败: %v", err)
	}
	return c
}

func nopLogger() *zap.Logger { return zap.NewNop() }
