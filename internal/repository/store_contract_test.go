package repository_test

import (
	"context"
	"testing"

	"fasttrack/internal/repository"
)

// runStoreContract 各 Store 实现共用的行为校验
func runStoreContract(t *testing.T, s repository.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get 不存在的键", func(t *testing.T) {
		_, found, err := s.Get(ctx, "missing:1")
		if err != nil {
			t.Fatalf("Get 不应报错: %v", err)
		}
		if found {
			t.Error("期望 found=false")
		}
	})

	t.Run("Set 后 Get", func(t *testing.T) {
		if err := s.Set(ctx, "doc:1", []byte(`{"name":"acme"}`)); err != nil {
			t.Fatalf("Set 失败: %v", err)
		}
		v, found, err := s.Get(ctx, "doc:1")
		if err != nil || !found {
			t.Fatalf("Get 失败: found=%v err=%v", found, err)
		}
		assertJSONField(t, v, "name", "acme")
	})

	t.Run("Set 覆盖已有值", func(t *testing.T) {
		_ = s.Set(ctx, "doc:2", []byte(`{"name":"old"}`))
		if err := s.Set(ctx, "doc:2", []byte(`{"name":"new"}`)); err != nil {
			t.Fatalf("覆盖写失败: %v", err)
		}
		v, _, _ := s.Get(ctx, "doc:2")
		assertJSONField(t, v, "name", "new")
	})

	t.Run("Delete", func(t *testing.T) {
		_ = s.Set(ctx, "doc:3", []byte(`{}`))
		if err := s.Delete(ctx, "doc:3"); err != nil {
			t.Fatalf("Delete 失败: %v", err)
		}
		if _, found, _ := s.Get(ctx, "doc:3"); found {
			t.Error("删除后不应存在")
		}
		if err := s.Delete(ctx, "doc:3"); err != nil {
			t.Errorf("重复删除不应报错: %v", err)
		}
	})

	t.Run("ListByPrefix 按键排序且精确匹配前缀", func(t *testing.T) {
		_ = s.Set(ctx, "pref:b:2", []byte(`{"n":2}`))
		_ = s.Set(ctx, "pref:b:1", []byte(`{"n":1}`))
		_ = s.Set(ctx, "pref:B:9", []byte(`{"n":9}`))
		_ = s.Set(ctx, "pref:bx:1", []byte(`{"n":3}`))
		_ = s.Set(ctx, "pref_b:1", []byte(`{"n":4}`))

		entries, err := s.ListByPrefix(ctx, "pref:b:")
		if err != nil {
			t.Fatalf("ListByPrefix 失败: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("期望 2 条，实际 %d: %v", len(entries), keysOf(entries))
		}
		if entries[0].Key != "pref:b:1" || entries[1].Key != "pref:b:2" {
			t.Errorf("期望按键排序，实际 %v", keysOf(entries))
		}
	})

	t.Run("ListByPrefix 转义通配符", func(t *testing.T) {
		_ = s.Set(ctx, "esc:a%:1", []byte(`{}`))
		_ = s.Set(ctx, "esc:ab:1", []byte(`{}`))

		entries, err := s.ListByPrefix(ctx, "esc:a%")
		if err != nil {
			t.Fatalf("ListByPrefix 失败: %v", err)
		}
		if len(entries) != 1 || entries[0].Key != "esc:a%:1" {
			t.Errorf("%% 应按字面匹配，实际 %v", keysOf(entries))
		}
	})

	t.Run("ListByPrefix 无结果", func(t *testing.T) {
		entries, err := s.ListByPrefix(ctx, "nothing:")
		if err != nil {
			t.Fatalf("ListByPrefix 失败: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("期望空结果，实际 %v", keysOf(entries))
		}
	})
}
