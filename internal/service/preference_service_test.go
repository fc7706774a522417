package service

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"fasttrack/internal/dto"
	"fasttrack/internal/model"
	pkgerrors "fasttrack/pkg/errors"
)

func setupTestPreferenceService() (PreferenceService, *faultyStore) {
	repo, store := newTestRepo()
	return NewPreferenceService(repo, NewLocalLocker(), nopLogger()), store
}

func strPtr(s string) *string { return &s }

func prefIDs(list []dto.PreferenceResponse) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.CompanyID)
	}
	return out
}

// ── SetTier / GetTier ──

func TestPreferenceService_SetAndGetTier(t *testing.T) {
	svc, _ := setupTestPreferenceService()
	ctx := context.Background()

	resp, err := svc.SetTier(ctx, "stu-1", "c1", model.TierA, strPtr("首选"))
	if err != nil {
		t.Fatalf("SetTier 应成功: %v", err)
	}
	if resp.Tier == nil || *resp.Tier != "A" {
		t.Fatalf("期望 tier=A，实际=%v", resp.Tier)
	}

	got, err := svc.GetTier(ctx, "stu-1", "c1")
	if err != nil {
		t.Fatalf("GetTier 应成功: %v", err)
	}
	if got.Tier == nil || *got.Tier != "A" || got.Notes != "首选" {
		t.Errorf("期望 tier=A notes=首选，实际 tier=%v notes=%q", got.Tier, got.Notes)
	}
}

func TestPreferenceService_GetTier_Unclassified(t *testing.T) {
	svc, _ := setupTestPreferenceService()

	got, err := svc.GetTier(context.Background(), "stu-1", "unknown-company")
	if err != nil {
		t.Fatalf("未分级不应返回错误: %v", err)
	}
	if got.Tier != nil {
		t.Errorf("期望 tier=null，实际=%s", *got.Tier)
	}
}

func TestPreferenceService_SetTier_Idempotent(t *testing.T) {
	svc, store := setupTestPreferenceService()
	ctx := context.Background()

	if _, err := svc.SetTier(ctx, "stu-1", "c1", model.TierB, nil); err != nil {
		t.Fatalf("SetTier 应成功: %v", err)
	}
	before := store.snapshot(t)

	if _, err := svc.SetTier(ctx, "stu-1", "c1", model.TierB, nil); err != nil {
		t.Fatalf("重复 SetTier 应成功: %v", err)
	}
	if after := store.snapshot(t); !reflect.DeepEqual(before, after) {
		t.Error("相同分级重复设置不应改变存储")
	}
}

func TestPreferenceService_SetTier_NoneDeletes(t *testing.T) {
	svc, store := setupTestPreferenceService()
	ctx := context.Background()

	if _, err := svc.SetTier(ctx, "stu-1", "c1", model.TierA, nil); err != nil {
		t.Fatalf("SetTier 应成功: %v", err)
	}
	resp, err := svc.SetTier(ctx, "stu-1", "c1", model.TierNone, nil)
	if err != nil {
		t.Fatalf("取消分级应成功: %v", err)
	}
	if resp.Tier != nil {
		t.Errorf("取消分级后 tier 应为 null")
	}
	if n := len(store.snapshot(t)); n != 0 {
		t.Errorf("稀疏存储：取消分级后应无记录，实际=%d", n)
	}

	// 对未分级企业取消分级同样成功
	if _, err := svc.SetTier(ctx, "stu-1", "c2", model.TierNone, nil); err != nil {
		t.Errorf("对未分级企业取消分级应成功: %v", err)
	}
}

func TestPreferenceService_SetTier_InvalidInput(t *testing.T) {
	svc, _ := setupTestPreferenceService()
	ctx := context.Background()

	if _, err := svc.SetTier(ctx, "stu-1", "c1", model.Tier("D"), nil); !errors.Is(err, ErrInvalidTier) {
		t.Errorf("期望 ErrInvalidTier，实际: %v", err)
	}
	if _, err := svc.SetTier(ctx, "stu-1", "  ", model.TierA, nil); !errors.Is(err, ErrPreferenceNoCompany) {
		t.Errorf("期望 ErrPreferenceNoCompany，实际: %v", err)
	}
}

func TestPreferenceService_Reclassify_KeepsPosition(t *testing.T) {
	svc, _ := setupTestPreferenceService()
	ctx := context.Background()

	for _, id := range []string{"c1", "c2", "c3"} {
		if _, err := svc.SetTier(ctx, "stu-1", id, model.TierA, nil); err != nil {
			t.Fatalf("SetTier(%s) 应成功: %v", id, err)
		}
	}
	// c1 改为 B 再改回 A，位置保持不变
	if _, err := svc.SetTier(ctx, "stu-1", "c1", model.TierB, nil); err != nil {
		t.Fatalf("重新分级应成功: %v", err)
	}
	if _, err := svc.SetTier(ctx, "stu-1", "c1", model.TierA, nil); err != nil {
		t.Fatalf("重新分级应成功: %v", err)
	}

	list, err := svc.ListByTier(ctx, "stu-1", model.TierA)
	if err != nil {
		t.Fatalf("ListByTier 应成功: %v", err)
	}
	got := prefIDs(list)
	if want := []string{"c1", "c2", "c3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("期望保持首次分级顺序 %v，实际=%v", want, got)
	}
}

func TestPreferenceService_SetTier_NotesOnly(t *testing.T) {
	svc, _ := setupTestPreferenceService()
	ctx := context.Background()

	if _, err := svc.SetTier(ctx, "stu-1", "c1", model.TierC, strPtr("备选")); err != nil {
		t.Fatalf("SetTier 应成功: %v", err)
	}
	resp, err := svc.SetTier(ctx, "stu-1", "c1", model.TierC, strPtr("面试后再看"))
	if err != nil {
		t.Fatalf("更新备注应成功: %v", err)
	}
	if resp.Notes != "面试后再看" {
		t.Errorf("期望备注已更新，实际=%q", resp.Notes)
	}

	// notes 为 nil 时保留原备注
	resp, err = svc.SetTier(ctx, "stu-1", "c1", model.TierB, nil)
	if err != nil {
		t.Fatalf("SetTier 应成功: %v", err)
	}
	if resp.Notes != "面试后再看" {
		t.Errorf("notes 为 nil 时应保留原备注，实际=%q", resp.Notes)
	}
}

func TestPreferenceService_SetTier_StoreFailureLeavesStateUnchanged(t *testing.T) {
	svc, store := setupTestPreferenceService()
	ctx := context.Background()

	if _, err := svc.SetTier(ctx, "stu-1", "c1", model.TierA, nil); err != nil {
		t.Fatalf("SetTier 应成功: %v", err)
	}
	before := store.snapshot(t)

	store.failOn("company_preference:")
	if _, err := svc.SetTier(ctx, "stu-1", "c1", model.TierC, nil); !errors.Is(err, pkgerrors.ErrStore) {
		t.Fatalf("期望 ErrStore，实际: %v", err)
	}
	if _, err := svc.SetTier(ctx, "stu-1", "c2", model.TierB, nil); !errors.Is(err, pkgerrors.ErrStore) {
		t.Fatalf("期望 ErrStore，实际: %v", err)
	}
	if _, err := svc.SetTier(ctx, "stu-1", "c1", model.TierNone, nil); !errors.Is(err, pkgerrors.ErrStore) {
		t.Fatalf("期望 ErrStore，实际: %v", err)
	}
	store.heal()

	if after := store.snapshot(t); !reflect.DeepEqual(before, after) {
		t.Error("写入失败后存储状态应保持不变")
	}
	got, _ := svc.GetTier(ctx, "stu-1", "c1")
	if got.Tier == nil || *got.Tier != "A" {
		t.Errorf("写入失败后分级应仍为 A")
	}
}

// ── ListGrouped / Counts ──

func TestPreferenceService_ListGrouped_PartitionsAndCounts(t *testing.T) {
	svc, _ := setupTestPreferenceService()
	ctx := context.Background()

	assign := map[string]model.Tier{"c1": model.TierA, "c2": model.TierB, "c3": model.TierA, "c4": model.TierC, "c5": model.TierB}
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5"} {
		if _, err := svc.SetTier(ctx, "stu-1", id, assign[id], nil); err != nil {
			t.Fatalf("SetTier(%s) 应成功: %v", id, err)
		}
	}
	// 其他学生的分级互不可见
	if _, err := svc.SetTier(ctx, "stu-2", "c1", model.TierC, nil); err != nil {
		t.Fatalf("SetTier 应成功: %v", err)
	}

	groups, err := svc.ListGrouped(ctx, "stu-1")
	if err != nil {
		t.Fatalf("ListGrouped 应成功: %v", err)
	}
	if len(groups.A) != 2 || len(groups.B) != 2 || len(groups.C) != 1 {
		t.Errorf("期望 A=2 B=2 C=1，实际 A=%d B=%d C=%d", len(groups.A), len(groups.B), len(groups.C))
	}

	seen := make(map[string]int)
	for _, list := range [][]string{prefIDs(groups.A), prefIDs(groups.B), prefIDs(groups.C)} {
		for _, id := range list {
			seen[id]++
		}
	}
	for id := range assign {
		if seen[id] != 1 {
			t.Errorf("企业 %s 应恰好出现在一个分组中，实际=%d", id, seen[id])
		}
	}

	stats, err := svc.Counts(ctx, "stu-1")
	if err != nil {
		t.Fatalf("Counts 应成功: %v", err)
	}
	if stats.A != 2 || stats.B != 2 || stats.C != 1 || stats.Total != 5 {
		t.Errorf("期望 A=2 B=2 C=1 total=5，实际=%+v", stats)
	}
	if stats.Focus["A"] != 70 || stats.Focus["B"] != 25 || stats.Focus["C"] != 5 {
		t.Errorf("精力分配比例不正确: %v", stats.Focus)
	}
}

func TestPreferenceService_Counts_Empty(t *testing.T) {
	svc, _ := setupTestPreferenceService()

	stats, err := svc.Counts(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Counts 应成功: %v", err)
	}
	if stats.Total != 0 || stats.A != 0 {
		t.Errorf("无分级时计数应为 0，实际=%+v", stats)
	}

	groups, err := svc.ListGrouped(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListGrouped 应成功: %v", err)
	}
	if groups.A == nil || groups.B == nil || groups.C == nil {
		t.Error("空分组应为空列表而非 nil")
	}
}

func TestPreferenceService_ListByTier_Invalid(t *testing.T) {
	svc, _ := setupTestPreferenceService()
	if _, err := svc.ListByTier(context.Background(), "stu-1", model.TierNone); !errors.Is(err, ErrInvalidTier) {
		t.Errorf("期望 ErrInvalidTier，实际: %v", err)
	}
}

func TestPreferenceService_ConcurrentNewRecords(t *testing.T) {
	svc, _ := setupTestPreferenceService()
	ctx := context.Background()

	var wg sync.WaitGroup
	companies := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"}
	for _, id := range companies {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := svc.SetTier(ctx, "stu-1", id, model.TierA, nil); err != nil {
				t.Errorf("并发 SetTier(%s) 失败: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	list, err := svc.ListByTier(ctx, "stu-1", model.TierA)
	if err != nil {
		t.Fatalf("ListByTier 应成功: %v", err)
	}
	if len(list) != len(companies) {
		t.Fatalf("期望 %d 条分级，实际=%d", len(companies), len(list))
	}
	positions := make(map[int64]bool)
	for _, p := range list {
		if positions[p.Position] {
			t.Errorf("插入序号 %d 重复", p.Position)
		}
		positions[p.Position] = true
	}
}
