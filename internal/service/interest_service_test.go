package service

import (
	"context"
	"errors"
	"testing"
)

func TestInterestService_AddIdempotent(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewInterestService(repo, nopLogger())
	ctx := context.Background()
	seedCompany(t, repo, "company-1", "owner", "TechCorp SA")

	first, err := svc.Add(ctx, "stu-1", "company-1")
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}
	second, err := svc.Add(ctx, "stu-1", "company-1")
	if err != nil {
		t.Fatalf("重复 Add 应成功: %v", err)
	}
	if first.ID != second.ID {
		t.Error("重复关注应返回已有记录")
	}

	list, _ := svc.List(ctx, "stu-1")
	if len(list) != 1 {
		t.Errorf("期望 1 条关注，实际=%d", len(list))
	}
}

func TestInterestService_Add_Errors(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewInterestService(repo, nopLogger())
	ctx := context.Background()

	if _, err := svc.Add(ctx, "stu-1", "missing"); !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("期望 ErrCompanyNotFound，实际: %v", err)
	}
	if _, err := svc.Add(ctx, "stu-1", " "); !errors.Is(err, ErrInterestInvalidInput) {
		t.Errorf("期望 ErrInterestInvalidInput，实际: %v", err)
	}
}

func TestInterestService_RemoveAndListCompanies(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewInterestService(repo, nopLogger())
	ctx := context.Background()
	seedCompany(t, repo, "company-1", "owner-1", "TechCorp SA")
	seedCompany(t, repo, "company-2", "owner-2", "Green Energy")

	for _, id := range []string{"company-1", "company-2"} {
		if _, err := svc.Add(ctx, "stu-1", id); err != nil {
			t.Fatalf("Add(%s) 应成功: %v", id, err)
		}
	}

	// 企业被删除后不再出现在展开列表中
	if err := repo.Store.Delete(ctx, "company:company-2"); err != nil {
		t.Fatalf("删除企业失败: %v", err)
	}
	companies, err := svc.ListCompanies(ctx, "stu-1")
	if err != nil {
		t.Fatalf("ListCompanies 应成功: %v", err)
	}
	if len(companies) != 1 || companies[0].ID != "company-1" {
		t.Errorf("期望仅返回仍存在的企业，实际=%+v", companies)
	}

	if err := svc.Remove(ctx, "stu-1", "company-1"); err != nil {
		t.Fatalf("Remove 应成功: %v", err)
	}
	if err := svc.Remove(ctx, "stu-1", "company-1"); err != nil {
		t.Errorf("重复 Remove 应成功: %v", err)
	}
	list, _ := svc.List(ctx, "stu-1")
	if len(list) != 1 || list[0].CompanyID != "company-2" {
		t.Errorf("取消关注后列表不正确: %+v", list)
	}
}
