package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"fasttrack/internal/dto"
	"fasttrack/internal/model"
	"fasttrack/internal/repository"
	pkgerrors "fasttrack/pkg/errors"
)

func setupTestStudentProfileService() (StudentProfileService, *repository.Repository, *faultyStore) {
	repo, store := newTestRepo()
	return NewStudentProfileService(repo, "https://fasttrack.example.com/", nopLogger()), repo, store
}

func TestStudentProfileService_Create(t *testing.T) {
	svc, _, _ := setupTestStudentProfileService()

	resp, err := svc.Create(context.Background(), "stu-1", &dto.CreateStudentProfileRequest{
		Bio:    "  热爱后端  ",
		Skills: []string{" Go ", "", "SQL"},
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Bio != "热爱后端" {
		t.Errorf("bio 应去除首尾空白，实际=%q", resp.Bio)
	}
	if len(resp.Skills) != 2 || resp.Skills[0] != "Go" {
		t.Errorf("技能标签应规范化，实际=%v", resp.Skills)
	}
	if resp.Interests == nil {
		t.Error("未填写的列表应为空列表而非 nil")
	}
	if len(resp.QRToken) != 32 {
		t.Errorf("期望 32 位十六进制令牌，实际=%q", resp.QRToken)
	}
	if resp.Completion != 30 {
		t.Errorf("期望完成度=30，实际=%d", resp.Completion)
	}
}

func TestStudentProfileService_Create_Duplicate(t *testing.T) {
	svc, _, _ := setupTestStudentProfileService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "stu-1", &dto.CreateStudentProfileRequest{}); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Create(ctx, "stu-1", &dto.CreateStudentProfileRequest{}); !errors.Is(err, ErrStudentProfileExists) {
		t.Errorf("期望 ErrStudentProfileExists，实际: %v", err)
	}
}

func TestStudentProfileService_Update_Partial(t *testing.T) {
	svc, _, _ := setupTestStudentProfileService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "stu-1", &dto.CreateStudentProfileRequest{University: "UCT", Degree: "BSc"}); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	langs := []string{"English", "isiXhosa"}
	resp, err := svc.Update(ctx, "stu-1", &dto.UpdateStudentProfileRequest{Languages: &langs})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.University != "UCT" || resp.Degree != "BSc" {
		t.Error("未提供的字段不应被修改")
	}
	if resp.Completion != 25 {
		t.Errorf("期望完成度=25，实际=%d", resp.Completion)
	}

	if _, err := svc.Update(ctx, "missing", &dto.UpdateStudentProfileRequest{}); !errors.Is(err, ErrStudentProfileNotFound) {
		t.Errorf("期望 ErrStudentProfileNotFound，实际: %v", err)
	}
}

func TestStudentProfileService_Completion_NoProfile(t *testing.T) {
	svc, _, _ := setupTestStudentProfileService()

	resp, err := svc.Completion(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("无档案时 Completion 不应报错: %v", err)
	}
	if resp.Completion != 0 || len(resp.Missing) != len(completionItems) {
		t.Errorf("期望 0 分且全部缺失，实际=%+v", resp)
	}
}

func TestStudentProfileService_RegenerateQRToken_InvalidatesOld(t *testing.T) {
	svc, _, _ := setupTestStudentProfileService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "stu-1", &dto.CreateStudentProfileRequest{})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	oldToken := created.QRToken
	if _, err := svc.PreviewByToken(ctx, oldToken); err != nil {
		t.Fatalf("旧令牌在重新生成前应可用: %v", err)
	}

	regenerated, err := svc.RegenerateQRToken(ctx, "stu-1")
	if err != nil {
		t.Fatalf("RegenerateQRToken 应成功: %v", err)
	}
	if regenerated.QRToken == oldToken {
		t.Fatal("新令牌应与旧令牌不同")
	}
	if want := "https://fasttrack.example.com/connect/" + regenerated.QRToken; regenerated.ConnectURL != want {
		t.Errorf("期望连接地址 %s，实际=%s", want, regenerated.ConnectURL)
	}

	if _, err := svc.PreviewByToken(ctx, oldToken); !errors.Is(err, ErrQRTokenNotFound) {
		t.Errorf("旧令牌应立即失效，期望 ErrQRTokenNotFound，实际: %v", err)
	}
	preview, err := svc.PreviewByToken(ctx, regenerated.QRToken)
	if err != nil {
		t.Fatalf("新令牌应可用: %v", err)
	}
	if preview.UserID != "stu-1" {
		t.Errorf("期望 user_id=stu-1，实际=%s", preview.UserID)
	}

	got, _ := svc.GetQRToken(ctx, "stu-1")
	if got.QRToken != regenerated.QRToken {
		t.Errorf("GetQRToken 应返回新令牌")
	}
}

func TestStudentProfileService_PreviewByToken(t *testing.T) {
	svc, repo, _ := setupTestStudentProfileService()
	ctx := context.Background()
	seedUser(t, repo, "stu-1", "Thandi", model.RoleStudent)
	seedStudentProfile(t, repo, "stu-1", "tok-1")

	preview, err := svc.PreviewByToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("PreviewByToken 应成功: %v", err)
	}
	if preview.Name != "Thandi" || preview.University != "开普敦大学" {
		t.Errorf("预览信息不正确: %+v", preview)
	}

	if _, err := svc.PreviewByToken(ctx, ""); !errors.Is(err, ErrQRTokenNotFound) {
		t.Errorf("空令牌期望 ErrQRTokenNotFound，实际: %v", err)
	}
}

func TestStudentProfileService_StoreUnavailable(t *testing.T) {
	svc, _, store := setupTestStudentProfileService()
	store.failAll()

	if _, err := svc.Get(context.Background(), "stu-1"); !errors.Is(err, pkgerrors.ErrStore) {
		t.Errorf("期望 ErrStore，实际: %v", err)
	}
	if _, err := svc.Create(context.Background(), "stu-1", &dto.CreateStudentProfileRequest{}); !errors.Is(err, pkgerrors.ErrStore) {
		t.Errorf("期望 ErrStore，实际: %v", err)
	}
}

func TestStudentProfileService_Create_RollsBackQRToken(t *testing.T) {
	repo, store := newTestRepo()
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewStudentProfileService(repo, "https://fasttrack.example.com", zap.New(core))
	ctx := context.Background()

	// 档案写入失败，索引应被清理
	store.failOn("student_profile:")
	if _, err := svc.Create(ctx, "stu-1", &dto.CreateStudentProfileRequest{}); !errors.Is(err, pkgerrors.ErrStore) {
		t.Fatalf("期望 ErrStore，实际: %v", err)
	}
	for key := range store.snapshot(t) {
		if strings.HasPrefix(key, "qr_token:") {
			t.Errorf("写入失败后不应残留二维码索引: %s", key)
		}
	}
	if n := logs.FilterMessage("清理二维码索引失败").Len(); n != 0 {
		t.Errorf("清理成功时不应记录告警，实际=%d", n)
	}

	// 清理也失败时记录告警
	store.failDeleteOn("qr_token:")
	if _, err := svc.Create(ctx, "stu-1", &dto.CreateStudentProfileRequest{}); !errors.Is(err, pkgerrors.ErrStore) {
		t.Fatalf("期望 ErrStore，实际: %v", err)
	}
	warns := logs.FilterMessage("清理二维码索引失败")
	if warns.Len() != 1 {
		t.Fatalf("期望一条清理失败告警，实际=%d", warns.Len())
	}
	if warns.All()[0].Level != zapcore.WarnLevel {
		t.Errorf("期望 Warn 级别，实际=%s", warns.All()[0].Level)
	}
}
