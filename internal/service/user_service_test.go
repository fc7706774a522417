package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"fasttrack/internal/dto"
	"fasttrack/internal/model"
)

func TestUserService_UpdateMe(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewUserService(repo, nopLogger())
	user := createTestUser(t, repo, "a@example.com", "password123", model.RoleStudent)

	resp, err := svc.UpdateMe(context.Background(), user.UserID, &dto.UpdateUserRequest{Name: strPtr("  Sipho  ")})
	if err != nil {
		t.Fatalf("UpdateMe 应成功: %v", err)
	}
	if resp.Name != "Sipho" {
		t.Errorf("期望 name=Sipho，实际=%q", resp.Name)
	}

	// nil 字段不更新
	resp, err = svc.UpdateMe(context.Background(), user.UserID, &dto.UpdateUserRequest{})
	if err != nil {
		t.Fatalf("UpdateMe 应成功: %v", err)
	}
	if resp.Name != "Sipho" {
		t.Errorf("未提供字段不应被修改，实际=%q", resp.Name)
	}
}

func TestUserService_UpdateMe_NotFound(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewUserService(repo, nopLogger())

	if _, err := svc.UpdateMe(context.Background(), "missing", &dto.UpdateUserRequest{}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewUserService(repo, nopLogger())
	user := createTestUser(t, repo, "a@example.com", "password123", model.RoleStudent)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newpassword1"})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}

	err = svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{OldPassword: "password123", NewPassword: "password123"})
	if !errors.Is(err, ErrSamePassword) {
		t.Errorf("期望 ErrSamePassword，实际: %v", err)
	}

	if err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{OldPassword: "password123", NewPassword: "newpassword1"}); err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}
	updated, _ := repo.User.GetByID(ctx, user.UserID)
	if bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpassword1")) != nil {
		t.Error("新密码应生效")
	}
}
