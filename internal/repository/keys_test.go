package repository

import "testing"

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"邮箱键归一化", userEmailKey("  Thabo@Example.COM "), "user_email:thabo@example.com"},
		{"分级键挂在学生前缀下", preferenceKey("s1", "c1"), "company_preference:s1:c1"},
		{"关注键", interestKey("s1", "c1"), "interest:s1:c1"},
		{"连接备注键", connectionNotesKey("conn-1", "company"), "connection_notes:conn-1:company"},
		{"连接唯一键", connectionPairKey("fair-1", "s1", "c1"), "connection_pair:fair-1:s1:c1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("期望 %q，实际=%q", tt.want, tt.got)
			}
		})
	}
}
