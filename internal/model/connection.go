package model

import "time"

// ConnectionStatus 连接状态
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionDeclined ConnectionStatus = "declined"
)

// IsValidConnectionStatus 判断状态是否合法
func IsValidConnectionStatus(s string) bool {
	switch ConnectionStatus(s) {
	case ConnectionPending, ConnectionAccepted, ConnectionDeclined:
		return true
	}
	return false
}

// IsTerminal accepted 与 declined 为终态
func (s ConnectionStatus) IsTerminal() bool {
	return s == ConnectionAccepted || s == ConnectionDeclined
}

// CanTransition 仅允许 pending → accepted/declined
func (s ConnectionStatus) CanTransition(to ConnectionStatus) bool {
	return s == ConnectionPending && to.IsTerminal()
}

// ConnectionType 发起方，创建后不可变
type ConnectionType string

const (
	ConnectionCompanyInitiated ConnectionType = "company_initiated"
	ConnectionStudentInitiated ConnectionType = "student_initiated"
)

// Party 连接中的一方
type Party string

const (
	PartyCompany Party = "company"
	PartyStudent Party = "student"
)

// Connection 连接主记录，键 connection:<id>
// 仅在创建及学生端状态流转时写入；双方备注分别存放于 connection_notes:<id>:<party>
type Connection struct {
	ID                  string           `json:"id"`
	StudentID           string           `json:"student_id"` // 学生档案 ID
	CompanyID           string           `json:"company_id"`
	StudentUserID       string           `json:"student_user_id"`
	CompanyUserID       string           `json:"company_user_id"`
	CareerFairID        string           `json:"career_fair_id"`
	Status              ConnectionStatus `json:"status"`
	ConnectionType      ConnectionType   `json:"connection_type"`
	ConnectionTimestamp time.Time        `json:"connection_timestamp"`
	BaseModel
}

// PartyUserID 返回指定一方的用户 ID
func (c *Connection) PartyUserID(p Party) string {
	if p == PartyCompany {
		return c.CompanyUserID
	}
	return c.StudentUserID
}

// ConnectionNotes 单方备注，键 connection_notes:<connection_id>:<party>
type ConnectionNotes struct {
	ConnectionID string    `json:"connection_id"`
	Party        Party     `json:"party"`
	Notes        string    `json:"notes"`
	UpdatedBy    string    `json:"updated_by"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// [自证通过] internal/model/connection.go
