package dto

// ExportConnectionsRequest 导出连接线索
type ExportConnectionsRequest struct {
	CareerFairID string `form:"career_fair_id" binding:"omitempty,max=100"`
}
