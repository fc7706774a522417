package service

import (
	"strings"

	"fasttrack/internal/model"
)

// completionItem 完成度评分项，各项权重之和为 100，不给部分分
type completionItem struct {
	name   string
	weight int
	filled func(p *model.StudentProfile) bool
}

var completionItems = []completionItem{
	{"profile_image", 10, func(p *model.StudentProfile) bool { return present(p.ProfileImage) }},
	{"bio", 15, func(p *model.StudentProfile) bool { return present(p.Bio) }},
	{"education", 20, func(p *model.StudentProfile) bool { return present(p.University) && present(p.Degree) }},
	{"skills", 15, func(p *model.StudentProfile) bool { return len(p.Skills) > 0 }},
	{"interests", 10, func(p *model.StudentProfile) bool { return len(p.Interests) > 0 }},
	{"preferred_industries", 15, func(p *model.StudentProfile) bool { return len(p.PreferredIndustries) > 0 }},
	{"location", 10, func(p *model.StudentProfile) bool { return present(p.LocationProvince) && present(p.LocationCity) }},
	{"languages", 5, func(p *model.StudentProfile) bool { return len(p.Languages) > 0 }},
}

// ProfileCompletion 计算档案完成度（0-100），nil 档案为 0
func ProfileCompletion(p *model.StudentProfile) int {
	if p == nil {
		return 0
	}
	score := 0
	for _, it := range completionItems {
		if it.filled(p) {
			score += it.weight
		}
	}
	return score
}

// MissingCompletionItems 返回尚未得分的评分项名称
func MissingCompletionItems(p *model.StudentProfile) []string {
	missing := make([]string, 0, len(completionItems))
	for _, it := range completionItems {
		if p == nil || !it.filled(p) {
			missing = append(missing, it.name)
		}
	}
	return missing
}

func present(s string) bool { return strings.TrimSpace(s) != "" }
