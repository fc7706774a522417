package service

import (
	"strings"

	"fasttrack/internal/model"
)

// FilterCompanies 按名称、行业或任一职位做不区分大小写的子串匹配，保持原顺序
// 空查询返回全部；nil 项跳过；空职位串不参与匹配
// 查询串不做 trim，空白也按字面参与匹配
func FilterCompanies(companies []*model.Company, query string) []*model.Company {
	q := strings.ToLower(query)
	out := make([]*model.Company, 0, len(companies))
	for _, c := range companies {
		if c == nil {
			continue
		}
		if q == "" || companyMatches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func companyMatches(c *model.Company, q string) bool {
	if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Industry), q) {
		return true
	}
	for _, p := range c.Positions {
		if p != "" && strings.Contains(strings.ToLower(p), q) {
			return true
		}
	}
	return false
}
