package service

import (
	"testing"

	"fasttrack/internal/model"
)

func filterFixture() []*model.Company {
	return []*model.Company{
		{ID: "c1", Name: "TechCorp SA", Industry: "Technology", Positions: []string{"Software Engineer", "Data Analyst"}},
		{ID: "c2", Name: "Green Energy", Industry: "Renewable Energy", Positions: []string{"Field Engineer"}},
		nil,
		{ID: "c3", Name: "FinBank", Industry: "Finance", Positions: nil},
		{ID: "c4", Name: "Retail Plus", Industry: "Retail", Positions: []string{"", "Store Manager"}},
	}
}

func idsOf(companies []*model.Company) []string {
	ids := make([]string, 0, len(companies))
	for _, c := range companies {
		ids = append(ids, c.ID)
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterCompanies(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"空查询返回全部并跳过 nil", "", []string{"c1", "c2", "c3", "c4"}},
		{"空白按字面匹配", " ", []string{"c1", "c2", "c4"}},
		{"连续空白无匹配", "   ", []string{}},
		{"按名称不区分大小写", "techcorp", []string{"c1"}},
		{"按行业", "FINANCE", []string{"c3"}},
		{"按职位", "engineer", []string{"c1", "c2"}},
		{"子串匹配", "energy", []string{"c2"}},
		{"无匹配", "aerospace", []string{}},
		{"职位为空串不匹配任意查询", "store", []string{"c4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idsOf(FilterCompanies(filterFixture(), tt.query))
			if !equalIDs(got, tt.want) {
				t.Errorf("期望=%v，实际=%v", tt.want, got)
			}
		})
	}
}

func TestFilterCompanies_Monotonic(t *testing.T) {
	all := filterFixture()
	short := FilterCompanies(all, "en")
	long := FilterCompanies(all, "eng")

	inShort := make(map[string]bool, len(short))
	for _, c := range short {
		inShort[c.ID] = true
	}
	for _, c := range long {
		if !inShort[c.ID] {
			t.Errorf("更长查询的结果 %s 应包含在更短查询的结果中", c.ID)
		}
	}
}

func TestFilterCompanies_NilInput(t *testing.T) {
	if got := FilterCompanies(nil, "x"); len(got) != 0 {
		t.Errorf("nil 输入应返回空结果，实际=%d", len(got))
	}
}
