package model

import "strings"

// 工作环境
const (
	WorkRemote   = "remote"
	WorkHybrid   = "hybrid"
	WorkOnsite   = "onsite"
	WorkFlexible = "flexible"
)

// SalaryRange 薪资区间
type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// NewsItem 企业动态
type NewsItem struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Summary string `json:"summary"`
	URL     string `json:"url,omitempty"`
}

// Company 企业公开档案，键 company:<company_id>
// 负责人索引 company_owner:<user_id> → company_id（一个企业账号仅一家企业）
type Company struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	Name         string   `json:"name"`
	Logo         string   `json:"logo"`
	Industry     string   `json:"industry"`
	Description  string   `json:"description"`
	Positions    []string `json:"positions"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
	Website      string   `json:"website"`

	FoundedYear          int          `json:"founded_year,omitempty"`
	CompanySize          string       `json:"company_size,omitempty"`
	Headquarters         string       `json:"headquarters,omitempty"`
	OfficeLocations      []string     `json:"office_locations"`
	CompanyCulture       []string     `json:"company_culture"`
	CompanyValues        []string     `json:"company_values"`
	MissionStatement     string       `json:"mission_statement,omitempty"`
	RecentAchievements   []string     `json:"recent_achievements"`
	TechStack            []string     `json:"tech_stack"`
	WorkEnvironment      string       `json:"work_environment,omitempty"`
	DiversityInitiatives []string     `json:"diversity_initiatives"`
	CareerDevelopment    []string     `json:"career_development"`
	InternshipPrograms   bool         `json:"internship_programs"`
	GraduatePrograms     bool         `json:"graduate_programs"`
	SalaryRange          *SalaryRange `json:"salary_range,omitempty"`
	ApplicationProcess   []string     `json:"application_process"`
	ContactEmail         string       `json:"contact_email,omitempty"`
	LinkedInURL          string       `json:"linkedin_url,omitempty"`
	TwitterURL           string       `json:"twitter_url,omitempty"`
	GlassdoorRating      float64      `json:"glassdoor_rating,omitempty"`
	RecentNews           []NewsItem   `json:"recent_news"`
	BaseModel
}

// Normalize 入库与读出时统一执行：字符串去空白，nil 列表置为空列表
// 下游（搜索、导出、展示）无需再做空值判断
func (c *Company) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Logo = strings.TrimSpace(c.Logo)
	c.Industry = strings.TrimSpace(c.Industry)
	c.Description = strings.TrimSpace(c.Description)
	c.Website = strings.TrimSpace(c.Website)
	c.CompanySize = strings.TrimSpace(c.CompanySize)
	c.Headquarters = strings.TrimSpace(c.Headquarters)
	c.MissionStatement = strings.TrimSpace(c.MissionStatement)
	c.WorkEnvironment = strings.TrimSpace(c.WorkEnvironment)
	c.ContactEmail = strings.TrimSpace(c.ContactEmail)
	c.LinkedInURL = strings.TrimSpace(c.LinkedInURL)
	c.TwitterURL = strings.TrimSpace(c.TwitterURL)

	for _, list := range []*[]string{
		&c.Positions, &c.Requirements, &c.Benefits, &c.OfficeLocations,
		&c.CompanyCulture, &c.CompanyValues, &c.RecentAchievements, &c.TechStack,
		&c.DiversityInitiatives, &c.CareerDevelopment, &c.ApplicationProcess,
	} {
		*list = trimList(*list)
	}
	if c.RecentNews == nil {
		c.RecentNews = []NewsItem{}
	}
}

// IsValidWorkEnvironment 空值视为未填写
func IsValidWorkEnvironment(v string) bool {
	switch v {
	case "", WorkRemote, WorkHybrid, WorkOnsite, WorkFlexible:
		return true
	}
	return false
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// [自证通过] internal/model/company.go
