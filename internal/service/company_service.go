package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fasttrack/internal/dto"
	"fasttrack/internal/model"
	"fasttrack/internal/repository"
)

// ── 企业模块业务错误 ──

var (
	ErrCompanyNotFound        = errors.New("企业不存在")
	ErrCompanyExists          = errors.New("该账号已创建企业档案")
	ErrCompanyForbidden       = errors.New("只能修改本企业的档案")
	ErrCompanyProfileRequired = errors.New("请先创建企业档案")
)

// CompanyService 企业业务接口
type CompanyService interface {
	Create(ctx context.Context, ownerID string, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error)
	GetMine(ctx context.Context, ownerID string) (*dto.CompanyResponse, error)
	List(ctx context.Context, req *dto.CompanyListRequest) ([]dto.CompanyResponse, error)
	Update(ctx context.Context, id, callerID string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	Insights(ctx context.Context, id, callerID string) (*dto.CompanyInsightsResponse, error)
}

type companyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCompanyService 创建 CompanyService 实例
func NewCompanyService(repo *repository.Repository, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *companyService) Create(ctx context.Context, ownerID string, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if _, err := s.repo.Company.GetByOwner(ctx, ownerID); err == nil {
		return nil, ErrCompanyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("查询企业失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	now := time.Now()
	c := &model.Company{
		ID:           uuid.NewString(),
		UserID:       ownerID,
		Name:         req.Name,
		Logo:         req.Logo,
		Industry:     req.Industry,
		Description:  req.Description,
		Positions:    req.Positions,
		Requirements: req.Requirements,
		Benefits:     req.Benefits,
		Website:      req.Website,
		BaseModel:    model.BaseModel{CreatedAt: now, UpdatedAt: now},
	}
	applyCompanyDetails(c, &req.CompanyDetails)
	c.Normalize()

	// 先写负责人索引：索引悬空时 GetByOwner 返回不存在，可重新创建
	if err := s.repo.Company.PutOwner(ctx, ownerID, c.ID); err != nil {
		s.logger.Error("写入企业负责人索引失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}
	if err := s.repo.Company.Save(ctx, c); err != nil {
		s.logger.Error("创建企业失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("企业档案已创建", zap.String("company_id", c.ID), zap.String("owner_id", ownerID))
	return toCompanyResponse(c), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *companyService) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(c), nil
}

// ────────────────────── GetMine ──────────────────────

func (s *companyService) GetMine(ctx context.Context, ownerID string) (*dto.CompanyResponse, error) {
	c, err := s.repo.Company.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyProfileRequired
		}
		s.logger.Error("查询企业失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}
	return toCompanyResponse(c), nil
}

// ────────────────────── List ──────────────────────

func (s *companyService) List(ctx context.Context, req *dto.CompanyListRequest) ([]dto.CompanyResponse, error) {
	companies, err := s.repo.Company.List(ctx)
	if err != nil {
		s.logger.Error("列出企业失败", zap.Error(err))
		return nil, err
	}

	ptrs := make([]*model.Company, len(companies))
	for i := range companies {
		ptrs[i] = &companies[i]
	}

	matched := FilterCompanies(ptrs, req.Q)
	result := make([]dto.CompanyResponse, 0, len(matched))
	for _, c := range matched {
		result = append(result, *toCompanyResponse(c))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *companyService) Update(ctx context.Context, id, callerID string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != callerID {
		return nil, ErrCompanyForbidden
	}

	setString(&c.Name, req.Name)
	setString(&c.Logo, req.Logo)
	setString(&c.Industry, req.Industry)
	setString(&c.Description, req.Description)
	setList(&c.Positions, req.Positions)
	setList(&c.Requirements, req.Requirements)
	setList(&c.Benefits, req.Benefits)
	setString(&c.Website, req.Website)
	if req.FoundedYear != nil {
		c.FoundedYear = *req.FoundedYear
	}
	setString(&c.CompanySize, req.CompanySize)
	setString(&c.Headquarters, req.Headquarters)
	setList(&c.OfficeLocations, req.OfficeLocations)
	setList(&c.CompanyCulture, req.CompanyCulture)
	setList(&c.CompanyValues, req.CompanyValues)
	setString(&c.MissionStatement, req.MissionStatement)
	setList(&c.RecentAchievements, req.RecentAchievements)
	setList(&c.TechStack, req.TechStack)
	setString(&c.WorkEnvironment, req.WorkEnvironment)
	setList(&c.DiversityInitiatives, req.DiversityInitiatives)
	setList(&c.CareerDevelopment, req.CareerDevelopment)
	if req.InternshipPrograms != nil {
		c.InternshipPrograms = *req.InternshipPrograms
	}
	if req.GraduatePrograms != nil {
		c.GraduatePrograms = *req.GraduatePrograms
	}
	if req.SalaryRange != nil {
		c.SalaryRange = req.SalaryRange
	}
	setList(&c.ApplicationProcess, req.ApplicationProcess)
	setString(&c.ContactEmail, req.ContactEmail)
	setString(&c.LinkedInURL, req.LinkedInURL)
	setString(&c.TwitterURL, req.TwitterURL)
	if req.GlassdoorRating != nil {
		c.GlassdoorRating = *req.GlassdoorRating
	}
	if req.RecentNews != nil {
		c.RecentNews = *req.RecentNews
	}
	c.Normalize()
	c.UpdatedAt = time.Now()

	if err := s.repo.Company.Save(ctx, c); err != nil {
		s.logger.Error("更新企业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toCompanyResponse(c), nil
}

// ────────────────────── Insights ──────────────────────

func (s *companyService) Insights(ctx context.Context, id, callerID string) (*dto.CompanyInsightsResponse, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != callerID {
		return nil, ErrCompanyForbidden
	}

	interested, err := s.repo.Interest.CountByCompany(ctx, id)
	if err != nil {
		s.logger.Error("统计关注数失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	ids, err := s.repo.Connection.ListIDs(ctx, model.PartyCompany, c.UserID)
	if err != nil {
		s.logger.Error("列出企业连接失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	var counts dto.ConnectionCounts
	for _, connID := range ids {
		conn, err := s.repo.Connection.Get(ctx, connID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			s.logger.Error("查询连接失败", zap.String("connection_id", connID), zap.Error(err))
			return nil, err
		}
		if conn.CompanyID != c.ID {
			continue
		}
		switch conn.Status {
		case model.ConnectionPending:
			counts.Pending++
		case model.ConnectionAccepted:
			counts.Accepted++
		case model.ConnectionDeclined:
			counts.Declined++
		}
		counts.Total++
	}

	return &dto.CompanyInsightsResponse{
		CompanyID:          id,
		InterestedStudents: interested,
		Connections:        counts,
	}, nil
}

// ── 内部辅助方法 ──

func (s *companyService) load(ctx context.Context, id string) (*model.Company, error) {
	c, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询企业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func applyCompanyDetails(c *model.Company, d *dto.CompanyDetails) {
	c.FoundedYear = d.FoundedYear
	c.CompanySize = d.CompanySize
	c.Headquarters = d.Headquarters
	c.OfficeLocations = d.OfficeLocations
	c.CompanyCulture = d.CompanyCulture
	c.CompanyValues = d.CompanyValues
	c.MissionStatement = d.MissionStatement
	c.RecentAchievements = d.RecentAchievements
	c.TechStack = d.TechStack
	c.WorkEnvironment = d.WorkEnvironment
	c.DiversityInitiatives = d.DiversityInitiatives
	c.CareerDevelopment = d.CareerDevelopment
	c.InternshipPrograms = d.InternshipPrograms
	c.GraduatePrograms = d.GraduatePrograms
	c.SalaryRange = d.SalaryRange
	c.ApplicationProcess = d.ApplicationProcess
	c.ContactEmail = d.ContactEmail
	c.LinkedInURL = d.LinkedInURL
	c.TwitterURL = d.TwitterURL
	c.GlassdoorRating = d.GlassdoorRating
	c.RecentNews = d.RecentNews
}

func toCompanyResponse(c *model.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		Name:         c.Name,
		Logo:         c.Logo,
		Industry:     c.Industry,
		Description:  c.Description,
		Positions:    c.Positions,
		Requirements: c.Requirements,
		Benefits:     c.Benefits,
		Website:      c.Website,
		CompanyDetails: dto.CompanyDetails{
			FoundedYear:          c.FoundedYear,
			CompanySize:          c.CompanySize,
			Headquarters:         c.Headquarters,
			OfficeLocations:      c.OfficeLocations,
			CompanyCulture:       c.CompanyCulture,
			CompanyValues:        c.CompanyValues,
			MissionStatement:     c.MissionStatement,
			RecentAchievements:   c.RecentAchievements,
			TechStack:            c.TechStack,
			WorkEnvironment:      c.WorkEnvironment,
			DiversityInitiatives: c.DiversityInitiatives,
			CareerDevelopment:    c.CareerDevelopment,
			InternshipPrograms:   c.InternshipPrograms,
			GraduatePrograms:     c.GraduatePrograms,
			SalaryRange:          c.SalaryRange,
			ApplicationProcess:   c.ApplicationProcess,
			ContactEmail:         c.ContactEmail,
			LinkedInURL:          c.LinkedInURL,
			TwitterURL:           c.TwitterURL,
			GlassdoorRating:      c.GlassdoorRating,
			RecentNews:           c.RecentNews,
		},
		CreatedAt: dto.FormatTime(c.CreatedAt),
		UpdatedAt: dto.FormatTime(c.UpdatedAt),
	}
}
