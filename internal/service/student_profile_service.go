package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fasttrack/internal/dto"
	"fasttrack/internal/model"
	"fasttrack/internal/repository"
)

// ── 学生档案模块业务错误 ──

var (
	ErrStudentProfileNotFound = errors.New("学生档案不存在")
	ErrStudentProfileExists   = errors.New("学生档案已存在")
	ErrQRTokenNotFound        = errors.New("二维码无效或已失效")
)

// StudentProfileService 学生档案业务接口
type StudentProfileService interface {
	Create(ctx context.Context, userID string, req *dto.CreateStudentProfileRequest) (*dto.StudentProfileResponse, error)
	Get(ctx context.Context, userID string) (*dto.StudentProfileResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileResponse, error)
	// Completion 无档案时返回 0 分
	Completion(ctx context.Context, userID string) (*dto.ProfileCompletionResponse, error)
	// RegenerateQRToken 旧令牌立即失效
	RegenerateQRToken(ctx context.Context, userID string) (*dto.QRTokenResponse, error)
	GetQRToken(ctx context.Context, userID string) (*dto.QRTokenResponse, error)
	// PreviewByToken 企业扫码预览
	PreviewByToken(ctx context.Context, token string) (*dto.StudentPreviewResponse, error)
}

type studentProfileService struct {
	repo    *repository.Repository
	baseURL string
	logger  *zap.Logger
}

// NewStudentProfileService 创建 StudentProfileService 实例
func NewStudentProfileService(repo *repository.Repository, baseURL string, logger *zap.Logger) StudentProfileService {
	return &studentProfileService{
		repo:    repo,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *studentProfileService) Create(ctx context.Context, userID string, req *dto.CreateStudentProfileRequest) (*dto.StudentProfileResponse, error) {
	if _, err := s.repo.StudentProfile.GetByUserID(ctx, userID); err == nil {
		return nil, ErrStudentProfileExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("查询学生档案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	token, err := newQRToken()
	if err != nil {
		s.logger.Error("生成二维码令牌失败", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	p := &model.StudentProfile{
		ID:                  uuid.NewString(),
		UserID:              userID,
		ProfileImage:        req.ProfileImage,
		Bio:                 strings.TrimSpace(req.Bio),
		University:          strings.TrimSpace(req.University),
		Degree:              strings.TrimSpace(req.Degree),
		YearOfStudy:         strings.TrimSpace(req.YearOfStudy),
		GPA:                 strings.TrimSpace(req.GPA),
		Skills:              req.Skills,
		Interests:           req.Interests,
		CareerGoals:         strings.TrimSpace(req.CareerGoals),
		PreferredIndustries: req.PreferredIndustries,
		LocationProvince:    strings.TrimSpace(req.LocationProvince),
		LocationCity:        strings.TrimSpace(req.LocationCity),
		Languages:           req.Languages,
		LinkedInURL:         strings.TrimSpace(req.LinkedInURL),
		GithubURL:           strings.TrimSpace(req.GithubURL),
		PortfolioURL:        strings.TrimSpace(req.PortfolioURL),
		Phone:               strings.TrimSpace(req.Phone),
		Availability:        strings.TrimSpace(req.Availability),
		QRToken:             token,
		BaseModel:           model.BaseModel{CreatedAt: now, UpdatedAt: now},
	}
	p.Normalize()

	// 先写索引再写档案：档案存在即可通过令牌找到
	if err := s.repo.StudentProfile.PutQRToken(ctx, token, userID); err != nil {
		s.logger.Error("写入二维码索引失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if err := s.repo.StudentProfile.Save(ctx, p); err != nil {
		s.logger.Error("创建学生档案失败", zap.String("user_id", userID), zap.Error(err))
		s.rollbackQRToken(ctx, userID, token)
		return nil, err
	}

	return toStudentProfileResponse(p), nil
}

// ────────────────────── Get ──────────────────────

func (s *studentProfileService) Get(ctx context.Context, userID string) (*dto.StudentProfileResponse, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toStudentProfileResponse(p), nil
}

// ────────────────────── Update ──────────────────────

func (s *studentProfileService) Update(ctx context.Context, userID string, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileResponse, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	setString(&p.ProfileImage, req.ProfileImage)
	setString(&p.Bio, req.Bio)
	setString(&p.University, req.University)
	setString(&p.Degree, req.Degree)
	setString(&p.YearOfStudy, req.YearOfStudy)
	setString(&p.GPA, req.GPA)
	setString(&p.CareerGoals, req.CareerGoals)
	setString(&p.LocationProvince, req.LocationProvince)
	setString(&p.LocationCity, req.LocationCity)
	setString(&p.LinkedInURL, req.LinkedInURL)
	setString(&p.GithubURL, req.GithubURL)
	setString(&p.PortfolioURL, req.PortfolioURL)
	setString(&p.Phone, req.Phone)
	setString(&p.Availability, req.Availability)
	setList(&p.Skills, req.Skills)
	setList(&p.Interests, req.Interests)
	setList(&p.PreferredIndustries, req.PreferredIndustries)
	setList(&p.Languages, req.Languages)
	p.Normalize()
	p.UpdatedAt = time.Now()

	if err := s.repo.StudentProfile.Save(ctx, p); err != nil {
		s.logger.Error("更新学生档案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toStudentProfileResponse(p), nil
}

// ────────────────────── Completion ──────────────────────

func (s *studentProfileService) Completion(ctx context.Context, userID string) (*dto.ProfileCompletionResponse, error) {
	p, err := s.repo.StudentProfile.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("查询学生档案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if err != nil {
		p = nil
	}
	return &dto.ProfileCompletionResponse{
		Completion: ProfileCompletion(p),
		Missing:    MissingCompletionItems(p),
	}, nil
}

// ────────────────────── QR Token ──────────────────────

func (s *studentProfileService) GetQRToken(ctx context.Context, userID string) (*dto.QRTokenResponse, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toQRTokenResponse(p.QRToken), nil
}

func (s *studentProfileService) RegenerateQRToken(ctx context.Context, userID string) (*dto.QRTokenResponse, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	token, err := newQRToken()
	if err != nil {
		s.logger.Error("生成二维码令牌失败", zap.Error(err))
		return nil, err
	}

	oldToken := p.QRToken
	if err := s.repo.StudentProfile.PutQRToken(ctx, token, userID); err != nil {
		s.logger.Error("写入二维码索引失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	p.QRToken = token
	p.UpdatedAt = time.Now()
	if err := s.repo.StudentProfile.Save(ctx, p); err != nil {
		s.logger.Error("更新学生档案失败", zap.String("user_id", userID), zap.Error(err))
		s.rollbackQRToken(ctx, userID, token)
		return nil, err
	}

	// 旧链接立即失效
	if oldToken != "" {
		if err := s.repo.StudentProfile.DeleteQRToken(ctx, oldToken); err != nil {
			s.logger.Error("删除旧二维码索引失败", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("二维码令牌已重新生成", zap.String("user_id", userID))
	return s.toQRTokenResponse(token), nil
}

// ────────────────────── PreviewByToken ──────────────────────

func (s *studentProfileService) PreviewByToken(ctx context.Context, token string) (*dto.StudentPreviewResponse, error) {
	p, err := resolveQRToken(ctx, s.repo, token)
	if err != nil {
		if !errors.Is(err, ErrQRTokenNotFound) {
			s.logger.Error("解析二维码令牌失败", zap.Error(err))
		}
		return nil, err
	}

	name := ""
	if u, err := s.repo.User.GetByID(ctx, p.UserID); err == nil {
		name = u.Name
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("查询用户失败", zap.String("user_id", p.UserID), zap.Error(err))
		return nil, err
	}

	return &dto.StudentPreviewResponse{
		UserID:              p.UserID,
		StudentID:           p.ID,
		Name:                name,
		ProfileImage:        p.ProfileImage,
		Bio:                 p.Bio,
		University:          p.University,
		Degree:              p.Degree,
		YearOfStudy:         p.YearOfStudy,
		Skills:              p.Skills,
		Interests:           p.Interests,
		PreferredIndustries: p.PreferredIndustries,
		Completion:          ProfileCompletion(p),
	}, nil
}

// ── 内部辅助方法 ──

func (s *studentProfileService) load(ctx context.Context, userID string) (*model.StudentProfile, error) {
	p, err := s.repo.StudentProfile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentProfileNotFound
		}
		s.logger.Error("查询学生档案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// rollbackQRToken 尽力清理未落地的令牌索引，失败只记日志
func (s *studentProfileService) rollbackQRToken(ctx context.Context, userID, token string) {
	if err := s.repo.StudentProfile.DeleteQRToken(ctx, token); err != nil {
		s.logger.Warn("清理二维码索引失败", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *studentProfileService) toQRTokenResponse(token string) *dto.QRTokenResponse {
	return &dto.QRTokenResponse{
		QRToken:    token,
		ConnectURL: s.baseURL + "/connect/" + token,
	}
}

// resolveQRToken 令牌 → 学生档案；索引或档案缺失、令牌已被轮换均视为无效
func resolveQRToken(ctx context.Context, repo *repository.Repository, token string) (*model.StudentProfile, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrQRTokenNotFound
	}
	userID, err := repo.StudentProfile.GetUserIDByQRToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQRTokenNotFound
		}
		return nil, err
	}
	p, err := repo.StudentProfile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQRTokenNotFound
		}
		return nil, err
	}
	if p.QRToken != token {
		return nil, ErrQRTokenNotFound
	}
	return p, nil
}

// newQRToken 16 字节随机数的十六进制表示
func newQRToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setList(dst *[]string, v *[]string) {
	if v != nil {
		*dst = *v
	}
}

func toStudentProfileResponse(p *model.StudentProfile) *dto.StudentProfileResponse {
	return &dto.StudentProfileResponse{
		ID:                  p.ID,
		UserID:              p.UserID,
		ProfileImage:        p.ProfileImage,
		Bio:                 p.Bio,
		University:          p.University,
		Degree:              p.Degree,
		YearOfStudy:         p.YearOfStudy,
		GPA:                 p.GPA,
		Skills:              p.Skills,
		Interests:           p.Interests,
		CareerGoals:         p.CareerGoals,
		PreferredIndustries: p.PreferredIndustries,
		LocationProvince:    p.LocationProvince,
		LocationCity:        p.LocationCity,
		Languages:           p.Languages,
		LinkedInURL:         p.LinkedInURL,
		GithubURL:           p.GithubURL,
		PortfolioURL:        p.PortfolioURL,
		Phone:               p.Phone,
		Availability:        p.Availability,
		QRToken:             p.QRToken,
		Completion:          ProfileCompletion(p),
		CreatedAt:           dto.FormatTime(p.CreatedAt),
		UpdatedAt:           dto.FormatTime(p.UpdatedAt),
	}
}
