package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fasttrack/internal/dto"
	"fasttrack/internal/model"
	"fasttrack/internal/repository"
)

// ErrInterestInvalidInput company_id 为空
var ErrInterestInvalidInput = errors.New("company_id 不能为空")

// InterestService 学生关注企业
type InterestService interface {
	// Add 重复关注返回已有记录
	Add(ctx context.Context, userID, companyID string) (*dto.InterestResponse, error)
	// Remove 未关注时同样成功
	Remove(ctx context.Context, userID, companyID string) error
	List(ctx context.Context, userID string) ([]dto.InterestResponse, error)
	// ListCompanies 返回仍存在的已关注企业
	ListCompanies(ctx context.Context, userID string) ([]dto.CompanyResponse, error)
}

type interestService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewInterestService 创建 InterestService 实例
func NewInterestService(repo *repository.Repository, logger *zap.Logger) InterestService {
	return &interestService{repo: repo, logger: logger}
}

func (s *interestService) Add(ctx context.Context, userID, companyID string) (*dto.InterestResponse, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, ErrInterestInvalidInput
	}

	if _, err := s.repo.Company.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询企业失败", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	existing, err := s.repo.Interest.Get(ctx, userID, companyID)
	if err == nil {
		return toInterestResponse(existing), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("查询关注失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	now := time.Now()
	it := &model.Interest{
		ID:        uuid.NewString(),
		UserID:    userID,
		CompanyID: companyID,
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.repo.Interest.Save(ctx, it); err != nil {
		s.logger.Error("保存关注失败", zap.String("user_id", userID), zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	return toInterestResponse(it), nil
}

func (s *interestService) Remove(ctx context.Context, userID, companyID string) error {
	if err := s.repo.Interest.Delete(ctx, userID, companyID); err != nil {
		s.logger.Error("取消关注失败", zap.String("user_id", userID), zap.String("company_id", companyID), zap.Error(err))
		return err
	}
	return nil
}

func (s *interestService) List(ctx context.Context, userID string) ([]dto.InterestResponse, error) {
	items, err := s.repo.Interest.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出关注失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.InterestResponse, 0, len(items))
	for i := range items {
		result = append(result, *toInterestResponse(&items[i]))
	}
	return result, nil
}

func (s *interestService) ListCompanies(ctx context.Context, userID string) ([]dto.CompanyResponse, error) {
	items, err := s.repo.Interest.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出关注失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CompanyResponse, 0, len(items))
	for _, it := range items {
		c, err := s.repo.Company.GetByID(ctx, it.CompanyID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			s.logger.Error("查询企业失败", zap.String("company_id", it.CompanyID), zap.Error(err))
			return nil, err
		}
		result = append(result, *toCompanyResponse(c))
	}
	return result, nil
}

func toInterestResponse(it *model.Interest) *dto.InterestResponse {
	return &dto.InterestResponse{
		ID:        it.ID,
		CompanyID: it.CompanyID,
		CreatedAt: dto.FormatTime(it.CreatedAt),
	}
}
