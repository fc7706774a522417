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
	"fasttrack/pkg/metrics"
)

// ── 企业分级模块业务错误 ──

var (
	ErrInvalidTier         = model.ErrInvalidTier
	ErrPreferenceNoCompany = errors.New("company_id 不能为空")
)

// PreferenceService 学生私有企业分级，所有操作以 studentUserID 为作用域
// 不校验企业是否存在
type PreferenceService interface {
	// SetTier tier 为 TierNone 时删除记录；notes 为 nil 保留原备注
	SetTier(ctx context.Context, studentUserID, companyID string, tier model.Tier, notes *string) (*dto.PreferenceResponse, error)
	// GetTier 未分级时返回 Tier=nil，不视为错误
	GetTier(ctx context.Context, studentUserID, companyID string) (*dto.PreferenceResponse, error)
	// ListByTier 按首次分级顺序返回
	ListByTier(ctx context.Context, studentUserID string, tier model.Tier) ([]dto.PreferenceResponse, error)
	ListGrouped(ctx context.Context, studentUserID string) (*dto.PreferenceGroupsResponse, error)
	Counts(ctx context.Context, studentUserID string) (*dto.TierStatsResponse, error)
}

type preferenceService struct {
	repo   *repository.Repository
	locker Locker
	logger *zap.Logger
}

// NewPreferenceService 创建 PreferenceService 实例
func NewPreferenceService(repo *repository.Repository, locker Locker, logger *zap.Logger) PreferenceService {
	return &preferenceService{repo: repo, locker: locker, logger: logger}
}

// ────────────────────── SetTier ──────────────────────

func (s *preferenceService) SetTier(ctx context.Context, studentUserID, companyID string, tier model.Tier, notes *string) (*dto.PreferenceResponse, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, ErrPreferenceNoCompany
	}
	if tier != model.TierNone && !tier.Valid() {
		return nil, ErrInvalidTier
	}

	var result *dto.PreferenceResponse
	err := withLock(ctx, s.locker, "lock:preference:"+studentUserID, func() error {
		existing, err := s.repo.Preference.Get(ctx, studentUserID, companyID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("查询分级失败", zap.String("student_user_id", studentUserID), zap.String("company_id", companyID), zap.Error(err))
			return err
		}
		if err != nil {
			existing = nil
		}

		// 取消分级：稀疏存储，直接删除
		if tier == model.TierNone {
			if existing != nil {
				if err := s.repo.Preference.Delete(ctx, studentUserID, companyID); err != nil {
					s.logger.Error("删除分级失败", zap.String("student_user_id", studentUserID), zap.String("company_id", companyID), zap.Error(err))
					return err
				}
				metrics.TierAssigned("")
			}
			result = &dto.PreferenceResponse{CompanyID: companyID}
			return nil
		}

		now := time.Now()
		if existing != nil {
			if existing.Tier == tier && (notes == nil || *notes == existing.Notes) {
				result = toPreferenceResponse(existing)
				return nil
			}
			existing.Tier = tier
			if notes != nil {
				existing.Notes = *notes
			}
			existing.UpdatedAt = now
			if err := s.repo.Preference.Save(ctx, existing); err != nil {
				s.logger.Error("更新分级失败", zap.String("student_user_id", studentUserID), zap.String("company_id", companyID), zap.Error(err))
				return err
			}
			metrics.TierAssigned(string(tier))
			result = toPreferenceResponse(existing)
			return nil
		}

		position, err := s.nextPosition(ctx, studentUserID)
		if err != nil {
			return err
		}
		pref := &model.CompanyPreference{
			ID:            uuid.NewString(),
			StudentUserID: studentUserID,
			CompanyID:     companyID,
			Tier:          tier,
			Position:      position,
			BaseModel:     model.BaseModel{CreatedAt: now, UpdatedAt: now},
		}
		if notes != nil {
			pref.Notes = *notes
		}
		if err := s.repo.Preference.Save(ctx, pref); err != nil {
			s.logger.Error("创建分级失败", zap.String("student_user_id", studentUserID), zap.String("company_id", companyID), zap.Error(err))
			return err
		}
		metrics.TierAssigned(string(tier))
		result = toPreferenceResponse(pref)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ────────────────────── GetTier ──────────────────────

func (s *preferenceService) GetTier(ctx context.Context, studentUserID, companyID string) (*dto.PreferenceResponse, error) {
	pref, err := s.repo.Preference.Get(ctx, studentUserID, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &dto.PreferenceResponse{CompanyID: companyID}, nil
		}
		s.logger.Error("查询分级失败", zap.String("student_user_id", studentUserID), zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	return toPreferenceResponse(pref), nil
}

// ────────────────────── ListByTier ──────────────────────

func (s *preferenceService) ListByTier(ctx context.Context, studentUserID string, tier model.Tier) ([]dto.PreferenceResponse, error) {
	if !tier.Valid() {
		return nil, ErrInvalidTier
	}
	prefs, err := s.list(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.PreferenceResponse, 0)
	for i := range prefs {
		if prefs[i].Tier == tier {
			result = append(result, *toPreferenceResponse(&prefs[i]))
		}
	}
	return result, nil
}

// ────────────────────── ListGrouped ──────────────────────

func (s *preferenceService) ListGrouped(ctx context.Context, studentUserID string) (*dto.PreferenceGroupsResponse, error) {
	prefs, err := s.list(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	groups := &dto.PreferenceGroupsResponse{
		A: []dto.PreferenceResponse{},
		B: []dto.PreferenceResponse{},
		C: []dto.PreferenceResponse{},
	}
	for i := range prefs {
		r := *toPreferenceResponse(&prefs[i])
		switch prefs[i].Tier {
		case model.TierA:
			groups.A = append(groups.A, r)
		case model.TierB:
			groups.B = append(groups.B, r)
		case model.TierC:
			groups.C = append(groups.C, r)
		}
	}
	return groups, nil
}

// ────────────────────── Counts ──────────────────────

func (s *preferenceService) Counts(ctx context.Context, studentUserID string) (*dto.TierStatsResponse, error) {
	prefs, err := s.list(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	stats := &dto.TierStatsResponse{Focus: make(map[string]int, len(model.TierFocus))}
	for t, pct := range model.TierFocus {
		stats.Focus[string(t)] = pct
	}
	for _, p := range prefs {
		switch p.Tier {
		case model.TierA:
			stats.A++
		case model.TierB:
			stats.B++
		case model.TierC:
			stats.C++
		default:
			continue
		}
		stats.Total++
	}
	return stats, nil
}

// ── 内部辅助方法 ──

func (s *preferenceService) list(ctx context.Context, studentUserID string) ([]model.CompanyPreference, error) {
	prefs, err := s.repo.Preference.ListByStudent(ctx, studentUserID)
	if err != nil {
		s.logger.Error("列出分级失败", zap.String("student_user_id", studentUserID), zap.Error(err))
		return nil, err
	}
	return prefs, nil
}

func (s *preferenceService) nextPosition(ctx context.Context, studentUserID string) (int64, error) {
	prefs, err := s.list(ctx, studentUserID)
	if err != nil {
		return 0, err
	}
	var max int64
	for _, p := range prefs {
		if p.Position > max {
			max = p.Position
		}
	}
	return max + 1, nil
}

func toPreferenceResponse(p *model.CompanyPreference) *dto.PreferenceResponse {
	r := &dto.PreferenceResponse{
		CompanyID: p.CompanyID,
		Notes:     p.Notes,
		Position:  p.Position,
		CreatedAt: dto.FormatTime(p.CreatedAt),
		UpdatedAt: dto.FormatTime(p.UpdatedAt),
	}
	if p.Tier.Valid() {
		t := string(p.Tier)
		r.Tier = &t
	}
	return r
}
