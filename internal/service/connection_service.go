package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fasttrack/internal/dto"
	"fasttrack/internal/model"
	"fasttrack/internal/repository"
	"fasttrack/pkg/metrics"
)

// ── 连接模块业务错误 ──

var (
	ErrConnectionNotFound     = errors.New("连接不存在")
	ErrConnectionForbidden    = errors.New("无权操作该连接")
	ErrConnectionNotPending   = errors.New("连接已处理，不能重复操作")
	ErrConnectionExists       = errors.New("本场招聘会中已存在该连接")
	ErrConnectionInvalidInput = errors.New("连接参数不完整")
	ErrStudentProfileRequired = errors.New("请先创建学生档案")
)

// ConnectionService 连接业务接口
// 状态仅由学生流转：pending → accepted | declined，终态不可再变
type ConnectionService interface {
	// Scan 企业扫描学生二维码发起连接
	Scan(ctx context.Context, companyUserID string, req *dto.ScanConnectionRequest) (*dto.ConnectionResponse, error)
	// Request 学生向企业发起连接
	Request(ctx context.Context, studentUserID string, req *dto.RequestConnectionRequest) (*dto.ConnectionResponse, error)
	Accept(ctx context.Context, id, studentUserID string, req *dto.RespondConnectionRequest) (*dto.ConnectionResponse, error)
	Decline(ctx context.Context, id, studentUserID string, req *dto.RespondConnectionRequest) (*dto.ConnectionResponse, error)
	// UpdateNotes 只写本方备注，不触碰主记录或对方备注
	UpdateNotes(ctx context.Context, id, callerID string, party model.Party, notes string) (*dto.ConnectionResponse, error)
	Get(ctx context.Context, id, callerID string) (*dto.ConnectionResponse, error)
	List(ctx context.Context, callerID, role string, req *dto.ConnectionListRequest) ([]dto.ConnectionResponse, error)
}

type connectionService struct {
	repo   *repository.Repository
	locker Locker
	logger *zap.Logger
}

// NewConnectionService 创建 ConnectionService 实例
func NewConnectionService(repo *repository.Repository, locker Locker, logger *zap.Logger) ConnectionService {
	return &connectionService{repo: repo, locker: locker, logger: logger}
}

// ────────────────────── Scan ──────────────────────

func (s *connectionService) Scan(ctx context.Context, companyUserID string, req *dto.ScanConnectionRequest) (*dto.ConnectionResponse, error) {
	fairID := strings.TrimSpace(req.CareerFairID)
	if fairID == "" {
		return nil, ErrConnectionInvalidInput
	}

	company, err := s.repo.Company.GetByOwner(ctx, companyUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyProfileRequired
		}
		s.logger.Error("查询企业失败", zap.String("owner_id", companyUserID), zap.Error(err))
		return nil, err
	}

	profile, err := resolveQRToken(ctx, s.repo, req.QRToken)
	if err != nil {
		if !errors.Is(err, ErrQRTokenNotFound) {
			s.logger.Error("解析二维码失败", zap.String("company_user_id", companyUserID), zap.Error(err))
		}
		return nil, err
	}

	conn := &model.Connection{
		StudentID:      profile.ID,
		CompanyID:      company.ID,
		StudentUserID:  profile.UserID,
		CompanyUserID:  companyUserID,
		CareerFairID:   fairID,
		ConnectionType: model.ConnectionCompanyInitiated,
	}
	return s.create(ctx, conn, model.PartyCompany, req.Notes)
}

// ────────────────────── Request ──────────────────────

func (s *connectionService) Request(ctx context.Context, studentUserID string, req *dto.RequestConnectionRequest) (*dto.ConnectionResponse, error) {
	fairID := strings.TrimSpace(req.CareerFairID)
	companyID := strings.TrimSpace(req.CompanyID)
	if fairID == "" || companyID == "" {
		return nil, ErrConnectionInvalidInput
	}

	profile, err := s.repo.StudentProfile.GetByUserID(ctx, studentUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentProfileRequired
		}
		s.logger.Error("查询学生档案失败", zap.String("user_id", studentUserID), zap.Error(err))
		return nil, err
	}

	company, err := s.repo.Company.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询企业失败", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	conn := &model.Connection{
		StudentID:      profile.ID,
		CompanyID:      company.ID,
		StudentUserID:  studentUserID,
		CompanyUserID:  company.UserID,
		CareerFairID:   fairID,
		ConnectionType: model.ConnectionStudentInitiated,
	}
	return s.create(ctx, conn, model.PartyStudent, req.Notes)
}

// ────────────────────── Accept / Decline ──────────────────────

func (s *connectionService) Accept(ctx context.Context, id, studentUserID string, req *dto.RespondConnectionRequest) (*dto.ConnectionResponse, error) {
	return s.transition(ctx, id, studentUserID, model.ConnectionAccepted, req)
}

func (s *connectionService) Decline(ctx context.Context, id, studentUserID string, req *dto.RespondConnectionRequest) (*dto.ConnectionResponse, error) {
	return s.transition(ctx, id, studentUserID, model.ConnectionDeclined, req)
}

func (s *connectionService) transition(ctx context.Context, id, studentUserID string, to model.ConnectionStatus, req *dto.RespondConnectionRequest) (*dto.ConnectionResponse, error) {
	var conn *model.Connection
	err := withLock(ctx, s.locker, "lock:connection:"+id, func() error {
		var err error
		conn, err = s.load(ctx, id)
		if err != nil {
			return err
		}
		if conn.StudentUserID != studentUserID {
			return ErrConnectionForbidden
		}
		if !conn.Status.CanTransition(to) {
			return ErrConnectionNotPending
		}

		now := time.Now()
		var prev *model.ConnectionNotes
		notesWritten := false
		if req != nil && req.Notes != nil {
			prev, err = s.getNotes(ctx, id, model.PartyStudent)
			if err != nil {
				return err
			}
			if err := s.repo.Connection.SaveNotes(ctx, &model.ConnectionNotes{
				ConnectionID: id,
				Party:        model.PartyStudent,
				Notes:        *req.Notes,
				UpdatedBy:    studentUserID,
				UpdatedAt:    now,
			}); err != nil {
				s.logger.Error("写入学生备注失败", zap.String("connection_id", id), zap.Error(err))
				return err
			}
			notesWritten = true
		}

		conn.Status = to
		conn.UpdatedAt = now
		if err := s.repo.Connection.Save(ctx, conn); err != nil {
			s.logger.Error("更新连接状态失败", zap.String("connection_id", id), zap.String("status", string(to)), zap.Error(err))
			if notesWritten {
				s.restoreNotes(ctx, id, prev)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ConnectionEvent(string(to))
	s.logger.Info("连接状态变更", zap.String("connection_id", id), zap.String("status", string(to)))
	return s.buildResponse(ctx, conn)
}

// ────────────────────── UpdateNotes ──────────────────────

func (s *connectionService) UpdateNotes(ctx context.Context, id, callerID string, party model.Party, notes string) (*dto.ConnectionResponse, error) {
	conn, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if conn.PartyUserID(party) != callerID {
		return nil, ErrConnectionForbidden
	}

	if err := s.repo.Connection.SaveNotes(ctx, &model.ConnectionNotes{
		ConnectionID: id,
		Party:        party,
		Notes:        notes,
		UpdatedBy:    callerID,
		UpdatedAt:    time.Now(),
	}); err != nil {
		s.logger.Error("写入备注失败", zap.String("connection_id", id), zap.String("party", string(party)), zap.Error(err))
		return nil, err
	}
	return s.buildResponse(ctx, conn)
}

// ────────────────────── Get ──────────────────────

func (s *connectionService) Get(ctx context.Context, id, callerID string) (*dto.ConnectionResponse, error) {
	conn, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if conn.StudentUserID != callerID && conn.CompanyUserID != callerID {
		return nil, ErrConnectionForbidden
	}
	return s.buildResponse(ctx, conn)
}

// ────────────────────── List ──────────────────────

func (s *connectionService) List(ctx context.Context, callerID, role string, req *dto.ConnectionListRequest) ([]dto.ConnectionResponse, error) {
	party := model.PartyStudent
	if role == model.RoleCompany {
		party = model.PartyCompany
	}

	ids, err := s.repo.Connection.ListIDs(ctx, party, callerID)
	if err != nil {
		s.logger.Error("列出连接失败", zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}

	conns := make([]*model.Connection, 0, len(ids))
	for _, id := range ids {
		conn, err := s.repo.Connection.Get(ctx, id)
		if err != nil {
			// 索引悬空：创建中途失败遗留，跳过
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			s.logger.Error("查询连接失败", zap.String("connection_id", id), zap.Error(err))
			return nil, err
		}
		if req != nil && req.CareerFairID != "" && conn.CareerFairID != req.CareerFairID {
			continue
		}
		if req != nil && req.Status != "" && string(conn.Status) != req.Status {
			continue
		}
		conns = append(conns, conn)
	}

	sort.SliceStable(conns, func(i, j int) bool {
		return conns[i].ConnectionTimestamp.After(conns[j].ConnectionTimestamp)
	})

	result := make([]dto.ConnectionResponse, 0, len(conns))
	for _, conn := range conns {
		r, err := s.buildResponse(ctx, conn)
		if err != nil {
			return nil, err
		}
		result = append(result, *r)
	}
	return result, nil
}

// ── 内部辅助方法 ──

// create 在 (招聘会, 学生, 企业账号) 锁内写入主记录、发起方备注、列表索引与唯一性索引
func (s *connectionService) create(ctx context.Context, conn *model.Connection, initiator model.Party, notes string) (*dto.ConnectionResponse, error) {
	lockKey := "lock:connection_pair:" + conn.CareerFairID + ":" + conn.StudentUserID + ":" + conn.CompanyUserID
	err := withLock(ctx, s.locker, lockKey, func() error {
		if existingID, err := s.repo.Connection.GetPair(ctx, conn.CareerFairID, conn.StudentUserID, conn.CompanyUserID); err == nil {
			if _, err := s.repo.Connection.Get(ctx, existingID); err == nil {
				return ErrConnectionExists
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			// 唯一性索引指向已不存在的记录，允许重新创建
		} else if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("查询连接唯一性索引失败", zap.String("career_fair_id", conn.CareerFairID), zap.Error(err))
			return err
		}

		now := time.Now()
		conn.ID = uuid.NewString()
		conn.Status = model.ConnectionPending
		conn.ConnectionTimestamp = now
		conn.CreatedAt = now
		conn.UpdatedAt = now

		if err := s.repo.Connection.Save(ctx, conn); err != nil {
			s.logger.Error("创建连接失败", zap.String("career_fair_id", conn.CareerFairID), zap.Error(err))
			return err
		}
		if notes != "" {
			if err := s.repo.Connection.SaveNotes(ctx, &model.ConnectionNotes{
				ConnectionID: conn.ID,
				Party:        initiator,
				Notes:        notes,
				UpdatedBy:    conn.PartyUserID(initiator),
				UpdatedAt:    now,
			}); err != nil {
				s.logger.Error("写入连接备注失败", zap.String("connection_id", conn.ID), zap.Error(err))
				s.rollbackCreate(ctx, conn)
				return err
			}
		}
		if err := s.repo.Connection.PutIndexes(ctx, conn); err != nil {
			s.logger.Error("写入连接索引失败", zap.String("connection_id", conn.ID), zap.Error(err))
			s.rollbackCreate(ctx, conn)
			return err
		}
		if err := s.repo.Connection.PutPair(ctx, conn); err != nil {
			s.logger.Error("写入连接唯一性索引失败", zap.String("connection_id", conn.ID), zap.Error(err))
			s.rollbackCreate(ctx, conn)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ConnectionEvent("created")
	s.logger.Info("连接已创建",
		zap.String("connection_id", conn.ID),
		zap.String("connection_type", string(conn.ConnectionType)),
		zap.String("career_fair_id", conn.CareerFairID),
	)
	return s.buildResponse(ctx, conn)
}

// rollbackCreate 尽力清理，失败只记日志
func (s *connectionService) rollbackCreate(ctx context.Context, conn *model.Connection) {
	if err := s.repo.Connection.DeleteIndexes(ctx, conn); err != nil {
		s.logger.Warn("清理连接索引失败", zap.String("connection_id", conn.ID), zap.Error(err))
	}
	for _, p := range []model.Party{model.PartyCompany, model.PartyStudent} {
		if err := s.repo.Connection.DeleteNotes(ctx, conn.ID, p); err != nil {
			s.logger.Warn("清理连接备注失败", zap.String("connection_id", conn.ID), zap.Error(err))
		}
	}
	if err := s.repo.Connection.Delete(ctx, conn.ID); err != nil {
		s.logger.Warn("清理连接主记录失败", zap.String("connection_id", conn.ID), zap.Error(err))
	}
}

func (s *connectionService) restoreNotes(ctx context.Context, id string, prev *model.ConnectionNotes) {
	var err error
	if prev != nil {
		err = s.repo.Connection.SaveNotes(ctx, prev)
	} else {
		err = s.repo.Connection.DeleteNotes(ctx, id, model.PartyStudent)
	}
	if err != nil {
		s.logger.Warn("恢复学生备注失败", zap.String("connection_id", id), zap.Error(err))
	}
}

func (s *connectionService) load(ctx context.Context, id string) (*model.Connection, error) {
	conn, err := s.repo.Connection.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConnectionNotFound
		}
		s.logger.Error("查询连接失败", zap.String("connection_id", id), zap.Error(err))
		return nil, err
	}
	return conn, nil
}

// getNotes 未写过备注时返回 nil
func (s *connectionService) getNotes(ctx context.Context, id string, party model.Party) (*model.ConnectionNotes, error) {
	n, err := s.repo.Connection.GetNotes(ctx, id, party)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("查询连接备注失败", zap.String("connection_id", id), zap.String("party", string(party)), zap.Error(err))
		return nil, err
	}
	return n, nil
}

// buildResponse 合并主记录与双方备注，姓名与企业名查询失败时留空
func (s *connectionService) buildResponse(ctx context.Context, conn *model.Connection) (*dto.ConnectionResponse, error) {
	companyNotes, err := s.getNotes(ctx, conn.ID, model.PartyCompany)
	if err != nil {
		return nil, err
	}
	studentNotes, err := s.getNotes(ctx, conn.ID, model.PartyStudent)
	if err != nil {
		return nil, err
	}

	r := toConnectionResponse(conn, companyNotes, studentNotes)
	if u, err := s.repo.User.GetByID(ctx, conn.StudentUserID); err == nil {
		r.StudentName = u.Name
	}
	if c, err := s.repo.Company.GetByID(ctx, conn.CompanyID); err == nil {
		r.CompanyName = c.Name
	}
	return r, nil
}

func toConnectionResponse(conn *model.Connection, companyNotes, studentNotes *model.ConnectionNotes) *dto.ConnectionResponse {
	updated := conn.UpdatedAt
	r := &dto.ConnectionResponse{
		ID:                  conn.ID,
		StudentID:           conn.StudentID,
		CompanyID:           conn.CompanyID,
		StudentUserID:       conn.StudentUserID,
		CompanyUserID:       conn.CompanyUserID,
		CareerFairID:        conn.CareerFairID,
		Status:              string(conn.Status),
		ConnectionType:      string(conn.ConnectionType),
		ConnectionTimestamp: dto.FormatTime(conn.ConnectionTimestamp),
		CreatedAt:           dto.FormatTime(conn.CreatedAt),
	}
	if companyNotes != nil {
		r.CompanyNotes = companyNotes.Notes
		if companyNotes.UpdatedAt.After(updated) {
			updated = companyNotes.UpdatedAt
		}
	}
	if studentNotes != nil {
		r.StudentNotes = studentNotes.Notes
		if studentNotes.UpdatedAt.After(updated) {
			updated = studentNotes.UpdatedAt
		}
	}
	r.UpdatedAt = dto.FormatTime(updated)
	return r
}
