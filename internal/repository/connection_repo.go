package repository

import (
	"context"
	"strings"

	"fasttrack/internal/model"
)

// ConnectionRepository 连接记录数据访问接口
// 主记录、双方备注、索引分别存放于独立的键，写入互不覆盖
type ConnectionRepository interface {
	Get(ctx context.Context, id string) (*model.Connection, error)
	Save(ctx context.Context, conn *model.Connection) error
	Delete(ctx context.Context, id string) error

	GetNotes(ctx context.Context, id string, party model.Party) (*model.ConnectionNotes, error)
	SaveNotes(ctx context.Context, notes *model.ConnectionNotes) error
	DeleteNotes(ctx context.Context, id string, party model.Party) error

	// 唯一性索引：(career_fair_id, student_user_id, company_user_id) → id
	GetPair(ctx context.Context, careerFairID, studentUserID, companyUserID string) (string, error)
	PutPair(ctx context.Context, conn *model.Connection) error

	// 双方列表索引
	PutIndexes(ctx context.Context, conn *model.Connection) error
	DeleteIndexes(ctx context.Context, conn *model.Connection) error
	ListIDs(ctx context.Context, party model.Party, userID string) ([]string, error)
}

type connectionRepo struct {
	store Store
}

// NewConnectionRepo 创建 ConnectionRepository 实例
func NewConnectionRepo(store Store) ConnectionRepository {
	return &connectionRepo{store: store}
}

func (r *connectionRepo) Get(ctx context.Context, id string) (*model.Connection, error) {
	return getJSON[model.Connection](ctx, r.store, connectionKey(id))
}

func (r *connectionRepo) Save(ctx context.Context, conn *model.Connection) error {
	return putJSON(ctx, r.store, connectionKey(conn.ID), conn)
}

func (r *connectionRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, connectionKey(id))
}

func (r *connectionRepo) GetNotes(ctx context.Context, id string, party model.Party) (*model.ConnectionNotes, error) {
	return getJSON[model.ConnectionNotes](ctx, r.store, connectionNotesKey(id, string(party)))
}

func (r *connectionRepo) SaveNotes(ctx context.Context, notes *model.ConnectionNotes) error {
	return putJSON(ctx, r.store, connectionNotesKey(notes.ConnectionID, string(notes.Party)), notes)
}

func (r *connectionRepo) DeleteNotes(ctx context.Context, id string, party model.Party) error {
	return r.store.Delete(ctx, connectionNotesKey(id, string(party)))
}

func (r *connectionRepo) GetPair(ctx context.Context, careerFairID, studentUserID, companyUserID string) (string, error) {
	return getRef(ctx, r.store, connectionPairKey(careerFairID, studentUserID, companyUserID))
}

func (r *connectionRepo) PutPair(ctx context.Context, conn *model.Connection) error {
	return putRef(ctx, r.store, connectionPairKey(conn.CareerFairID, conn.StudentUserID, conn.CompanyUserID), conn.ID)
}

func (r *connectionRepo) PutIndexes(ctx context.Context, conn *model.Connection) error {
	if err := putRef(ctx, r.store, connectionStudentPrefix(conn.StudentUserID)+conn.ID, conn.ID); err != nil {
		return err
	}
	return putRef(ctx, r.store, connectionCompanyPrefix(conn.CompanyUserID)+conn.ID, conn.ID)
}

func (r *connectionRepo) DeleteIndexes(ctx context.Context, conn *model.Connection) error {
	if err := r.store.Delete(ctx, connectionStudentPrefix(conn.StudentUserID)+conn.ID); err != nil {
		return err
	}
	return r.store.Delete(ctx, connectionCompanyPrefix(conn.CompanyUserID)+conn.ID)
}

func (r *connectionRepo) ListIDs(ctx context.Context, party model.Party, userID string) ([]string, error) {
	prefix := connectionStudentPrefix(userID)
	if party == model.PartyCompany {
		prefix = connectionCompanyPrefix(userID)
	}
	entries, err := r.store.ListByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, strings.TrimPrefix(e.Key, prefix))
	}
	return ids, nil
}

// [自证通过] internal/repository/connection_repo.go
