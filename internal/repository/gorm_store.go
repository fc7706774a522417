package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fasttrack/internal/model"
)

// gormStore 基于 kv_store 表的 Store 实现（PostgreSQL / SQLite）
type gormStore struct {
	db *gorm.DB
}

// NewGormStore 创建 GORM 键值存储
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// AutoMigrateStore SQLite 等无 SQL 迁移的驱动使用
func AutoMigrateStore(db *gorm.DB) error {
	return db.AutoMigrate(&model.KVRecord{})
}

func (s *gormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var recs []model.KVRecord
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Limit(1).
		Find(&recs).Error
	if err != nil {
		return nil, false, storeErr("get", key, err)
	}
	if len(recs) == 0 {
		return nil, false, nil
	}
	return []byte(recs[0].Value), true, nil
}

func (s *gormStore) Set(ctx context.Context, key string, value []byte) error {
	rec := model.KVRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return storeErr("set", key, err)
	}
	return nil
}

func (s *gormStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.KVRecord{}).Error
	if err != nil {
		return storeErr("delete", key, err)
	}
	return nil
}

func (s *gormStore) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	var recs []model.KVRecord
	err := s.db.WithContext(ctx).
		Where(`key LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Order("key ASC").
		Find(&recs).Error
	if err != nil {
		return nil, storeErr("list", prefix, err)
	}

	// SQLite 的 LIKE 对 ASCII 不区分大小写，这里再精确过滤一次
	out := make([]Entry, 0, len(recs))
	for _, r := range recs {
		if strings.HasPrefix(r.Key, prefix) {
			out = append(out, Entry{Key: r.Key, Value: []byte(r.Value)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
