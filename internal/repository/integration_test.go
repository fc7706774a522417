//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fasttrack/internal/model"
	"fasttrack/internal/repository"
	"fasttrack/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("fasttrack_test"),
		postgres.WithUsername("fasttrack"),
		postgres.WithPassword("fasttrack"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法启动 PostgreSQL 容器: %v\n", err)
		os.Exit(1)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "获取连接串失败: %v\n", err)
		os.Exit(1)
	}

	testDB, err = gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pg.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, _ := testDB.DB()
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		_ = pg.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "执行迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	_ = pg.Terminate(context.Background())
	os.Exit(code)
}

func resetStore(t *testing.T) {
	t.Helper()
	if err := testDB.Exec("TRUNCATE kv_store").Error; err != nil {
		t.Fatalf("清空 kv_store 失败: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Store contract on PostgreSQL
// ═══════════════════════════════════════════════════════════

func TestGormStore_Postgres(t *testing.T) {
	resetStore(t)
	runStoreContract(t, repository.NewGormStore(testDB))
}

// ═══════════════════════════════════════════════════════════
// Test: JSONB round trip
// ═══════════════════════════════════════════════════════════

func TestCompanyRepo_Postgres_RoundTrip(t *testing.T) {
	resetStore(t)
	repo := repository.NewRepository(repository.NewGormStore(testDB))
	ctx := context.Background()

	c := &model.Company{
		ID: "c1", UserID: "u1", Name: "Acme", Industry: "Mining",
		Positions:   []string{"Engineer"},
		SalaryRange: &model.SalaryRange{Min: 1000, Max: 2000, Currency: "ZAR"},
	}
	c.Normalize()
	if err := repo.Company.Save(ctx, c); err != nil {
		t.Fatalf("Save 失败: %v", err)
	}

	got, err := repo.Company.GetByID(ctx, "c1")
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.SalaryRange == nil || got.SalaryRange.Currency != "ZAR" {
		t.Errorf("SalaryRange 未正确往返: %+v", got.SalaryRange)
	}
	if len(got.Positions) != 1 || got.Positions[0] != "Engineer" {
		t.Errorf("Positions 未正确往返: %v", got.Positions)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Rollback
// ═══════════════════════════════════════════════════════════

func TestRollbackMigrations(t *testing.T) {
	sqlDB, _ := testDB.DB()
	if err := database.RollbackMigrations(sqlDB, 1, zap.NewNop()); err != nil {
		t.Fatalf("回滚失败: %v", err)
	}
	if testDB.Migrator().HasTable("kv_store") {
		t.Error("回滚后 kv_store 不应存在")
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		t.Fatalf("重新迁移失败: %v", err)
	}
}
