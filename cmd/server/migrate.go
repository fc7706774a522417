package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fasttrack/config"
	"fasttrack/pkg/database"
	applogger "fasttrack/pkg/logger"
)

var rollbackSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "PostgreSQL 数据库迁移",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "执行全部未应用的迁移",
	RunE: func(_ *cobra.Command, _ []string) error {
		return withSQLDB(func(db *sql.DB, logger *zap.Logger) error {
			return database.RunMigrations(db, logger)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "回滚指定步数的迁移",
	RunE: func(_ *cobra.Command, _ []string) error {
		if rollbackSteps <= 0 {
			return fmt.Errorf("--steps 必须大于 0")
		}
		return withSQLDB(func(db *sql.DB, logger *zap.Logger) error {
			return database.RollbackMigrations(db, rollbackSteps, logger)
		})
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&rollbackSteps, "steps", 1, "回滚步数")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

// withSQLDB 加载配置并连接 PostgreSQL，执行 fn 后关闭连接
func withSQLDB(fn func(db *sql.DB, logger *zap.Logger) error) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return fmt.Errorf("迁移仅支持 postgres 驱动，当前为 %s", cfg.Store.Driver)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer logger.Sync()

	gormDB, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	defer sqlDB.Close()

	return fn(sqlDB, logger)
}
