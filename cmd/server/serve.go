package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fasttrack/config"
	"fasttrack/internal/api/handler"
	"fasttrack/internal/api/router"
	"fasttrack/internal/repository"
	"fasttrack/internal/service"
	"fasttrack/pkg/database"
	"fasttrack/pkg/jwt"
	applogger "fasttrack/pkg/logger"
	"fasttrack/pkg/observability"
	"fasttrack/pkg/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE: func(_ *cobra.Command, _ []string) error {
		return serve()
	},
}

func serve() error {
	// 1. 加载配置
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 错误上报与链路追踪
	flushSentry, err := observability.InitSentry(&cfg.Sentry)
	if err != nil {
		logger.Warn("Sentry 初始化失败，错误上报不可用", zap.Error(err))
	}
	defer flushSentry()

	shutdownTracing, err := observability.InitTracing(context.Background(), &cfg.Tracing, cfg.Sentry.Environment, logger)
	if err != nil {
		logger.Warn("链路追踪初始化失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：非 redis 存储驱动下连接失败时降级运行）
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			if cfg.Store.Driver == config.StoreDriverRedis {
				return err
			}
			logger.Warn("Redis 连接失败，Token 黑名单与限流将不可用", zap.Error(err))
			rdb = nil
		}
	}

	// 5. 初始化存储
	store, db, err := openStore(cfg, rdb, logger)
	if err != nil {
		return err
	}

	// 6. 依赖注入: Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(store)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("HTTP 服务器异常", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("链路追踪关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if db != nil {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
	return nil
}

// openStore 按 store.driver 打开键值存储，gorm 类驱动同时返回 *gorm.DB 以便关闭
func openStore(cfg *config.Config, rdb *redis.Client, logger *zap.Logger) (repository.Store, *gorm.DB, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("数据库连接失败: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
		logger.Info("PostgreSQL 存储已就绪")
		return repository.NewGormStore(db), db, nil

	case config.StoreDriverSQLite:
		db, err := database.NewSQLite(cfg.Store.SQLitePath, cfg.Log.Level, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("打开 SQLite 失败: %w", err)
		}
		if err := repository.AutoMigrateStore(db); err != nil {
			return nil, nil, fmt.Errorf("SQLite 建表失败: %w", err)
		}
		logger.Info("SQLite 存储已就绪", zap.String("path", cfg.Store.SQLitePath))
		return repository.NewGormStore(db), db, nil

	case config.StoreDriverRedis:
		if rdb == nil {
			return nil, nil, fmt.Errorf("store.driver=redis 需要可用的 Redis 连接")
		}
		logger.Info("Redis 存储已就绪", zap.String("namespace", cfg.Store.Namespace))
		return repository.NewRedisStore(rdb, cfg.Store.Namespace), nil, nil

	default:
		logger.Warn("使用内存存储，进程退出后数据丢失")
		return repository.NewMemoryStore(), nil, nil
	}
}
