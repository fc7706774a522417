package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"fasttrack/config"
	"fasttrack/internal/api/handler"
	"fasttrack/internal/api/middleware"
	"fasttrack/internal/model"
	"fasttrack/pkg/jwt"
	"fasttrack/pkg/metrics"
	"fasttrack/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎，rdb 可为 nil
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 避免 nil *redis.Client 装进接口后判空失效
	var blacklist middleware.TokenChecker
	var limiter middleware.RateLimiter
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	studentOnly := middleware.RoleAuth(model.RoleStudent)
	companyOnly := middleware.RoleAuth(model.RoleCompany)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，按 IP 限流）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(limiter, cfg.RateLimit.Limit, cfg.RateLimit.Window))
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 企业浏览（公开）
		v1.GET("/companies", h.Company.List)
		v1.GET("/companies/:id", h.Company.Get)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.PUT("/me", h.User.UpdateMe)
				users.PUT("/me/password", h.User.ChangePassword)
			}

			// 学生档案模块
			profile := authorized.Group("/student-profile", studentOnly)
			{
				profile.POST("", h.StudentProfile.Create)
				profile.GET("", h.StudentProfile.Get)
				profile.PUT("", h.StudentProfile.Update)
				profile.GET("/completion", h.StudentProfile.Completion)
				profile.GET("/qr-token", h.StudentProfile.GetQRToken)
				profile.POST("/qr-token", h.StudentProfile.RegenerateQRToken)
			}

			// 扫码预览
			authorized.GET("/connect/:token", companyOnly, h.StudentProfile.Preview)

			// 企业模块
			companies := authorized.Group("/companies")
			{
				companies.GET("/me", companyOnly, h.Company.GetMine)
				companies.POST("", companyOnly, h.Company.Create)
				companies.PUT("/:id", companyOnly, h.Company.Update) // 本企业校验在 Service 层
				companies.GET("/:id/insights", companyOnly, h.Company.Insights)
			}

			// 企业分级模块
			preferences := authorized.Group("/preferences", studentOnly)
			{
				preferences.GET("", h.Preference.List)
				preferences.GET("/stats", h.Preference.Stats)
				preferences.GET("/:company_id", h.Preference.GetTier)
				preferences.PUT("/:company_id", h.Preference.SetTier)
			}

			// 连接模块
			connections := authorized.Group("/connections")
			{
				connections.GET("", h.Connection.List)
				connections.GET("/:id", h.Connection.Get)
				connections.POST("/scan", companyOnly, h.Connection.Scan)
				connections.POST("/request", studentOnly, h.Connection.Request)
				connections.POST("/:id/accept", studentOnly, h.Connection.Accept)
				connections.POST("/:id/decline", studentOnly, h.Connection.Decline)
				connections.PUT("/:id/notes/company", companyOnly, h.Connection.UpdateCompanyNotes)
				connections.PUT("/:id/notes/student", studentOnly, h.Connection.UpdateStudentNotes)
			}

			// 关注模块
			interests := authorized.Group("/interests", studentOnly)
			{
				interests.GET("", h.Interest.List)
				interests.POST("", h.Interest.Add)
				interests.DELETE("/:company_id", h.Interest.Remove)
			}

			// 导出模块
			export := authorized.Group("/export", companyOnly)
			{
				export.GET("/connections", h.Export.ExportConnections)
				export.GET("/connections.ics", h.Export.ExportCalendar)
			}
		}
	}

	return r
}
