package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fasttrack/internal/api/middleware"
	pkgerrors "fasttrack/pkg/errors"
	"fasttrack/pkg/metrics"
	"fasttrack/pkg/observability"
	"fasttrack/pkg/response"
)

// handleCommonError 各模块未识别的错误统一在此映射
func handleCommonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10006, "资源繁忙，请稍后重试")
	case errors.Is(err, pkgerrors.ErrStore):
		metrics.StoreErrors.Inc()
		observability.CaptureErr(err, errorTags(c))
		response.ServiceUnavailable(c)
	default:
		observability.CaptureErr(err, errorTags(c))
		response.InternalError(c)
	}
}

// errorTags 错误上报附带的请求标签
func errorTags(c *gin.Context) map[string]string {
	return map[string]string{
		"request_id": c.GetString(middleware.CtxRequestID),
		"user_id":    c.GetString(middleware.CtxUserID),
		"role":       c.GetString(middleware.CtxRole),
		"route":      c.FullPath(),
	}
}
