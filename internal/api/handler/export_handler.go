package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"fasttrack/internal/dto"
	"fasttrack/internal/service"
	"fasttrack/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportConnections 导出当前企业的连接线索
// GET /api/v1/export/connections?career_fair_id=xxx
func (h *ExportHandler) ExportConnections(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ExportConnectionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportConnections(c.Request.Context(), userID, req.CareerFairID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	sendAttachment(c, filename, xlsxContentType, buf.Bytes())
}

// ExportCalendar 以 iCalendar 导出当前企业的连接，可导入日历应用
// GET /api/v1/export/connections.ics?career_fair_id=xxx
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ExportConnectionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	data, filename, err := h.exportSvc.ExportCalendar(c.Request.Context(), userID, req.CareerFairID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	sendAttachment(c, filename, icsContentType, data)
}

// sendAttachment 写入下载响应头与文件内容
func sendAttachment(c *gin.Context, filename, contentType string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoConnections):
		response.NotFound(c, 17001, "暂无可导出的连接")
	case errors.Is(err, service.ErrCompanyProfileRequired):
		response.NotFound(c, 13004, "请先创建企业档案")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 17002, "生成 Excel 文件失败")
	default:
		handleCommonError(c, err)
	}
}
