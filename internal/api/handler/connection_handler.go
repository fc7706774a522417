package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"fasttrack/internal/dto"
	"fasttrack/internal/model"
	"fasttrack/internal/service"
	"fasttrack/pkg/response"
)

// ConnectionHandler 连接模块 HTTP 处理器
type ConnectionHandler struct {
	connSvc service.ConnectionService
}

// NewConnectionHandler 创建 ConnectionHandler
func NewConnectionHandler(connSvc service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connSvc: connSvc}
}

// Scan 企业扫描学生二维码发起连接
// POST /api/v1/connections/scan
func (h *ConnectionHandler) Scan(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ScanConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	conn, err := h.connSvc.Scan(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleConnectionError(c, err)
		return
	}

	response.Created(c, conn)
}

// Request 学生向企业发起连接
// POST /api/v1/connections/request
func (h *ConnectionHandler) Request(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RequestConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	conn, err := h.connSvc.Request(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleConnectionError(c, err)
		return
	}

	response.Created(c, conn)
}

// Accept 学生接受连接
// POST /api/v1/connections/:id/accept
func (h *ConnectionHandler) Accept(c *gin.Context) {
	h.respond(c, h.connSvc.Accept)
}

// Decline 学生拒绝连接
// POST /api/v1/connections/:id/decline
func (h *ConnectionHandler) Decline(c *gin.Context) {
	h.respond(c, h.connSvc.Decline)
}

type respondFunc func(ctx context.Context, id, studentUserID string, req *dto.RespondConnectionRequest) (*dto.ConnectionResponse, error)

func (h *ConnectionHandler) respond(c *gin.Context, fn respondFunc) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RespondConnectionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.InvalidParams(c, err)
			return
		}
	}

	conn, err := fn(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		h.handleConnectionError(c, err)
		return
	}

	response.OK(c, conn)
}

// UpdateCompanyNotes 企业更新本方备注
// PUT /api/v1/connections/:id/notes/company
func (h *ConnectionHandler) UpdateCompanyNotes(c *gin.Context) {
	h.updateNotes(c, model.PartyCompany)
}

// UpdateStudentNotes 学生更新本方备注
// PUT /api/v1/connections/:id/notes/student
func (h *ConnectionHandler) UpdateStudentNotes(c *gin.Context) {
	h.updateNotes(c, model.PartyStudent)
}

func (h *ConnectionHandler) updateNotes(c *gin.Context, party model.Party) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	conn, err := h.connSvc.UpdateNotes(c.Request.Context(), c.Param("id"), userID, party, req.Notes)
	if err != nil {
		h.handleConnectionError(c, err)
		return
	}

	response.OK(c, conn)
}

// Get 连接详情，仅限连接双方
// GET /api/v1/connections/:id
func (h *ConnectionHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	conn, err := h.connSvc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleConnectionError(c, err)
		return
	}

	response.OK(c, conn)
}

// List 当前用户的连接列表，按角色选择学生侧或企业侧
// GET /api/v1/connections?career_fair_id=xxx&status=pending
func (h *ConnectionHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.ConnectionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	list, err := h.connSvc.List(c.Request.Context(), userID, role, &req)
	if err != nil {
		h.handleConnectionError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

func (h *ConnectionHandler) handleConnectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrConnectionNotFound):
		response.NotFound(c, 15001, "连接不存在")
	case errors.Is(err, service.ErrConnectionForbidden):
		response.Forbidden(c, 15002, "无权操作该连接")
	case errors.Is(err, service.ErrConnectionNotPending):
		response.Conflict(c, 15003, "连接已处理，不能重复操作")
	case errors.Is(err, service.ErrConnectionExists):
		response.Conflict(c, 15004, "本场招聘会中已存在该连接")
	case errors.Is(err, service.ErrConnectionInvalidInput):
		response.BadRequest(c, 15005, "连接参数不完整")
	case errors.Is(err, service.ErrStudentProfileRequired):
		response.NotFound(c, 15006, "请先创建学生档案")
	default:
		if !writeProfileError(c, err) && !writeCompanyError(c, err) {
			handleCommonError(c, err)
		}
	}
}
