package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fasttrack/internal/dto"
	"fasttrack/internal/service"
	"fasttrack/pkg/response"
)

// CompanyHandler 企业模块 HTTP 处理器
type CompanyHandler struct {
	companySvc service.CompanyService
}

// NewCompanyHandler 创建 CompanyHandler
func NewCompanyHandler(companySvc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

// List 企业列表，q 按名称、行业或职位模糊匹配
// GET /api/v1/companies?q=xxx
func (h *CompanyHandler) List(c *gin.Context) {
	var req dto.CompanyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	list, err := h.companySvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// Get 企业详情
// GET /api/v1/companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, company)
}

// GetMine 当前企业账号的档案
// GET /api/v1/companies/me
func (h *CompanyHandler) GetMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	company, err := h.companySvc.GetMine(c.Request.Context(), userID)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, company)
}

// Create 创建企业档案
// POST /api/v1/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	company, err := h.companySvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.Created(c, company)
}

// Update 更新企业档案，仅限所属账号
// PUT /api/v1/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	company, err := h.companySvc.Update(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, company)
}

// Insights 企业洞察统计，仅限所属账号
// GET /api/v1/companies/:id/insights
func (h *CompanyHandler) Insights(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	insights, err := h.companySvc.Insights(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, insights)
}

func (h *CompanyHandler) handleCompanyError(c *gin.Context, err error) {
	if !writeCompanyError(c, err) {
		handleCommonError(c, err)
	}
}

// writeCompanyError 企业相关错误，未识别时返回 false
func writeCompanyError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		response.NotFound(c, 13001, "企业不存在")
	case errors.Is(err, service.ErrCompanyExists):
		response.Conflict(c, 13002, "该账号已创建企业档案")
	case errors.Is(err, service.ErrCompanyForbidden):
		response.Forbidden(c, 13003, "只能操作本企业的档案")
	case errors.Is(err, service.ErrCompanyProfileRequired):
		response.NotFound(c, 13004, "请先创建企业档案")
	default:
		return false
	}
	return true
}
