package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fasttrack/internal/dto"
	"fasttrack/internal/service"
	"fasttrack/pkg/response"
)

// InterestHandler 关注企业 HTTP 处理器
type InterestHandler struct {
	interestSvc service.InterestService
}

// NewInterestHandler 创建 InterestHandler
func NewInterestHandler(interestSvc service.InterestService) *InterestHandler {
	return &InterestHandler{interestSvc: interestSvc}
}

// Add 关注企业，重复关注返回已有记录
// POST /api/v1/interests
func (h *InterestHandler) Add(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	interest, err := h.interestSvc.Add(c.Request.Context(), userID, req.CompanyID)
	if err != nil {
		h.handleInterestError(c, err)
		return
	}

	response.Created(c, interest)
}

// Remove 取消关注
// DELETE /api/v1/interests/:company_id
func (h *InterestHandler) Remove(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.interestSvc.Remove(c.Request.Context(), userID, c.Param("company_id")); err != nil {
		h.handleInterestError(c, err)
		return
	}

	response.OK(c, nil)
}

// List 关注列表，expand=companies 时返回企业详情
// GET /api/v1/interests?expand=companies
func (h *InterestHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.InterestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	if req.Expand == "companies" {
		companies, err := h.interestSvc.ListCompanies(c.Request.Context(), userID)
		if err != nil {
			h.handleInterestError(c, err)
			return
		}
		response.OKList(c, companies, len(companies))
		return
	}

	list, err := h.interestSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.handleInterestError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

func (h *InterestHandler) handleInterestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInterestInvalidInput):
		response.BadRequest(c, 16001, "company_id 不能为空")
	case errors.Is(err, service.ErrCompanyNotFound):
		response.NotFound(c, 13001, "企业不存在")
	default:
		handleCommonError(c, err)
	}
}
