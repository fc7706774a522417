package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fasttrack/internal/dto"
	"fasttrack/internal/model"
	"fasttrack/internal/service"
	"fasttrack/pkg/response"
)

// PreferenceHandler 企业分级 HTTP 处理器，仅学生可用
type PreferenceHandler struct {
	prefSvc service.PreferenceService
}

// NewPreferenceHandler 创建 PreferenceHandler
func NewPreferenceHandler(prefSvc service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefSvc: prefSvc}
}

// SetTier 设置或取消企业分级，tier 为 null 表示取消
// PUT /api/v1/preferences/:company_id
func (h *PreferenceHandler) SetTier(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}
	if !req.Tier.Set {
		response.BadRequest(c, 10001, "tier 字段必填，取消分级请传 null")
		return
	}

	tier := model.TierNone
	if req.Tier.Value != nil {
		parsed, err := model.ParseTier(*req.Tier.Value)
		if err != nil {
			h.handlePreferenceError(c, err)
			return
		}
		tier = parsed
	}

	pref, err := h.prefSvc.SetTier(c.Request.Context(), userID, c.Param("company_id"), tier, req.Notes)
	if err != nil {
		h.handlePreferenceError(c, err)
		return
	}

	response.OK(c, pref)
}

// GetTier 查询单个企业的分级，未分级时 tier 为 null
// GET /api/v1/preferences/:company_id
func (h *PreferenceHandler) GetTier(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	pref, err := h.prefSvc.GetTier(c.Request.Context(), userID, c.Param("company_id"))
	if err != nil {
		h.handlePreferenceError(c, err)
		return
	}

	response.OK(c, pref)
}

// List 指定 tier 时返回该分级列表，否则按分级分组
// GET /api/v1/preferences?tier=A
func (h *PreferenceHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PreferenceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "分级只能为 A、B、C")
		return
	}

	if req.Tier == "" {
		groups, err := h.prefSvc.ListGrouped(c.Request.Context(), userID)
		if err != nil {
			h.handlePreferenceError(c, err)
			return
		}
		response.OK(c, groups)
		return
	}

	list, err := h.prefSvc.ListByTier(c.Request.Context(), userID, model.Tier(req.Tier))
	if err != nil {
		h.handlePreferenceError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// Stats 各分级数量与建议精力分配
// GET /api/v1/preferences/stats
func (h *PreferenceHandler) Stats(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	stats, err := h.prefSvc.Counts(c.Request.Context(), userID)
	if err != nil {
		h.handlePreferenceError(c, err)
		return
	}

	response.OK(c, stats)
}

func (h *PreferenceHandler) handlePreferenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTier):
		response.BadRequest(c, 14001, "分级只能为 A、B、C 或 null")
	case errors.Is(err, service.ErrPreferenceNoCompany):
		response.BadRequest(c, 14002, "company_id 不能为空")
	default:
		handleCommonError(c, err)
	}
}
