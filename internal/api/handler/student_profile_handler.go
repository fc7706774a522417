package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fasttrack/internal/dto"
	"fasttrack/internal/service"
	"fasttrack/pkg/response"
)

// StudentProfileHandler 学生档案 HTTP 处理器
type StudentProfileHandler struct {
	profileSvc service.StudentProfileService
}

// NewStudentProfileHandler 创建 StudentProfileHandler
func NewStudentProfileHandler(profileSvc service.StudentProfileService) *StudentProfileHandler {
	return &StudentProfileHandler{profileSvc: profileSvc}
}

// Create 创建当前学生的档案
// POST /api/v1/student-profile
func (h *StudentProfileHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateStudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	profile, err := h.profileSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.Created(c, profile)
}

// Get 获取当前学生的档案
// GET /api/v1/student-profile
func (h *StudentProfileHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileSvc.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, profile)
}

// Update 部分更新当前学生的档案
// PUT /api/v1/student-profile
func (h *StudentProfileHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	profile, err := h.profileSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, profile)
}

// Completion 档案完成度
// GET /api/v1/student-profile/completion
func (h *StudentProfileHandler) Completion(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.profileSvc.Completion(c.Request.Context(), userID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, result)
}

// GetQRToken 获取当前二维码令牌
// GET /api/v1/student-profile/qr-token
func (h *StudentProfileHandler) GetQRToken(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.profileSvc.GetQRToken(c.Request.Context(), userID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, result)
}

// RegenerateQRToken 重新生成二维码令牌
// POST /api/v1/student-profile/qr-token
func (h *StudentProfileHandler) RegenerateQRToken(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.profileSvc.RegenerateQRToken(c.Request.Context(), userID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, result)
}

// Preview 企业扫码预览学生
// GET /api/v1/connect/:token
func (h *StudentProfileHandler) Preview(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.BadRequest(c, 10001, "二维码令牌不能为空")
		return
	}

	preview, err := h.profileSvc.PreviewByToken(c.Request.Context(), token)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, preview)
}

func (h *StudentProfileHandler) handleProfileError(c *gin.Context, err error) {
	if !writeProfileError(c, err) {
		handleCommonError(c, err)
	}
}

// writeProfileError 学生档案相关错误，未识别时返回 false
func writeProfileError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrStudentProfileNotFound):
		response.NotFound(c, 12001, "学生档案不存在")
	case errors.Is(err, service.ErrStudentProfileExists):
		response.Conflict(c, 12002, "学生档案已存在")
	case errors.Is(err, service.ErrQRTokenNotFound):
		response.NotFound(c, 12003, "二维码无效或已失效")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11005, "用户不存在")
	default:
		return false
	}
	return true
}
