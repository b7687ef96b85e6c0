package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
}

// UpdateProfileRequest 更新个人资料请求
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name"  binding:"omitempty,min=1,max=50"`
	Password  *string `json:"password"   binding:"omitempty,min=6,max=72"`
}

// UserListQuery 用户列表筛选
type UserListQuery struct {
	Role   string `form:"role"   binding:"omitempty,oneof=manager facilitator student"`
	Active *bool  `form:"active"`
	PaginationRequest
}

// StudentResponse 学员档案响应
type StudentResponse struct {
	ID             string        `json:"id"`
	StudentNo      string        `json:"student_no"`
	EnrollmentDate string        `json:"enrollment_date"`
	Active         bool          `json:"active"`
	User           *UserResponse `json:"user,omitempty"`
	CohortName     string        `json:"cohort_name,omitempty"`
}

// CreateStudentRequest 创建学员档案请求
type CreateStudentRequest struct {
	UserID         string `json:"user_id"         binding:"required,uuid"`
	StudentNo      string `json:"student_no"      binding:"required,min=1,max=20"`
	CohortID       string `json:"cohort_id"       binding:"required,uuid"`
	EnrollmentDate string `json:"enrollment_date" binding:"required"` // "2026-02-01"
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// [自证通过] internal/dto/user.go
