package model

import "time"

// Student 学员档案表 — 对应 students
// 与 users 1:1 扩展（仅 role=student 的用户拥有），非子类型继承
type Student struct {
	ID             string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	StudentNo      string    `gorm:"type:varchar(20);not null;uniqueIndex"          json:"student_no"`
	CohortID       string    `gorm:"type:uuid;not null"                             json:"cohort_id"`
	EnrollmentDate time.Time `gorm:"type:date;not null"                             json:"enrollment_date"`
	Active         bool      `gorm:"not null;default:true"                          json:"active"`
	BaseModel

	// 关联
	User   *User   `gorm:"foreignKey:UserID;references:UserID"     json:"user,omitempty"`
	Cohort *Cohort `gorm:"foreignKey:CohortID;references:CohortID" json:"cohort,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
