package model

import "time"

// Cohort 学员届别表 — 对应 cohorts
type Cohort struct {
	CohortID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"cohort_id"`
	Name      string     `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Year      int        `gorm:"not null"                                       json:"year"`
	Program   string     `gorm:"type:varchar(100);not null"                     json:"program"`
	StartDate *time.Time `gorm:"type:date"                                      json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	Active    bool       `gorm:"not null;default:true"                          json:"active"`
	BaseModel
}

// TableName 指定表名
func (Cohort) TableName() string { return "cohorts" }
