package model

// Class 班级表 — 对应 classes
type Class struct {
	ClassID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	Name    string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Year    int    `gorm:"not null"                                       json:"year"`
	Active  bool   `gorm:"not null;default:true"                          json:"active"`
	BaseModel
}

// TableName 指定表名
func (Class) TableName() string { return "classes" }
