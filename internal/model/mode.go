package model

// Mode 授课模式表 — 对应 modes（Online / In-person / Hybrid 等）
type Mode struct {
	ModeID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"mode_id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Description string `gorm:"type:text"                                      json:"description"`
	Active      bool   `gorm:"not null;default:true"                          json:"active"`
	BaseModel
}

// TableName 指定表名
func (Mode) TableName() string { return "modes" }
