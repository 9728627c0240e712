package model

import (
	"time"
)

// User 用户模型
type User struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string   `json:"name" gorm:"not null"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null"`
	Password string   `json:"-" gorm:"not null"` // bcrypt哈希，不参与序列化
	Role     UserRole `json:"role" gorm:"not null;index"`
	Active   bool     `json:"active" gorm:"default:true"`
}

// UserRole 用户角色
type UserRole string

const (
	UserRoleAdmin       UserRole = "admin"       // 管理员
	UserRoleBeneficiary UserRole = "beneficiary" // 受益人
	UserRoleDonor       UserRole = "donor"       // 捐赠人
)

// TableName 自定义表名
func (User) TableName() string {
	return "user"
}
