package model

import (
	"time"
)

// Notification 用户站内通知
type Notification struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserId  int64  `json:"user_id" gorm:"not null;index"`
	Title   string `json:"title" gorm:"not null"`
	Message string `json:"message" gorm:"type:text"`
	Read    bool   `json:"read" gorm:"default:false"`
}

// TableName 自定义表名
func (Notification) TableName() string {
	return "notification"
}
