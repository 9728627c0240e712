package model

import (
	"time"
)

// Alert 项目风险告警
type Alert struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;index"`
	Type      string `json:"type" gorm:"not null"` // milestone_overdue, over_disbursed
	Message   string `json:"message" gorm:"type:text;not null"`
	Severity  string `json:"severity" gorm:"default:'warning'"` // info, warning, critical
	Resolved  bool   `json:"resolved" gorm:"default:false;index"`

	// 关联
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
}

// TableName 自定义表名
func (Alert) TableName() string {
	return "alert"
}
