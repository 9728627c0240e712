package model

import (
	"time"
)

// Pledge 捐赠承诺记录，创建后不可修改
type Pledge struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DonorId   int64 `json:"donor_id" gorm:"not null;index"`
	ProjectId int64 `json:"project_id" gorm:"not null;index"`
	Amount    int64 `json:"amount" gorm:"not null"`

	Status PledgeStatus `json:"status" gorm:"default:'confirmed'"`

	// 关联
	Donor   User    `json:"donor,omitempty" gorm:"foreignKey:DonorId"`
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
}

// PledgeStatus 捐赠状态
type PledgeStatus string

const (
	PledgeStatusPending   PledgeStatus = "pending"   // 待确认
	PledgeStatusConfirmed PledgeStatus = "confirmed" // 已确认
	PledgeStatusCancelled PledgeStatus = "cancelled" // 已取消
)

// TableName 自定义表名
func (Pledge) TableName() string {
	return "pledge"
}
