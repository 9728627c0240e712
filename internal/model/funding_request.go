package model

import (
	"time"
)

// FundingRequest 受益人追加资金申请，与里程碑放款流程相互独立
type FundingRequest struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BeneficiaryId int64  `json:"beneficiary_id" gorm:"not null;index"`
	ProjectId     int64  `json:"project_id" gorm:"not null;index"`
	Amount        int64  `json:"amount" gorm:"not null"`
	Reason        string `json:"reason" gorm:"type:text;not null"`

	Status FundingRequestStatus `json:"status" gorm:"default:'pending';index"`

	// 审核信息
	ReviewedBy      int64      `json:"reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	RejectionReason string     `json:"rejection_reason" gorm:"type:text"`

	// 关联
	Beneficiary User    `json:"beneficiary,omitempty" gorm:"foreignKey:BeneficiaryId"`
	Project     Project `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
}

// FundingRequestStatus 资金申请状态
type FundingRequestStatus string

const (
	FundingRequestStatusPending  FundingRequestStatus = "pending"  // 待审核
	FundingRequestStatusApproved FundingRequestStatus = "approved" // 审核通过
	FundingRequestStatusRejected FundingRequestStatus = "rejected" // 审核驳回
)

// TableName 自定义表名
func (FundingRequest) TableName() string {
	return "funding_request"
}
