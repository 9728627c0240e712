package model

import (
	"time"
)

// KYC 身份审核记录
type KYC struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserId int64     `json:"user_id" gorm:"not null;index"`
	Status KYCStatus `json:"status" gorm:"default:'pending';index"`

	// 审核信息
	ReviewedBy      int64      `json:"reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	RejectionReason string     `json:"rejection_reason" gorm:"type:text"`

	// 审批通过后一年有效，过期时间仅记录，不做自动失效处理
	ExpiresAt *time.Time `json:"expires_at"`

	// 关联
	User      User          `json:"user,omitempty" gorm:"foreignKey:UserId"`
	Documents []KYCDocument `json:"documents,omitempty" gorm:"foreignKey:KYCId"`
}

// KYCStatus 身份审核状态
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "pending"  // 待审核
	KYCStatusApproved KYCStatus = "approved" // 审核通过
	KYCStatusRejected KYCStatus = "rejected" // 审核驳回
)

// KYCDocument 身份审核材料
type KYCDocument struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	KYCId      int64     `json:"kyc_id" gorm:"not null;index"`
	Type       string    `json:"type" gorm:"not null"` // id, business_license, tax_certificate, bank_statement, other
	URL        string    `json:"url" gorm:"not null"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ValidKYCDocumentType 检查材料类型是否合法
func ValidKYCDocumentType(t string) bool {
	switch t {
	case "id", "business_license", "tax_certificate", "bank_statement", "other":
		return true
	}
	return false
}

// TableName 自定义表名
func (KYC) TableName() string {
	return "kyc"
}

// TableName 自定义表名
func (KYCDocument) TableName() string {
	return "kyc_document"
}
