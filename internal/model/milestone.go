package model

import (
	"time"
)

// Milestone 项目里程碑模型
type Milestone struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId   int64  `json:"project_id" gorm:"not null;index"`
	Number      int    `json:"number" gorm:"not null"` // 项目内序号，从1开始
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`

	// 时间信息
	TargetDate    time.Time  `json:"target_date" gorm:"not null"`
	CompletedDate *time.Time `json:"completed_date"`

	// 放款信息：审批通过后释放的拨款金额
	TrancheAmount int64 `json:"tranche_amount" gorm:"not null"`

	// 状态
	Status          MilestoneStatus `json:"status" gorm:"default:'not_started';index"`
	RejectionReason string          `json:"rejection_reason" gorm:"type:text"`

	// 关联
	Project  Project             `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
	Evidence []MilestoneEvidence `json:"evidence,omitempty" gorm:"foreignKey:MilestoneId"`
}

// MilestoneStatus 里程碑状态
type MilestoneStatus string

const (
	MilestoneStatusNotStarted        MilestoneStatus = "not_started"        // 未开始
	MilestoneStatusInProgress        MilestoneStatus = "in_progress"        // 进行中
	MilestoneStatusEvidenceSubmitted MilestoneStatus = "evidence_submitted" // 已提交证明材料
	MilestoneStatusApproved          MilestoneStatus = "approved"           // 审批通过
	MilestoneStatusRejected          MilestoneStatus = "rejected"           // 审批驳回
)

// Terminal 是否为终态（approved/rejected 之后只能通过 resubmit 重新进入流程）
func (s MilestoneStatus) Terminal() bool {
	return s == MilestoneStatusApproved || s == MilestoneStatusRejected
}

// MilestoneEvidence 里程碑证明材料，只追加不修改
type MilestoneEvidence struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	MilestoneId  int64        `json:"milestone_id" gorm:"not null;index"`
	Type         EvidenceType `json:"type" gorm:"not null"`
	URL          string       `json:"url" gorm:"not null"`
	DocumentType string       `json:"document_type"`
	Description  string       `json:"description"`
	UploadedAt   time.Time    `json:"uploaded_at"`
}

// EvidenceType 证明材料类型
type EvidenceType string

const (
	EvidenceTypeImage    EvidenceType = "image"    // 图片
	EvidenceTypeVideo    EvidenceType = "video"    // 视频
	EvidenceTypeDocument EvidenceType = "document" // 文档
)

// EvidenceTypeFromMime 根据MIME类型推断材料类型
func EvidenceTypeFromMime(mime string) EvidenceType {
	switch {
	case len(mime) >= 6 && mime[:6] == "image/":
		return EvidenceTypeImage
	case len(mime) >= 6 && mime[:6] == "video/":
		return EvidenceTypeVideo
	default:
		return EvidenceTypeDocument
	}
}

// TableName 自定义表名
func (Milestone) TableName() string {
	return "milestone"
}

// TableName 自定义表名
func (MilestoneEvidence) TableName() string {
	return "milestone_evidence"
}
