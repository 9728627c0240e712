package model

import (
	"time"
)

// Report 受益人阶段性报告
type Report struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BeneficiaryId int64  `json:"beneficiary_id" gorm:"not null;index"`
	ProjectId     int64  `json:"project_id" gorm:"not null;index"`
	Title         string `json:"title" gorm:"not null"`

	// 报告周期
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	// 报告内容
	ExecutiveSummary string `json:"executive_summary" gorm:"type:text"`
	KeyAchievements  string `json:"key_achievements" gorm:"type:text"`
	FinancialSummary string `json:"financial_summary" gorm:"type:text"`
	ImpactMetrics    string `json:"impact_metrics" gorm:"type:text"`
	Challenges       string `json:"challenges" gorm:"type:text"`
	NextSteps        string `json:"next_steps" gorm:"type:text"`

	Status ReportStatus `json:"status" gorm:"default:'submitted';index"`

	// 关联
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
}

// ReportStatus 报告状态
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "draft"     // 草稿
	ReportStatusSubmitted ReportStatus = "submitted" // 已提交
	ReportStatusReviewed  ReportStatus = "reviewed"  // 已审阅
)

// TableName 自定义表名
func (Report) TableName() string {
	return "report"
}
