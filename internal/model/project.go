package model

import (
	"time"
)

// Project 捐赠项目模型
type Project struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category" gorm:"not null"`
	Location    string `json:"location" gorm:"not null"`

	// 受益人信息
	BeneficiaryId int64 `json:"beneficiary_id" gorm:"not null;index"`

	// 资金信息
	FundingGoal    int64 `json:"funding_goal" gorm:"not null" binding:"required,min=1"`
	TotalFunded    int64 `json:"total_funded" gorm:"default:0"`
	TotalDisbursed int64 `json:"total_disbursed" gorm:"default:0"`

	// 状态与风险
	Status      ProjectStatus `json:"status" gorm:"default:'pending';index"`
	HealthScore int           `json:"health_score" gorm:"default:100"` // 健康评分 0-100
	RiskLevel   RiskLevel     `json:"risk_level" gorm:"default:'low'"`

	// 关联
	Beneficiary User        `json:"beneficiary,omitempty" gorm:"foreignKey:BeneficiaryId"`
	Milestones  []Milestone `json:"milestones,omitempty" gorm:"foreignKey:ProjectId"`
	Pledges     []Pledge    `json:"pledges,omitempty" gorm:"foreignKey:ProjectId"`
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "pending"   // 待审核
	ProjectStatusActive    ProjectStatus = "active"    // 进行中
	ProjectStatusPaused    ProjectStatus = "paused"    // 已暂停
	ProjectStatusCompleted ProjectStatus = "completed" // 已完成
	ProjectStatusCancelled ProjectStatus = "cancelled" // 已取消
)

// RiskLevel 风险等级
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"    // 低风险
	RiskLevelMedium RiskLevel = "medium" // 中风险
	RiskLevelHigh   RiskLevel = "high"   // 高风险
)

// ValidProjectStatus 检查项目状态是否合法
func ValidProjectStatus(status string) bool {
	switch ProjectStatus(status) {
	case ProjectStatusPending, ProjectStatusActive, ProjectStatusPaused,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// ValidProjectCategory 检查项目类别是否合法
func ValidProjectCategory(category string) bool {
	switch category {
	case "Agriculture", "Livestock", "Aquaculture", "Beekeeping", "Other":
		return true
	}
	return false
}

// TableName 自定义表名
func (Project) TableName() string {
	return "project"
}
