package logic

import (
	"errors"
	"fmt"

	"github.com/blues/dfs/internal/model"
	"gorm.io/gorm"
)

// ReportLogic 统计报表与受益人阶段性报告业务逻辑
type ReportLogic struct {
	db *gorm.DB
}

// NewReportLogic 创建报表业务逻辑
func NewReportLogic(db *gorm.DB) *ReportLogic {
	return &ReportLogic{db: db}
}

// MonthlyCount 按月计数
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// GetUserRegistrationReport 按月统计用户注册数
func (r *ReportLogic) GetUserRegistrationReport() ([]MonthlyCount, error) {
	// sqlite仅用于测试环境
	monthExpr := "to_char(created_at, 'YYYY-MM')"
	if r.db.Dialector.Name() == "sqlite" {
		monthExpr = "strftime('%Y-%m', created_at)"
	}

	var results []MonthlyCount
	if err := r.db.Model(&model.User{}).
		Select(monthExpr + " AS month, COUNT(*) AS count").
		Group("month").
		Order("month ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// CategoryTotal 按类别汇总
type CategoryTotal struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// GetFundingDistribution 按项目类别统计已筹资金
func (r *ReportLogic) GetFundingDistribution() ([]CategoryTotal, error) {
	var results []CategoryTotal
	if err := r.db.Model(&model.Project{}).
		Select("category AS name, COALESCE(SUM(total_funded), 0) AS value").
		Group("category").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// StatusCount 按状态计数
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GetProjectStatusReport 统计各状态项目数量，beneficiaryId为0时统计全量
func (r *ReportLogic) GetProjectStatusReport(beneficiaryId int64) ([]StatusCount, error) {
	query := r.db.Model(&model.Project{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if beneficiaryId != 0 {
		query = query.Where("beneficiary_id = ?", beneficiaryId)
	}

	var results []StatusCount
	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// TopDonor 捐赠排行条目
type TopDonor struct {
	Name         string `json:"name"`
	TotalDonated int64  `json:"donated"`
	ProjectCount int64  `json:"projects"`
}

// GetTopDonors 捐赠总额前十的捐赠人
func (r *ReportLogic) GetTopDonors() ([]TopDonor, error) {
	var results []TopDonor
	if err := r.db.Model(&model.Pledge{}).
		Select(`"user".name, SUM(pledge.amount) AS total_donated, COUNT(*) AS project_count`).
		Joins(`JOIN "user" ON "user".id = pledge.donor_id`).
		Group(`"user".id, "user".name`).
		Order("total_donated DESC").
		Limit(10).
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FundingProgress 项目筹款进度
type FundingProgress struct {
	Name   string `json:"name"`
	Funded int64  `json:"funded"`
	Goal   int64  `json:"goal"`
}

// GetFundingProgress 受益人各项目筹款进度
func (r *ReportLogic) GetFundingProgress(beneficiaryId int64) ([]FundingProgress, error) {
	var results []FundingProgress
	if err := r.db.Model(&model.Project{}).
		Select("title AS name, total_funded AS funded, funding_goal AS goal").
		Where("beneficiary_id = ?", beneficiaryId).
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// CreateReport 受益人创建阶段性报告
func (r *ReportLogic) CreateReport(beneficiaryId int64, report *model.Report) error {
	if report.Title == "" {
		return Validation("报告标题不能为空")
	}
	if report.ProjectId == 0 {
		return Validation("项目ID不能为空")
	}

	var project model.Project
	if err := r.db.First(&project, report.ProjectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("项目不存在")
		}
		return err
	}
	if project.BeneficiaryId != beneficiaryId {
		return Forbidden("无权操作该项目")
	}

	report.BeneficiaryId = beneficiaryId
	if report.Status == "" {
		report.Status = model.ReportStatusSubmitted
	}
	switch report.Status {
	case model.ReportStatusDraft, model.ReportStatusSubmitted, model.ReportStatusReviewed:
	default:
		return Validation(fmt.Sprintf("无效的报告状态: %s", report.Status))
	}

	return r.db.Create(report).Error
}

// GetReports 获取受益人报告列表
func (r *ReportLogic) GetReports(beneficiaryId int64, projectId int64, status string, page, pageSize int) ([]model.Report, int64, error) {
	query := r.db.Model(&model.Report{}).Where("beneficiary_id = ?", beneficiaryId)
	if projectId != 0 {
		query = query.Where("project_id = ?", projectId)
	}
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []model.Report
	if err := query.Preload("Project").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}
