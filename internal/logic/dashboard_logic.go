package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/blues/dfs/internal/cache"
	"github.com/blues/dfs/internal/model"
	"gorm.io/gorm"
)

// DashboardLogic 仪表盘聚合查询，带透读缓存
//
// 缓存只按TTL过期，写操作不做主动失效，缓存窗口内允许读到旧数据。
type DashboardLogic struct {
	db    *gorm.DB
	cache *cache.Cache
	ttl   time.Duration
}

// NewDashboardLogic 创建仪表盘业务逻辑
func NewDashboardLogic(db *gorm.DB, c *cache.Cache, ttlSeconds int) *DashboardLogic {
	if ttlSeconds <= 0 {
		ttlSeconds = 300
	}
	return &DashboardLogic{
		db:    db,
		cache: c,
		ttl:   time.Duration(ttlSeconds) * time.Second,
	}
}

// AdminDashboard 管理员仪表盘数据
type AdminDashboard struct {
	SummaryData    AdminSummary    `json:"summaryData"`
	RecentProjects []model.Project `json:"recentProjects"`
}

// AdminSummary 管理员汇总数据
type AdminSummary struct {
	TotalProjects   int64 `json:"totalProjects"`
	PendingReview   int64 `json:"pendingReview"`
	ActiveProjects  int64 `json:"activeProjects"`
	TotalFunds      int64 `json:"totalFunds"`
	TotalDisbursed  int64 `json:"totalDisbursed"`
	PendingTranches int64 `json:"pendingTranches"`
	AlertsCount     int64 `json:"alertsCount"`
	KYCPending      int64 `json:"kycPending"`
}

// GetAdminDashboard 获取管理员仪表盘，缓存键admin:dashboard
func (d *DashboardLogic) GetAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	cacheKey := "admin:dashboard"

	var cached AdminDashboard
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var dashboard AdminDashboard

	if err := d.db.Model(&model.Project{}).Count(&dashboard.SummaryData.TotalProjects).Error; err != nil {
		return nil, err
	}
	d.db.Model(&model.Project{}).
		Where("status = ?", model.ProjectStatusPending).
		Count(&dashboard.SummaryData.PendingReview)
	d.db.Model(&model.Project{}).
		Where("status = ?", model.ProjectStatusActive).
		Count(&dashboard.SummaryData.ActiveProjects)
	d.db.Model(&model.Project{}).
		Select("COALESCE(SUM(funding_goal), 0)").
		Scan(&dashboard.SummaryData.TotalFunds)
	d.db.Model(&model.Project{}).
		Select("COALESCE(SUM(total_disbursed), 0)").
		Scan(&dashboard.SummaryData.TotalDisbursed)
	d.db.Model(&model.Milestone{}).
		Where("status = ?", model.MilestoneStatusEvidenceSubmitted).
		Count(&dashboard.SummaryData.PendingTranches)
	d.db.Model(&model.Project{}).
		Where("risk_level = ?", model.RiskLevelHigh).
		Count(&dashboard.SummaryData.AlertsCount)
	d.db.Model(&model.KYC{}).
		Where("status = ?", model.KYCStatusPending).
		Count(&dashboard.SummaryData.KYCPending)

	if err := d.db.Preload("Beneficiary").
		Order("created_at DESC").
		Limit(5).
		Find(&dashboard.RecentProjects).Error; err != nil {
		return nil, err
	}

	d.cache.Set(ctx, cacheKey, &dashboard, d.ttl)

	return &dashboard, nil
}

// BeneficiaryOverview 受益人仪表盘数据
type BeneficiaryOverview struct {
	SummaryData BeneficiarySummary `json:"summaryData"`
}

// BeneficiarySummary 受益人汇总数据
type BeneficiarySummary struct {
	TotalFunded      int64 `json:"totalFunded"`
	TotalDonors      int64 `json:"totalDonors"`
	ActiveProjects   int64 `json:"activeProjects"`
	OnTrackProjects  int64 `json:"onTrackProjects"`
	PendingDocuments int64 `json:"pendingDocuments"`
}

// GetBeneficiaryOverview 获取受益人仪表盘，缓存键beneficiary:dashboard:{id}
func (d *DashboardLogic) GetBeneficiaryOverview(ctx context.Context, beneficiaryId int64) (*BeneficiaryOverview, error) {
	cacheKey := fmt.Sprintf("beneficiary:dashboard:%d", beneficiaryId)

	var cached BeneficiaryOverview
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var overview BeneficiaryOverview

	if err := d.db.Model(&model.Project{}).
		Where("beneficiary_id = ?", beneficiaryId).
		Select("COALESCE(SUM(total_funded), 0)").
		Scan(&overview.SummaryData.TotalFunded).Error; err != nil {
		return nil, err
	}

	d.db.Model(&model.Pledge{}).
		Joins("JOIN project ON project.id = pledge.project_id").
		Where("project.beneficiary_id = ?", beneficiaryId).
		Distinct("pledge.donor_id").
		Count(&overview.SummaryData.TotalDonors)

	d.db.Model(&model.Project{}).
		Where("beneficiary_id = ? AND status = ?", beneficiaryId, model.ProjectStatusActive).
		Count(&overview.SummaryData.ActiveProjects)

	// 健康评分70以上算进度正常
	d.db.Model(&model.Project{}).
		Where("beneficiary_id = ? AND health_score >= ?", beneficiaryId, 70).
		Count(&overview.SummaryData.OnTrackProjects)

	d.db.Model(&model.Milestone{}).
		Joins("JOIN project ON project.id = milestone.project_id").
		Where("project.beneficiary_id = ?", beneficiaryId).
		Where("milestone.status IN ?", []model.MilestoneStatus{
			model.MilestoneStatusNotStarted,
			model.MilestoneStatusInProgress,
		}).
		Count(&overview.SummaryData.PendingDocuments)

	d.cache.Set(ctx, cacheKey, &overview, d.ttl)

	return &overview, nil
}

// DonorOverview 捐赠人仪表盘数据
type DonorOverview struct {
	PortfolioSummary DonorSummaryData `json:"portfolioSummary"`
	RecentProjects   []model.Project  `json:"recentProjects"`
}

// DonorSummaryData 捐赠人汇总数据
type DonorSummaryData struct {
	TotalPledged     int64 `json:"totalPledged"`
	TotalDistributed int64 `json:"totalDistributed"`
	Balance          int64 `json:"balance"`
	ActiveProjects   int64 `json:"activeProjects"`
	OnTrackProjects  int64 `json:"onTrackProjects"`
	AtRiskProjects   int64 `json:"atRiskProjects"`
}

// GetDonorOverview 获取捐赠人仪表盘，缓存键donor:dashboard:{id}
func (d *DashboardLogic) GetDonorOverview(ctx context.Context, donorId int64) (*DonorOverview, error) {
	cacheKey := fmt.Sprintf("donor:dashboard:%d", donorId)

	var cached DonorOverview
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var overview DonorOverview

	if err := d.db.Model(&model.Pledge{}).
		Where("donor_id = ?", donorId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&overview.PortfolioSummary.TotalPledged).Error; err != nil {
		return nil, err
	}

	// 捐赠过的项目集合
	pledgedProjects := d.db.Model(&model.Pledge{}).
		Where("donor_id = ?", donorId).
		Distinct("project_id")

	d.db.Model(&model.Project{}).
		Where("id IN (?)", pledgedProjects).
		Select("COALESCE(SUM(total_disbursed), 0)").
		Scan(&overview.PortfolioSummary.TotalDistributed)

	d.db.Model(&model.Project{}).
		Where("id IN (?) AND status = ?", pledgedProjects, model.ProjectStatusActive).
		Count(&overview.PortfolioSummary.ActiveProjects)

	d.db.Model(&model.Project{}).
		Where("id IN (?) AND health_score >= ?", pledgedProjects, 70).
		Count(&overview.PortfolioSummary.OnTrackProjects)

	overview.PortfolioSummary.Balance =
		overview.PortfolioSummary.TotalPledged - overview.PortfolioSummary.TotalDistributed
	overview.PortfolioSummary.AtRiskProjects =
		overview.PortfolioSummary.ActiveProjects - overview.PortfolioSummary.OnTrackProjects
	if overview.PortfolioSummary.AtRiskProjects < 0 {
		overview.PortfolioSummary.AtRiskProjects = 0
	}

	if err := d.db.Where("id IN (?)", pledgedProjects).
		Preload("Beneficiary").
		Order("created_at DESC").
		Limit(5).
		Find(&overview.RecentProjects).Error; err != nil {
		return nil, err
	}

	d.cache.Set(ctx, cacheKey, &overview, d.ttl)

	return &overview, nil
}
