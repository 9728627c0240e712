package logic

import (
	"context"
	"testing"

	"github.com/blues/dfs/internal/cache"
	"github.com/blues/dfs/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAdminDashboard(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	donor := seedUser(t, db, "donor1", model.UserRoleDonor)

	seedProject(t, db, beneficiary.Id, model.ProjectStatusPending)
	active := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)
	seedMilestone(t, db, active.Id, 1, 1000, model.MilestoneStatusEvidenceSubmitted)

	_, err := NewPledgeLogic(db).CreatePledge(donor.Id, active.Id, 500)
	require.NoError(t, err)

	logic := NewDashboardLogic(db, cache.New(nil), 300)

	dashboard, err := logic.GetAdminDashboard(context.Background())
	require.NoError(t, err)

	summary := dashboard.SummaryData
	assert.Equal(t, int64(2), summary.TotalProjects)
	assert.Equal(t, int64(1), summary.PendingReview)
	assert.Equal(t, int64(1), summary.ActiveProjects)
	assert.Equal(t, int64(2000000), summary.TotalFunds)
	assert.Equal(t, int64(1), summary.PendingTranches)
	assert.Len(t, dashboard.RecentProjects, 2)
}

func TestGetBeneficiaryOverview(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	donor := seedUser(t, db, "donor1", model.UserRoleDonor)
	active := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)
	seedMilestone(t, db, active.Id, 1, 1000, model.MilestoneStatusNotStarted)
	seedMilestone(t, db, active.Id, 2, 1000, model.MilestoneStatusApproved)

	_, err := NewPledgeLogic(db).CreatePledge(donor.Id, active.Id, 800)
	require.NoError(t, err)

	logic := NewDashboardLogic(db, cache.New(nil), 300)

	overview, err := logic.GetBeneficiaryOverview(context.Background(), beneficiary.Id)
	require.NoError(t, err)

	summary := overview.SummaryData
	assert.Equal(t, int64(800), summary.TotalFunded)
	assert.Equal(t, int64(1), summary.TotalDonors)
	assert.Equal(t, int64(1), summary.ActiveProjects)
	assert.Equal(t, int64(1), summary.OnTrackProjects)
	assert.Equal(t, int64(1), summary.PendingDocuments)
}

func TestGetDonorOverview(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	donor := seedUser(t, db, "donor1", model.UserRoleDonor)
	admin := seedUser(t, db, "admin1", model.UserRoleAdmin)

	project := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)
	milestone := seedMilestone(t, db, project.Id, 1, 300, model.MilestoneStatusEvidenceSubmitted)

	_, err := NewPledgeLogic(db).CreatePledge(donor.Id, project.Id, 1000)
	require.NoError(t, err)
	_, err = NewMilestoneLogic(db).ApproveMilestone(admin.Id, milestone.Id)
	require.NoError(t, err)

	logic := NewDashboardLogic(db, cache.New(nil), 300)

	overview, err := logic.GetDonorOverview(context.Background(), donor.Id)
	require.NoError(t, err)

	summary := overview.PortfolioSummary
	assert.Equal(t, int64(1000), summary.TotalPledged)
	assert.Equal(t, int64(300), summary.TotalDistributed)
	assert.Equal(t, int64(700), summary.Balance)
	assert.Equal(t, int64(1), summary.ActiveProjects)
	assert.Len(t, overview.RecentProjects, 1)
}

func TestDonorOverviewAtRiskClamped(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	donor := seedUser(t, db, "donor1", model.UserRoleDonor)

	// 健康评分高的已完成项目：on-track计数可能超过active计数
	project := seedProject(t, db, beneficiary.Id, model.ProjectStatusCompleted)
	require.NoError(t, db.Create(&model.Pledge{
		DonorId: donor.Id, ProjectId: project.Id, Amount: 100,
		Status: model.PledgeStatusConfirmed,
	}).Error)

	logic := NewDashboardLogic(db, cache.New(nil), 300)

	overview, err := logic.GetDonorOverview(context.Background(), donor.Id)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, overview.PortfolioSummary.AtRiskProjects, int64(0))
}
