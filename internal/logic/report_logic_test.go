package logic

import (
	"testing"

	"github.com/blues/dfs/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserRegistrationReport(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", model.UserRoleDonor)
	seedUser(t, db, "u2", model.UserRoleDonor)

	logic := NewReportLogic(db)

	results, err := logic.GetUserRegistrationReport()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(2), results[0].Count)
	assert.Regexp(t, `^\d{4}-\d{2}$`, results[0].Month)
}

func TestGetFundingDistribution(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	p1 := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)
	p2 := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)
	require.NoError(t, db.Model(p1).Update("total_funded", 300).Error)
	require.NoError(t, db.Model(p2).Update("total_funded", 200).Error)

	logic := NewReportLogic(db)

	results, err := logic.GetFundingDistribution()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Beekeeping", results[0].Name)
	assert.Equal(t, int64(500), results[0].Value)
}

func TestGetTopDonors(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	d1 := seedUser(t, db, "donor1", model.UserRoleDonor)
	d2 := seedUser(t, db, "donor2", model.UserRoleDonor)
	project := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)

	pledges := NewPledgeLogic(db)
	_, err := pledges.CreatePledge(d1.Id, project.Id, 100)
	require.NoError(t, err)
	_, err = pledges.CreatePledge(d2.Id, project.Id, 900)
	require.NoError(t, err)

	logic := NewReportLogic(db)

	results, err := logic.GetTopDonors()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "donor2", results[0].Name)
	assert.Equal(t, int64(900), results[0].TotalDonated)
}

func TestGetFundingProgress(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	project := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)
	require.NoError(t, db.Model(project).Update("total_funded", 250000).Error)

	logic := NewReportLogic(db)

	results, err := logic.GetFundingProgress(beneficiary.Id)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(250000), results[0].Funded)
	assert.Equal(t, int64(1000000), results[0].Goal)
}

func TestCreateReport(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	other := seedUser(t, db, "bee2", model.UserRoleBeneficiary)
	project := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)

	logic := NewReportLogic(db)

	report := model.Report{
		ProjectId:        project.Id,
		Title:            "第一季度进展",
		ExecutiveSummary: "蜂群扩繁顺利",
	}
	require.NoError(t, logic.CreateReport(beneficiary.Id, &report))
	assert.Equal(t, model.ReportStatusSubmitted, report.Status)

	err := logic.CreateReport(beneficiary.Id, &model.Report{ProjectId: project.Id})
	assert.ErrorIs(t, err, ErrValidation)

	err = logic.CreateReport(other.Id, &model.Report{ProjectId: project.Id, Title: "x"})
	assert.ErrorIs(t, err, ErrForbidden)

	err = logic.CreateReport(beneficiary.Id, &model.Report{
		ProjectId: project.Id, Title: "x", Status: "archived",
	})
	assert.ErrorIs(t, err, ErrValidation)

	reports, total, err := logic.GetReports(beneficiary.Id, project.Id, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, reports, 1)
}
