package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/blues/dfs/internal/config"
	"github.com/blues/dfs/internal/database"
	"github.com/blues/dfs/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func seedHealthProject(t *testing.T, db *gorm.DB, funded, disbursed int64) *model.Project {
	t.Helper()

	project := model.Project{
		Title:          "健康巡检项目",
		Description:    "d",
		Category:       "Agriculture",
		Location:       "l",
		BeneficiaryId:  1,
		FundingGoal:    1000000,
		TotalFunded:    funded,
		TotalDisbursed: disbursed,
		Status:         model.ProjectStatusActive,
		HealthScore:    100,
		RiskLevel:      model.RiskLevelLow,
	}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

func seedHealthMilestone(t *testing.T, db *gorm.DB, projectId int64, target time.Time, status model.MilestoneStatus) *model.Milestone {
	t.Helper()

	milestone := model.Milestone{
		ProjectId:     projectId,
		Number:        1,
		Title:         "阶段",
		TargetDate:    target,
		TrancheAmount: 1000,
		Status:        status,
	}
	require.NoError(t, db.Create(&milestone).Error)
	return &milestone
}

func newHealthJob(db *gorm.DB) *ProjectHealthJob {
	return NewProjectHealthJob(db, &config.Config{Task: config.TaskConfig{Interval: 60}})
}

func TestHealthJobScoresOverdueMilestones(t *testing.T) {
	db := newTestDB(t)
	project := seedHealthProject(t, db, 1000, 0)

	past := time.Now().AddDate(0, 0, -7)
	seedHealthMilestone(t, db, project.Id, past, model.MilestoneStatusInProgress)
	seedHealthMilestone(t, db, project.Id, past, model.MilestoneStatusNotStarted)
	// 已通过的里程碑逾期不计分
	seedHealthMilestone(t, db, project.Id, past, model.MilestoneStatusApproved)

	newHealthJob(db).Execute()

	var reloaded model.Project
	require.NoError(t, db.First(&reloaded, project.Id).Error)
	assert.Equal(t, 70, reloaded.HealthScore)
	assert.Equal(t, model.RiskLevelMedium, reloaded.RiskLevel)

	var alerts int64
	require.NoError(t, db.Model(&model.Alert{}).
		Where("project_id = ? AND type = ? AND resolved = ?", project.Id, "milestone_overdue", false).
		Count(&alerts).Error)
	assert.Equal(t, int64(2), alerts)
}

func TestHealthJobScoreFloor(t *testing.T) {
	db := newTestDB(t)
	project := seedHealthProject(t, db, 1000, 0)

	past := time.Now().AddDate(0, 0, -30)
	for i := 0; i < 8; i++ {
		seedHealthMilestone(t, db, project.Id, past, model.MilestoneStatusInProgress)
	}

	newHealthJob(db).Execute()

	var reloaded model.Project
	require.NoError(t, db.First(&reloaded, project.Id).Error)
	assert.Equal(t, 0, reloaded.HealthScore)
	assert.Equal(t, model.RiskLevelHigh, reloaded.RiskLevel)
}

func TestHealthJobOverDisbursedForcesHighRisk(t *testing.T) {
	db := newTestDB(t)
	project := seedHealthProject(t, db, 100, 200)

	newHealthJob(db).Execute()

	var reloaded model.Project
	require.NoError(t, db.First(&reloaded, project.Id).Error)
	assert.Equal(t, 100, reloaded.HealthScore)
	assert.Equal(t, model.RiskLevelHigh, reloaded.RiskLevel)

	var alerts int64
	require.NoError(t, db.Model(&model.Alert{}).
		Where("project_id = ? AND type = ?", project.Id, "over_disbursed").
		Count(&alerts).Error)
	assert.Equal(t, int64(1), alerts)
}

func TestHealthJobDoesNotDuplicateAlerts(t *testing.T) {
	db := newTestDB(t)
	project := seedHealthProject(t, db, 1000, 0)
	seedHealthMilestone(t, db, project.Id, time.Now().AddDate(0, 0, -1), model.MilestoneStatusInProgress)

	job := newHealthJob(db)
	job.Execute()
	job.Execute()

	var alerts int64
	require.NoError(t, db.Model(&model.Alert{}).
		Where("project_id = ?", project.Id).
		Count(&alerts).Error)
	assert.Equal(t, int64(1), alerts)
}

func TestHealthJobIgnoresInactiveProjects(t *testing.T) {
	db := newTestDB(t)
	project := seedHealthProject(t, db, 1000, 0)
	require.NoError(t, db.Model(project).Update("status", model.ProjectStatusCompleted).Error)
	seedHealthMilestone(t, db, project.Id, time.Now().AddDate(0, 0, -1), model.MilestoneStatusInProgress)

	newHealthJob(db).Execute()

	var reloaded model.Project
	require.NoError(t, db.First(&reloaded, project.Id).Error)
	assert.Equal(t, 100, reloaded.HealthScore)

	var alerts int64
	require.NoError(t, db.Model(&model.Alert{}).Count(&alerts).Error)
	assert.Equal(t, int64(0), alerts)
}
