package logic

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/blues/dfs/internal/database"
	"github.com/blues/dfs/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 创建内存数据库，按测试名隔离
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

// newFileTestDB 创建文件数据库，用于并发写入的测试
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_txlock=immediate", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, role model.UserRole) *model.User {
	t.Helper()

	user := model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed-password",
		Role:     role,
		Active:   true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedProject(t *testing.T, db *gorm.DB, beneficiaryId int64, status model.ProjectStatus) *model.Project {
	t.Helper()

	project := model.Project{
		Title:         "示范养蜂项目",
		Description:   "社区养蜂扩产",
		Category:      "Beekeeping",
		Location:      "云南",
		BeneficiaryId: beneficiaryId,
		FundingGoal:   1000000,
		Status:        status,
		HealthScore:   100,
		RiskLevel:     model.RiskLevelLow,
	}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

func seedMilestone(t *testing.T, db *gorm.DB, projectId int64, number int, tranche int64, status model.MilestoneStatus) *model.Milestone {
	t.Helper()

	milestone := model.Milestone{
		ProjectId:     projectId,
		Number:        number,
		Title:         fmt.Sprintf("阶段%d", number),
		TargetDate:    time.Now().AddDate(0, 1, 0),
		TrancheAmount: tranche,
		Status:        status,
	}
	require.NoError(t, db.Create(&milestone).Error)
	return &milestone
}
