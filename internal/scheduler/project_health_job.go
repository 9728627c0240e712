package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/blues/dfs/internal/config"
	"github.com/blues/dfs/internal/logger"
	"github.com/blues/dfs/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// ProjectHealthJob 项目健康巡检任务：评估进行中项目的健康度并产生风险告警
type ProjectHealthJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewProjectHealthJob 创建项目健康巡检任务
func NewProjectHealthJob(db *gorm.DB, cfg *config.Config) *ProjectHealthJob {
	return &ProjectHealthJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *ProjectHealthJob) GetName() string {
	return "project_health_checker"
}

// GetSchedule 获取调度配置
func (j *ProjectHealthJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectHealthJob) Execute() {
	logger.Debug("Starting project health check task")

	var projects []model.Project
	err := j.db.Where("status = ?", model.ProjectStatusActive).Find(&projects).Error
	if err != nil {
		logger.Error("Failed to fetch active projects: %v", err)
		return
	}

	if len(projects) == 0 {
		logger.Debug("No active projects to check")
		return
	}

	poolSize := len(projects)
	if poolSize > 16 {
		poolSize = 16
	}

	// 创建临时协程池并发巡检各项目
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		logger.Error("Failed to create pool for %d projects: %v", len(projects), err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range projects {
		project := projects[i]
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			j.checkProject(&project)
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit health check for project %d: %v", project.Id, err)
		}
	}
	wg.Wait()

	logger.Debug("Project health check finished, %d projects checked", len(projects))
}

// checkProject 巡检单个项目：计算健康评分、风险等级，并为逾期里程碑产生告警
func (j *ProjectHealthJob) checkProject(project *model.Project) {
	var milestones []model.Milestone
	if err := j.db.Where("project_id = ?", project.Id).Find(&milestones).Error; err != nil {
		logger.Error("Failed to fetch milestones for project %d: %v", project.Id, err)
		return
	}

	now := time.Now()
	approved := 0
	var overdue []model.Milestone
	for _, m := range milestones {
		if m.Status == model.MilestoneStatusApproved {
			approved++
			continue
		}
		if m.TargetDate.Before(now) {
			overdue = append(overdue, m)
		}
	}

	healthScore := 100 - 15*len(overdue)
	if healthScore < 0 {
		healthScore = 0
	}

	riskLevel := model.RiskLevelLow
	switch {
	case len(overdue) >= 3:
		riskLevel = model.RiskLevelHigh
	case len(overdue) > 0:
		riskLevel = model.RiskLevelMedium
	}

	// 超额拨付是硬性风险，直接判定为高风险
	overDisbursed := project.TotalDisbursed > project.TotalFunded
	if overDisbursed {
		riskLevel = model.RiskLevelHigh
	}

	if healthScore != project.HealthScore || riskLevel != project.RiskLevel {
		err := j.db.Model(&model.Project{}).
			Where("id = ?", project.Id).
			Updates(map[string]interface{}{
				"health_score": healthScore,
				"risk_level":   riskLevel,
			}).Error
		if err != nil {
			logger.Error("Failed to update health of project %d: %v", project.Id, err)
			return
		}
	}

	j.raiseOverdueAlerts(project, overdue)
	if overDisbursed {
		j.raiseAlert(project.Id, "over_disbursed", "critical",
			fmt.Sprintf("项目 %s 累计拨付已超过累计捐赠", project.Title))
	}
}

// raiseOverdueAlerts 为新逾期的里程碑产生告警，已有未解决的同内容告警时跳过
func (j *ProjectHealthJob) raiseOverdueAlerts(project *model.Project, overdue []model.Milestone) {
	for _, m := range overdue {
		message := fmt.Sprintf("项目 %s 的里程碑 #%d「%s」已逾期", project.Title, m.Number, m.Title)
		j.raiseAlert(project.Id, "milestone_overdue", "warning", message)
	}
}

// raiseAlert 产生告警，相同项目下存在未解决的同内容告警时不重复产生
func (j *ProjectHealthJob) raiseAlert(projectId int64, alertType, severity, message string) {
	var count int64
	err := j.db.Model(&model.Alert{}).
		Where("project_id = ? AND type = ? AND message = ? AND resolved = ?",
			projectId, alertType, message, false).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check existing alerts for project %d: %v", projectId, err)
		return
	}
	if count > 0 {
		return
	}

	alert := model.Alert{
		ProjectId: projectId,
		Type:      alertType,
		Severity:  severity,
		Message:   message,
	}
	if err := j.db.Create(&alert).Error; err != nil {
		logger.Error("Failed to create alert for project %d: %v", projectId, err)
	}
}
