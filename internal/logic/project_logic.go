package logic

import (
	"errors"
	"fmt"

	"github.com/blues/dfs/internal/model"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// CreateProject 受益人创建项目
func (p *ProjectLogic) CreateProject(beneficiaryId int64, project *model.Project) error {
	if project.Title == "" {
		return Validation("项目标题不能为空")
	}
	if project.Description == "" {
		return Validation("项目描述不能为空")
	}
	if project.Location == "" {
		return Validation("项目地点不能为空")
	}
	if !model.ValidProjectCategory(project.Category) {
		return Validation(fmt.Sprintf("无效的项目类别: %s", project.Category))
	}
	if project.FundingGoal <= 0 {
		return Validation("筹款目标必须大于0")
	}

	project.BeneficiaryId = beneficiaryId
	project.Status = model.ProjectStatusPending
	project.TotalFunded = 0
	project.TotalDisbursed = 0
	project.HealthScore = 100
	project.RiskLevel = model.RiskLevelLow

	return p.db.Create(project).Error
}

// UpdateProject 受益人更新项目，只允许更新白名单字段
func (p *ProjectLogic) UpdateProject(beneficiaryId int64, projectId int64, updates map[string]interface{}) (*model.Project, error) {
	project, err := p.getOwnedProject(beneficiaryId, projectId)
	if err != nil {
		return nil, err
	}

	allowedFields := []string{"title", "description", "category", "location", "funding_goal"}
	for key := range updates {
		if !contains(allowedFields, key) {
			delete(updates, key)
		}
	}
	if len(updates) == 0 {
		return nil, Validation("没有要更新的字段")
	}

	if category, ok := updates["category"]; ok {
		if s, _ := category.(string); !model.ValidProjectCategory(s) {
			return nil, Validation(fmt.Sprintf("无效的项目类别: %v", category))
		}
	}
	if goal, ok := updates["funding_goal"]; ok {
		if v, _ := goal.(int64); v <= 0 {
			return nil, Validation("筹款目标必须大于0")
		}
	}

	if err := p.db.Model(project).Updates(updates).Error; err != nil {
		return nil, err
	}

	return p.GetProject(projectId)
}

// DeleteProject 受益人删除项目，只有pending状态允许删除
func (p *ProjectLogic) DeleteProject(beneficiaryId int64, projectId int64) error {
	project, err := p.getOwnedProject(beneficiaryId, projectId)
	if err != nil {
		return err
	}

	if project.Status != model.ProjectStatusPending {
		return Conflict("只有待审核的项目可以删除")
	}

	return p.db.Delete(&model.Project{}, projectId).Error
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(id int64) (*model.Project, error) {
	var project model.Project
	if err := p.db.Preload("Beneficiary").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("项目不存在")
		}
		return nil, err
	}
	return &project, nil
}

// GetOwnedProject 获取受益人自己的项目详情
func (p *ProjectLogic) GetOwnedProject(beneficiaryId int64, projectId int64) (*model.Project, error) {
	return p.getOwnedProject(beneficiaryId, projectId)
}

// ProjectFilter 项目列表过滤条件
type ProjectFilter struct {
	BeneficiaryId int64
	Status        string
	Category      string
	Search        string
	Statuses      []model.ProjectStatus
}

// GetProjects 获取项目列表
func (p *ProjectLogic) GetProjects(filter ProjectFilter, page, pageSize int) ([]model.Project, int64, error) {
	query := p.db.Model(&model.Project{})

	if filter.BeneficiaryId != 0 {
		query = query.Where("beneficiary_id = ?", filter.BeneficiaryId)
	}
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []model.Project
	if err := query.Preload("Beneficiary").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// UpdateProjectStatus 管理员更新项目状态
func (p *ProjectLogic) UpdateProjectStatus(adminId int64, projectId int64, status string) (*model.Project, error) {
	if !model.ValidProjectStatus(status) {
		return nil, Validation(fmt.Sprintf("无效的项目状态: %s", status))
	}

	var project model.Project
	if err := p.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("项目不存在")
		}
		return nil, err
	}

	if err := p.db.Model(&project).Update("status", status).Error; err != nil {
		return nil, err
	}

	return p.GetProject(projectId)
}

// getOwnedProject 获取项目并校验归属
func (p *ProjectLogic) getOwnedProject(beneficiaryId int64, projectId int64) (*model.Project, error) {
	var project model.Project
	if err := p.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("项目不存在")
		}
		return nil, err
	}

	if project.BeneficiaryId != beneficiaryId {
		return nil, Forbidden("无权操作该项目")
	}

	return &project, nil
}

// contains 检查切片是否包含指定元素
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
