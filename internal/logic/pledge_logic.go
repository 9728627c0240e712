package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/dfs/internal/model"
	"gorm.io/gorm"
)

// PledgeLogic 捐赠业务逻辑
type PledgeLogic struct {
	db *gorm.DB
}

// NewPledgeLogic 创建捐赠业务逻辑
func NewPledgeLogic(db *gorm.DB) *PledgeLogic {
	return &PledgeLogic{db: db}
}

// CreatePledge 创建捐赠
//
// 捐赠记录、项目total_funded原子加、捐赠流水在同一个事务内完成。
// total_funded只增不减，退款类型在流水中有定义但没有任何扣减路径。
func (p *PledgeLogic) CreatePledge(donorId int64, projectId int64, amount int64) (*model.Pledge, error) {
	if amount <= 0 {
		return nil, Validation("捐赠金额必须大于0")
	}

	var project model.Project
	if err := p.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("项目不存在")
		}
		return nil, err
	}

	if project.Status != model.ProjectStatusPending && project.Status != model.ProjectStatusActive {
		return nil, Conflict(fmt.Sprintf("项目当前状态为%s，不接受捐赠", project.Status))
	}

	pledge := model.Pledge{
		DonorId:   donorId,
		ProjectId: projectId,
		Amount:    amount,
		Status:    model.PledgeStatusConfirmed,
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pledge).Error; err != nil {
			return err
		}

		// 数据库级原子加，并发捐赠不会丢失更新
		if err := tx.Model(&model.Project{}).
			Where("id = ?", projectId).
			UpdateColumn("total_funded", gorm.Expr("total_funded + ?", amount)).Error; err != nil {
			return err
		}

		var updated model.Project
		if err := tx.First(&updated, projectId).Error; err != nil {
			return err
		}

		// 捐赠流水
		transaction := model.Transaction{
			UserId:      donorId,
			ProjectId:   projectId,
			Type:        model.TransactionTypePledge,
			Description: fmt.Sprintf("捐赠项目「%s」", project.Title),
			Amount:      amount,
			Balance:     updated.TotalFunded,
			Date:        time.Now(),
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return nil, err
	}

	return &pledge, nil
}

// GetDonorPledges 获取捐赠人的所有捐赠记录
func (p *PledgeLogic) GetDonorPledges(donorId int64) ([]model.Pledge, error) {
	var pledges []model.Pledge
	if err := p.db.Where("donor_id = ?", donorId).
		Preload("Project").
		Order("created_at DESC").
		Find(&pledges).Error; err != nil {
		return nil, err
	}
	return pledges, nil
}

// GetProjectDonors 按捐赠人聚合受益人项目收到的捐赠
func (p *PledgeLogic) GetProjectDonors(beneficiaryId int64, search string) ([]DonorSummary, error) {
	var summaries []DonorSummary

	query := p.db.Model(&model.Pledge{}).
		Select(`"user".id AS donor_id, "user".name, "user".email, SUM(pledge.amount) AS total_donated, COUNT(DISTINCT pledge.project_id) AS project_count`).
		Joins(`JOIN project ON project.id = pledge.project_id`).
		Joins(`JOIN "user" ON "user".id = pledge.donor_id`).
		Where("project.beneficiary_id = ?", beneficiaryId).
		Group(`"user".id, "user".name, "user".email`)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(`"user".name LIKE ? OR "user".email LIKE ?`, pattern, pattern)
	}

	if err := query.Order("total_donated DESC").Scan(&summaries).Error; err != nil {
		return nil, err
	}

	return summaries, nil
}

// DonorSummary 捐赠人聚合信息
type DonorSummary struct {
	DonorId      int64  `json:"donor_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	TotalDonated int64  `json:"total_donated"`
	ProjectCount int64  `json:"project_count"`
}

// HasPledged 检查捐赠人是否捐赠过某项目
func (p *PledgeLogic) HasPledged(donorId int64, projectId int64) (bool, error) {
	var count int64
	if err := p.db.Model(&model.Pledge{}).
		Where("donor_id = ? AND project_id = ?", donorId, projectId).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
