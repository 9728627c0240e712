package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/dfs/internal/model"
	"gorm.io/gorm"
)

// MilestoneLogic 里程碑生命周期业务逻辑
//
// 状态机：
//
//	not_started / in_progress --提交证明--> evidence_submitted
//	evidence_submitted --管理员通过--> approved（终态，项目total_disbursed增加tranche_amount）
//	evidence_submitted --管理员驳回--> rejected（终态）
//	rejected --受益人重新提交--> in_progress
type MilestoneLogic struct {
	db *gorm.DB
}

// NewMilestoneLogic 创建里程碑业务逻辑
func NewMilestoneLogic(db *gorm.DB) *MilestoneLogic {
	return &MilestoneLogic{db: db}
}

// EvidenceInput 证明材料上传参数，URL由上游文件服务生成
type EvidenceInput struct {
	URL          string
	MimeType     string
	DocumentType string
	Description  string
}

// CreateMilestone 创建里程碑，序号取项目内已有最大序号+1
func (m *MilestoneLogic) CreateMilestone(beneficiaryId int64, milestone *model.Milestone) error {
	if milestone.Title == "" {
		return Validation("里程碑标题不能为空")
	}
	if milestone.TargetDate.IsZero() {
		return Validation("目标日期不能为空")
	}
	if milestone.TrancheAmount <= 0 {
		return Validation("拨款金额必须大于0")
	}

	// 检查项目归属
	var project model.Project
	if err := m.db.First(&project, milestone.ProjectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("项目不存在")
		}
		return err
	}
	if project.BeneficiaryId != beneficiaryId {
		return Forbidden("无权操作该项目")
	}

	return m.db.Transaction(func(tx *gorm.DB) error {
		// 序号在项目内连续分配，里程碑无删除路径，不会产生空洞
		var maxNumber int
		if err := tx.Model(&model.Milestone{}).
			Where("project_id = ?", milestone.ProjectId).
			Select("COALESCE(MAX(number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}

		milestone.Number = maxNumber + 1
		milestone.Status = model.MilestoneStatusNotStarted

		return tx.Create(milestone).Error
	})
}

// SubmitEvidence 提交证明材料
//
// 材料只追加；里程碑处于not_started/in_progress时状态推进为evidence_submitted，
// 已是evidence_submitted时重复上传只追加材料不改状态。
// rejected状态下不接受材料，需要先调用Resubmit显式重新进入流程。
func (m *MilestoneLogic) SubmitEvidence(beneficiaryId int64, milestoneId int64, input EvidenceInput) (*model.Milestone, error) {
	if input.URL == "" {
		return nil, Validation("材料地址不能为空")
	}

	milestone, err := m.getOwnedMilestone(beneficiaryId, milestoneId)
	if err != nil {
		return nil, err
	}

	if milestone.Status == model.MilestoneStatusApproved {
		return nil, Conflict("里程碑已审批通过，不能再提交材料")
	}
	if milestone.Status == model.MilestoneStatusRejected {
		return nil, Conflict("里程碑已被驳回，请先重新发起提交")
	}

	err = m.db.Transaction(func(tx *gorm.DB) error {
		evidence := model.MilestoneEvidence{
			MilestoneId:  milestone.Id,
			Type:         model.EvidenceTypeFromMime(input.MimeType),
			URL:          input.URL,
			DocumentType: input.DocumentType,
			Description:  input.Description,
			UploadedAt:   time.Now(),
		}
		if err := tx.Create(&evidence).Error; err != nil {
			return err
		}

		if milestone.Status == model.MilestoneStatusNotStarted ||
			milestone.Status == model.MilestoneStatusInProgress {
			if err := tx.Model(&model.Milestone{}).
				Where("id = ?", milestone.Id).
				Update("status", model.MilestoneStatusEvidenceSubmitted).Error; err != nil {
				return err
			}
			milestone.Status = model.MilestoneStatusEvidenceSubmitted
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return m.getMilestone(milestoneId)
}

// Resubmit 重新发起被驳回的里程碑，rejected -> in_progress
func (m *MilestoneLogic) Resubmit(beneficiaryId int64, milestoneId int64) (*model.Milestone, error) {
	milestone, err := m.getOwnedMilestone(beneficiaryId, milestoneId)
	if err != nil {
		return nil, err
	}

	if milestone.Status != model.MilestoneStatusRejected {
		return nil, Conflict("只有被驳回的里程碑可以重新发起")
	}

	if err := m.db.Model(&model.Milestone{}).
		Where("id = ? AND status = ?", milestone.Id, model.MilestoneStatusRejected).
		Updates(map[string]interface{}{
			"status":           model.MilestoneStatusInProgress,
			"rejection_reason": "",
		}).Error; err != nil {
		return nil, err
	}

	return m.getMilestone(milestoneId)
}

// ApproveMilestone 审批通过里程碑
//
// 状态翻转、项目total_disbursed增加、流水记账在同一个数据库事务内完成。
// 状态翻转带条件guard（仅evidence_submitted可通过），金额增加用数据库原子加，
// 并发审批不同里程碑不会丢失更新，重复审批同一里程碑会返回冲突。
func (m *MilestoneLogic) ApproveMilestone(adminId int64, milestoneId int64) (*model.Milestone, error) {
	var milestone model.Milestone
	if err := m.db.First(&milestone, milestoneId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("里程碑不存在")
		}
		return nil, err
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// 条件更新：只有evidence_submitted状态允许通过，RowsAffected为0说明
		// 状态不符或已被并发请求处理过
		res := tx.Model(&model.Milestone{}).
			Where("id = ? AND status = ?", milestoneId, model.MilestoneStatusEvidenceSubmitted).
			Updates(map[string]interface{}{
				"status":         model.MilestoneStatusApproved,
				"completed_date": &now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return Conflict(fmt.Sprintf("里程碑当前状态为%s，不能审批通过", milestone.Status))
		}

		// 数据库级原子加，避免读-改-写丢失更新
		if err := tx.Model(&model.Project{}).
			Where("id = ?", milestone.ProjectId).
			UpdateColumn("total_disbursed", gorm.Expr("total_disbursed + ?", milestone.TrancheAmount)).Error; err != nil {
			return err
		}

		var project model.Project
		if err := tx.First(&project, milestone.ProjectId).Error; err != nil {
			return err
		}

		// 放款流水
		transaction := model.Transaction{
			UserId:      project.BeneficiaryId,
			ProjectId:   project.Id,
			Type:        model.TransactionTypeDisbursement,
			Description: fmt.Sprintf("里程碑 #%d「%s」放款", milestone.Number, milestone.Title),
			Amount:      milestone.TrancheAmount,
			Balance:     project.TotalDisbursed,
			Date:        now,
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return nil, err
	}

	return m.getMilestone(milestoneId)
}

// RejectMilestone 驳回里程碑
func (m *MilestoneLogic) RejectMilestone(adminId int64, milestoneId int64, reason string) (*model.Milestone, error) {
	var milestone model.Milestone
	if err := m.db.First(&milestone, milestoneId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("里程碑不存在")
		}
		return nil, err
	}

	if milestone.Status.Terminal() {
		return nil, Conflict(fmt.Sprintf("里程碑当前状态为%s，不能驳回", milestone.Status))
	}

	if reason == "" {
		reason = "未达到里程碑验收要求"
	}

	if err := m.db.Model(&model.Milestone{}).
		Where("id = ?", milestoneId).
		Updates(map[string]interface{}{
			"status":           model.MilestoneStatusRejected,
			"rejection_reason": reason,
		}).Error; err != nil {
		return nil, err
	}

	return m.getMilestone(milestoneId)
}

// GetProjectMilestones 获取项目里程碑，按序号排序
func (m *MilestoneLogic) GetProjectMilestones(callerId int64, projectId int64) ([]model.Milestone, error) {
	var project model.Project
	if err := m.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("项目不存在")
		}
		return nil, err
	}
	if project.BeneficiaryId != callerId {
		return nil, Forbidden("无权访问该项目")
	}

	var milestones []model.Milestone
	if err := m.db.Where("project_id = ?", projectId).
		Preload("Evidence").
		Order("number ASC").
		Find(&milestones).Error; err != nil {
		return nil, err
	}

	return milestones, nil
}

// ListMilestones 获取项目里程碑（不校验归属，供捐赠人查看进度）
func (m *MilestoneLogic) ListMilestones(projectId int64) ([]model.Milestone, error) {
	var project model.Project
	if err := m.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("项目不存在")
		}
		return nil, err
	}

	var milestones []model.Milestone
	if err := m.db.Where("project_id = ?", projectId).
		Preload("Evidence").
		Order("number ASC").
		Find(&milestones).Error; err != nil {
		return nil, err
	}

	return milestones, nil
}

// GetPendingMilestones 获取待审批里程碑列表（管理员审批队列）
func (m *MilestoneLogic) GetPendingMilestones(page, pageSize int) ([]model.Milestone, int64, error) {
	var milestones []model.Milestone
	var total int64

	query := m.db.Model(&model.Milestone{}).
		Where("status = ?", model.MilestoneStatusEvidenceSubmitted)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Project").Preload("Evidence").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&milestones).Error; err != nil {
		return nil, 0, err
	}

	return milestones, total, nil
}

// GetMissingDocuments 获取受益人尚未提交材料的里程碑
func (m *MilestoneLogic) GetMissingDocuments(beneficiaryId int64) ([]model.Milestone, error) {
	var milestones []model.Milestone
	if err := m.db.
		Joins("JOIN project ON project.id = milestone.project_id").
		Where("project.beneficiary_id = ?", beneficiaryId).
		Where("milestone.status IN ?", []model.MilestoneStatus{
			model.MilestoneStatusNotStarted,
			model.MilestoneStatusInProgress,
		}).
		Preload("Project").
		Find(&milestones).Error; err != nil {
		return nil, err
	}

	return milestones, nil
}

// getOwnedMilestone 获取里程碑并校验归属
func (m *MilestoneLogic) getOwnedMilestone(beneficiaryId int64, milestoneId int64) (*model.Milestone, error) {
	var milestone model.Milestone
	if err := m.db.Preload("Project").First(&milestone, milestoneId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("里程碑不存在")
		}
		return nil, err
	}

	if milestone.Project.BeneficiaryId != beneficiaryId {
		return nil, Forbidden("无权操作该里程碑")
	}

	return &milestone, nil
}

// getMilestone 重新加载里程碑及其材料
func (m *MilestoneLogic) getMilestone(id int64) (*model.Milestone, error) {
	var milestone model.Milestone
	if err := m.db.Preload("Evidence").First(&milestone, id).Error; err != nil {
		return nil, err
	}
	return &milestone, nil
}
