package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/dfs/internal/model"
	"gorm.io/gorm"
)

// FundingRequestLogic 追加资金申请业务逻辑
//
// 与KYC同构的审核流程：pending --通过/驳回--> approved/rejected（终态）。
// 审核结果不触发放款，放款只由里程碑审批驱动。
type FundingRequestLogic struct {
	db *gorm.DB
}

// NewFundingRequestLogic 创建资金申请业务逻辑
func NewFundingRequestLogic(db *gorm.DB) *FundingRequestLogic {
	return &FundingRequestLogic{db: db}
}

// CreateFundingRequest 受益人创建资金申请
func (f *FundingRequestLogic) CreateFundingRequest(beneficiaryId int64, projectId int64, amount int64, reason string) (*model.FundingRequest, error) {
	if amount <= 0 {
		return nil, Validation("申请金额必须大于0")
	}
	if reason == "" {
		return nil, Validation("申请理由不能为空")
	}

	var project model.Project
	if err := f.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("项目不存在")
		}
		return nil, err
	}
	if project.BeneficiaryId != beneficiaryId {
		return nil, Forbidden("无权操作该项目")
	}

	request := model.FundingRequest{
		BeneficiaryId: beneficiaryId,
		ProjectId:     projectId,
		Amount:        amount,
		Reason:        reason,
		Status:        model.FundingRequestStatusPending,
	}
	if err := f.db.Create(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

// GetFundingRequests 获取受益人的资金申请列表
func (f *FundingRequestLogic) GetFundingRequests(beneficiaryId int64, page, pageSize int) ([]model.FundingRequest, int64, error) {
	var requests []model.FundingRequest
	var total int64

	query := f.db.Model(&model.FundingRequest{}).Where("beneficiary_id = ?", beneficiaryId)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Project").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// GetPendingFundingRequests 获取待审核资金申请列表（管理员）
func (f *FundingRequestLogic) GetPendingFundingRequests(page, pageSize int) ([]model.FundingRequest, int64, error) {
	var requests []model.FundingRequest
	var total int64

	query := f.db.Model(&model.FundingRequest{}).
		Where("status = ?", model.FundingRequestStatusPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Project").Preload("Beneficiary").
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// DeleteFundingRequest 受益人删除资金申请，只有pending状态允许删除
func (f *FundingRequestLogic) DeleteFundingRequest(beneficiaryId int64, requestId int64) error {
	var request model.FundingRequest
	if err := f.db.First(&request, requestId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("资金申请不存在")
		}
		return err
	}

	if request.BeneficiaryId != beneficiaryId {
		return Forbidden("无权操作该资金申请")
	}
	if request.Status != model.FundingRequestStatusPending {
		return Conflict("只有待审核的资金申请可以删除")
	}

	return f.db.Delete(&model.FundingRequest{}, requestId).Error
}

// ReviewFundingRequest 管理员审核资金申请
func (f *FundingRequestLogic) ReviewFundingRequest(adminId int64, requestId int64, approve bool, reason string) (*model.FundingRequest, error) {
	var request model.FundingRequest
	if err := f.db.First(&request, requestId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("资金申请不存在")
		}
		return nil, err
	}

	if request.Status != model.FundingRequestStatusPending {
		return nil, Conflict(fmt.Sprintf("资金申请当前状态为%s，不能审核", request.Status))
	}

	now := time.Now()
	updates := map[string]interface{}{
		"reviewed_by": adminId,
		"reviewed_at": &now,
	}
	if approve {
		updates["status"] = model.FundingRequestStatusApproved
	} else {
		if reason == "" {
			reason = "申请未通过审核"
		}
		updates["status"] = model.FundingRequestStatusRejected
		updates["rejection_reason"] = reason
	}

	if err := f.db.Model(&model.FundingRequest{}).
		Where("id = ? AND status = ?", requestId, model.FundingRequestStatusPending).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	var updated model.FundingRequest
	if err := f.db.Preload("Project").First(&updated, requestId).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}
