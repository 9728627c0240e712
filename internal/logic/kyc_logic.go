package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/dfs/internal/model"
	"gorm.io/gorm"
)

// KYC有效期，审批通过后一年
const kycValidity = 365 * 24 * time.Hour

// KYCLogic 身份审核业务逻辑
//
// 状态机：pending --通过--> approved（终态，记录一年后的过期时间）
//
//	pending --驳回--> rejected（终态，无重新提交路径）
//
// 过期时间仅存储，没有任何流程将过期的approved记录转回非通过状态。
type KYCLogic struct {
	db *gorm.DB
}

// NewKYCLogic 创建身份审核业务逻辑
func NewKYCLogic(db *gorm.DB) *KYCLogic {
	return &KYCLogic{db: db}
}

// KYCDocumentInput 审核材料参数
type KYCDocumentInput struct {
	Type string
	URL  string
}

// SubmitKYC 提交身份审核材料，用户已有待审核记录时追加材料
func (k *KYCLogic) SubmitKYC(userId int64, documents []KYCDocumentInput) (*model.KYC, error) {
	if len(documents) == 0 {
		return nil, Validation("审核材料不能为空")
	}
	for _, doc := range documents {
		if doc.URL == "" {
			return nil, Validation("材料地址不能为空")
		}
		if !model.ValidKYCDocumentType(doc.Type) {
			return nil, Validation(fmt.Sprintf("无效的材料类型: %s", doc.Type))
		}
	}

	var kyc model.KYC
	err := k.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND status = ?", userId, model.KYCStatusPending).
			First(&kyc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			kyc = model.KYC{UserId: userId, Status: model.KYCStatusPending}
			if err := tx.Create(&kyc).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		now := time.Now()
		for _, doc := range documents {
			record := model.KYCDocument{
				KYCId:      kyc.Id,
				Type:       doc.Type,
				URL:        doc.URL,
				UploadedAt: now,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return k.getKYC(kyc.Id)
}

// ApproveKYC 审核通过，过期时间为审核时刻加一年
func (k *KYCLogic) ApproveKYC(adminId int64, kycId int64) (*model.KYC, error) {
	kyc, err := k.getKYC(kycId)
	if err != nil {
		return nil, err
	}

	if kyc.Status != model.KYCStatusPending {
		return nil, Conflict(fmt.Sprintf("KYC当前状态为%s，不能审核通过", kyc.Status))
	}

	now := time.Now()
	expiresAt := now.Add(kycValidity)

	if err := k.db.Model(&model.KYC{}).
		Where("id = ? AND status = ?", kycId, model.KYCStatusPending).
		Updates(map[string]interface{}{
			"status":      model.KYCStatusApproved,
			"reviewed_by": adminId,
			"reviewed_at": &now,
			"expires_at":  &expiresAt,
		}).Error; err != nil {
		return nil, err
	}

	return k.getKYC(kycId)
}

// RejectKYC 审核驳回
func (k *KYCLogic) RejectKYC(adminId int64, kycId int64, reason string) (*model.KYC, error) {
	kyc, err := k.getKYC(kycId)
	if err != nil {
		return nil, err
	}

	if kyc.Status != model.KYCStatusPending {
		return nil, Conflict(fmt.Sprintf("KYC当前状态为%s，不能驳回", kyc.Status))
	}

	if reason == "" {
		reason = "材料不符合审核要求"
	}

	now := time.Now()
	if err := k.db.Model(&model.KYC{}).
		Where("id = ? AND status = ?", kycId, model.KYCStatusPending).
		Updates(map[string]interface{}{
			"status":           model.KYCStatusRejected,
			"reviewed_by":      adminId,
			"reviewed_at":      &now,
			"rejection_reason": reason,
		}).Error; err != nil {
		return nil, err
	}

	return k.getKYC(kycId)
}

// GetPendingKYC 获取待审核列表
func (k *KYCLogic) GetPendingKYC(page, pageSize int) ([]model.KYC, int64, error) {
	var kycs []model.KYC
	var total int64

	query := k.db.Model(&model.KYC{}).Where("status = ?", model.KYCStatusPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("User").Preload("Documents").
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&kycs).Error; err != nil {
		return nil, 0, err
	}

	return kycs, total, nil
}

// getKYC 加载审核记录及材料
func (k *KYCLogic) getKYC(id int64) (*model.KYC, error) {
	var kyc model.KYC
	if err := k.db.Preload("Documents").First(&kyc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("KYC记录不存在")
		}
		return nil, err
	}
	return &kyc, nil
}
