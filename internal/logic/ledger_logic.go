package logic

import (
	"time"

	"github.com/blues/dfs/internal/model"
	"gorm.io/gorm"
)

// LedgerLogic 资金流水、告警、通知查询
type LedgerLogic struct {
	db *gorm.DB
}

// NewLedgerLogic 创建流水业务逻辑
func NewLedgerLogic(db *gorm.DB) *LedgerLogic {
	return &LedgerLogic{db: db}
}

// LedgerFilter 流水过滤条件
type LedgerFilter struct {
	Type     string
	DateFrom *time.Time
	DateTo   *time.Time
}

// GetLedger 获取用户流水，按时间倒序
func (l *LedgerLogic) GetLedger(userId int64, filter LedgerFilter, page, pageSize int) ([]model.Transaction, int64, error) {
	query := l.db.Model(&model.Transaction{}).Where("user_id = ?", userId)

	if filter.Type != "" && filter.Type != "all" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []model.Transaction
	if err := query.Preload("Project").
		Order("date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// GetDonorAlerts 获取捐赠人所捐项目的告警，最多50条
func (l *LedgerLogic) GetDonorAlerts(donorId int64) ([]model.Alert, error) {
	pledgedProjects := l.db.Model(&model.Pledge{}).
		Where("donor_id = ?", donorId).
		Distinct("project_id")

	var alerts []model.Alert
	if err := l.db.Where("project_id IN (?)", pledgedProjects).
		Preload("Project").
		Order("created_at DESC").
		Limit(50).
		Find(&alerts).Error; err != nil {
		return nil, err
	}

	return alerts, nil
}

// GetNotifications 获取用户通知列表
func (l *LedgerLogic) GetNotifications(userId int64, page, pageSize int) ([]model.Notification, int64, error) {
	query := l.db.Model(&model.Notification{}).Where("user_id = ?", userId)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []model.Notification
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}
