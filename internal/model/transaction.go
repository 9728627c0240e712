package model

import (
	"time"
)

// Transaction 资金流水，只追加记账
type Transaction struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserId    int64 `json:"user_id" gorm:"not null;index"`
	ProjectId int64 `json:"project_id" gorm:"index"`

	Type        TransactionType `json:"type" gorm:"not null;index"`
	Category    string          `json:"category" gorm:"default:'Funding'"`
	Description string          `json:"description" gorm:"not null"`
	Amount      int64           `json:"amount" gorm:"not null"`
	Balance     int64           `json:"balance" gorm:"not null"` // 记账后余额快照
	Date        time.Time       `json:"date" gorm:"not null;index"`

	// 关联
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
}

// TransactionType 流水类型
type TransactionType string

const (
	TransactionTypePledge       TransactionType = "Pledge"       // 捐赠入账
	TransactionTypeDisbursement TransactionType = "Disbursement" // 里程碑放款
	TransactionTypeRefund       TransactionType = "Refund"       // 退款
)

// TableName 自定义表名
func (Transaction) TableName() string {
	return "transaction"
}
