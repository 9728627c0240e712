package model

import (
	"time"
)

// Catalogue 农业物资目录条目
type Catalogue struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name          string `json:"name" gorm:"not null"`
	Category      string `json:"category" gorm:"not null;index"`
	Description   string `json:"description" gorm:"type:text"`
	Unit          string `json:"unit"`
	EstimatedCost int64  `json:"estimated_cost"`
	Active        bool   `json:"active" gorm:"default:true"`
}

// TableName 自定义表名
func (Catalogue) TableName() string {
	return "catalogue"
}
