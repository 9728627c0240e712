package logic

import (
	"errors"

	"github.com/blues/dfs/internal/model"
	"gorm.io/gorm"
)

// CatalogueLogic 农业物资目录业务逻辑
type CatalogueLogic struct {
	db *gorm.DB
}

// NewCatalogueLogic 创建目录业务逻辑
func NewCatalogueLogic(db *gorm.DB) *CatalogueLogic {
	return &CatalogueLogic{db: db}
}

// CreateCatalogue 创建目录条目（管理员）
func (c *CatalogueLogic) CreateCatalogue(item *model.Catalogue) error {
	if item.Name == "" {
		return Validation("物资名称不能为空")
	}
	if item.Category == "" {
		return Validation("物资类别不能为空")
	}

	return c.db.Create(item).Error
}

// UpdateCatalogue 更新目录条目（管理员）
func (c *CatalogueLogic) UpdateCatalogue(id int64, updates map[string]interface{}) (*model.Catalogue, error) {
	var item model.Catalogue
	if err := c.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("目录条目不存在")
		}
		return nil, err
	}

	allowedFields := []string{"name", "category", "description", "unit", "estimated_cost", "active"}
	for key := range updates {
		if !contains(allowedFields, key) {
			delete(updates, key)
		}
	}
	if len(updates) == 0 {
		return nil, Validation("没有要更新的字段")
	}

	if err := c.db.Model(&item).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

// DeleteCatalogue 删除目录条目（管理员）
func (c *CatalogueLogic) DeleteCatalogue(id int64) error {
	var item model.Catalogue
	if err := c.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("目录条目不存在")
		}
		return err
	}

	return c.db.Delete(&model.Catalogue{}, id).Error
}

// GetCatalogues 获取目录列表
func (c *CatalogueLogic) GetCatalogues(category string, page, pageSize int) ([]model.Catalogue, int64, error) {
	query := c.db.Model(&model.Catalogue{}).Where("active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Catalogue
	if err := query.Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetCatalogue 获取目录条目详情
func (c *CatalogueLogic) GetCatalogue(id int64) (*model.Catalogue, error) {
	var item model.Catalogue
	if err := c.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("目录条目不存在")
		}
		return nil, err
	}
	return &item, nil
}
