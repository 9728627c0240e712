package handler

import (
	"net/http"

	"github.com/blues/dfs/internal/logic"
	"github.com/blues/dfs/internal/model"
	"github.com/gin-gonic/gin"
)

// CatalogueHandler 农业物资目录处理器
type CatalogueHandler struct {
	catalogueLogic *logic.CatalogueLogic
}

// NewCatalogueHandler 创建目录处理器
func NewCatalogueHandler(catalogueLogic *logic.CatalogueLogic) *CatalogueHandler {
	return &CatalogueHandler{catalogueLogic: catalogueLogic}
}

// GetCatalogues 目录列表（公开）
func (h *CatalogueHandler) GetCatalogues(c *gin.Context) {
	page, pageSize := paginationParams(c)

	items, total, err := h.catalogueLogic.GetCatalogues(c.Query("category"), page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取目录成功", gin.H{
		"catalogues": items,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetCatalogue 目录条目详情（公开）
func (h *CatalogueHandler) GetCatalogue(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	item, err := h.catalogueLogic.GetCatalogue(id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取目录条目成功", gin.H{"catalogue": item})
}

// CreateCatalogue 创建目录条目（管理员）
func (h *CatalogueHandler) CreateCatalogue(c *gin.Context) {
	var item model.Catalogue
	if err := c.ShouldBindJSON(&item); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.catalogueLogic.CreateCatalogue(&item); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "目录条目创建成功", gin.H{"catalogue": item})
}

// UpdateCatalogue 更新目录条目（管理员）
func (h *CatalogueHandler) UpdateCatalogue(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.catalogueLogic.UpdateCatalogue(id, updates)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "目录条目更新成功", gin.H{"catalogue": item})
}

// DeleteCatalogue 删除目录条目（管理员）
func (h *CatalogueHandler) DeleteCatalogue(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	if err := h.catalogueLogic.DeleteCatalogue(id); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "目录条目删除成功", nil)
}
