package handler

import (
	"net/http"
	"time"

	"github.com/blues/dfs/internal/logic"
	"github.com/blues/dfs/internal/middleware"
	"github.com/blues/dfs/internal/model"
	"github.com/gin-gonic/gin"
)

// DonorHandler 捐赠人处理器
type DonorHandler struct {
	dashboardLogic *logic.DashboardLogic
	projectLogic   *logic.ProjectLogic
	milestoneLogic *logic.MilestoneLogic
	pledgeLogic    *logic.PledgeLogic
	ledgerLogic    *logic.LedgerLogic
}

// NewDonorHandler 创建捐赠人处理器
func NewDonorHandler(
	dashboardLogic *logic.DashboardLogic,
	projectLogic *logic.ProjectLogic,
	milestoneLogic *logic.MilestoneLogic,
	pledgeLogic *logic.PledgeLogic,
	ledgerLogic *logic.LedgerLogic,
) *DonorHandler {
	return &DonorHandler{
		dashboardLogic: dashboardLogic,
		projectLogic:   projectLogic,
		milestoneLogic: milestoneLogic,
		pledgeLogic:    pledgeLogic,
		ledgerLogic:    ledgerLogic,
	}
}

// GetDashboardOverview 捐赠人仪表盘
func (h *DonorHandler) GetDashboardOverview(c *gin.Context) {
	overview, err := h.dashboardLogic.GetDonorOverview(c.Request.Context(), middleware.UserId(c))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取仪表盘数据成功", overview)
}

// GetProjects 可捐赠项目列表，附带是否已捐标记
func (h *DonorHandler) GetProjects(c *gin.Context) {
	page, pageSize := paginationParams(c)

	filter := logic.ProjectFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if status := c.Query("status"); status != "" {
		filter.Status = status
	} else {
		filter.Statuses = []model.ProjectStatus{
			model.ProjectStatusActive,
			model.ProjectStatusCompleted,
		}
	}

	projects, total, err := h.projectLogic.GetProjects(filter, page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	donorId := middleware.UserId(c)
	list := make([]gin.H, 0, len(projects))
	for _, project := range projects {
		pledged, err := h.pledgeLogic.HasPledged(donorId, project.Id)
		if err != nil {
			LogicErrorResponse(c, err)
			return
		}
		list = append(list, gin.H{
			"project":    project,
			"hasPledged": pledged,
		})
	}

	SuccessResponse(c, http.StatusOK, "获取项目列表成功", gin.H{
		"projects":   list,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetProject 项目详情
func (h *DonorHandler) GetProject(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	donorId := middleware.UserId(c)
	pledged, err := h.pledgeLogic.HasPledged(donorId, project.Id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	// 已取消的项目仅对已捐赠人可见
	if project.Status == model.ProjectStatusCancelled && !pledged {
		LogicErrorResponse(c, logic.Forbidden("无权访问该项目"))
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目详情成功", gin.H{
		"project":    project,
		"hasPledged": pledged,
	})
}

// GetMilestones 项目里程碑进度
func (h *DonorHandler) GetMilestones(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	milestones, err := h.milestoneLogic.ListMilestones(id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取里程碑列表成功", gin.H{"milestones": milestones})
}

// GetLedger 资金流水
func (h *DonorHandler) GetLedger(c *gin.Context) {
	page, pageSize := paginationParams(c)

	filter := logic.LedgerFilter{Type: c.Query("type")}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.DateTo = &t
		}
	}

	transactions, total, err := h.ledgerLogic.GetLedger(middleware.UserId(c), filter, page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取流水成功", gin.H{
		"transactions": transactions,
		"pagination":   NewPagination(page, pageSize, total),
	})
}

// GetAlerts 所捐项目的风险告警
func (h *DonorHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.ledgerLogic.GetDonorAlerts(middleware.UserId(c))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取告警列表成功", gin.H{"alerts": alerts})
}

// GetNotifications 通知列表
func (h *DonorHandler) GetNotifications(c *gin.Context) {
	page, pageSize := paginationParams(c)

	notifications, total, err := h.ledgerLogic.GetNotifications(middleware.UserId(c), page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取通知列表成功", gin.H{
		"notifications": notifications,
		"pagination":    NewPagination(page, pageSize, total),
	})
}

// CreatePledge 发起捐赠
func (h *DonorHandler) CreatePledge(c *gin.Context) {
	var req CreatePledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	pledge, err := h.pledgeLogic.CreatePledge(middleware.UserId(c), req.ProjectId, req.Amount)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "捐赠成功", gin.H{"pledge": pledge})
}

// GetPledges 捐赠记录
func (h *DonorHandler) GetPledges(c *gin.Context) {
	pledges, err := h.pledgeLogic.GetDonorPledges(middleware.UserId(c))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取捐赠记录成功", gin.H{"pledges": pledges})
}
