package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/dfs/internal/logic"
	"github.com/blues/dfs/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AdminHandler 管理员处理器
type AdminHandler struct {
	dashboardLogic      *logic.DashboardLogic
	projectLogic        *logic.ProjectLogic
	milestoneLogic      *logic.MilestoneLogic
	kycLogic            *logic.KYCLogic
	fundingRequestLogic *logic.FundingRequestLogic
	reportLogic         *logic.ReportLogic
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(
	dashboardLogic *logic.DashboardLogic,
	projectLogic *logic.ProjectLogic,
	milestoneLogic *logic.MilestoneLogic,
	kycLogic *logic.KYCLogic,
	fundingRequestLogic *logic.FundingRequestLogic,
	reportLogic *logic.ReportLogic,
) *AdminHandler {
	return &AdminHandler{
		dashboardLogic:      dashboardLogic,
		projectLogic:        projectLogic,
		milestoneLogic:      milestoneLogic,
		kycLogic:            kycLogic,
		fundingRequestLogic: fundingRequestLogic,
		reportLogic:         reportLogic,
	}
}

// GetDashboard 管理员仪表盘
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardLogic.GetAdminDashboard(c.Request.Context())
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取仪表盘数据成功", dashboard)
}

// GetProjects 项目列表
func (h *AdminHandler) GetProjects(c *gin.Context) {
	page, pageSize := paginationParams(c)

	filter := logic.ProjectFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	projects, total, err := h.projectLogic.GetProjects(filter, page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目列表成功", gin.H{
		"projects":   projects,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// UpdateProjectStatus 更新项目状态
func (h *AdminHandler) UpdateProjectStatus(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	var req UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectLogic.UpdateProjectStatus(middleware.UserId(c), id, req.Status)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目状态更新成功", gin.H{"project": project})
}

// GetPendingMilestones 待审批里程碑列表
func (h *AdminHandler) GetPendingMilestones(c *gin.Context) {
	page, pageSize := paginationParams(c)

	milestones, total, err := h.milestoneLogic.GetPendingMilestones(page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取待审批里程碑成功", gin.H{
		"milestones": milestones,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// ApproveMilestone 审批通过里程碑
func (h *AdminHandler) ApproveMilestone(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	milestone, err := h.milestoneLogic.ApproveMilestone(middleware.UserId(c), id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "里程碑审批通过", gin.H{"milestone": milestone})
}

// RejectMilestone 驳回里程碑
func (h *AdminHandler) RejectMilestone(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	milestone, err := h.milestoneLogic.RejectMilestone(middleware.UserId(c), id, req.Reason)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "里程碑已驳回", gin.H{"milestone": milestone})
}

// GetPendingKYC 待审核KYC列表
func (h *AdminHandler) GetPendingKYC(c *gin.Context) {
	page, pageSize := paginationParams(c)

	kycs, total, err := h.kycLogic.GetPendingKYC(page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取待审核KYC成功", gin.H{
		"kycs":       kycs,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// ApproveKYC 审核通过KYC
func (h *AdminHandler) ApproveKYC(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	kyc, err := h.kycLogic.ApproveKYC(middleware.UserId(c), id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "KYC审核通过", gin.H{"kyc": kyc})
}

// RejectKYC 驳回KYC
func (h *AdminHandler) RejectKYC(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	kyc, err := h.kycLogic.RejectKYC(middleware.UserId(c), id, req.Reason)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "KYC已驳回", gin.H{"kyc": kyc})
}

// GetPendingFundingRequests 待审核资金申请列表
func (h *AdminHandler) GetPendingFundingRequests(c *gin.Context) {
	page, pageSize := paginationParams(c)

	requests, total, err := h.fundingRequestLogic.GetPendingFundingRequests(page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取待审核资金申请成功", gin.H{
		"fundingRequests": requests,
		"pagination":      NewPagination(page, pageSize, total),
	})
}

// ReviewFundingRequest 审核资金申请
func (h *AdminHandler) ReviewFundingRequest(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	var req ReviewFundingRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Decision != "approve" && req.Decision != "reject" {
		ErrorResponse(c, http.StatusBadRequest, "无效的审核决定")
		return
	}

	request, err := h.fundingRequestLogic.ReviewFundingRequest(
		middleware.UserId(c), id, req.Decision == "approve", req.Reason)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "资金申请审核完成", gin.H{"fundingRequest": request})
}

// GetUserRegistrationReport 用户注册报表
func (h *AdminHandler) GetUserRegistrationReport(c *gin.Context) {
	data, err := h.reportLogic.GetUserRegistrationReport()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取用户注册报表成功", gin.H{"data": data})
}

// GetFundingDistribution 资金分布报表
func (h *AdminHandler) GetFundingDistribution(c *gin.Context) {
	data, err := h.reportLogic.GetFundingDistribution()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取资金分布报表成功", gin.H{"data": data})
}

// GetProjectStatusReport 项目状态报表
func (h *AdminHandler) GetProjectStatusReport(c *gin.Context) {
	data, err := h.reportLogic.GetProjectStatusReport(0)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目状态报表成功", gin.H{"data": data})
}

// GetTopDonors 捐赠排行报表
func (h *AdminHandler) GetTopDonors(c *gin.Context) {
	data, err := h.reportLogic.GetTopDonors()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取捐赠排行成功", gin.H{"data": data})
}

// paginationParams 解析分页参数
func paginationParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// parseIdParam 解析路径中的ID参数，解析失败时直接写入响应
func parseIdParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的ID")
		return 0, err
	}
	return id, nil
}
