package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/blues/dfs/internal/logic"
	"github.com/blues/dfs/internal/middleware"
	"github.com/blues/dfs/internal/model"
	"github.com/gin-gonic/gin"
)

// BeneficiaryHandler 受益人处理器
type BeneficiaryHandler struct {
	dashboardLogic      *logic.DashboardLogic
	projectLogic        *logic.ProjectLogic
	milestoneLogic      *logic.MilestoneLogic
	pledgeLogic         *logic.PledgeLogic
	fundingRequestLogic *logic.FundingRequestLogic
	reportLogic         *logic.ReportLogic
	kycLogic            *logic.KYCLogic
}

// NewBeneficiaryHandler 创建受益人处理器
func NewBeneficiaryHandler(
	dashboardLogic *logic.DashboardLogic,
	projectLogic *logic.ProjectLogic,
	milestoneLogic *logic.MilestoneLogic,
	pledgeLogic *logic.PledgeLogic,
	fundingRequestLogic *logic.FundingRequestLogic,
	reportLogic *logic.ReportLogic,
	kycLogic *logic.KYCLogic,
) *BeneficiaryHandler {
	return &BeneficiaryHandler{
		dashboardLogic:      dashboardLogic,
		projectLogic:        projectLogic,
		milestoneLogic:      milestoneLogic,
		pledgeLogic:         pledgeLogic,
		fundingRequestLogic: fundingRequestLogic,
		reportLogic:         reportLogic,
		kycLogic:            kycLogic,
	}
}

// GetDashboardOverview 受益人仪表盘
func (h *BeneficiaryHandler) GetDashboardOverview(c *gin.Context) {
	overview, err := h.dashboardLogic.GetBeneficiaryOverview(c.Request.Context(), middleware.UserId(c))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取仪表盘数据成功", overview)
}

// GetProjects 自己的项目列表
func (h *BeneficiaryHandler) GetProjects(c *gin.Context) {
	page, pageSize := paginationParams(c)

	filter := logic.ProjectFilter{
		BeneficiaryId: middleware.UserId(c),
		Status:        c.Query("status"),
		Category:      c.Query("category"),
		Search:        c.Query("search"),
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

// CreateProject 创建项目
func (h *BeneficiaryHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	project := model.Project{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		FundingGoal: req.FundingGoal,
	}

	if err := h.projectLogic.CreateProject(middleware.UserId(c), &project); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", gin.H{"project": project})
}

// GetProject 项目详情
func (h *BeneficiaryHandler) GetProject(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	project, err := h.projectLogic.GetOwnedProject(middleware.UserId(c), id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目详情成功", gin.H{"project": project})
}

// UpdateProject 更新项目
func (h *BeneficiaryHandler) UpdateProject(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	// 只允许更新特定字段
	var updateData struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Location    *string `json:"location"`
		FundingGoal *int64  `json:"funding_goal"`
	}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if updateData.Title != nil {
		updates["title"] = *updateData.Title
	}
	if updateData.Description != nil {
		updates["description"] = *updateData.Description
	}
	if updateData.Category != nil {
		updates["category"] = *updateData.Category
	}
	if updateData.Location != nil {
		updates["location"] = *updateData.Location
	}
	if updateData.FundingGoal != nil {
		updates["funding_goal"] = *updateData.FundingGoal
	}

	project, err := h.projectLogic.UpdateProject(middleware.UserId(c), id, updates)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目更新成功", gin.H{"project": project})
}

// DeleteProject 删除项目
func (h *BeneficiaryHandler) DeleteProject(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	if err := h.projectLogic.DeleteProject(middleware.UserId(c), id); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目删除成功", nil)
}

// GetDonors 捐赠人列表
func (h *BeneficiaryHandler) GetDonors(c *gin.Context) {
	donors, err := h.pledgeLogic.GetProjectDonors(middleware.UserId(c), c.Query("search"))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取捐赠人列表成功", gin.H{"donors": donors})
}

// GetFundingRequests 资金申请列表
func (h *BeneficiaryHandler) GetFundingRequests(c *gin.Context) {
	page, pageSize := paginationParams(c)

	requests, total, err := h.fundingRequestLogic.GetFundingRequests(middleware.UserId(c), page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取资金申请列表成功", gin.H{
		"fundingRequests": requests,
		"pagination":      NewPagination(page, pageSize, total),
	})
}

// CreateFundingRequest 创建资金申请
func (h *BeneficiaryHandler) CreateFundingRequest(c *gin.Context) {
	var req CreateFundingRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.fundingRequestLogic.CreateFundingRequest(
		middleware.UserId(c), req.ProjectId, req.Amount, req.Reason)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "资金申请创建成功", gin.H{"fundingRequest": request})
}

// DeleteFundingRequest 删除资金申请
func (h *BeneficiaryHandler) DeleteFundingRequest(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	if err := h.fundingRequestLogic.DeleteFundingRequest(middleware.UserId(c), id); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "资金申请删除成功", nil)
}

// GetMilestones 项目里程碑列表
func (h *BeneficiaryHandler) GetMilestones(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	milestones, err := h.milestoneLogic.GetProjectMilestones(middleware.UserId(c), id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取里程碑列表成功", gin.H{"milestones": milestones})
}

// CreateMilestone 创建里程碑
func (h *BeneficiaryHandler) CreateMilestone(c *gin.Context) {
	projectId, err := parseIdParam(c)
	if err != nil {
		return
	}

	var req CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	targetDate, err := time.Parse(time.RFC3339, req.TargetDate)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的目标日期格式")
		return
	}

	milestone := model.Milestone{
		ProjectId:     projectId,
		Title:         req.Title,
		Description:   req.Description,
		TargetDate:    targetDate,
		TrancheAmount: req.TrancheAmount,
	}

	if err := h.milestoneLogic.CreateMilestone(middleware.UserId(c), &milestone); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "里程碑创建成功", gin.H{"milestone": milestone})
}

// SubmitEvidence 提交里程碑证明材料
func (h *BeneficiaryHandler) SubmitEvidence(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	var req SubmitEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	milestone, err := h.milestoneLogic.SubmitEvidence(middleware.UserId(c), id, logic.EvidenceInput{
		URL:          req.URL,
		MimeType:     req.MimeType,
		DocumentType: req.DocumentType,
		Description:  req.Description,
	})
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "材料提交成功", gin.H{"milestone": milestone})
}

// ResubmitMilestone 重新发起被驳回的里程碑
func (h *BeneficiaryHandler) ResubmitMilestone(c *gin.Context) {
	id, err := parseIdParam(c)
	if err != nil {
		return
	}

	milestone, err := h.milestoneLogic.Resubmit(middleware.UserId(c), id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "里程碑已重新发起", gin.H{"milestone": milestone})
}

// GetMissingDocuments 待提交材料的里程碑
func (h *BeneficiaryHandler) GetMissingDocuments(c *gin.Context) {
	milestones, err := h.milestoneLogic.GetMissingDocuments(middleware.UserId(c))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	missing := make([]gin.H, 0, len(milestones))
	for _, m := range milestones {
		missing = append(missing, gin.H{
			"projectId":      m.ProjectId,
			"projectTitle":   m.Project.Title,
			"milestoneId":    m.Id,
			"milestoneTitle": m.Title,
			"targetDate":     m.TargetDate,
		})
	}

	SuccessResponse(c, http.StatusOK, "获取待提交材料成功", gin.H{"missingDocuments": missing})
}

// GetFundingProgress 筹款进度报表
func (h *BeneficiaryHandler) GetFundingProgress(c *gin.Context) {
	data, err := h.reportLogic.GetFundingProgress(middleware.UserId(c))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取筹款进度成功", gin.H{"data": data})
}

// GetProjectStatusReport 项目状态报表
func (h *BeneficiaryHandler) GetProjectStatusReport(c *gin.Context) {
	data, err := h.reportLogic.GetProjectStatusReport(middleware.UserId(c))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目状态报表成功", gin.H{"data": data})
}

// GetReports 阶段性报告列表
func (h *BeneficiaryHandler) GetReports(c *gin.Context) {
	page, pageSize := paginationParams(c)
	projectId, _ := strconv.ParseInt(c.Query("project_id"), 10, 64)

	reports, total, err := h.reportLogic.GetReports(
		middleware.UserId(c), projectId, c.Query("status"), page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取报告列表成功", gin.H{
		"reports":    reports,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// CreateReport 创建阶段性报告
func (h *BeneficiaryHandler) CreateReport(c *gin.Context) {
	var report model.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.reportLogic.CreateReport(middleware.UserId(c), &report); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "报告创建成功", gin.H{"report": report})
}

// SubmitKYC 提交身份审核材料
func (h *BeneficiaryHandler) SubmitKYC(c *gin.Context) {
	var req SubmitKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	documents := make([]logic.KYCDocumentInput, 0, len(req.Documents))
	for _, doc := range req.Documents {
		documents = append(documents, logic.KYCDocumentInput{Type: doc.Type, URL: doc.URL})
	}

	kyc, err := h.kycLogic.SubmitKYC(middleware.UserId(c), documents)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "KYC材料提交成功", gin.H{"kyc": kyc})
}
