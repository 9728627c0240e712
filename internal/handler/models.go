package handler

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// NewPagination 计算分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}

// 请求模型

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Location    string `json:"location" binding:"required"`
	FundingGoal int64  `json:"funding_goal" binding:"required"`
}

// CreateMilestoneRequest 创建里程碑请求
type CreateMilestoneRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	TargetDate    string `json:"target_date" binding:"required"` // RFC3339
	TrancheAmount int64  `json:"tranche_amount" binding:"required"`
}

// SubmitEvidenceRequest 提交证明材料请求，URL由上游文件服务生成
type SubmitEvidenceRequest struct {
	URL          string `json:"url" binding:"required"`
	MimeType     string `json:"mime_type" binding:"required"`
	DocumentType string `json:"document_type"`
	Description  string `json:"description"`
}

// ReviewRequest 审核请求（驳回时携带原因）
type ReviewRequest struct {
	Reason string `json:"reason"`
}

// CreatePledgeRequest 创建捐赠请求
type CreatePledgeRequest struct {
	ProjectId int64 `json:"project_id" binding:"required"`
	Amount    int64 `json:"amount" binding:"required"`
}

// CreateFundingRequestRequest 创建资金申请请求
type CreateFundingRequestRequest struct {
	ProjectId int64  `json:"project_id" binding:"required"`
	Amount    int64  `json:"amount" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// ReviewFundingRequestRequest 审核资金申请请求
type ReviewFundingRequestRequest struct {
	Decision string `json:"decision" binding:"required"` // approve / reject
	Reason   string `json:"reason"`
}

// SubmitKYCRequest 提交身份审核请求
type SubmitKYCRequest struct {
	Documents []KYCDocumentRequest `json:"documents" binding:"required"`
}

// KYCDocumentRequest 身份审核材料
type KYCDocumentRequest struct {
	Type string `json:"type" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

// UpdateProjectStatusRequest 更新项目状态请求
type UpdateProjectStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
