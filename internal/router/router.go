package router

import (
	"github.com/blues/dfs/internal/cache"
	"github.com/blues/dfs/internal/config"
	"github.com/blues/dfs/internal/handler"
	"github.com/blues/dfs/internal/logic"
	"github.com/blues/dfs/internal/middleware"
	"github.com/blues/dfs/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cacheClient *cache.Cache, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "donation-funding-service",
		})
	})

	// 业务逻辑
	authLogic := logic.NewAuthLogic(db, cfg.JWT)
	projectLogic := logic.NewProjectLogic(db)
	milestoneLogic := logic.NewMilestoneLogic(db)
	pledgeLogic := logic.NewPledgeLogic(db)
	kycLogic := logic.NewKYCLogic(db)
	fundingRequestLogic := logic.NewFundingRequestLogic(db)
	dashboardLogic := logic.NewDashboardLogic(db, cacheClient, cfg.Cache.TTL)
	reportLogic := logic.NewReportLogic(db)
	ledgerLogic := logic.NewLedgerLogic(db)
	catalogueLogic := logic.NewCatalogueLogic(db)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由
		authHandler := handler.NewAuthHandler(authLogic)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.Authenticate(cfg.JWT), authHandler.Me)
		}

		// 管理员路由
		adminHandler := handler.NewAdminHandler(
			dashboardLogic, projectLogic, milestoneLogic, kycLogic, fundingRequestLogic, reportLogic)
		admin := v1.Group("/admin",
			middleware.Authenticate(cfg.JWT),
			middleware.RequireRole(string(model.UserRoleAdmin)))
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/projects", adminHandler.GetProjects)
			admin.PUT("/projects/:id/status", adminHandler.UpdateProjectStatus)
			admin.GET("/milestones/pending", adminHandler.GetPendingMilestones)
			admin.POST("/milestones/:id/approve", adminHandler.ApproveMilestone)
			admin.POST("/milestones/:id/reject", adminHandler.RejectMilestone)
			admin.GET("/kyc/pending", adminHandler.GetPendingKYC)
			admin.POST("/kyc/:id/approve", adminHandler.ApproveKYC)
			admin.POST("/kyc/:id/reject", adminHandler.RejectKYC)
			admin.GET("/funding-requests/pending", adminHandler.GetPendingFundingRequests)
			admin.POST("/funding-requests/:id/review", adminHandler.ReviewFundingRequest)
			admin.GET("/reports/user-registration", adminHandler.GetUserRegistrationReport)
			admin.GET("/reports/funding-distribution", adminHandler.GetFundingDistribution)
			admin.GET("/reports/project-status", adminHandler.GetProjectStatusReport)
			admin.GET("/reports/top-donors", adminHandler.GetTopDonors)
		}

		// 受益人路由
		beneficiaryHandler := handler.NewBeneficiaryHandler(
			dashboardLogic, projectLogic, milestoneLogic, pledgeLogic,
			fundingRequestLogic, reportLogic, kycLogic)
		beneficiary := v1.Group("/beneficiary",
			middleware.Authenticate(cfg.JWT),
			middleware.RequireRole(string(model.UserRoleBeneficiary)))
		{
			beneficiary.GET("/dashboard/overview", beneficiaryHandler.GetDashboardOverview)
			beneficiary.GET("/projects", beneficiaryHandler.GetProjects)
			beneficiary.POST("/projects", beneficiaryHandler.CreateProject)
			beneficiary.GET("/projects/:id", beneficiaryHandler.GetProject)
			beneficiary.PUT("/projects/:id", beneficiaryHandler.UpdateProject)
			beneficiary.DELETE("/projects/:id", beneficiaryHandler.DeleteProject)
			beneficiary.GET("/projects/:id/milestones", beneficiaryHandler.GetMilestones)
			beneficiary.POST("/projects/:id/milestones", beneficiaryHandler.CreateMilestone)
			beneficiary.POST("/milestones/:id/evidence", beneficiaryHandler.SubmitEvidence)
			beneficiary.POST("/milestones/:id/resubmit", beneficiaryHandler.ResubmitMilestone)
			beneficiary.GET("/documents/missing", beneficiaryHandler.GetMissingDocuments)
			beneficiary.GET("/donors", beneficiaryHandler.GetDonors)
			beneficiary.GET("/funding-requests", beneficiaryHandler.GetFundingRequests)
			beneficiary.POST("/funding-requests", beneficiaryHandler.CreateFundingRequest)
			beneficiary.DELETE("/funding-requests/:id", beneficiaryHandler.DeleteFundingRequest)
			beneficiary.GET("/reports/funding-progress", beneficiaryHandler.GetFundingProgress)
			beneficiary.GET("/reports/project-status", beneficiaryHandler.GetProjectStatusReport)
			beneficiary.GET("/reports", beneficiaryHandler.GetReports)
			beneficiary.POST("/reports", beneficiaryHandler.CreateReport)
			beneficiary.POST("/kyc", beneficiaryHandler.SubmitKYC)
		}

		// 捐赠人路由
		donorHandler := handler.NewDonorHandler(
			dashboardLogic, projectLogic, milestoneLogic, pledgeLogic, ledgerLogic)
		donor := v1.Group("/donor",
			middleware.Authenticate(cfg.JWT),
			middleware.RequireRole(string(model.UserRoleDonor)))
		{
			donor.GET("/dashboard/overview", donorHandler.GetDashboardOverview)
			donor.GET("/projects", donorHandler.GetProjects)
			donor.GET("/projects/:id", donorHandler.GetProject)
			donor.GET("/projects/:id/milestones", donorHandler.GetMilestones)
			donor.GET("/pledges", donorHandler.GetPledges)
			donor.POST("/pledges", donorHandler.CreatePledge)
			donor.GET("/ledger", donorHandler.GetLedger)
			donor.GET("/alerts", donorHandler.GetAlerts)
			donor.GET("/notifications", donorHandler.GetNotifications)
		}

		// 物资目录路由
		catalogueHandler := handler.NewCatalogueHandler(catalogueLogic)
		catalogues := v1.Group("/catalogues")
		{
			catalogues.GET("", catalogueHandler.GetCatalogues)
			catalogues.GET("/:id", catalogueHandler.GetCatalogue)

			adminOnly := catalogues.Group("",
				middleware.Authenticate(cfg.JWT),
				middleware.RequireRole(string(model.UserRoleAdmin)))
			{
				adminOnly.POST("", catalogueHandler.CreateCatalogue)
				adminOnly.PUT("/:id", catalogueHandler.UpdateCatalogue)
				adminOnly.DELETE("/:id", catalogueHandler.DeleteCatalogue)
			}
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
