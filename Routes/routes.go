package Routes

import (
	"ProSpine/Controllers"
	"ProSpine/Middleware"
	"ProSpine/SSE"
	"ProSpine/Whatsapp"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func ConfigRoutes(router *gin.Engine) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/login", Middleware.RateLimiter(Middleware.RateLimitConfig{}), Controllers.Login)
		public.POST("/SaveFcmToken", Controllers.SaveFcmToken)
	}

	// Authorized routes
	authorized := router.Group("/api/protected")
	authorized.Use(Middleware.JwtAuthMiddleware())
	authorized.Use(Middleware.SetBranch())
	{
		// User-related routes
		authorized.GET("/user", Controllers.CurrentUser)

		// Registration-related routes
		authorized.POST("/CreateRegistration", Controllers.CreateRegistration)
		authorized.GET("/FetchRegistrations", Controllers.FetchRegistrations)
		authorized.POST("/UpdateRegistrationStatus", Controllers.UpdateRegistrationStatus)
		authorized.POST("/ConvertRegistration", Controllers.ConvertRegistration)

		// Patient-related routes
		authorized.GET("/FetchPatients", Controllers.FetchPatients)
		authorized.POST("/FetchPatientDetails", Controllers.FetchPatientDetails)
		authorized.POST("/UpdatePatient", Controllers.UpdatePatient)
		authorized.POST("/UpdatePatientStatus", Controllers.UpdatePatientStatus)
		authorized.POST("/GetPatientIdByPhone", Controllers.GetPatientIdByPhone)

		// Attendance-related routes
		authorized.GET("/FetchAttendance", Controllers.FetchAttendance)
		authorized.POST("/MarkAttendance", Controllers.MarkAttendance)
		authorized.POST("/FetchAttendanceHistory", Controllers.FetchAttendanceHistory)

		// Payment-related routes
		authorized.POST("/AddPayment", Controllers.AddPayment)
		authorized.POST("/FetchPayments", Controllers.FetchPayments)
		authorized.GET("/FetchCollections", Controllers.FetchCollections)

		// Test-related routes
		authorized.POST("/CreateTestOrder", Controllers.CreateTestOrder)
		authorized.GET("/FetchTestOrders", Controllers.FetchTestOrders)
		authorized.POST("/UpdateTestItemStatus", Controllers.UpdateTestItemStatus)

		// Expense-related routes
		authorized.POST("/CreateExpense", Controllers.CreateExpense)
		authorized.GET("/FetchExpenses", Controllers.FetchExpenses)
		authorized.GET("/FetchExpenseSummary", Controllers.FetchExpenseSummary)

		// Branch-related routes
		authorized.GET("/FetchBranches", Controllers.FetchBranches)
		authorized.GET("/FetchBranchBudget", Controllers.FetchBranchBudget)

		// Insight-related routes
		authorized.GET("/RetentionRadar", Controllers.RetentionRadar)

		// Dashboard-related routes
		authorized.GET("/FetchDashboard", Controllers.FetchDashboard)
		authorized.GET("/FetchNotifications", Controllers.FetchNotifications)
		authorized.POST("/MarkNotificationRead", Controllers.MarkNotificationRead)
		authorized.GET("/FetchInquiries", Controllers.FetchInquiries)

		// SSE (Server-Sent Events) route
		authorized.GET("/RequestSSE", SSE.RequestSSE)
	}

	// Admin-only routes
	admin := router.Group("/api/protected/admin")
	admin.Use(Middleware.JwtAuthMiddleware())
	admin.Use(Middleware.SetBranch())
	admin.Use(Middleware.PermissionCheckAdmin())
	{
		// Account management
		admin.POST("/RegisterEmployee", Controllers.RegisterEmployee)

		// Attendance approvals
		admin.POST("/ApproveAttendance", Controllers.ApproveAttendance)
		admin.POST("/RejectAttendance", Controllers.RejectAttendance)

		// Expense approvals
		admin.POST("/UpdateExpenseStatus", Controllers.UpdateExpenseStatus)

		// Branch management
		admin.POST("/SaveBranch", Controllers.SaveBranch)
		admin.POST("/ToggleBranchStatus", Controllers.ToggleBranchStatus)
		admin.POST("/SaveBranchBudget", Controllers.SaveBranchBudget)

		// Referral partner management
		admin.GET("/FetchReferralPartners", Controllers.FetchReferralPartners)
		admin.POST("/AddReferralPartner", Controllers.AddReferralPartner)
		admin.POST("/UpdateReferralPartner", Controllers.UpdateReferralPartner)
		admin.POST("/UpdateGlobalReferralRates", Controllers.UpdateGlobalReferralRates)
		admin.POST("/FetchPartnerTransactions", Controllers.FetchPartnerTransactions)
		admin.GET("/ReferralDrift", Controllers.ReferralDrift)

		// Report-related routes
		admin.GET("/TestReport", Controllers.TestReport)
		admin.GET("/RegistrationReport", Controllers.RegistrationReport)
		admin.GET("/PatientReport", Controllers.PatientReport)
		admin.GET("/FetchReportFilterOptions", Controllers.FetchReportFilterOptions)

		// Export-related routes
		admin.GET("/ExportPatientReport", Controllers.ExportPatientReport)
		admin.GET("/ExportTestReport", Controllers.ExportTestReport)

		// WhatsApp-related routes
		admin.GET("/CheckWhatsAppLogin", Whatsapp.CheckLogin)
		admin.GET("/GetWhatsAppQRCode", Whatsapp.GetQRCode)
	}
}
