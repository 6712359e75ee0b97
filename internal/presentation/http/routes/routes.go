package routes

import (
	"time"

	"github.com/edusys/school-api/internal/config"
	"github.com/edusys/school-api/internal/domain/entity"
	domainRepo "github.com/edusys/school-api/internal/domain/repository"
	"github.com/edusys/school-api/internal/presentation/http/handler"
	"github.com/edusys/school-api/internal/presentation/http/middleware"
	"github.com/edusys/school-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	School     *handler.SchoolHandler
	Student    *handler.StudentHandler
	Academic   *handler.AcademicHandler
	Fee        *handler.FeeHandler
	Billing    *handler.BillingHandler
	Exam       *handler.ExamHandler
	ReportCard *handler.ReportCardHandler
	Attendance *handler.AttendanceHandler
	Dashboard  *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-school rate limiter
		rateLimiter := middleware.NewSchoolRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/auth/users", middleware.RequireRole(entity.RoleAdmin), h.Auth.CreateUser)

	// Schools (admin only)
	schools := protected.Group("/schools")
	schools.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		schools.GET("", h.School.List)
		schools.POST("", h.School.Create)
		schools.GET("/:id", h.School.Get)
	}

	// Academic reference data
	academic := protected.Group("")
	{
		academic.GET("/academic-years", h.Academic.ListYears)
		academic.POST("/academic-years", middleware.RequireRole(entity.RoleAdmin), h.Academic.CreateYear)
		academic.GET("/classes", h.Academic.ListClasses)
		academic.POST("/classes", middleware.RequireRole(entity.RoleAdmin), h.Academic.CreateClass)
		academic.GET("/subjects", h.Academic.ListSubjects)
		academic.POST("/subjects", middleware.RequireRole(entity.RoleAdmin), h.Academic.CreateSubject)
	}

	// Students
	students := protected.Group("/students")
	{
		students.GET("", h.Student.List)
		students.POST("", middleware.RequireRole(entity.RoleAdmin), h.Student.Create)
		students.GET("/:id", h.Student.Get)
		students.PUT("/:id", middleware.RequireRole(entity.RoleAdmin), h.Student.Update)
		students.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Student.Delete)
		students.GET("/:id/fee-status", h.Billing.GetStudentFeeStatus)
	}

	// Fee structures
	fees := protected.Group("/fee-structures")
	{
		fees.GET("", h.Fee.List)
		fees.POST("", middleware.RequireRole(entity.RoleAdmin, entity.RoleAccountant), h.Fee.Create)
		fees.GET("/:id", h.Fee.Get)
	}

	// Invoices and payments. Mutations accept an Idempotency-Key so a
	// retried request replays the original response instead of double
	// billing.
	idem := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Billing.ListInvoices)
		invoices.POST("", middleware.RequireRole(entity.RoleAdmin, entity.RoleAccountant), idem, h.Billing.CreateInvoice)
		invoices.GET("/:id", h.Billing.GetInvoice)
		invoices.GET("/:id/payments", h.Billing.ListInvoicePayments)
		invoices.POST("/:id/payments", middleware.RequireRole(entity.RoleAdmin, entity.RoleAccountant), idem, h.Billing.RecordPayment)
	}

	// Exams, marks and report cards
	exams := protected.Group("/exams")
	{
		exams.GET("", h.Exam.List)
		exams.POST("", middleware.RequireRole(entity.RoleAdmin, entity.RoleTeacher), h.Exam.Create)
		exams.GET("/:id", h.Exam.Get)
		exams.POST("/:id/marks", middleware.RequireRole(entity.RoleAdmin, entity.RoleTeacher), h.Exam.UploadMarks)
		exams.GET("/:id/marks/:student_id", h.Exam.GetStudentMarks)
		exams.POST("/:id/report-cards/generate", middleware.RequireRole(entity.RoleAdmin, entity.RoleTeacher), h.ReportCard.Generate)
		exams.GET("/:id/report-cards", h.ReportCard.List)
		exams.GET("/:id/report-cards/:student_id", h.ReportCard.GetStudent)
		exams.POST("/:id/report-cards/publish", middleware.RequireRole(entity.RoleAdmin), h.ReportCard.Publish)
	}

	// Attendance
	attendance := protected.Group("/attendance")
	{
		attendance.POST("", middleware.RequireRole(entity.RoleAdmin, entity.RoleTeacher), h.Attendance.Mark)
		attendance.GET("/sessions/:id", h.Attendance.GetSession)
		attendance.GET("/classes/:class_id/summary", h.Attendance.ClassSummary)
	}

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Summary)
}
