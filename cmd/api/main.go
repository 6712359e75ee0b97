package main

import (
	"log"
	"os"

	"github.com/edusys/school-api/internal/application/service"
	"github.com/edusys/school-api/internal/config"
	"github.com/edusys/school-api/internal/infrastructure/database"
	"github.com/edusys/school-api/internal/infrastructure/repository"
	"github.com/edusys/school-api/internal/presentation/http/handler"
	"github.com/edusys/school-api/internal/presentation/http/routes"
	"github.com/edusys/school-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	schoolRepo := repository.NewSchoolRepository(db)
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	yearRepo := repository.NewAcademicYearRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	feeRepo := repository.NewFeeStructureRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	seqRepo := repository.NewSequenceRepository(db)
	examRepo := repository.NewExamRepository(db)
	markRepo := repository.NewMarkRepository(db)
	reportCardRepo := repository.NewReportCardRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, schoolRepo, jwtManager)
	schoolService := service.NewSchoolService(schoolRepo, txManager)
	studentService := service.NewStudentService(studentRepo, classRepo)
	academicService := service.NewAcademicService(yearRepo, classRepo, subjectRepo)
	feeService := service.NewFeeService(feeRepo, yearRepo, classRepo)
	billingService := service.NewBillingService(invoiceRepo, paymentRepo, studentRepo, feeRepo, schoolRepo, yearRepo, seqRepo, txManager)
	examService := service.NewExamService(examRepo, markRepo, studentRepo, subjectRepo, yearRepo, txManager)
	reportCardService := service.NewReportCardService(examRepo, markRepo, reportCardRepo, txManager)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, classRepo, txManager)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		School:     handler.NewSchoolHandler(schoolService),
		Student:    handler.NewStudentHandler(studentService),
		Academic:   handler.NewAcademicHandler(academicService),
		Fee:        handler.NewFeeHandler(feeService),
		Billing:    handler.NewBillingHandler(billingService),
		Exam:       handler.NewExamHandler(examService),
		ReportCard: handler.NewReportCardHandler(reportCardService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
	}

	// Setup router
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Start server
	port := cfg.App.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	log.Printf("Starting %s on port %s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
