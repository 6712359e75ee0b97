package database

import (
	"fmt"
	"log"

	"github.com/edusys/school-api/internal/config"
	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenant and account entities
		&entity.School{},
		&entity.User{},

		// Academic reference data
		&entity.AcademicYear{},
		&entity.ClassRoom{},
		&entity.Subject{},
		&entity.Student{},

		// Billing entities
		&entity.FeeStructure{},
		&entity.FeeItem{},
		&entity.Invoice{},
		&entity.Payment{},
		&entity.SequenceCounter{},

		// Grading entities
		&entity.Exam{},
		&entity.ExamSchedule{},
		&entity.Mark{},
		&entity.ReportCard{},

		// Attendance entities
		&entity.AttendanceSession{},
		&entity.StudentAttendance{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds a default school and its admin user when
// configured via environment variables. Safe to run on every start.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	schoolName := viper.GetString("SEED_SCHOOL_NAME")
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if schoolName == "" || adminEmail == "" || adminPassword == "" {
		log.Println("Seed variables not set, skipping default data")
		return nil
	}

	var school entity.School
	if err := db.Where("name = ?", schoolName).First(&school).Error; err != nil {
		var maxCode int
		db.Model(&entity.School{}).Select("COALESCE(MAX(code), 0)").Scan(&maxCode)

		school = entity.School{
			ID:   uuid.New(),
			Code: maxCode + 1,
			Name: schoolName,
		}
		if err := db.Create(&school).Error; err != nil {
			return fmt.Errorf("failed to create default school: %w", err)
		}
		log.Printf("Default school created: %s (code %d)", school.Name, school.Code)
	}

	var existingAdmin entity.User
	if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err == nil {
		log.Printf("Admin user already exists: %s", adminEmail)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if adminName == "" {
		adminName = "School Admin"
	}
	firstName := adminName
	lastName := ""
	for i, c := range adminName {
		if c == ' ' {
			firstName = adminName[:i]
			lastName = adminName[i+1:]
			break
		}
	}

	adminUser := entity.User{
		ID:        uuid.New(),
		SchoolID:  school.ID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     adminEmail,
		Password:  string(hashedPassword),
		Role:      entity.RoleAdmin,
		IsActive:  true,
	}
	if err := db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Printf("Admin user created: %s", adminEmail)

	log.Println("Default data seeding completed")
	return nil
}
