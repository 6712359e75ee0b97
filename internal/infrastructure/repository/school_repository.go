package repository

import (
	"context"
	"errors"

	"github.com/edusys/school-api/internal/domain/entity"
	domainRepo "github.com/edusys/school-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type schoolRepository struct {
	db *gorm.DB
}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository(db *gorm.DB) domainRepo.SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) Create(ctx context.Context, school *entity.School) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(school).Error
}

func (r *schoolRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.School, error) {
	var school entity.School
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&school, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &school, err
}

func (r *schoolRepository) GetByCode(ctx context.Context, code int) (*entity.School, error) {
	var school entity.School
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&school, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &school, err
}

func (r *schoolRepository) List(ctx context.Context) ([]entity.School, error) {
	var schools []entity.School
	err := dbFromContext(ctx, r.db).WithContext(ctx).Order("code ASC").Find(&schools).Error
	return schools, err
}
