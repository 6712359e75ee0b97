package repository

import (
	"context"
	"errors"

	"github.com/edusys/school-api/internal/domain/entity"
	domainRepo "github.com/edusys/school-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type feeStructureRepository struct {
	db *gorm.DB
}

// NewFeeStructureRepository creates a new fee structure repository
func NewFeeStructureRepository(db *gorm.DB) domainRepo.FeeStructureRepository {
	return &feeStructureRepository{db: db}
}

func (r *feeStructureRepository) Create(ctx context.Context, structure *entity.FeeStructure) error {
	// Items are created in the same insert via the association
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(structure).Error
}

func (r *feeStructureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	var structure entity.FeeStructure
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		First(&structure, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &structure, err
}

func (r *feeStructureRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	var structure entity.FeeStructure
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Preload("Items").
		First(&structure, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &structure, err
}

func (r *feeStructureRepository) List(ctx context.Context, academicYearID *uuid.UUID) ([]entity.FeeStructure, error) {
	var structures []entity.FeeStructure

	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Preload("Items")
	if academicYearID != nil {
		query = query.Where("academic_year_id = ?", *academicYearID)
	}

	err := query.Order("created_at ASC").Find(&structures).Error
	return structures, err
}
