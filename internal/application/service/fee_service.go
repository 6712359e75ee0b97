package service

import (
	"context"
	"fmt"
	"time"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/internal/domain/repository"
	infraRepo "github.com/edusys/school-api/internal/infrastructure/repository"
	"github.com/edusys/school-api/pkg/apperror"
	"github.com/edusys/school-api/pkg/money"
	"github.com/google/uuid"
)

// FeeService handles fee structure operations
type FeeService struct {
	feeRepo   repository.FeeStructureRepository
	yearRepo  repository.AcademicYearRepository
	classRepo repository.ClassRepository
}

// NewFeeService creates a new fee service
func NewFeeService(
	feeRepo repository.FeeStructureRepository,
	yearRepo repository.AcademicYearRepository,
	classRepo repository.ClassRepository,
) *FeeService {
	return &FeeService{
		feeRepo:   feeRepo,
		yearRepo:  yearRepo,
		classRepo: classRepo,
	}
}

// FeeItemInput represents one line of a fee structure
type FeeItemInput struct {
	Name        string
	Amount      money.Money
	DueDate     *time.Time
	IsMandatory *bool
}

// CreateFeeStructureInput represents the create fee structure input
type CreateFeeStructureInput struct {
	AcademicYearID uuid.UUID
	ClassID        uuid.UUID
	Name           string
	Items          []FeeItemInput
}

// CreateStructure creates a fee structure with its items
func (s *FeeService) CreateStructure(ctx context.Context, input *CreateFeeStructureInput) (*entity.FeeStructure, error) {
	schoolID, ok := infraRepo.GetSchoolID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("School context required")
	}

	var fieldErrors []apperror.FieldError
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "name", Message: "Name is required",
		})
	}
	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "items", Message: "At least one fee item is required",
		})
	}
	for i, item := range input.Items {
		if item.Name == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].name", i),
				Message: "Item name is required",
			})
		}
		if !item.Amount.IsPositive() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].amount", i),
				Message: "Amount must be greater than zero",
			})
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	year, err := s.yearRepo.GetByID(ctx, input.AcademicYearID)
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, apperror.NewNotFoundError("Academic year")
	}

	class, err := s.classRepo.GetByID(ctx, input.ClassID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperror.NewNotFoundError("Class")
	}

	items := make([]entity.FeeItem, 0, len(input.Items))
	for _, item := range input.Items {
		mandatory := true
		if item.IsMandatory != nil {
			mandatory = *item.IsMandatory
		}
		items = append(items, entity.FeeItem{
			Name:        item.Name,
			Amount:      item.Amount,
			DueDate:     item.DueDate,
			IsMandatory: mandatory,
		})
	}

	structure := &entity.FeeStructure{
		SchoolID:       schoolID,
		AcademicYearID: input.AcademicYearID,
		ClassID:        input.ClassID,
		Name:           input.Name,
		Items:          items,
	}

	if err := s.feeRepo.Create(ctx, structure); err != nil {
		return nil, err
	}
	return structure, nil
}

// GetStructure retrieves a fee structure with its items
func (s *FeeService) GetStructure(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	structure, err := s.feeRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if structure == nil {
		return nil, apperror.NewNotFoundError("Fee structure")
	}
	return structure, nil
}

// ListStructures lists fee structures, optionally filtered by academic year
func (s *FeeService) ListStructures(ctx context.Context, academicYearID *uuid.UUID) ([]entity.FeeStructure, error) {
	return s.feeRepo.List(ctx, academicYearID)
}
