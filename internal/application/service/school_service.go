package service

import (
	"context"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/internal/domain/repository"
	"github.com/edusys/school-api/pkg/apperror"
	"github.com/google/uuid"
)

// SchoolService handles school (tenant) operations
type SchoolService struct {
	schoolRepo repository.SchoolRepository
	txManager  repository.TxManager
}

// NewSchoolService creates a new school service
func NewSchoolService(schoolRepo repository.SchoolRepository, txManager repository.TxManager) *SchoolService {
	return &SchoolService{schoolRepo: schoolRepo, txManager: txManager}
}

// CreateSchoolInput represents the create school input
type CreateSchoolInput struct {
	Name    string
	Address *string
	Phone   *string
	Email   *string
}

// CreateSchool registers a new school and assigns the next numeric code.
// The code feeds invoice and receipt numbers so it never changes once
// assigned.
func (s *SchoolService) CreateSchool(ctx context.Context, input *CreateSchoolInput) (*entity.School, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "name", Message: "Name is required",
		}})
	}

	var school *entity.School
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		schools, err := s.schoolRepo.List(ctx)
		if err != nil {
			return err
		}
		maxCode := 0
		for _, sc := range schools {
			if sc.Code > maxCode {
				maxCode = sc.Code
			}
		}

		school = &entity.School{
			Code:    maxCode + 1,
			Name:    input.Name,
			Address: input.Address,
			Phone:   input.Phone,
			Email:   input.Email,
		}
		return s.schoolRepo.Create(ctx, school)
	})
	if err != nil {
		return nil, err
	}
	return school, nil
}

// GetSchool retrieves a school by ID
func (s *SchoolService) GetSchool(ctx context.Context, id uuid.UUID) (*entity.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, apperror.NewNotFoundError("School")
	}
	return school, nil
}

// ListSchools lists all registered schools
func (s *SchoolService) ListSchools(ctx context.Context) ([]entity.School, error) {
	return s.schoolRepo.List(ctx)
}
