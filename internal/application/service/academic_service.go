package service

import (
	"context"
	"time"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/internal/domain/repository"
	infraRepo "github.com/edusys/school-api/internal/infrastructure/repository"
	"github.com/edusys/school-api/pkg/apperror"
)

// AcademicService handles academic reference data: years, classes, subjects
type AcademicService struct {
	yearRepo    repository.AcademicYearRepository
	classRepo   repository.ClassRepository
	subjectRepo repository.SubjectRepository
}

// NewAcademicService creates a new academic service
func NewAcademicService(
	yearRepo repository.AcademicYearRepository,
	classRepo repository.ClassRepository,
	subjectRepo repository.SubjectRepository,
) *AcademicService {
	return &AcademicService{
		yearRepo:    yearRepo,
		classRepo:   classRepo,
		subjectRepo: subjectRepo,
	}
}

// CreateAcademicYearInput represents the create academic year input
type CreateAcademicYearInput struct {
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	IsCurrent bool
}

// CreateAcademicYear creates an academic year
func (s *AcademicService) CreateAcademicYear(ctx context.Context, input *CreateAcademicYearInput) (*entity.AcademicYear, error) {
	schoolID, ok := infraRepo.GetSchoolID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("School context required")
	}
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "name", Message: "Name is required",
		}})
	}

	year := &entity.AcademicYear{
		SchoolID:  schoolID,
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		IsCurrent: input.IsCurrent,
	}
	if err := s.yearRepo.Create(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// ListAcademicYears lists the school's academic years
func (s *AcademicService) ListAcademicYears(ctx context.Context) ([]entity.AcademicYear, error) {
	return s.yearRepo.List(ctx)
}

// CreateClassInput represents the create class input
type CreateClassInput struct {
	Name  string
	Level int
}

// CreateClass creates a class
func (s *AcademicService) CreateClass(ctx context.Context, input *CreateClassInput) (*entity.ClassRoom, error) {
	schoolID, ok := infraRepo.GetSchoolID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("School context required")
	}
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "name", Message: "Name is required",
		}})
	}

	class := &entity.ClassRoom{
		SchoolID: schoolID,
		Name:     input.Name,
		Level:    input.Level,
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// ListClasses lists the school's classes
func (s *AcademicService) ListClasses(ctx context.Context) ([]entity.ClassRoom, error) {
	return s.classRepo.List(ctx)
}

// CreateSubjectInput represents the create subject input
type CreateSubjectInput struct {
	Name string
	Code *string
}

// CreateSubject creates a subject
func (s *AcademicService) CreateSubject(ctx context.Context, input *CreateSubjectInput) (*entity.Subject, error) {
	schoolID, ok := infraRepo.GetSchoolID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("School context required")
	}
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "name", Message: "Name is required",
		}})
	}

	subject := &entity.Subject{
		SchoolID: schoolID,
		Name:     input.Name,
		Code:     input.Code,
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// ListSubjects lists the school's subjects
func (s *AcademicService) ListSubjects(ctx context.Context) ([]entity.Subject, error) {
	return s.subjectRepo.List(ctx)
}
