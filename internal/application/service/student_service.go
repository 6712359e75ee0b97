package service

import (
	"context"
	"time"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/internal/domain/repository"
	infraRepo "github.com/edusys/school-api/internal/infrastructure/repository"
	"github.com/edusys/school-api/pkg/apperror"
	"github.com/edusys/school-api/pkg/pagination"
	"github.com/google/uuid"
)

// StudentService handles student record operations
type StudentService struct {
	studentRepo repository.StudentRepository
	classRepo   repository.ClassRepository
}

// NewStudentService creates a new student service
func NewStudentService(
	studentRepo repository.StudentRepository,
	classRepo repository.ClassRepository,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		classRepo:   classRepo,
	}
}

// CreateStudentInput represents the create student input
type CreateStudentInput struct {
	AdmissionNo    string
	FirstName      string
	LastName       string
	DateOfBirth    *time.Time
	Gender         *string
	Address        *string
	ClassID        *uuid.UUID
	Section        *string
	AcademicYearID *uuid.UUID
}

// CreateStudent enrolls a student. Admission numbers are unique within
// the school only.
func (s *StudentService) CreateStudent(ctx context.Context, input *CreateStudentInput) (*entity.Student, error) {
	schoolID, ok := infraRepo.GetSchoolID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("School context required")
	}

	var fieldErrors []apperror.FieldError
	if input.AdmissionNo == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "admission_no", Message: "Admission number is required"})
	}
	if input.FirstName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "first_name", Message: "First name is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.studentRepo.GetByAdmissionNo(ctx, input.AdmissionNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Admission number is already in use")
	}

	if input.ClassID != nil {
		class, err := s.classRepo.GetByID(ctx, *input.ClassID)
		if err != nil {
			return nil, err
		}
		if class == nil {
			return nil, apperror.NewNotFoundError("Class")
		}
	}

	student := &entity.Student{
		SchoolID:       schoolID,
		AdmissionNo:    input.AdmissionNo,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		DateOfBirth:    input.DateOfBirth,
		Gender:         input.Gender,
		Address:        input.Address,
		ClassID:        input.ClassID,
		Section:        input.Section,
		AcademicYearID: input.AcademicYearID,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudent retrieves a student by ID
func (s *StudentService) GetStudent(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}
	return student, nil
}

// UpdateStudentInput represents the update student input
type UpdateStudentInput struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *time.Time
	Gender      *string
	Address     *string
	ClassID     *uuid.UUID
	Section     *string
}

// UpdateStudent updates a student's mutable fields. The admission number
// is fixed at enrollment.
func (s *StudentService) UpdateStudent(ctx context.Context, id uuid.UUID, input *UpdateStudentInput) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	if input.FirstName != nil {
		student.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		student.LastName = *input.LastName
	}
	if input.DateOfBirth != nil {
		student.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != nil {
		student.Gender = input.Gender
	}
	if input.Address != nil {
		student.Address = input.Address
	}
	if input.ClassID != nil {
		class, err := s.classRepo.GetByID(ctx, *input.ClassID)
		if err != nil {
			return nil, err
		}
		if class == nil {
			return nil, apperror.NewNotFoundError("Class")
		}
		student.ClassID = input.ClassID
	}
	if input.Section != nil {
		student.Section = input.Section
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent soft deletes a student record
func (s *StudentService) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if student == nil {
		return apperror.NewNotFoundError("Student")
	}
	return s.studentRepo.Delete(ctx, id)
}

// ListStudents lists students with filtering
func (s *StudentService) ListStudents(ctx context.Context, params *repository.StudentFilterParams) (*pagination.PaginatedResult[entity.Student], error) {
	students, total, err := s.studentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(students, pag), nil
}
