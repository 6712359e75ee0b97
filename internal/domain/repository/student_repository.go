package repository

import (
	"context"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/pkg/pagination"
	"github.com/google/uuid"
)

// StudentFilterParams contains filtering parameters for student queries
type StudentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	ClassID    *uuid.UUID
	Section    *string
}

// StudentRepository defines the interface for student data operations
type StudentRepository interface {
	Create(ctx context.Context, student *entity.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error)
	GetByAdmissionNo(ctx context.Context, admissionNo string) (*entity.Student, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Student, error)
	Update(ctx context.Context, student *entity.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *StudentFilterParams) ([]entity.Student, int64, error)
}
