package repository

import (
	"context"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/google/uuid"
)

// SchoolRepository defines the interface for school (tenant) data operations
type SchoolRepository interface {
	Create(ctx context.Context, school *entity.School) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.School, error)
	GetByCode(ctx context.Context, code int) (*entity.School, error)
	List(ctx context.Context) ([]entity.School, error)
}
