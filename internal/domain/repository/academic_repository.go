package repository

import (
	"context"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/google/uuid"
)

// AcademicYearRepository defines the interface for academic year lookups
type AcademicYearRepository interface {
	Create(ctx context.Context, year *entity.AcademicYear) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AcademicYear, error)
	List(ctx context.Context) ([]entity.AcademicYear, error)
}

// ClassRepository defines the interface for class lookups
type ClassRepository interface {
	Create(ctx context.Context, class *entity.ClassRoom) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ClassRoom, error)
	List(ctx context.Context) ([]entity.ClassRoom, error)
}

// SubjectRepository defines the interface for subject lookups
type SubjectRepository interface {
	Create(ctx context.Context, subject *entity.Subject) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Subject, error)
	List(ctx context.Context) ([]entity.Subject, error)
}
