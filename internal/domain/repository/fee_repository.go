package repository

import (
	"context"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/google/uuid"
)

// FeeStructureRepository defines the interface for fee structure data operations
type FeeStructureRepository interface {
	Create(ctx context.Context, structure *entity.FeeStructure) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error)
	List(ctx context.Context, academicYearID *uuid.UUID) ([]entity.FeeStructure, error)
}
