package repository

import (
	"context"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/internal/domain/enum"
	"github.com/edusys/school-api/pkg/pagination"
	"github.com/google/uuid"
)

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	StudentID  *uuid.UUID
	Status     *enum.InvoiceStatus
	Search     string
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetByIDForUpdate locks the invoice row for the duration of the
	// surrounding transaction so balance checks cannot race.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetWithPayments(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Invoice, error)
}
