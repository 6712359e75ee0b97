package repository

import (
	"context"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/pkg/pagination"
	"github.com/google/uuid"
)

// PaymentRepository defines the interface for payment data operations.
// Payments are append-only: there is no update or delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payment, int64, error)
}
