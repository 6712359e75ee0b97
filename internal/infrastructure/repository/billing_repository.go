package repository

import (
	"context"
	"errors"

	"github.com/edusys/school-api/internal/domain/entity"
	domainRepo "github.com/edusys/school-api/internal/domain/repository"
	"github.com/edusys/school-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

// GetByIDForUpdate takes a row lock on the invoice. Must run inside a
// transaction; concurrent payments against the same invoice serialize here.
func (r *invoiceRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(SchoolScope(ctx)).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithPayments(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.created_at ASC")
		}).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.Invoice{}).
		Scopes(SchoolScope(ctx))

	if params.StudentID != nil {
		query = query.Where("student_id = ?", *params.StudentID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Search != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Student").
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.Payment{}).
		Scopes(SchoolScope(ctx))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&payments).Error

	return payments, total, err
}
