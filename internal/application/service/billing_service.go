package service

import (
	"context"
	"fmt"
	"time"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/internal/domain/enum"
	"github.com/edusys/school-api/internal/domain/repository"
	infraRepo "github.com/edusys/school-api/internal/infrastructure/repository"
	"github.com/edusys/school-api/pkg/apperror"
	"github.com/edusys/school-api/pkg/money"
	"github.com/edusys/school-api/pkg/pagination"
	"github.com/google/uuid"
)

// BillingService handles invoice and payment operations
type BillingService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	studentRepo repository.StudentRepository
	feeRepo     repository.FeeStructureRepository
	schoolRepo  repository.SchoolRepository
	yearRepo    repository.AcademicYearRepository
	seqRepo     repository.SequenceRepository
	txManager   repository.TxManager
}

// NewBillingService creates a new billing service
func NewBillingService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	studentRepo repository.StudentRepository,
	feeRepo repository.FeeStructureRepository,
	schoolRepo repository.SchoolRepository,
	yearRepo repository.AcademicYearRepository,
	seqRepo repository.SequenceRepository,
	txManager repository.TxManager,
) *BillingService {
	return &BillingService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		studentRepo: studentRepo,
		feeRepo:     feeRepo,
		schoolRepo:  schoolRepo,
		yearRepo:    yearRepo,
		seqRepo:     seqRepo,
		txManager:   txManager,
	}
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	StudentID      uuid.UUID
	FeeStructureID *uuid.UUID
	AcademicYearID *uuid.UUID
	DueDate        *time.Time
}

// CreateInvoice bills a student. With a fee structure the invoice
// snapshots the structure's mandatory total at creation time, so later
// fee edits leave it untouched. Without one it opens at a zero total
// against the given academic year, for ad-hoc billing.
func (s *BillingService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	schoolID, ok := infraRepo.GetSchoolID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("School context required")
	}

	student, err := s.studentRepo.GetByID(ctx, input.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	total := money.Zero
	var academicYearID uuid.UUID
	var feeStructureID *uuid.UUID
	if input.FeeStructureID != nil {
		structure, err := s.feeRepo.GetWithItems(ctx, *input.FeeStructureID)
		if err != nil {
			return nil, err
		}
		if structure == nil {
			return nil, apperror.NewNotFoundError("Fee structure")
		}
		total = structure.MandatoryTotal()
		academicYearID = structure.AcademicYearID
		feeStructureID = &structure.ID
	} else {
		if input.AcademicYearID == nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{{
				Field:   "academic_year_id",
				Message: "Academic year is required when no fee structure is given",
			}})
		}
		year, err := s.yearRepo.GetByID(ctx, *input.AcademicYearID)
		if err != nil {
			return nil, err
		}
		if year == nil {
			return nil, apperror.NewNotFoundError("Academic year")
		}
		academicYearID = year.ID
	}

	school, err := s.schoolRepo.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, apperror.NewNotFoundError("School")
	}

	var invoice *entity.Invoice
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		seq, err := s.seqRepo.Next(ctx, schoolID, entity.SequenceInvoice)
		if err != nil {
			return err
		}

		invoice = &entity.Invoice{
			SchoolID:       schoolID,
			StudentID:      input.StudentID,
			AcademicYearID: academicYearID,
			FeeStructureID: feeStructureID,
			InvoiceNumber:  fmt.Sprintf("INV-%04d-%06d", school.Code, seq),
			TotalAmount:    total,
			PaidAmount:     money.Zero,
			DueAmount:      total,
			DueDate:        input.DueDate,
		}
		invoice.DeriveStatus()

		return s.invoiceRepo.Create(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// RecordPaymentInput represents the record payment input
type RecordPaymentInput struct {
	InvoiceID     uuid.UUID
	Amount        money.Money
	PaymentDate   time.Time
	Method        enum.PaymentMethod
	TransactionID *string
	Remarks       *string
}

// RecordPayment applies a payment against an invoice. The invoice row is
// locked for the duration of the transaction, so the overpayment check,
// the receipt allocation, the ledger entry and the balance update are one
// atomic unit even under concurrent submissions.
func (s *BillingService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	schoolID, ok := infraRepo.GetSchoolID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("School context required")
	}

	var fieldErrors []apperror.FieldError
	if !input.Amount.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "amount", Message: "Amount must be greater than zero",
		})
	}
	if !input.Method.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "method", Message: "Invalid payment method",
		})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	school, err := s.schoolRepo.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, apperror.NewNotFoundError("School")
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	var payment *entity.Payment
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetByIDForUpdate(ctx, input.InvoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}

		if invoice.Status == enum.InvoiceStatusCancelled {
			return apperror.NewInvalidStateError("Invoice is cancelled")
		}
		if invoice.DueAmount.IsZero() {
			return apperror.NewInvalidStateError("Invoice is already fully paid")
		}
		if input.Amount.GreaterThan(invoice.DueAmount) {
			return apperror.NewValidationError([]apperror.FieldError{{
				Field:   "amount",
				Message: fmt.Sprintf("Amount exceeds due amount of %s", invoice.DueAmount),
			}})
		}

		seq, err := s.seqRepo.Next(ctx, schoolID, entity.SequenceReceipt)
		if err != nil {
			return err
		}

		payment = &entity.Payment{
			SchoolID:      schoolID,
			InvoiceID:     invoice.ID,
			StudentID:     invoice.StudentID,
			Amount:        input.Amount,
			PaymentDate:   paymentDate,
			Method:        input.Method,
			TransactionID: input.TransactionID,
			ReceiptNumber: fmt.Sprintf("RCP-%04d-%06d", school.Code, seq),
			Status:        enum.PaymentStatusSuccess,
			Remarks:       input.Remarks,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		invoice.PaidAmount = invoice.PaidAmount.Add(input.Amount)
		invoice.DueAmount = invoice.DueAmount.Sub(input.Amount)
		invoice.DeriveStatus()

		return s.invoiceRepo.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// GetInvoice retrieves an invoice with its payment history
func (s *BillingService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *BillingService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// GetPayment retrieves a single payment
func (s *BillingService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPaymentsByInvoice lists the payment history of an invoice
func (s *BillingService) ListPaymentsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.paymentRepo.ListByInvoice(ctx, invoiceID)
}

// StudentFeeStatus summarizes a student's ledger position
type StudentFeeStatus struct {
	StudentID   uuid.UUID        `json:"student_id"`
	TotalBilled money.Money      `json:"total_billed"`
	TotalPaid   money.Money      `json:"total_paid"`
	TotalDue    money.Money      `json:"total_due"`
	Invoices    []entity.Invoice `json:"invoices"`
}

// GetStudentFeeStatus aggregates a student's invoices into a fee summary.
// Cancelled invoices are excluded from the totals.
func (s *BillingService) GetStudentFeeStatus(ctx context.Context, studentID uuid.UUID) (*StudentFeeStatus, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	invoices, err := s.invoiceRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	status := &StudentFeeStatus{
		StudentID:   studentID,
		TotalBilled: money.Zero,
		TotalPaid:   money.Zero,
		TotalDue:    money.Zero,
		Invoices:    invoices,
	}
	for _, inv := range invoices {
		if inv.Status == enum.InvoiceStatusCancelled {
			continue
		}
		status.TotalBilled = status.TotalBilled.Add(inv.TotalAmount)
		status.TotalPaid = status.TotalPaid.Add(inv.PaidAmount)
		status.TotalDue = status.TotalDue.Add(inv.DueAmount)
	}
	return status, nil
}
