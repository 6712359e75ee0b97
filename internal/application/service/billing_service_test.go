package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/internal/domain/enum"
	"github.com/edusys/school-api/pkg/apperror"
	"github.com/edusys/school-api/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.FromString(s)
	require.NoError(t, err)
	return m
}

type billingFixture struct {
	svc         *BillingService
	ctx         context.Context
	schoolID    uuid.UUID
	studentID   uuid.UUID
	yearID      uuid.UUID
	structureID uuid.UUID
	invoiceRepo *fakeInvoiceRepo
	paymentRepo *fakePaymentRepo
}

func newBillingFixture(t *testing.T, items []entity.FeeItem) *billingFixture {
	t.Helper()

	school := &entity.School{ID: uuid.New(), Code: 42, Name: "Springdale High"}
	student := &entity.Student{ID: uuid.New(), SchoolID: school.ID, AdmissionNo: "ADM-001", FirstName: "Asha", LastName: "Verma"}
	year := &entity.AcademicYear{ID: uuid.New(), SchoolID: school.ID, Name: "2025-26"}
	structure := &entity.FeeStructure{
		ID:             uuid.New(),
		SchoolID:       school.ID,
		AcademicYearID: year.ID,
		ClassID:        uuid.New(),
		Name:           "Class 5 Annual Fees",
		Items:          items,
	}

	invoiceRepo := newFakeInvoiceRepo()
	paymentRepo := &fakePaymentRepo{}
	svc := NewBillingService(
		invoiceRepo,
		paymentRepo,
		newFakeStudentRepo(student),
		newFakeFeeRepo(structure),
		newFakeSchoolRepo(school),
		newFakeYearRepo(year),
		newFakeSequenceRepo(),
		fakeTxManager{},
	)

	return &billingFixture{
		svc:         svc,
		ctx:         schoolCtx(school.ID),
		schoolID:    school.ID,
		studentID:   student.ID,
		yearID:      year.ID,
		structureID: structure.ID,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
	}
}

func standardItems(t *testing.T) []entity.FeeItem {
	return []entity.FeeItem{
		{Name: "Tuition", Amount: mustMoney(t, "800.00"), IsMandatory: true},
		{Name: "Transport", Amount: mustMoney(t, "200.00"), IsMandatory: true},
		{Name: "Excursion", Amount: mustMoney(t, "500.00"), IsMandatory: false},
	}
}

func TestCreateInvoice(t *testing.T) {
	f := newBillingFixture(t, standardItems(t))

	invoice, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		StudentID:      f.studentID,
		FeeStructureID: &f.structureID,
	})
	require.NoError(t, err)

	// Only mandatory items are billed; the optional excursion is not.
	assert.Equal(t, "1000.00", invoice.TotalAmount.String())
	assert.True(t, invoice.PaidAmount.IsZero())
	assert.Equal(t, "1000.00", invoice.DueAmount.String())
	assert.Equal(t, enum.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, "INV-0042-000001", invoice.InvoiceNumber)

	second, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		StudentID:      f.studentID,
		FeeStructureID: &f.structureID,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-0042-000002", second.InvoiceNumber)
}

func TestCreateInvoiceZeroTotalIsImmediatelyPaid(t *testing.T) {
	f := newBillingFixture(t, []entity.FeeItem{
		{Name: "Excursion", Amount: mustMoney(t, "500.00"), IsMandatory: false},
	})

	invoice, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		StudentID:      f.studentID,
		FeeStructureID: &f.structureID,
	})
	require.NoError(t, err)

	assert.True(t, invoice.TotalAmount.IsZero())
	assert.True(t, invoice.DueAmount.IsZero())
	assert.Equal(t, enum.InvoiceStatusPaid, invoice.Status)
}

func TestCreateInvoiceWithoutStructure(t *testing.T) {
	f := newBillingFixture(t, standardItems(t))

	invoice, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		StudentID:      f.studentID,
		AcademicYearID: &f.yearID,
	})
	require.NoError(t, err)

	// An ad-hoc invoice opens at zero and settles immediately.
	assert.True(t, invoice.TotalAmount.IsZero())
	assert.True(t, invoice.DueAmount.IsZero())
	assert.Equal(t, enum.InvoiceStatusPaid, invoice.Status)
	assert.Nil(t, invoice.FeeStructureID)
	assert.Equal(t, f.yearID, invoice.AcademicYearID)
	assert.Equal(t, "INV-0042-000001", invoice.InvoiceNumber)

	// Without a structure the academic year must be supplied.
	_, err = f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{StudentID: f.studentID})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "academic_year_id", appErr.Errors[0].Field)

	unknownYear := uuid.New()
	_, err = f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		StudentID:      f.studentID,
		AcademicYearID: &unknownYear,
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateInvoiceUnknownStudent(t *testing.T) {
	f := newBillingFixture(t, standardItems(t))

	_, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		StudentID:      uuid.New(),
		FeeStructureID: &f.structureID,
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestRecordPaymentLifecycle(t *testing.T) {
	f := newBillingFixture(t, standardItems(t))
	invoice, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		StudentID:      f.studentID,
		FeeStructureID: &f.structureID,
	})
	require.NoError(t, err)

	payment, err := f.svc.RecordPayment(f.ctx, &RecordPaymentInput{
		InvoiceID:   invoice.ID,
		Amount:      mustMoney(t, "400.00"),
		PaymentDate: time.Now(),
		Method:      enum.PaymentMethodUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, "RCP-0042-000001", payment.ReceiptNumber)
	assert.Equal(t, enum.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, f.studentID, payment.StudentID)

	updated, err := f.svc.GetInvoice(f.ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "400.00", updated.PaidAmount.String())
	assert.Equal(t, "600.00", updated.DueAmount.String())
	assert.Equal(t, enum.InvoiceStatusPartial, updated.Status)
	assert.True(t, updated.PaidAmount.Add(updated.DueAmount).Equal(updated.TotalAmount),
		"total must equal paid plus due after every mutation")

	// Settling the remainder flips the invoice to Paid.
	_, err = f.svc.RecordPayment(f.ctx, &RecordPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    mustMoney(t, "600.00"),
		Method:    enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	settled, err := f.svc.GetInvoice(f.ctx, invoice.ID)
	require.NoError(t, err)
	assert.True(t, settled.DueAmount.IsZero())
	assert.Equal(t, enum.InvoiceStatusPaid, settled.Status)
	assert.True(t, settled.PaidAmount.Add(settled.DueAmount).Equal(settled.TotalAmount))

	// A settled invoice accepts no further payments.
	_, err = f.svc.RecordPayment(f.ctx, &RecordPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    mustMoney(t, "1.00"),
		Method:    enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestRecordPaymentOverpaymentRejected(t *testing.T) {
	f := newBillingFixture(t, standardItems(t))
	invoice, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		StudentID:      f.studentID,
		FeeStructureID: &f.structureID,
	})
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(f.ctx, &RecordPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    mustMoney(t, "1000.01"),
		Method:    enum.PaymentMethodCash,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "amount", appErr.Errors[0].Field)

	// The rejected payment must leave the invoice untouched and write no
	// ledger entry.
	unchanged, err := f.svc.GetInvoice(f.ctx, invoice.ID)
	require.NoError(t, err)
	assert.True(t, unchanged.PaidAmount.IsZero())
	assert.Equal(t, enum.InvoiceStatusPending, unchanged.Status)
	assert.Empty(t, f.paymentRepo.payments)
}

func TestRecordPaymentValidation(t *testing.T) {
	f := newBillingFixture(t, standardItems(t))

	_, err := f.svc.RecordPayment(f.ctx, &RecordPaymentInput{
		InvoiceID: uuid.New(),
		Amount:    money.Zero,
		Method:    enum.PaymentMethod(99),
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "amount", appErr.Errors[0].Field)
	assert.Equal(t, "method", appErr.Errors[1].Field)
}

func TestRecordPaymentCancelledInvoice(t *testing.T) {
	f := newBillingFixture(t, standardItems(t))
	invoice, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		StudentID:      f.studentID,
		FeeStructureID: &f.structureID,
	})
	require.NoError(t, err)

	cancelled, err := f.invoiceRepo.GetByID(f.ctx, invoice.ID)
	require.NoError(t, err)
	cancelled.Status = enum.InvoiceStatusCancelled
	require.NoError(t, f.invoiceRepo.Update(f.ctx, cancelled))

	_, err = f.svc.RecordPayment(f.ctx, &RecordPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    mustMoney(t, "100.00"),
		Method:    enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestGetStudentFeeStatusExcludesCancelled(t *testing.T) {
	f := newBillingFixture(t, standardItems(t))

	first, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		StudentID:      f.studentID,
		FeeStructureID: &f.structureID,
	})
	require.NoError(t, err)
	second, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		StudentID:      f.studentID,
		FeeStructureID: &f.structureID,
	})
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(f.ctx, &RecordPaymentInput{
		InvoiceID: first.ID,
		Amount:    mustMoney(t, "250.00"),
		Method:    enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	cancelled, err := f.invoiceRepo.GetByID(f.ctx, second.ID)
	require.NoError(t, err)
	cancelled.Status = enum.InvoiceStatusCancelled
	require.NoError(t, f.invoiceRepo.Update(f.ctx, cancelled))

	status, err := f.svc.GetStudentFeeStatus(f.ctx, f.studentID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", status.TotalBilled.String())
	assert.Equal(t, "250.00", status.TotalPaid.String())
	assert.Equal(t, "750.00", status.TotalDue.String())
	assert.Len(t, status.Invoices, 2, "cancelled invoices stay in the listing")
}
