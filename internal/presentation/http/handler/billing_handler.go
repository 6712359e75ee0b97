package handler

import (
	"strconv"
	"time"

	"github.com/edusys/school-api/internal/application/service"
	"github.com/edusys/school-api/internal/domain/enum"
	"github.com/edusys/school-api/internal/domain/repository"
	"github.com/edusys/school-api/internal/presentation/http/dto/response"
	"github.com/edusys/school-api/pkg/money"
	"github.com/edusys/school-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BillingHandler handles invoice and payment HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// CreateInvoice handles billing a student. Omitting the fee structure
// creates a zero-total ad-hoc invoice for the given academic year.
func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var req struct {
		StudentID      uuid.UUID  `json:"student_id" binding:"required"`
		FeeStructureID *uuid.UUID `json:"fee_structure_id"`
		AcademicYearID *uuid.UUID `json:"academic_year_id"`
		DueDate        *string    `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.billingService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		StudentID:      req.StudentID,
		FeeStructureID: req.FeeStructureID,
		AcademicYearID: req.AcademicYearID,
		DueDate:        parseDate(req.DueDate),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// GetInvoice handles getting an invoice with its payment history
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.billingService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// ListInvoices handles listing invoices
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if studentIDStr := c.Query("student_id"); studentIDStr != "" {
		if studentID, err := uuid.Parse(studentIDStr); err == nil {
			params.StudentID = &studentID
		}
	}
	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.InvoiceStatus(statusInt)
			params.Status = &status
		}
	}

	result, err := h.billingService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// RecordPayment handles recording a payment against an invoice
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		Amount        money.Money `json:"amount"`
		PaymentDate   *string     `json:"payment_date"`
		Method        int         `json:"method"`
		TransactionID *string     `json:"transaction_id"`
		Remarks       *string     `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var paymentDate time.Time
	if d := parseDate(req.PaymentDate); d != nil {
		paymentDate = *d
	}

	payment, err := h.billingService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		InvoiceID:     invoiceID,
		Amount:        req.Amount,
		PaymentDate:   paymentDate,
		Method:        enum.PaymentMethod(req.Method),
		TransactionID: req.TransactionID,
		Remarks:       req.Remarks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// ListInvoicePayments handles listing an invoice's payment history
func (h *BillingHandler) ListInvoicePayments(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.billingService.ListPaymentsByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// GetStudentFeeStatus handles aggregating a student's ledger position
func (h *BillingHandler) GetStudentFeeStatus(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	status, err := h.billingService.GetStudentFeeStatus(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee status retrieved successfully", status)
}
