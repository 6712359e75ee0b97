package handler

import (
	"github.com/edusys/school-api/internal/application/service"
	"github.com/edusys/school-api/internal/presentation/http/dto/response"
	"github.com/edusys/school-api/pkg/money"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FeeHandler handles fee structure HTTP requests
type FeeHandler struct {
	feeService *service.FeeService
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(feeService *service.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// Create handles creating a fee structure
func (h *FeeHandler) Create(c *gin.Context) {
	var req struct {
		AcademicYearID uuid.UUID `json:"academic_year_id" binding:"required"`
		ClassID        uuid.UUID `json:"class_id" binding:"required"`
		Name           string    `json:"name"`
		Items          []struct {
			Name        string      `json:"name"`
			Amount      money.Money `json:"amount"`
			DueDate     *string     `json:"due_date"`
			IsMandatory *bool       `json:"is_mandatory"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.FeeItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.FeeItemInput{
			Name:        item.Name,
			Amount:      item.Amount,
			DueDate:     parseDate(item.DueDate),
			IsMandatory: item.IsMandatory,
		}
	}

	structure, err := h.feeService.CreateStructure(c.Request.Context(), &service.CreateFeeStructureInput{
		AcademicYearID: req.AcademicYearID,
		ClassID:        req.ClassID,
		Name:           req.Name,
		Items:          items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Fee structure created successfully", structure)
}

// Get handles getting a single fee structure
func (h *FeeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee structure ID")
		return
	}

	structure, err := h.feeService.GetStructure(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee structure retrieved successfully", structure)
}

// List handles listing fee structures
func (h *FeeHandler) List(c *gin.Context) {
	var academicYearID *uuid.UUID
	if yearStr := c.Query("academic_year_id"); yearStr != "" {
		if yearID, err := uuid.Parse(yearStr); err == nil {
			academicYearID = &yearID
		}
	}

	structures, err := h.feeService.ListStructures(c.Request.Context(), academicYearID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee structures retrieved successfully", structures)
}
