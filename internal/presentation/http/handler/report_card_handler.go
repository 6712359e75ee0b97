package handler

import (
	"github.com/edusys/school-api/internal/application/service"
	"github.com/edusys/school-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportCardHandler handles report card HTTP requests
type ReportCardHandler struct {
	reportCardService *service.ReportCardService
}

// NewReportCardHandler creates a new report card handler
func NewReportCardHandler(reportCardService *service.ReportCardService) *ReportCardHandler {
	return &ReportCardHandler{reportCardService: reportCardService}
}

// Generate handles regenerating the report cards for an exam
func (h *ReportCardHandler) Generate(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid exam ID")
		return
	}

	cards, err := h.reportCardService.Generate(c.Request.Context(), examID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report cards generated successfully", cards)
}

// List handles listing an exam's report cards in rank order
func (h *ReportCardHandler) List(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid exam ID")
		return
	}

	cards, err := h.reportCardService.ListByExam(c.Request.Context(), examID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report cards retrieved successfully", cards)
}

// GetStudent handles getting one student's report card
func (h *ReportCardHandler) GetStudent(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid exam ID")
		return
	}
	studentID, err := uuid.Parse(c.Param("student_id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	card, err := h.reportCardService.GetStudentReportCard(c.Request.Context(), examID, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report card retrieved successfully", card)
}

// Publish handles publishing an exam's report cards
func (h *ReportCardHandler) Publish(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid exam ID")
		return
	}

	if err := h.reportCardService.Publish(c.Request.Context(), examID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report cards published successfully", nil)
}
