package handler

import (
	"github.com/edusys/school-api/internal/application/service"
	"github.com/edusys/school-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AcademicHandler handles academic reference data HTTP requests
type AcademicHandler struct {
	academicService *service.AcademicService
}

// NewAcademicHandler creates a new academic handler
func NewAcademicHandler(academicService *service.AcademicService) *AcademicHandler {
	return &AcademicHandler{academicService: academicService}
}

// CreateYear handles creating an academic year
func (h *AcademicHandler) CreateYear(c *gin.Context) {
	var req struct {
		Name      string  `json:"name"`
		StartDate *string `json:"start_date"`
		EndDate   *string `json:"end_date"`
		IsCurrent bool    `json:"is_current"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	year, err := h.academicService.CreateAcademicYear(c.Request.Context(), &service.CreateAcademicYearInput{
		Name:      req.Name,
		StartDate: parseDate(req.StartDate),
		EndDate:   parseDate(req.EndDate),
		IsCurrent: req.IsCurrent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Academic year created successfully", year)
}

// ListYears handles listing academic years
func (h *AcademicHandler) ListYears(c *gin.Context) {
	years, err := h.academicService.ListAcademicYears(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Academic years retrieved successfully", years)
}

// CreateClass handles creating a class
func (h *AcademicHandler) CreateClass(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Level int    `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	class, err := h.academicService.CreateClass(c.Request.Context(), &service.CreateClassInput{
		Name:  req.Name,
		Level: req.Level,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Class created successfully", class)
}

// ListClasses handles listing classes
func (h *AcademicHandler) ListClasses(c *gin.Context) {
	classes, err := h.academicService.ListClasses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Classes retrieved successfully", classes)
}

// CreateSubject handles creating a subject
func (h *AcademicHandler) CreateSubject(c *gin.Context) {
	var req struct {
		Name string  `json:"name"`
		Code *string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	subject, err := h.academicService.CreateSubject(c.Request.Context(), &service.CreateSubjectInput{
		Name: req.Name,
		Code: req.Code,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Subject created successfully", subject)
}

// ListSubjects handles listing subjects
func (h *AcademicHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.academicService.ListSubjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Subjects retrieved successfully", subjects)
}
