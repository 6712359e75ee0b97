package handler

import (
	"strconv"
	"time"

	"github.com/edusys/school-api/internal/application/service"
	"github.com/edusys/school-api/internal/domain/repository"
	"github.com/edusys/school-api/internal/presentation/http/dto/response"
	"github.com/edusys/school-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StudentHandler handles student HTTP requests
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

type studentRequest struct {
	AdmissionNo    string     `json:"admission_no"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	DateOfBirth    *string    `json:"date_of_birth"`
	Gender         *string    `json:"gender"`
	Address        *string    `json:"address"`
	ClassID        *uuid.UUID `json:"class_id"`
	Section        *string    `json:"section"`
	AcademicYearID *uuid.UUID `json:"academic_year_id"`
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

// Create handles enrolling a student
func (h *StudentHandler) Create(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), &service.CreateStudentInput{
		AdmissionNo:    req.AdmissionNo,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    parseDate(req.DateOfBirth),
		Gender:         req.Gender,
		Address:        req.Address,
		ClassID:        req.ClassID,
		Section:        req.Section,
		AcademicYearID: req.AcademicYearID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Student created successfully", student)
}

// Get handles getting a single student
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	student, err := h.studentService.GetStudent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student retrieved successfully", student)
}

// Update handles updating a student
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	var req struct {
		FirstName   *string    `json:"first_name"`
		LastName    *string    `json:"last_name"`
		DateOfBirth *string    `json:"date_of_birth"`
		Gender      *string    `json:"gender"`
		Address     *string    `json:"address"`
		ClassID     *uuid.UUID `json:"class_id"`
		Section     *string    `json:"section"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), id, &service.UpdateStudentInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: parseDate(req.DateOfBirth),
		Gender:      req.Gender,
		Address:     req.Address,
		ClassID:     req.ClassID,
		Section:     req.Section,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student updated successfully", student)
}

// Delete handles removing a student
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	if err := h.studentService.DeleteStudent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student deleted successfully", nil)
}

// List handles listing students
func (h *StudentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.StudentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if classIDStr := c.Query("class_id"); classIDStr != "" {
		if classID, err := uuid.Parse(classIDStr); err == nil {
			params.ClassID = &classID
		}
	}
	if section := c.Query("section"); section != "" {
		params.Section = &section
	}

	result, err := h.studentService.ListStudents(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Students retrieved successfully", result)
}
