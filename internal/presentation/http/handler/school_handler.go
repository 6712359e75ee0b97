package handler

import (
	"github.com/edusys/school-api/internal/application/service"
	"github.com/edusys/school-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SchoolHandler handles school HTTP requests
type SchoolHandler struct {
	schoolService *service.SchoolService
}

// NewSchoolHandler creates a new school handler
func NewSchoolHandler(schoolService *service.SchoolService) *SchoolHandler {
	return &SchoolHandler{schoolService: schoolService}
}

// Create handles registering a school
func (h *SchoolHandler) Create(c *gin.Context) {
	var req struct {
		Name    string  `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	school, err := h.schoolService.CreateSchool(c.Request.Context(), &service.CreateSchoolInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "School created successfully", school)
}

// Get handles getting a single school
func (h *SchoolHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid school ID")
		return
	}

	school, err := h.schoolService.GetSchool(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "School retrieved successfully", school)
}

// List handles listing schools
func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.schoolService.ListSchools(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Schools retrieved successfully", schools)
}
