package handler

import (
	"time"

	"github.com/edusys/school-api/internal/application/service"
	"github.com/edusys/school-api/internal/domain/enum"
	"github.com/edusys/school-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExamHandler handles exam and marks HTTP requests
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new exam handler
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// Create handles creating an exam with its schedule
func (h *ExamHandler) Create(c *gin.Context) {
	var req struct {
		AcademicYearID uuid.UUID `json:"academic_year_id" binding:"required"`
		Name           string    `json:"name"`
		ExamType       int       `json:"exam_type"`
		StartDate      *string   `json:"start_date"`
		EndDate        *string   `json:"end_date"`
		Schedule       []struct {
			SubjectID    uuid.UUID       `json:"subject_id" binding:"required"`
			ClassID      uuid.UUID       `json:"class_id" binding:"required"`
			Date         string          `json:"date"`
			MaxMarks     decimal.Decimal `json:"max_marks"`
			PassingMarks decimal.Decimal `json:"passing_marks"`
		} `json:"schedule"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	schedule := make([]service.ExamScheduleInput, len(req.Schedule))
	for i, slot := range req.Schedule {
		date, err := time.Parse("2006-01-02", slot.Date)
		if err != nil {
			response.BadRequest(c, "Invalid schedule date")
			return
		}
		schedule[i] = service.ExamScheduleInput{
			SubjectID:    slot.SubjectID,
			ClassID:      slot.ClassID,
			Date:         date,
			MaxMarks:     slot.MaxMarks,
			PassingMarks: slot.PassingMarks,
		}
	}

	exam, err := h.examService.CreateExam(c.Request.Context(), &service.CreateExamInput{
		AcademicYearID: req.AcademicYearID,
		Name:           req.Name,
		ExamType:       enum.ExamType(req.ExamType),
		StartDate:      parseDate(req.StartDate),
		EndDate:        parseDate(req.EndDate),
		Schedule:       schedule,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Exam created successfully", exam)
}

// Get handles getting a single exam
func (h *ExamHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid exam ID")
		return
	}

	exam, err := h.examService.GetExam(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exam retrieved successfully", exam)
}

// List handles listing exams
func (h *ExamHandler) List(c *gin.Context) {
	var academicYearID *uuid.UUID
	if yearStr := c.Query("academic_year_id"); yearStr != "" {
		if yearID, err := uuid.Parse(yearStr); err == nil {
			academicYearID = &yearID
		}
	}

	exams, err := h.examService.ListExams(c.Request.Context(), academicYearID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exams retrieved successfully", exams)
}

// UploadMarks handles uploading marks for an exam
func (h *ExamHandler) UploadMarks(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid exam ID")
		return
	}

	var req struct {
		Entries []struct {
			StudentID     uuid.UUID        `json:"student_id" binding:"required"`
			SubjectID     uuid.UUID        `json:"subject_id" binding:"required"`
			MarksObtained *decimal.Decimal `json:"marks_obtained"`
			IsAbsent      bool             `json:"is_absent"`
			Remarks       *string          `json:"remarks"`
		} `json:"entries" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entries := make([]service.MarkEntryInput, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = service.MarkEntryInput{
			StudentID:     e.StudentID,
			SubjectID:     e.SubjectID,
			MarksObtained: e.MarksObtained,
			IsAbsent:      e.IsAbsent,
			Remarks:       e.Remarks,
		}
	}

	marks, err := h.examService.UploadMarks(c.Request.Context(), examID, entries)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Marks uploaded successfully", marks)
}

// GetStudentMarks handles getting one student's marks for an exam
func (h *ExamHandler) GetStudentMarks(c *gin.Context) {
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

	marks, err := h.examService.GetStudentMarks(c.Request.Context(), examID, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Marks retrieved successfully", marks)
}
