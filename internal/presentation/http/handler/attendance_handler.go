package handler

import (
	"time"

	"github.com/edusys/school-api/internal/application/service"
	"github.com/edusys/school-api/internal/domain/enum"
	"github.com/edusys/school-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttendanceHandler handles attendance HTTP requests
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Mark handles recording a register for a class
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req struct {
		ClassID uuid.UUID `json:"class_id" binding:"required"`
		Section *string   `json:"section"`
		Date    string    `json:"date" binding:"required"`
		Period  *string   `json:"period"`
		Entries []struct {
			StudentID uuid.UUID `json:"student_id" binding:"required"`
			Status    int       `json:"status"`
			Remarks   *string   `json:"remarks"`
		} `json:"entries" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date")
		return
	}

	entries := make([]service.AttendanceEntryInput, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = service.AttendanceEntryInput{
			StudentID: e.StudentID,
			Status:    enum.AttendanceStatus(e.Status),
			Remarks:   e.Remarks,
		}
	}

	teacherID := GetUserID(c)

	session, err := h.attendanceService.MarkAttendance(c.Request.Context(), &service.MarkAttendanceInput{
		ClassID:   req.ClassID,
		Section:   req.Section,
		TeacherID: teacherID,
		Date:      date,
		Period:    req.Period,
		Entries:   entries,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Attendance marked successfully", session)
}

// GetSession handles getting a session with its records
func (h *AttendanceHandler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.attendanceService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Attendance session retrieved successfully", session)
}

// ClassSummary handles aggregating attendance for a class over a range
func (h *AttendanceHandler) ClassSummary(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("class_id"))
	if err != nil {
		response.BadRequest(c, "Invalid class ID")
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		response.BadRequest(c, "Invalid from date")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		response.BadRequest(c, "Invalid to date")
		return
	}

	var section *string
	if s := c.Query("section"); s != "" {
		section = &s
	}

	summary, err := h.attendanceService.GetClassSummary(c.Request.Context(), classID, section, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Attendance summary retrieved successfully", summary)
}
