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
	"github.com/google/uuid"
)

// AttendanceService handles attendance register operations
type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	studentRepo    repository.StudentRepository
	classRepo      repository.ClassRepository
	txManager      repository.TxManager
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	studentRepo repository.StudentRepository,
	classRepo repository.ClassRepository,
	txManager repository.TxManager,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		classRepo:      classRepo,
		txManager:      txManager,
	}
}

// AttendanceEntryInput represents one student's status in a register
type AttendanceEntryInput struct {
	StudentID uuid.UUID
	Status    enum.AttendanceStatus
	Remarks   *string
}

// MarkAttendanceInput represents the mark attendance input
type MarkAttendanceInput struct {
	ClassID   uuid.UUID
	Section   *string
	TeacherID *uuid.UUID
	Date      time.Time
	Period    *string
	Entries   []AttendanceEntryInput
}

// MarkAttendance records one register-taking: a session plus a record per
// student. A class/section/date/period combination can only be registered
// once.
func (s *AttendanceService) MarkAttendance(ctx context.Context, input *MarkAttendanceInput) (*entity.AttendanceSession, error) {
	schoolID, ok := infraRepo.GetSchoolID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("School context required")
	}

	if len(input.Entries) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "entries", Message: "At least one attendance entry is required",
		}})
	}

	class, err := s.classRepo.GetByID(ctx, input.ClassID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperror.NewNotFoundError("Class")
	}

	existing, err := s.attendanceRepo.FindSession(ctx, input.ClassID, input.Section, input.Date, input.Period)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Attendance is already marked for this class and date")
	}

	studentIDs := make([]uuid.UUID, 0, len(input.Entries))
	for _, e := range input.Entries {
		studentIDs = append(studentIDs, e.StudentID)
	}
	students, err := s.studentRepo.GetByIDs(ctx, studentIDs)
	if err != nil {
		return nil, err
	}
	studentSet := make(map[uuid.UUID]bool, len(students))
	for _, st := range students {
		studentSet[st.ID] = true
	}
	for i, e := range input.Entries {
		if !studentSet[e.StudentID] {
			return nil, apperror.NewValidationError([]apperror.FieldError{{
				Field:   fmt.Sprintf("entries[%d].student_id", i),
				Message: "Student not found",
			}})
		}
	}

	session := &entity.AttendanceSession{
		SchoolID:  schoolID,
		ClassID:   input.ClassID,
		Section:   input.Section,
		TeacherID: input.TeacherID,
		Date:      input.Date,
		Period:    input.Period,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.attendanceRepo.CreateSession(ctx, session); err != nil {
			return err
		}

		records := make([]entity.StudentAttendance, 0, len(input.Entries))
		for _, e := range input.Entries {
			records = append(records, entity.StudentAttendance{
				SchoolID:  schoolID,
				SessionID: session.ID,
				StudentID: e.StudentID,
				Status:    e.Status,
				Remarks:   e.Remarks,
			})
		}
		return s.attendanceRepo.CreateRecords(ctx, records)
	})
	if err != nil {
		return nil, err
	}

	return s.attendanceRepo.GetSessionWithRecords(ctx, session.ID)
}

// GetSession retrieves an attendance session with its records
func (s *AttendanceService) GetSession(ctx context.Context, id uuid.UUID) (*entity.AttendanceSession, error) {
	session, err := s.attendanceRepo.GetSessionWithRecords(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Attendance session")
	}
	return session, nil
}

// ClassAttendanceSummary aggregates a class's attendance over a period
type ClassAttendanceSummary struct {
	ClassID      uuid.UUID                              `json:"class_id"`
	From         time.Time                              `json:"from"`
	To           time.Time                              `json:"to"`
	SessionCount int                                    `json:"session_count"`
	StatusCounts map[string]int                         `json:"status_counts"`
	ByStudent    map[uuid.UUID]StudentAttendanceSummary `json:"by_student"`
}

// StudentAttendanceSummary counts one student's attendance outcomes
type StudentAttendanceSummary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	HalfDay int `json:"half_day"`
}

// GetClassSummary aggregates attendance for a class over a date range
func (s *AttendanceService) GetClassSummary(ctx context.Context, classID uuid.UUID, section *string, from, to time.Time) (*ClassAttendanceSummary, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperror.NewNotFoundError("Class")
	}

	sessions, err := s.attendanceRepo.ListSessions(ctx, classID, section, from, to)
	if err != nil {
		return nil, err
	}

	sessionIDs := make([]uuid.UUID, 0, len(sessions))
	for _, sess := range sessions {
		sessionIDs = append(sessionIDs, sess.ID)
	}
	records, err := s.attendanceRepo.ListRecordsBySessions(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	summary := &ClassAttendanceSummary{
		ClassID:      classID,
		From:         from,
		To:           to,
		SessionCount: len(sessions),
		StatusCounts: make(map[string]int),
		ByStudent:    make(map[uuid.UUID]StudentAttendanceSummary),
	}
	for _, rec := range records {
		summary.StatusCounts[rec.Status.String()]++

		st := summary.ByStudent[rec.StudentID]
		switch rec.Status {
		case enum.AttendancePresent:
			st.Present++
		case enum.AttendanceAbsent:
			st.Absent++
		case enum.AttendanceLate:
			st.Late++
		case enum.AttendanceHalfDay:
			st.HalfDay++
		}
		summary.ByStudent[rec.StudentID] = st
	}
	return summary, nil
}
