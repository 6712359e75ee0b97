package service

import (
	"context"
	"fmt"
	"time"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/internal/domain/enum"
	"github.com/edusys/school-api/internal/domain/grading"
	"github.com/edusys/school-api/internal/domain/repository"
	infraRepo "github.com/edusys/school-api/internal/infrastructure/repository"
	"github.com/edusys/school-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExamService handles exam and marks operations
type ExamService struct {
	examRepo    repository.ExamRepository
	markRepo    repository.MarkRepository
	studentRepo repository.StudentRepository
	subjectRepo repository.SubjectRepository
	yearRepo    repository.AcademicYearRepository
	txManager   repository.TxManager
}

// NewExamService creates a new exam service
func NewExamService(
	examRepo repository.ExamRepository,
	markRepo repository.MarkRepository,
	studentRepo repository.StudentRepository,
	subjectRepo repository.SubjectRepository,
	yearRepo repository.AcademicYearRepository,
	txManager repository.TxManager,
) *ExamService {
	return &ExamService{
		examRepo:    examRepo,
		markRepo:    markRepo,
		studentRepo: studentRepo,
		subjectRepo: subjectRepo,
		yearRepo:    yearRepo,
		txManager:   txManager,
	}
}

// ExamScheduleInput represents one subject slot of an exam
type ExamScheduleInput struct {
	SubjectID    uuid.UUID
	ClassID      uuid.UUID
	Date         time.Time
	MaxMarks     decimal.Decimal
	PassingMarks decimal.Decimal
}

// CreateExamInput represents the create exam input
type CreateExamInput struct {
	AcademicYearID uuid.UUID
	Name           string
	ExamType       enum.ExamType
	StartDate      *time.Time
	EndDate        *time.Time
	Schedule       []ExamScheduleInput
}

// CreateExam creates an exam together with its subject schedule
func (s *ExamService) CreateExam(ctx context.Context, input *CreateExamInput) (*entity.Exam, error) {
	schoolID, ok := infraRepo.GetSchoolID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("School context required")
	}

	var fieldErrors []apperror.FieldError
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "name", Message: "Name is required",
		})
	}
	for i, slot := range input.Schedule {
		if !slot.MaxMarks.IsPositive() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("schedule[%d].max_marks", i),
				Message: "Max marks must be greater than zero",
			})
		}
		if slot.PassingMarks.IsNegative() || slot.PassingMarks.GreaterThan(slot.MaxMarks) {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("schedule[%d].passing_marks", i),
				Message: "Passing marks must be between zero and max marks",
			})
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	year, err := s.yearRepo.GetByID(ctx, input.AcademicYearID)
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, apperror.NewNotFoundError("Academic year")
	}

	for _, slot := range input.Schedule {
		subject, err := s.subjectRepo.GetByID(ctx, slot.SubjectID)
		if err != nil {
			return nil, err
		}
		if subject == nil {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Subject %s", slot.SubjectID))
		}
	}

	exam := &entity.Exam{
		SchoolID:       schoolID,
		AcademicYearID: input.AcademicYearID,
		Name:           input.Name,
		ExamType:       input.ExamType,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.examRepo.Create(ctx, exam); err != nil {
			return err
		}

		entries := make([]entity.ExamSchedule, 0, len(input.Schedule))
		for _, slot := range input.Schedule {
			entries = append(entries, entity.ExamSchedule{
				ExamID:       exam.ID,
				SubjectID:    slot.SubjectID,
				ClassID:      slot.ClassID,
				Date:         slot.Date,
				MaxMarks:     slot.MaxMarks,
				PassingMarks: slot.PassingMarks,
			})
		}
		return s.examRepo.CreateSchedule(ctx, entries)
	})
	if err != nil {
		return nil, err
	}

	return s.examRepo.GetWithSchedule(ctx, exam.ID)
}

// GetExam retrieves an exam with its schedule
func (s *ExamService) GetExam(ctx context.Context, id uuid.UUID) (*entity.Exam, error) {
	exam, err := s.examRepo.GetWithSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, apperror.NewNotFoundError("Exam")
	}
	return exam, nil
}

// ListExams lists exams, optionally filtered by academic year
func (s *ExamService) ListExams(ctx context.Context, academicYearID *uuid.UUID) ([]entity.Exam, error) {
	return s.examRepo.List(ctx, academicYearID)
}

// MarkEntryInput represents one student's score for one subject
type MarkEntryInput struct {
	StudentID     uuid.UUID
	SubjectID     uuid.UUID
	MarksObtained *decimal.Decimal
	IsAbsent      bool
	Remarks       *string
}

// UploadMarks records scores for an exam. Re-uploading the same
// (student, subject) pair replaces the earlier entry. MaxMarks is copied
// from the exam schedule at upload time; the grade is derived from the
// score and never accepted from the caller. A subject missing from the
// schedule is still recorded, just incomplete: no max, no grade.
func (s *ExamService) UploadMarks(ctx context.Context, examID uuid.UUID, entries []MarkEntryInput) ([]entity.Mark, error) {
	schoolID, ok := infraRepo.GetSchoolID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("School context required")
	}

	exam, err := s.examRepo.GetWithSchedule(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, apperror.NewNotFoundError("Exam")
	}

	if len(entries) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "entries", Message: "At least one mark entry is required",
		}})
	}

	scheduleMax := exam.ScheduleMaxMarks()

	// Batch fetch students up front so a bad reference fails the whole
	// upload before anything is written
	studentIDs := make([]uuid.UUID, 0, len(entries))
	seen := make(map[uuid.UUID]bool, len(entries))
	for _, e := range entries {
		if !seen[e.StudentID] {
			seen[e.StudentID] = true
			studentIDs = append(studentIDs, e.StudentID)
		}
	}
	students, err := s.studentRepo.GetByIDs(ctx, studentIDs)
	if err != nil {
		return nil, err
	}
	studentSet := make(map[uuid.UUID]bool, len(students))
	for _, st := range students {
		studentSet[st.ID] = true
	}

	var fieldErrors []apperror.FieldError
	marks := make([]entity.Mark, 0, len(entries))
	for i, e := range entries {
		if !studentSet[e.StudentID] {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("entries[%d].student_id", i),
				Message: "Student not found",
			})
			continue
		}

		maxMarks, scheduled := scheduleMax[e.SubjectID]
		if !scheduled {
			subject, err := s.subjectRepo.GetByID(ctx, e.SubjectID)
			if err != nil {
				return nil, err
			}
			if subject == nil {
				fieldErrors = append(fieldErrors, apperror.FieldError{
					Field:   fmt.Sprintf("entries[%d].subject_id", i),
					Message: "Subject not found",
				})
				continue
			}
		}

		if !e.IsAbsent {
			if e.MarksObtained == nil {
				fieldErrors = append(fieldErrors, apperror.FieldError{
					Field:   fmt.Sprintf("entries[%d].marks_obtained", i),
					Message: "Marks are required unless the student is absent",
				})
				continue
			}
			if e.MarksObtained.IsNegative() || (scheduled && e.MarksObtained.GreaterThan(maxMarks)) {
				message := "Marks cannot be negative"
				if scheduled {
					message = fmt.Sprintf("Marks must be between 0 and %s", maxMarks)
				}
				fieldErrors = append(fieldErrors, apperror.FieldError{
					Field:   fmt.Sprintf("entries[%d].marks_obtained", i),
					Message: message,
				})
				continue
			}
		}

		mark := entity.Mark{
			SchoolID:  schoolID,
			ExamID:    examID,
			StudentID: e.StudentID,
			SubjectID: e.SubjectID,
			IsAbsent:  e.IsAbsent,
			Remarks:   e.Remarks,
		}
		if scheduled {
			max := maxMarks
			mark.MaxMarks = &max
		}
		if !e.IsAbsent {
			obtained := *e.MarksObtained
			mark.MarksObtained = &obtained
		}
		mark.Grade = grading.GradeFor(mark.MarksObtained, mark.MaxMarks, mark.IsAbsent)
		marks = append(marks, mark)
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		for i := range marks {
			if err := s.markRepo.Upsert(ctx, &marks[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return marks, nil
}

// GetStudentMarks retrieves one student's marks for an exam
func (s *ExamService) GetStudentMarks(ctx context.Context, examID, studentID uuid.UUID) ([]entity.Mark, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, apperror.NewNotFoundError("Exam")
	}
	return s.markRepo.ListByExamAndStudent(ctx, examID, studentID)
}
