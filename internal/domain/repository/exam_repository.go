package repository

import (
	"context"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/google/uuid"
)

// ExamRepository defines the interface for exam data operations
type ExamRepository interface {
	Create(ctx context.Context, exam *entity.Exam) error
	CreateSchedule(ctx context.Context, entries []entity.ExamSchedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Exam, error)
	// GetByIDForUpdate locks the exam row for the duration of the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Exam, error)
	GetWithSchedule(ctx context.Context, id uuid.UUID) (*entity.Exam, error)
	List(ctx context.Context, academicYearID *uuid.UUID) ([]entity.Exam, error)
	Update(ctx context.Context, exam *entity.Exam) error
}

// MarkRepository defines the interface for mark data operations
type MarkRepository interface {
	// Upsert replaces any existing mark for the same (exam, student,
	// subject) triple with the given row.
	Upsert(ctx context.Context, mark *entity.Mark) error
	ListByExam(ctx context.Context, examID uuid.UUID) ([]entity.Mark, error)
	ListByExamAndStudent(ctx context.Context, examID, studentID uuid.UUID) ([]entity.Mark, error)
}
