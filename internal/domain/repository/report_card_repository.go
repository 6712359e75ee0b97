package repository

import (
	"context"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/google/uuid"
)

// ReportCardRepository defines the interface for report card data operations
type ReportCardRepository interface {
	// ReplaceForExam deletes every report card for the exam and inserts
	// the given batch. Callers run it inside a transaction so a partially
	// regenerated cohort is never visible.
	ReplaceForExam(ctx context.Context, examID uuid.UUID, cards []entity.ReportCard) error
	GetByExamAndStudent(ctx context.Context, examID, studentID uuid.UUID) (*entity.ReportCard, error)
	ListByExam(ctx context.Context, examID uuid.UUID) ([]entity.ReportCard, error)
	PublishByExam(ctx context.Context, examID uuid.UUID) error
}
