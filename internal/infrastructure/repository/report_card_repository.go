package repository

import (
	"context"
	"errors"

	"github.com/edusys/school-api/internal/domain/entity"
	domainRepo "github.com/edusys/school-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reportCardRepository struct {
	db *gorm.DB
}

// NewReportCardRepository creates a new report card repository
func NewReportCardRepository(db *gorm.DB) domainRepo.ReportCardRepository {
	return &reportCardRepository{db: db}
}

// ReplaceForExam swaps the exam's whole cohort in one go. The caller wraps
// this in a transaction so readers never see a half-regenerated set.
func (r *reportCardRepository) ReplaceForExam(ctx context.Context, examID uuid.UUID, cards []entity.ReportCard) error {
	db := dbFromContext(ctx, r.db).WithContext(ctx)

	if err := db.Scopes(SchoolScope(ctx)).
		Where("exam_id = ?", examID).
		Delete(&entity.ReportCard{}).Error; err != nil {
		return err
	}
	if len(cards) == 0 {
		return nil
	}
	return db.Create(&cards).Error
}

func (r *reportCardRepository) GetByExamAndStudent(ctx context.Context, examID, studentID uuid.UUID) (*entity.ReportCard, error) {
	var card entity.ReportCard
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		First(&card, "exam_id = ? AND student_id = ?", examID, studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &card, err
}

func (r *reportCardRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]entity.ReportCard, error) {
	var cards []entity.ReportCard
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Where("exam_id = ?", examID).
		Order("rank ASC").
		Find(&cards).Error
	return cards, err
}

func (r *reportCardRepository) PublishByExam(ctx context.Context, examID uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.ReportCard{}).
		Scopes(SchoolScope(ctx)).
		Where("exam_id = ?", examID).
		Update("is_published", true).Error
}
