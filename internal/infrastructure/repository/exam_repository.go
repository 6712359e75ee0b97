package repository

import (
	"context"
	"errors"
	"time"

	"github.com/edusys/school-api/internal/domain/entity"
	domainRepo "github.com/edusys/school-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type examRepository struct {
	db *gorm.DB
}

// NewExamRepository creates a new exam repository
func NewExamRepository(db *gorm.DB) domainRepo.ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(ctx context.Context, exam *entity.Exam) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(exam).Error
}

func (r *examRepository) CreateSchedule(ctx context.Context, entries []entity.ExamSchedule) error {
	if len(entries) == 0 {
		return nil
	}
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(&entries).Error
}

func (r *examRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Exam, error) {
	var exam entity.Exam
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		First(&exam, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &exam, err
}

func (r *examRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Exam, error) {
	var exam entity.Exam
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(SchoolScope(ctx)).
		First(&exam, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &exam, err
}

func (r *examRepository) GetWithSchedule(ctx context.Context, id uuid.UUID) (*entity.Exam, error) {
	var exam entity.Exam
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Preload("Schedule").
		First(&exam, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &exam, err
}

func (r *examRepository) List(ctx context.Context, academicYearID *uuid.UUID) ([]entity.Exam, error) {
	var exams []entity.Exam

	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx))
	if academicYearID != nil {
		query = query.Where("academic_year_id = ?", *academicYearID)
	}

	err := query.Order("created_at DESC").Find(&exams).Error
	return exams, err
}

func (r *examRepository) Update(ctx context.Context, exam *entity.Exam) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(exam).Error
}

type markRepository struct {
	db *gorm.DB
}

// NewMarkRepository creates a new mark repository
func NewMarkRepository(db *gorm.DB) domainRepo.MarkRepository {
	return &markRepository{db: db}
}

// Upsert inserts the mark or, when a row already exists for the same
// (exam, student, subject), overwrites its score columns in place. The
// unique index makes the conflict target.
func (r *markRepository) Upsert(ctx context.Context, mark *entity.Mark) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "exam_id"}, {Name: "student_id"}, {Name: "subject_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"marks_obtained": mark.MarksObtained,
				"max_marks":      mark.MaxMarks,
				"grade":          mark.Grade,
				"is_absent":      mark.IsAbsent,
				"remarks":        mark.Remarks,
				"updated_at":     time.Now(),
			}),
		}).
		Create(mark).Error
}

func (r *markRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]entity.Mark, error) {
	var marks []entity.Mark
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Where("exam_id = ?", examID).
		Find(&marks).Error
	return marks, err
}

func (r *markRepository) ListByExamAndStudent(ctx context.Context, examID, studentID uuid.UUID) ([]entity.Mark, error) {
	var marks []entity.Mark
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		Find(&marks).Error
	return marks, err
}
