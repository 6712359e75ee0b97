package repository

import (
	"context"
	"errors"

	"github.com/edusys/school-api/internal/domain/entity"
	domainRepo "github.com/edusys/school-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) domainRepo.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(student).Error
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	var student entity.Student
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Preload("Class").
		First(&student, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &student, err
}

func (r *studentRepository) GetByAdmissionNo(ctx context.Context, admissionNo string) (*entity.Student, error) {
	var student entity.Student
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		First(&student, "admission_no = ?", admissionNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &student, err
}

func (r *studentRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Student, error) {
	var students []entity.Student
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Where("id IN ?", ids).
		Find(&students).Error
	return students, err
}

func (r *studentRepository) Update(ctx context.Context, student *entity.Student) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(student).Error
}

func (r *studentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Delete(&entity.Student{}, "id = ?", id).Error
}

func (r *studentRepository) List(ctx context.Context, params *domainRepo.StudentFilterParams) ([]entity.Student, int64, error) {
	var students []entity.Student
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.Student{}).
		Scopes(SchoolScope(ctx))

	if params.Search != "" {
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR admission_no ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.ClassID != nil {
		query = query.Where("class_id = ?", *params.ClassID)
	}
	if params.Section != nil {
		query = query.Where("section = ?", *params.Section)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Class").
		Order("admission_no ASC").
		Find(&students).Error

	return students, total, err
}
