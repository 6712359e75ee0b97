package repository

import (
	"context"
	"errors"

	"github.com/edusys/school-api/internal/domain/entity"
	domainRepo "github.com/edusys/school-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type academicYearRepository struct {
	db *gorm.DB
}

// NewAcademicYearRepository creates a new academic year repository
func NewAcademicYearRepository(db *gorm.DB) domainRepo.AcademicYearRepository {
	return &academicYearRepository{db: db}
}

func (r *academicYearRepository) Create(ctx context.Context, year *entity.AcademicYear) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(year).Error
}

func (r *academicYearRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AcademicYear, error) {
	var year entity.AcademicYear
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		First(&year, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &year, err
}

func (r *academicYearRepository) List(ctx context.Context) ([]entity.AcademicYear, error) {
	var years []entity.AcademicYear
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Order("start_date DESC").
		Find(&years).Error
	return years, err
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *gorm.DB) domainRepo.ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *entity.ClassRoom) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(class).Error
}

func (r *classRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ClassRoom, error) {
	var class entity.ClassRoom
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		First(&class, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &class, err
}

func (r *classRepository) List(ctx context.Context) ([]entity.ClassRoom, error) {
	var classes []entity.ClassRoom
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Order("level ASC, name ASC").
		Find(&classes).Error
	return classes, err
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *gorm.DB) domainRepo.SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *entity.Subject) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(subject).Error
}

func (r *subjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Subject, error) {
	var subject entity.Subject
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		First(&subject, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &subject, err
}

func (r *subjectRepository) List(ctx context.Context) ([]entity.Subject, error) {
	var subjects []entity.Subject
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Order("name ASC").
		Find(&subjects).Error
	return subjects, err
}
