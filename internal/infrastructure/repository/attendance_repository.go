package repository

import (
	"context"
	"errors"
	"time"

	"github.com/edusys/school-api/internal/domain/entity"
	domainRepo "github.com/edusys/school-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) domainRepo.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) CreateSession(ctx context.Context, session *entity.AttendanceSession) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(session).Error
}

func (r *attendanceRepository) CreateRecords(ctx context.Context, records []entity.StudentAttendance) error {
	if len(records) == 0 {
		return nil
	}
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(&records).Error
}

func (r *attendanceRepository) GetSession(ctx context.Context, id uuid.UUID) (*entity.AttendanceSession, error) {
	var session entity.AttendanceSession
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *attendanceRepository) GetSessionWithRecords(ctx context.Context, id uuid.UUID) (*entity.AttendanceSession, error) {
	var session entity.AttendanceSession
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Preload("Records").
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *attendanceRepository) FindSession(ctx context.Context, classID uuid.UUID, section *string, date time.Time, period *string) (*entity.AttendanceSession, error) {
	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Where("class_id = ? AND date = ?", classID, date.Format("2006-01-02"))

	if section != nil {
		query = query.Where("section = ?", *section)
	} else {
		query = query.Where("section IS NULL")
	}
	if period != nil {
		query = query.Where("period = ?", *period)
	} else {
		query = query.Where("period IS NULL")
	}

	var session entity.AttendanceSession
	err := query.First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *attendanceRepository) ListSessions(ctx context.Context, classID uuid.UUID, section *string, from, to time.Time) ([]entity.AttendanceSession, error) {
	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Where("class_id = ? AND date BETWEEN ? AND ?",
			classID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if section != nil {
		query = query.Where("section = ?", *section)
	}

	var sessions []entity.AttendanceSession
	err := query.Order("date ASC").Find(&sessions).Error
	return sessions, err
}

func (r *attendanceRepository) ListRecordsBySessions(ctx context.Context, sessionIDs []uuid.UUID) ([]entity.StudentAttendance, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	var records []entity.StudentAttendance
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(SchoolScope(ctx)).
		Where("session_id IN ?", sessionIDs).
		Find(&records).Error
	return records, err
}
