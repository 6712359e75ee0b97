package repository

import (
	"context"
	"time"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/google/uuid"
)

// AttendanceRepository defines the interface for attendance data operations
type AttendanceRepository interface {
	CreateSession(ctx context.Context, session *entity.AttendanceSession) error
	CreateRecords(ctx context.Context, records []entity.StudentAttendance) error
	GetSession(ctx context.Context, id uuid.UUID) (*entity.AttendanceSession, error)
	GetSessionWithRecords(ctx context.Context, id uuid.UUID) (*entity.AttendanceSession, error)
	FindSession(ctx context.Context, classID uuid.UUID, section *string, date time.Time, period *string) (*entity.AttendanceSession, error)
	ListSessions(ctx context.Context, classID uuid.UUID, section *string, from, to time.Time) ([]entity.AttendanceSession, error)
	ListRecordsBySessions(ctx context.Context, sessionIDs []uuid.UUID) ([]entity.StudentAttendance, error)
}
