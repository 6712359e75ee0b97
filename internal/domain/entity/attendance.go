package entity

import (
	"time"

	"github.com/edusys/school-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceSession is one register-taking for a class on a date/period
type AttendanceSession struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SchoolID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"school_id"`
	ClassID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"class_id"`
	Section   *string    `gorm:"size:10" json:"section,omitempty"`
	TeacherID *uuid.UUID `gorm:"type:uuid" json:"teacher_id,omitempty"`
	Date      time.Time  `gorm:"type:date;not null" json:"date"`
	Period    *string    `gorm:"size:50" json:"period,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	// Relationships
	Records []StudentAttendance `gorm:"foreignKey:SessionID" json:"records,omitempty"`
}

// BeforeCreate generates a UUID before creating a new attendance session
func (s *AttendanceSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AttendanceSession model
func (AttendanceSession) TableName() string {
	return "attendance_sessions"
}

// StudentAttendance is one student's record within a session
type StudentAttendance struct {
	ID        uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	SchoolID  uuid.UUID             `gorm:"type:uuid;not null;index" json:"school_id"`
	SessionID uuid.UUID             `gorm:"type:uuid;not null;index" json:"session_id"`
	StudentID uuid.UUID             `gorm:"type:uuid;not null;index" json:"student_id"`
	Status    enum.AttendanceStatus `gorm:"default:0" json:"status"`
	Remarks   *string               `gorm:"size:255" json:"remarks,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new attendance record
func (a *StudentAttendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StudentAttendance model
func (StudentAttendance) TableName() string {
	return "student_attendance"
}
