package entity

import (
	"time"

	"github.com/edusys/school-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Exam represents one examination within an academic year
type Exam struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	SchoolID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"school_id"`
	AcademicYearID uuid.UUID     `gorm:"type:uuid;not null" json:"academic_year_id"`
	Name           string        `gorm:"size:255;not null" json:"name"`
	ExamType       enum.ExamType `gorm:"default:0" json:"exam_type"`
	StartDate      *time.Time    `gorm:"type:date" json:"start_date,omitempty"`
	EndDate        *time.Time    `gorm:"type:date" json:"end_date,omitempty"`
	IsPublished    bool          `gorm:"default:false" json:"is_published"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// Relationships
	Schedule []ExamSchedule `gorm:"foreignKey:ExamID" json:"schedule,omitempty"`
}

// ScheduleMaxMarks returns the per-subject maximum marks defined by the
// exam's schedule.
func (e *Exam) ScheduleMaxMarks() map[uuid.UUID]decimal.Decimal {
	m := make(map[uuid.UUID]decimal.Decimal, len(e.Schedule))
	for _, s := range e.Schedule {
		m[s.SubjectID] = s.MaxMarks
	}
	return m
}

// BeforeCreate generates a UUID before creating a new exam
func (e *Exam) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Exam model
func (Exam) TableName() string {
	return "exams"
}

// ExamSchedule is one subject's slot in an exam, carrying the maximum and
// passing marks for that subject.
type ExamSchedule struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ExamID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"exam_id"`
	SubjectID    uuid.UUID       `gorm:"type:uuid;not null" json:"subject_id"`
	ClassID      uuid.UUID       `gorm:"type:uuid;not null" json:"class_id"`
	Date         time.Time       `gorm:"type:date;not null" json:"date"`
	MaxMarks     decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"max_marks"`
	PassingMarks decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"passing_marks"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new exam schedule entry
func (s *ExamSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExamSchedule model
func (ExamSchedule) TableName() string {
	return "exam_schedule"
}
