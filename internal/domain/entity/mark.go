package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Mark is one student's score in one subject of one exam, unique per
// (exam, student, subject). Re-uploading the same triple replaces the
// prior row. MaxMarks is copied from the exam schedule at upload time and
// frozen thereafter.
type Mark struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	SchoolID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"school_id"`
	ExamID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_marks_exam_student_subject,priority:1" json:"exam_id"`
	StudentID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_marks_exam_student_subject,priority:2" json:"student_id"`
	SubjectID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_marks_exam_student_subject,priority:3" json:"subject_id"`
	MarksObtained *decimal.Decimal `gorm:"type:decimal(6,2)" json:"marks_obtained,omitempty"`
	MaxMarks      *decimal.Decimal `gorm:"type:decimal(6,2)" json:"max_marks,omitempty"`
	Grade         *string          `gorm:"size:5" json:"grade,omitempty"`
	IsAbsent      bool             `gorm:"default:false" json:"is_absent"`
	Remarks       *string          `gorm:"size:255" json:"remarks,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new mark
func (m *Mark) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Mark model
func (Mark) TableName() string {
	return "marks"
}
