package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportCard aggregates one student's marks for one exam, unique per
// (exam, student). It is derived entirely from the marks and never
// hand-edited; a rank only has meaning relative to the full cohort
// computed in the same generation pass.
type ReportCard struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SchoolID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"school_id"`
	ExamID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_report_cards_exam_student,priority:1" json:"exam_id"`
	StudentID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_report_cards_exam_student,priority:2" json:"student_id"`
	TotalMarksObtained decimal.Decimal `gorm:"type:decimal(8,2)" json:"total_marks_obtained"`
	TotalMaxMarks      decimal.Decimal `gorm:"type:decimal(8,2)" json:"total_max_marks"`
	Percentage         decimal.Decimal `gorm:"type:decimal(5,2)" json:"percentage"`
	Grade              string          `gorm:"size:5" json:"grade"`
	Rank               int             `gorm:"default:0" json:"rank"`
	IsPublished        bool            `gorm:"default:false" json:"is_published"`
	Remarks            *string         `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new report card
func (r *ReportCard) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReportCard model
func (ReportCard) TableName() string {
	return "report_cards"
}
