package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student represents an enrolled student. The admission number is unique
// within a school, not globally.
type Student struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SchoolID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_students_school_admission,priority:1" json:"school_id"`
	AdmissionNo    string         `gorm:"size:50;not null;uniqueIndex:idx_students_school_admission,priority:2" json:"admission_no"`
	FirstName      string         `gorm:"size:255;not null" json:"first_name"`
	LastName       string         `gorm:"size:255;not null" json:"last_name"`
	DateOfBirth    *time.Time     `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender         *string        `gorm:"size:20" json:"gender,omitempty"`
	Address        *string        `gorm:"type:text" json:"address,omitempty"`
	ClassID        *uuid.UUID     `gorm:"type:uuid;index" json:"class_id,omitempty"`
	Section        *string        `gorm:"size:10" json:"section,omitempty"`
	AcademicYearID *uuid.UUID     `gorm:"type:uuid" json:"academic_year_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	School School     `gorm:"foreignKey:SchoolID" json:"-"`
	Class  *ClassRoom `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// BeforeCreate generates a UUID before creating a new student
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Student model
func (Student) TableName() string {
	return "students"
}
