package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicYear represents a school's academic session, e.g. "2025-26"
type AcademicYear struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SchoolID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"school_id"`
	Name      string     `gorm:"size:50;not null" json:"name"`
	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	IsCurrent bool       `gorm:"default:false" json:"is_current"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new academic year
func (a *AcademicYear) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AcademicYear model
func (AcademicYear) TableName() string {
	return "academic_years"
}

// ClassRoom represents a class/grade level within a school
type ClassRoom struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SchoolID  uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Level     int       `gorm:"default:0" json:"level"` // numeric ordering for display
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new class
func (c *ClassRoom) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ClassRoom model
func (ClassRoom) TableName() string {
	return "classes"
}

// Subject represents a taught subject within a school
type Subject struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SchoolID  uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Code      *string   `gorm:"size:20" json:"code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new subject
func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Subject model
func (Subject) TableName() string {
	return "subjects"
}
