package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// School is the tenant root: every record in the system belongs to exactly
// one school and all operations are scoped to it.
type School struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code      int            `gorm:"uniqueIndex;not null" json:"code"` // numeric code used in invoice/receipt numbers
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new school
func (s *School) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the School model
func (School) TableName() string {
	return "schools"
}
