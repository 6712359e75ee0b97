package entity

import (
	"time"

	"github.com/edusys/school-api/pkg/money"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeStructure defines the set of fee items charged for one class in one
// academic year. Invoices snapshot the mandatory item total at creation,
// so later edits never alter existing invoices.
type FeeStructure struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SchoolID       uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	AcademicYearID uuid.UUID `gorm:"type:uuid;not null" json:"academic_year_id"`
	ClassID        uuid.UUID `gorm:"type:uuid;not null" json:"class_id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Items []FeeItem `gorm:"foreignKey:FeeStructureID" json:"items,omitempty"`
}

// MandatoryTotal sums the amounts of the structure's mandatory items.
// Non-mandatory items are informational add-ons and are never billed
// automatically.
func (f *FeeStructure) MandatoryTotal() money.Money {
	total := money.Zero
	for _, item := range f.Items {
		if item.IsMandatory {
			total = total.Add(item.Amount)
		}
	}
	return total
}

// BeforeCreate generates a UUID before creating a new fee structure
func (f *FeeStructure) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeeStructure model
func (FeeStructure) TableName() string {
	return "fee_structures"
}

// FeeItem is a single line of a fee structure
type FeeItem struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	FeeStructureID uuid.UUID   `gorm:"type:uuid;not null;index" json:"fee_structure_id"`
	Name           string      `gorm:"size:255;not null" json:"name"`
	Amount         money.Money `gorm:"type:decimal(10,2);not null" json:"amount"`
	DueDate        *time.Time  `gorm:"type:date" json:"due_date,omitempty"`
	IsMandatory    bool        `gorm:"default:true" json:"is_mandatory"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new fee item
func (i *FeeItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeeItem model
func (FeeItem) TableName() string {
	return "fee_items"
}
