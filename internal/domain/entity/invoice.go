package entity

import (
	"time"

	"github.com/edusys/school-api/internal/domain/enum"
	"github.com/edusys/school-api/pkg/money"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice is a billing record for one student in one academic year.
// Invariant after every mutation: TotalAmount == PaidAmount + DueAmount,
// all three non-negative, and PaidAmount only ever increases. Status is a
// projection of the balances and must only change inside the same
// transaction that changes them.
type Invoice struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SchoolID       uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_school_number,priority:1" json:"school_id"`
	StudentID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"student_id"`
	AcademicYearID uuid.UUID          `gorm:"type:uuid;not null" json:"academic_year_id"`
	FeeStructureID *uuid.UUID         `gorm:"type:uuid" json:"fee_structure_id,omitempty"`
	InvoiceNumber  string             `gorm:"size:50;not null;uniqueIndex:idx_invoices_school_number,priority:2" json:"invoice_number"`
	TotalAmount    money.Money        `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaidAmount     money.Money        `gorm:"type:decimal(10,2);not null" json:"paid_amount"`
	DueAmount      money.Money        `gorm:"type:decimal(10,2);not null" json:"due_amount"`
	DueDate        *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	Status         enum.InvoiceStatus `gorm:"default:0" json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`

	// Relationships
	Student      Student       `gorm:"foreignKey:StudentID" json:"-"`
	FeeStructure *FeeStructure `gorm:"foreignKey:FeeStructureID" json:"-"`
	Payments     []Payment     `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// DeriveStatus recomputes the status projection from the balances. A
// fully-collected invoice (including a zero-total one) is Paid; anything
// with a partial collection is Partial; an untouched balance is Pending.
// Overdue and Cancelled are never derived here.
func (i *Invoice) DeriveStatus() {
	switch {
	case i.DueAmount.IsZero():
		i.Status = enum.InvoiceStatusPaid
	case i.PaidAmount.IsPositive():
		i.Status = enum.InvoiceStatusPartial
	default:
		i.Status = enum.InvoiceStatusPending
	}
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}
