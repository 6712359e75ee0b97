package entity

import (
	"time"

	"github.com/edusys/school-api/internal/domain/enum"
	"github.com/edusys/school-api/pkg/money"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is an immutable ledger entry against one invoice. There are no
// edits or deletes; reversals are out of scope for this system.
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SchoolID      uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_payments_school_receipt,priority:1" json:"school_id"`
	InvoiceID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"invoice_id"`
	StudentID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"student_id"` // denormalized from the invoice
	Amount        money.Money        `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate   time.Time          `gorm:"type:date;not null" json:"payment_date"`
	Method        enum.PaymentMethod `gorm:"not null" json:"method"`
	TransactionID *string            `gorm:"size:100" json:"transaction_id,omitempty"`
	ReceiptNumber string             `gorm:"size:50;not null;uniqueIndex:idx_payments_school_receipt,priority:2" json:"receipt_number"`
	Status        enum.PaymentStatus `gorm:"default:0" json:"status"`
	Remarks       *string            `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
