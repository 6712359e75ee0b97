package entity

import (
	"github.com/google/uuid"
)

// Sequence names used for human-readable document numbers.
const (
	SequenceInvoice = "invoice"
	SequenceReceipt = "receipt"
)

// SequenceCounter is a per-school atomic counter backing invoice and
// receipt numbers. Allocation locks the row FOR UPDATE inside the caller's
// transaction, replacing the racy count-rows-plus-one scheme.
type SequenceCounter struct {
	SchoolID uuid.UUID `gorm:"type:uuid;primaryKey" json:"school_id"`
	Name     string    `gorm:"size:50;primaryKey" json:"name"`
	Value    int64     `gorm:"not null;default:0" json:"value"`
}

// TableName returns the table name for the SequenceCounter model
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
