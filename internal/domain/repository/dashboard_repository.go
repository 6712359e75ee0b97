package repository

import (
	"context"
	"time"

	"github.com/edusys/school-api/pkg/money"
)

// FeeCollectionStats aggregates the ledger for a school over a period
type FeeCollectionStats struct {
	TotalBilled    money.Money `json:"total_billed"`
	TotalCollected money.Money `json:"total_collected"`
	TotalDue       money.Money `json:"total_due"`
	PaymentCount   int64       `json:"payment_count"`
}

// DashboardRepository provides aggregate counts for the dashboard surface
type DashboardRepository interface {
	StudentCount(ctx context.Context) (int64, error)
	InvoiceCount(ctx context.Context) (int64, error)
	FeeCollection(ctx context.Context, from, to time.Time) (*FeeCollectionStats, error)
}
