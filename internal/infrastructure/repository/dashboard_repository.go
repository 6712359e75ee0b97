package repository

import (
	"context"
	"time"

	"github.com/edusys/school-api/internal/domain/entity"
	domainRepo "github.com/edusys/school-api/internal/domain/repository"
	"github.com/edusys/school-api/pkg/money"
	"gorm.io/gorm"
)

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *gorm.DB) domainRepo.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) StudentCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Student{}).
		Scopes(SchoolScope(ctx)).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) InvoiceCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Scopes(SchoolScope(ctx)).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) FeeCollection(ctx context.Context, from, to time.Time) (*domainRepo.FeeCollectionStats, error) {
	schoolID, ok := GetSchoolID(ctx)
	if !ok {
		return &domainRepo.FeeCollectionStats{
			TotalBilled:    money.Zero,
			TotalCollected: money.Zero,
			TotalDue:       money.Zero,
		}, nil
	}

	var billed struct {
		TotalBilled string
		TotalDue    string
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total_amount), 0) as total_billed,
			COALESCE(SUM(due_amount), 0) as total_due
		FROM invoices
		WHERE school_id = ? AND created_at BETWEEN ? AND ?
	`, schoolID, from, to).Scan(&billed).Error
	if err != nil {
		return nil, err
	}

	var collected struct {
		TotalCollected string
		PaymentCount   int64
	}
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(amount), 0) as total_collected,
			COUNT(*) as payment_count
		FROM payments
		WHERE school_id = ? AND created_at BETWEEN ? AND ?
	`, schoolID, from, to).Scan(&collected).Error
	if err != nil {
		return nil, err
	}

	totalBilled, err := money.FromString(billed.TotalBilled)
	if err != nil {
		return nil, err
	}
	totalDue, err := money.FromString(billed.TotalDue)
	if err != nil {
		return nil, err
	}
	totalCollected, err := money.FromString(collected.TotalCollected)
	if err != nil {
		return nil, err
	}

	return &domainRepo.FeeCollectionStats{
		TotalBilled:    totalBilled,
		TotalCollected: totalCollected,
		TotalDue:       totalDue,
		PaymentCount:   collected.PaymentCount,
	}, nil
}
