package service

import (
	"context"
	"time"

	"github.com/edusys/school-api/internal/domain/repository"
)

// DashboardService assembles the school's summary figures
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// DashboardSummary is the school's at-a-glance view
type DashboardSummary struct {
	StudentCount  int64                          `json:"student_count"`
	InvoiceCount  int64                          `json:"invoice_count"`
	FeeCollection *repository.FeeCollectionStats `json:"fee_collection"`
}

// GetSummary returns the school's dashboard figures for a period
func (s *DashboardService) GetSummary(ctx context.Context, from, to time.Time) (*DashboardSummary, error) {
	studentCount, err := s.dashboardRepo.StudentCount(ctx)
	if err != nil {
		return nil, err
	}

	invoiceCount, err := s.dashboardRepo.InvoiceCount(ctx)
	if err != nil {
		return nil, err
	}

	collection, err := s.dashboardRepo.FeeCollection(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		StudentCount:  studentCount,
		InvoiceCount:  invoiceCount,
		FeeCollection: collection,
	}, nil
}
