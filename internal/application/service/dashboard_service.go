package service

import (
	"context"

	"github.com/billdesk/billdesk-api/internal/domain/repository"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo     repository.AnalyticsRepository
	lowStockThreshold int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, lowStockThreshold int) *DashboardService {
	return &DashboardService{
		analyticsRepo:     analyticsRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalCustomers int64   `json:"total_customers"`
	TotalProducts  int64   `json:"total_products"`
	TotalBills     int64   `json:"total_bills"`
	TotalRevenue   float64 `json:"total_revenue"`
	PendingBills   int64   `json:"pending_bills"`
	LowStockCount  int64   `json:"low_stock_count"`
}

// GetDashboardStats returns dashboard statistics. With an empty store every
// figure is zero; no bills means zero revenue, not an error.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalCustomers, err = s.analyticsRepo.CountCustomers(ctx); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.analyticsRepo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if stats.TotalBills, err = s.analyticsRepo.CountBills(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.analyticsRepo.GetTotalRevenue(ctx); err != nil {
		return nil, err
	}
	if stats.PendingBills, err = s.analyticsRepo.CountPendingBills(ctx); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.analyticsRepo.CountLowStock(ctx, s.lowStockThreshold); err != nil {
		return nil, err
	}

	return stats, nil
}
