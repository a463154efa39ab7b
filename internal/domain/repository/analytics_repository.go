package repository

import (
	"context"
)

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// CountCustomers returns the total number of customers
	CountCustomers(ctx context.Context) (int64, error)

	// CountProducts returns the total number of products
	CountProducts(ctx context.Context) (int64, error)

	// CountBills returns the total number of bills, drafted or settled
	CountBills(ctx context.Context) (int64, error)

	// CountPendingBills returns the number of bills awaiting settlement
	CountPendingBills(ctx context.Context) (int64, error)

	// CountLowStock returns the number of products with stock below threshold
	CountLowStock(ctx context.Context, threshold int) (int64, error)

	// GetTotalRevenue returns the sum of all bill totals as a decimal.
	// Returns 0 when no bills exist.
	GetTotalRevenue(ctx context.Context) (float64, error)
}
