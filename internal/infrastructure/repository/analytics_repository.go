package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/billdesk/billdesk-api/internal/domain/entity"
	"github.com/billdesk/billdesk-api/internal/domain/enum"
	domainRepo "github.com/billdesk/billdesk-api/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountBills(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Bill{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountPendingBills(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("payment_status = ?", enum.PaymentStatusPending).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("stock < ?", threshold).
		Count(&count).Error
	return count, err
}

// GetTotalRevenue sums every bill total, settled or not, matching what the
// bill list shows. COALESCE keeps an empty bills table at 0 rather than NULL.
func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0) / 100.0 FROM bills
	`).Scan(&revenue).Error
	return revenue, err
}
