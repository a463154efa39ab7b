package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/billdesk/billdesk-api/internal/domain/entity"
	"github.com/billdesk/billdesk-api/internal/domain/enum"
	domainRepo "github.com/billdesk/billdesk-api/internal/domain/repository"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

// Create inserts the bill and its line items. GORM writes the parent row and
// the association rows inside a single transaction, so a bill can never be
// observed without its items.
func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uint) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetWithItems(ctx context.Context, id uint) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{})

	if params.Status != nil {
		query = query.Where("payment_status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("created_at DESC").
		Find(&bills).Error

	return bills, total, err
}

// Settle marks the bill Paid and decrements stock for every line item as one
// atomic unit. The status flip is guarded on payment_status so a concurrent
// or repeated settlement finds zero rows and rolls back without side effects.
func (r *billRepository) Settle(ctx context.Context, bill *entity.Bill, method enum.PaymentMethod) (bool, error) {
	settled := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Bill{}).
			Where("id = ? AND payment_status = ?", bill.ID, enum.PaymentStatusPending).
			Updates(map[string]interface{}{
				"payment_method": method,
				"payment_status": enum.PaymentStatusPaid,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Already settled; nothing to decrement
			return nil
		}

		for _, item := range bill.Items {
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		settled = true
		return nil
	})

	return settled, err
}
