package repository

import (
	"context"

	"github.com/billdesk/billdesk-api/internal/domain/entity"
	"github.com/billdesk/billdesk-api/internal/domain/enum"
	"github.com/billdesk/billdesk-api/pkg/pagination"
)

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	// Create persists the bill together with its line items as a single
	// transaction. Either the bill and every item are written, or nothing is.
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uint) (*entity.Bill, error)
	GetWithItems(ctx context.Context, id uint) (*entity.Bill, error)
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	// Settle flips the bill to Paid with the given method and decrements the
	// stock of every product referenced by the bill's items, all inside one
	// transaction. A partially settled bill is never observable. Returns
	// false without touching anything when the bill is no longer Pending,
	// so a bill's stock can never be decremented twice.
	Settle(ctx context.Context, bill *entity.Bill, method enum.PaymentMethod) (bool, error)
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.PaymentStatus
	CustomerID *uint
}
