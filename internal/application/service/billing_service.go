package service

import (
	"context"
	"time"

	"github.com/billdesk/billdesk-api/internal/domain/entity"
	"github.com/billdesk/billdesk-api/internal/domain/enum"
	"github.com/billdesk/billdesk-api/internal/domain/repository"
	"github.com/billdesk/billdesk-api/pkg/apperror"
	"github.com/billdesk/billdesk-api/pkg/pagination"
)

// MaxBillLines is the number of line slots on the billing form.
const MaxBillLines = 5

// BillingService drafts bills from selected product lines
type BillingService struct {
	billRepo     repository.BillRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewBillingService creates a new billing service
func NewBillingService(
	billRepo repository.BillRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *BillingService {
	return &BillingService{
		billRepo:     billRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// LineSelection is one (product, quantity) slot on the billing form.
// A zero ProductID or Quantity marks an empty slot.
type LineSelection struct {
	ProductID uint
	Quantity  int
}

// DraftBillInput represents the draft bill input
type DraftBillInput struct {
	CustomerID uint
	Lines      []LineSelection
}

// DraftBill validates the selected lines against the catalog and persists a
// Pending bill with the lines that pass. Lines referencing a missing product
// or asking for more than the available stock are dropped, not errors; only
// a draft where every line was dropped fails. Stock is checked here but not
// reserved; it moves when the bill is settled.
func (s *BillingService) DraftBill(ctx context.Context, input *DraftBillInput) (*entity.Bill, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if len(input.Lines) > MaxBillLines {
		return nil, apperror.NewBadRequestError("A bill can have at most 5 line items")
	}

	var total int64
	items := make([]entity.BillItem, 0, len(input.Lines))

	for _, line := range input.Lines {
		// Empty form slot
		if line.ProductID == 0 && line.Quantity == 0 {
			continue
		}

		if line.Quantity < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "quantity", Message: "Quantity must be a positive integer"},
			})
		}

		if line.ProductID == 0 || line.Quantity == 0 {
			continue
		}

		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		// Unknown products and oversized quantities drop the line, never
		// the whole bill
		if product == nil || line.Quantity > product.Stock {
			continue
		}

		total += product.Price * int64(line.Quantity)
		items = append(items, entity.BillItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	if len(items) == 0 {
		return nil, apperror.NewBadRequestError("Insufficient stock for selected products")
	}

	bill := &entity.Bill{
		CustomerID:    input.CustomerID,
		Date:          time.Now(),
		Total:         total,
		PaymentStatus: enum.PaymentStatusPending,
		Items:         items,
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	return s.billRepo.GetWithItems(ctx, bill.ID)
}

// GetBill retrieves a bill with its line items and customer
func (s *BillingService) GetBill(ctx context.Context, id uint) (*entity.Bill, error) {
	bill, err := s.billRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists bills with filtering
func (s *BillingService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}
