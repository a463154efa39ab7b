package repository

import (
	"context"

	"github.com/billdesk/billdesk-api/internal/domain/entity"
	"github.com/billdesk/billdesk-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uint) (*entity.Customer, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}
