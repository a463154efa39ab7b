package repository

import (
	"context"

	"github.com/billdesk/billdesk-api/internal/domain/entity"
	"github.com/billdesk/billdesk-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error)
	// GetLowStock returns all products with stock strictly below the threshold
	GetLowStock(ctx context.Context, threshold int) ([]entity.Product, error)
}
