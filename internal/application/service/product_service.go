package service

import (
	"context"

	"github.com/billdesk/billdesk-api/internal/domain/entity"
	"github.com/billdesk/billdesk-api/internal/domain/repository"
	"github.com/billdesk/billdesk-api/pkg/apperror"
	"github.com/billdesk/billdesk-api/pkg/pagination"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo       repository.ProductRepository
	lowStockThreshold int
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, lowStockThreshold int) *ProductService {
	return &ProductService{
		productRepo:       productRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name  string
	Price float64
	Stock int
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Price < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "price", Message: "Price must not be negative"},
		})
	}
	if input.Stock < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "stock", Message: "Stock must not be negative"},
		})
	}

	product := &entity.Product{
		Name:  input.Name,
		Stock: input.Stock,
	}
	product.SetPriceFromDecimal(input.Price)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with optional name search
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStock returns products whose stock has fallen below the alert threshold
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, s.lowStockThreshold)
}
