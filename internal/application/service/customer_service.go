package service

import (
	"context"

	"github.com/billdesk/billdesk-api/internal/domain/entity"
	"github.com/billdesk/billdesk-api/internal/domain/repository"
	"github.com/billdesk/billdesk-api/pkg/apperror"
	"github.com/billdesk/billdesk-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name  string
	Phone *string
	Email *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uint) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with optional name search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}
