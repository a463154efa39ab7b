package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billdesk/billdesk-api/internal/infrastructure/repository"
	"github.com/billdesk/billdesk-api/pkg/apperror"
	"github.com/billdesk/billdesk-api/pkg/pagination"
)

func newProductService(t *testing.T) (*ProductService, *testDeps) {
	t.Helper()
	db := setupTestDB(t)
	return NewProductService(repository.NewProductRepository(db), 10), &testDeps{db: db}
}

func TestCreateProductStoresPriceInCents(t *testing.T) {
	svc, _ := newProductService(t)

	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:  "Pen",
		Price: 10.50,
		Stock: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1050), product.Price)
	assert.Equal(t, 10.50, product.GetPriceDecimal())
	assert.Equal(t, 5, product.Stock)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	svc, _ := newProductService(t)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:  "Pen",
		Price: -1,
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestGetLowStock(t *testing.T) {
	svc, deps := newProductService(t)

	seedProduct(t, deps.db, "Pen", 1000, 3)
	seedProduct(t, deps.db, "Notebook", 2000, 9)
	seedProduct(t, deps.db, "Stapler", 5000, 10) // at the threshold, not below

	products, err := svc.GetLowStock(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 2)
	// Scarcest first
	assert.Equal(t, "Pen", products[0].Name)
	assert.Equal(t, "Notebook", products[1].Name)
}

func TestListProductsSearch(t *testing.T) {
	svc, deps := newProductService(t)

	seedProduct(t, deps.db, "Blue Pen", 1000, 3)
	seedProduct(t, deps.db, "Notebook", 2000, 9)

	result, err := svc.ListProducts(context.Background(), &pagination.PaginationParams{Page: 1, PerPage: 15}, "pen")
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Blue Pen", result.Items[0].Name)
	assert.Equal(t, int64(1), result.Pagination.Total)
}
