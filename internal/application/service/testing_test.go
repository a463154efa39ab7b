package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/billdesk/billdesk-api/internal/domain/entity"
)

// testDeps bundles what the service tests need alongside the service itself.
type testDeps struct {
	db *gorm.DB
}

// setupTestDB opens an in-memory SQLite database migrated with the full
// schema. Connections are capped at one so the in-memory database is shared
// across all queries in a test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Customer{},
		&entity.Product{},
		&entity.Bill{},
		&entity.BillItem{},
		&entity.IdempotencyKey{},
	))

	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{Name: name}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, name string, priceCents int64, stock int) *entity.Product {
	t.Helper()
	product := &entity.Product{Name: name, Price: priceCents, Stock: stock}
	require.NoError(t, db.Create(product).Error)
	return product
}
