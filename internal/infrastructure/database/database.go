package database

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/billdesk/billdesk-api/internal/config"
	"github.com/billdesk/billdesk-api/internal/domain/entity"
)

// New opens a database connection for the configured driver. The default is
// an embedded sqlite file next to the binary; postgres is available for
// deployments that outgrow it.
func New(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var db *gorm.DB
	var err error

	switch cfg.Driver {
	case "sqlite", "":
		db, err = gorm.Open(sqlite.Open(cfg.Path), gormCfg)
	case "postgres":
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q (use sqlite or postgres)", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	} else {
		// sqlite handles one writer at a time; a single connection keeps
		// request transactions serialized instead of failing on SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	}

	log.Printf("Connected to %s database", driverName(cfg.Driver))
	return db, nil
}

func driverName(driver string) string {
	if driver == "" {
		return "sqlite"
	}
	return driver
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog entities
		&entity.Customer{},
		&entity.Product{},

		// Billing entities
		&entity.Bill{},
		&entity.BillItem{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
