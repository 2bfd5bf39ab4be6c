package infra

import (
	"fmt"

	"tillpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate,
// then applies the SQL guarantees GORM cannot express: the partial unique
// index enforcing at most one open shift per organization, and the receipt
// number sequences.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Operator{},
		&model.Product{},
		&model.Customer{},
		&model.Shift{},
		&model.Order{},
		&model.OrderLineItem{},
		&model.FinanceRecord{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches is idempotent: every statement is safe to re-run on an
// already-patched schema.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// The service layer serializes open/close per organization, but the
		// database is the last line of defense for the single-open-shift
		// invariant when several instances share one database.
		{"one open shift per organization",
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_one_open
			   ON shifts (organization_id) WHERE status = 'open'`},
		{"receipt number sequence",
			`CREATE SEQUENCE IF NOT EXISTS orders_receipt_seq`},
		{"held ticket sequence",
			`CREATE SEQUENCE IF NOT EXISTS orders_hold_seq`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("%s: %w", p.descr, err)
		}
	}
	return nil
}
