package infra

import (
	"fmt"

	"cloudledger/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for all models, then applies the SQL objects GORM cannot express.
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

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus idempotent SQL patches. Split out
// so integration tests can run it against their own database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Product{},
		&model.Bill{},
		&model.BillItem{},
		&model.StockMovement{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	// Bill numbers are drawn from a sequence so generation is atomic even
	// under concurrent bill creation.
	if err := db.Exec(`CREATE SEQUENCE IF NOT EXISTS bills_number_seq`).Error; err != nil {
		return fmt.Errorf("create bill number sequence: %w", err)
	}

	return nil
}
