package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the authoritative catalog record. Billing only ever adjusts
// Stock; deleting a product never touches historical bills, which carry
// their own price and name snapshots.
type Product struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string          `gorm:"index;not null"`
	Category string          `gorm:"index;not null"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock    int             `gorm:"not null;default:0"`
	// ReorderPoint is the threshold below which a reorder alert fires.
	ReorderPoint int `gorm:"not null;default:5"`
	// GstRate is a per-product tax percentage override; nil means 0.
	GstRate   *decimal.Decimal `gorm:"type:decimal(5,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
