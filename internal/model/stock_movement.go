package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every stock change on a product: sales, manual
// adjustments, catalog imports. Rows are append-only — the movement ledger
// is never modified or deleted.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind        string    `gorm:"not null"` // "sale" | "manual_adjustment" | "import"
	Delta       int       `gorm:"not null"` // positive = stock in, negative = stock out
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	// ReferenceID links to the originating Bill when Kind is "sale".
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
