package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill is an immutable record of a completed sale. It is created once,
// atomically with its stock decrements, and never edited or voided.
// PaymentType: "online" | "cash"
type Bill struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// BillNumber is the human-facing invoice number, used for PDF
	// filenames and customer display. Unique across the bill history.
	BillNumber    string `gorm:"uniqueIndex;not null"`
	CustomerName  string `gorm:"not null"`
	CustomerPhone string
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalGst      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentType   string          `gorm:"type:varchar(10);not null"`
	IsGstBill     bool            `gorm:"not null;default:false"`
	GstNumber     *string         `gorm:"type:varchar(20)"`
	// PDFPath is relative to PDF_STORAGE_PATH, set by the invoice worker.
	PDFPath   *string
	CreatedAt time.Time

	Items []BillItem `gorm:"foreignKey:BillID"`
}

// BillItem snapshots price and product name at sale time so historical
// bills stay accurate when the catalog changes or a product is deleted.
// Insertion order is the line order on the invoice.
type BillItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null"`
	// ProductName is denormalized on purpose — see Bill doc comment.
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GstAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Position    int             `gorm:"not null"`
}
