package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type BillItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	// UnitPrice overrides the catalog price when present — supports
	// discounts and manual pricing. Must be non-negative.
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,min=0"`
}

type CreateBillRequest struct {
	// BillNumber is optional — when absent the server generates one from
	// a sequence. A supplied number that collides is rejected.
	BillNumber    *string           `json:"bill_number"    validate:"omitempty,min=3,max=30"`
	CustomerName  string            `json:"customer_name"  validate:"required,min=2,max=120"`
	CustomerPhone string            `json:"customer_phone" validate:"omitempty,min=6,max=20"`
	PaymentType   string            `json:"payment_type"   validate:"required,oneof=online cash"`
	IsGstBill     bool              `json:"is_gst_bill"`
	GstNumber     *string           `json:"gst_number"     validate:"omitempty,min=5,max=20"`
	Items         []BillItemRequest `json:"items"          validate:"required,min=1,dive"`
	// CustomerEmail: optional — when present, the invoice worker mails the PDF.
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

// BillFilter is bound from the query string of GET /v1/bills.
type BillFilter struct {
	Customer string `form:"customer"`
	Date     string `form:"date"` // YYYY-MM-DD; empty = no date filter
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BillItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	GstAmount   decimal.Decimal `json:"gst_amount"`
}

type BillResponse struct {
	ID            string             `json:"id"`
	BillNumber    string             `json:"bill_number"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	Items         []BillItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TotalGst      decimal.Decimal    `json:"total_gst"`
	Total         decimal.Decimal    `json:"total"`
	PaymentType   string             `json:"payment_type"`
	IsGstBill     bool               `json:"is_gst_bill"`
	GstNumber     *string            `json:"gst_number,omitempty"`
	CreatedAt     string             `json:"created_at"`
}

type BillListResponse struct {
	Data  []BillResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
