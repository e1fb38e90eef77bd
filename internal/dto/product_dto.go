package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	// ID is optional — catalog syncs from an existing system supply their
	// own stable ids; otherwise one is generated.
	ID           *string          `json:"id"            validate:"omitempty,uuid"`
	Name         string           `json:"name"          validate:"required,min=2,max=120"`
	Category     string           `json:"category"      validate:"required"`
	Price        decimal.Decimal  `json:"price"         validate:"min=0"`
	Stock        int              `json:"stock"         validate:"min=0"`
	ReorderPoint int              `json:"reorder_point" validate:"min=0"`
	GstRate      *decimal.Decimal `json:"gst_rate"      validate:"omitempty,min=0,max=100"`
}

type UpdateProductRequest struct {
	Name         *string          `json:"name"          validate:"omitempty,min=2,max=120"`
	Category     *string          `json:"category"`
	Price        *decimal.Decimal `json:"price"         validate:"omitempty,min=0"`
	ReorderPoint *int             `json:"reorder_point" validate:"omitempty,min=0"`
	GstRate      *decimal.Decimal `json:"gst_rate"      validate:"omitempty,min=0,max=100"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Price        decimal.Decimal  `json:"price"`
	Stock        int              `json:"stock"`
	ReorderPoint int              `json:"reorder_point"`
	GstRate      *decimal.Decimal `json:"gst_rate,omitempty"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Catalog import ──────────────────────────────────────────────────────────

// ImportedProduct is one parsed row of an xlsx catalog upload.
type ImportedProduct struct {
	Name         string
	Category     string
	Price        decimal.Decimal
	Stock        int
	ReorderPoint int
	GstRate      *decimal.Decimal
}

// ImportRowError reports a row that could not be parsed or inserted.
type ImportRowError struct {
	Row    int    `json:"row"`
	Detail string `json:"detail"`
}

type ImportResponse struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
