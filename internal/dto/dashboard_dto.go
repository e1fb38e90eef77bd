package dto

import "github.com/shopspring/decimal"

// TopProduct ranks a product by total quantity sold across the bill history.
type TopProduct struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DashboardStats is a derived, non-persisted view recomputed on demand.
type DashboardStats struct {
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalBills      int64           `json:"total_bills"`
	NetProfitMargin decimal.Decimal `json:"net_profit_margin"` // percentage
	TopProducts     []TopProduct    `json:"top_products"`
}

// SalesPoint is one bucket of the time-bucketed sales series.
type SalesPoint struct {
	Name  string          `json:"name"` // "Jan".."Dec" or "Week 1".."Week 5"
	Sales decimal.Decimal `json:"sales"`
}

type SalesSeriesResponse struct {
	Interval string       `json:"interval"` // monthly | weekly
	Series   []SalesPoint `json:"series"`
}
