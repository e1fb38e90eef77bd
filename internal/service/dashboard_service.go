package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloudledger/internal/dto"
	"cloudledger/internal/repository"

	"github.com/shopspring/decimal"
)

const defaultTopProducts = 5

// DashboardService derives summary statistics from the bill history.
// Every call recomputes from scratch — there is no cached state to
// invalidate. O(bills × items) is fine at this scale; switch to counters
// maintained inside CreateBill if the history ever grows unbounded.
type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStats, error)
	SalesSeries(ctx context.Context, interval string) (*dto.SalesSeriesResponse, error)
}

type dashboardService struct {
	billRepo repository.BillRepository
	// costRatio is the assumed cost fraction of each sale (see config).
	costRatio decimal.Decimal
}

func NewDashboardService(billRepo repository.BillRepository, costRatio float64) DashboardService {
	return &dashboardService{
		billRepo:  billRepo,
		costRatio: decimal.NewFromFloat(costRatio),
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	bills, err := s.billRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	totalSales := decimal.Zero
	type productAgg struct {
		id       string
		name     string
		quantity int
		revenue  decimal.Decimal
	}
	byProduct := make(map[string]*productAgg)

	for i := range bills {
		b := &bills[i]
		totalSales = totalSales.Add(b.Total)
		for _, item := range b.Items {
			key := item.ProductID.String()
			agg, ok := byProduct[key]
			if !ok {
				agg = &productAgg{id: key, revenue: decimal.Zero}
				byProduct[key] = agg
			}
			// Keep the latest name snapshot — bills are ordered oldest first.
			agg.name = item.ProductName
			agg.quantity += item.Quantity
			agg.revenue = agg.revenue.Add(item.Subtotal)
		}
	}

	margin := decimal.Zero
	if totalSales.IsPositive() {
		totalCosts := totalSales.Mul(s.costRatio)
		margin = totalSales.Sub(totalCosts).Div(totalSales).Mul(hundred).Round(2)
	}

	ranked := make([]*productAgg, 0, len(byProduct))
	for _, agg := range byProduct {
		ranked = append(ranked, agg)
	}
	// Quantity sold descending; ties broken by product id for determinism.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].quantity != ranked[j].quantity {
			return ranked[i].quantity > ranked[j].quantity
		}
		return ranked[i].id < ranked[j].id
	})
	if len(ranked) > defaultTopProducts {
		ranked = ranked[:defaultTopProducts]
	}

	top := make([]dto.TopProduct, 0, len(ranked))
	for _, agg := range ranked {
		top = append(top, dto.TopProduct{
			ProductID:    agg.id,
			Name:         agg.name,
			QuantitySold: agg.quantity,
			Revenue:      agg.revenue,
		})
	}

	return &dto.DashboardStats{
		TotalSales:      totalSales,
		TotalBills:      int64(len(bills)),
		NetProfitMargin: margin,
		TopProducts:     top,
	}, nil
}

// SalesSeries buckets the bill history by month of the current year, or by
// week of the current month, for the sales chart.
func (s *dashboardService) SalesSeries(ctx context.Context, interval string) (*dto.SalesSeriesResponse, error) {
	bills, err := s.billRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var series []dto.SalesPoint

	switch interval {
	case "weekly":
		// Weeks of the current month: days 1–7 = Week 1, 8–14 = Week 2, …
		buckets := make([]decimal.Decimal, 5)
		for i := range buckets {
			buckets[i] = decimal.Zero
		}
		for i := range bills {
			b := &bills[i]
			if b.CreatedAt.Year() != now.Year() || b.CreatedAt.Month() != now.Month() {
				continue
			}
			week := (b.CreatedAt.Day() - 1) / 7
			buckets[week] = buckets[week].Add(b.Total)
		}
		for i, total := range buckets {
			series = append(series, dto.SalesPoint{
				Name:  fmt.Sprintf("Week %d", i+1),
				Sales: total,
			})
		}
	default: // monthly
		buckets := make([]decimal.Decimal, 12)
		for i := range buckets {
			buckets[i] = decimal.Zero
		}
		for i := range bills {
			b := &bills[i]
			if b.CreatedAt.Year() != now.Year() {
				continue
			}
			buckets[int(b.CreatedAt.Month())-1] = buckets[int(b.CreatedAt.Month())-1].Add(b.Total)
		}
		for i, total := range buckets {
			series = append(series, dto.SalesPoint{
				Name:  time.Month(i + 1).String()[:3],
				Sales: total,
			})
		}
		interval = "monthly"
	}

	return &dto.SalesSeriesResponse{Interval: interval, Series: series}, nil
}
