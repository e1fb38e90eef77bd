package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cloudledger/internal/model"
	"cloudledger/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBill(repo *stubBillRepo, total string, createdAt time.Time, items ...model.BillItem) {
	b := &model.Bill{
		ID:           uuid.New(),
		BillNumber:   fmt.Sprintf("INV-%06d", len(repo.bills)+1),
		CustomerName: "Walk-in",
		Subtotal:     mustDecimal(total),
		Total:        mustDecimal(total),
		PaymentType:  "cash",
		CreatedAt:    createdAt,
		Items:        items,
	}
	_ = repo.Create(context.Background(), nil, b)
}

func TestStats_EmptyHistory(t *testing.T) {
	svc := service.NewDashboardService(newStubBillRepo(), 0.70)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.TotalSales.IsZero())
	assert.Equal(t, int64(0), stats.TotalBills)
	assert.True(t, stats.NetProfitMargin.IsZero())
	assert.Empty(t, stats.TopProducts)
}

func TestStats_TotalsAndMargin(t *testing.T) {
	repo := newStubBillRepo()
	now := time.Now()
	seedBill(repo, "600.00", now)
	seedBill(repo, "400.00", now)

	svc := service.NewDashboardService(repo, 0.70)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.TotalSales.Equal(mustDecimal("1000.00")), "total = %s", stats.TotalSales)
	assert.Equal(t, int64(2), stats.TotalBills)
	// cost ratio 0.70 → margin (1000 − 700) / 1000 × 100 = 30.00%
	assert.True(t, stats.NetProfitMargin.Equal(mustDecimal("30.00")), "margin = %s", stats.NetProfitMargin)
}

func TestStats_TopProductsRanking(t *testing.T) {
	repo := newStubBillRepo()
	now := time.Now()

	idA := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	idB := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	idC := uuid.MustParse("00000000-0000-0000-0000-00000000000c")

	seedBill(repo, "100.00", now,
		model.BillItem{ProductID: idA, ProductName: "Alpha", Quantity: 5, Subtotal: mustDecimal("50.00")},
		model.BillItem{ProductID: idB, ProductName: "Beta", Quantity: 2, Subtotal: mustDecimal("20.00")},
	)
	seedBill(repo, "100.00", now.Add(time.Minute),
		model.BillItem{ProductID: idB, ProductName: "Beta", Quantity: 6, Subtotal: mustDecimal("60.00")},
		model.BillItem{ProductID: idC, ProductName: "Gamma", Quantity: 5, Subtotal: mustDecimal("40.00")},
	)

	svc := service.NewDashboardService(repo, 0.70)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.TopProducts, 3)
	// Beta leads with 8 sold; Alpha and Gamma tie at 5 — lower id first
	assert.Equal(t, "Beta", stats.TopProducts[0].Name)
	assert.Equal(t, 8, stats.TopProducts[0].QuantitySold)
	assert.True(t, stats.TopProducts[0].Revenue.Equal(mustDecimal("80.00")))
	assert.Equal(t, "Alpha", stats.TopProducts[1].Name)
	assert.Equal(t, "Gamma", stats.TopProducts[2].Name)
}

func TestStats_TopProductsCapped(t *testing.T) {
	repo := newStubBillRepo()
	now := time.Now()
	for i := 0; i < 7; i++ {
		seedBill(repo, "10.00", now.Add(time.Duration(i)*time.Minute),
			model.BillItem{
				ProductID:   uuid.New(),
				ProductName: fmt.Sprintf("P%d", i),
				Quantity:    i + 1,
				Subtotal:    mustDecimal("10.00"),
			},
		)
	}

	svc := service.NewDashboardService(repo, 0.70)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats.TopProducts, 5)
	assert.Equal(t, 7, stats.TopProducts[0].QuantitySold)
}

func TestSalesSeries_Monthly(t *testing.T) {
	repo := newStubBillRepo()
	now := time.Now()
	thisYear := now.Year()

	// One bill in January, one in the current month, one last year (ignored)
	seedBill(repo, "100.00", time.Date(thisYear, time.January, 10, 12, 0, 0, 0, time.UTC))
	seedBill(repo, "250.00", now)
	seedBill(repo, "999.00", now.AddDate(-1, 0, 0))

	svc := service.NewDashboardService(repo, 0.70)
	resp, err := svc.SalesSeries(context.Background(), "monthly")
	require.NoError(t, err)

	assert.Equal(t, "monthly", resp.Interval)
	require.Len(t, resp.Series, 12)
	assert.Equal(t, "Jan", resp.Series[0].Name)
	assert.Equal(t, "Dec", resp.Series[11].Name)

	if now.Month() == time.January {
		assert.True(t, resp.Series[0].Sales.Equal(mustDecimal("350.00")))
	} else {
		assert.True(t, resp.Series[0].Sales.Equal(mustDecimal("100.00")))
		assert.True(t, resp.Series[int(now.Month())-1].Sales.Equal(mustDecimal("250.00")))
	}

	sum := resp.Series[0].Sales
	for _, pt := range resp.Series[1:] {
		sum = sum.Add(pt.Sales)
	}
	assert.True(t, sum.Equal(mustDecimal("350.00")), "last year's bill excluded")
}

func TestSalesSeries_Weekly(t *testing.T) {
	repo := newStubBillRepo()
	now := time.Now()

	// Day 3 of the current month lands in Week 1
	day3 := time.Date(now.Year(), now.Month(), 3, 12, 0, 0, 0, time.UTC)
	seedBill(repo, "75.00", day3)
	// Previous month — excluded
	seedBill(repo, "500.00", day3.AddDate(0, -1, 0))

	svc := service.NewDashboardService(repo, 0.70)
	resp, err := svc.SalesSeries(context.Background(), "weekly")
	require.NoError(t, err)

	assert.Equal(t, "weekly", resp.Interval)
	require.Len(t, resp.Series, 5)
	assert.Equal(t, "Week 1", resp.Series[0].Name)
	assert.Equal(t, "Week 5", resp.Series[4].Name)
	assert.True(t, resp.Series[0].Sales.Equal(mustDecimal("75.00")), "week 1 = %s", resp.Series[0].Sales)
	for _, pt := range resp.Series[1:] {
		assert.True(t, pt.Sales.IsZero())
	}
}

func TestSalesSeries_UnknownIntervalFallsBackToMonthly(t *testing.T) {
	svc := service.NewDashboardService(newStubBillRepo(), 0.70)
	resp, err := svc.SalesSeries(context.Background(), "hourly")
	require.NoError(t, err)
	assert.Equal(t, "monthly", resp.Interval)
	assert.Len(t, resp.Series, 12)
}
