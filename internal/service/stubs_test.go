package service_test

// In-memory repository stubs. The services open no transactions when the
// repo's DB() returns nil, so these run everything synchronously in maps.

import (
	"context"
	"errors"
	"sort"
	"time"

	"cloudledger/internal/dto"
	"cloudledger/internal/model"
	"cloudledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ── stubProductRepo ───────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	all, _ := r.ListAll(context.Background())
	var out []model.Product
	for _, p := range all {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) ListAll(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return errors.New("record not found")
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	return r.Create(context.Background(), p)
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("record not found")
	}
	p.Stock += delta
	return nil
}

func (r *stubProductRepo) AdjustStockGuardedTx(_ *gorm.DB, id uuid.UUID, delta int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.Stock+delta < 0 {
		return 0, nil
	}
	p.Stock += delta
	return 1, nil
}

func (r *stubProductRepo) DecrementStockGuardedTx(_ *gorm.DB, id uuid.UUID, quantity int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.Stock < quantity {
		return 0, nil
	}
	p.Stock -= quantity
	return 1, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── stubBillRepo ──────────────────────────────────────────────────────────────

type stubBillRepo struct {
	bills    map[uuid.UUID]*model.Bill
	byNumber map[string]*model.Bill
	seq      int64
}

func newStubBillRepo() *stubBillRepo {
	return &stubBillRepo{
		bills:    make(map[uuid.UUID]*model.Bill),
		byNumber: make(map[string]*model.Bill),
	}
}

func (r *stubBillRepo) Create(_ context.Context, _ *gorm.DB, b *model.Bill) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	for i := range b.Items {
		if b.Items[i].ID == uuid.Nil {
			b.Items[i].ID = uuid.New()
		}
		b.Items[i].BillID = b.ID
	}
	r.bills[b.ID] = b
	r.byNumber[b.BillNumber] = b
	return nil
}

func (r *stubBillRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Bill, error) {
	b, ok := r.bills[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return b, nil
}

func (r *stubBillRepo) FindByNumber(_ context.Context, billNumber string) (*model.Bill, error) {
	b, ok := r.byNumber[billNumber]
	if !ok {
		return nil, errors.New("record not found")
	}
	return b, nil
}

func (r *stubBillRepo) NextBillSeq(_ context.Context, _ *gorm.DB) (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubBillRepo) List(_ context.Context, _ dto.BillFilter) ([]model.Bill, int64, error) {
	all, _ := r.ListAll(context.Background())
	return all, int64(len(all)), nil
}

func (r *stubBillRepo) ListAll(_ context.Context) ([]model.Bill, error) {
	out := make([]model.Bill, 0, len(r.bills))
	for _, b := range r.bills {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubBillRepo) SetPDFPath(_ context.Context, id uuid.UUID, path string) error {
	b, ok := r.bills[id]
	if !ok {
		return errors.New("record not found")
	}
	b.PDFPath = &path
	return nil
}

func (r *stubBillRepo) DB() *gorm.DB { return nil }

var _ repository.BillRepository = (*stubBillRepo)(nil)

// ── stubMovementRepo ──────────────────────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter dto.StockMovementFilter) ([]model.StockMovement, int64, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if filter.ProductID != "" && m.ProductID.String() != filter.ProductID {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func seedProduct(repo *stubProductRepo, name string, price string, stock, reorderPoint int) *model.Product {
	p := &model.Product{
		ID:           uuid.New(),
		Name:         name,
		Category:     "General",
		Price:        mustDecimal(price),
		Stock:        stock,
		ReorderPoint: reorderPoint,
	}
	_ = repo.Create(context.Background(), p)
	return p
}
