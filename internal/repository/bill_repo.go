package repository

import (
	"context"

	"cloudledger/internal/dto"
	"cloudledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillRepository interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.Bill) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error)
	FindByNumber(ctx context.Context, billNumber string) (*model.Bill, error)
	// NextBillSeq draws the next value from the bill number sequence.
	NextBillSeq(ctx context.Context, tx *gorm.DB) (int64, error)
	List(ctx context.Context, filter dto.BillFilter) ([]model.Bill, int64, error)
	// ListAll returns the full bill history with items — the dashboard
	// aggregator recomputes from scratch on every call.
	ListAll(ctx context.Context) ([]model.Bill, error)
	SetPDFPath(ctx context.Context, id uuid.UUID, path string) error
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type billRepo struct{ db *gorm.DB }

func NewBillRepository(db *gorm.DB) BillRepository { return &billRepo{db: db} }

func (r *billRepo) DB() *gorm.DB { return r.db }

func (r *billRepo) Create(ctx context.Context, tx *gorm.DB, b *model.Bill) error {
	return tx.WithContext(ctx).Create(b).Error
}

func (r *billRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&b, id).Error
	return &b, err
}

func (r *billRepo) FindByNumber(ctx context.Context, billNumber string) (*model.Bill, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).Where("bill_number = ?", billNumber).First(&b).Error
	return &b, err
}

func (r *billRepo) NextBillSeq(ctx context.Context, tx *gorm.DB) (int64, error) {
	// Uses a PostgreSQL sequence for atomic bill number generation
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('bills_number_seq')").Scan(&num).Error
	return num, err
}

func (r *billRepo) List(ctx context.Context, filter dto.BillFilter) ([]model.Bill, int64, error) {
	var bills []model.Bill
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Bill{})

	if filter.Customer != "" {
		q = q.Where("customer_name ILIKE ?", "%"+filter.Customer+"%")
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepo) ListAll(ctx context.Context) ([]model.Bill, error) {
	var bills []model.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at ASC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepo) SetPDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Bill{}).Where("id = ?", id).
		Update("pdf_path", path).Error
}
