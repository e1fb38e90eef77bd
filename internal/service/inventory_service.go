package service

import (
	"context"
	"fmt"
	"time"

	"cloudledger/internal/dto"
	"cloudledger/internal/model"
	"cloudledger/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService is the authoritative store for the product catalog.
// All stock changes go through it so every change lands in the movement
// ledger; nothing mutates product rows directly.
type InventoryService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	BulkCreate(ctx context.Context, rows []dto.ImportedProduct) ([]dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
	ListMovements(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error)
}

type inventoryService struct {
	repo         repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

func NewInventoryService(repo repository.ProductRepository, movementRepo repository.StockMovementRepository) InventoryService {
	return &inventoryService{repo: repo, movementRepo: movementRepo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *inventoryService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := model.Product{
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		Stock:        req.Stock,
		ReorderPoint: req.ReorderPoint,
		GstRate:      req.GstRate,
	}
	if req.ID != nil {
		id, err := uuid.Parse(*req.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid product id: %w", err)
		}
		// Insert-or-fail: a supplied id that is already present is rejected,
		// never overwritten.
		if _, err := s.repo.FindByID(ctx, id); err == nil {
			return nil, ErrProductExists
		}
		p.ID = id
	} else {
		p.ID = uuid.New()
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return productToResponse(&p), nil
}

// BulkCreate inserts a parsed catalog import in one transaction, recording
// an "import" movement for every row that arrives with opening stock.
func (s *inventoryService) BulkCreate(ctx context.Context, rows []dto.ImportedProduct) ([]dto.ProductResponse, error) {
	created := make([]model.Product, 0, len(rows))

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, row := range rows {
			p := model.Product{
				ID:           uuid.New(),
				Name:         row.Name,
				Category:     row.Category,
				Price:        row.Price,
				Stock:        row.Stock,
				ReorderPoint: row.ReorderPoint,
				GstRate:      row.GstRate,
			}
			if err := s.repo.CreateTx(tx, &p); err != nil {
				return fmt.Errorf("import %q: %w", row.Name, err)
			}
			if row.Stock > 0 {
				mov := &model.StockMovement{
					ProductID:   p.ID,
					Kind:        "import",
					Delta:       row.Stock,
					StockBefore: 0,
					StockAfter:  row.Stock,
					Reason:      "catalog import",
				}
				if err := s.movementRepo.CreateTx(tx, mov); err != nil {
					return err
				}
			}
			created = append(created, p)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	out := make([]dto.ProductResponse, 0, len(created))
	for i := range created {
		out = append(out, *productToResponse(&created[i]))
	}
	return out, nil
}

func (s *inventoryService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return productToResponse(p), nil
}

func (s *inventoryService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *inventoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.ReorderPoint != nil {
		p.ReorderPoint = *req.ReorderPoint
	}
	if req.GstRate != nil {
		p.GstRate = req.GstRate
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// Delete removes the catalog record. Historical bills are untouched — they
// carry their own price, quantity, and name snapshots.
func (s *inventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProductNotFound
	}
	return s.repo.Delete(ctx, id)
}

// AdjustStock applies a manual stock delta inside a transaction and appends
// the matching ledger entry. Adjustments that would take stock below zero
// are rejected; negative deltas go through a guarded update so a concurrent
// sale between read and write cannot drive stock negative.
func (s *inventoryService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Re-read inside the tx: the ledger entry must reflect the stock
		// the delta was actually applied against.
		cur, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return ErrProductNotFound
		}
		stockBefore := cur.Stock

		if req.Delta < 0 {
			rows, err := s.repo.AdjustStockGuardedTx(tx, id, req.Delta)
			if err != nil {
				return err
			}
			if rows == 0 {
				return fmt.Errorf("%w: stock %d, delta %d", ErrInsufficientStock, stockBefore, req.Delta)
			}
		} else if err := s.repo.AdjustStockTx(tx, id, req.Delta); err != nil {
			return err
		}

		mov := &model.StockMovement{
			ProductID:   id,
			Kind:        "manual_adjustment",
			Delta:       req.Delta,
			StockBefore: stockBefore,
			StockAfter:  stockBefore + req.Delta,
			Reason:      req.Reason,
		}
		if err := s.movementRepo.CreateTx(tx, mov); err != nil {
			return err
		}

		p = cur
		p.Stock = stockBefore + req.Delta
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return productToResponse(p), nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movements, total, err := s.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		var ref *string
		if m.ReferenceID != nil {
			r := m.ReferenceID.String()
			ref = &r
		}
		items = append(items, dto.StockMovementResponse{
			ID:          m.ID.String(),
			ProductID:   m.ProductID.String(),
			Kind:        m.Kind,
			Delta:       m.Delta,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			ReferenceID: ref,
			CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return &dto.StockMovementListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Category:     p.Category,
		Price:        p.Price,
		Stock:        p.Stock,
		ReorderPoint: p.ReorderPoint,
		GstRate:      p.GstRate,
	}
}
