package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"cloudledger/internal/dto"
	"cloudledger/internal/infra"
	"cloudledger/internal/model"
	"cloudledger/internal/repository"
	"cloudledger/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillingService validates and commits new sales.
type BillingService interface {
	CreateBill(ctx context.Context, req dto.CreateBillRequest) (*dto.BillResponse, error)
	GetBill(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error)
	ListBills(ctx context.Context, filter dto.BillFilter) (*dto.BillListResponse, error)
	// InvoicePDF returns the on-disk path of the bill's invoice PDF,
	// rendering it synchronously when the async worker has not produced
	// one yet.
	InvoicePDF(ctx context.Context, id uuid.UUID) (string, error)
}

type billingService struct {
	repo         repository.BillRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	dispatcher   *worker.Dispatcher
	businessName string
	pdfStorage   string
}

func NewBillingService(
	repo repository.BillRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
	businessName string,
	pdfStorage string,
) BillingService {
	return &billingService{
		repo:         repo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		dispatcher:   dispatcher,
		businessName: businessName,
		pdfStorage:   pdfStorage,
	}
}

// hundred is the divisor for percentage GST rates.
var hundred = decimal.NewFromInt(100)

// ── CreateBill ────────────────────────────────────────────────────────────────
// Full ACID commit of a sale:
//  1. Resolve every product; reject before mutating if any is missing or
//     short on stock (oversell policy: reject, never go negative).
//  2. Price each line — catalog price unless an override is supplied;
//     GST per line when is_gst_bill, using the product's rate (default 0).
//  3. BEGIN TX: bill number (supplied → uniqueness check, otherwise drawn
//     from the sequence), insert bill + items, guarded stock decrement per
//     line, one stock movement per line.
//  4. COMMIT, then best-effort dispatch of the invoice PDF job.

func (s *billingService) CreateBill(ctx context.Context, req dto.CreateBillRequest) (*dto.BillResponse, error) {
	// 1. Resolve products and calculate totals (pre-flight, outside TX)
	type resolvedLine struct {
		productID uuid.UUID
		name      string
		price     decimal.Decimal
		quantity  int
		subtotal  decimal.Decimal
		gstAmount decimal.Decimal
	}

	var resolved []resolvedLine
	subtotal := decimal.Zero
	totalGst := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id %q: %w", item.ProductID, err)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		if item.Quantity > p.Stock {
			return nil, fmt.Errorf("%w: %s (requested %d, available %d)",
				ErrInsufficientStock, p.Name, item.Quantity, p.Stock)
		}

		price := p.Price
		if item.UnitPrice != nil {
			price = *item.UnitPrice
		}
		lineSubtotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))

		gstAmount := decimal.Zero
		if req.IsGstBill && p.GstRate != nil {
			gstAmount = lineSubtotal.Mul(*p.GstRate).Div(hundred).Round(2)
		}

		subtotal = subtotal.Add(lineSubtotal)
		totalGst = totalGst.Add(gstAmount)
		resolved = append(resolved, resolvedLine{
			productID: pid,
			name:      p.Name,
			price:     price,
			quantity:  item.Quantity,
			subtotal:  lineSubtotal,
			gstAmount: gstAmount,
		})
	}

	total := subtotal.Add(totalGst)

	// 2. Bill number — supplied numbers must not collide
	if req.BillNumber != nil {
		if _, err := s.repo.FindByNumber(ctx, *req.BillNumber); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBillNumber, *req.BillNumber)
		}
	}

	// 3. ACID transaction: bill + items + stock decrements + ledger entries
	var bill model.Bill
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		billNumber := ""
		if req.BillNumber != nil {
			billNumber = *req.BillNumber
		} else {
			seq, err := s.repo.NextBillSeq(ctx, tx)
			if err != nil {
				return err
			}
			billNumber = fmt.Sprintf("INV-%06d", seq)
		}

		bill = model.Bill{
			BillNumber:    billNumber,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Subtotal:      subtotal,
			TotalGst:      totalGst,
			Total:         total,
			PaymentType:   req.PaymentType,
			IsGstBill:     req.IsGstBill,
			GstNumber:     req.GstNumber,
		}
		for i, r := range resolved {
			bill.Items = append(bill.Items, model.BillItem{
				ProductID:   r.productID,
				ProductName: r.name,
				Quantity:    r.quantity,
				Price:       r.price,
				Subtotal:    r.subtotal,
				GstAmount:   r.gstAmount,
				Position:    i,
			})
		}

		if err := s.repo.Create(ctx, tx, &bill); err != nil {
			return err
		}

		for _, r := range resolved {
			// Fetch current stock INSIDE the tx for the ledger entry
			before, err := s.productRepo.FindByIDTx(tx, r.productID)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrProductNotFound, r.productID)
			}

			// Guarded decrement: zero rows updated means a concurrent sale
			// consumed the stock between pre-flight and commit.
			rows, err := s.productRepo.DecrementStockGuardedTx(tx, r.productID, r.quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, r.name)
			}

			billRef := bill.ID
			mov := &model.StockMovement{
				ProductID:   r.productID,
				Kind:        "sale",
				Delta:       -r.quantity,
				StockBefore: before.Stock,
				StockAfter:  before.Stock - r.quantity,
				Reason:      fmt.Sprintf("bill %s", bill.BillNumber),
				ReferenceID: &billRef,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// 4. Async invoice PDF (and optional email) — best-effort, fire & forget
	if s.dispatcher != nil {
		payload := worker.InvoiceJobPayload{BillID: bill.ID.String()}
		if req.CustomerEmail != nil && *req.CustomerEmail != "" {
			payload.CustomerEmail = req.CustomerEmail
		}
		_ = s.dispatcher.EnqueueInvoice(ctx, payload)
	}

	return billToResponse(&bill), nil
}

func (s *billingService) GetBill(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBillNotFound
	}
	return billToResponse(b), nil
}

func (s *billingService) InvoicePDF(ctx context.Context, id uuid.UUID) (string, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", ErrBillNotFound
	}

	// Reuse the worker's output when it already rendered this invoice.
	if b.PDFPath != nil {
		if _, statErr := os.Stat(*b.PDFPath); statErr == nil {
			return *b.PDFPath, nil
		}
	}

	path, err := infra.GenerateInvoicePDF(b, s.businessName, s.pdfStorage)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetPDFPath(ctx, id, path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *billingService) ListBills(ctx context.Context, filter dto.BillFilter) (*dto.BillListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	bills, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BillResponse, 0, len(bills))
	for i := range bills {
		items = append(items, *billToResponse(&bills[i]))
	}
	return &dto.BillListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func billToResponse(b *model.Bill) *dto.BillResponse {
	items := make([]dto.BillItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, dto.BillItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal,
			GstAmount:   item.GstAmount,
		})
	}
	return &dto.BillResponse{
		ID:            b.ID.String(),
		BillNumber:    b.BillNumber,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Items:         items,
		Subtotal:      b.Subtotal,
		TotalGst:      b.TotalGst,
		Total:         b.Total,
		PaymentType:   b.PaymentType,
		IsGstBill:     b.IsGstBill,
		GstNumber:     b.GstNumber,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
