package worker

// invoice_worker.go
// Processes invoice jobs from QueueInvoice: renders the invoice PDF for a
// committed bill, records its path, and hands off to the email queue when
// the customer left an address.

import (
	"context"
	"encoding/json"
	"fmt"

	"cloudledger/internal/infra"
	"cloudledger/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type InvoiceWorker struct {
	billRepo     repository.BillRepository
	dispatcher   *Dispatcher
	businessName string
	storagePath  string
}

func NewInvoiceWorker(billRepo repository.BillRepository, dispatcher *Dispatcher, businessName, storagePath string) *InvoiceWorker {
	return &InvoiceWorker{
		billRepo:     billRepo,
		dispatcher:   dispatcher,
		businessName: businessName,
		storagePath:  storagePath,
	}
}

// Process handles a single invoice job:
//  1. Parse InvoiceJobPayload
//  2. Fetch the Bill (with items) from the DB
//  3. Render {billNumber}.pdf and record the path on the bill
//  4. Enqueue an email job when a customer email was supplied
func (w *InvoiceWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload InvoiceJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("invoice_worker: invalid payload")
		return
	}

	billID, err := uuid.Parse(payload.BillID)
	if err != nil {
		log.Error().Str("bill_id", payload.BillID).Msg("invoice_worker: invalid bill_id")
		return
	}

	bill, err := w.billRepo.FindByID(ctx, billID)
	if err != nil {
		log.Error().Err(err).Str("bill_id", payload.BillID).Msg("invoice_worker: bill not found")
		return
	}

	pdfPath, err := infra.GenerateInvoicePDF(bill, w.businessName, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("bill_number", bill.BillNumber).Msg("invoice_worker: PDF generation failed")
		return
	}

	if err := w.billRepo.SetPDFPath(ctx, billID, pdfPath); err != nil {
		log.Error().Err(err).Str("bill_number", bill.BillNumber).Msg("invoice_worker: failed to record pdf path")
	}

	log.Info().Str("bill_number", bill.BillNumber).Str("pdf", pdfPath).Msg("invoice_worker: invoice generated")

	if payload.CustomerEmail != nil && *payload.CustomerEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.CustomerEmail,
			Subject: fmt.Sprintf("Invoice %s", bill.BillNumber),
			Body:    fmt.Sprintf("Dear %s,\n\nPlease find attached your invoice %s.\n\nThank you for your business.", bill.CustomerName, bill.BillNumber),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Error().Err(err).Str("bill_number", bill.BillNumber).Msg("invoice_worker: failed to enqueue email job")
		}
	}
}
