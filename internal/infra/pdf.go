package infra

// pdf.go — invoice PDF generation using go-pdf/fpdf.
// A4 layout with:
//   - Business name header and "Invoice" subtitle
//   - Bill metadata (number, customer, phone, date, payment type)
//   - Item table (Item, Qty, Price, Total)
//   - GST line when applicable and a highlighted total row
//
// The output file is saved to storagePath/{billNumber}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cloudledger/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// FormatINR renders an amount with Indian digit grouping: the last three
// digits form one group, every group before that has two (12,34,567).
// Paise are shown only when non-zero.
func FormatINR(amount decimal.Decimal) string {
	amount = amount.Round(2)
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	intPart := amount.Truncate(0)
	frac := amount.Sub(intPart)

	digits := intPart.String()
	var grouped string
	if len(digits) <= 3 {
		grouped = digits
	} else {
		head := digits[:len(digits)-3]
		tail := digits[len(digits)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		parts = append([]string{head}, parts...)
		grouped = strings.Join(parts, ",") + "," + tail
	}

	if !frac.IsZero() {
		fixed := amount.StringFixed(2)
		grouped += fixed[strings.IndexByte(fixed, '.'):]
	}
	if neg {
		return "-" + grouped
	}
	return grouped
}

// rupee prefixes an amount for the PDF. The fpdf core fonts are cp1252,
// which has no rupee sign, so "Rs." stands in for ₹ on the printed invoice.
func rupee(amount decimal.Decimal) string {
	return "Rs. " + FormatINR(amount)
}

// GenerateInvoicePDF renders a finalized Bill to {billNumber}.pdf inside
// storagePath (created if needed). Returns the absolute path of the file.
func GenerateInvoicePDF(bill *model.Bill, businessName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("%s.pdf", bill.BillNumber)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, businessName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Invoice", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Bill metadata ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Bill No: %s", bill.BillNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Customer: %s", bill.CustomerName), "", 1, "L", false, 0, "")
	if bill.CustomerPhone != "" {
		pdf.CellFormat(0, 7, fmt.Sprintf("Phone: %s", bill.CustomerPhone), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 7, fmt.Sprintf("Date: %s", bill.CreatedAt.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Payment Type: %s", bill.PaymentType), "", 1, "L", false, 0, "")
	if bill.IsGstBill && bill.GstNumber != nil {
		pdf.CellFormat(0, 7, fmt.Sprintf("GSTIN: %s", *bill.GstNumber), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// ── Item table ───────────────────────────────────────────────────────────
	const (
		colItem  = 80.0
		colQty   = 25.0
		colPrice = 30.0
		colTotal = 35.0
	)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(235, 94, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(colItem, 9, "Item", "", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, 9, "Qty", "", 0, "C", true, 0, "")
	pdf.CellFormat(colPrice, 9, "Price", "", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, 9, "Total", "", 1, "R", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range bill.Items {
		name := item.ProductName
		if len(name) > 42 {
			name = name[:41] + "…"
		}
		pdf.CellFormat(colItem, 8, name, "B", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 8, fmt.Sprintf("%d", item.Quantity), "B", 0, "C", false, 0, "")
		pdf.CellFormat(colPrice, 8, rupee(item.Price), "B", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 8, rupee(item.Subtotal), "B", 1, "R", false, 0, "")
	}

	pdf.Ln(4)

	// ── Totals ───────────────────────────────────────────────────────────────
	if bill.IsGstBill && !bill.TotalGst.IsZero() {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(colItem+colQty+colPrice, 8, "GST:", "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 8, rupee(bill.TotalGst), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(colItem+colQty+colPrice, 10, "Total:", "", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, 10, rupee(bill.Total), "", 1, "R", true, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
