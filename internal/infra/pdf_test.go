package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloudledger/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"7", "7"},
		{"100", "100"},
		{"999", "999"},
		{"1000", "1,000"},
		{"12345", "12,345"},
		{"123456", "1,23,456"},
		{"1234567", "12,34,567"},
		{"12345678", "1,23,45,678"},
		{"1234.50", "1,234.50"},
		{"1234.00", "1,234"},
		{"-1234567.89", "-12,34,567.89"},
		{"0.05", "0.05"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatINR(d(tc.in)), "FormatINR(%s)", tc.in)
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	dir := t.TempDir()
	gstin := "29ABCDE1234F1Z5"

	bill := &model.Bill{
		BillNumber:    "INV-000042",
		CustomerName:  "Priya Sharma",
		CustomerPhone: "9876543210",
		Subtotal:      d("198.00"),
		TotalGst:      d("35.64"),
		Total:         d("233.64"),
		PaymentType:   "online",
		IsGstBill:     true,
		GstNumber:     &gstin,
		CreatedAt:     time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
		Items: []model.BillItem{
			{ProductName: "Detergent Powder 1kg", Quantity: 2, Price: d("99.00"), Subtotal: d("198.00"), GstAmount: d("35.64")},
		},
	}

	path, err := GenerateInvoicePDF(bill, "CloudLedger", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "INV-000042.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500), "PDF should have content")

	// %PDF magic bytes
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	head := make([]byte, 4)
	_, err = f.Read(head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(head))
}

func TestGenerateInvoicePDF_CreatesStorageDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "invoices")

	bill := &model.Bill{
		BillNumber:   "INV-000001",
		CustomerName: "Walk-in",
		Subtotal:     d("50.00"),
		Total:        d("50.00"),
		PaymentType:  "cash",
		CreatedAt:    time.Now(),
		Items: []model.BillItem{
			{ProductName: "Ballpoint Pen (10 pack)", Quantity: 1, Price: d("50.00"), Subtotal: d("50.00")},
		},
	}

	path, err := GenerateInvoicePDF(bill, "CloudLedger", dir)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)
}
