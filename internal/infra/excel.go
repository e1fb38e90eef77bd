package infra

// excel.go — xlsx catalog import using excelize.
// Expected layout: first sheet, header row, then one product per row with
// columns Name | Category | Price | Stock | ReorderPoint | GstRate.
// GstRate is optional; blank cells mean no per-product GST override.

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"cloudledger/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ParseCatalog reads an uploaded xlsx workbook and returns the rows that
// parsed cleanly plus a per-row error report for the rest. A workbook that
// cannot be opened at all returns only an error.
func ParseCatalog(r io.Reader) ([]dto.ImportedProduct, []dto.ImportRowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("excel: open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("excel: workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("excel: read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("excel: no data rows below the header")
	}

	var products []dto.ImportedProduct
	var rowErrs []dto.ImportRowError

	// Row 1 is the header; data starts at row 2.
	for i, row := range rows[1:] {
		rowNum := i + 2

		if isBlankRow(row) {
			continue
		}

		p, err := parseCatalogRow(row)
		if err != nil {
			rowErrs = append(rowErrs, dto.ImportRowError{Row: rowNum, Detail: err.Error()})
			continue
		}
		products = append(products, p)
	}

	return products, rowErrs, nil
}

func parseCatalogRow(row []string) (dto.ImportedProduct, error) {
	var p dto.ImportedProduct

	if len(row) < 5 {
		return p, fmt.Errorf("expected at least 5 columns, got %d", len(row))
	}

	p.Name = strings.TrimSpace(row[0])
	if p.Name == "" {
		return p, fmt.Errorf("name is empty")
	}
	p.Category = strings.TrimSpace(row[1])
	if p.Category == "" {
		return p, fmt.Errorf("category is empty")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(row[2]))
	if err != nil || price.IsNegative() {
		return p, fmt.Errorf("invalid price %q", row[2])
	}
	p.Price = price

	stock, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil || stock < 0 {
		return p, fmt.Errorf("invalid stock %q", row[3])
	}
	p.Stock = stock

	reorder, err := strconv.Atoi(strings.TrimSpace(row[4]))
	if err != nil || reorder < 0 {
		return p, fmt.Errorf("invalid reorder point %q", row[4])
	}
	p.ReorderPoint = reorder

	if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
		rate, err := decimal.NewFromString(strings.TrimSpace(row[5]))
		if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			return p, fmt.Errorf("invalid gst rate %q", row[5])
		}
		p.GstRate = &rate
	}

	return p, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
