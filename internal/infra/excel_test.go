package infra

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"Name", "Category", "Price", "Stock", "ReorderPoint", "GstRate"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseCatalog_ValidRows(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Basmati Rice 5kg", "Grocery", "620.00", 40, 10, "5"},
		{"Notebook A4", "Stationery", "75.00", 100, 20, ""},
	})

	products, rowErrs, err := ParseCatalog(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, products, 2)

	assert.Equal(t, "Basmati Rice 5kg", products[0].Name)
	assert.Equal(t, 40, products[0].Stock)
	require.NotNil(t, products[0].GstRate)
	assert.True(t, products[0].GstRate.Equal(d("5")))

	assert.Nil(t, products[1].GstRate, "blank gst cell means no override")
}

func TestParseCatalog_RowErrorsDoNotFailUpload(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Good Item", "Grocery", "10.00", 5, 1, ""},
		{"", "Grocery", "10.00", 5, 1, ""},               // empty name
		{"Bad Price", "Grocery", "abc", 5, 1, ""},        // unparseable price
		{"Negative Stock", "Grocery", "10.00", -3, 1, ""}, // negative stock
		{"Bad Rate", "Grocery", "10.00", 5, 1, "150"},    // gst > 100
	})

	products, rowErrs, err := ParseCatalog(buf)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Good Item", products[0].Name)

	require.Len(t, rowErrs, 4)
	// Rows are 1-indexed with the header at row 1
	assert.Equal(t, 3, rowErrs[0].Row)
	assert.Equal(t, 6, rowErrs[3].Row)
}

func TestParseCatalog_SkipsBlankRows(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Item One", "Grocery", "10.00", 5, 1, ""},
		{"", "", "", "", "", ""},
		{"Item Two", "Grocery", "20.00", 5, 1, ""},
	})

	products, rowErrs, err := ParseCatalog(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	assert.Len(t, products, 2)
}

func TestParseCatalog_NotAWorkbook(t *testing.T) {
	_, _, err := ParseCatalog(bytes.NewBufferString("definitely not xlsx"))
	require.Error(t, err)
}

func TestParseCatalog_HeaderOnly(t *testing.T) {
	buf := buildWorkbook(t, nil)
	_, _, err := ParseCatalog(buf)
	require.Error(t, err)
}
