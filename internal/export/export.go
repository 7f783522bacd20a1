// Package export renders a set of sale records as a spreadsheet, a PDF or
// a printable HTML document. All three share the same per-sale total,
// summed over the denormalized line-item snapshots.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/saalim-km/inventory-mgmt/domain"
)

// Attachment filenames offered to the browser.
const (
	ExcelFilename = "sales-report.xlsx"
	PDFFilename   = "sales-report.pdf"
)

// ExcelContentType is the standard spreadsheet MIME type.
const ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheetName = "Sales Report"

// amount formats a money value with the fixed currency prefix and
// two-decimal display.
func amount(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}

// itemSummary concatenates a sale's line items as "name (qty)" pairs.
func itemSummary(items []domain.SaleItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%s (%d)", item.Name, item.Quantity)
	}
	return strings.Join(parts, ", ")
}

// saleDate trims an RFC3339 date down to its calendar day for display.
func saleDate(date string) string {
	if len(date) >= 10 {
		return date[:10]
	}
	return date
}

// Excel writes a spreadsheet with one row per sale: date, customer,
// concatenated item list and total amount.
func Excel(w io.Writer, sales []domain.Sale) error {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Customer", "Items", "Total"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, h)
	}

	for idx, sale := range sales {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), saleDate(sale.Date))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), sale.CustomerName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), itemSummary(sale.Items))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), amount(sale.Total()))
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "C", "C", 40)
	f.SetColWidth(sheetName, "D", "D", 14)

	return f.Write(w)
}
