package export

import (
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/saalim-km/inventory-mgmt/domain"
)

func intString(v int64) string {
	return strconv.FormatInt(v, 10)
}

// PDF writes a document with one page-flowed block per sale: a header
// line, a line-item table and a bold total.
func PDF(w io.Writer, sales []domain.Sale) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Sales Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, sale := range sales {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7,
			saleDate(sale.Date)+"  -  "+sale.CustomerName+"  ("+sale.PaymentType+")",
			"", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(90, 6, "Item", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, "Quantity", "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, "Price", "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, "Subtotal", "1", 1, "R", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, item := range sale.Items {
			pdf.CellFormat(90, 6, item.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, intString(item.Quantity), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, amount(item.Price), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, amount(item.Price*float64(item.Quantity)), "1", 1, "R", false, 0, "")
		}

		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, "Total: "+amount(sale.Total()), "", 1, "R", false, 0, "")
		pdf.Ln(4)
	}

	return pdf.Output(w)
}
