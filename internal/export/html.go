package export

import (
	"html/template"
	"io"

	"github.com/saalim-km/inventory-mgmt/domain"
)

// HTML writes a printable document with the same per-sale structure as the
// PDF. It is served directly as a response body for browser printing and
// doubles as email content.
func HTML(w io.Writer, sales []domain.Sale) error {
	views := make([]saleView, len(sales))
	for i, sale := range sales {
		items := make([]itemView, len(sale.Items))
		for j, item := range sale.Items {
			items[j] = itemView{
				Name:     item.Name,
				Quantity: item.Quantity,
				Price:    amount(item.Price),
				Subtotal: amount(item.Price * float64(item.Quantity)),
			}
		}
		views[i] = saleView{
			Date:        saleDate(sale.Date),
			Customer:    sale.CustomerName,
			PaymentType: sale.PaymentType,
			Items:       items,
			Total:       amount(sale.Total()),
		}
	}
	return printTemplate.Execute(w, views)
}

type itemView struct {
	Name     string
	Quantity int64
	Price    string
	Subtotal string
}

type saleView struct {
	Date        string
	Customer    string
	PaymentType string
	Items       []itemView
	Total       string
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Sales Report</title>
<style>
  body { font-family: Arial, sans-serif; margin: 24px; }
  h1 { text-align: center; }
  .sale { margin-bottom: 24px; page-break-inside: avoid; }
  .sale-header { font-weight: bold; margin-bottom: 6px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { border: 1px solid #999; padding: 4px 8px; text-align: left; }
  td.num, th.num { text-align: right; }
  .total { font-weight: bold; text-align: right; margin-top: 6px; }
</style>
</head>
<body>
<h1>Sales Report</h1>
{{range .}}
<div class="sale">
  <div class="sale-header">{{.Date}} &mdash; {{.Customer}} ({{.PaymentType}})</div>
  <table>
    <tr><th>Item</th><th class="num">Quantity</th><th class="num">Price</th><th class="num">Subtotal</th></tr>
    {{range .Items}}
    <tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.Price}}</td><td class="num">{{.Subtotal}}</td></tr>
    {{end}}
  </table>
  <div class="total">Total: {{.Total}}</div>
</div>
{{end}}
</body>
</html>
`))
