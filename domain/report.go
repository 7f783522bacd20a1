package domain

// ItemReportRow is one line of the item sales/stock report. TotalSales is
// computed against the item's current price, not the price at sale time.
type ItemReportRow struct {
	Name       string  `json:"name"`
	Sold       int64   `json:"sold"`
	Stock      int64   `json:"stock"`
	Price      float64 `json:"price"`
	TotalSales float64 `json:"totalSales"`
}

// Ledger entry kinds. Only Sale entries are produced today; the other
// kinds exist for when payments and returns get their own records.
const (
	LedgerEntrySale    = "Sale"
	LedgerEntryPayment = "Payment"
	LedgerEntryReturn  = "Return"
)

// LedgerEntry is one row of a customer's transaction history.
type LedgerEntry struct {
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	PaymentType string  `json:"paymentType"`
}
