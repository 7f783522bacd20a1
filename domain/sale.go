package domain

// Payment types accepted on a sale.
const (
	PaymentCash         = "cash"
	PaymentUPI          = "upi"
	PaymentCard         = "card"
	PaymentBankTransfer = "bank_transfer"
	PaymentCOD          = "cod"
)

// ValidPaymentType reports whether t is one of the accepted payment types.
func ValidPaymentType(t string) bool {
	switch t {
	case PaymentCash, PaymentUPI, PaymentCard, PaymentBankTransfer, PaymentCOD:
		return true
	}
	return false
}

// SaleItem is a denormalized snapshot of an inventory item at the time of
// sale. ItemID points at the originating inventory record and is only used
// to decrement stock when the sale is created; renaming or deleting the
// item afterwards does not touch the snapshot.
type SaleItem struct {
	SaleID   string  `db:"sale_id" json:"-"`
	ItemID   string  `db:"item_id" json:"itemId"`
	Name     string  `db:"name" json:"name"`
	Quantity int64   `db:"quantity" json:"quantity"`
	Price    float64 `db:"price" json:"price"`
}

type Sale struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"-"`
	CustomerName string     `db:"customer_name" json:"customerName"`
	Date         string     `db:"date" json:"date"`
	PaymentType  string     `db:"payment_type" json:"paymentType"`
	Items        []SaleItem `json:"items"`
	CreatedAt    string     `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt    string     `db:"updated_at" json:"updatedAt,omitempty"`
}

// Total is the sale amount, summed over the line-item snapshots.
func (s Sale) Total() float64 {
	var total float64
	for _, item := range s.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
