package sales

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/saalim-km/inventory-mgmt/domain"
)

// ItemReport builds the item sales/stock report for a user.
//
// It fetches every sale line item and every inventory item for the user,
// maps normalized item name (trimmed, lower-cased) to cumulative sold
// quantity, and computes sold/stock/totalSales per inventory item.
// TotalSales uses the item's current price, not the price recorded on the
// sale; revenue figures shift when prices are edited after the fact.
// Pagination slices the fully materialized result, and the returned total
// is the user's full inventory count.
func ItemReport(db *sqlx.DB, userID string, page, limit int) ([]domain.ItemReportRow, int64, error) {
	var sold []struct {
		Name     string `db:"name"`
		Quantity int64  `db:"quantity"`
	}
	if err := db.Select(&sold,
		`SELECT si.name, si.quantity FROM sale_items si
         JOIN sales s ON s.id = si.sale_id
         WHERE s.user_id = ?`, userID); err != nil {
		return nil, 0, err
	}

	soldByName := make(map[string]int64)
	for _, line := range sold {
		key := strings.ToLower(strings.TrimSpace(line.Name))
		soldByName[key] += line.Quantity
	}

	var items []domain.InventoryItem
	if err := db.Select(&items,
		`SELECT id, user_id, name, description, quantity, price, created_at, updated_at
         FROM items WHERE user_id = ? ORDER BY created_at DESC`, userID); err != nil {
		return nil, 0, err
	}

	rows := make([]domain.ItemReportRow, len(items))
	for i, item := range items {
		soldQty := soldByName[strings.ToLower(strings.TrimSpace(item.Name))]
		rows[i] = domain.ItemReportRow{
			Name:       item.Name,
			Sold:       soldQty,
			Stock:      item.Quantity,
			Price:      item.Price,
			TotalSales: float64(soldQty) * item.Price,
		}
	}

	// Slice the materialized rows for pagination; total is the full
	// inventory count.
	skip := (page - 1) * limit
	if skip > len(rows) {
		skip = len(rows)
	}
	end := skip + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[skip:end], int64(len(rows)), nil
}

// CustomerLedger returns one page of a customer's transaction history.
// The customer name is matched exactly as free text, not resolved through
// the customer records. Every entry is of type Sale; its amount is the
// sale's line-item price x quantity sum.
func CustomerLedger(db *sqlx.DB, userID, customerName string, page, limit int) ([]domain.LedgerEntry, int64, error) {
	matched, total, err := query{
		where: `WHERE user_id = ? AND customer_name = ?`,
		args:  []any{userID, customerName},
		page:  page,
		limit: limit,
	}.run(db)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]domain.LedgerEntry, len(matched))
	for i, sale := range matched {
		entries[i] = domain.LedgerEntry{
			Date:        sale.Date,
			Type:        domain.LedgerEntrySale,
			Amount:      sale.Total(),
			PaymentType: sale.PaymentType,
		}
	}
	return entries, total, nil
}
