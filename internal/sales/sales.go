// Package sales records sales against inventory and aggregates them for
// reporting. A sale stores a denormalized snapshot of its line items;
// the originating item ids are only used to decrement stock at creation
// time.
package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/saalim-km/inventory-mgmt/domain"
)

// ErrNotFound is returned when a sale id does not exist for the user.
var ErrNotFound = errors.New("sale not found")

// Create decrements stock for every line item and then persists the sale.
//
// The decrements are issued concurrently and are independent writes: there
// is no floor at zero, no check that the item id exists (an update matching
// zero rows is a no-op), and no rollback of decrements already applied if
// the sale insert fails. Quantities and prices are trusted as given by the
// caller; the sale row and its line items are written as one insert unit.
func Create(ctx context.Context, db *sqlx.DB, sale *domain.Sale) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, item := range sale.Items {
		item := item
		g.Go(func() error {
			_, err := db.ExecContext(gctx,
				`UPDATE items SET quantity = quantity - ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				item.Quantity, item.ItemID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sale.ID = uuid.NewString()

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO sales (id, user_id, customer_name, date, payment_type) VALUES (?, ?, ?, ?, ?)`,
		sale.ID, sale.UserID, sale.CustomerName, sale.Date, sale.PaymentType); err != nil {
		return err
	}
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
		if _, err := tx.Exec(
			`INSERT INTO sale_items (sale_id, item_id, name, quantity, price) VALUES (?, ?, ?, ?, ?)`,
			sale.ID, sale.Items[i].ItemID, sale.Items[i].Name, sale.Items[i].Quantity, sale.Items[i].Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type query struct {
	where string
	args  []any
	page  int
	limit int
}

// run executes the query, attaches line items and returns the unpaged
// total count alongside the page.
func (q query) run(db *sqlx.DB) ([]domain.Sale, int64, error) {
	countQuery := `SELECT COUNT(*) FROM sales ` + q.where
	listQuery := `SELECT id, user_id, customer_name, date, payment_type, created_at, updated_at FROM sales ` +
		q.where + ` ORDER BY created_at DESC`

	var total int64
	if err := db.Get(&total, countQuery, q.args...); err != nil {
		return nil, 0, err
	}

	args := q.args
	if q.limit > 0 {
		listQuery += ` LIMIT ? OFFSET ?`
		args = append(append([]any{}, q.args...), q.limit, (q.page-1)*q.limit)
	}

	sales := []domain.Sale{}
	if err := db.Select(&sales, listQuery, args...); err != nil {
		return nil, 0, err
	}
	if err := attachItems(db, sales); err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// List returns one page of the user's sales, newest first.
func List(db *sqlx.DB, userID string, page, limit int) ([]domain.Sale, int64, error) {
	return query{where: `WHERE user_id = ?`, args: []any{userID}, page: page, limit: limit}.run(db)
}

// ListAll returns every sale for the user, newest first.
func ListAll(db *sqlx.DB, userID string) ([]domain.Sale, error) {
	sales, _, err := query{where: `WHERE user_id = ?`, args: []any{userID}}.run(db)
	return sales, err
}

// ByDateRange returns one page of the user's sales with date in [from, to].
// Bounds must be UTC RFC3339, the form sale dates are stored in; range
// predicates compare the text column lexically.
func ByDateRange(db *sqlx.DB, userID, from, to string, page, limit int) ([]domain.Sale, int64, error) {
	return query{
		where: `WHERE user_id = ? AND date >= ? AND date <= ?`,
		args:  []any{userID, from, to},
		page:  page,
		limit: limit,
	}.run(db)
}

// ForExport returns every sale with date in [from, to], optionally filtered
// by exact customer name, unpaginated.
func ForExport(db *sqlx.DB, userID, from, to, customer string) ([]domain.Sale, error) {
	q := query{where: `WHERE user_id = ? AND date >= ? AND date <= ?`, args: []any{userID, from, to}}
	if customer != "" {
		q.where += ` AND customer_name = ?`
		q.args = append(q.args, customer)
	}
	sales, _, err := q.run(db)
	return sales, err
}

// Delete removes a sale and its line items in one transaction. Stock is
// not restored.
func Delete(db *sqlx.DB, userID, id string) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM sales WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec(`DELETE FROM sale_items WHERE sale_id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func attachItems(db *sqlx.DB, sales []domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	index := make(map[string]int, len(sales))
	for i := range sales {
		ids[i] = sales[i].ID
		index[sales[i].ID] = i
		sales[i].Items = []domain.SaleItem{}
	}

	itemsQuery, args, err := sqlx.In(
		`SELECT sale_id, item_id, name, quantity, price FROM sale_items WHERE sale_id IN (?)`, ids)
	if err != nil {
		return err
	}
	itemsQuery = db.Rebind(itemsQuery)

	var rows []domain.SaleItem
	if err := db.Select(&rows, itemsQuery, args...); err != nil {
		return err
	}
	for _, row := range rows {
		i := index[row.SaleID]
		sales[i].Items = append(sales[i].Items, row)
	}
	return nil
}
