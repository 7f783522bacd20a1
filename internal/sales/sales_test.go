package sales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/saalim-km/inventory-mgmt/domain"
	"github.com/saalim-km/inventory-mgmt/internal/database"
	"github.com/saalim-km/inventory-mgmt/internal/migrations"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db := database.Connect(":memory:")
	migrations.Run(db)
	t.Cleanup(func() { db.Close() })
	return db
}

func insertItem(t *testing.T, db *sqlx.DB, userID, name string, quantity int64, price float64) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(`INSERT INTO items (id, user_id, name, description, quantity, price) VALUES (?, ?, ?, '', ?, ?)`,
		id, userID, name, quantity, price)
	if err != nil {
		t.Fatalf("insert item %s: %v", name, err)
	}
	return id
}

func itemQuantity(t *testing.T, db *sqlx.DB, id string) int64 {
	t.Helper()
	var qty int64
	if err := db.Get(&qty, `SELECT quantity FROM items WHERE id = ?`, id); err != nil {
		t.Fatalf("fetch quantity: %v", err)
	}
	return qty
}

func TestCreateDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	penID := insertItem(t, db, "u1", "Pen", 100, 10)
	bookID := insertItem(t, db, "u1", "Book", 40, 120)

	sale := domain.Sale{
		UserID:       "u1",
		CustomerName: "Ravi",
		Date:         "2026-01-05T10:00:00Z",
		PaymentType:  domain.PaymentCash,
		Items: []domain.SaleItem{
			{ItemID: penID, Name: "Pen", Quantity: 5, Price: 10},
			{ItemID: bookID, Name: "Book", Quantity: 2, Price: 120},
		},
	}
	if err := Create(context.Background(), db, &sale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sale.ID == "" {
		t.Error("Create() did not assign a sale id")
	}

	if got := itemQuantity(t, db, penID); got != 95 {
		t.Errorf("Pen quantity = %d, want 95", got)
	}
	if got := itemQuantity(t, db, bookID); got != 38 {
		t.Errorf("Book quantity = %d, want 38", got)
	}

	stored, total, err := List(db, "u1", 1, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(stored) != 1 {
		t.Fatalf("List() total = %d, len = %d, want 1, 1", total, len(stored))
	}
	if len(stored[0].Items) != 2 {
		t.Errorf("stored sale has %d items, want 2", len(stored[0].Items))
	}
	if got := stored[0].Total(); got != 290 {
		t.Errorf("sale total = %v, want 290", got)
	}
}

func TestCreateUnknownItemIsNoop(t *testing.T) {
	db := newTestDB(t)

	sale := domain.Sale{
		UserID:       "u1",
		CustomerName: "Ravi",
		Date:         "2026-01-05T10:00:00Z",
		PaymentType:  domain.PaymentUPI,
		Items:        []domain.SaleItem{{ItemID: "missing", Name: "Ghost", Quantity: 3, Price: 1}},
	}
	// An update matching zero rows is not an error; the sale is still recorded.
	if err := Create(context.Background(), db, &sale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, total, err := List(db, "u1", 1, 10); err != nil || total != 1 {
		t.Errorf("List() total = %d, err = %v, want 1, nil", total, err)
	}
}

func TestCreateNoFloorAtZero(t *testing.T) {
	db := newTestDB(t)
	penID := insertItem(t, db, "u1", "Pen", 2, 10)

	sale := domain.Sale{
		UserID:       "u1",
		CustomerName: "Ravi",
		Date:         "2026-01-05T10:00:00Z",
		PaymentType:  domain.PaymentCard,
		Items:        []domain.SaleItem{{ItemID: penID, Name: "Pen", Quantity: 5, Price: 10}},
	}
	if err := Create(context.Background(), db, &sale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := itemQuantity(t, db, penID); got != -3 {
		t.Errorf("Pen quantity = %d, want -3 (no floor at zero)", got)
	}
}

func TestDeleteSale(t *testing.T) {
	db := newTestDB(t)
	penID := insertItem(t, db, "u1", "Pen", 10, 10)

	sale := domain.Sale{
		UserID:       "u1",
		CustomerName: "Ravi",
		Date:         "2026-01-05T10:00:00Z",
		PaymentType:  domain.PaymentCash,
		Items:        []domain.SaleItem{{ItemID: penID, Name: "Pen", Quantity: 1, Price: 10}},
	}
	if err := Create(context.Background(), db, &sale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := Delete(db, "u1", sale.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := Delete(db, "u1", sale.ID); err != ErrNotFound {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
	// Deleting a sale does not restore stock.
	if got := itemQuantity(t, db, penID); got != 9 {
		t.Errorf("Pen quantity = %d, want 9", got)
	}

	// Line items go with the sale; no orphaned rows remain.
	var orphans int
	if err := db.Get(&orphans, `SELECT COUNT(*) FROM sale_items WHERE sale_id = ?`, sale.ID); err != nil {
		t.Fatalf("count sale_items: %v", err)
	}
	if orphans != 0 {
		t.Errorf("sale_items rows after delete = %d, want 0", orphans)
	}
}

func TestListEmpty(t *testing.T) {
	db := newTestDB(t)

	result, total, err := List(db, "u1", 1, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 0 {
		t.Errorf("List() total = %d, want 0", total)
	}
	// An empty result is an empty slice, not nil, so it serializes as [].
	if result == nil {
		t.Error("List() with no sales returned nil, want empty slice")
	}

	all, err := ListAll(db, "u1")
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if all == nil {
		t.Error("ListAll() with no sales returned nil, want empty slice")
	}
}

func TestByDateRange(t *testing.T) {
	db := newTestDB(t)
	penID := insertItem(t, db, "u1", "Pen", 100, 10)

	dates := []string{"2026-01-05T10:00:00Z", "2026-02-05T10:00:00Z", "2026-03-05T10:00:00Z"}
	for _, date := range dates {
		sale := domain.Sale{
			UserID:       "u1",
			CustomerName: "Ravi",
			Date:         date,
			PaymentType:  domain.PaymentCash,
			Items:        []domain.SaleItem{{ItemID: penID, Name: "Pen", Quantity: 1, Price: 10}},
		}
		if err := Create(context.Background(), db, &sale); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, total, err := ByDateRange(db, "u1", "2026-01-01T00:00:00Z", "2026-02-28T23:59:59Z", 1, 10)
	if err != nil {
		t.Fatalf("ByDateRange() error = %v", err)
	}
	if total != 2 || len(result) != 2 {
		t.Errorf("ByDateRange() total = %d, len = %d, want 2, 2", total, len(result))
	}
}

func TestForExportCustomerFilter(t *testing.T) {
	db := newTestDB(t)
	penID := insertItem(t, db, "u1", "Pen", 100, 10)

	for _, customer := range []string{"Ravi", "Anita", "Ravi"} {
		sale := domain.Sale{
			UserID:       "u1",
			CustomerName: customer,
			Date:         "2026-01-05T10:00:00Z",
			PaymentType:  domain.PaymentCash,
			Items:        []domain.SaleItem{{ItemID: penID, Name: "Pen", Quantity: 1, Price: 10}},
		}
		if err := Create(context.Background(), db, &sale); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, err := ForExport(db, "u1", "2026-01-01T00:00:00Z", "2026-12-31T23:59:59Z", "Ravi")
	if err != nil {
		t.Fatalf("ForExport() error = %v", err)
	}
	if len(result) != 2 {
		t.Errorf("ForExport(customer=Ravi) len = %d, want 2", len(result))
	}

	all, err := ForExport(db, "u1", "2026-01-01T00:00:00Z", "2026-12-31T23:59:59Z", "")
	if err != nil {
		t.Fatalf("ForExport() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ForExport(no customer) len = %d, want 3", len(all))
	}
}
