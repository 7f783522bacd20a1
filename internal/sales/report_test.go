package sales

import (
	"context"
	"testing"

	"github.com/saalim-km/inventory-mgmt/domain"
)

func TestItemReport(t *testing.T) {
	db := newTestDB(t)
	penID := insertItem(t, db, "u1", "Pen", 100, 10)
	insertItem(t, db, "u1", "Notebook", 30, 55)

	sale := domain.Sale{
		UserID:       "u1",
		CustomerName: "Ravi",
		Date:         "2026-01-05T10:00:00Z",
		PaymentType:  domain.PaymentCash,
		Items:        []domain.SaleItem{{ItemID: penID, Name: "Pen", Quantity: 5, Price: 10}},
	}
	if err := Create(context.Background(), db, &sale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rows, total, err := ItemReport(db, "u1", 1, 10)
	if err != nil {
		t.Fatalf("ItemReport() error = %v", err)
	}
	if total != 2 {
		t.Errorf("ItemReport() total = %d, want 2 (full inventory count)", total)
	}

	byName := make(map[string]domain.ItemReportRow)
	for _, row := range rows {
		byName[row.Name] = row
	}

	pen := byName["Pen"]
	if pen.Sold != 5 || pen.Stock != 95 || pen.Price != 10 || pen.TotalSales != 950 {
		t.Errorf("Pen row = %+v, want sold 5, stock 95, price 10, totalSales 950", pen)
	}

	// An item never appearing in any sale reports zero sold and zero revenue.
	notebook := byName["Notebook"]
	if notebook.Sold != 0 || notebook.TotalSales != 0 {
		t.Errorf("Notebook row = %+v, want sold 0, totalSales 0", notebook)
	}
}

func TestItemReportNormalizesNames(t *testing.T) {
	db := newTestDB(t)
	penID := insertItem(t, db, "u1", "Pen", 50, 10)

	sale := domain.Sale{
		UserID:       "u1",
		CustomerName: "Ravi",
		Date:         "2026-01-05T10:00:00Z",
		PaymentType:  domain.PaymentCash,
		Items: []domain.SaleItem{
			{ItemID: penID, Name: "  PEN ", Quantity: 3, Price: 10},
			{ItemID: penID, Name: "pen", Quantity: 2, Price: 10},
		},
	}
	if err := Create(context.Background(), db, &sale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rows, _, err := ItemReport(db, "u1", 1, 10)
	if err != nil {
		t.Fatalf("ItemReport() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ItemReport() returned %d rows, want 1", len(rows))
	}
	if rows[0].Sold != 5 {
		t.Errorf("sold = %d, want 5 (trimmed, case-folded name match)", rows[0].Sold)
	}
}

func TestItemReportUsesCurrentPrice(t *testing.T) {
	db := newTestDB(t)
	penID := insertItem(t, db, "u1", "Pen", 100, 10)

	sale := domain.Sale{
		UserID:       "u1",
		CustomerName: "Ravi",
		Date:         "2026-01-05T10:00:00Z",
		PaymentType:  domain.PaymentCash,
		Items:        []domain.SaleItem{{ItemID: penID, Name: "Pen", Quantity: 5, Price: 10}},
	}
	if err := Create(context.Background(), db, &sale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Raise the price after the sale; totalSales follows the current price,
	// not the snapshot on the sale line.
	if _, err := db.Exec(`UPDATE items SET price = 12 WHERE id = ?`, penID); err != nil {
		t.Fatalf("update price: %v", err)
	}

	rows, _, err := ItemReport(db, "u1", 1, 10)
	if err != nil {
		t.Fatalf("ItemReport() error = %v", err)
	}
	if rows[0].TotalSales != 60 {
		t.Errorf("totalSales = %v, want 60 (5 sold x current price 12)", rows[0].TotalSales)
	}
}

func TestItemReportSoldSumMatchesSales(t *testing.T) {
	db := newTestDB(t)
	penID := insertItem(t, db, "u1", "Pen", 100, 10)
	bookID := insertItem(t, db, "u1", "Book", 50, 120)

	quantities := [][2]int64{{3, 1}, {2, 4}}
	var wantSold int64
	for _, q := range quantities {
		sale := domain.Sale{
			UserID:       "u1",
			CustomerName: "Ravi",
			Date:         "2026-01-05T10:00:00Z",
			PaymentType:  domain.PaymentCash,
			Items: []domain.SaleItem{
				{ItemID: penID, Name: "Pen", Quantity: q[0], Price: 10},
				{ItemID: bookID, Name: "Book", Quantity: q[1], Price: 120},
			},
		}
		if err := Create(context.Background(), db, &sale); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		wantSold += q[0] + q[1]
	}

	rows, _, err := ItemReport(db, "u1", 1, 10)
	if err != nil {
		t.Fatalf("ItemReport() error = %v", err)
	}
	var gotSold int64
	for _, row := range rows {
		gotSold += row.Sold
	}
	if gotSold != wantSold {
		t.Errorf("sum of sold = %d, want %d", gotSold, wantSold)
	}
}

func TestItemReportPagination(t *testing.T) {
	db := newTestDB(t)
	names := []string{"A", "B", "C", "D", "E"}
	for _, name := range names {
		insertItem(t, db, "u1", name, 10, 5)
	}

	rows, total, err := ItemReport(db, "u1", 2, 2)
	if err != nil {
		t.Fatalf("ItemReport() error = %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(rows) != 2 {
		t.Errorf("page 2 with limit 2 returned %d rows, want 2", len(rows))
	}

	rows, _, err = ItemReport(db, "u1", 4, 2)
	if err != nil {
		t.Fatalf("ItemReport() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("page past the end returned %d rows, want 0", len(rows))
	}
}

func TestCustomerLedger(t *testing.T) {
	db := newTestDB(t)
	penID := insertItem(t, db, "u1", "Pen", 100, 10)

	for i := 0; i < 3; i++ {
		sale := domain.Sale{
			UserID:       "u1",
			CustomerName: "Ravi",
			Date:         "2026-01-05T10:00:00Z",
			PaymentType:  domain.PaymentUPI,
			Items: []domain.SaleItem{
				{ItemID: penID, Name: "Pen", Quantity: 2, Price: 10},
			},
		}
		if err := Create(context.Background(), db, &sale); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	entries, total, err := CustomerLedger(db, "u1", "Ravi", 1, 3)
	if err != nil {
		t.Fatalf("CustomerLedger() error = %v", err)
	}
	if total != 3 || len(entries) != 3 {
		t.Fatalf("CustomerLedger() total = %d, len = %d, want 3, 3", total, len(entries))
	}
	for _, entry := range entries {
		if entry.Type != domain.LedgerEntrySale {
			t.Errorf("entry type = %q, want %q", entry.Type, domain.LedgerEntrySale)
		}
		if entry.Amount != 20 {
			t.Errorf("entry amount = %v, want 20", entry.Amount)
		}
		if entry.PaymentType != domain.PaymentUPI {
			t.Errorf("entry paymentType = %q, want %q", entry.PaymentType, domain.PaymentUPI)
		}
	}
}

func TestCustomerLedgerExactMatch(t *testing.T) {
	db := newTestDB(t)
	penID := insertItem(t, db, "u1", "Pen", 100, 10)

	sale := domain.Sale{
		UserID:       "u1",
		CustomerName: "Ravi Kumar",
		Date:         "2026-01-05T10:00:00Z",
		PaymentType:  domain.PaymentCash,
		Items:        []domain.SaleItem{{ItemID: penID, Name: "Pen", Quantity: 1, Price: 10}},
	}
	if err := Create(context.Background(), db, &sale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	entries, total, err := CustomerLedger(db, "u1", "Ravi", 1, 10)
	if err != nil {
		t.Fatalf("CustomerLedger() error = %v", err)
	}
	if total != 0 || len(entries) != 0 {
		t.Errorf("CustomerLedger(Ravi) total = %d, len = %d, want 0, 0 (exact match only)", total, len(entries))
	}
}
