package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/saalim-km/inventory-mgmt/domain"
	"github.com/saalim-km/inventory-mgmt/internal/export"
	"github.com/saalim-km/inventory-mgmt/internal/sales"
)

type saleItemRequest struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
	Stock    int64   `json:"stock"`
}

type saleRequest struct {
	CustomerName string            `json:"customerName"`
	Date         string            `json:"date"`
	PaymentType  string            `json:"paymentType"`
	Items        []saleItemRequest `json:"items"`
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" || len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "customerName and at least one item are required")
		return
	}
	if !domain.ValidPaymentType(req.PaymentType) {
		respondError(w, http.StatusBadRequest, "invalid payment type")
		return
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "date must be an ISO-8601 timestamp")
		return
	}
	for _, item := range req.Items {
		if item.ItemID == "" || item.Name == "" || item.Quantity < 0 {
			respondError(w, http.StatusBadRequest, "itemId, name and a non-negative quantity are required for each item")
			return
		}
	}

	sale := domain.Sale{
		UserID:       userID(r),
		CustomerName: req.CustomerName,
		Date:         date.UTC().Format(time.RFC3339),
		PaymentType:  req.PaymentType,
		Items:        make([]domain.SaleItem, len(req.Items)),
	}
	for i, item := range req.Items {
		sale.Items[i] = domain.SaleItem{
			ItemID:   item.ItemID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	if err := sales.Create(r.Context(), h.db, &sale); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to place order")
		return
	}
	respondData(w, http.StatusCreated, "order placed", sale)
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	result, total, err := sales.List(h.db, userID(r), page, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch sales")
		return
	}
	respondData(w, http.StatusOK, "sales retrieved", pagedResult{Data: result, Total: total})
}

func (h *Handler) listAllSales(w http.ResponseWriter, r *http.Request) {
	result, err := sales.ListAll(h.db, userID(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch sales")
		return
	}
	respondData(w, http.StatusOK, "sales retrieved", result)
}

func (h *Handler) deleteSale(w http.ResponseWriter, r *http.Request) {
	err := sales.Delete(h.db, userID(r), chi.URLParam(r, "id"))
	if errors.Is(err, sales.ErrNotFound) {
		respondError(w, http.StatusNotFound, "sale not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete sale")
		return
	}
	respondData(w, http.StatusOK, "sale deleted", nil)
}

func (h *Handler) salesByDateRange(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	page, limit := pagination(r)
	result, total, err := sales.ByDateRange(h.db, userID(r), from, to, page, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate sales report")
		return
	}
	respondData(w, http.StatusOK, "sales report generated", pagedResult{Data: result, Total: total})
}

func (h *Handler) customerLedger(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	page, limit := pagination(r)
	entries, total, err := sales.CustomerLedger(h.db, userID(r), name, page, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate ledger")
		return
	}
	respondData(w, http.StatusOK, "ledger retrieved", pagedResult{Data: entries, Total: total})
}

// Export endpoints. Sales are fetched once, unpaginated, filtered by date
// range and optional exact customer name.

func (h *Handler) exportSales(w http.ResponseWriter, r *http.Request) ([]domain.Sale, bool) {
	from, to, ok := dateRange(w, r)
	if !ok {
		return nil, false
	}
	customer := strings.TrimSpace(r.URL.Query().Get("customer"))
	result, err := sales.ForExport(h.db, userID(r), from, to, customer)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch sales for export")
		return nil, false
	}
	return result, true
}

// The renderers write into a buffer first so a mid-render failure can
// still produce a clean JSON error instead of a truncated attachment.

func (h *Handler) exportExcel(w http.ResponseWriter, r *http.Request) {
	result, ok := h.exportSales(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.Excel(&buf, result); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to render spreadsheet")
		return
	}
	w.Header().Set("Content-Type", export.ExcelContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.ExcelFilename+`"`)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	result, ok := h.exportSales(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.PDF(&buf, result); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to render pdf")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.PDFFilename+`"`)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) exportPrint(w http.ResponseWriter, r *http.Request) {
	result, ok := h.exportSales(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.HTML(&buf, result); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to render report")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// dateRange validates the from/to query parameters. Both are required and
// must be ISO-8601. Dates are normalized to UTC RFC3339, the same form
// sales are stored in, so that lexical range comparisons order by instant.
func dateRange(w http.ResponseWriter, r *http.Request) (from, to string, ok bool) {
	fromTime, err := time.Parse(time.RFC3339, strings.TrimSpace(r.URL.Query().Get("from")))
	if err != nil {
		respondError(w, http.StatusBadRequest, "from must be a valid ISO-8601 date")
		return "", "", false
	}
	toTime, err := time.Parse(time.RFC3339, strings.TrimSpace(r.URL.Query().Get("to")))
	if err != nil {
		respondError(w, http.StatusBadRequest, "to must be a valid ISO-8601 date")
		return "", "", false
	}
	return fromTime.UTC().Format(time.RFC3339), toTime.UTC().Format(time.RFC3339), true
}
