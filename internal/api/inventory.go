package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saalim-km/inventory-mgmt/domain"
	"github.com/saalim-km/inventory-mgmt/internal/sales"
)

type itemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Quantity < 0 || req.Price < 0 {
		respondError(w, http.StatusBadRequest, "quantity and price must not be negative")
		return
	}

	uid := userID(r)
	var exists int
	if err := h.db.Get(&exists,
		`SELECT COUNT(*) FROM items WHERE user_id = ? AND LOWER(name) = LOWER(?)`, uid, req.Name); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create item")
		return
	}
	if exists > 0 {
		respondError(w, http.StatusConflict, "item already exists with this name")
		return
	}

	item := domain.InventoryItem{
		ID:          uuid.NewString(),
		UserID:      uid,
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Quantity:    req.Quantity,
		Price:       req.Price,
	}
	if _, err := h.db.Exec(
		`INSERT INTO items (id, user_id, name, description, quantity, price) VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.Name, item.Description, item.Quantity, item.Price); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create item")
		return
	}
	respondData(w, http.StatusCreated, "item created", item)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	page, limit := pagination(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	where := `WHERE user_id = ?`
	args := []any{uid}
	if search != "" {
		where += ` AND (name LIKE ? OR description LIKE ?)`
		like := "%" + search + "%"
		args = append(args, like, like)
	}

	var total int64
	if err := h.db.Get(&total, `SELECT COUNT(*) FROM items `+where, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch items")
		return
	}

	listArgs := append(append([]any{}, args...), limit, (page-1)*limit)
	var items []domain.InventoryItem
	if err := h.db.Select(&items,
		`SELECT id, user_id, name, description, quantity, price, created_at, updated_at FROM items `+
			where+` ORDER BY created_at DESC LIMIT ? OFFSET ?`, listArgs...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch items")
		return
	}

	respondData(w, http.StatusOK, "items retrieved", pagedResult{Data: items, Total: total})
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	id := chi.URLParam(r, "id")

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Quantity    *int64   `json:"quantity"`
		Price       *float64 `json:"price"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var item domain.InventoryItem
	if err := h.db.Get(&item,
		`SELECT id, user_id, name, description, quantity, price, created_at, updated_at FROM items WHERE id = ? AND user_id = ?`,
		id, uid); err != nil {
		respondError(w, http.StatusNotFound, "item not found")
		return
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if item.Name == "" || item.Quantity < 0 || item.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid item fields")
		return
	}

	if _, err := h.db.Exec(
		`UPDATE items SET name = ?, description = ?, quantity = ?, price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		item.Name, item.Description, item.Quantity, item.Price, id, uid); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update item")
		return
	}
	respondData(w, http.StatusOK, "item updated", item)
}

// deleteItem removes an inventory record. Sales referencing the item keep
// their snapshots; historical reports are unaffected.
func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	id := chi.URLParam(r, "id")

	res, err := h.db.Exec(`DELETE FROM items WHERE id = ? AND user_id = ?`, id, uid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete item")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "item not found")
		return
	}
	respondData(w, http.StatusOK, "item deleted", nil)
}

func (h *Handler) itemReport(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	rows, total, err := sales.ItemReport(h.db, userID(r), page, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate item report")
		return
	}
	respondData(w, http.StatusOK, "item report generated", pagedResult{Data: rows, Total: total})
}
