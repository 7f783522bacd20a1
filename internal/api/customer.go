package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saalim-km/inventory-mgmt/domain"
)

type customerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Mobile  string `json:"mobile"`
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Mobile = strings.TrimSpace(req.Mobile)
	if req.Name == "" || req.Mobile == "" {
		respondError(w, http.StatusBadRequest, "name and mobile are required")
		return
	}

	uid := userID(r)
	var exists int
	if err := h.db.Get(&exists, `SELECT COUNT(*) FROM customers WHERE user_id = ? AND mobile = ?`,
		uid, req.Mobile); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create customer")
		return
	}
	if exists > 0 {
		respondError(w, http.StatusConflict, "mobile already connected to another customer")
		return
	}

	customer := domain.Customer{
		ID:      uuid.NewString(),
		UserID:  uid,
		Name:    req.Name,
		Address: strings.TrimSpace(req.Address),
		Mobile:  req.Mobile,
	}
	if _, err := h.db.Exec(`INSERT INTO customers (id, user_id, name, address, mobile) VALUES (?, ?, ?, ?, ?)`,
		customer.ID, customer.UserID, customer.Name, customer.Address, customer.Mobile); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create customer")
		return
	}
	respondData(w, http.StatusCreated, "customer created", customer)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	page, limit := pagination(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	where := `WHERE user_id = ?`
	args := []any{uid}
	if search != "" {
		where += ` AND (name LIKE ? OR mobile LIKE ?)`
		like := "%" + search + "%"
		args = append(args, like, like)
	}

	var total int64
	if err := h.db.Get(&total, `SELECT COUNT(*) FROM customers `+where, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch customers")
		return
	}

	listArgs := append(append([]any{}, args...), limit, (page-1)*limit)
	var customers []domain.Customer
	if err := h.db.Select(&customers,
		`SELECT id, user_id, name, address, mobile, created_at, updated_at FROM customers `+
			where+` ORDER BY created_at DESC LIMIT ? OFFSET ?`, listArgs...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch customers")
		return
	}

	respondData(w, http.StatusOK, "customers retrieved", pagedResult{Data: customers, Total: total})
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	id := chi.URLParam(r, "id")

	var req struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Mobile  *string `json:"mobile"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var customer domain.Customer
	if err := h.db.Get(&customer,
		`SELECT id, user_id, name, address, mobile, created_at, updated_at FROM customers WHERE id = ? AND user_id = ?`,
		id, uid); err != nil {
		respondError(w, http.StatusNotFound, "customer not found")
		return
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}
	if req.Mobile != nil {
		customer.Mobile = strings.TrimSpace(*req.Mobile)
	}

	if _, err := h.db.Exec(
		`UPDATE customers SET name = ?, address = ?, mobile = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		customer.Name, customer.Address, customer.Mobile, id, uid); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update customer")
		return
	}
	respondData(w, http.StatusOK, "customer updated", customer)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	id := chi.URLParam(r, "id")

	res, err := h.db.Exec(`DELETE FROM customers WHERE id = ? AND user_id = ?`, id, uid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete customer")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "customer not found")
		return
	}
	respondData(w, http.StatusOK, "customer deleted", nil)
}
