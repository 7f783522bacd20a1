package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/saalim-km/inventory-mgmt/domain"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	var exists int
	if err := h.db.Get(&exists, `SELECT COUNT(*) FROM users WHERE email = ?`, req.Email); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create account")
		return
	}
	if exists > 0 {
		respondError(w, http.StatusConflict, "user already exists with this email")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create account")
		return
	}

	if _, err := h.db.Exec(`INSERT INTO users (id, name, email, password) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), req.Name, req.Email, string(hashed)); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create account")
		return
	}
	respondData(w, http.StatusCreated, "account created", nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var user domain.User
	err := h.db.Get(&user, `SELECT id, name, email, password, created_at, updated_at FROM users WHERE email = ?`,
		strings.TrimSpace(req.Email))
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to log in")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	accessToken, err := signToken(h.cfg.AccessSecret, user.ID, user.Email, h.cfg.AccessTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to issue token")
		return
	}
	refreshToken, err := signToken(h.cfg.RefreshSecret, user.ID, user.Email, h.cfg.RefreshTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to issue token")
		return
	}

	setTokenCookie(w, accessCookie, accessToken, h.cfg.AccessTTL)
	setTokenCookie(w, refreshCookie, refreshToken, h.cfg.RefreshTTL)

	user.Password = ""
	respondData(w, http.StatusOK, "login successful", map[string]interface{}{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// refreshToken verifies the refresh token (cookie or request body) and
// issues a fresh access token.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	var tokenString string
	if cookie, err := r.Cookie(refreshCookie); err == nil {
		tokenString = cookie.Value
	}
	if tokenString == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := decodeJSON(r, &body); err == nil {
			tokenString = body.RefreshToken
		}
	}
	if tokenString == "" {
		respondError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	claims, err := parseToken(h.cfg.RefreshSecret, tokenString)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	accessToken, err := signToken(h.cfg.AccessSecret, claims.UserID, claims.Email, h.cfg.AccessTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to issue token")
		return
	}
	setTokenCookie(w, accessCookie, accessToken, h.cfg.AccessTTL)
	respondData(w, http.StatusOK, "token refreshed", map[string]string{"accessToken": accessToken})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	setTokenCookie(w, accessCookie, "", -time.Hour)
	setTokenCookie(w, refreshCookie, "", -time.Hour)
	respondData(w, http.StatusOK, "logged out", nil)
}

func setTokenCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
