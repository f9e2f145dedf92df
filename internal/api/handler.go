package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/internal/stock"
)

type ctxKey string

const (
	ctxUserID ctxKey = "userID"
	ctxRole   ctxKey = "role"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db     *sqlx.DB
	secret string
}

// New constructs a Handler.
func New(db *sqlx.DB, secret string) *Handler {
	return &Handler{db: db, secret: secret}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // Change "*" to a list of allowed domains (e.g., ["http://localhost:3000"])
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Group(func(protected chi.Router) {
			protected.Use(h.authMiddleware)
			protected.Post("/reset-password", h.resetPassword)
		})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Get("/users", h.listUsers)

		pr.Route("/items", func(r chi.Router) {
			r.Post("/", h.createItem)
			r.Get("/", h.listItems)
			r.Get("/{id}", h.getItem)
			r.Put("/{id}", h.updateItem)
			r.Delete("/{id}", h.deleteItem)
			r.Get("/{id}/batches", h.listBatches)
		})

		pr.Route("/customers", func(r chi.Router) {
			r.Post("/", h.createCustomer)
			r.Get("/", h.listCustomers)
			r.Put("/{id}", h.updateCustomer)
			r.Delete("/{id}", h.deleteCustomer)
		})

		pr.Route("/suppliers", func(r chi.Router) {
			r.Post("/", h.createSupplier)
			r.Get("/", h.listSuppliers)
			r.Put("/{id}", h.updateSupplier)
			r.Delete("/{id}", h.deleteSupplier)
		})

		pr.Route("/purchases", func(r chi.Router) {
			r.Post("/", h.createPurchase)
			r.Get("/", h.listPurchases)
			r.Get("/{id}", h.getPurchase)
		})

		pr.Route("/sales", func(r chi.Router) {
			r.Post("/", h.createSale)
			r.Get("/", h.listSales)
			r.Get("/{id}", h.getSale)
		})

		pr.Route("/reports", func(r chi.Router) {
			r.Get("/sales/daily", h.dailySales)
			r.Get("/sales/monthly", h.monthlySales)
			r.Get("/stock/low", h.lowStockReport)
			r.Get("/stock/expiry", h.expiryReport)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Authentication helpers

type authClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) generateToken(userID int64, role string) (string, error) {
	claims := authClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims, ok := token.Claims.(*authClaims)
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxRole, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireRole(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	role := r.Context().Value(ctxRole)
	if role == nil {
		respondError(w, http.StatusUnauthorized, "missing role")
		return false
	}
	current := role.(string)
	for _, allowedRole := range allowed {
		if current == allowedRole {
			return true
		}
	}
	respondError(w, http.StatusForbidden, "insufficient permissions")
	return false
}

func userIDFromContext(r *http.Request) int64 {
	if val := r.Context().Value(ctxUserID); val != nil {
		if id, ok := val.(int64); ok {
			return id
		}
	}
	return 0
}

// Auth Handlers

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		respondError(w, http.StatusBadRequest, "username, email, password and role are required")
		return
	}
	if req.Role != domain.RoleAdmin && req.Role != domain.RoleCashier {
		respondError(w, http.StatusBadRequest, "role must be admin or cashier")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}

	var userID int64
	err = h.db.QueryRowx(`INSERT INTO users (username, email, password, role) VALUES ($1, $2, $3, $4) RETURNING id`,
		req.Username, strings.ToLower(req.Email), hashed, req.Role).Scan(&userID)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "duplicate key") {
			respondError(w, http.StatusConflict, "email already exists")
		} else {
			respondError(w, http.StatusInternalServerError, "db error: "+err.Error())
		}
		return
	}

	token, err := h.generateToken(userID, req.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: domain.User{ID: int(userID), Username: req.Username, Email: strings.ToLower(req.Email), Role: req.Role}})
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
	err := h.db.Get(&user, `SELECT id, username, email, password, role FROM users WHERE email = $1`, strings.ToLower(req.Email))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.generateToken(int64(user.ID), user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	user.Password = ""
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "new_password is required")
		return
	}
	uid := userIDFromContext(r)
	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}
	if _, err := h.db.Exec(`UPDATE users SET password = $1 WHERE id = $2`, hashed, uid); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update password")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	var users []domain.User
	if err := h.db.Select(&users, `SELECT id, username, email, role, created_at FROM users ORDER BY username`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStockError maps core accounting errors onto HTTP statuses: overdraw
// is a conflict, bad input a bad request.
func respondStockError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, stock.ErrInsufficientStock):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, stock.ErrInvalidUnitConfig), errors.Is(err, stock.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}
