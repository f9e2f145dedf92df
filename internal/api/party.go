package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
)

type partyRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Customers

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	h.createParty(w, r, "customers")
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	var customers []domain.Customer
	if err := h.db.Select(&customers, `SELECT id, name, phone, address, created_at FROM customers ORDER BY name`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list customers")
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	h.updateParty(w, r, "customers")
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	h.deleteParty(w, r, "customers")
}

// Suppliers

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	h.createParty(w, r, "suppliers")
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	var suppliers []domain.Supplier
	if err := h.db.Select(&suppliers, `SELECT id, name, phone, address, created_at FROM suppliers ORDER BY name`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list suppliers")
		return
	}
	respondJSON(w, http.StatusOK, suppliers)
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	h.updateParty(w, r, "suppliers")
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	h.deleteParty(w, r, "suppliers")
}

// Shared plumbing. Customers and suppliers are the same shape of record
// attached to opposite ends of the stock flow.

func (h *Handler) createParty(w http.ResponseWriter, r *http.Request, table string) {
	var req partyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	var id int64
	err := h.db.QueryRowx(`INSERT INTO `+table+` (name, phone, address) VALUES ($1, $2, $3) RETURNING id`,
		strings.TrimSpace(req.Name), req.Phone, req.Address).Scan(&id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create record")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "name": strings.TrimSpace(req.Name)})
}

func (h *Handler) updateParty(w http.ResponseWriter, r *http.Request, table string) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req partyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	result, err := h.db.Exec(`UPDATE `+table+` SET name = $1, phone = $2, address = $3 WHERE id = $4`,
		strings.TrimSpace(req.Name), req.Phone, req.Address, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update record")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "record not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteParty(w http.ResponseWriter, r *http.Request, table string) {
	if !h.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	result, err := h.db.Exec(`DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			respondError(w, http.StatusConflict, "record is referenced by transactions")
		} else {
			respondError(w, http.StatusInternalServerError, "unable to delete record")
		}
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "record not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
