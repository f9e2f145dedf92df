package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/internal/stock"
)

type itemRequest struct {
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	Type            string               `json:"type"`
	HasUnitContains bool                 `json:"has_unit_contains"`
	UnitContains    *domain.UnitContains `json:"unit_contains,omitempty"`
	MinQuantity     int64                `json:"min_quantity"`
}

func (req *itemRequest) validate() error {
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if req.Code == "" || req.Name == "" {
		return errors.New("code and name are required")
	}
	if !domain.ValidItemType(req.Type) {
		return errors.New("type must be one of " + strings.Join(domain.ItemTypes(), ", "))
	}
	if req.MinQuantity < 0 {
		return errors.New("min_quantity must not be negative")
	}
	if req.HasUnitContains && req.UnitContains != nil && strings.TrimSpace(req.UnitContains.Unit) == "" {
		req.UnitContains.Unit = domain.DefaultSubUnit(req.Type)
	}
	return stock.ValidateUnitContains(req.HasUnitContains, req.UnitContains)
}

func (req *itemRequest) containsColumns() (*int64, *string) {
	if !req.HasUnitContains || req.UnitContains == nil {
		return nil, nil
	}
	return &req.UnitContains.Value, &req.UnitContains.Unit
}

// itemResponse joins the catalog record with its derived stock figures.
type itemResponse struct {
	domain.InventoryItem
	UnitContains *domain.UnitContains `json:"unit_contains,omitempty"`
	Available    stock.Breakdown      `json:"available"`
	TotalRaw     int64                `json:"total_raw_quantity"`
	LowStock     bool                 `json:"low_stock"`
	BatchCount   int                  `json:"batch_count"`
}

func itemWithStock(item domain.InventoryItem, batches []domain.Batch) itemResponse {
	totalRaw := stock.TotalRawQuantity(batches)
	return itemResponse{
		InventoryItem: item,
		UnitContains:  item.Contains(),
		Available:     stock.ToWholeAndSub(totalRaw, item.Contains()),
		TotalRaw:      totalRaw,
		LowStock:      stock.IsLowStock(item, batches),
		BatchCount:    len(batches),
	}
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		respondStockError(w, err)
		return
	}

	value, unit := req.containsColumns()
	var id int64
	err := h.db.QueryRowx(`INSERT INTO items (code, name, type, has_unit_contains, unit_contains_value, unit_contains_unit, min_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		req.Code, req.Name, req.Type, req.HasUnitContains, value, unit, req.MinQuantity).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respondError(w, http.StatusConflict, "item code already exists")
		} else {
			respondError(w, http.StatusInternalServerError, "unable to create item")
		}
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "code": req.Code})
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	args := []any{}
	sqlQuery := `SELECT id, code, name, type, has_unit_contains, unit_contains_value, unit_contains_unit, min_quantity, created_at, updated_at FROM items`
	if query != "" {
		like := "%" + query + "%"
		args = append(args, like)
		sqlQuery += ` WHERE code ILIKE $1 OR name ILIKE $1`
	}
	sqlQuery += ` ORDER BY name`

	var items []domain.InventoryItem
	if err := h.db.Select(&items, sqlQuery, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list items")
		return
	}

	batchesByItem, err := h.batchesByItem()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load batches")
		return
	}

	response := make([]itemResponse, len(items))
	for i, item := range items {
		response[i] = itemWithStock(item, batchesByItem[item.ID])
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.loadItem(w, r)
	if !ok {
		return
	}
	batches, err := h.itemBatches(item.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load batches")
		return
	}
	respondJSON(w, http.StatusOK, itemWithStock(item, batches))
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	item, ok := h.loadItem(w, r)
	if !ok {
		return
	}
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		respondStockError(w, err)
		return
	}

	value, unit := req.containsColumns()
	_, err := h.db.Exec(`UPDATE items SET code = $1, name = $2, type = $3, has_unit_contains = $4,
		unit_contains_value = $5, unit_contains_unit = $6, min_quantity = $7, updated_at = NOW() WHERE id = $8`,
		req.Code, req.Name, req.Type, req.HasUnitContains, value, unit, req.MinQuantity, item.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respondError(w, http.StatusConflict, "item code already exists")
		} else {
			respondError(w, http.StatusInternalServerError, "unable to update item")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	item, ok := h.loadItem(w, r)
	if !ok {
		return
	}
	if _, err := h.db.Exec(`DELETE FROM items WHERE id = $1`, item.ID); err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			respondError(w, http.StatusConflict, "item has batches or transactions and cannot be deleted")
		} else {
			respondError(w, http.StatusInternalServerError, "unable to delete item")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type batchResponse struct {
	domain.Batch
	Status    stock.BatchState `json:"status"`
	Available stock.Breakdown  `json:"available"`
}

// listBatches returns an item's batches ordered by expiry so a client can
// suggest the earliest-expiring batch first. Nothing enforces that choice:
// the operator picks the batch at the point of sale.
func (h *Handler) listBatches(w http.ResponseWriter, r *http.Request) {
	item, ok := h.loadItem(w, r)
	if !ok {
		return
	}
	batches, err := h.itemBatches(item.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load batches")
		return
	}
	now := time.Now()
	response := make([]batchResponse, len(batches))
	for i, b := range batches {
		response[i] = batchResponse{
			Batch:     b,
			Status:    stock.BatchStatusAt(b, now),
			Available: stock.ToWholeAndSub(b.Quantity, item.Contains()),
		}
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *Handler) loadItem(w http.ResponseWriter, r *http.Request) (domain.InventoryItem, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return domain.InventoryItem{}, false
	}
	var item domain.InventoryItem
	err = h.db.Get(&item, `SELECT id, code, name, type, has_unit_contains, unit_contains_value, unit_contains_unit, min_quantity, created_at, updated_at FROM items WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "item not found")
		} else {
			respondError(w, http.StatusInternalServerError, "unable to load item")
		}
		return domain.InventoryItem{}, false
	}
	return item, true
}

func (h *Handler) itemBatches(itemID int64) ([]domain.Batch, error) {
	var batches []domain.Batch
	err := h.db.Select(&batches, `SELECT id, item_id, batch_number, quantity, expiry_date, cost_price, unit_price, sub_unit_price, created_at
		FROM batches WHERE item_id = $1 ORDER BY expiry_date ASC, batch_number ASC`, itemID)
	return batches, err
}

func (h *Handler) batchesByItem() (map[int64][]domain.Batch, error) {
	var batches []domain.Batch
	err := h.db.Select(&batches, `SELECT id, item_id, batch_number, quantity, expiry_date, cost_price, unit_price, sub_unit_price, created_at
		FROM batches ORDER BY expiry_date ASC`)
	if err != nil {
		return nil, err
	}
	grouped := make(map[int64][]domain.Batch)
	for _, b := range batches {
		grouped[b.ItemID] = append(grouped[b.ItemID], b)
	}
	return grouped, nil
}
