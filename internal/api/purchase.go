package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/internal/stock"
)

type purchaseItemRequest struct {
	ItemID       int64   `json:"item_id"`
	Quantity     int64   `json:"quantity"` // whole units as entered
	CostPrice    float64 `json:"cost_price"`
	UnitPrice    float64 `json:"unit_price"`
	SubUnitPrice float64 `json:"sub_unit_price"`
	ExpiryDate   string  `json:"expiry_date"`
}

type purchaseRequest struct {
	SupplierID int64                 `json:"supplier_id"`
	Items      []purchaseItemRequest `json:"items"`
}

// createPurchase records a supplier transaction and creates one batch per
// line. This is the only path that brings batches into existence.
func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SupplierID <= 0 {
		respondError(w, http.StatusBadRequest, "supplier_id is required")
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "no items in purchase")
		return
	}

	var exists bool
	if err := h.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM suppliers WHERE id = $1)`, req.SupplierID); err != nil || !exists {
		respondError(w, http.StatusBadRequest, "invalid supplier_id")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer tx.Rollback()

	// Plan every line before writing anything so the purchase total is
	// known and a bad line rejects the whole purchase.
	planned := make([]stock.PlannedBatch, 0, len(req.Items))
	nextSeq := make(map[int64]int64)
	for _, line := range req.Items {
		var item domain.InventoryItem
		err := tx.Get(&item, `SELECT id, code, name, type, has_unit_contains, unit_contains_value, unit_contains_unit, min_quantity FROM items WHERE id = $1`, line.ItemID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid item_id "+strconv.FormatInt(line.ItemID, 10))
			return
		}

		seq, ok := nextSeq[item.ID]
		if !ok {
			if err := tx.Get(&seq, `SELECT COALESCE(MAX(batch_number::bigint), 0) FROM batches WHERE item_id = $1`, item.ID); err != nil {
				respondError(w, http.StatusInternalServerError, "unable to assign batch number")
				return
			}
		}
		seq++
		nextSeq[item.ID] = seq

		expiry, err := parseDate(line.ExpiryDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "expiry_date must be in YYYY-MM-DD format")
			return
		}

		plan, err := stock.PlanBatch(item, seq, line.Quantity, line.CostPrice, line.UnitPrice, line.SubUnitPrice, expiry)
		if err != nil {
			respondStockError(w, err)
			return
		}
		planned = append(planned, plan)
	}

	invoiceNo := uuid.NewString()
	var purchaseID int64
	err = tx.QueryRowx(`INSERT INTO purchases (invoice_no, supplier_id, total_amount) VALUES ($1, $2, $3) RETURNING id`,
		invoiceNo, req.SupplierID, stock.PurchaseAmount(planned)).Scan(&purchaseID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create purchase record")
		return
	}

	batchIDs := make([]int64, len(planned))
	for i, plan := range planned {
		var batchID int64
		err := tx.QueryRowx(`INSERT INTO batches (item_id, batch_number, quantity, expiry_date, cost_price, unit_price, sub_unit_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			plan.ItemID, plan.BatchNumber, plan.Quantity, plan.ExpiryDate, plan.CostPrice, plan.UnitPrice, plan.SubUnitPrice).Scan(&batchID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to create batch")
			return
		}
		batchIDs[i] = batchID

		_, err = tx.Exec(`INSERT INTO purchase_items (purchase_id, item_id, batch_id, quantity, total_quantity, cost_price, unit_price, sub_unit_price, expiry_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			purchaseID, plan.ItemID, batchID, plan.WholeUnits, plan.Quantity, plan.CostPrice, plan.UnitPrice, plan.SubUnitPrice, plan.ExpiryDate)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to add purchase items")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to finalize purchase")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"purchase_id":  purchaseID,
		"invoice_no":   invoiceNo,
		"total_amount": stock.PurchaseAmount(planned),
		"batch_ids":    batchIDs,
	})
}

type purchaseEntry struct {
	domain.Purchase
	SupplierName string                `db:"supplier_name" json:"supplier_name"`
	Items        []domain.PurchaseItem `json:"items"`
}

func (h *Handler) listPurchases(w http.ResponseWriter, r *http.Request) {
	var purchases []purchaseEntry
	err := h.db.Select(&purchases, `SELECT p.id, p.invoice_no, p.supplier_id, p.total_amount, p.created_at, s.name AS supplier_name
		FROM purchases p JOIN suppliers s ON s.id = p.supplier_id ORDER BY p.created_at DESC`)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list purchases")
		return
	}
	if len(purchases) == 0 {
		respondJSON(w, http.StatusOK, []purchaseEntry{})
		return
	}

	ids := make([]int64, len(purchases))
	for i, p := range purchases {
		ids[i] = p.ID
	}
	itemsQuery, itemsArgs, err := sqlx.In(`SELECT id, purchase_id, item_id, batch_id, quantity, total_quantity, cost_price, unit_price, sub_unit_price, expiry_date
		FROM purchase_items WHERE purchase_id IN (?)`, ids)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to prepare purchase items query")
		return
	}
	itemsQuery = h.db.Rebind(itemsQuery)

	var rows []domain.PurchaseItem
	if err := h.db.Select(&rows, itemsQuery, itemsArgs...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load purchase items")
		return
	}
	itemsByPurchase := make(map[int64][]domain.PurchaseItem)
	for _, row := range rows {
		itemsByPurchase[row.PurchaseID] = append(itemsByPurchase[row.PurchaseID], row)
	}
	for i := range purchases {
		items := itemsByPurchase[purchases[i].ID]
		if items == nil {
			items = []domain.PurchaseItem{}
		}
		purchases[i].Items = items
	}
	respondJSON(w, http.StatusOK, purchases)
}

func (h *Handler) getPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	var entry purchaseEntry
	err = h.db.Get(&entry, `SELECT p.id, p.invoice_no, p.supplier_id, p.total_amount, p.created_at, s.name AS supplier_name
		FROM purchases p JOIN suppliers s ON s.id = p.supplier_id WHERE p.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "purchase not found")
		} else {
			respondError(w, http.StatusInternalServerError, "unable to load purchase")
		}
		return
	}
	if err := h.db.Select(&entry.Items, `SELECT id, purchase_id, item_id, batch_id, quantity, total_quantity, cost_price, unit_price, sub_unit_price, expiry_date
		FROM purchase_items WHERE purchase_id = $1`, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load purchase items")
		return
	}
	if entry.Items == nil {
		entry.Items = []domain.PurchaseItem{}
	}
	respondJSON(w, http.StatusOK, entry)
}
