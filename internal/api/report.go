package api

import (
	"net/http"
	"time"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/internal/stock"
)

type salesSummary struct {
	Revenue          float64 `json:"revenue"`
	Cost             float64 `json:"cost"`
	Profit           float64 `json:"profit"`
	SalesCount       int64   `json:"sales_count"`
	InventoryRevenue float64 `json:"inventory_revenue"`
	InventoryCost    float64 `json:"inventory_cost"`
	// InventoryMargin is (inventoryRevenue - inventoryCost) / inventoryRevenue.
	// Doctor fees and lab tests inflate revenue but carry no cost, so the
	// margin shown in summaries is computed over the inventory portion only.
	InventoryMargin float64 `json:"inventory_margin"`
}

func (h *Handler) dailySales(w http.ResponseWriter, r *http.Request) {
	h.salesSummarySince(w, `DATE(created_at) = CURRENT_DATE`)
}

func (h *Handler) monthlySales(w http.ResponseWriter, r *http.Request) {
	h.salesSummarySince(w, `DATE(created_at) >= date_trunc('month', CURRENT_DATE)`)
}

func (h *Handler) salesSummarySince(w http.ResponseWriter, periodClause string) {
	var summary salesSummary
	err := h.db.QueryRow(`SELECT COALESCE(SUM(total_amount), 0), COALESCE(SUM(total_cost), 0), COUNT(*) FROM sales WHERE `+periodClause).
		Scan(&summary.Revenue, &summary.Cost, &summary.SalesCount)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch sales summary")
		return
	}
	err = h.db.QueryRow(`SELECT COALESCE(SUM(si.total_price), 0), COALESCE(SUM(si.total_cost), 0)
		FROM sale_items si JOIN sales s ON s.id = si.sale_id WHERE `+periodClause).
		Scan(&summary.InventoryRevenue, &summary.InventoryCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch inventory summary")
		return
	}
	summary.Profit = summary.Revenue - summary.Cost
	summary.InventoryMargin = stock.Margin(summary.InventoryRevenue, summary.InventoryCost)
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) lowStockReport(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	var items []domain.InventoryItem
	if err := h.db.Select(&items, `SELECT id, code, name, type, has_unit_contains, unit_contains_value, unit_contains_unit, min_quantity FROM items ORDER BY name`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list items")
		return
	}
	batchesByItem, err := h.batchesByItem()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load batches")
		return
	}

	low := []itemResponse{}
	for _, item := range items {
		batches := batchesByItem[item.ID]
		if stock.IsLowStock(item, batches) {
			low = append(low, itemWithStock(item, batches))
		}
	}
	respondJSON(w, http.StatusOK, low)
}

type expiringBatch struct {
	domain.Batch
	ItemCode string           `db:"item_code" json:"item_code"`
	ItemName string           `db:"item_name" json:"item_name"`
	Status   stock.BatchState `json:"status"`
}

type expiryOverview struct {
	Summary stock.Summary   `json:"summary"`
	Batches []expiringBatch `json:"batches"`
}

// expiryReport buckets every batch by expiry window and lists the ones
// expiring within six months, soonest first.
func (h *Handler) expiryReport(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	var batches []domain.Batch
	err := h.db.Select(&batches, `SELECT id, item_id, batch_number, quantity, expiry_date, cost_price, unit_price, sub_unit_price, created_at
		FROM batches ORDER BY expiry_date ASC`)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load batches")
		return
	}

	now := time.Now()
	report := expiryOverview{
		Summary: stock.Summarize(batches, now),
		Batches: []expiringBatch{},
	}

	var flagged []domain.Batch
	sixMonths := now.AddDate(0, 6, 0)
	for _, b := range batches {
		if b.Quantity > 0 && !b.ExpiryDate.After(sixMonths) {
			flagged = append(flagged, b)
		}
	}
	if len(flagged) > 0 {
		names, err := h.itemsByID()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load item names")
			return
		}
		for _, b := range flagged {
			entry := expiringBatch{Batch: b, Status: stock.BatchStatusAt(b, now)}
			if n, ok := names[b.ItemID]; ok {
				entry.ItemCode = n.Code
				entry.ItemName = n.Name
			}
			report.Batches = append(report.Batches, entry)
		}
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) itemsByID() (map[int64]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := h.db.Select(&items, `SELECT id, code, name, type, has_unit_contains, unit_contains_value, unit_contains_unit, min_quantity FROM items`); err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.InventoryItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID, nil
}
