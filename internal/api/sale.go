package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/internal/stock"
)

type saleItemRequest struct {
	ItemID          int64 `json:"item_id"`
	BatchID         int64 `json:"batch_id"`
	UnitQuantity    int64 `json:"unit_quantity"`
	SubUnitQuantity int64 `json:"sub_unit_quantity"`
}

type doctorFeeRequest struct {
	DoctorName  string  `json:"doctor_name"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type labTestRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type saleRequest struct {
	CustomerID *int64             `json:"customer_id,omitempty"`
	Items      []saleItemRequest  `json:"items"`
	DoctorFees []doctorFeeRequest `json:"doctor_fees,omitempty"`
	LabTests   []labTestRequest   `json:"lab_tests,omitempty"`
}

// createSale validates every line through the accounting core, decrements
// the referenced batches and writes the sale in one transaction. The
// per-batch FOR UPDATE lock serializes concurrent sales against the same
// batch so quantity can never go negative.
func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleAdmin, domain.RoleCashier) {
		return
	}
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Items)+len(req.DoctorFees)+len(req.LabTests) == 0 {
		respondError(w, http.StatusBadRequest, "sale has no lines")
		return
	}
	userID := userIDFromContext(r)
	if userID <= 0 {
		respondError(w, http.StatusForbidden, "invalid context")
		return
	}
	if req.CustomerID != nil {
		var exists bool
		if err := h.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, *req.CustomerID); err != nil || !exists {
			respondError(w, http.StatusBadRequest, "invalid customer_id")
			return
		}
	}

	lines := make([]stock.Line, 0, len(req.Items)+len(req.DoctorFees)+len(req.LabTests))
	for _, fee := range req.DoctorFees {
		if strings.TrimSpace(fee.DoctorName) == "" || fee.Amount <= 0 {
			respondError(w, http.StatusBadRequest, "doctor fee requires a name and a positive amount")
			return
		}
		lines = append(lines, stock.DoctorFeeLine{DoctorName: fee.DoctorName, Description: fee.Description, Amount: fee.Amount})
	}
	for _, test := range req.LabTests {
		if strings.TrimSpace(test.Name) == "" || test.Price <= 0 {
			respondError(w, http.StatusBadRequest, "lab test requires a name and a positive price")
			return
		}
		lines = append(lines, stock.LabTestLine{Name: test.Name, Price: test.Price})
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer tx.Rollback()

	inventoryLines := make([]stock.InventoryLine, 0, len(req.Items))
	for _, line := range req.Items {
		var item domain.InventoryItem
		err := tx.Get(&item, `SELECT id, code, name, type, has_unit_contains, unit_contains_value, unit_contains_unit, min_quantity FROM items WHERE id = $1`, line.ItemID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid item_id "+strconv.FormatInt(line.ItemID, 10))
			return
		}
		var batch domain.Batch
		err = tx.Get(&batch, `SELECT id, item_id, batch_number, quantity, expiry_date, cost_price, unit_price, sub_unit_price FROM batches WHERE id = $1 FOR UPDATE`, line.BatchID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid batch_id "+strconv.FormatInt(line.BatchID, 10))
			return
		}

		consumed, err := stock.ConsumeFromBatch(item, batch, line.UnitQuantity, line.SubUnitQuantity)
		if err != nil {
			respondStockError(w, err)
			return
		}

		result, err := tx.Exec(`UPDATE batches SET quantity = quantity - $1 WHERE id = $2 AND quantity >= $1`, consumed.Consumed, batch.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to update batch stock")
			return
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			respondError(w, http.StatusConflict, "insufficient stock: batch "+batch.BatchNumber+" changed concurrently")
			return
		}

		inventoryLines = append(inventoryLines, consumed)
		lines = append(lines, consumed)
	}

	totals := stock.SaleTotals(lines)
	invoiceNo := uuid.NewString()

	var saleID int64
	err = tx.QueryRowx(`INSERT INTO sales (invoice_no, customer_id, user_id, total_amount, total_cost) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		invoiceNo, req.CustomerID, userID, totals.Amount, totals.Cost).Scan(&saleID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create sale record")
		return
	}

	for _, line := range inventoryLines {
		_, err = tx.Exec(`INSERT INTO sale_items (sale_id, item_id, batch_id, unit_quantity, sub_unit_quantity, total_quantity, unit_price, sub_unit_price, total_price, total_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			saleID, line.ItemID, line.BatchID, line.UnitQuantity, line.SubUnitQuantity, line.Consumed, line.UnitPrice, line.SubUnitPrice, line.Total(), line.Cost())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to add sale items")
			return
		}
	}
	for _, fee := range req.DoctorFees {
		if _, err := tx.Exec(`INSERT INTO doctor_fees (sale_id, doctor_name, description, amount) VALUES ($1, $2, $3, $4)`,
			saleID, fee.DoctorName, fee.Description, fee.Amount); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to add doctor fees")
			return
		}
	}
	for _, test := range req.LabTests {
		if _, err := tx.Exec(`INSERT INTO lab_tests (sale_id, name, price) VALUES ($1, $2, $3)`,
			saleID, test.Name, test.Price); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to add lab tests")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to finalize sale")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"sale_id":          saleID,
		"invoice_no":       invoiceNo,
		"total_amount":     totals.Amount,
		"total_cost":       totals.Cost,
		"profit":           totals.Profit,
		"inventory_margin": stock.InventoryMargin(lines),
	})
}

type saleEntry struct {
	domain.Sale
	Items      []domain.SaleItem       `json:"items"`
	DoctorFees []domain.DoctorFee      `json:"doctor_fees"`
	LabTests   []domain.LaboratoryTest `json:"lab_tests"`
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	var (
		args    []any
		clauses []string
	)
	startDate := strings.TrimSpace(r.URL.Query().Get("start_date"))
	if startDate != "" {
		if _, err := parseDate(startDate); err != nil {
			respondError(w, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
			return
		}
		args = append(args, startDate)
		clauses = append(clauses, "DATE(created_at) >= $"+strconv.Itoa(len(args)))
	}
	endDate := strings.TrimSpace(r.URL.Query().Get("end_date"))
	if endDate != "" {
		if _, err := parseDate(endDate); err != nil {
			respondError(w, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
			return
		}
		args = append(args, endDate)
		clauses = append(clauses, "DATE(created_at) <= $"+strconv.Itoa(len(args)))
	}

	query := `SELECT id, invoice_no, customer_id, user_id, total_amount, total_cost, created_at FROM sales`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var sales []domain.Sale
	if err := h.db.Select(&sales, query, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch sales")
		return
	}
	if len(sales) == 0 {
		respondJSON(w, http.StatusOK, []saleEntry{})
		return
	}

	ids := make([]int64, len(sales))
	for i, sale := range sales {
		ids[i] = sale.ID
	}

	itemsBySale, feesBySale, testsBySale, err := h.saleLines(ids)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load sale lines")
		return
	}

	report := make([]saleEntry, len(sales))
	for i, sale := range sales {
		report[i] = assembleSale(sale, itemsBySale, feesBySale, testsBySale)
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	var sale domain.Sale
	err = h.db.Get(&sale, `SELECT id, invoice_no, customer_id, user_id, total_amount, total_cost, created_at FROM sales WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "sale not found")
		} else {
			respondError(w, http.StatusInternalServerError, "unable to load sale")
		}
		return
	}
	itemsBySale, feesBySale, testsBySale, err := h.saleLines([]int64{sale.ID})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load sale lines")
		return
	}
	respondJSON(w, http.StatusOK, assembleSale(sale, itemsBySale, feesBySale, testsBySale))
}

func (h *Handler) saleLines(ids []int64) (map[int64][]domain.SaleItem, map[int64][]domain.DoctorFee, map[int64][]domain.LaboratoryTest, error) {
	itemsQuery, itemsArgs, err := sqlx.In(`SELECT id, sale_id, item_id, batch_id, unit_quantity, sub_unit_quantity, total_quantity, unit_price, sub_unit_price, total_price, total_cost
		FROM sale_items WHERE sale_id IN (?)`, ids)
	if err != nil {
		return nil, nil, nil, err
	}
	var items []domain.SaleItem
	if err := h.db.Select(&items, h.db.Rebind(itemsQuery), itemsArgs...); err != nil {
		return nil, nil, nil, err
	}

	feesQuery, feesArgs, err := sqlx.In(`SELECT id, sale_id, doctor_name, description, amount FROM doctor_fees WHERE sale_id IN (?)`, ids)
	if err != nil {
		return nil, nil, nil, err
	}
	var fees []domain.DoctorFee
	if err := h.db.Select(&fees, h.db.Rebind(feesQuery), feesArgs...); err != nil {
		return nil, nil, nil, err
	}

	testsQuery, testsArgs, err := sqlx.In(`SELECT id, sale_id, name, price FROM lab_tests WHERE sale_id IN (?)`, ids)
	if err != nil {
		return nil, nil, nil, err
	}
	var tests []domain.LaboratoryTest
	if err := h.db.Select(&tests, h.db.Rebind(testsQuery), testsArgs...); err != nil {
		return nil, nil, nil, err
	}

	itemsBySale := make(map[int64][]domain.SaleItem)
	for _, row := range items {
		itemsBySale[row.SaleID] = append(itemsBySale[row.SaleID], row)
	}
	feesBySale := make(map[int64][]domain.DoctorFee)
	for _, row := range fees {
		feesBySale[row.SaleID] = append(feesBySale[row.SaleID], row)
	}
	testsBySale := make(map[int64][]domain.LaboratoryTest)
	for _, row := range tests {
		testsBySale[row.SaleID] = append(testsBySale[row.SaleID], row)
	}
	return itemsBySale, feesBySale, testsBySale, nil
}

func assembleSale(sale domain.Sale, items map[int64][]domain.SaleItem, fees map[int64][]domain.DoctorFee, tests map[int64][]domain.LaboratoryTest) saleEntry {
	entry := saleEntry{
		Sale:       sale,
		Items:      items[sale.ID],
		DoctorFees: fees[sale.ID],
		LabTests:   tests[sale.ID],
	}
	if entry.Items == nil {
		entry.Items = []domain.SaleItem{}
	}
	if entry.DoctorFees == nil {
		entry.DoctorFees = []domain.DoctorFee{}
	}
	if entry.LabTests == nil {
		entry.LabTests = []domain.LaboratoryTest{}
	}
	return entry
}
