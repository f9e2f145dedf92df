package domain

import "time"

type Purchase struct {
	ID          int64   `db:"id" json:"id"`
	InvoiceNo   string  `db:"invoice_no" json:"invoice_no"`
	SupplierID  int64   `db:"supplier_id" json:"supplier_id"`
	TotalAmount float64 `db:"total_amount" json:"total_amount"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}

// PurchaseItem records one received line. Quantity is whole units as entered
// by the operator; TotalQuantity is the raw sub-unit expansion that seeded
// the batch.
type PurchaseItem struct {
	ID            int64     `db:"id" json:"id"`
	PurchaseID    int64     `db:"purchase_id" json:"purchase_id"`
	ItemID        int64     `db:"item_id" json:"item_id"`
	BatchID       int64     `db:"batch_id" json:"batch_id"`
	Quantity      int64     `db:"quantity" json:"quantity"`
	TotalQuantity int64     `db:"total_quantity" json:"total_quantity"`
	CostPrice     float64   `db:"cost_price" json:"cost_price"`
	UnitPrice     float64   `db:"unit_price" json:"unit_price"`
	SubUnitPrice  float64   `db:"sub_unit_price" json:"sub_unit_price"`
	ExpiryDate    time.Time `db:"expiry_date" json:"expiry_date"`
}
