package domain

import "time"

// Batch is one received lot of an item. Quantity is always raw sub-units:
// a purchase of 5 bottles of 100 tablets is stored as quantity 500.
// Batches are created by purchases, decremented by sales and never deleted.
type Batch struct {
	ID          int64     `db:"id" json:"id"`
	ItemID      int64     `db:"item_id" json:"item_id"`
	BatchNumber string    `db:"batch_number" json:"batch_number"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	ExpiryDate  time.Time `db:"expiry_date" json:"expiry_date"`
	// CostPrice is per raw sub-unit; UnitPrice and SubUnitPrice are the
	// selling prices per whole unit and per loose sub-unit respectively.
	CostPrice    float64 `db:"cost_price" json:"cost_price"`
	UnitPrice    float64 `db:"unit_price" json:"unit_price"`
	SubUnitPrice float64 `db:"sub_unit_price" json:"sub_unit_price"`
	CreatedAt    string  `db:"created_at" json:"created_at,omitempty"`
}
