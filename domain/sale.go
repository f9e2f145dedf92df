package domain

type Sale struct {
	ID          int64   `db:"id" json:"id"`
	InvoiceNo   string  `db:"invoice_no" json:"invoice_no"`
	CustomerID  *int64  `db:"customer_id" json:"customer_id,omitempty"`
	UserID      *int64  `db:"user_id" json:"user_id,omitempty"`
	TotalAmount float64 `db:"total_amount" json:"total_amount"`
	TotalCost   float64 `db:"total_cost" json:"total_cost"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}

// SaleItem is one inventory line of a sale. UnitQuantity is whole units,
// SubUnitQuantity loose sub-units beyond them; TotalQuantity is the raw
// amount consumed from the batch. Prices are captured from the batch at
// sale time and never recomputed.
type SaleItem struct {
	ID              int64   `db:"id" json:"id"`
	SaleID          int64   `db:"sale_id" json:"sale_id"`
	ItemID          int64   `db:"item_id" json:"item_id"`
	BatchID         int64   `db:"batch_id" json:"batch_id"`
	UnitQuantity    int64   `db:"unit_quantity" json:"unit_quantity"`
	SubUnitQuantity int64   `db:"sub_unit_quantity" json:"sub_unit_quantity"`
	TotalQuantity   int64   `db:"total_quantity" json:"total_quantity"`
	UnitPrice       float64 `db:"unit_price" json:"unit_price"`
	SubUnitPrice    float64 `db:"sub_unit_price" json:"sub_unit_price"`
	TotalPrice      float64 `db:"total_price" json:"total_price"`
	TotalCost       float64 `db:"total_cost" json:"total_cost"`
}

// DoctorFee and LaboratoryTest are flat-priced sale lines that do not touch
// inventory: pure revenue, no cost basis.
type DoctorFee struct {
	ID          int64   `db:"id" json:"id"`
	SaleID      int64   `db:"sale_id" json:"sale_id"`
	DoctorName  string  `db:"doctor_name" json:"doctor_name"`
	Description string  `db:"description" json:"description,omitempty"`
	Amount      float64 `db:"amount" json:"amount"`
}

type LaboratoryTest struct {
	ID     int64   `db:"id" json:"id"`
	SaleID int64   `db:"sale_id" json:"sale_id"`
	Name   string  `db:"name" json:"name"`
	Price  float64 `db:"price" json:"price"`
}
