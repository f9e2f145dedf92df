package domain

// Customer and Supplier are plain reference records: customers attach to
// sales, suppliers to purchases. No derived logic.
type Customer struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	Address   string `db:"address" json:"address,omitempty"`
	CreatedAt string `db:"created_at" json:"created_at,omitempty"`
}

type Supplier struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	Address   string `db:"address" json:"address,omitempty"`
	CreatedAt string `db:"created_at" json:"created_at,omitempty"`
}
