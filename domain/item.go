package domain

// Item categories. The type only picks a default sub-unit label for the
// packaging pair, nothing else branches on it.
const (
	TypeTablet    = "Tablet"
	TypeSyrup     = "Syrup"
	TypeCapsule   = "Capsule"
	TypeInjection = "Injection"
	TypeCream     = "Cream"
	TypeOintment  = "Ointment"
	TypeOther     = "Other"
)

// ItemTypes lists the closed set of accepted item categories.
func ItemTypes() []string {
	return []string{TypeTablet, TypeSyrup, TypeCapsule, TypeInjection, TypeCream, TypeOintment, TypeOther}
}

// ValidItemType reports whether t is one of the known categories.
func ValidItemType(t string) bool {
	for _, known := range ItemTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// DefaultSubUnit returns the customary sub-unit label for a category, used
// when a packaged item is created without an explicit label.
func DefaultSubUnit(itemType string) string {
	switch itemType {
	case TypeTablet:
		return "tablets"
	case TypeCapsule:
		return "capsules"
	case TypeSyrup:
		return "ml"
	case TypeInjection:
		return "vials"
	case TypeCream, TypeOintment:
		return "g"
	default:
		return "units"
	}
}

// UnitContains describes the packaging of a multi-unit item: one whole unit
// (a bottle, a strip) holds Value sub-units labelled Unit.
type UnitContains struct {
	Value int64  `json:"value"`
	Unit  string `json:"unit"`
}

type InventoryItem struct {
	ID                int64   `db:"id" json:"id"`
	Code              string  `db:"code" json:"code"`
	Name              string  `db:"name" json:"name"`
	Type              string  `db:"type" json:"type"`
	HasUnitContains   bool    `db:"has_unit_contains" json:"has_unit_contains"`
	UnitContainsValue *int64  `db:"unit_contains_value" json:"-"`
	UnitContainsUnit  *string `db:"unit_contains_unit" json:"-"`
	MinQuantity       int64   `db:"min_quantity" json:"min_quantity"`
	CreatedAt         string  `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt         string  `db:"updated_at" json:"updated_at,omitempty"`
}

// Contains returns the packaging pair, or nil for single-unit items.
func (i InventoryItem) Contains() *UnitContains {
	if !i.HasUnitContains || i.UnitContainsValue == nil {
		return nil
	}
	uc := UnitContains{Value: *i.UnitContainsValue}
	if i.UnitContainsUnit != nil {
		uc.Unit = *i.UnitContainsUnit
	}
	return &uc
}
