package stock

import (
	"fmt"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
)

// Breakdown is a raw quantity split into whole units and loose sub-units.
type Breakdown struct {
	Whole int64 `json:"whole"`
	Sub   int64 `json:"sub"`
}

// ValidateUnitContains enforces the item-level packaging invariant at
// create/edit time: the pair must be absent for single-unit items and carry
// a positive value for packaged ones. Rejecting a zero value here is what
// keeps the conversion functions division-safe.
func ValidateUnitContains(hasUnitContains bool, u *domain.UnitContains) error {
	if !hasUnitContains {
		if u != nil {
			return fmt.Errorf("%w: unit_contains given for an item without packaging", ErrInvalidUnitConfig)
		}
		return nil
	}
	if u == nil {
		return fmt.Errorf("%w: packaged item requires unit_contains", ErrInvalidUnitConfig)
	}
	if u.Value <= 0 {
		return fmt.Errorf("%w: unit_contains value must be positive, got %d", ErrInvalidUnitConfig, u.Value)
	}
	return nil
}

// ToRawUnits converts an operator-entered quantity (whole units plus loose
// sub-units) into the raw sub-unit count batches are stored in. For an item
// without packaging the sub-unit quantity must be zero.
func ToRawUnits(wholeUnits, subUnits int64, u *domain.UnitContains) (int64, error) {
	if wholeUnits < 0 || subUnits < 0 {
		return 0, fmt.Errorf("%w: quantities must be non-negative", ErrValidation)
	}
	if u == nil {
		if subUnits != 0 {
			return 0, fmt.Errorf("%w: sub-unit quantity given for an item without packaging", ErrInvalidUnitConfig)
		}
		return wholeUnits, nil
	}
	if u.Value <= 0 {
		return 0, fmt.Errorf("%w: unit_contains value must be positive, got %d", ErrInvalidUnitConfig, u.Value)
	}
	return wholeUnits*u.Value + subUnits, nil
}

// ToWholeAndSub splits a raw quantity for display. Exact inverse of
// ToRawUnits on valid inputs. A nil pair means an unpackaged item; a
// non-positive pack size never reaches here because ValidateUnitContains
// rejects it at item creation, but is treated as unpackaged rather than
// dividing by zero.
func ToWholeAndSub(raw int64, u *domain.UnitContains) Breakdown {
	if u == nil || u.Value <= 0 {
		return Breakdown{Whole: raw}
	}
	return Breakdown{Whole: raw / u.Value, Sub: raw % u.Value}
}
