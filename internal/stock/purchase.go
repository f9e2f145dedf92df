package stock

import (
	"fmt"
	"time"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
)

// PlannedBatch is the batch a purchase line will create: whole units
// expanded to raw sub-units, the next batch number assigned, and the line's
// contribution to the purchase total.
type PlannedBatch struct {
	ItemID       int64
	BatchNumber  string
	Quantity     int64 // raw sub-units
	WholeUnits   int64 // as entered by the operator
	ExpiryDate   time.Time
	CostPrice    float64 // per raw sub-unit
	UnitPrice    float64
	SubUnitPrice float64
	Amount       float64
}

// FormatBatchNumber renders the sequential per-item batch number,
// zero-padded to four digits.
func FormatBatchNumber(seq int64) string {
	return fmt.Sprintf("%04d", seq)
}

// PlanBatch validates one purchase line and expands it into the batch it
// creates. seq is the next batch sequence for the item.
func PlanBatch(item domain.InventoryItem, seq, wholeUnits int64, costPrice, unitPrice, subUnitPrice float64, expiry time.Time) (PlannedBatch, error) {
	if wholeUnits <= 0 {
		return PlannedBatch{}, fmt.Errorf("%w: purchase quantity must be positive", ErrValidation)
	}
	if costPrice <= 0 || unitPrice <= 0 {
		return PlannedBatch{}, fmt.Errorf("%w: cost and unit prices must be positive", ErrValidation)
	}
	if subUnitPrice < 0 {
		return PlannedBatch{}, fmt.Errorf("%w: sub-unit price must not be negative", ErrValidation)
	}
	if item.Contains() == nil && subUnitPrice != 0 {
		return PlannedBatch{}, fmt.Errorf("%w: sub-unit price given for an item without packaging", ErrInvalidUnitConfig)
	}
	if expiry.IsZero() {
		return PlannedBatch{}, fmt.Errorf("%w: expiry date is required", ErrValidation)
	}
	raw, err := ToRawUnits(wholeUnits, 0, item.Contains())
	if err != nil {
		return PlannedBatch{}, err
	}
	return PlannedBatch{
		ItemID:       item.ID,
		BatchNumber:  FormatBatchNumber(seq),
		Quantity:     raw,
		WholeUnits:   wholeUnits,
		ExpiryDate:   expiry,
		CostPrice:    costPrice,
		UnitPrice:    unitPrice,
		SubUnitPrice: subUnitPrice,
		Amount:       float64(raw) * costPrice,
	}, nil
}

// PurchaseAmount sums the planned lines into the purchase total.
func PurchaseAmount(planned []PlannedBatch) float64 {
	var total float64
	for _, p := range planned {
		total += p.Amount
	}
	return total
}
