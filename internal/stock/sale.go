package stock

import (
	"fmt"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
)

// LineKind tags the sale line variants.
type LineKind string

const (
	LineInventory LineKind = "inventory"
	LineDoctorFee LineKind = "doctorFee"
	LineLabTest   LineKind = "labTest"
)

// Line is one priced row of a sale. Every line contributes to the sale
// total; only inventory lines carry a cost basis.
type Line interface {
	Kind() LineKind
	Total() float64
	Cost() float64
}

// InventoryLine is a validated consumption of one batch, prices captured
// from the batch at sale time.
type InventoryLine struct {
	ItemID          int64
	BatchID         int64
	UnitQuantity    int64
	SubUnitQuantity int64
	Consumed        int64 // raw sub-units drawn from the batch
	UnitPrice       float64
	SubUnitPrice    float64
	CostPrice       float64 // per raw sub-unit
}

func (l InventoryLine) Kind() LineKind { return LineInventory }

func (l InventoryLine) Total() float64 {
	return float64(l.UnitQuantity)*l.UnitPrice + float64(l.SubUnitQuantity)*l.SubUnitPrice
}

func (l InventoryLine) Cost() float64 {
	return float64(l.Consumed) * l.CostPrice
}

type DoctorFeeLine struct {
	DoctorName  string
	Description string
	Amount      float64
}

func (l DoctorFeeLine) Kind() LineKind { return LineDoctorFee }
func (l DoctorFeeLine) Total() float64 { return l.Amount }
func (l DoctorFeeLine) Cost() float64  { return 0 }

type LabTestLine struct {
	Name  string
	Price float64
}

func (l LabTestLine) Kind() LineKind { return LineLabTest }
func (l LabTestLine) Total() float64 { return l.Price }
func (l LabTestLine) Cost() float64  { return 0 }

// ConsumeFromBatch validates one inventory line against its batch and
// returns it priced. The caller persists the decrement together with the
// sale record in one transaction; partial application is never acceptable.
func ConsumeFromBatch(item domain.InventoryItem, batch domain.Batch, unitQuantity, subUnitQuantity int64) (InventoryLine, error) {
	if batch.ItemID != item.ID {
		return InventoryLine{}, fmt.Errorf("%w: batch %s does not belong to item %d", ErrValidation, batch.BatchNumber, item.ID)
	}
	consumed, err := ToRawUnits(unitQuantity, subUnitQuantity, item.Contains())
	if err != nil {
		return InventoryLine{}, err
	}
	if consumed == 0 {
		return InventoryLine{}, fmt.Errorf("%w: sale line consumes nothing", ErrValidation)
	}
	if consumed > batch.Quantity {
		return InventoryLine{}, fmt.Errorf("%w: batch %s holds %d raw units, requested %d", ErrInsufficientStock, batch.BatchNumber, batch.Quantity, consumed)
	}
	return InventoryLine{
		ItemID:          item.ID,
		BatchID:         batch.ID,
		UnitQuantity:    unitQuantity,
		SubUnitQuantity: subUnitQuantity,
		Consumed:        consumed,
		UnitPrice:       batch.UnitPrice,
		SubUnitPrice:    batch.SubUnitPrice,
		CostPrice:       batch.CostPrice,
	}, nil
}

// Totals are the sale-level sums: Amount over all lines, Cost over the
// inventory lines only.
type Totals struct {
	Amount float64 `json:"total_amount"`
	Cost   float64 `json:"total_cost"`
	Profit float64 `json:"profit"`
}

func SaleTotals(lines []Line) Totals {
	var t Totals
	for _, l := range lines {
		t.Amount += l.Total()
		t.Cost += l.Cost()
	}
	t.Profit = t.Amount - t.Cost
	return t
}

// Margin is the profit fraction of revenue, 0 when there is no revenue.
func Margin(revenue, cost float64) float64 {
	if revenue == 0 {
		return 0
	}
	return (revenue - cost) / revenue
}

// InventoryMargin is the margin over the inventory portion of a sale only.
// Fees and lab tests are pure revenue and are deliberately excluded from
// both sides of the ratio.
func InventoryMargin(lines []Line) float64 {
	var revenue, cost float64
	for _, l := range lines {
		if l.Kind() != LineInventory {
			continue
		}
		revenue += l.Total()
		cost += l.Cost()
	}
	return Margin(revenue, cost)
}
