package stock

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
)

func testBatch(quantity int64) domain.Batch {
	return domain.Batch{
		ID:           9,
		ItemID:       1,
		BatchNumber:  "0001",
		Quantity:     quantity,
		ExpiryDate:   time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC),
		CostPrice:    0.3, // per tablet
		UnitPrice:    40,  // per bottle
		SubUnitPrice: 0.5, // per loose tablet
	}
}

func TestConsumeFromBatch(t *testing.T) {
	item := packagedItem(100, 5)

	// 5 bottles + 10 tablets = 510 raw against 500 remaining: rejected.
	if _, err := ConsumeFromBatch(item, testBatch(500), 5, 10); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("overdraw: err = %v, want ErrInsufficientStock", err)
	}

	// 4 bottles + 99 tablets = 499 raw: succeeds, 1 raw unit remains.
	line, err := ConsumeFromBatch(item, testBatch(500), 4, 99)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if line.Consumed != 499 {
		t.Errorf("Consumed = %d, want 499", line.Consumed)
	}
	if remaining := testBatch(500).Quantity - line.Consumed; remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}
	if want := 4*40.0 + 99*0.5; line.Total() != want {
		t.Errorf("Total = %v, want %v", line.Total(), want)
	}
	if want := 499 * 0.3; math.Abs(line.Cost()-want) > 1e-9 {
		t.Errorf("Cost = %v, want %v", line.Cost(), want)
	}

	// Consuming the exact remaining quantity is allowed.
	if _, err := ConsumeFromBatch(item, testBatch(500), 5, 0); err != nil {
		t.Errorf("exact drain: %v", err)
	}

	// Empty lines and foreign batches are rejected.
	if _, err := ConsumeFromBatch(item, testBatch(500), 0, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("zero line: err = %v, want ErrValidation", err)
	}
	foreign := testBatch(500)
	foreign.ItemID = 99
	if _, err := ConsumeFromBatch(item, foreign, 1, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("foreign batch: err = %v, want ErrValidation", err)
	}
}

func TestSaleTotalsAndMargin(t *testing.T) {
	lines := []Line{
		InventoryLine{UnitQuantity: 2, UnitPrice: 100, Consumed: 400, CostPrice: 0.3}, // total 200, cost 120
		LabTestLine{Name: "Blood Sugar", Price: 50},
	}

	totals := SaleTotals(lines)
	if totals.Amount != 250 {
		t.Errorf("Amount = %v, want 250", totals.Amount)
	}
	if totals.Cost != 120 {
		t.Errorf("Cost = %v, want 120", totals.Cost)
	}
	if totals.Profit != 130 {
		t.Errorf("Profit = %v, want 130", totals.Profit)
	}

	// Margin is computed over the inventory portion only: (200-120)/200.
	if got := InventoryMargin(lines); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("InventoryMargin = %v, want 0.4", got)
	}

	withFee := append(lines, DoctorFeeLine{DoctorName: "Dr. Silva", Amount: 500})
	if got := InventoryMargin(withFee); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("InventoryMargin with fee = %v, want 0.4 (fees excluded)", got)
	}
	if got := SaleTotals(withFee).Amount; got != 750 {
		t.Errorf("Amount with fee = %v, want 750", got)
	}
}

func TestMargin(t *testing.T) {
	if got := Margin(0, 0); got != 0 {
		t.Errorf("Margin(0,0) = %v, want 0", got)
	}
	if got := Margin(200, 120); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("Margin(200,120) = %v, want 0.4", got)
	}
}

func TestLineKinds(t *testing.T) {
	var lines = []Line{InventoryLine{}, DoctorFeeLine{}, LabTestLine{}}
	wants := []LineKind{LineInventory, LineDoctorFee, LineLabTest}
	for i, l := range lines {
		if l.Kind() != wants[i] {
			t.Errorf("line %d: kind = %s, want %s", i, l.Kind(), wants[i])
		}
	}
	if (DoctorFeeLine{Amount: 10}).Cost() != 0 || (LabTestLine{Price: 10}).Cost() != 0 {
		t.Error("fee and lab lines must have no cost basis")
	}
}
