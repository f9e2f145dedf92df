package stock

import (
	"errors"
	"testing"
	"time"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
)

func TestPlanBatch(t *testing.T) {
	item := packagedItem(50, 2)
	expiry := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)

	// 3 whole units of a 50-pack item yield one batch of 150 raw units.
	planned, err := PlanBatch(item, 1, 3, 0.2, 15, 0.4, expiry)
	if err != nil {
		t.Fatalf("PlanBatch: %v", err)
	}
	if planned.Quantity != 150 {
		t.Errorf("Quantity = %d, want 150", planned.Quantity)
	}
	if planned.BatchNumber != "0001" {
		t.Errorf("BatchNumber = %q, want 0001", planned.BatchNumber)
	}
	if want := 150 * 0.2; planned.Amount != want {
		t.Errorf("Amount = %v, want %v", planned.Amount, want)
	}

	tests := []struct {
		name    string
		whole   int64
		cost    float64
		unit    float64
		sub     float64
		expiry  time.Time
		wantErr error
	}{
		{name: "zero quantity", whole: 0, cost: 1, unit: 2, sub: 0.1, expiry: expiry, wantErr: ErrValidation},
		{name: "zero cost", whole: 1, cost: 0, unit: 2, sub: 0.1, expiry: expiry, wantErr: ErrValidation},
		{name: "negative sub price", whole: 1, cost: 1, unit: 2, sub: -1, expiry: expiry, wantErr: ErrValidation},
		{name: "missing expiry", whole: 1, cost: 1, unit: 2, sub: 0.1, wantErr: ErrValidation},
	}
	for _, tc := range tests {
		if _, err := PlanBatch(item, 2, tc.whole, tc.cost, tc.unit, tc.sub, tc.expiry); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.wantErr)
		}
	}

	// A sub-unit price on an unpackaged item is a configuration error.
	plain := domain.InventoryItem{ID: 2, Code: "ORS", Name: "ORS Sachet", Type: domain.TypeOther}
	if _, err := PlanBatch(plain, 1, 10, 1, 2, 0.5, expiry); !errors.Is(err, ErrInvalidUnitConfig) {
		t.Errorf("unpackaged sub price: err = %v, want ErrInvalidUnitConfig", err)
	}
	planned, err = PlanBatch(plain, 1, 10, 1, 2, 0, expiry)
	if err != nil {
		t.Fatalf("unpackaged plan: %v", err)
	}
	if planned.Quantity != 10 {
		t.Errorf("unpackaged Quantity = %d, want 10", planned.Quantity)
	}
}

func TestFormatBatchNumber(t *testing.T) {
	tests := []struct {
		seq  int64
		want string
	}{
		{1, "0001"},
		{42, "0042"},
		{9999, "9999"},
		{10000, "10000"},
	}
	for _, tc := range tests {
		if got := FormatBatchNumber(tc.seq); got != tc.want {
			t.Errorf("FormatBatchNumber(%d) = %q, want %q", tc.seq, got, tc.want)
		}
	}
}

func TestPurchaseAmount(t *testing.T) {
	planned := []PlannedBatch{{Amount: 30}, {Amount: 12.5}}
	if got := PurchaseAmount(planned); got != 42.5 {
		t.Errorf("PurchaseAmount = %v, want 42.5", got)
	}
}
