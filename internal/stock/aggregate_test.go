package stock

import (
	"testing"
	"time"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
)

func packagedItem(value int64, minQuantity int64) domain.InventoryItem {
	unit := "tablets"
	return domain.InventoryItem{
		ID:                1,
		Code:              "PCM500",
		Name:              "Paracetamol 500mg",
		Type:              domain.TypeTablet,
		HasUnitContains:   true,
		UnitContainsValue: &value,
		UnitContainsUnit:  &unit,
		MinQuantity:       minQuantity,
	}
}

func TestTotalRawQuantity(t *testing.T) {
	batches := []domain.Batch{
		{Quantity: 300},
		{Quantity: 200},
		{Quantity: 50},
	}
	if got := TotalRawQuantity(batches); got != 550 {
		t.Errorf("TotalRawQuantity = %d, want 550", got)
	}
	if got := TotalRawQuantity(nil); got != 0 {
		t.Errorf("TotalRawQuantity(nil) = %d, want 0", got)
	}
}

func TestLowStockBoundary(t *testing.T) {
	item := packagedItem(100, 5)

	// 550 raw = 5 whole units: exactly at minimum, not low.
	atMin := []domain.Batch{{Quantity: 550}}
	if got := AvailableWholeUnits(item, atMin); got != 5 {
		t.Fatalf("AvailableWholeUnits = %d, want 5", got)
	}
	if IsLowStock(item, atMin) {
		t.Error("stock at minimum flagged low")
	}

	// 499 raw = 4 whole units: one below minimum, low.
	below := []domain.Batch{{Quantity: 499}}
	if got := AvailableWholeUnits(item, below); got != 4 {
		t.Fatalf("AvailableWholeUnits = %d, want 4", got)
	}
	if !IsLowStock(item, below) {
		t.Error("stock below minimum not flagged low")
	}
}

func TestBatchStatusAt(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   BatchState
	}{
		{name: "yesterday", expiry: now.AddDate(0, 0, -1), want: BatchExpired},
		{name: "two months out", expiry: now.AddDate(0, 2, 0), want: BatchExpiringSoon},
		{name: "exactly three months", expiry: now.AddDate(0, 3, 0), want: BatchExpiringSoon},
		{name: "four months out", expiry: now.AddDate(0, 4, 0), want: BatchValid},
	}
	for _, tc := range tests {
		b := domain.Batch{ExpiryDate: tc.expiry}
		if got := BatchStatusAt(b, now); got != tc.want {
			t.Errorf("%s: status = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	batches := []domain.Batch{
		{Quantity: 10, ExpiryDate: now.AddDate(0, 0, -10)}, // expired
		{Quantity: 20, ExpiryDate: now.AddDate(0, 1, 0)},   // within 3 months
		{Quantity: 30, ExpiryDate: now.AddDate(0, 5, 0)},   // within 6 months
		{Quantity: 40, ExpiryDate: now.AddDate(1, 0, 0)},   // valid
	}
	s := Summarize(batches, now)
	if s.Expired != 1 || s.ExpiringSoon != 1 || s.Expiring != 1 || s.Valid != 1 {
		t.Errorf("Summarize buckets = %+v, want one in each", s)
	}
	if s.TotalRaw != 100 {
		t.Errorf("TotalRaw = %d, want 100", s.TotalRaw)
	}
	if got := s.Expired + s.ExpiringSoon + s.Expiring + s.Valid; got != len(batches) {
		t.Errorf("buckets sum to %d, want %d", got, len(batches))
	}
}
