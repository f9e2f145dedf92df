package stock

import (
	"time"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
)

// BatchState classifies a batch by its expiry date.
type BatchState string

const (
	BatchExpired      BatchState = "Expired"
	BatchExpiringSoon BatchState = "ExpiringSoon"
	BatchValid        BatchState = "Valid"
)

// TotalRawQuantity sums the remaining raw sub-units across batches. Expired
// batches count too: the stock is still physically on the shelf.
func TotalRawQuantity(batches []domain.Batch) int64 {
	var total int64
	for _, b := range batches {
		total += b.Quantity
	}
	return total
}

// AvailableWholeUnits is the item's current stock in whole units, loose
// sub-units discarded.
func AvailableWholeUnits(item domain.InventoryItem, batches []domain.Batch) int64 {
	return ToWholeAndSub(TotalRawQuantity(batches), item.Contains()).Whole
}

// IsLowStock flags an item strictly below its minimum: stock exactly at the
// minimum is not low.
func IsLowStock(item domain.InventoryItem, batches []domain.Batch) bool {
	return AvailableWholeUnits(item, batches) < item.MinQuantity
}

// BatchStatusAt classifies one batch relative to now. Windows use
// calendar-month arithmetic (AddDate), so overflowing dates normalize the
// way the standard library does: three months from Jan 31 is May 1.
func BatchStatusAt(b domain.Batch, now time.Time) BatchState {
	if b.ExpiryDate.Before(now) {
		return BatchExpired
	}
	if !b.ExpiryDate.After(now.AddDate(0, 3, 0)) {
		return BatchExpiringSoon
	}
	return BatchValid
}

// Summary buckets a batch list for dashboard counts. ExpiringSoon is the
// three-month window, Expiring the batches past it but within six months,
// Valid everything further out; the four counts partition the list.
type Summary struct {
	Expired      int   `json:"expired"`
	ExpiringSoon int   `json:"expiring_soon"`
	Expiring     int   `json:"expiring"`
	Valid        int   `json:"valid"`
	TotalRaw     int64 `json:"total_raw_quantity"`
}

// Summarize counts batches per expiry bucket at the given instant.
func Summarize(batches []domain.Batch, now time.Time) Summary {
	sixMonths := now.AddDate(0, 6, 0)
	var s Summary
	for _, b := range batches {
		s.TotalRaw += b.Quantity
		switch BatchStatusAt(b, now) {
		case BatchExpired:
			s.Expired++
		case BatchExpiringSoon:
			s.ExpiringSoon++
		default:
			if !b.ExpiryDate.After(sixMonths) {
				s.Expiring++
			} else {
				s.Valid++
			}
		}
	}
	return s
}
