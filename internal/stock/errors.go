// Package stock is the inventory accounting core: pure arithmetic over
// items, batches and sale lines. It owns the whole-unit/sub-unit
// reconciliation, stock aggregation and expiry status rules, and the
// consumption math applied when a sale draws down a batch. Nothing here
// touches the database; callers fetch the records and persist the results.
package stock

import "errors"

var (
	// ErrInvalidUnitConfig covers a non-positive pack size or sub-unit
	// quantities given for an item that has no packaging.
	ErrInvalidUnitConfig = errors.New("invalid unit configuration")

	// ErrInsufficientStock means a consumption request exceeds the
	// remaining quantity of the referenced batch.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrValidation covers missing or non-positive required inputs.
	ErrValidation = errors.New("validation failed")
)
