package api

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/internal/stock"
)

func TestRespondStockError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrapped: %w", stock.ErrInsufficientStock), 409},
		{fmt.Errorf("wrapped: %w", stock.ErrInvalidUnitConfig), 400},
		{fmt.Errorf("wrapped: %w", stock.ErrValidation), 400},
		{fmt.Errorf("plain failure"), 500},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		respondStockError(rec, tc.err)
		if rec.Code != tc.want {
			t.Errorf("%v: status = %d, want %d", tc.err, rec.Code, tc.want)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%v: content type = %q", tc.err, ct)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate(" 2027-06-01 ")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if d.Year() != 2027 || d.Month() != 6 || d.Day() != 1 {
		t.Errorf("parseDate = %v", d)
	}
	if _, err := parseDate("01/06/2027"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
