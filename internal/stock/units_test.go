package stock

import (
	"errors"
	"testing"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/domain"
)

func TestToRawUnits(t *testing.T) {
	bottle := &domain.UnitContains{Value: 100, Unit: "tablets"}

	tests := []struct {
		name    string
		whole   int64
		sub     int64
		u       *domain.UnitContains
		want    int64
		wantErr error
	}{
		{name: "no packaging", whole: 7, sub: 0, u: nil, want: 7},
		{name: "packaged whole only", whole: 5, sub: 0, u: bottle, want: 500},
		{name: "packaged with loose", whole: 5, sub: 10, u: bottle, want: 510},
		{name: "zero", whole: 0, sub: 0, u: bottle, want: 0},
		{name: "loose without packaging", whole: 2, sub: 3, u: nil, wantErr: ErrInvalidUnitConfig},
		{name: "zero pack size", whole: 1, sub: 0, u: &domain.UnitContains{Value: 0}, wantErr: ErrInvalidUnitConfig},
		{name: "negative whole", whole: -1, sub: 0, u: bottle, wantErr: ErrValidation},
		{name: "negative sub", whole: 1, sub: -1, u: bottle, wantErr: ErrValidation},
	}
	for _, tc := range tests {
		got, err := ToRawUnits(tc.whole, tc.sub, tc.u)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("%s: err = %v, want %v", tc.name, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestToWholeAndSub(t *testing.T) {
	bottle := &domain.UnitContains{Value: 100, Unit: "tablets"}

	if b := ToWholeAndSub(550, bottle); b.Whole != 5 || b.Sub != 50 {
		t.Errorf("550/100 = %+v, want whole 5 sub 50", b)
	}
	if b := ToWholeAndSub(499, bottle); b.Whole != 4 || b.Sub != 99 {
		t.Errorf("499/100 = %+v, want whole 4 sub 99", b)
	}
	if b := ToWholeAndSub(42, nil); b.Whole != 42 || b.Sub != 0 {
		t.Errorf("unpackaged = %+v, want whole 42 sub 0", b)
	}
}

// Conversion must round-trip exactly for every non-negative quantity.
func TestUnitConversionRoundTrip(t *testing.T) {
	for _, value := range []int64{1, 2, 7, 50, 100} {
		u := &domain.UnitContains{Value: value, Unit: "tablets"}
		for raw := int64(0); raw <= 3*value+5; raw++ {
			b := ToWholeAndSub(raw, u)
			back, err := ToRawUnits(b.Whole, b.Sub, u)
			if err != nil {
				t.Fatalf("value %d raw %d: %v", value, raw, err)
			}
			if back != raw {
				t.Fatalf("value %d: round trip %d -> %+v -> %d", value, raw, b, back)
			}
		}
	}
	// And for the no-packaging case.
	for raw := int64(0); raw < 20; raw++ {
		b := ToWholeAndSub(raw, nil)
		back, err := ToRawUnits(b.Whole, b.Sub, nil)
		if err != nil || back != raw {
			t.Fatalf("nil packaging: round trip %d -> %d (err %v)", raw, back, err)
		}
	}
}

func TestValidateUnitContains(t *testing.T) {
	tests := []struct {
		name string
		has  bool
		u    *domain.UnitContains
		ok   bool
	}{
		{name: "unpackaged", has: false, u: nil, ok: true},
		{name: "packaged valid", has: true, u: &domain.UnitContains{Value: 100, Unit: "tablets"}, ok: true},
		{name: "unpackaged with pair", has: false, u: &domain.UnitContains{Value: 10}, ok: false},
		{name: "packaged missing pair", has: true, u: nil, ok: false},
		{name: "packaged zero value", has: true, u: &domain.UnitContains{Value: 0}, ok: false},
		{name: "packaged negative value", has: true, u: &domain.UnitContains{Value: -5}, ok: false},
	}
	for _, tc := range tests {
		err := ValidateUnitContains(tc.has, tc.u)
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok {
			if !errors.Is(err, ErrInvalidUnitConfig) {
				t.Errorf("%s: err = %v, want ErrInvalidUnitConfig", tc.name, err)
			}
		}
	}
}
