// Package money implements exact EUR amounts as an integer count of cents.
// Amounts are never represented as binary floating point; every conversion
// from a fractional value rounds half away from zero to the nearer cent
// (HALF_UP), the single rounding rule used throughout the tax engine.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/dreistrom/dreistrom-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Money is an immutable EUR amount in cents.
type Money struct {
	cents int64
}

// Zero is the zero amount.
var Zero = Money{}

// FromCents builds an amount from a cent count.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// FromDecimal rounds a decimal euro value HALF_UP to the cent.
// Values with more than two fraction digits are not an error: the rounding
// rule resolves them deterministically ("10.005" becomes 10.01 EUR).
func FromDecimal(d decimal.Decimal) Money {
	return Money{cents: d.Mul(hundred).Round(0).IntPart()}
}

// FromDecimalString parses a decimal euro string and rounds HALF_UP to the
// cent. Malformed input yields an AmountError wrapping ErrInvalidAmount.
func FromDecimalString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, &domain.AmountError{Input: s, Reason: "not a decimal number"}
	}
	return FromDecimal(d), nil
}

// Cents returns the raw cent count.
func (m Money) Cents() int64 { return m.cents }

// Decimal returns the amount as an exact two-fraction-digit decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -2)
}

// String renders the amount with exactly two fraction digits, e.g. "10.01".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{cents: -m.cents}
}

// MulRatio multiplies by a decimal fraction and rounds HALF_UP to the cent
// after the multiplication, never before. Used for quantities, VAT rates and
// percentage allocations.
func (m Money) MulRatio(ratio decimal.Decimal) Money {
	return FromDecimal(m.Decimal().Mul(ratio))
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	switch {
	case m.cents < other.cents:
		return -1
	case m.cents > other.cents:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.cents == 0 }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.cents < 0 }

// MarshalJSON renders the amount as a quoted decimal string ("12.34") so
// clients never see cent counts or floats.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted decimal string or a bare JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := FromDecimalString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
