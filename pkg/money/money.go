// Package money provides a fixed-point monetary value stored as an integer
// count of minor units (cents). All ledger arithmetic happens in minor units;
// the two-decimal representation exists only at the JSON boundary.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is a signed amount in minor units (cents).
type Money int64

var (
	ErrInvalidAmount = errors.New("invalid monetary amount")
)

// FromMinorUnits wraps a raw minor-unit count.
func FromMinorUnits(units int64) Money {
	return Money(units)
}

// ParseDecimal parses a decimal string such as "12.34", "-0.5" or "100" into
// minor units. At most two fractional digits are accepted; a single
// fractional digit means tenths ("0.5" == 50 units). Only digits may follow
// an optional leading sign, and a trailing decimal point is rejected.
// Parsing never goes through float64.
func ParseDecimal(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" || s == "." {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		// A trailing decimal point ("12.") is malformed, not an implied ".00".
		if frac == "" {
			return 0, fmt.Errorf("%w: trailing decimal point in %q", ErrInvalidAmount, s)
		}
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: more than two decimal places in %q", ErrInvalidAmount, s)
	}
	// The sign was consumed above; anything non-digit from here on, including
	// an embedded sign like "1.-5", is malformed.
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	// Pad tenths to hundredths: "5" -> "50".
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}

	wholeUnits, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	fracUnits, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if wholeUnits > (math.MaxInt64-fracUnits)/100 {
		return 0, fmt.Errorf("%w: %q exceeds the representable range", ErrInvalidAmount, s)
	}

	units := wholeUnits*100 + fracUnits
	if negative {
		units = -units
	}
	return Money(units), nil
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MinorUnits returns the raw minor-unit count.
func (m Money) MinorUnits() int64 {
	return int64(m)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return m - other
}

// Neg returns -m.
func (m Money) Neg() Money {
	return -m
}

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m == 0
}

// IsNegative reports whether m is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// String formats m with exactly two decimal places, e.g. "-3.05".
func (m Money) String() string {
	units := int64(m)
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	return fmt.Sprintf("%s%d.%02d", sign, units/100, units%100)
}

// MarshalJSON encodes m as a JSON number with two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// Value stores m as its raw minor-unit count (BIGINT column).
func (m Money) Value() (driver.Value, error) {
	return int64(m), nil
}

// Scan reads a minor-unit count from the database.
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*m = Money(v)
		return nil
	case nil:
		*m = 0
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T into Money", ErrInvalidAmount, src)
	}
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
