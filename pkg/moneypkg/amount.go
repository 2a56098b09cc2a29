// Package moneypkg provides a fixed-point money amount with 8 decimal places.
package moneypkg

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places every Amount carries.
const Scale = 8

var (
	// ErrMalformed indicates that the amount string cannot be parsed.
	ErrMalformed = errors.New("malformed amount")
	// ErrTooPrecise indicates that the amount has more than 8 decimal places.
	ErrTooPrecise = errors.New("amount exceeds 8 decimal places")
	// ErrOutOfRange indicates that the amount does not fit the internal representation.
	ErrOutOfRange = errors.New("amount out of range")
)

// Amount is a count of 10^-8 currency units.
//
// All arithmetic and comparisons happen on the integer representation so that
// amounts never pass through binary floats.
type Amount int64

// FromString parses a decimal string such as "30.00000000" into an Amount.
func FromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrMalformed
	}

	return FromDecimal(d)
}

// FromDecimal converts d to an Amount without losing precision.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	shifted := d.Shift(Scale)

	if !shifted.IsInteger() {
		return 0, ErrTooPrecise
	}

	units := shifted.BigInt()
	if !units.IsInt64() {
		return 0, ErrOutOfRange
	}

	return Amount(units.Int64()), nil
}

// Decimal returns the exact decimal value of a.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Scale)
}

// String renders a with all 8 decimal places.
func (a Amount) String() string {
	return a.Decimal().StringFixed(Scale)
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return a + b
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return a - b
}

// IsPositive reports whether a is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a > 0
}

// IsNegative reports whether a is strictly less than zero.
func (a Amount) IsNegative() bool {
	return a < 0
}

// LessThan reports whether a < b.
func (a Amount) LessThan(b Amount) bool {
	return a < b
}

// MarshalJSON encodes the amount as a decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted decimal string or a bare number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	parsed, err := FromString(s)
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

// Value implements driver.Valuer storing the raw unit count.
func (a Amount) Value() (driver.Value, error) {
	return int64(a), nil
}

// Scan implements sql.Scanner reading the raw unit count.
func (a *Amount) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*a = Amount(v)
		return nil
	case nil:
		*a = 0
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Amount", src)
	}
}
