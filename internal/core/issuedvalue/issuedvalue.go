// Package issuedvalue wraps the decimal engine with the canonical range
// rules for issued-currency (IOU) amounts: a 16-digit coefficient with
// exponent in [-96, 80], the only exception being zero.
package issuedvalue

import (
	"errors"

	"github.com/chainlane/xrplcore/internal/core/decimal"
)

// Strict-mode errors. ErrUnderflow/ErrOverflow are only returned when
// strict mode is enabled (the default); see SetStrictMode.
var (
	ErrUnderflow = errors.New("issuedvalue: magnitude below minimum nonzero value")
	ErrOverflow  = errors.New("issuedvalue: magnitude above maximum value")
)

// strictMode gates the range checks in New. It is a process-wide flag,
// matching spec.md's single shared mutable flag; set it before use and
// do not toggle it while other goroutines may be constructing values.
var strictMode = true

// SetStrictMode toggles range checking globally. Intended for test
// benches only; production code should leave this at its default of
// true.
func SetStrictMode(enabled bool) { strictMode = enabled }

// StrictMode reports the current strict-mode setting.
func StrictMode() bool { return strictMode }

// Value is a canonicalized issued-currency decimal.
type Value struct {
	d decimal.Decimal
}

// Zero is the issued-currency zero value.
func Zero() Value { return Value{d: decimal.Zero()} }

// NaN returns the invalid/NaN issued value.
func NaN() Value { return Value{d: decimal.NaN()} }

// New wraps a decimal.Decimal, applying the issued-value range check
// when strict mode is enabled. Zero is always accepted regardless of
// its exponent.
func New(d decimal.Decimal) (Value, error) {
	if d.IsNaN() || d.IsZero() {
		return Value{d: d}, nil
	}
	if strictMode {
		if d.Exponent() < decimal.MinExponent {
			return Value{}, ErrUnderflow
		}
		if d.Exponent() > decimal.MaxExponent {
			return Value{}, ErrOverflow
		}
	}
	return Value{d: d}, nil
}

// Parse parses a decimal string into an issued Value (spec.md §4.2:
// IssuedValue accepts any decimal string). Unlike New(decimal.ParseDecimal(s))
// this distinguishes a literal zero from a non-zero value whose magnitude
// underflows MinExponent: decimal.ParseDecimal alone would silently clamp
// the latter to zero before New ever saw it, making ErrUnderflow
// unreachable from text input.
func Parse(s string) (Value, error) {
	_, coefBig, exp, err := decimal.RawComponents(s)
	if err != nil {
		return Value{}, err
	}
	if coefBig.Sign() == 0 {
		return Zero(), nil
	}
	if strictMode {
		canonExp := decimal.CanonicalExponent(coefBig, exp)
		if canonExp < decimal.MinExponent {
			return Value{}, ErrUnderflow
		}
		if canonExp > decimal.MaxExponent {
			return Value{}, ErrOverflow
		}
	}
	d, err := decimal.ParseDecimal(s)
	if err != nil {
		return Value{}, err
	}
	return New(d)
}

// Decimal exposes the underlying decimal.
func (v Value) Decimal() decimal.Decimal { return v.d }

func (v Value) IsNaN() bool      { return v.d.IsNaN() }
func (v Value) IsZero() bool     { return v.d.IsZero() }
func (v Value) IsNegative() bool { return v.d.IsNegative() }

func (v Value) Add(other Value) Value      { return Value{d: v.d.Add(other.d)} }
func (v Value) Subtract(other Value) Value { return Value{d: v.d.Subtract(other.d)} }
func (v Value) Multiply(other Value) Value { return Value{d: v.d.Multiply(other.d)} }
func (v Value) Divide(other Value) Value   { return Value{d: v.d.Divide(other.d)} }
func (v Value) Negate() Value              { return Value{d: v.d.Negate()} }
func (v Value) Abs() Value                 { return Value{d: v.d.Abs()} }
func (v Value) Invert() Value              { return Value{d: v.d.Invert()} }

func (v Value) Equals(other Value) bool    { return v.d.Equals(other.d) }
func (v Value) Compare(other Value) int    { return v.d.Compare(other.d) }

func (v Value) String() string { return v.d.String() }
