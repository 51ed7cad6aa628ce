// Package nativevalue implements the native-asset (XRP) value type: an
// exact integer count of drops, as opposed to the 16-digit mantissa form
// issued currencies use. It generalizes the teacher's
// internal/core/XRPAmount.XRPAmount (a bare int64 of drops) into the
// range-checked, decimal-engine-aware value spec.md §4.2 describes.
package nativevalue

import (
	"errors"

	"github.com/chainlane/xrplcore/internal/core/decimal"
)

// DropsPerXRP is the number of drops in one XRP.
const DropsPerXRP = 1_000_000

// MaxDropsMagnitude is the strict-mode magnitude ceiling: 10^11 XRP.
const MaxDropsMagnitude = 100_000_000_000 * DropsPerXRP

// ErrOutOfRange is returned in strict mode when |drops| exceeds
// MaxDropsMagnitude.
var ErrOutOfRange = errors.New("nativevalue: magnitude exceeds 10^11 XRP")

var strictMode = true

// SetStrictMode toggles the global range-check flag. Shared with
// issuedvalue's flag only in spirit: each package keeps its own, as the
// reference keeps per-type validation switches.
func SetStrictMode(enabled bool) { strictMode = enabled }

// StrictMode reports the current strict-mode setting.
func StrictMode() bool { return strictMode }

// Value is a signed exact count of drops.
type Value struct {
	drops int64
	nan   bool
}

// Zero is the native zero value.
func Zero() Value { return Value{} }

// NaN returns the invalid/NaN native value, mirroring decimal.NaN for
// use in Amount's invalid-state propagation.
func NaN() Value { return Value{nan: true} }

// FromDrops constructs a Value from an exact integer drops count,
// applying the strict-mode range check.
func FromDrops(drops int64) (Value, error) {
	if strictMode && (drops > MaxDropsMagnitude || drops < -MaxDropsMagnitude) {
		return Value{}, ErrOutOfRange
	}
	return Value{drops: drops}, nil
}

// FromXRP constructs a Value from a decimal XRP amount, as when a human
// string like "25.2 XRP" is parsed: the value is multiplied by
// DropsPerXRP and rounded toward zero before the range check.
func FromXRP(xrp decimal.Decimal) (Value, error) {
	scaled := xrp.Multiply(decimal.FromInt64(DropsPerXRP))
	drops, ok := scaled.Int64()
	if !ok {
		return Value{}, ErrOutOfRange
	}
	return FromDrops(drops)
}

// Drops returns the exact integer drops count.
func (v Value) Drops() int64 { return v.drops }

// Decimal returns an exact (non-canonicalized) decimal.Decimal view of
// v, for use by arithmetic that needs to cross into the issued-value
// domain (e.g. RatioHuman's drops compensation).
func (v Value) Decimal() decimal.Decimal { return decimal.FromInt64(v.drops) }

func (v Value) IsNaN() bool      { return v.nan }
func (v Value) IsZero() bool     { return !v.nan && v.drops == 0 }
func (v Value) IsNegative() bool { return !v.nan && v.drops < 0 }

// Add returns v + other. Overflow beyond int64 is not checked; drops
// magnitudes are bounded well below int64's range by the protocol
// itself (10^17 drops max).
func (v Value) Add(other Value) Value {
	if v.nan || other.nan {
		return NaN()
	}
	return Value{drops: v.drops + other.drops}
}

// Subtract returns v - other.
func (v Value) Subtract(other Value) Value {
	if v.nan || other.nan {
		return NaN()
	}
	return Value{drops: v.drops - other.drops}
}

// Multiply returns v * factor, rounding toward zero to whole drops
// (Amount.Multiply passes the other native operand's drops as factor).
func (v Value) Multiply(factor decimal.Decimal) Value {
	if v.nan || factor.IsNaN() {
		return NaN()
	}
	product := v.Decimal().Multiply(factor)
	drops, ok := product.Int64()
	if !ok {
		return NaN()
	}
	return Value{drops: drops}
}

// Divide returns v / other as a native value, rounding the quotient
// toward zero to the nearest whole drop.
func (v Value) Divide(other Value) Value {
	if v.nan || other.nan || other.IsZero() {
		return NaN()
	}
	quotient := v.Decimal().Divide(other.Decimal())
	drops, ok := quotient.Int64()
	if !ok {
		return NaN()
	}
	return Value{drops: drops}
}

// Negate returns -v.
func (v Value) Negate() Value {
	if v.nan {
		return v
	}
	return Value{drops: -v.drops}
}

// Abs returns |v|.
func (v Value) Abs() Value {
	if v.nan {
		return v
	}
	if v.drops < 0 {
		return Value{drops: -v.drops}
	}
	return v
}

// Invert returns 1/v expressed in drops, i.e. round(DropsPerXRP^2 / v)
// is not meaningful for a pure integer type; inversion is only ever
// requested by Amount at the decimal level, so Value exposes it via the
// decimal engine and rounds back to an integer drops count.
func (v Value) Invert() Value {
	if v.nan || v.IsZero() {
		return NaN()
	}
	inv := v.Decimal().Invert()
	drops, ok := inv.Int64()
	if !ok {
		return NaN()
	}
	return Value{drops: drops}
}

// Equals reports value equality. NaN never equals anything.
func (v Value) Equals(other Value) bool {
	if v.nan || other.nan {
		return false
	}
	return v.drops == other.drops
}

// Compare returns -1, 0, or +1.
func (v Value) Compare(other Value) int {
	switch {
	case v.drops < other.drops:
		return -1
	case v.drops > other.drops:
		return 1
	default:
		return 0
	}
}
