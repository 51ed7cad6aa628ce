// Package decimal implements the arbitrary-precision signed decimal
// engine that backs every amount type in the XRPL wire protocol.
//
// A Decimal is (sign, coefficient, exponent): value = sign * coefficient
// * 10^exponent. Canonicalization re-normalizes a non-zero result so its
// coefficient has exactly 16 decimal digits, matching the mantissa width
// the protocol uses for issued-currency amounts. This canonical form is
// what the STAmount wire encoding is bit-compatible with; any deviation
// in rounding or exponent clamping here corrupts transactions built on
// top of it.
package decimal

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
	"sync"
)

// Canonical exponent bounds. A canonicalized non-zero Decimal's exponent
// always falls in [MinExponent, MaxExponent]; below MinExponent the value
// clamps to zero, above MaxExponent the operation fails with
// ErrOutOfRange.
const (
	MinExponent = -96
	MaxExponent = 80

	// CanonicalDigits is the fixed coefficient width after
	// canonicalization: every non-zero canonical coefficient lies in
	// [MinCoefficient, MaxCoefficient].
	CanonicalDigits  = 16
	MinCoefficient   = 1_000_000_000_000_000  // 10^15
	MaxCoefficient   = 9_999_999_999_999_999  // 10^16 - 1
	zeroExponent     = -100
	extraDivPrecision = 40
)

var (
	// ErrOutOfRange is returned when canonicalization would require an
	// exponent above MaxExponent.
	ErrOutOfRange = errors.New("decimal: value out of range")
	// ErrInvalidDecimal is returned when a decimal string cannot be parsed.
	ErrInvalidDecimal = errors.New("decimal: invalid decimal string")
)

// RoundingMode selects the rounding behavior of Decimal.Round.
type RoundingMode int

const (
	// RoundDown truncates toward zero.
	RoundDown RoundingMode = iota
	// RoundHalfUp rounds half away from zero.
	RoundHalfUp
)

// Decimal is a signed arbitrary-precision decimal value, or NaN.
//
// The zero value of Decimal is NOT a valid zero decimal; use Zero() to
// obtain one. A Decimal obtained any other way than through this
// package's constructors should be treated as uninitialized.
type Decimal struct {
	sign int8 // -1, 0, or +1; 0 iff the value is zero
	coef uint64
	exp  int32
	nan  bool
}

// Zero returns the canonical zero decimal.
func Zero() Decimal {
	return Decimal{sign: 0, coef: 0, exp: zeroExponent}
}

// NaN returns the distinguished not-a-number decimal.
func NaN() Decimal {
	return Decimal{nan: true}
}

// IsNaN reports whether d is the NaN state.
func (d Decimal) IsNaN() bool { return d.nan }

// IsZero reports whether d is exactly zero (never true for NaN).
func (d Decimal) IsZero() bool { return !d.nan && d.sign == 0 }

// IsNegative reports whether d is strictly negative.
func (d Decimal) IsNegative() bool { return !d.nan && d.sign < 0 }

// Sign returns -1, 0, or 1. NaN reports 0.
func (d Decimal) Sign() int8 {
	if d.nan {
		return 0
	}
	return d.sign
}

// Coefficient returns the unsigned coefficient.
func (d Decimal) Coefficient() uint64 { return d.coef }

// Exponent returns the decimal exponent.
func (d Decimal) Exponent() int32 { return d.exp }

// FromInt64 builds an exact Decimal representing v, bypassing the
// 16-digit canonicalization. It exists for callers such as NativeValue
// whose wire form is an exact integer rather than a 16-digit-mantissa
// float, and who only need the decimal engine for one-off arithmetic
// (division, inversion) before converting back with Int64.
func FromInt64(v int64) Decimal {
	if v == 0 {
		return Zero()
	}
	sign := int8(1)
	u := uint64(v)
	if v < 0 {
		sign = -1
		u = uint64(-v)
	}
	return Decimal{sign: sign, coef: u, exp: 0}
}

// Int64 rounds d toward zero to an integer and returns it as an int64,
// reporting false if NaN or if the magnitude overflows int64.
func (d Decimal) Int64() (int64, bool) {
	if d.nan {
		return 0, false
	}
	r := d.Round(0, RoundDown)
	if r.nan {
		return 0, false
	}
	if r.IsZero() {
		return 0, true
	}
	if r.coef > 1<<63-1 {
		return 0, false
	}
	v := int64(r.coef)
	if r.sign < 0 {
		v = -v
	}
	return v, true
}

// New builds a canonicalized Decimal from sign/coefficient/exponent.
// sign must be -1, 0, or +1; a zero coefficient always yields the
// canonical zero regardless of sign or exponent.
func New(sign int8, coef uint64, exp int32) (Decimal, error) {
	if coef == 0 {
		return Zero(), nil
	}
	return canonicalize(sign, new(big.Int).SetUint64(coef), int64(exp))
}

// canonicalize re-normalizes coefBig*10^exp so the result's coefficient
// has exactly CanonicalDigits digits, truncating toward zero (never
// rounding up) when digits must be dropped. Values whose exponent would
// underflow MinExponent clamp to zero; values whose exponent would
// exceed MaxExponent fail with ErrOutOfRange.
func canonicalize(sign int8, coefBig *big.Int, exp int64) (Decimal, error) {
	if coefBig.Sign() == 0 {
		return Zero(), nil
	}
	digits := decimalDigits(coefBig)
	switch {
	case digits > CanonicalDigits:
		shift := digits - CanonicalDigits
		coefBig = new(big.Int).Quo(coefBig, pow10(shift))
		exp += int64(shift)
	case digits < CanonicalDigits:
		shift := CanonicalDigits - digits
		coefBig = new(big.Int).Mul(coefBig, pow10(shift))
		exp -= int64(shift)
	}
	if exp < MinExponent {
		return Zero(), nil
	}
	if exp > MaxExponent {
		return Decimal{}, ErrOutOfRange
	}
	if sign == 0 {
		sign = 1
	}
	return Decimal{sign: sign, coef: coefBig.Uint64(), exp: int32(exp)}, nil
}

// decimalDigits counts the decimal digits of n, which callers always
// pass as a non-negative magnitude.
func decimalDigits(n *big.Int) int {
	return len(n.Text(10))
}

var pow10Cache sync.Map // int -> *big.Int

func pow10(n int) *big.Int {
	if v, ok := pow10Cache.Load(n); ok {
		return v.(*big.Int)
	}
	v := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	actual, _ := pow10Cache.LoadOrStore(n, v)
	return actual.(*big.Int)
}

func (d Decimal) big() *big.Int {
	return new(big.Int).SetUint64(d.coef)
}

// Negate returns -d.
func (d Decimal) Negate() Decimal {
	if d.nan || d.sign == 0 {
		return d
	}
	return Decimal{sign: -d.sign, coef: d.coef, exp: d.exp}
}

// Abs returns |d|.
func (d Decimal) Abs() Decimal {
	if d.nan || d.sign >= 0 {
		return d
	}
	return Decimal{sign: 1, coef: d.coef, exp: d.exp}
}

// Add returns d + other.
func (d Decimal) Add(other Decimal) Decimal {
	if d.nan || other.nan {
		return NaN()
	}
	if d.IsZero() {
		return other
	}
	if other.IsZero() {
		return d
	}
	sum, exp := alignedSum(d, other, 1)
	res, err := canonicalize(signOf(sum), new(big.Int).Abs(sum), exp)
	if err != nil {
		return NaN()
	}
	return res
}

// Subtract returns d - other.
func (d Decimal) Subtract(other Decimal) Decimal {
	return d.Add(other.Negate())
}

func signOf(n *big.Int) int8 {
	switch n.Sign() {
	case -1:
		return -1
	case 1:
		return 1
	default:
		return 0
	}
}

// alignedSum scales both operands to the smaller of the two exponents
// and returns their signed big.Int sum, with b multiplied by `otherSign`
// (1 for Add; -1 for Compare, which needs a - b), together with the
// common exponent.
func alignedSum(a, b Decimal, otherSign int8) (*big.Int, int64) {
	expA, expB := int64(a.exp), int64(b.exp)
	av := new(big.Int).Mul(a.big(), big.NewInt(int64(a.sign)))
	bv := new(big.Int).Mul(b.big(), big.NewInt(int64(b.sign)*int64(otherSign)))
	switch {
	case expA == expB:
		return av.Add(av, bv), expA
	case expA < expB:
		bv.Mul(bv, pow10(int(expB-expA)))
		return av.Add(av, bv), expA
	default:
		av.Mul(av, pow10(int(expA-expB)))
		return av.Add(av, bv), expB
	}
}

// Multiply returns d * other.
func (d Decimal) Multiply(other Decimal) Decimal {
	if d.nan || other.nan {
		return NaN()
	}
	if d.IsZero() || other.IsZero() {
		return Zero()
	}
	coef := new(big.Int).Mul(d.big(), other.big())
	exp := int64(d.exp) + int64(other.exp)
	res, err := canonicalize(d.sign*other.sign, coef, exp)
	if err != nil {
		return NaN()
	}
	return res
}

// Divide returns d / other. Division by zero yields NaN rather than an
// error, matching the reference implementation's NaN-propagation
// behavior.
func (d Decimal) Divide(other Decimal) Decimal {
	if d.nan || other.nan || other.IsZero() {
		return NaN()
	}
	if d.IsZero() {
		return Zero()
	}
	scaled := new(big.Int).Mul(d.big(), pow10(extraDivPrecision))
	quotient := new(big.Int).Quo(scaled, other.big())
	exp := int64(d.exp) - int64(other.exp) - int64(extraDivPrecision)
	res, err := canonicalize(d.sign*other.sign, quotient, exp)
	if err != nil {
		return NaN()
	}
	return res
}

// Invert returns 1/d. Zero yields NaN.
func (d Decimal) Invert() Decimal {
	if d.nan {
		return NaN()
	}
	one, _ := New(1, 1, 0)
	return one.Divide(d)
}

// Equals reports value equality. NaN never equals anything, including
// itself.
func (d Decimal) Equals(other Decimal) bool {
	if d.nan || other.nan {
		return false
	}
	return d.Compare(other) == 0
}

// Compare returns -1, 0, or +1. Comparisons involving NaN return 0 as a
// sentinel; callers must check IsNaN before trusting the result (mirrors
// "invalid in, invalid out" propagation at the Amount layer).
func (d Decimal) Compare(other Decimal) int {
	if d.nan || other.nan {
		return 0
	}
	if d.IsZero() && other.IsZero() {
		return 0
	}
	diff, _ := alignedSum(d, other, -1)
	switch diff.Sign() {
	case 0:
		return 0
	case 1:
		return 1
	default:
		return -1
	}
}

// Round rescales d to exactly `places` fractional decimal digits
// (exponent -places), applying mode at the cut boundary. Round does not
// reapply 16-digit canonicalization; callers that need the canonical
// issued-value invariant re-run it through New/canonicalize explicitly.
func (d Decimal) Round(places int, mode RoundingMode) Decimal {
	if d.nan || d.IsZero() {
		return d
	}
	targetExp := int64(-places)
	diff := targetExp - int64(d.exp)
	coef := d.big()
	switch {
	case diff == 0:
		// already at target scale
	case diff < 0:
		coef.Mul(coef, pow10(int(-diff)))
	default:
		divisor := pow10(int(diff))
		rem := new(big.Int)
		coef, rem = coef.QuoRem(coef, divisor, rem)
		if mode == RoundHalfUp {
			twice := new(big.Int).Mul(rem, big.NewInt(2))
			if twice.CmpAbs(divisor) >= 0 {
				coef.Add(coef, big.NewInt(1))
			}
		}
	}
	if coef.Sign() == 0 {
		return Zero()
	}
	if !coef.IsUint64() {
		// The rescaled coefficient no longer fits the fixed-width form.
		return NaN()
	}
	return Decimal{sign: d.sign, coef: coef.Uint64(), exp: int32(targetExp)}
}

// ParseDecimal parses a plain decimal string ("123", "-1.50", "1.2e-5")
// into an unnormalized (sign, coefficient, exponent) triple and then
// canonicalizes it. It never returns the NaN state; malformed input is
// reported as ErrInvalidDecimal.
func ParseDecimal(s string) (Decimal, error) {
	sign, coefBig, exp, err := RawComponents(s)
	if err != nil {
		return Decimal{}, err
	}
	if coefBig.Sign() == 0 {
		return Zero(), nil
	}
	res, err := canonicalize(sign, coefBig, exp)
	if err != nil {
		return Decimal{}, err
	}
	return res, nil
}

// FromFloat64 converts a float64 into a canonicalized Decimal by
// round-tripping through its shortest decimal string representation.
// Used by callers that compute a factor via math.Exp/math.Log (the
// interest/demurrage formula) and need the result back in the
// protocol's canonical decimal form.
func FromFloat64(f float64) (Decimal, error) {
	return ParseDecimal(strconv.FormatFloat(f, 'g', -1, 64))
}

// RawComponents parses s into its sign, coefficient, and exponent without
// canonicalizing, so callers that must distinguish literal zero from a
// non-zero value that canonicalize would silently clamp to zero (an
// underflow below MinExponent) can inspect the pre-clamp magnitude
// themselves. CanonicalExponent reports what canonicalize would do with
// the result.
func RawComponents(s string) (sign int8, coef *big.Int, exp int64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil, 0, ErrInvalidDecimal
	}
	sign = 1
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" {
		return 0, nil, 0, ErrInvalidDecimal
	}
	mantissa := s
	if idx := strings.IndexAny(s, "eE"); idx >= 0 {
		mantissa = s[:idx]
		e, parseErr := strconv.ParseInt(s[idx+1:], 10, 32)
		if parseErr != nil {
			return 0, nil, 0, ErrInvalidDecimal
		}
		exp = e
	}
	intPart, fracPart := mantissa, ""
	if idx := strings.IndexByte(mantissa, '.'); idx >= 0 {
		intPart, fracPart = mantissa[:idx], mantissa[idx+1:]
	}
	digits := intPart + fracPart
	if digits == "" || !isAllDigits(digits) {
		return 0, nil, 0, ErrInvalidDecimal
	}
	exp -= int64(len(fracPart))
	coefBig := new(big.Int)
	if _, ok := coefBig.SetString(digits, 10); !ok {
		return 0, nil, 0, ErrInvalidDecimal
	}
	return sign, coefBig, exp, nil
}

// CanonicalExponent reports the exponent canonicalize would assign to a
// non-zero (coef, exp) pair after normalizing coef to CanonicalDigits
// digits, without clamping or erroring. Callers use this to detect an
// underflow/overflow before calling canonicalize discards the distinction
// between "genuinely zero" and "clamped to zero".
func CanonicalExponent(coef *big.Int, exp int64) int64 {
	digits := decimalDigits(coef)
	switch {
	case digits > CanonicalDigits:
		return exp + int64(digits-CanonicalDigits)
	case digits < CanonicalDigits:
		return exp - int64(CanonicalDigits-digits)
	default:
		return exp
	}
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String renders d in scientific "<signed-coefficient>e<exponent>" form.
func (d Decimal) String() string {
	if d.nan {
		return "NaN"
	}
	if d.IsZero() {
		return "0"
	}
	sign := ""
	if d.sign < 0 {
		sign = "-"
	}
	return sign + strconv.FormatUint(d.coef, 10) + "e" + strconv.FormatInt(int64(d.exp), 10)
}

// ToFixed renders d as a fixed-point decimal string with exactly
// `places` digits after the decimal point, truncating toward zero.
func (d Decimal) ToFixed(places int) string {
	if d.nan {
		return "NaN"
	}
	r := d.Round(places, RoundDown)
	if r.nan {
		return "NaN"
	}
	coefStr := strconv.FormatUint(r.coef, 10)
	if places <= 0 {
		if r.sign < 0 && !r.IsZero() {
			return "-" + coefStr
		}
		return coefStr
	}
	for len(coefStr) <= places {
		coefStr = "0" + coefStr
	}
	intPart := coefStr[:len(coefStr)-places]
	fracPart := coefStr[len(coefStr)-places:]
	out := intPart + "." + fracPart
	if r.sign < 0 && !r.IsZero() {
		out = "-" + out
	}
	return out
}
