// Package amount implements the tagged-union Amount entity: a native
// (XRP, exact drops) or issued (IOU, 16-digit canonical decimal) value
// paired with a currency and issuer. It generalizes the teacher's
// internal/core/tx/sle.Amount — a plain JSON DTO of
// {Value, Currency, Issuer, Native} strings — into the decimal-backed,
// arithmetic-capable entity this protocol actually computes with, while
// keeping that DTO's IsNative naming and its "native iff no
// currency/issuer" JSON shape; JSON conversion is done by FromJSON and
// ToJSON.
package amount

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/chainlane/xrplcore/internal/core/currency"
	"github.com/chainlane/xrplcore/internal/core/decimal"
	"github.com/chainlane/xrplcore/internal/core/issuedvalue"
	"github.com/chainlane/xrplcore/internal/core/nativevalue"
	"github.com/chainlane/xrplcore/internal/core/xrplid"
)

// ErrInvalidArgument covers malformed from_json/from_human input shapes.
var ErrInvalidArgument = errors.New("amount: invalid argument")

// ErrNotComparable is returned by CompareTo when the two operands are
// not both native or both issued, or either is invalid.
var ErrNotComparable = errors.New("amount: operands are not comparable")

// Amount is a tagged union over NativeValue and IssuedValue, matching
// spec.md's { is_native, value, currency, issuer } shape. The zero
// value is the invalid/NaN amount: IsValid reports false and every
// arithmetic method propagates it without panicking.
type Amount struct {
	valid    bool
	isNative bool
	nv       nativevalue.Value
	iv       issuedvalue.Value
	cur      currency.Currency
	issuer   xrplid.UInt160
}

// Invalid returns the distinguished invalid Amount that all malformed
// parses and incomparable operations propagate.
func Invalid() Amount { return Amount{} }

// IsValid reports whether a was built through a successful constructor.
func (a Amount) IsValid() bool { return a.valid }

// IsNative reports the is_native tag: whether a's value is stored as a
// NativeValue (exact drops) rather than an IssuedValue (16-digit
// canonical decimal). RatioHuman/ProductHuman can produce an Amount
// whose IsNative() is false while Currency().IsNative() is true (see
// their doc comments) — the two are deliberately independent fields.
func (a Amount) IsNative() bool { return a.valid && a.isNative }

// Currency returns a's currency tag.
func (a Amount) Currency() currency.Currency { return a.cur }

// Issuer returns a's issuer tag.
func (a Amount) Issuer() xrplid.UInt160 { return a.issuer }

// IsZero reports whether a's magnitude is zero. An invalid Amount is
// never zero.
func (a Amount) IsZero() bool {
	if !a.valid {
		return false
	}
	if a.isNative {
		return a.nv.IsZero()
	}
	return a.iv.IsZero()
}

// Drops returns a native Amount's exact magnitude in drops, mirroring
// the teacher's XRPAmount.Drops(). ok is false for an invalid or issued
// Amount.
func (a Amount) Drops() (drops int64, ok bool) {
	if !a.valid || !a.isNative {
		return 0, false
	}
	return a.nv.Drops(), true
}

// DecimalXRP returns a native Amount's magnitude in whole XRP, mirroring
// the teacher's XRPAmount.DecimalXRP() but keeping full decimal
// precision instead of rounding through a float64. ok is false for an
// invalid or issued Amount.
func (a Amount) DecimalXRP() (xrp decimal.Decimal, ok bool) {
	if !a.valid || !a.isNative {
		return decimal.Decimal{}, false
	}
	return a.nv.Decimal().Divide(decimal.FromInt64(1_000_000)), true
}

// decimalValue returns a's magnitude as a decimal.Decimal, regardless of
// variant, for the cross-variant computations RatioHuman/ProductHuman
// and the formatting helpers need.
func (a Amount) decimalValue() decimal.Decimal {
	if a.isNative {
		return a.nv.Decimal()
	}
	return a.iv.Decimal()
}

// NativeFromDrops builds a native Amount from an exact integer drops
// count.
func NativeFromDrops(drops int64) (Amount, error) {
	v, err := nativevalue.FromDrops(drops)
	if err != nil {
		return Amount{}, err
	}
	return Amount{valid: true, isNative: true, nv: v, cur: currency.Native(), issuer: xrplid.NativeUInt160()}, nil
}

// NativeFromXRP builds a native Amount from a decimal XRP quantity
// (e.g. "25.2"), converting to drops and rounding toward zero.
func NativeFromXRP(xrp decimal.Decimal) (Amount, error) {
	v, err := nativevalue.FromXRP(xrp)
	if err != nil {
		return Amount{}, err
	}
	return Amount{valid: true, isNative: true, nv: v, cur: currency.Native(), issuer: xrplid.NativeUInt160()}, nil
}

// Issued builds an issued Amount from a decimal value, currency, and
// issuer. An invalid (zero-value) issuer is replaced with the reserved
// "no issuer" sentinel.
func Issued(value decimal.Decimal, cur currency.Currency, issuer xrplid.UInt160) (Amount, error) {
	v, err := issuedvalue.New(value)
	if err != nil {
		return Amount{}, err
	}
	if !issuer.IsValid() {
		issuer = xrplid.NoIssuerUInt160()
	}
	return Amount{valid: true, isNative: false, iv: v, cur: cur, issuer: issuer}, nil
}

// IssuedParse is Issued, parsing value from a decimal string.
func IssuedParse(value string, cur currency.Currency, issuer xrplid.UInt160) (Amount, error) {
	v, err := issuedvalue.Parse(value)
	if err != nil {
		return Amount{}, err
	}
	if !issuer.IsValid() {
		issuer = xrplid.NoIssuerUInt160()
	}
	return Amount{valid: true, isNative: false, iv: v, cur: cur, issuer: issuer}, nil
}

// FromNumber builds an Amount directly from a decimal magnitude and an
// explicit variant/currency/issuer, for callers that already know the
// shape they want rather than needing from_json's shape inference.
func FromNumber(isNative bool, value decimal.Decimal, cur currency.Currency, issuer xrplid.UInt160) (Amount, error) {
	if isNative {
		drops, ok := value.Int64()
		if !ok {
			return Amount{}, ErrInvalidArgument
		}
		return NativeFromDrops(drops)
	}
	return Issued(value, cur, issuer)
}

// FromJSON implements spec.md §4.5's from_json coercion: an integer or
// numeric string becomes a native drops amount; a "value/currency[/issuer]"
// shorthand string or an object with a "value" field becomes an issued
// amount.
func FromJSON(value any) (Amount, error) {
	switch v := value.(type) {
	case int:
		return NativeFromDrops(int64(v))
	case int64:
		return NativeFromDrops(v)
	case float64:
		if v != math.Trunc(v) {
			return Amount{}, ErrInvalidArgument
		}
		return NativeFromDrops(int64(v))
	case string:
		return fromJSONString(v)
	case map[string]any:
		return fromJSONObject(v)
	default:
		return Amount{}, ErrInvalidArgument
	}
}

func fromJSONString(s string) (Amount, error) {
	if valuePart, curPart, issuerPart, ok := splitShorthand(s); ok {
		cur, err := currency.FromHuman(curPart)
		if err != nil {
			return Amount{}, err
		}
		issuer := xrplid.NoIssuerUInt160()
		if issuerPart != "" {
			issuer, err = xrplid.UInt160FromJSON(issuerPart)
			if err != nil {
				return Amount{}, err
			}
		}
		return IssuedParse(valuePart, cur, issuer)
	}
	if strings.Contains(s, ".") {
		return Amount{}, ErrInvalidArgument
	}
	drops, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Amount{}, ErrInvalidArgument
	}
	return NativeFromDrops(drops)
}

// splitShorthand parses "<value>/<currency>[/<issuer>]", matching
// spec.md's `^[^/]+/[^/]+(?:/.+)?$`.
func splitShorthand(s string) (value, curCode, issuerAddr string, ok bool) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", false
	}
	value = parts[0]
	curCode = parts[1]
	if len(parts) == 3 {
		if parts[2] == "" {
			return "", "", "", false
		}
		issuerAddr = parts[2]
	}
	return value, curCode, issuerAddr, true
}

func fromJSONObject(obj map[string]any) (Amount, error) {
	valueRaw, ok := obj["value"]
	if !ok {
		return Amount{}, ErrInvalidArgument
	}
	valueStr, ok := valueRaw.(string)
	if !ok {
		return Amount{}, ErrInvalidArgument
	}
	curRaw, _ := obj["currency"].(string)
	if curRaw == "" || strings.EqualFold(curRaw, "XRP") {
		return Amount{}, ErrInvalidArgument
	}
	cur, err := currency.FromHuman(curRaw)
	if err != nil {
		return Amount{}, err
	}
	issuer := xrplid.NoIssuerUInt160()
	if issuerRaw, ok := obj["issuer"].(string); ok && issuerRaw != "" {
		issuer, err = xrplid.UInt160FromJSON(issuerRaw)
		if err != nil {
			return Amount{}, err
		}
	}
	return IssuedParse(valueStr, cur, issuer)
}

// ToJSON renders a in the canonical wire shape: a decimal drops string
// for native amounts, or { value, currency, issuer } for issued ones.
func (a Amount) ToJSON() any {
	if !a.valid {
		return nil
	}
	if a.isNative {
		return strconv.FormatInt(a.nv.Drops(), 10)
	}
	return map[string]string{
		"value":    issuedValueText(a.iv),
		"currency": a.cur.ToHuman(),
		"issuer":   issuerAddress(a.issuer),
	}
}

func issuerAddress(issuer xrplid.UInt160) string {
	addr, err := issuer.ToBase58()
	if err != nil {
		return issuer.Hex()
	}
	return addr
}

// comparable reports whether a and b can be compared/combined
// arithmetically: both valid and both the same is_native variant.
func comparable(a, b Amount) bool {
	return a.valid && b.valid && a.isNative == b.isNative
}

// Add returns a + other, or Invalid() if the operands are not
// comparable.
func (a Amount) Add(other Amount) Amount {
	if !comparable(a, other) {
		return Invalid()
	}
	if a.isNative {
		return Amount{valid: true, isNative: true, nv: a.nv.Add(other.nv), cur: a.cur, issuer: a.issuer}
	}
	return Amount{valid: true, iv: a.iv.Add(other.iv), cur: a.cur, issuer: a.issuer}
}

// Subtract returns a - other, or Invalid() if not comparable.
func (a Amount) Subtract(other Amount) Amount {
	if !comparable(a, other) {
		return Invalid()
	}
	if a.isNative {
		return Amount{valid: true, isNative: true, nv: a.nv.Subtract(other.nv), cur: a.cur, issuer: a.issuer}
	}
	return Amount{valid: true, iv: a.iv.Subtract(other.iv), cur: a.cur, issuer: a.issuer}
}

// Multiply returns a * other, or Invalid() if not comparable. Native
// results round toward zero to the nearest drop, per NativeValue.Multiply.
func (a Amount) Multiply(other Amount) Amount {
	if !comparable(a, other) {
		return Invalid()
	}
	if a.isNative {
		result := a.nv.Multiply(other.nv.Decimal())
		if result.IsNaN() {
			return Invalid()
		}
		return Amount{valid: true, isNative: true, nv: result, cur: a.cur, issuer: a.issuer}
	}
	result := a.iv.Multiply(other.iv)
	if result.IsNaN() {
		return Invalid()
	}
	return Amount{valid: true, iv: result, cur: a.cur, issuer: a.issuer}
}

// Divide returns a / other, or Invalid() if not comparable or other is
// zero.
func (a Amount) Divide(other Amount) Amount {
	if !comparable(a, other) || other.IsZero() {
		return Invalid()
	}
	if a.isNative {
		result := a.nv.Divide(other.nv)
		if result.IsNaN() {
			return Invalid()
		}
		return Amount{valid: true, isNative: true, nv: result, cur: a.cur, issuer: a.issuer}
	}
	result := a.iv.Divide(other.iv)
	if result.IsNaN() {
		return Invalid()
	}
	return Amount{valid: true, iv: result, cur: a.cur, issuer: a.issuer}
}

// Negate returns -a.
func (a Amount) Negate() Amount {
	if !a.valid {
		return Invalid()
	}
	if a.isNative {
		return Amount{valid: true, isNative: true, nv: a.nv.Negate(), cur: a.cur, issuer: a.issuer}
	}
	return Amount{valid: true, iv: a.iv.Negate(), cur: a.cur, issuer: a.issuer}
}

// Abs returns |a|.
func (a Amount) Abs() Amount {
	if !a.valid {
		return Invalid()
	}
	if a.isNative {
		return Amount{valid: true, isNative: true, nv: a.nv.Abs(), cur: a.cur, issuer: a.issuer}
	}
	return Amount{valid: true, iv: a.iv.Abs(), cur: a.cur, issuer: a.issuer}
}

// Invert returns 1/a.
func (a Amount) Invert() Amount {
	if !a.valid || a.IsZero() {
		return Invalid()
	}
	if a.isNative {
		result := a.nv.Invert()
		if result.IsNaN() {
			return Invalid()
		}
		return Amount{valid: true, isNative: true, nv: result, cur: a.cur, issuer: a.issuer}
	}
	result := a.iv.Invert()
	if result.IsNaN() {
		return Invalid()
	}
	return Amount{valid: true, iv: result, cur: a.cur, issuer: a.issuer}
}

// CompareTo returns -1/0/+1, or ErrNotComparable if a and other are not
// both valid and the same variant.
func (a Amount) CompareTo(other Amount) (int, error) {
	if !comparable(a, other) {
		return 0, ErrNotComparable
	}
	if a.isNative {
		return a.nv.Compare(other.nv), nil
	}
	return a.iv.Compare(other.iv), nil
}

// Equals reports value equality under the same rules as CompareTo,
// returning false (never panicking) for incomparable operands.
func (a Amount) Equals(other Amount) bool {
	cmp, err := a.CompareTo(other)
	return err == nil && cmp == 0
}

// InterestOpts parametrizes the present/future-value interest
// adjustment RatioHuman, ProductHuman, and FromHuman apply.
type InterestOpts struct {
	ReferenceDate *int64
}

// interestAdjustedDecimal returns value divided by cur's interest factor
// at opts.ReferenceDate (present value), or value unchanged if no
// reference date is given or cur carries no interest.
func interestAdjustedDecimal(value decimal.Decimal, cur currency.Currency, opts InterestOpts) (decimal.Decimal, error) {
	if opts.ReferenceDate == nil || !cur.HasInterest() {
		return value, nil
	}
	factor, err := cur.GetInterestAt(*opts.ReferenceDate)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if factor.IsZero() {
		return value, nil
	}
	return value.Divide(factor), nil
}

// RatioHuman computes a / denominator for human-scale comparisons
// (order-book pricing, present-value ratios), not wire arithmetic:
// 1. Either side invalid, or denominator zero, yields Invalid().
// 2. If opts.ReferenceDate is set, interest is applied to the
//    denominator only; the numerator's unit carries through unchanged.
// 3. If the denominator is native, the numerator is scaled by 10^6
//    first to compensate for the drops-vs-XRP unit mismatch.
// The quotient is always computed and stored as an IssuedValue — an
// IOU-typed intermediary — even when both operands are native, but the
// result's currency and issuer are always copied from the numerator.
// This means IsNative() on the result can be false while
// Currency().IsNative() is true; see spec.md's open design note on this
// asymmetry.
func (a Amount) RatioHuman(denominator Amount, opts InterestOpts) Amount {
	if !a.valid || !denominator.valid || denominator.IsZero() {
		return Invalid()
	}
	denomValue, err := interestAdjustedDecimal(denominator.decimalValue(), denominator.cur, opts)
	if err != nil {
		return Invalid()
	}
	numValue := a.decimalValue()
	if denominator.isNative {
		numValue = numValue.Multiply(decimal.FromInt64(nativevalue.DropsPerXRP))
	}
	quotient := numValue.Divide(denomValue)
	v, err := issuedvalue.New(quotient)
	if err != nil {
		return Invalid()
	}
	return Amount{valid: true, isNative: false, iv: v, cur: a.cur, issuer: a.issuer}
}

// ProductHuman computes a * factor for human-scale use, mirroring
// RatioHuman: interest applies to factor only, and if factor is native
// the raw product is divided by 10^6 afterward to undo the drops scale.
// Like RatioHuman, the result is always an IOU-typed intermediary
// carrying a's currency and issuer.
func (a Amount) ProductHuman(factor Amount, opts InterestOpts) Amount {
	if !a.valid || !factor.valid {
		return Invalid()
	}
	factorValue, err := interestAdjustedDecimal(factor.decimalValue(), factor.cur, opts)
	if err != nil {
		return Invalid()
	}
	product := a.decimalValue().Multiply(factorValue)
	if factor.isNative {
		product = product.Divide(decimal.FromInt64(nativevalue.DropsPerXRP))
	}
	v, err := issuedvalue.New(product)
	if err != nil {
		return Invalid()
	}
	return Amount{valid: true, isNative: false, iv: v, cur: a.cur, issuer: a.issuer}
}

func issuedValueText(v issuedvalue.Value) string {
	return FixedPointOrScientific(v.Decimal())
}
