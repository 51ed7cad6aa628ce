package amount

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/chainlane/xrplcore/internal/core/currency"
	"github.com/chainlane/xrplcore/internal/core/decimal"
	"github.com/chainlane/xrplcore/internal/core/xrplid"
)

// ToText renders a in the wire text used outside JSON: native amounts
// as an integer drops string, issued amounts via FixedPointOrScientific.
func (a Amount) ToText() string {
	if !a.valid {
		return "NaN"
	}
	if a.isNative {
		return strconv.FormatInt(a.nv.Drops(), 10)
	}
	return FixedPointOrScientific(a.iv.Decimal())
}

// FixedPointOrScientific implements spec.md §4.7's issued-value wire
// text: scientific notation ("<mantissa>e<exp>") when the canonical
// exponent falls outside [-25, -4] and isn't zero, otherwise a
// fixed-point decimal assembled by positioning the 16-digit mantissa
// within the implied offset-43 character window (here done digit-string
// arithmetic instead of rippled's fixed 43-byte buffer, to the same
// effect) with trailing fractional zeros trimmed.
func FixedPointOrScientific(d decimal.Decimal) string {
	if d.IsNaN() {
		return "NaN"
	}
	if d.IsZero() {
		return "0"
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	mantissa := strconv.FormatUint(d.Coefficient(), 10)
	exp := int(d.Exponent())

	if exp != 0 && (exp < -25 || exp > -4) {
		return sign + mantissa + "e" + strconv.Itoa(exp)
	}

	intPart, fracPart := splitMantissa(mantissa, exp)
	fracPart = strings.TrimRight(fracPart, "0")
	if fracPart == "" {
		return sign + intPart
	}
	return sign + intPart + "." + fracPart
}

// splitMantissa places a decimal.CanonicalDigits-digit mantissa at
// exponent exp into (integer part, fraction part) strings.
func splitMantissa(mantissa string, exp int) (intPart, fracPart string) {
	if exp == 0 {
		return mantissa, ""
	}
	if exp > 0 {
		return mantissa + strings.Repeat("0", exp), ""
	}
	negExp := -exp
	digits := len(mantissa)
	if negExp >= digits {
		return "0", strings.Repeat("0", negExp-digits) + mantissa
	}
	split := digits - negExp
	return mantissa[:split], mantissa[split:]
}

// ToHumanOpts parametrizes ToHuman's formatting, mirroring spec.md
// §4.7's option set. The zero value is not directly usable; start from
// DefaultToHumanOpts.
type ToHumanOpts struct {
	// Precision caps fractional digits, rounding half-up at the cut and
	// propagating any carry into the integer part. Nil means unlimited.
	Precision *int
	// MinPrecision zero-pads the fraction up to this many digits.
	MinPrecision int
	// SkipEmptyFraction suppresses ".000..." when the (post-rounding)
	// fraction is all zeros.
	SkipEmptyFraction bool
	// MaxSigDigits caps total significant digits, trimming only the
	// fractional part; an integer part of "0" doesn't count its digits,
	// and leading fractional zeros are skipped before counting.
	MaxSigDigits *int
	// GroupSep separates GroupWidth-digit groups in the integer part.
	GroupSep string
	// DisableGrouping turns off GroupSep entirely (spec.md's
	// group_sep=false).
	DisableGrouping bool
	GroupWidth      int
	// DisableSigned suppresses the "-" prefix on negative values.
	DisableSigned bool
	ReferenceDate *int64
}

// DefaultToHumanOpts returns spec.md's documented defaults:
// group_sep "," every 3 digits, no precision cap, signed prefix shown.
func DefaultToHumanOpts() ToHumanOpts {
	return ToHumanOpts{GroupSep: ",", GroupWidth: 3}
}

// ToHuman renders a's magnitude in XRP (native) or currency units
// (issued) under opts, per spec.md §4.7.
func (a Amount) ToHuman(opts ToHumanOpts) string {
	if !a.valid {
		return "NaN"
	}
	value := a.decimalValue()
	if a.isNative {
		value = value.Divide(decimal.FromInt64(1_000_000))
	}
	if opts.ReferenceDate != nil && a.cur.HasInterest() {
		if factor, err := a.cur.GetInterestAt(*opts.ReferenceDate); err == nil && !factor.IsZero() {
			value = value.Multiply(factor)
		}
	}
	return formatHuman(value, opts)
}

func formatHuman(value decimal.Decimal, opts ToHumanOpts) string {
	if value.IsNaN() {
		return "NaN"
	}
	negative := value.IsNegative()
	intPart, fracPart := fullDigits(value)
	fracPart = strings.TrimRight(fracPart, "0")

	if opts.Precision != nil {
		intPart, fracPart = roundFraction(intPart, fracPart, *opts.Precision)
	}
	if opts.MaxSigDigits != nil {
		fracPart = trimToSigDigits(intPart, fracPart, *opts.MaxSigDigits)
	}

	skip := opts.SkipEmptyFraction && isAllZero(fracPart)
	if !skip && len(fracPart) < opts.MinPrecision {
		fracPart += strings.Repeat("0", opts.MinPrecision-len(fracPart))
	}
	if skip {
		fracPart = ""
	}

	if !opts.DisableGrouping {
		width := opts.GroupWidth
		if width <= 0 {
			width = 3
		}
		sep := opts.GroupSep
		if sep == "" {
			sep = ","
		}
		intPart = groupDigits(intPart, sep, width)
	}

	sign := ""
	if negative && !opts.DisableSigned {
		sign = "-"
	}
	if fracPart == "" {
		return sign + intPart
	}
	return sign + intPart + "." + fracPart
}

// fullDigits renders value's full (unbounded) integer and fraction
// digit strings, unlike splitMantissa which only ever sees a fixed
// 16-digit mantissa; value here may already have been scaled (divided
// by 1e6, multiplied by an interest factor) so its coefficient is once
// again a canonical 16-digit mantissa at a new exponent.
func fullDigits(value decimal.Decimal) (intPart, fracPart string) {
	if value.IsZero() {
		return "0", ""
	}
	mantissa := strconv.FormatUint(value.Coefficient(), 10)
	return splitMantissa(mantissa, int(value.Exponent()))
}

// roundFraction rounds (intPart.fracPart) to precision fractional
// digits, half-up, propagating any carry into intPart.
func roundFraction(intPart, fracPart string, precision int) (string, string) {
	if precision < 0 {
		precision = 0
	}
	if len(fracPart) <= precision {
		return intPart, fracPart
	}
	combined := intPart + fracPart
	keep := len(intPart) + precision
	dropped := len(combined) - keep

	bigVal := new(big.Int)
	bigVal.SetString(combined, 10)
	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(dropped)), nil)
	quotient, remainder := new(big.Int).QuoRem(bigVal, divisor, new(big.Int))
	twice := new(big.Int).Mul(remainder, big.NewInt(2))
	if twice.Cmp(divisor) >= 0 {
		quotient.Add(quotient, big.NewInt(1))
	}

	digits := quotient.String()
	for len(digits) <= precision {
		digits = "0" + digits
	}
	if precision == 0 {
		return digits, ""
	}
	split := len(digits) - precision
	return digits[:split], digits[split:]
}

// trimToSigDigits enforces spec.md's max_sig_digits rule: the integer
// part's digits always count (unless it's "0", which counts nothing),
// and only the fractional part is ever shortened.
func trimToSigDigits(intPart, fracPart string, maxSigDigits int) string {
	if maxSigDigits < 0 {
		maxSigDigits = 0
	}
	if intPart != "0" {
		budget := maxSigDigits - len(intPart)
		if budget < 0 {
			budget = 0
		}
		if len(fracPart) > budget {
			return fracPart[:budget]
		}
		return fracPart
	}
	leadingZeros := 0
	for leadingZeros < len(fracPart) && fracPart[leadingZeros] == '0' {
		leadingZeros++
	}
	keep := leadingZeros + maxSigDigits
	if keep < len(fracPart) {
		return fracPart[:keep]
	}
	return fracPart
}

func isAllZero(s string) bool {
	for _, r := range s {
		if r != '0' {
			return false
		}
	}
	return true
}

func groupDigits(digits, sep string, width int) string {
	if len(digits) <= width {
		return digits
	}
	var b strings.Builder
	firstGroup := len(digits) % width
	if firstGroup == 0 {
		firstGroup = width
	}
	b.WriteString(digits[:firstGroup])
	for i := firstGroup; i < len(digits); i += width {
		b.WriteString(sep)
		b.WriteString(digits[i : i+width])
	}
	return b.String()
}

// humanToken reports whether s parses as a plain decimal number (the
// tokens FromHuman must distinguish from currency codes).
func humanToken(s string) bool {
	_, _, _, err := decimal.RawComponents(s)
	return err == nil
}

func isHex160Token(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// FromHuman implements spec.md §4.7's from_human parser: tokenize on
// spaces, then dispatch on the resulting shape (a bare number; a number
// glued to a 3-character code; or two tokens in any (number, code) /
// (code, number) / (number, hex160) order).
func FromHuman(s string, opts InterestOpts) (Amount, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		tok := fields[0]
		if humanToken(tok) {
			return nativeFromHumanToken(tok)
		}
		if len(tok) > 3 && humanToken(tok[:len(tok)-3]) {
			return issuedFromHumanTokens(tok[:len(tok)-3], tok[len(tok)-3:], opts)
		}
		return Amount{}, ErrInvalidArgument
	case 2:
		a, b := fields[0], fields[1]
		switch {
		case humanToken(a) && (isHex160Token(b) || !humanToken(b)):
			return issuedFromHumanTokens(a, b, opts)
		case !humanToken(a) && humanToken(b):
			return issuedFromHumanTokens(b, a, opts)
		default:
			return Amount{}, ErrInvalidArgument
		}
	default:
		return Amount{}, ErrInvalidArgument
	}
}

func nativeFromHumanToken(valueTok string) (Amount, error) {
	d, err := decimal.ParseDecimal(valueTok)
	if err != nil {
		return Amount{}, err
	}
	return NativeFromXRP(d)
}

func issuedFromHumanTokens(valueTok, codeTok string, opts InterestOpts) (Amount, error) {
	code := strings.ToUpper(codeTok)
	if code == "XRP" {
		return nativeFromHumanToken(valueTok)
	}
	cur, err := currency.FromHuman(code)
	if err != nil {
		return Amount{}, err
	}
	value, err := decimal.ParseDecimal(valueTok)
	if err != nil {
		return Amount{}, err
	}
	value, err = interestAdjustedDecimal(value, cur, opts)
	if err != nil {
		return Amount{}, err
	}
	return Issued(value, cur, xrplid.NoIssuerUInt160())
}
