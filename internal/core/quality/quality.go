// Package quality implements the order-book directory's 64-bit quality
// codec: the ratio TakerPays/TakerGets packed as a biased exponent byte
// plus a 7-byte big-endian mantissa, the low 64 bits of a book directory
// index. It generalizes the teacher's internal/core/tx/sle.GetRate/
// normalizeForQuality (which derive the same packed form from a
// big.Float) into a decoder/encoder built directly on this module's own
// canonical decimal.Decimal, since IssuedValue already carries a
// 16-digit mantissa at a bounded exponent — exactly the shape the wire
// format expects, with no big.Float normalization step needed.
package quality

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/chainlane/xrplcore/internal/core/amount"
	"github.com/chainlane/xrplcore/internal/core/currency"
	"github.com/chainlane/xrplcore/internal/core/decimal"
	"github.com/chainlane/xrplcore/internal/core/xrplid"
)

// qualityExponentBias is the offset added to a quality's true decimal
// exponent before it is packed into the wire byte, matching the
// teacher's GetRate/normalizeForQuality packing
// ((exponent+100)<<56 | mantissa).
const qualityExponentBias = 100

// ErrInvalidArgument covers malformed quality hex and the XRP/XRP pair,
// which spec.md §4.6 treats as a programmer error rather than a parse
// failure.
var ErrInvalidArgument = errors.New("quality: invalid argument")

// QualityOpts parametrizes ParseQuality, mirroring spec.md §4.6's
// option set. BaseCurrency describes the order book's base asset — the
// asset the quality is a per-unit price OF — and defaults to the
// native asset (XRP) when left nil, the overwhelmingly common case for
// a book paired against XRP; BaseIssuer is ignored when BaseCurrency is
// native.
type QualityOpts struct {
	// Inverse turns a sell-side quality into a bid price by inverting
	// the decoded ratio before any native-asset scaling is applied.
	Inverse bool
	// XRPAsDrops suppresses the 10^6 native-scaling adjustment (step 4),
	// leaving the raw per-drop price untouched.
	XRPAsDrops bool
	// ReferenceDate applies the base currency's interest factor (as of
	// this Unix-seconds timestamp) to the decoded price, present-value
	// style, when the base currency carries one.
	ReferenceDate *int64
	// BaseCurrency is the order book's base asset. Nil means native
	// (XRP).
	BaseCurrency *currency.Currency
	BaseIssuer   xrplid.UInt160
}

func (o QualityOpts) baseCurrency() currency.Currency {
	if o.BaseCurrency != nil {
		return *o.BaseCurrency
	}
	return currency.Native()
}

// decodeRaw slices the last 16 hex characters of qualityHex (a bare
// quality or a full 64-hex-char directory index) and reconstructs the
// IssuedValue-shaped decimal mantissa × 10^(exponent-100) it encodes,
// per spec.md §4.6 steps 1-2.
func decodeRaw(qualityHex string) (decimal.Decimal, error) {
	s := strings.TrimSpace(qualityHex)
	if len(s) < 16 {
		return decimal.Decimal{}, ErrInvalidArgument
	}
	s = s[len(s)-16:]
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 8 {
		return decimal.Decimal{}, ErrInvalidArgument
	}
	expByte := raw[0]
	var mantissa uint64
	for _, b := range raw[1:] {
		mantissa = mantissa<<8 | uint64(b)
	}
	exp := int32(expByte) - qualityExponentBias
	if mantissa == 0 {
		return decimal.Zero(), nil
	}
	return decimal.New(1, mantissa, exp)
}

// ParseQuality decodes a packed quality into the price of one unit of
// the base asset, denominated in counterCurrency/counterIssuer, per
// spec.md §4.6's six-step decode algorithm.
func ParseQuality(qualityHex string, counterCurrency currency.Currency, counterIssuer xrplid.UInt160, opts QualityOpts) (amount.Amount, error) {
	base := opts.baseCurrency()
	if base.IsNative() && counterCurrency.IsNative() {
		return amount.Invalid(), ErrInvalidArgument
	}

	value, err := decodeRaw(qualityHex)
	if err != nil {
		return amount.Invalid(), err
	}

	if opts.Inverse && !value.IsZero() {
		value = value.Invert()
	}

	if !opts.XRPAsDrops {
		switch {
		case counterCurrency.IsNative():
			value = value.Divide(decimal.FromInt64(1_000_000))
		case base.IsNative():
			value = value.Multiply(decimal.FromInt64(1_000_000))
		}
	}

	if opts.ReferenceDate != nil && base.HasInterest() {
		factor, err := base.GetInterestAt(*opts.ReferenceDate)
		if err != nil {
			return amount.Invalid(), err
		}
		if !factor.IsZero() {
			value = value.Divide(factor)
		}
	}

	if counterCurrency.IsNative() {
		return amount.NativeFromXRP(value)
	}
	return amount.Issued(value, counterCurrency, counterIssuer)
}

// EncodeQuality packs price — already the canonical IssuedValue-style
// decimal this package's own decimal engine produces — into the 16-hex
// wire form, the inverse of decodeRaw. It performs none of
// ParseQuality's native-asset scaling or interest adjustment: it is the
// pure numeric codec spec.md §8's quality-symmetry property exercises
// (decode(encode(price)) = price for a non-native/non-native pair).
func EncodeQuality(price decimal.Decimal) (string, error) {
	if price.IsNaN() || price.IsZero() {
		return "", ErrInvalidArgument
	}
	if price.IsNegative() {
		return "", ErrInvalidArgument
	}
	exp := price.Exponent() + qualityExponentBias
	if exp < 0 || exp > 255 {
		return "", ErrInvalidArgument
	}
	mantissa := price.Coefficient()
	if mantissa > 0xFFFFFFFFFFFFFF {
		return "", ErrInvalidArgument
	}
	return fmt.Sprintf("%02X%014X", byte(exp), mantissa), nil
}
