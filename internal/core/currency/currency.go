// Package currency implements the three-variant Currency identifier: the
// native-asset sentinel, a 3-character ISO-like code, and a 160-bit custom
// code that may carry a continuous interest/demurrage schedule. It
// generalizes internal/core/xrplid.UInt160 (the bare fixed-width container)
// into the typed, human-formattable value spec.md §4.4 describes, the way
// internal/core/nativevalue.Value wraps a bare int64 of drops.
package currency

import (
	"errors"
	"math"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chainlane/xrplcore/internal/core/decimal"
	"github.com/chainlane/xrplcore/internal/core/xrplid"
)

// RippleEpochOffset is the number of seconds between the Unix epoch
// (1970-01-01T00:00:00Z) and the network's own epoch
// (2000-01-01T00:00:00Z). Reference dates handed to GetInterestAt are
// Unix seconds and are converted to network time by subtracting this.
const RippleEpochOffset int64 = 946684800

// demurrageType is the tag byte at offset 0 of a Demurrage currency's
// 160-bit code, distinguishing it from a plain custom (non-interest-
// bearing) 160-bit code, whose tag byte is 0.
const demurrageType byte = 0x01

// ErrInvalidCode is returned when an ISO or demurrage code is not
// exactly three characters from isoCodeRegex's set.
var ErrInvalidCode = errors.New("currency: invalid currency code")

// ErrNoInterest is returned by GetInterestAt on a currency that does not
// carry an interest/demurrage schedule.
var ErrNoInterest = errors.New("currency: currency has no interest schedule")

// isoCodeRegex matches rippled's allowed standard-format currency code
// character set (ISO 4217-ish 3-letter codes, but any ASCII letter or
// digit and the symbols ?!@#$%^&*<>(){}[]| are accepted per the wire
// format — only "XRP" itself is reserved).
var isoCodeRegex = regexp.MustCompile(`^[A-Za-z0-9?!@#$%^&*<>(){}\[\]|]{3}$`)

// Variant identifies which of the three Currency shapes a value holds.
type Variant uint8

const (
	VariantNative Variant = iota
	VariantISO
	VariantDemurrage
)

// Currency is an immutable 160-bit currency identifier, optionally
// carrying a continuous interest or demurrage schedule.
type Currency struct {
	variant Variant
	code    xrplid.UInt160
	iso     string // populated only for VariantISO, upper-cased

	interestRate  float64 // half-life in seconds; > 0 interest, < 0 demurrage
	interestStart uint32  // network-epoch seconds
}

// interestFactorCache memoizes GetInterestAt's math.Exp call, keyed by
// (currency code, reference date): spec.md's formula is evaluated
// repeatedly for the same currency across a ledger close, and exp/log
// are the one place in this package worth caching.
var interestFactorCache, _ = lru.New[interestFactorKey, decimal.Decimal](4096)

type interestFactorKey struct {
	code          xrplid.UInt160
	referenceDate int64
}

// Native returns the XRP sentinel currency (the all-zero 160-bit code).
func Native() Currency {
	return Currency{variant: VariantNative, code: xrplid.NativeUInt160()}
}

// NewISO builds a standard 3-character currency code, e.g. "USD". "XRP"
// (case-insensitive) is reserved for the native sentinel and rejected
// here: callers wanting the native asset must use Native().
func NewISO(code string) (Currency, error) {
	if !isoCodeRegex.MatchString(code) {
		return Currency{}, ErrInvalidCode
	}
	if strings.EqualFold(code, "XRP") {
		return Currency{}, ErrInvalidCode
	}
	var buf [20]byte
	copy(buf[12:15], []byte(strings.ToUpper(code)))
	raw, err := xrplid.UInt160FromBytes(buf[:])
	if err != nil {
		return Currency{}, err
	}
	return Currency{variant: VariantISO, code: raw, iso: strings.ToUpper(code)}, nil
}

// NewDemurrage builds a 160-bit currency carrying a continuous
// interest/demurrage schedule: code is the 3-character display code
// embedded in the wire form, interestRate is the schedule's half-life in
// seconds (positive grows the factor over time, negative decays it), and
// interestStart is the network-epoch second the schedule is anchored to.
// Byte layout: type tag, code, 4 reserved zero bytes, big-endian float64
// rate, big-endian uint32 start.
func NewDemurrage(code string, interestRate float64, interestStart uint32) (Currency, error) {
	if !isoCodeRegex.MatchString(code) {
		return Currency{}, ErrInvalidCode
	}
	var buf [20]byte
	buf[0] = demurrageType
	copy(buf[1:4], []byte(strings.ToUpper(code)))
	putFloat64(buf[8:16], interestRate)
	putUint32(buf[16:20], interestStart)
	raw, err := xrplid.UInt160FromBytes(buf[:])
	if err != nil {
		return Currency{}, err
	}
	return Currency{
		variant:       VariantDemurrage,
		code:          raw,
		interestRate:  interestRate,
		interestStart: interestStart,
	}, nil
}

// FromHex parses a 40-character hex 160-bit code into a Currency,
// classifying it as native/ISO/demurrage from its byte layout.
func FromHex(hexCode string) (Currency, error) {
	raw, err := xrplid.UInt160FromHex(hexCode)
	if err != nil {
		return Currency{}, err
	}
	return fromUInt160(raw)
}

func fromUInt160(raw xrplid.UInt160) (Currency, error) {
	if raw.IsNative() {
		return Currency{variant: VariantNative, code: raw}, nil
	}
	b := raw.Bytes()
	if b[0] == demurrageType {
		return Currency{
			variant:       VariantDemurrage,
			code:          raw,
			interestRate:  getFloat64(b[8:16]),
			interestStart: getUint32(b[16:20]),
		}, nil
	}
	if isStandardFormat(b) {
		return Currency{variant: VariantISO, code: raw, iso: strings.ToUpper(string(b[12:15]))}, nil
	}
	return Currency{variant: VariantDemurrage, code: raw}, nil
}

// isStandardFormat reports whether b's only non-zero bytes are bytes
// 12..14, the layout rippled calls the "standard format" ISO-code
// currency (type byte 0, reserved bytes zero).
func isStandardFormat(b []byte) bool {
	for i, v := range b {
		if i >= 12 && i < 15 {
			continue
		}
		if v != 0 {
			return false
		}
	}
	return true
}

// FromHuman parses either "XRP" (native), a bare 3-character ISO code,
// or a 40-character hex code — the textual forms a currency appears in
// within an Amount's "value/currency" shorthand.
func FromHuman(s string) (Currency, error) {
	switch {
	case strings.EqualFold(s, "XRP"):
		return Native(), nil
	case len(s) == 40:
		return FromHex(s)
	case len(s) == 3:
		return NewISO(s)
	default:
		return Currency{}, ErrInvalidCode
	}
}

// FromJSON accepts the same textual forms as FromHuman, matching the
// other core types' FromJSON/ToJSON naming.
func FromJSON(value any) (Currency, error) {
	s, ok := value.(string)
	if !ok {
		return Currency{}, ErrInvalidCode
	}
	return FromHuman(s)
}

func (c Currency) ToJSON() any { return c.ToHex() }

// IsNative reports whether c is the XRP sentinel.
func (c Currency) IsNative() bool { return c.variant == VariantNative }

// IsValid reports whether c was constructed through one of this
// package's constructors rather than being a zero-value Currency{}.
func (c Currency) IsValid() bool { return c.variant != VariantNative || c.code.IsValid() }

// HasInterest reports whether c carries a non-zero interest/demurrage
// half-life.
func (c Currency) HasInterest() bool {
	return c.variant == VariantDemurrage && c.interestRate != 0
}

// GetInterestAt evaluates the continuous interest/demurrage factor at
// referenceDate (Unix seconds): exp((t - start) * ln(2) / halflife),
// where t is referenceDate converted to network-epoch seconds. A
// positive half-life compounds the factor upward (interest); a negative
// one decays it (demurrage).
func (c Currency) GetInterestAt(referenceDate int64) (decimal.Decimal, error) {
	if !c.HasInterest() {
		return decimal.Decimal{}, ErrNoInterest
	}
	key := interestFactorKey{code: c.code, referenceDate: referenceDate}
	if cached, ok := interestFactorCache.Get(key); ok {
		return cached, nil
	}
	networkTime := referenceDate - RippleEpochOffset
	elapsed := float64(networkTime - int64(c.interestStart))
	factor := math.Exp(elapsed * math.Ln2 / c.interestRate)
	d, err := decimal.FromFloat64(factor)
	if err != nil {
		return decimal.Decimal{}, err
	}
	interestFactorCache.Add(key, d)
	return d, nil
}

// ToHex renders c's 160-bit code as 40 uppercase hex characters,
// regardless of variant.
func (c Currency) ToHex() string { return c.code.Hex() }

// ToHuman renders c the way it would appear in an Amount's
// "value/currency" shorthand: "XRP" for the native sentinel, the bare
// 3-character code for a standard-format ISO currency, and the 40-hex
// code for anything else (custom 160-bit codes and demurrage codes,
// which have no compact textual form).
func (c Currency) ToHuman() string {
	switch c.variant {
	case VariantNative:
		return "XRP"
	case VariantISO:
		return c.iso
	default:
		return c.ToHex()
	}
}

// Code returns the underlying 160-bit identifier.
func (c Currency) Code() xrplid.UInt160 { return c.code }

// Equals reports whether c and other encode the same 160-bit code.
func (c Currency) Equals(other Currency) bool { return c.code.Equals(other.code) }

func putUint32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func getUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func putFloat64(b []byte, f float64) {
	bits := math.Float64bits(f)
	for i := 0; i < 8; i++ {
		b[i] = byte(bits >> (56 - 8*i))
	}
}

func getFloat64(b []byte) float64 {
	var bits uint64
	for i := 0; i < 8; i++ {
		bits = bits<<8 | uint64(b[i])
	}
	return math.Float64frombits(bits)
}
