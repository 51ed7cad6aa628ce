// Package xrplid implements the fixed-width unsigned integer containers
// (128/160/256 bits) that back account IDs, currency codes, hashes, and
// seeds: big-endian byte arrays with hex and base-58 codecs, plus a
// validity flag so a failed parse is a first-class zero value rather
// than a panic or a pointer nil check. It generalizes the bare
// [AccountIDSize]byte arrays internal/crypto/ids.go hashes into, giving
// the protocol's three fixed widths a common typed surface.
package xrplid

import (
	"encoding/hex"
	"errors"
	"strings"

	addresscodec "github.com/chainlane/xrplcore/internal/codec/address-codec"
)

// ErrInvalidLength is returned when a byte slice or hex string does not
// match the target type's fixed width.
var ErrInvalidLength = errors.New("xrplid: wrong byte length")

// ErrInvalidHex is returned when a string is not valid hexadecimal.
var ErrInvalidHex = errors.New("xrplid: invalid hex string")

func decodeFixedHex(s string, width int) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) != width*2 {
		return nil, ErrInvalidLength
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidHex
	}
	return b, nil
}

func isAllHex(s string) bool {
	if s == "" {
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

// UInt128 is a 128-bit fixed-width identifier, used for Seed entropy.
type UInt128 struct {
	data  [16]byte
	valid bool
}

// UInt128FromBytes builds a UInt128 from exactly 16 big-endian bytes.
func UInt128FromBytes(b []byte) (UInt128, error) {
	if len(b) != 16 {
		return UInt128{}, ErrInvalidLength
	}
	var u UInt128
	copy(u.data[:], b)
	u.valid = true
	return u, nil
}

// UInt128FromHex parses a 32-character hex string into a UInt128.
func UInt128FromHex(s string) (UInt128, error) {
	b, err := decodeFixedHex(s, 16)
	if err != nil {
		return UInt128{}, err
	}
	return UInt128FromBytes(b)
}

// UInt128FromJSON implements spec.md's auto-detecting from_json: a
// UInt128 has no base-58 form of its own (the seed base-58 envelope is
// handled by Seed, in seed.go), so this only accepts a hex string.
func UInt128FromJSON(value any) (UInt128, error) {
	s, ok := value.(string)
	if !ok {
		return UInt128{}, ErrInvalidHex
	}
	return UInt128FromHex(s)
}

func (u UInt128) ToJSON() any {
	if !u.valid {
		return nil
	}
	return u.Hex()
}

func (u UInt128) IsValid() bool { return u.valid }
func (u UInt128) IsZero() bool  { return u.valid && u.data == [16]byte{} }

func (u UInt128) Bytes() []byte {
	out := make([]byte, 16)
	copy(out, u.data[:])
	return out
}

func (u UInt128) Hex() string {
	return strings.ToUpper(hex.EncodeToString(u.data[:]))
}

func (u UInt128) Equals(other UInt128) bool {
	return u.valid && other.valid && u.data == other.data
}

// UInt160 is a 160-bit fixed-width identifier: account IDs and currency
// codes. The all-zero value is the reserved native-asset sentinel; the
// value 1 (big-endian, i.e. only the last byte set) is the reserved
// "no issuer" placeholder.
type UInt160 struct {
	data  [20]byte
	valid bool
}

// NativeUInt160 is the all-zero sentinel representing the native asset
// in a currency or issuer slot.
func NativeUInt160() UInt160 {
	return UInt160{valid: true}
}

// NoIssuerUInt160 is the reserved value 1, used as an issuer placeholder
// when no real issuer applies.
func NoIssuerUInt160() UInt160 {
	u := UInt160{valid: true}
	u.data[19] = 1
	return u
}

// UInt160FromBytes builds a UInt160 from exactly 20 big-endian bytes.
func UInt160FromBytes(b []byte) (UInt160, error) {
	if len(b) != 20 {
		return UInt160{}, ErrInvalidLength
	}
	var u UInt160
	copy(u.data[:], b)
	u.valid = true
	return u, nil
}

// UInt160FromHex parses a 40-character hex string into a UInt160.
func UInt160FromHex(s string) (UInt160, error) {
	b, err := decodeFixedHex(s, 20)
	if err != nil {
		return UInt160{}, err
	}
	return UInt160FromBytes(b)
}

// UInt160FromBase58 decodes a classic (account-ID-prefixed) base-58
// address into its 20-byte payload.
func UInt160FromBase58(s string) (UInt160, error) {
	b, err := addresscodec.DecodeClassicAddress(s)
	if err != nil {
		return UInt160{}, err
	}
	return UInt160FromBytes(b)
}

// ToBase58 renders u as a classic address string.
func (u UInt160) ToBase58() (string, error) {
	if !u.valid {
		return "", ErrInvalidLength
	}
	return addresscodec.Base58CheckEncode(u.data[:], addresscodec.AccountIDPrefix), nil
}

// UInt160FromJSON auto-detects between the two textual forms a UInt160
// appears in: a 40-character hex string (currency codes, raw account
// IDs) or a base-58 classic address.
func UInt160FromJSON(value any) (UInt160, error) {
	s, ok := value.(string)
	if !ok {
		return UInt160{}, ErrInvalidHex
	}
	if len(s) == 40 && isAllHex(s) {
		return UInt160FromHex(s)
	}
	return UInt160FromBase58(s)
}

func (u UInt160) ToJSON() any {
	if !u.valid {
		return nil
	}
	return u.Hex()
}

func (u UInt160) IsValid() bool { return u.valid }
func (u UInt160) IsZero() bool  { return u.valid && u.data == [20]byte{} }

// IsNative reports whether u is the all-zero native-asset sentinel.
func (u UInt160) IsNative() bool { return u.IsZero() }

// IsNoIssuer reports whether u is the reserved value-1 placeholder.
func (u UInt160) IsNoIssuer() bool {
	return u.valid && u.data == NoIssuerUInt160().data
}

func (u UInt160) Bytes() []byte {
	out := make([]byte, 20)
	copy(out, u.data[:])
	return out
}

func (u UInt160) Hex() string {
	return strings.ToUpper(hex.EncodeToString(u.data[:]))
}

func (u UInt160) Equals(other UInt160) bool {
	return u.valid && other.valid && u.data == other.data
}

// UInt256 is a 256-bit fixed-width identifier (ledger/transaction
// hashes).
type UInt256 struct {
	data  [32]byte
	valid bool
}

// UInt256FromBytes builds a UInt256 from exactly 32 big-endian bytes.
func UInt256FromBytes(b []byte) (UInt256, error) {
	if len(b) != 32 {
		return UInt256{}, ErrInvalidLength
	}
	var u UInt256
	copy(u.data[:], b)
	u.valid = true
	return u, nil
}

// UInt256FromHex parses a 64-character hex string into a UInt256.
func UInt256FromHex(s string) (UInt256, error) {
	b, err := decodeFixedHex(s, 32)
	if err != nil {
		return UInt256{}, err
	}
	return UInt256FromBytes(b)
}

// UInt256FromJSON accepts only hex; UInt256 has no base-58 form in this
// protocol.
func UInt256FromJSON(value any) (UInt256, error) {
	s, ok := value.(string)
	if !ok {
		return UInt256{}, ErrInvalidHex
	}
	return UInt256FromHex(s)
}

func (u UInt256) ToJSON() any {
	if !u.valid {
		return nil
	}
	return u.Hex()
}

func (u UInt256) IsValid() bool { return u.valid }
func (u UInt256) IsZero() bool  { return u.valid && u.data == [32]byte{} }

func (u UInt256) Bytes() []byte {
	out := make([]byte, 32)
	copy(out, u.data[:])
	return out
}

func (u UInt256) Hex() string {
	return strings.ToUpper(hex.EncodeToString(u.data[:]))
}

func (u UInt256) Equals(other UInt256) bool {
	return u.valid && other.valid && u.data == other.data
}
