// Package addresscodec implements the base-58 check-encoding envelopes
// XRPL wraps around account IDs, public keys, and seeds: a version-byte
// prefix, the payload, and a 4-byte double-SHA256 checksum, all rendered
// through XRPL's own base-58 alphabet (which reorders the usual
// Bitcoin alphabet and excludes the same confusable characters: 0, O, I,
// l). The divide-by-58 encoding loop mirrors the one rippled's base58.h
// and xrpl.js's addresscodec both use; no example repo in this module
// ships an XRPL-alphabet base58 codec; the standard Bitcoin-alphabet
// base58 packages in the wider ecosystem hardcode the wrong alphabet and
// would silently produce addresses rippled rejects, so this is
// implemented directly on math/big, the same tool the teacher's
// secp256k1 key derivation already leans on for big-integer arithmetic.
package addresscodec

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"math/big"
)

// Alphabet is XRPL's base-58 alphabet. It is a permutation of the
// standard Bitcoin alphabet and, like it, excludes the characters
// 0, O, I, and l to avoid visual confusion.
const Alphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

var (
	// ErrInvalidChecksum is returned when a base58check payload's
	// trailing 4 bytes don't match the double-SHA256 of the body.
	ErrInvalidChecksum = errors.New("addresscodec: invalid checksum")
	// ErrInvalidBase58Char is returned when a string contains a byte
	// outside Alphabet.
	ErrInvalidBase58Char = errors.New("addresscodec: invalid base58 character")
)

var (
	bigRadix  = big.NewInt(58)
	bigZero   = big.NewInt(0)
	charIndex [256]int8
)

func init() {
	for i := range charIndex {
		charIndex[i] = -1
	}
	for i, c := range Alphabet {
		charIndex[byte(c)] = int8(i)
	}
}

// Base58Encode encodes data using Alphabet, preserving one leading
// Alphabet[0] character for every leading zero byte in data (matching
// the usual base58 convention of treating the byte string as a
// big-endian integer).
func Base58Encode(data []byte) string {
	x := new(big.Int).SetBytes(data)
	var out []byte
	for x.Cmp(bigZero) > 0 {
		mod := new(big.Int)
		x.DivMod(x, bigRadix, mod)
		out = append(out, Alphabet[mod.Int64()])
	}
	for _, b := range data {
		if b != 0 {
			break
		}
		out = append(out, Alphabet[0])
	}
	reverse(out)
	return string(out)
}

// Base58Decode reverses Base58Encode, rejecting any character outside
// Alphabet.
func Base58Decode(s string) ([]byte, error) {
	x := new(big.Int)
	for i := 0; i < len(s); i++ {
		idx := charIndex[s[i]]
		if idx < 0 {
			return nil, ErrInvalidBase58Char
		}
		x.Mul(x, bigRadix)
		x.Add(x, big.NewInt(int64(idx)))
	}
	decoded := x.Bytes()
	leadingZeros := 0
	for leadingZeros < len(s) && s[leadingZeros] == Alphabet[0] {
		leadingZeros++
	}
	out := make([]byte, leadingZeros+len(decoded))
	copy(out[leadingZeros:], decoded)
	return out, nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:4]
}

// Base58CheckEncode encodes payload behind a single version byte, with a
// trailing 4-byte double-SHA256 checksum over version+payload.
func Base58CheckEncode(payload []byte, version byte) string {
	return base58CheckEncodeVersion(payload, []byte{version})
}

// base58CheckEncodeVersion encodes payload behind a multi-byte version
// prefix. XRPL's ed25519 seeds are the only caller needing more than one
// version byte (a 3-byte tag chosen so every encoded ed25519 seed starts
// with the literal characters "sEd").
func base58CheckEncodeVersion(payload []byte, version []byte) string {
	body := make([]byte, 0, len(version)+len(payload)+4)
	body = append(body, version...)
	body = append(body, payload...)
	body = append(body, checksum(body)...)
	return Base58Encode(body)
}

// base58CheckDecodeBody decodes s and verifies its checksum, returning
// the version+payload bytes (i.e. everything but the trailing 4-byte
// checksum) with the checksum itself stripped. It does not know how many
// of the leading bytes are "version" versus "payload"; callers split that
// based on context (a fixed version width, or by trying candidate
// widths).
func base58CheckDecodeBody(s string) ([]byte, error) {
	decoded, err := Base58Decode(s)
	if err != nil {
		return nil, err
	}
	if len(decoded) < 4 {
		return nil, ErrInvalidChecksum
	}
	body, sum := decoded[:len(decoded)-4], decoded[len(decoded)-4:]
	if !bytes.Equal(checksum(body), sum) {
		return nil, ErrInvalidChecksum
	}
	return body, nil
}
