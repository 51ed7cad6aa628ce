package addresscodec

import (
	"bytes"
	"errors"

	"github.com/chainlane/xrplcore/internal/crypto"
	ed25519crypto "github.com/chainlane/xrplcore/internal/crypto/algorithms/ed25519"
	secp256k1crypto "github.com/chainlane/xrplcore/internal/crypto/algorithms/secp256k1"
)

// SeedLength is the length, in bytes, of the entropy a seed encodes.
const SeedLength = 16

// ed25519SeedVersion is the 3-byte version sequence rippled uses for
// ed25519 seeds; it was chosen so that, regardless of the 16 random
// entropy bytes that follow, the base58-encoded seed always begins with
// the literal characters "sEd". A single version byte cannot make that
// guarantee, since one byte only dominates the leading ~1.4 encoded
// characters; crypto.KeyType.FamilySeedPrefix()==0x01 is the signal this
// package uses to pick the 3-byte form over the 1-byte form.
var ed25519SeedVersion = []byte{0x01, 0xE1, 0x4B}

// ErrInvalidSeed is returned by DecodeSeed for any malformed, truncated,
// or checksum-mismatched seed string.
var ErrInvalidSeed = errors.New("addresscodec: invalid seed")

// EncodeSeed base58check-encodes 16 bytes of entropy behind the version
// prefix associated with algo's key family.
func EncodeSeed(entropy []byte, algo crypto.KeyType) (string, error) {
	if len(entropy) != SeedLength {
		return "", ErrInvalidSeed
	}
	return base58CheckEncodeVersion(entropy, seedVersion(algo)), nil
}

// DecodeSeed reverses EncodeSeed, additionally reporting which key
// family the seed's version prefix identifies.
func DecodeSeed(seed string) ([]byte, crypto.KeyType, error) {
	if seed == "" {
		return nil, nil, ErrInvalidSeed
	}
	body, err := base58CheckDecodeBody(seed)
	if err != nil {
		return nil, nil, ErrInvalidSeed
	}
	switch len(body) {
	case len(ed25519SeedVersion) + SeedLength:
		version, entropy := body[:len(ed25519SeedVersion)], body[len(ed25519SeedVersion):]
		if !bytes.Equal(version, ed25519SeedVersion) {
			return nil, nil, ErrInvalidSeed
		}
		return entropy, ed25519crypto.ED25519(), nil
	case 1 + SeedLength:
		version, entropy := body[0], body[1:]
		algo := secp256k1crypto.SECP256K1()
		if version != algo.FamilySeedPrefix() {
			return nil, nil, ErrInvalidSeed
		}
		return entropy, algo, nil
	default:
		return nil, nil, ErrInvalidSeed
	}
}

func seedVersion(algo crypto.KeyType) []byte {
	if algo.FamilySeedPrefix() == 0x01 {
		return ed25519SeedVersion
	}
	return []byte{algo.FamilySeedPrefix()}
}
