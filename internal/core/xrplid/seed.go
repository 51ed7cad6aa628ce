package xrplid

import (
	"errors"
	"strings"

	addresscodec "github.com/chainlane/xrplcore/internal/codec/address-codec"
	"github.com/chainlane/xrplcore/internal/crypto"
	secp256k1crypto "github.com/chainlane/xrplcore/internal/crypto/algorithms/secp256k1"
	cryptocommon "github.com/chainlane/xrplcore/internal/crypto/common"
)

// ErrInvalidSeed is returned when none of SeedFromJSON's accepted textual
// forms (base-58 envelope, 32-char hex, passphrase) can be applied.
var ErrInvalidSeed = errors.New("xrplid: invalid seed")

// Seed is a 128-bit secret from which a keypair is derived, tagged with
// the key family its base-58 envelope identifies. The tag defaults to
// secp256k1 for the hex and passphrase forms, which carry no version
// prefix of their own.
type Seed struct {
	entropy UInt128
	algo    crypto.KeyType
}

// SeedFromEntropy builds a Seed from an existing 128-bit entropy value
// and an explicit key-family tag.
func SeedFromEntropy(entropy UInt128, algo crypto.KeyType) (Seed, error) {
	if !entropy.IsValid() || algo == nil {
		return Seed{}, ErrInvalidSeed
	}
	return Seed{entropy: entropy, algo: algo}, nil
}

// SeedFromPassphrase derives a secp256k1 Seed deterministically from a
// passphrase: the first 16 bytes of SHA-512 over its UTF-8 bytes. This is
// a convenience for test accounts and tooling, not a key-stretching KDF.
func SeedFromPassphrase(passphrase string) Seed {
	hash := cryptocommon.Sha512Half([]byte(passphrase))
	entropy, _ := UInt128FromBytes(hash[:addresscodec.SeedLength])
	return Seed{entropy: entropy, algo: secp256k1crypto.SECP256K1()}
}

// SeedFromBase58 decodes a versioned, checksummed base-58 seed string,
// taking the key-family tag from its version prefix.
func SeedFromBase58(s string) (Seed, error) {
	entropy, algo, err := addresscodec.DecodeSeed(s)
	if err != nil {
		return Seed{}, ErrInvalidSeed
	}
	u, err := UInt128FromBytes(entropy)
	if err != nil {
		return Seed{}, ErrInvalidSeed
	}
	return Seed{entropy: u, algo: algo}, nil
}

// SeedFromJSON applies the textual forms in order: a string starting
// with the seed version character 's' must be a valid base-58 envelope,
// a 32-character hex string is raw entropy, and anything else is treated
// as a passphrase.
func SeedFromJSON(value any) (Seed, error) {
	s, ok := value.(string)
	if !ok {
		return Seed{}, ErrInvalidSeed
	}
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Seed{}, ErrInvalidSeed
	case s[0] == 's':
		return SeedFromBase58(s)
	case len(s) == 32 && isAllHex(s):
		entropy, err := UInt128FromHex(s)
		if err != nil {
			return Seed{}, ErrInvalidSeed
		}
		return Seed{entropy: entropy, algo: secp256k1crypto.SECP256K1()}, nil
	default:
		return SeedFromPassphrase(s), nil
	}
}

// IsValid reports whether s was built through a successful constructor.
func (s Seed) IsValid() bool { return s.entropy.IsValid() && s.algo != nil }

// Entropy returns the 128-bit secret.
func (s Seed) Entropy() UInt128 { return s.entropy }

// KeyType returns the key-family tag.
func (s Seed) KeyType() crypto.KeyType { return s.algo }

// ToBase58 renders s in its canonical versioned base-58 envelope.
func (s Seed) ToBase58() (string, error) {
	if !s.IsValid() {
		return "", ErrInvalidSeed
	}
	return addresscodec.EncodeSeed(s.entropy.Bytes(), s.algo)
}

// ToJSON returns the base-58 envelope, or nil for an invalid Seed.
func (s Seed) ToJSON() any {
	encoded, err := s.ToBase58()
	if err != nil {
		return nil
	}
	return encoded
}
