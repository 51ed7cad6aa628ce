// Package crypto holds the key-family tagging and account-ID hashing
// the identifier codecs are built on. Signing and key derivation live
// outside this module.
package crypto

import (
	"crypto/sha256"

	"github.com/decred/dcrd/crypto/ripemd160"
)

// AccountIDSize is the size of an XRPL account ID in bytes.
const AccountIDSize = 20

// CalcAccountID computes the 160-bit account ID for a public key:
// RIPEMD160(SHA256(publicKey)). The whole key is hashed, prefix byte
// included, so the same computation covers both secp256k1 and Ed25519
// keys. See rippled's AccountID.cpp for the authoritative reference.
func CalcAccountID(publicKey []byte) [AccountIDSize]byte {
	sha256Hash := sha256.Sum256(publicKey)

	ripemd160Hasher := ripemd160.New()
	ripemd160Hasher.Write(sha256Hash[:])
	ripemd160Hash := ripemd160Hasher.Sum(nil)

	var result [AccountIDSize]byte
	copy(result[:], ripemd160Hash)
	return result
}
