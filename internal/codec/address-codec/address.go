package addresscodec

import (
	"encoding/hex"
	"errors"

	"github.com/chainlane/xrplcore/internal/crypto"
)

// Version-byte prefixes for the base58check envelopes this package
// knows how to build, taken from rippled's base58.h.
const (
	AccountIDPrefix        byte = 0x00 // classic address, starts with 'r'
	AccountPublicKeyPrefix byte = 0x23 // account public key, starts with 'a'
	NodePublicKeyPrefix    byte = 0x1C // validator/node public key, starts with 'n'
	AccountSecretKeyPrefix byte = 0x22 // account secret (family seed alias), starts with 'p'
	NodePrivateKeyPrefix   byte = 0x20 // node private key, starts with 'p'
)

// PrivateKeyLength is the length, in bytes, of a raw (unprefixed) secp256k1
// or ed25519 private key.
const PrivateKeyLength = 32

// ErrInvalidAddress is returned when a classic address decodes to the
// wrong payload length.
var ErrInvalidAddress = errors.New("addresscodec: invalid classic address")

// ErrUnknownVersion is returned when a base58check string decodes
// cleanly (checksum intact) but carries an unrecognized version byte.
var ErrUnknownVersion = errors.New("addresscodec: unknown version byte")

// Sha256RipeMD160 returns RIPEMD160(SHA256(data)), the hash XRPL uses to
// derive both account IDs and node IDs from a public key.
func Sha256RipeMD160(data []byte) []byte {
	id := crypto.CalcAccountID(data)
	return id[:]
}

// EncodeClassicAddressFromPublicKeyHex derives and encodes the classic
// (base58check, AccountIDPrefix) address for a hex-encoded public key.
func EncodeClassicAddressFromPublicKeyHex(pubKeyHex string) (string, error) {
	pubKey, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return "", err
	}
	accountID := Sha256RipeMD160(pubKey)
	return Base58CheckEncode(accountID, AccountIDPrefix), nil
}

// EncodeAccountPublicKey base58check-encodes a raw public key behind
// AccountPublicKeyPrefix.
func EncodeAccountPublicKey(pubKey []byte) (string, error) {
	return Base58CheckEncode(pubKey, AccountPublicKeyPrefix), nil
}

// DecodeAccountPublicKey reverses EncodeAccountPublicKey.
func DecodeAccountPublicKey(encoded string) ([]byte, error) {
	return decodeWithPrefix(encoded, AccountPublicKeyPrefix)
}

// EncodeNodePublicKey base58check-encodes a raw public key behind
// NodePublicKeyPrefix.
func EncodeNodePublicKey(pubKey []byte) (string, error) {
	return Base58CheckEncode(pubKey, NodePublicKeyPrefix), nil
}

// DecodeNodePublicKey reverses EncodeNodePublicKey.
func DecodeNodePublicKey(encoded string) ([]byte, error) {
	return decodeWithPrefix(encoded, NodePublicKeyPrefix)
}

func decodeWithPrefix(encoded string, want byte) ([]byte, error) {
	body, err := base58CheckDecodeBody(encoded)
	if err != nil {
		return nil, err
	}
	if len(body) < 1 {
		return nil, ErrInvalidAddress
	}
	if body[0] != want {
		return nil, ErrUnknownVersion
	}
	return body[1:], nil
}

// IsValidClassicAddress reports whether address is a well-formed
// base58check classic address carrying AccountIDPrefix over a 20-byte
// account ID.
func IsValidClassicAddress(address string) bool {
	_, err := DecodeClassicAddress(address)
	return err == nil
}

// DecodeClassicAddress reverses Base58CheckEncode(accountID, AccountIDPrefix),
// returning the raw 20-byte account ID.
func DecodeClassicAddress(address string) ([]byte, error) {
	body, err := base58CheckDecodeBody(address)
	if err != nil {
		return nil, err
	}
	if len(body) != 1+crypto.AccountIDSize {
		return nil, ErrInvalidAddress
	}
	if body[0] != AccountIDPrefix {
		return nil, ErrUnknownVersion
	}
	return body[1:], nil
}
