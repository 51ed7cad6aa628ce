package ed25519

// ED25519SignatureProvider is the ED25519 key-type tag: it exposes the key
// and seed-version prefixes and performs no signing.
type ED25519SignatureProvider struct {
	keyPrefix byte // Prefix used to identify ED25519 keys in XRPL
}

func NewED25519Provider() *ED25519SignatureProvider {
	return &ED25519SignatureProvider{
		keyPrefix: 0xED,
	}
}

// ED25519 returns the ED25519 key-type tag, mirroring
// secp256k1.SECP256K1() so address-codec can select version bytes.
func ED25519() *ED25519SignatureProvider {
	return NewED25519Provider()
}

// Prefix returns the single-byte tag XRPL uses on ED25519 public/private
// keys (0xED).
func (p *ED25519SignatureProvider) Prefix() byte {
	return p.keyPrefix
}

// FamilySeedPrefix returns the first byte of ED25519's 3-byte seed
// version sequence ([0x01, 0xE1, 0x4B], chosen by rippled so the
// base-58 result always starts with "sEd"). address-codec treats a
// FamilySeedPrefix of 0x01 as a signal to use that full 3-byte sequence
// instead of a single version byte.
func (p *ED25519SignatureProvider) FamilySeedPrefix() byte {
	return 0x01
}
