package seal

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/tradle/protocol/wire"
)

// Default signer/verifier capability over secp256k1 ECDSA with DER
// signature bytes. The protocol treats signing as an injected function;
// these adapters are for callers without an external signer.

// GenerateKey creates a fresh secp256k1 key pair.
func GenerateKey() (*secp256k1.PrivateKey, error) {
	return secp256k1.GeneratePrivateKey()
}

// Sign produces a DER-encoded ECDSA signature over the digest.
func Sign(priv *secp256k1.PrivateKey, digest []byte) ([]byte, error) {
	return ecdsa.Sign(priv, digest).Serialize(), nil
}

// Verify checks a DER-encoded ECDSA signature against a tagged public
// key. Parse failures and mismatches both report false.
func Verify(pub wire.PubKey, digest, sig []byte) bool {
	key, err := ImportPublicKey(pub)
	if err != nil {
		return false
	}
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return parsed.Verify(digest, key)
}
