package seal

import (
	"crypto/sha256"

	"github.com/tradle/protocol/wire"
)

// SealPubKey derives the seal key for a specific signed version: the
// base key combined with the key derived from the version's header
// hash. The seal key doubles as an address for a blockchain-anchored
// proof of existence.
func SealPubKey(base wire.PubKey, headerHash []byte) (wire.PubKey, error) {
	return Combine(base, PublicKeyFromHash(headerHash))
}

// SealPrevPubKey derives the seal key for the transition from a
// previous version. The previous header hash is hashed once more before
// key derivation so that "seal this version" and "seal the transition
// from this version" yield distinct keys from the same link.
func SealPrevPubKey(base wire.PubKey, prevHeaderHash []byte) (wire.PubKey, error) {
	iterated := sha256.Sum256(prevHeaderHash)
	return Combine(base, PublicKeyFromHash(iterated[:]))
}

// VerifySealPubKey recomputes the expected seal key and compares it to
// a claimed key. It is an audit predicate: derivation failures and
// mismatches both report false.
func VerifySealPubKey(base wire.PubKey, headerHash []byte, claimed wire.PubKey) bool {
	expected, err := SealPubKey(base, headerHash)
	if err != nil {
		return false
	}
	return expected.Equal(claimed)
}

// VerifySealPrevPubKey is the transition-seal counterpart of
// VerifySealPubKey.
func VerifySealPrevPubKey(base wire.PubKey, prevHeaderHash []byte, claimed wire.PubKey) bool {
	expected, err := SealPrevPubKey(base, prevHeaderHash)
	if err != nil {
		return false
	}
	return expected.Equal(claimed)
}
