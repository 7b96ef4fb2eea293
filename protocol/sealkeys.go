package protocol

import (
	"github.com/tradle/protocol/errors"
	"github.com/tradle/protocol/merkle"
	"github.com/tradle/protocol/object"
	"github.com/tradle/protocol/seal"
	"github.com/tradle/protocol/wire"
)

// CalcSealPubKey derives the seal key for a signed object from a base
// key and the object's header hash.
func CalcSealPubKey(base wire.PubKey, o object.Object, opts merkle.Opts) (wire.PubKey, error) {
	headerHash, err := HeaderHash(o, opts)
	if err != nil {
		return wire.PubKey{}, err
	}
	return seal.SealPubKey(base, headerHash)
}

// CalcSealPrevPubKey derives the transition-seal key a successor
// version announces for its predecessor. The object must carry a
// prevheader; first versions have no predecessor to seal.
func CalcSealPrevPubKey(base wire.PubKey, o object.Object, opts merkle.Opts) (wire.PubKey, error) {
	prevHeader := o.PrevHeader()
	if prevHeader == "" {
		return wire.PubKey{}, errors.InvalidInputf("expected object to have %s", object.PrevHeaderProp)
	}
	raw, err := LinkOf(prevHeader, opts)
	if err != nil {
		return wire.PubKey{}, err
	}
	return seal.SealPrevPubKey(base, raw)
}

// VerifySealPubKey checks a claimed seal key against the object it is
// said to seal.
func VerifySealPubKey(base wire.PubKey, o object.Object, claimed wire.PubKey, opts merkle.Opts) bool {
	headerHash, err := HeaderHash(o, opts)
	if err != nil {
		return false
	}
	return seal.VerifySealPubKey(base, headerHash, claimed)
}

// VerifySealPrevPubKey checks a claimed transition-seal key against the
// successor object announcing it.
func VerifySealPrevPubKey(base wire.PubKey, o object.Object, claimed wire.PubKey, opts merkle.Opts) bool {
	raw, err := LinkOf(o.PrevHeader(), opts)
	if err != nil {
		return false
	}
	return seal.VerifySealPrevPubKey(base, raw, claimed)
}
