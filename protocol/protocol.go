// Package protocol ties the object model, merkle engine, media
// normalizer and seal derivation together into the signing pipeline: a
// raw object is normalized and canonicalized, its properties become
// merkle leaves, the root is signed by an injected signer capability,
// and the signed header hashes into the link that chains versions and
// derives seal keys.
//
// Every operation takes its hash configuration explicitly; there is no
// process-wide mutable state and all calls are safe for concurrent use.
package protocol

import (
	"github.com/tradle/protocol/media"
	"github.com/tradle/protocol/merkle"
	"github.com/tradle/protocol/object"
	"github.com/tradle/protocol/wire"
)

// SignFunc is the injected signer capability: it signs a merkle root
// digest and returns raw signature bytes. It may cross a process
// boundary; the protocol treats it as a single request/response call
// with no retry policy of its own.
type SignFunc func(digest []byte) ([]byte, error)

// VerifyFunc is the injected signature verifier capability.
type VerifyFunc func(pub wire.PubKey, digest, sig []byte) bool

// CreateObject validates and normalizes a raw object for signing. The
// input is never mutated; the returned object has embedded media
// replaced by content hashes when the protocol version calls for it.
func CreateObject(o object.Object, opts merkle.Opts) (object.Object, error) {
	normalized := media.Normalize(o, opts)
	if err := object.ValidateFresh(normalized); err != nil {
		return nil, err
	}
	return normalized.Copy(), nil
}
