package protocol

import (
	"encoding/hex"

	"github.com/tradle/protocol/errors"
	"github.com/tradle/protocol/merkle"
	"github.com/tradle/protocol/object"
)

// LinkSize is the byte length of a link digest.
const LinkSize = 32

// HeaderHash hashes the canonical serialization of the object's header
// with the configured leaf hash. It is the basis of the object's link
// and requires the object to be signed.
func HeaderHash(o object.Object, opts merkle.Opts) ([]byte, error) {
	header, err := object.PickHeader(o)
	if err != nil {
		return nil, err
	}
	data, err := object.Stringify(header)
	if err != nil {
		return nil, err
	}
	return opts.HashLeaf(data), nil
}

// IteratedHeaderHash applies one more round of the leaf hash to a
// header hash. Seal keys for the next version commit to this value
// instead of the raw header hash so a watcher can recognize the
// successor seal without seeing the successor object.
func IteratedHeaderHash(headerHash []byte, opts merkle.Opts) []byte {
	return opts.HashLeaf(headerHash)
}

// Link computes the object's content link: the hash of its signed
// header. Two signed objects have the same link exactly when their
// headers canonicalize identically.
func Link(o object.Object, opts merkle.Opts) ([]byte, error) {
	return HeaderHash(o, opts)
}

// LinkString returns the canonical hex display form of a link.
func LinkString(link []byte) string {
	return hex.EncodeToString(link)
}

// LinkOf resolves a link from whatever representation the caller holds:
// a signed object, a raw digest, or its hex form. Digest inputs pass
// through untouched, so the function is idempotent.
func LinkOf(v any, opts merkle.Opts) ([]byte, error) {
	switch t := v.(type) {
	case object.Object:
		return Link(t, opts)
	case []byte:
		if len(t) != LinkSize {
			return nil, errors.InvalidInputf("expected %d-byte link, got %d bytes", LinkSize, len(t))
		}
		return t, nil
	case string:
		raw, err := hex.DecodeString(t)
		if err != nil {
			return nil, errors.InvalidInputf("link is not hex: %v", err)
		}
		if len(raw) != LinkSize {
			return nil, errors.InvalidInputf("expected %d-byte link, got %d bytes", LinkSize, len(raw))
		}
		return raw, nil
	default:
		return nil, errors.InvalidInputf("cannot derive link from %T", v)
	}
}
