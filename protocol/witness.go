package protocol

import (
	"encoding/base64"

	"github.com/tradle/protocol/errors"
	"github.com/tradle/protocol/merkle"
	"github.com/tradle/protocol/object"
	"github.com/tradle/protocol/seal"
	"github.com/tradle/protocol/wire"
)

// Witness co-signature entry keys. A witness entry is a small map so it
// canonicalizes like any other object value.
const (
	witnessAuthorKey = "a"
	witnessSigKey    = "s"
)

// WitnessOpts carries a witness co-signing operation. Author is the hex
// link of the witness's identity.
type WitnessOpts struct {
	Object object.Object
	Author string
	PubKey wire.PubKey
	Sign   SignFunc
	Merkle merkle.Opts
}

// Witness co-signs an already-signed object. The witness signs the same
// merkle root as the author, and the entry is appended to the witness
// list in the header, so adding witnesses never disturbs the body or
// the primary signature. The input is not mutated.
func Witness(opts WitnessOpts) (object.Object, error) {
	if opts.Sign == nil {
		return nil, errors.InvalidInputf("witness: missing signer")
	}
	if opts.Author == "" {
		return nil, errors.InvalidInputf("witness: missing author link")
	}
	if !opts.Object.IsSigned() {
		return nil, errors.Wrap(errors.ErrNotSigned, "witness")
	}

	root, err := MerkleRoot(opts.Object, opts.Merkle)
	if err != nil {
		return nil, err
	}
	sig, err := opts.Sign(root)
	if err != nil {
		return nil, errors.Wrap(err, "witness signer")
	}
	record := wire.Signature{PubKey: opts.PubKey, Sig: sig}

	out := opts.Object.Copy()
	entry := map[string]any{
		witnessAuthorKey: opts.Author,
		witnessSigKey:    base64.StdEncoding.EncodeToString(record.Marshal()),
	}
	switch w := out[object.WitnessesProp].(type) {
	case nil:
		out[object.WitnessesProp] = []any{entry}
	case []any:
		out[object.WitnessesProp] = append(w, entry)
	default:
		return nil, errors.InvalidPropertyf("expected %s to be a list, got %T", object.WitnessesProp, w)
	}
	return out, nil
}

// VerifyWitnesses checks every witness entry against the recomputed
// merkle root. An object with no witnesses verifies trivially; a single
// malformed or failing entry fails the whole list.
func VerifyWitnesses(o object.Object, verify VerifyFunc, opts merkle.Opts) bool {
	w, ok := o[object.WitnessesProp]
	if !ok {
		return true
	}
	entries, ok := w.([]any)
	if !ok {
		return false
	}
	root, err := MerkleRoot(o, opts)
	if err != nil {
		return false
	}
	if verify == nil {
		verify = seal.Verify
	}
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			return false
		}
		encoded, ok := entry[witnessSigKey].(string)
		if !ok {
			return false
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return false
		}
		record, err := wire.UnmarshalSignature(raw)
		if err != nil {
			return false
		}
		if !verify(record.PubKey, root, record.Sig) {
			return false
		}
	}
	return true
}
