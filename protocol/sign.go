package protocol

import (
	"encoding/base64"

	"github.com/tradle/protocol/errors"
	"github.com/tradle/protocol/logger"
	"github.com/tradle/protocol/media"
	"github.com/tradle/protocol/merkle"
	"github.com/tradle/protocol/object"
	"github.com/tradle/protocol/seal"
	"github.com/tradle/protocol/wire"
)

// SignOpts carries everything a signing operation needs. Sign is the
// only required capability; a nil PubKey.Pub is rejected because the
// signature record must name its verification key.
type SignOpts struct {
	Object object.Object
	PubKey wire.PubKey
	Sign   SignFunc
	Merkle merkle.Opts
}

// Sign validates, normalizes and signs an object. The merkle root of
// the object's body is handed to the signer capability, and the
// resulting signature record is stored base64-encoded under the
// signature property. The input object is never mutated; the signed
// copy is returned.
func Sign(opts SignOpts) (object.Object, error) {
	if opts.Sign == nil {
		return nil, errors.InvalidInputf("sign: missing signer")
	}
	if len(opts.PubKey.Pub) == 0 {
		return nil, errors.InvalidInputf("sign: missing public key")
	}

	normalized := media.Normalize(opts.Object, opts.Merkle)
	if err := object.ValidateFresh(normalized); err != nil {
		return nil, err
	}

	root, err := MerkleRoot(normalized, opts.Merkle)
	if err != nil {
		return nil, err
	}
	sig, err := opts.Sign(root)
	if err != nil {
		return nil, errors.Wrap(err, "signer")
	}

	record := wire.Signature{PubKey: opts.PubKey, Sig: sig}
	signed := normalized.Copy()
	signed[object.SigProp] = base64.StdEncoding.EncodeToString(record.Marshal())

	logger.Debugw("signed object",
		"type", signed.Type(),
		"root", LinkString(root),
	)
	return signed, nil
}

// SigRecord decodes the object's signature record. The property may
// hold the encoded record as base64 text or raw bytes.
func SigRecord(o object.Object) (wire.Signature, error) {
	var raw []byte
	switch s := o[object.SigProp].(type) {
	case string:
		decoded, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return wire.Signature{}, errors.InvalidInputf("signature is not base64: %v", err)
		}
		raw = decoded
	case []byte:
		raw = s
	default:
		return wire.Signature{}, errors.Wrap(errors.ErrNotSigned, "sig record")
	}
	return wire.UnmarshalSignature(raw)
}

// SigPubKey returns the public key the object's signature names.
func SigPubKey(o object.Object) (wire.PubKey, error) {
	record, err := SigRecord(o)
	if err != nil {
		return wire.PubKey{}, err
	}
	return record.PubKey, nil
}

// VerifySig reports whether the object's signature record verifies
// against the recomputed merkle root of its body. A nil verify
// capability defaults to secp256k1 ECDSA.
func VerifySig(o object.Object, verify VerifyFunc, opts merkle.Opts) bool {
	record, err := SigRecord(o)
	if err != nil {
		return false
	}
	root, err := MerkleRoot(o, opts)
	if err != nil {
		return false
	}
	if verify == nil {
		verify = seal.Verify
	}
	return verify(record.PubKey, root, record.Sig)
}
