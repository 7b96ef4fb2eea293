// Package seal derives elliptic-curve key material from object hashes:
// scalar private keys from 32-byte digests, combined public keys for
// on-chain seals, and per-message shared keys. All arithmetic is on
// secp256k1; keys carry their curve identifier and combining keys from
// different curves is a hard error.
package seal

import (
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"

	"github.com/tradle/protocol/errors"
	"github.com/tradle/protocol/wire"
)

// ScalarFromHash maps a digest to a valid curve scalar. The digest is
// interpreted as a big-endian integer; when it is zero or not below the
// curve order it is re-hashed with SHA-256 until valid. The retry rule
// is part of the protocol: it decides which key a given hash maps to,
// so it must match bit-for-bit across implementations. Input that is
// not 32 bytes is hashed once before interpretation.
func ScalarFromHash(hash []byte) *secp256k1.ModNScalar {
	h := hash
	if len(h) != 32 {
		sum := sha256.Sum256(h)
		h = sum[:]
	}
	var s secp256k1.ModNScalar
	for {
		overflow := s.SetByteSlice(h)
		if !overflow && !s.IsZero() {
			return &s
		}
		sum := sha256.Sum256(h)
		h = sum[:]
	}
}

// PrivateKeyFromHash treats a hash as a secp256k1 private key via
// ScalarFromHash.
func PrivateKeyFromHash(hash []byte) *secp256k1.PrivateKey {
	return secp256k1.NewPrivateKey(ScalarFromHash(hash))
}

// PublicKeyFromHash returns the public key of PrivateKeyFromHash(hash).
func PublicKeyFromHash(hash []byte) wire.PubKey {
	return ExportPublicKey(PrivateKeyFromHash(hash).PubKey())
}

// ExportPublicKey converts a curve-native public key to its tagged wire
// form (compressed point bytes).
func ExportPublicKey(pub *secp256k1.PublicKey) wire.PubKey {
	return wire.PubKey{Curve: wire.CurveSecp256k1, Pub: pub.SerializeCompressed()}
}

// ImportPublicKey parses a tagged public key, rejecting unknown curves
// and malformed points.
func ImportPublicKey(k wire.PubKey) (*secp256k1.PublicKey, error) {
	if k.Curve != wire.CurveSecp256k1 {
		return nil, errors.InvalidInputf("unsupported curve %q", k.Curve)
	}
	pub, err := secp256k1.ParsePubKey(k.Pub)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return pub, nil
}

// Combine adds two public keys as curve points. The keys must be on the
// same named curve; a mismatch is an error, never a silent coercion.
func Combine(a, b wire.PubKey) (wire.PubKey, error) {
	if a.Curve != b.Curve {
		return wire.PubKey{}, errors.InvalidInputf("curve mismatch: %q vs %q", a.Curve, b.Curve)
	}
	pa, err := ImportPublicKey(a)
	if err != nil {
		return wire.PubKey{}, err
	}
	pb, err := ImportPublicKey(b)
	if err != nil {
		return wire.PubKey{}, err
	}

	var ja, jb, sum secp256k1.JacobianPoint
	pa.AsJacobian(&ja)
	pb.AsJacobian(&jb)
	secp256k1.AddNonConst(&ja, &jb, &sum)
	if (sum.X.IsZero() && sum.Y.IsZero()) || sum.Z.IsZero() {
		return wire.PubKey{}, errors.InvalidInputf("combined key is the point at infinity")
	}
	sum.ToAffine()
	return ExportPublicKey(secp256k1.NewPublicKey(&sum.X, &sum.Y)), nil
}

// Address renders a public key as a base58 string for use as an
// external chain address label.
func Address(k wire.PubKey) string {
	return base58.Encode(k.Pub)
}
