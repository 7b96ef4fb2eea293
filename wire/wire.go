// Package wire implements the one binary encoding the protocol core
// owns: the ECPubKey and ECSignature records attached to signed objects.
// The schema is protobuf:
//
//	message ECPubKey    { string curve = 1; bytes pub = 2; }
//	message ECSignature { ECPubKey pubKey = 1; bytes sig = 2; }
//
// Encoding goes through protowire directly so the byte layout is fixed
// by this package, not by generated-code field ordering: fields are
// always emitted in field-number order, producing byte-for-byte
// reproducible output for interoperability.
package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tradle/protocol/errors"
)

// CurveSecp256k1 is the curve identifier for secp256k1 keys.
const CurveSecp256k1 = "secp256k1"

// PubKey is an elliptic-curve public key tagged with its curve
// identifier. Two keys are combinable only when identifiers match.
type PubKey struct {
	Curve string
	Pub   []byte
}

// Signature binds signature bytes to the public key that produced them.
type Signature struct {
	PubKey PubKey
	Sig    []byte
}

// Equal reports byte-exact equality of curve identifier and point bytes.
func (k PubKey) Equal(other PubKey) bool {
	if k.Curve != other.Curve || len(k.Pub) != len(other.Pub) {
		return false
	}
	for i := range k.Pub {
		if k.Pub[i] != other.Pub[i] {
			return false
		}
	}
	return true
}

// Marshal encodes the key as an ECPubKey message.
func (k PubKey) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, k.Curve)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, k.Pub)
	return b
}

// Marshal encodes the signature as an ECSignature message.
func (s Signature) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, s.PubKey.Marshal())
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, s.Sig)
	return b
}

// UnmarshalPubKey decodes an ECPubKey message. Both fields are required.
func UnmarshalPubKey(data []byte) (PubKey, error) {
	var k PubKey
	var haveCurve, havePub bool
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return PubKey{}, errors.InvalidInputf("malformed pubkey encoding")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return PubKey{}, errors.InvalidInputf("malformed pubkey encoding")
			}
			k.Curve = string(v)
			haveCurve = true
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return PubKey{}, errors.InvalidInputf("malformed pubkey encoding")
			}
			k.Pub = append([]byte(nil), v...)
			havePub = true
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return PubKey{}, errors.InvalidInputf("malformed pubkey encoding")
			}
			data = data[n:]
		}
	}
	if !haveCurve || !havePub {
		return PubKey{}, errors.InvalidInputf("pubkey encoding missing required fields")
	}
	return k, nil
}

// UnmarshalSignature decodes an ECSignature message. Both fields are
// required.
func UnmarshalSignature(data []byte) (Signature, error) {
	var s Signature
	var haveKey, haveSig bool
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Signature{}, errors.InvalidInputf("malformed signature encoding")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return Signature{}, errors.InvalidInputf("malformed signature encoding")
			}
			key, err := UnmarshalPubKey(v)
			if err != nil {
				return Signature{}, err
			}
			s.PubKey = key
			haveKey = true
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return Signature{}, errors.InvalidInputf("malformed signature encoding")
			}
			s.Sig = append([]byte(nil), v...)
			haveSig = true
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Signature{}, errors.InvalidInputf("malformed signature encoding")
			}
			data = data[n:]
		}
	}
	if !haveKey || !haveSig {
		return Signature{}, errors.InvalidInputf("signature encoding missing required fields")
	}
	return s, nil
}
