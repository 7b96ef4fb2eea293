package seal

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/tradle/protocol/wire"
)

// Per-message key agreement: the recipient adds a per-object scalar to
// their private key while the sender combines the corresponding public
// keys. Both sides land on the same curve point without ever sharing a
// secret beyond the recipient's long-lived key pair. The scalar is
// derived from the message's merkle root, optionally bound to the
// signature bytes as well.

// messageScalar derives the per-message scalar. With signature bytes
// present the root and signature are hashed together; a bare 32-byte
// root is interpreted directly, matching ScalarFromHash.
func messageScalar(merkleRoot, sig []byte) *secp256k1.ModNScalar {
	if len(sig) == 0 {
		return ScalarFromHash(merkleRoot)
	}
	data := make([]byte, 0, len(merkleRoot)+len(sig))
	data = append(data, merkleRoot...)
	data = append(data, sig...)
	return ScalarFromHash(data)
}

// ReceiverMessageKey derives the recipient's per-message private key:
// recipient key plus the message scalar, mod the curve order.
func ReceiverMessageKey(recipientPriv *secp256k1.PrivateKey, merkleRoot, sig []byte) *secp256k1.PrivateKey {
	var sum secp256k1.ModNScalar
	sum.Set(&recipientPriv.Key)
	sum.Add(messageScalar(merkleRoot, sig))
	return secp256k1.NewPrivateKey(&sum)
}

// SenderMessageKey derives the public side of the same key: the
// recipient's public key combined with the message scalar's public key.
// The result equals ReceiverMessageKey's public key exactly.
func SenderMessageKey(recipientPub wire.PubKey, merkleRoot, sig []byte) (wire.PubKey, error) {
	scalar := messageScalar(merkleRoot, sig)
	return Combine(recipientPub, ExportPublicKey(secp256k1.NewPrivateKey(scalar).PubKey()))
}
