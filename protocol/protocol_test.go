package protocol

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradle/protocol/errors"
	"github.com/tradle/protocol/merkle"
	"github.com/tradle/protocol/object"
	"github.com/tradle/protocol/seal"
	"github.com/tradle/protocol/wire"
)

// known-good root for the fixture object below; computed by an
// independent implementation of the same canonicalization and tree
// layout
const fixtureRootHex = "6c3ab579db3e7a43f768912216436035aadc04e9c9a24eeb23654c9cf635b135"

func fixtureObject() object.Object {
	return object.Object{
		object.TypeProp:      "something",
		object.AuthorProp:    "bob",
		object.TimestampProp: int64(12345),
		object.ProtocolProp:  "4.0.0",
		"a":                  int64(1),
		"b":                  int64(2),
	}
}

func newSigner(t *testing.T) (wire.PubKey, SignFunc) {
	t.Helper()
	priv, err := seal.GenerateKey()
	require.NoError(t, err)
	pub := seal.ExportPublicKey(priv.PubKey())
	return pub, func(digest []byte) ([]byte, error) {
		return seal.Sign(priv, digest)
	}
}

func signFixture(t *testing.T) (object.Object, wire.PubKey) {
	t.Helper()
	pub, sign := newSigner(t)
	signed, err := Sign(SignOpts{
		Object: fixtureObject(),
		PubKey: pub,
		Sign:   sign,
		Merkle: merkle.SHA256Opts(),
	})
	require.NoError(t, err)
	return signed, pub
}

func TestMerkleRootKnownVector(t *testing.T) {
	root, err := MerkleRoot(fixtureObject(), merkle.SHA256Opts())
	require.NoError(t, err)
	assert.Equal(t, fixtureRootHex, hex.EncodeToString(root))
}

func TestMerkleRootIgnoresHeaderProps(t *testing.T) {
	o := fixtureObject()
	o[object.SigProp] = "AQID"
	o[object.WitnessesProp] = []any{map[string]any{"a": "x", "s": "y"}}

	root, err := MerkleRoot(o, merkle.SHA256Opts())
	require.NoError(t, err)
	assert.Equal(t, fixtureRootHex, hex.EncodeToString(root))
}

func TestMerkleRootRejectsUndefined(t *testing.T) {
	o := fixtureObject()
	o["bad"] = object.Undefined
	_, err := MerkleRoot(o, merkle.SHA256Opts())
	require.Error(t, err)
}

func TestObjectTreeIndices(t *testing.T) {
	_, indices, err := ObjectTree(fixtureObject(), merkle.SHA256Opts())
	require.NoError(t, err)

	// canonical key order: _author, _protocol, _t, _time, a, b
	assert.Equal(t, Indices{Key: 0, Value: 2}, indices[object.AuthorProp])
	assert.Equal(t, Indices{Key: 4, Value: 6}, indices[object.ProtocolProp])
	assert.Equal(t, Indices{Key: 8, Value: 10}, indices[object.TypeProp])
	assert.Equal(t, Indices{Key: 12, Value: 14}, indices[object.TimestampProp])
	assert.Equal(t, Indices{Key: 16, Value: 18}, indices["a"])
	assert.Equal(t, Indices{Key: 20, Value: 22}, indices["b"])
}

func TestHeaderHashKnownVector(t *testing.T) {
	o := fixtureObject()
	o[object.SigProp] = "AQID"

	h, err := HeaderHash(o, merkle.SHA256Opts())
	require.NoError(t, err)
	assert.Equal(t,
		"14bc426da01d42160b6f8d0a0b7252a5f00121047b9defdebe7596d88f1a3bc9",
		hex.EncodeToString(h))

	// raw signature bytes canonicalize to the same base64 text
	o[object.SigProp] = []byte{1, 2, 3}
	h2, err := HeaderHash(o, merkle.SHA256Opts())
	require.NoError(t, err)
	assert.Equal(t, h, h2)
}

func TestHeaderHashRequiresSignature(t *testing.T) {
	_, err := HeaderHash(fixtureObject(), merkle.SHA256Opts())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotSigned))
}

func TestLinkEqualsHeaderHash(t *testing.T) {
	signed, _ := signFixture(t)

	link, err := Link(signed, merkle.SHA256Opts())
	require.NoError(t, err)
	h, err := HeaderHash(signed, merkle.SHA256Opts())
	require.NoError(t, err)
	assert.Equal(t, h, link)
	assert.Len(t, link, LinkSize)
}

func TestIteratedHeaderHash(t *testing.T) {
	h := sha256.Sum256([]byte("header"))
	want := sha256.Sum256(h[:])
	assert.Equal(t, want[:], IteratedHeaderHash(h[:], merkle.SHA256Opts()))
}

func TestLinkOf(t *testing.T) {
	signed, _ := signFixture(t)
	link, err := Link(signed, merkle.SHA256Opts())
	require.NoError(t, err)

	fromObject, err := LinkOf(signed, merkle.SHA256Opts())
	require.NoError(t, err)
	assert.Equal(t, link, fromObject)

	fromBytes, err := LinkOf(link, merkle.SHA256Opts())
	require.NoError(t, err)
	assert.Equal(t, link, fromBytes)

	fromHex, err := LinkOf(LinkString(link), merkle.SHA256Opts())
	require.NoError(t, err)
	assert.Equal(t, link, fromHex)

	_, err = LinkOf([]byte{1, 2}, merkle.SHA256Opts())
	require.Error(t, err)
	_, err = LinkOf("not hex", merkle.SHA256Opts())
	require.Error(t, err)
	_, err = LinkOf(42, merkle.SHA256Opts())
	require.Error(t, err)
}

func TestSignVerify(t *testing.T) {
	signed, pub := signFixture(t)

	require.True(t, signed.IsSigned())
	assert.True(t, VerifySig(signed, nil, merkle.SHA256Opts()))

	gotPub, err := SigPubKey(signed)
	require.NoError(t, err)
	assert.True(t, pub.Equal(gotPub))
}

func TestSignDoesNotMutateInput(t *testing.T) {
	o := fixtureObject()
	pub, sign := newSigner(t)
	_, err := Sign(SignOpts{Object: o, PubKey: pub, Sign: sign, Merkle: merkle.SHA256Opts()})
	require.NoError(t, err)
	assert.NotContains(t, o, object.SigProp)
}

func TestSignRejectsSignedObject(t *testing.T) {
	signed, _ := signFixture(t)
	pub, sign := newSigner(t)
	_, err := Sign(SignOpts{Object: signed, PubKey: pub, Sign: sign, Merkle: merkle.SHA256Opts()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSigned))
}

func TestSignRejectsInvalidObject(t *testing.T) {
	o := fixtureObject()
	delete(o, object.TypeProp)
	pub, sign := newSigner(t)
	_, err := Sign(SignOpts{Object: o, PubKey: pub, Sign: sign, Merkle: merkle.SHA256Opts()})
	require.Error(t, err)
}

func TestVerifySigDetectsBodyTampering(t *testing.T) {
	signed, _ := signFixture(t)
	signed["a"] = int64(999)
	assert.False(t, VerifySig(signed, nil, merkle.SHA256Opts()))
}

func TestVerifySigDetectsWrongKey(t *testing.T) {
	signed, _ := signFixture(t)
	otherPub, _ := newSigner(t)

	record, err := SigRecord(signed)
	require.NoError(t, err)
	record.PubKey = otherPub
	signed[object.SigProp] = record.Marshal()
	assert.False(t, VerifySig(signed, nil, merkle.SHA256Opts()))
}

func TestVerifySigUnsigned(t *testing.T) {
	assert.False(t, VerifySig(fixtureObject(), nil, merkle.SHA256Opts()))
}

func TestCreateObject(t *testing.T) {
	o := fixtureObject()
	o["photo"] = "data:image/png;base64,AQID"

	created, err := CreateObject(o, merkle.SHA256Opts())
	require.NoError(t, err)

	want := sha256.Sum256([]byte{1, 2, 3})
	assert.Equal(t, hex.EncodeToString(want[:]), created["photo"])
	assert.Equal(t, "data:image/png;base64,AQID", o["photo"])
}

func TestWitness(t *testing.T) {
	signed, _ := signFixture(t)
	witnessPub, witnessSign := newSigner(t)

	witnessed, err := Witness(WitnessOpts{
		Object: signed,
		Author: "aa11",
		PubKey: witnessPub,
		Sign:   witnessSign,
		Merkle: merkle.SHA256Opts(),
	})
	require.NoError(t, err)

	// witnessing leaves the original and its primary signature intact
	assert.NotContains(t, signed, object.WitnessesProp)
	assert.True(t, VerifySig(witnessed, nil, merkle.SHA256Opts()))
	assert.True(t, VerifyWitnesses(witnessed, nil, merkle.SHA256Opts()))

	entries := witnessed[object.WitnessesProp].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "aa11", entries[0].(map[string]any)["a"])
}

func TestWitnessRequiresSignedObject(t *testing.T) {
	pub, sign := newSigner(t)
	_, err := Witness(WitnessOpts{
		Object: fixtureObject(),
		Author: "aa11",
		PubKey: pub,
		Sign:   sign,
		Merkle: merkle.SHA256Opts(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotSigned))
}

func TestVerifyWitnessesDetectsTampering(t *testing.T) {
	signed, _ := signFixture(t)
	pub, sign := newSigner(t)
	witnessed, err := Witness(WitnessOpts{
		Object: signed, Author: "aa11", PubKey: pub, Sign: sign, Merkle: merkle.SHA256Opts(),
	})
	require.NoError(t, err)

	witnessed["a"] = int64(999)
	assert.False(t, VerifyWitnesses(witnessed, nil, merkle.SHA256Opts()))
}

func TestVerifyWitnessesNoWitnesses(t *testing.T) {
	signed, _ := signFixture(t)
	assert.True(t, VerifyWitnesses(signed, nil, merkle.SHA256Opts()))
}

func TestSealKeyDerivation(t *testing.T) {
	signed, _ := signFixture(t)
	basePriv, err := seal.GenerateKey()
	require.NoError(t, err)
	base := seal.ExportPublicKey(basePriv.PubKey())

	sealKey, err := CalcSealPubKey(base, signed, merkle.SHA256Opts())
	require.NoError(t, err)
	assert.True(t, VerifySealPubKey(base, signed, sealKey, merkle.SHA256Opts()))

	// first versions have no transition seal
	_, err = CalcSealPrevPubKey(base, signed, merkle.SHA256Opts())
	require.Error(t, err)
}

func TestSealPrevKeyOnSuccessor(t *testing.T) {
	signed, _ := signFixture(t)
	next, err := NextVersion(signed, merkle.SHA256Opts())
	require.NoError(t, err)

	pub, sign := newSigner(t)
	signedNext, err := Sign(SignOpts{Object: next, PubKey: pub, Sign: sign, Merkle: merkle.SHA256Opts()})
	require.NoError(t, err)

	basePriv, err := seal.GenerateKey()
	require.NoError(t, err)
	base := seal.ExportPublicKey(basePriv.PubKey())

	prevKey, err := CalcSealPrevPubKey(base, signedNext, merkle.SHA256Opts())
	require.NoError(t, err)
	assert.True(t, VerifySealPrevPubKey(base, signedNext, prevKey, merkle.SHA256Opts()))

	// distinct from sealing the predecessor itself
	sealKey, err := CalcSealPubKey(base, signed, merkle.SHA256Opts())
	require.NoError(t, err)
	assert.False(t, sealKey.Equal(prevKey))
}

func TestProverRoundTrip(t *testing.T) {
	o := fixtureObject()
	prover, err := NewProver(o, merkle.SHA256Opts())
	require.NoError(t, err)

	proof, err := prover.Add("a", true, true).Proof()
	require.NoError(t, err)
	require.NotEmpty(t, proof)

	idx := prover.Indices()["a"]
	for _, target := range []uint64{idx.Key, idx.Value} {
		leaf, ok := prover.Leaf(target)
		require.True(t, ok)
		assert.True(t, merkle.VerifyProof(proof, leaf, prover.Root(), merkle.SHA256Opts()))
	}

	// a leaf outside the revealed set does not verify
	other, ok := prover.Leaf(prover.Indices()["b"].Value)
	require.True(t, ok)
	assert.False(t, merkle.VerifyProof(proof, other, prover.Root(), merkle.SHA256Opts()))
}

func TestProverValueOnly(t *testing.T) {
	prover, err := NewProver(fixtureObject(), merkle.SHA256Opts())
	require.NoError(t, err)

	proof, err := prover.Add(object.TypeProp, false, true).Proof()
	require.NoError(t, err)

	leaf, ok := prover.Leaf(prover.Indices()[object.TypeProp].Value)
	require.True(t, ok)
	assert.True(t, merkle.VerifyProof(proof, leaf, prover.Root(), merkle.SHA256Opts()))
}

func TestProverErrors(t *testing.T) {
	prover, err := NewProver(fixtureObject(), merkle.SHA256Opts())
	require.NoError(t, err)

	_, err = prover.Add("nope", true, true).Proof()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidProperty(err))

	prover, err = NewProver(fixtureObject(), merkle.SHA256Opts())
	require.NoError(t, err)
	_, err = prover.Add("a", false, false).Proof()
	require.Error(t, err)

	prover, err = NewProver(fixtureObject(), merkle.SHA256Opts())
	require.NoError(t, err)
	_, err = prover.Proof()
	require.Error(t, err)
}
