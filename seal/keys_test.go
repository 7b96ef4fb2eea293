package seal

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradle/protocol/errors"
	"github.com/tradle/protocol/wire"
)

func digest(s string) []byte {
	h := sha256.Sum256([]byte(s))
	return h[:]
}

func TestScalarFromHashDirect(t *testing.T) {
	// a digest comfortably below the curve order maps to itself
	h := digest("an ordinary hash")
	h[0] = 0x01

	s := ScalarFromHash(h)
	got := s.Bytes()
	assert.Equal(t, h, got[:])
}

func TestScalarFromHashRehashesInvalidInput(t *testing.T) {
	// 32 bytes of 0xff exceeds the curve order and must be re-hashed
	invalid := bytes.Repeat([]byte{0xff}, 32)

	s := ScalarFromHash(invalid)
	require.False(t, s.IsZero())

	// the retry rule is deterministic
	again := ScalarFromHash(bytes.Repeat([]byte{0xff}, 32))
	a, b := s.Bytes(), again.Bytes()
	assert.Equal(t, a, b)

	// and lands on sha256 of the invalid input here
	rehashed := sha256.Sum256(invalid)
	got := s.Bytes()
	assert.Equal(t, rehashed[:], got[:])
}

func TestScalarFromHashZeroInput(t *testing.T) {
	s := ScalarFromHash(make([]byte, 32))
	assert.False(t, s.IsZero())
}

func TestScalarFromHashNon32ByteInput(t *testing.T) {
	s := ScalarFromHash([]byte("short"))
	assert.False(t, s.IsZero())

	h := sha256.Sum256([]byte("short"))
	expected := ScalarFromHash(h[:])
	a, b := s.Bytes(), expected.Bytes()
	assert.Equal(t, b, a)
}

func TestPublicKeyFromHashDeterministic(t *testing.T) {
	a := PublicKeyFromHash(digest("x"))
	b := PublicKeyFromHash(digest("x"))
	c := PublicKeyFromHash(digest("y"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, wire.CurveSecp256k1, a.Curve)
	assert.Len(t, a.Pub, 33)
}

func TestCombineCommutative(t *testing.T) {
	a := PublicKeyFromHash(digest("a"))
	b := PublicKeyFromHash(digest("b"))

	ab, err := Combine(a, b)
	require.NoError(t, err)
	ba, err := Combine(b, a)
	require.NoError(t, err)
	assert.True(t, ab.Equal(ba))
	assert.False(t, ab.Equal(a))
}

func TestCombineCurveMismatch(t *testing.T) {
	a := PublicKeyFromHash(digest("a"))
	b := PublicKeyFromHash(digest("b"))
	b.Curve = "p256"

	_, err := Combine(a, b)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestCombineMalformedPoint(t *testing.T) {
	a := PublicKeyFromHash(digest("a"))
	bad := wire.PubKey{Curve: wire.CurveSecp256k1, Pub: []byte{0x02, 0x01}}

	_, err := Combine(a, bad)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestImportRejectsUnknownCurve(t *testing.T) {
	k := PublicKeyFromHash(digest("a"))
	k.Curve = "ed25519"
	_, err := ImportPublicKey(k)
	require.Error(t, err)
}

func TestAddress(t *testing.T) {
	k := PublicKeyFromHash(digest("a"))
	addr := Address(k)
	assert.NotEmpty(t, addr)
	assert.Equal(t, addr, Address(k))
}
