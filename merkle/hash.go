package merkle

import (
	"crypto/sha256"

	"github.com/zeebo/blake3"
)

// LeafFunc hashes a leaf's raw data.
type LeafFunc func(data []byte) []byte

// ParentFunc hashes the concatenation of two child hashes.
type ParentFunc func(left, right []byte) []byte

// Opts selects the hash functions for a tree build or verification.
// It is an explicit parameter on every call: there is no process-wide
// mutable default, so concurrent callers cannot interfere. The zero
// value selects SHA-256 for both roles. Proofs verify only against the
// same Opts the tree was built with.
type Opts struct {
	Leaf   LeafFunc
	Parent ParentFunc
}

// SHA256Opts returns the default hash pair: single SHA-256 over leaf
// bytes, SHA-256 over the concatenated child hashes.
func SHA256Opts() Opts {
	return Opts{Leaf: sha256Leaf, Parent: sha256Parent}
}

// Blake3Opts returns a BLAKE3-256 hash pair for callers anchoring into
// BLAKE3-addressed systems.
func Blake3Opts() Opts {
	return Opts{
		Leaf: func(data []byte) []byte {
			h := blake3.Sum256(data)
			return h[:]
		},
		Parent: func(left, right []byte) []byte {
			buf := make([]byte, 0, len(left)+len(right))
			buf = append(buf, left...)
			buf = append(buf, right...)
			h := blake3.Sum256(buf)
			return h[:]
		},
	}
}

func sha256Leaf(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

func sha256Parent(left, right []byte) []byte {
	h := sha256.New()
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}

// normalized fills nil functions with the SHA-256 defaults.
func (o Opts) normalized() Opts {
	if o.Leaf == nil {
		o.Leaf = sha256Leaf
	}
	if o.Parent == nil {
		o.Parent = sha256Parent
	}
	return o
}

// HashLeaf applies the configured (or default) leaf hash to raw bytes.
func (o Opts) HashLeaf(data []byte) []byte {
	return o.normalized().Leaf(data)
}

// HashParent applies the configured (or default) parent hash.
func (o Opts) HashParent(left, right []byte) []byte {
	return o.normalized().Parent(left, right)
}
