package protocol

import (
	"github.com/tradle/protocol/media"
	"github.com/tradle/protocol/merkle"
	"github.com/tradle/protocol/object"
)

// Indices locates a property's two leaves in the flat-tree index space.
type Indices struct {
	Key   uint64
	Value uint64
}

// ObjectTree builds the merkle tree over an object's body. Header
// properties are excluded, embedded media is normalized, and the
// remaining properties are laid out in canonical key order: property n
// contributes its stringified key at flat-tree index 4n and its
// stringified value at 4n+2. The returned map locates each property by
// name.
func ObjectTree(o object.Object, opts merkle.Opts) (*merkle.Tree, map[string]Indices, error) {
	body := object.RemoveHeader(media.Normalize(o, opts))
	keys := object.SortedKeys(body)

	leaves := make([][]byte, 0, 2*len(keys))
	indices := make(map[string]Indices, len(keys))
	for n, k := range keys {
		ks, err := object.Stringify(k)
		if err != nil {
			return nil, nil, err
		}
		vs, err := object.Stringify(body[k])
		if err != nil {
			return nil, nil, err
		}
		leaves = append(leaves, ks, vs)
		indices[k] = Indices{Key: uint64(4 * n), Value: uint64(4*n + 2)}
	}

	tree, err := merkle.Build(leaves, opts)
	if err != nil {
		return nil, nil, err
	}
	return tree, indices, nil
}

// MerkleRoot computes the root digest an object's signature covers.
func MerkleRoot(o object.Object, opts merkle.Opts) ([]byte, error) {
	tree, _, err := ObjectTree(o, opts)
	if err != nil {
		return nil, err
	}
	return tree.Root.Hash, nil
}
