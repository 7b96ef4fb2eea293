// Package merkle builds binary merkle trees over ordered leaf byte
// strings with pluggable leaf/parent hash functions, addresses every
// node with a flat-tree index, and generates and verifies compact
// multi-leaf proofs.
package merkle

import (
	"sort"

	"github.com/tradle/protocol/errors"
)

// Node is a hashed tree node at a flat-tree index.
type Node struct {
	Index uint64
	Hash  []byte
}

// Leaf is a node that retains its pre-hash payload. Data is only needed
// when constructing or verifying proofs; internal nodes never carry it.
type Leaf struct {
	Node
	Data []byte
}

// Tree is an immutable merkle tree built once per operation. Nodes are
// ordered by index and there is always exactly one root.
type Tree struct {
	Nodes  []Node
	Leaves []Leaf
	Root   Node

	opts     Opts
	children map[uint64][2]uint64
	parent   map[uint64]uint64
	hashes   map[uint64][]byte
}

// Build constructs a tree over the given leaf payloads, in order.
// Leaves occupy even flat-tree indices 0, 2, 4, ...; parents are formed
// level by level. An unpaired trailing node is carried up unchanged to
// the next level, so the build always converges on a single root. A
// parent formed across depths takes the flat-tree parent index of its
// left child.
func Build(leafData [][]byte, opts Opts) (*Tree, error) {
	if len(leafData) == 0 {
		return nil, errors.InvalidInputf("cannot build a merkle tree with no leaves")
	}
	opts = opts.normalized()

	t := &Tree{
		opts:     opts,
		children: make(map[uint64][2]uint64),
		parent:   make(map[uint64]uint64),
		hashes:   make(map[uint64][]byte),
	}

	level := make([]Node, len(leafData))
	for i, data := range leafData {
		n := Node{Index: uint64(2 * i), Hash: opts.Leaf(data)}
		level[i] = n
		t.Leaves = append(t.Leaves, Leaf{Node: n, Data: data})
		t.Nodes = append(t.Nodes, n)
		t.hashes[n.Index] = n.Hash
	}

	for len(level) > 1 {
		next := make([]Node, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			left, right := level[i], level[i+1]
			p := Node{
				Index: Parent(left.Index),
				Hash:  opts.Parent(left.Hash, right.Hash),
			}
			t.children[p.Index] = [2]uint64{left.Index, right.Index}
			t.parent[left.Index] = p.Index
			t.parent[right.Index] = p.Index
			t.Nodes = append(t.Nodes, p)
			t.hashes[p.Index] = p.Hash
			next = append(next, p)
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}

	t.Root = level[0]
	sort.Slice(t.Nodes, func(i, j int) bool { return t.Nodes[i].Index < t.Nodes[j].Index })
	return t, nil
}

// Node returns the node at the given flat-tree index.
func (t *Tree) Node(index uint64) (Node, bool) {
	h, ok := t.hashes[index]
	if !ok {
		return Node{}, false
	}
	return Node{Index: index, Hash: h}, ok
}

// Opts returns the hash configuration the tree was built with.
func (t *Tree) Opts() Opts {
	return t.opts
}
