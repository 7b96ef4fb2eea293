package merkle

import (
	"bytes"
	"sort"

	"github.com/tradle/protocol/errors"
)

// Prove returns the minimal node set an independent verifier needs to
// recompute the root starting from any of the given leaves, without
// revealing other leaves' raw data. The set contains the target leaves'
// hash nodes plus the uncomputable siblings along their paths, ordered
// by index, so the output is stable regardless of the order leaf
// indices were supplied in.
func (t *Tree) Prove(leafIndices []uint64) ([]Node, error) {
	if len(leafIndices) == 0 {
		return nil, errors.InvalidInputf("nothing to prove")
	}
	targets := make(map[uint64]bool, len(leafIndices))
	for _, i := range leafIndices {
		if i%2 != 0 {
			return nil, errors.InvalidInputf("index %d is not a leaf", i)
		}
		if _, ok := t.hashes[i]; !ok {
			return nil, errors.InvalidInputf("no leaf at index %d", i)
		}
		targets[i] = true
	}

	// covered: the node's hash is derivable from target leaves alone
	covered := make(map[uint64]bool)
	var isCovered func(i uint64) bool
	isCovered = func(i uint64) bool {
		if c, ok := covered[i]; ok {
			return c
		}
		c := targets[i]
		if !c {
			if ch, ok := t.children[i]; ok {
				c = isCovered(ch[0]) && isCovered(ch[1])
			}
		}
		covered[i] = c
		return c
	}

	// onPath: ancestors of target leaves
	onPath := make(map[uint64]bool)
	for i := range targets {
		for {
			p, ok := t.parent[i]
			if !ok {
				break
			}
			onPath[p] = true
			i = p
		}
	}

	include := make(map[uint64]bool, len(targets))
	for i := range targets {
		include[i] = true
	}
	for p := range onPath {
		ch := t.children[p]
		for _, c := range ch[:] {
			if onPath[c] || isCovered(c) {
				continue
			}
			include[c] = true
		}
	}

	proof := make([]Node, 0, len(include))
	for i := range include {
		proof = append(proof, Node{Index: i, Hash: t.hashes[i]})
	}
	sort.Slice(proof, func(i, j int) bool { return proof[i].Index < proof[j].Index })
	return proof, nil
}

// VerifyProof checks that the target leaf is bound to the given root by
// the proof, using the same hash configuration the tree was built with.
// It is a predicate: any malformed or non-matching proof yields false,
// never an error. If the leaf carries Data its hash is recomputed; a
// hash-only leaf is trusted as-is.
func VerifyProof(proof []Node, leaf Leaf, root []byte, opts Opts) bool {
	if len(root) == 0 || leaf.Index%2 != 0 {
		return false
	}
	opts = opts.normalized()

	leafHash := leaf.Hash
	if leaf.Data != nil {
		leafHash = opts.Leaf(leaf.Data)
	}
	if leafHash == nil {
		return false
	}

	type entry struct {
		index     uint64
		hash      []byte
		hasTarget bool
	}
	var known []entry
	seen := map[uint64]bool{leaf.Index: true}
	known = append(known, entry{index: leaf.Index, hash: leafHash, hasTarget: true})
	for _, n := range proof {
		if n.Index == leaf.Index {
			// the proof's copy of the target must agree with the leaf data
			if !bytes.Equal(n.Hash, leafHash) {
				return false
			}
			continue
		}
		if seen[n.Index] || len(n.Hash) == 0 {
			return false
		}
		seen[n.Index] = true
		known = append(known, entry{index: n.Index, hash: n.Hash})
	}

	merge := func(li, ri int, parentIndex uint64) {
		l, r := known[li], known[ri]
		p := entry{
			index:     parentIndex,
			hash:      opts.Parent(l.hash, r.hash),
			hasTarget: l.hasTarget || r.hasTarget,
		}
		out := known[:0]
		for i, e := range known {
			if i != li && i != ri {
				out = append(out, e)
			}
		}
		known = append(out, p)
		sort.Slice(known, func(i, j int) bool { return known[i].index < known[j].index })
	}

	for guard := 0; guard <= len(proof)+64; guard++ {
		sort.Slice(known, func(i, j int) bool { return known[i].index < known[j].index })
		for _, e := range known {
			if e.hasTarget && bytes.Equal(e.hash, root) {
				return true
			}
		}

		// true sibling pairs merge first; they are always genuine
		merged := false
		for i := 0; i+1 < len(known); i++ {
			if Sibling(known[i].index) == known[i+1].index {
				merge(i, i+1, Parent(known[i].index))
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		// remaining nodes are perfect-subtree roots: the trailing
		// carried node merges right-to-left, parent indexed off the
		// left child
		for i := len(known) - 2; i >= 0; i-- {
			l, r := known[i], known[i+1]
			if RightSpan(l.index)+2 == LeftSpan(r.index) && Depth(r.index) < Depth(l.index) {
				merge(i, i+1, Parent(l.index))
				merged = true
				break
			}
		}
		if !merged {
			return false
		}
	}
	return false
}
