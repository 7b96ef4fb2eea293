package merkle

import "math/bits"

// Flat-tree addressing: leaves sit at even indices 0, 2, 4, ... and
// internal nodes interleave at odd indices. A node's depth is the number
// of trailing one bits in its index, and parent/sibling/child positions
// are computable from the index alone.

// Depth returns the depth of the node at index i (leaves are depth 0).
func Depth(i uint64) uint64 {
	return uint64(bits.TrailingZeros64(^i))
}

// Offset returns the node's position within its depth row.
func Offset(i uint64) uint64 {
	return i >> (Depth(i) + 1)
}

// Index returns the flat-tree index of the node at the given depth and
// row offset.
func Index(depth, offset uint64) uint64 {
	return (2*offset+1)<<depth - 1
}

// Parent returns the index of the node's parent.
func Parent(i uint64) uint64 {
	return Index(Depth(i)+1, Offset(i)>>1)
}

// Sibling returns the index of the node's sibling at the same depth.
func Sibling(i uint64) uint64 {
	return Index(Depth(i), Offset(i)^1)
}

// Children returns the two child indices, or ok=false for a leaf.
func Children(i uint64) (left, right uint64, ok bool) {
	d := Depth(i)
	if d == 0 {
		return 0, 0, false
	}
	return Index(d-1, Offset(i)*2), Index(d-1, Offset(i)*2+1), true
}

// LeftSpan returns the index of the leftmost leaf under the node.
func LeftSpan(i uint64) uint64 {
	return Offset(i) << (Depth(i) + 1)
}

// RightSpan returns the index of the rightmost leaf under the node,
// assuming a full subtree.
func RightSpan(i uint64) uint64 {
	return LeftSpan(i) + (1<<(Depth(i)+1) - 2)
}
