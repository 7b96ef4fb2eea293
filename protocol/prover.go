package protocol

import (
	"github.com/tradle/protocol/errors"
	"github.com/tradle/protocol/merkle"
	"github.com/tradle/protocol/object"
)

// Prover accumulates property names to reveal and produces a compact
// merkle proof over the object's body. Add calls chain; errors are
// deferred to Proof so partial-reveal construction reads linearly.
type Prover struct {
	tree    *merkle.Tree
	indices map[string]Indices
	targets []uint64
	err     error
}

// NewProver builds the object's tree once; subsequent Add/Proof calls
// work against it.
func NewProver(o object.Object, opts merkle.Opts) (*Prover, error) {
	tree, indices, err := ObjectTree(o, opts)
	if err != nil {
		return nil, err
	}
	return &Prover{tree: tree, indices: indices}, nil
}

// Add marks a property for revelation. Key and value select which of
// the property's two leaves to reveal; at least one must be set.
func (p *Prover) Add(name string, key, value bool) *Prover {
	if p.err != nil {
		return p
	}
	idx, ok := p.indices[name]
	if !ok {
		p.err = errors.InvalidPropertyf("no such property %q", name)
		return p
	}
	if !key && !value {
		p.err = errors.InvalidInputf("property %q selects neither key nor value", name)
		return p
	}
	if key {
		p.targets = append(p.targets, idx.Key)
	}
	if value {
		p.targets = append(p.targets, idx.Value)
	}
	return p
}

// AddProperty reveals both the key and the value of a property.
func (p *Prover) AddProperty(name string) *Prover {
	return p.Add(name, true, true)
}

// Proof returns the proof nodes for the accumulated targets. Each
// revealed leaf can be verified independently against the tree's root
// with merkle.VerifyProof.
func (p *Prover) Proof() ([]merkle.Node, error) {
	if p.err != nil {
		return nil, p.err
	}
	if len(p.targets) == 0 {
		return nil, errors.InvalidInputf("nothing to prove")
	}
	return p.tree.Prove(p.targets)
}

// Leaf returns the tree leaf at a flat-tree index, for handing to
// merkle.VerifyProof alongside the proof.
func (p *Prover) Leaf(index uint64) (merkle.Leaf, bool) {
	for _, l := range p.tree.Leaves {
		if l.Index == index {
			return l, true
		}
	}
	return merkle.Leaf{}, false
}

// Root returns the root digest the proof commits to.
func (p *Prover) Root() []byte {
	return p.tree.Root.Hash
}

// Indices exposes the property-to-leaf-index layout of the tree.
func (p *Prover) Indices() map[string]Indices {
	return p.indices
}
