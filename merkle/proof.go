package merkle

import (
	"bytes"
	"fmt"
)

// ProofStep is one row of an authentication path: the digests of the
// proven node's arity-1 siblings, in their original left to right order,
// and the position of the proven node within the full arity-wide group.
type ProofStep struct {
	Siblings [][]byte
	Position uint64
}

// Proof is the authentication path for a single leaf. Path is ordered from
// the leaf row upward and has one step per row below the root, so a single
// leaf tree has an empty path. Proofs are derived values; they hold copies
// of the sibling digests and are independent of the tree they came from.
type Proof struct {
	LeafIndex uint64
	Path      []ProofStep
}

// InclusionProof collects the authentication path committing leaf iLeaf to
// the tree's root.
//
// At each row the proven node's sibling group is read via Parent and
// Children, the proven node's own digest is omitted, and its position in
// the group recorded. Verifiers reinsert their recomputed digest at that
// position, see IncludedRoot.
//
// For the arity 2 tree below, iLeaf 2 yields the path
//
//	[(siblings [h3], position 0), (siblings [h01], position 1)]
//
//	        6
//	      /   \
//	     4     5
//	    / \   / \
//	   0   1 2   3
func InclusionProof(t *Tree, iLeaf uint64) (Proof, error) {
	if iLeaf >= t.leafCount {
		return Proof{}, fmt.Errorf(
			"%w: leaf %d, leaf count %d", ErrIndexOutOfRange, iLeaf, t.leafCount)
	}

	proof := Proof{LeafIndex: iLeaf}

	// iLeaf is also the node index, leaves occupy row 0. The walk ends at
	// the root, which has no parent.
	for i := iLeaf; i != t.length-1; {

		iParent, err := t.Parent(i)
		if err != nil {
			return Proof{}, err
		}
		group, err := t.Children(iParent)
		if err != nil {
			return Proof{}, err
		}

		step := ProofStep{Siblings: make([][]byte, 0, t.arity-1)}
		for j, iSibling := range group {
			if iSibling == i {
				step.Position = uint64(j)
				continue
			}
			step.Siblings = append(step.Siblings, bytes.Clone(t.node(iSibling)))
		}

		proof.Path = append(proof.Path, step)
		i = iParent
	}
	return proof, nil
}

// InclusionProofPath returns, for each row below the root, the node
// indices of the witnesses that InclusionProof would collect for iLeaf.
// This allows tooling to audit the individual witness values of a path.
func InclusionProofPath(t *Tree, iLeaf uint64) ([][]uint64, error) {
	if iLeaf >= t.leafCount {
		return nil, fmt.Errorf(
			"%w: leaf %d, leaf count %d", ErrIndexOutOfRange, iLeaf, t.leafCount)
	}

	var path [][]uint64
	for i := iLeaf; i != t.length-1; {

		iParent, err := t.Parent(i)
		if err != nil {
			return nil, err
		}
		group, err := t.Children(iParent)
		if err != nil {
			return nil, err
		}

		witnesses := make([]uint64, 0, t.arity-1)
		for _, iSibling := range group {
			if iSibling == i {
				continue
			}
			witnesses = append(witnesses, iSibling)
		}

		path = append(path, witnesses)
		i = iParent
	}
	return path, nil
}
