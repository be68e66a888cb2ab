package merkle

import (
	"errors"
	"fmt"
	"hash"
)

var (
	ErrMalformedProof = errors.New("proof structure is damaged or forged")
)

// IncludedRoot calculates the root implied by committing leafHash with the
// provided authentication path. Callers compare the result against a root
// they trust; see VerifyInclusion for the usual form of that check.
//
// At each step the running digest is reinserted at the recorded position
// among the recorded siblings, and the full group is hashed in index
// order, reproducing exactly what Build did for the corresponding row.
//
// The proof structure is validated as it is walked. A sibling group whose
// size disagrees with the first step's, or a position outside the group,
// fails with ErrMalformedProof. Digest values are never judged here, only
// structure; a forged sibling value simply produces a root that will not
// match.
func IncludedRoot(hasher hash.Hash, leafHash []byte, proof Proof) ([]byte, error) {

	root := leafHash

	for iStep, step := range proof.Path {

		// The group width is self-describing: siblings plus the proven
		// node. It must agree at every step, a tree has one arity.
		arity := uint64(len(step.Siblings)) + 1
		if len(step.Siblings) == 0 {
			return nil, fmt.Errorf(
				"%w: step %d has an empty sibling group", ErrMalformedProof, iStep)
		}
		if want := uint64(len(proof.Path[0].Siblings)) + 1; arity != want {
			return nil, fmt.Errorf(
				"%w: step %d has %d siblings, expected %d",
				ErrMalformedProof, iStep, len(step.Siblings), want-1)
		}
		if step.Position >= arity {
			return nil, fmt.Errorf(
				"%w: step %d position %d outside group of %d",
				ErrMalformedProof, iStep, step.Position, arity)
		}

		hasher.Reset()
		for j := uint64(0); j < arity; j++ {
			switch {
			case j == step.Position:
				hasher.Write(root)
			case j < step.Position:
				hasher.Write(step.Siblings[j])
			default:
				hasher.Write(step.Siblings[j-1])
			}
		}
		root = hasher.Sum(nil)
	}

	return root, nil
}
