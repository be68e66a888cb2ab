package merkle

import (
	"bytes"
	"hash"
)

// VerifyInclusion reports whether leafData, combined with the
// authentication path in proof, reproduces the expected root.
//
// A digest mismatch anywhere along the path is the normal negative
// result and returns (false, nil); it is what tampered leaf data, a
// mismatched path, or a forged sibling value all look like. Only a
// structurally damaged proof returns an error, see IncludedRoot.
//
// Membership proofs are not secrets, so no constant time comparison is
// required or attempted.
func VerifyInclusion(hasher hash.Hash, leafData []byte, proof Proof, root []byte) (bool, error) {

	hasher.Reset()
	hasher.Write(leafData)
	leafHash := hasher.Sum(nil)

	proven, err := IncludedRoot(hasher, leafHash, proof)
	if err != nil {
		return false, err
	}
	return bytes.Equal(proven, root), nil
}
