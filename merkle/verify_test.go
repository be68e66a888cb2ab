package merkle

import (
	"crypto/md5"
	"crypto/sha256"
	"hash"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVerifyLeaves checks the core membership properties for every leaf
// under several hashers and arities: the right record verifies, another
// tree member's record does not, and a record that was never in the tree
// does not.
func TestVerifyLeaves(t *testing.T) {
	dataNotInTree := []byte("message")

	tests := []struct {
		name      string
		newHasher func() hash.Hash
		leaves    [][]byte
		arity     uint64
	}{
		{"sha256 arity 2", func() hash.Hash { return sha256.New() }, singleCharLeaves("01234567"), 2},
		{"md5 arity 2", func() hash.Hash { return md5.New() }, singleCharLeaves("01234567"), 2},
		{"sha256 arity 3", func() hash.Hash { return sha256.New() }, singleCharLeaves("012345678"), 3},
		{"md5 arity 3", func() hash.Hash { return md5.New() }, singleCharLeaves("012345678"), 3},
		{"sha256 arity 4", func() hash.Hash { return sha256.New() }, singleCharLeaves("0123456789abcdef"), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Build(tt.newHasher(), tt.leaves, tt.arity)
			require.NoError(t, err)
			root := tree.Root()

			for iLeaf := uint64(0); iLeaf < tree.LeafCount(); iLeaf++ {
				proof, err := InclusionProof(tree, iLeaf)
				require.NoError(t, err)

				ok, err := VerifyInclusion(tt.newHasher(), tt.leaves[iLeaf], proof, root)
				require.NoError(t, err)
				assert.True(t, ok, "leaf %d must verify", iLeaf)

				otherLeaf := tt.leaves[(iLeaf+1)%tree.LeafCount()]
				ok, err = VerifyInclusion(tt.newHasher(), otherLeaf, proof, root)
				require.NoError(t, err)
				assert.False(t, ok, "another member's record against leaf %d's path", iLeaf)

				ok, err = VerifyInclusion(tt.newHasher(), dataNotInTree, proof, root)
				require.NoError(t, err)
				assert.False(t, ok, "alien record against leaf %d's path", iLeaf)
			}
		})
	}
}

// TestVerifyTamperedSiblings flips every byte of every sibling digest in
// every leaf's proof, one at a time, and requires each flip to defeat
// verification.
func TestVerifyTamperedSiblings(t *testing.T) {
	leaves := singleCharLeaves("012345678")
	tree, err := Build(sha256.New(), leaves, 3)
	require.NoError(t, err)
	root := tree.Root()

	for iLeaf := uint64(0); iLeaf < tree.LeafCount(); iLeaf++ {
		proof, err := InclusionProof(tree, iLeaf)
		require.NoError(t, err)

		for iStep := range proof.Path {
			for iSibling, sibling := range proof.Path[iStep].Siblings {
				for i := range sibling {
					sibling[i] ^= 0x01

					ok, err := VerifyInclusion(sha256.New(), leaves[iLeaf], proof, root)
					require.NoError(t, err)
					require.False(t, ok,
						"leaf %d step %d sibling %d byte %d: tamper not detected",
						iLeaf, iStep, iSibling, i)

					sibling[i] ^= 0x01
				}
			}
		}

		// Restore confidence that the untampered proof still holds.
		ok, err := VerifyInclusion(sha256.New(), leaves[iLeaf], proof, root)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestVerifyTamperedPosition(t *testing.T) {
	leaves := singleCharLeaves("012345678")
	tree, err := Build(sha256.New(), leaves, 3)
	require.NoError(t, err)

	proof, err := InclusionProof(tree, 4)
	require.NoError(t, err)

	// Moving the proven node within its sibling group changes the
	// concatenation order, so it must not verify.
	proof.Path[0].Position = (proof.Path[0].Position + 1) % 3
	ok, err := VerifyInclusion(sha256.New(), leaves[4], proof, tree.Root())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyMalformedProofs(t *testing.T) {
	leaves := singleCharLeaves("012345678")
	tree, err := Build(sha256.New(), leaves, 3)
	require.NoError(t, err)
	root := tree.Root()

	t.Run("empty sibling group", func(t *testing.T) {
		proof, err := InclusionProof(tree, 0)
		require.NoError(t, err)
		proof.Path[1].Siblings = nil

		_, err = VerifyInclusion(sha256.New(), leaves[0], proof, root)
		assert.ErrorIs(t, err, ErrMalformedProof)
	})

	t.Run("sibling group too short", func(t *testing.T) {
		proof, err := InclusionProof(tree, 0)
		require.NoError(t, err)
		proof.Path[1].Siblings = proof.Path[1].Siblings[:1]

		_, err = VerifyInclusion(sha256.New(), leaves[0], proof, root)
		assert.ErrorIs(t, err, ErrMalformedProof)
	})

	t.Run("position outside group", func(t *testing.T) {
		proof, err := InclusionProof(tree, 0)
		require.NoError(t, err)
		proof.Path[0].Position = 3

		_, err = VerifyInclusion(sha256.New(), leaves[0], proof, root)
		assert.ErrorIs(t, err, ErrMalformedProof)
	})

	t.Run("group sizes disagree across steps", func(t *testing.T) {
		proof, err := InclusionProof(tree, 0)
		require.NoError(t, err)
		proof.Path[1].Siblings = append(proof.Path[1].Siblings, proof.Path[1].Siblings[0])

		_, err = VerifyInclusion(sha256.New(), leaves[0], proof, root)
		assert.ErrorIs(t, err, ErrMalformedProof)
	})
}

// TestVerifyConcurrent shares one immutable tree between goroutines, each
// extracting and verifying proofs with its own hasher.
func TestVerifyConcurrent(t *testing.T) {
	leaves := singleCharLeaves("0123456789abcdef")
	tree, err := Build(sha256.New(), leaves, 2)
	require.NoError(t, err)
	root := tree.Root()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hasher := sha256.New()
			for iLeaf := uint64(0); iLeaf < tree.LeafCount(); iLeaf++ {
				proof, err := InclusionProof(tree, iLeaf)
				assert.NoError(t, err)
				ok, err := VerifyInclusion(hasher, leaves[iLeaf], proof, root)
				assert.NoError(t, err)
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}

func TestIncludedRootIsLeafHashForEmptyPath(t *testing.T) {
	leafHash := sha256.Sum256([]byte("solitary"))

	root, err := IncludedRoot(sha256.New(), leafHash[:], Proof{})
	require.NoError(t, err)
	assert.Equal(t, leafHash[:], root)
}
