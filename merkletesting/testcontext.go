// Package merkletesting provides the shared test context and deterministic
// data generation used by the merkle and seals package tests.
package merkletesting

import (
	"fmt"
	"hash"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/forestrie/go-merkletree/merkle"
)

type TestConfig struct {
	// We seed the RNG with Seed. It is normal to force it to some fixed
	// value so that the generated data is the same from run to run.
	Seed            int64
	LeafSize        int // defaults to 32
	TestLabelPrefix string
}

type TestContext struct {
	T    *testing.T
	Log  *zap.SugaredLogger
	Rand *rand.Rand
	Cfg  TestConfig
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	if cfg.LeafSize == 0 {
		cfg.LeafSize = 32
	}
	return TestContext{
		T:    t,
		Log:  zaptest.NewLogger(t).Sugar().Named(cfg.TestLabelPrefix),
		Rand: rand.New(rand.NewSource(cfg.Seed)),
		Cfg:  cfg,
	}
}

// GenerateLeaves produces count pseudo random leaf records of LeafSize
// bytes. The sequence is fully determined by the context's seed.
func (c *TestContext) GenerateLeaves(count uint64) [][]byte {
	leaves := make([][]byte, count)
	for i := range leaves {
		leaves[i] = make([]byte, c.Cfg.LeafSize)
		c.Rand.Read(leaves[i])
	}
	return leaves
}

// GenerateUUIDLeaves produces count leaf records resembling event
// identities. The uuids are drawn from the seeded RNG so the records are
// stable from run to run.
func (c *TestContext) GenerateUUIDLeaves(count uint64) [][]byte {
	leaves := make([][]byte, count)
	for i := range leaves {
		id, err := uuid.NewRandomFromReader(c.Rand)
		require.NoError(c.T, err)
		leaves[i] = []byte(fmt.Sprintf("%s/events/%s", c.Cfg.TestLabelPrefix, id.String()))
	}
	return leaves
}

// RequireProofsVerify extracts and verifies the authentication path for
// every leaf of the tree, failing the test on the first leaf whose proof
// does not reproduce the root.
func (c *TestContext) RequireProofsVerify(t *merkle.Tree, hasher hash.Hash, leaves [][]byte) {
	root := t.Root()
	for iLeaf := uint64(0); iLeaf < t.LeafCount(); iLeaf++ {
		proof, err := merkle.InclusionProof(t, iLeaf)
		require.NoError(c.T, err)

		ok, err := merkle.VerifyInclusion(hasher, leaves[iLeaf], proof, root)
		require.NoError(c.T, err)
		require.True(c.T, ok, "leaf %d failed to verify", iLeaf)
	}
	c.Log.Infow("verified all leaf proofs", "leaves", t.LeafCount(), "arity", t.Arity())
}
