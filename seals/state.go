package seals

import (
	"time"

	"github.com/forestrie/go-merkletree/merkle"
)

// TreeState defines the details we include in a signed commitment to a
// fully built tree. Leaf count and arity fix the complete structure of the
// tree, so together with the root digest they pin every node value.
type TreeState struct {
	LeafCount uint64 `cbor:"1,keyasint"`
	Arity     uint64 `cbor:"2,keyasint"`

	// Root is the tree's root digest. It is detached from the payload that
	// travels with the seal, so that verifiers are forced to reproduce it
	// from data they hold; see RootSigner.Sign1.
	Root []byte `cbor:"3,keyasint"`

	// Timestamp is the unix time (milliseconds) read at the time the root
	// was signed. Including it allows the same root to be re-signed.
	Timestamp int64 `cbor:"4,keyasint"`

	// Issuer identifies the sealing authority. Committing to it in the
	// payload binds the state to that authority, not just to the key.
	Issuer string `cbor:"5,keyasint"`
}

// NewTreeState captures the sealable state of a built tree.
func NewTreeState(t *merkle.Tree, issuer string) TreeState {
	root := make([]byte, t.DigestSize())
	copy(root, t.Root())
	return TreeState{
		LeafCount: t.LeafCount(),
		Arity:     t.Arity(),
		Root:      root,
		Timestamp: time.Now().UnixMilli(),
		Issuer:    issuer,
	}
}
