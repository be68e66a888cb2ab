package seals

import (
	"bytes"
	"hash"

	"github.com/forestrie/go-merkletree/merkle"
)

// ReceiptStep is the wire form of one authentication path step.
type ReceiptStep struct {
	Siblings [][]byte `cbor:"1,keyasint"`
	Position uint64   `cbor:"2,keyasint"`
}

// InclusionReceipt is the wire form of a single leaf's authentication
// path. Holders of a sealed root use it to check a leaf they care about
// without access to the tree.
type InclusionReceipt struct {
	LeafIndex uint64        `cbor:"1,keyasint"`
	Path      []ReceiptStep `cbor:"2,keyasint"`
}

// NewInclusionReceipt converts an extracted proof to its wire form.
func NewInclusionReceipt(proof merkle.Proof) InclusionReceipt {
	r := InclusionReceipt{
		LeafIndex: proof.LeafIndex,
		Path:      make([]ReceiptStep, len(proof.Path)),
	}
	for i, step := range proof.Path {
		r.Path[i] = ReceiptStep{Siblings: step.Siblings, Position: step.Position}
	}
	return r
}

// Proof converts the receipt back to the core proof type.
func (r InclusionReceipt) Proof() merkle.Proof {
	proof := merkle.Proof{
		LeafIndex: r.LeafIndex,
		Path:      make([]merkle.ProofStep, len(r.Path)),
	}
	for i, step := range r.Path {
		proof.Path[i] = merkle.ProofStep{Siblings: step.Siblings, Position: step.Position}
	}
	return proof
}

// VerifyReceipt reports whether the receipt commits leafHash to the sealed
// root. Note that the candidate is the leaf digest, not the raw record;
// receipt holders typically have the record and digest it themselves.
//
// A mismatched root is the normal negative result; structural damage to
// the receipt path is an error, see merkle.IncludedRoot.
func VerifyReceipt(hasher hash.Hash, receipt InclusionReceipt, leafHash []byte, root []byte) (bool, error) {
	proven, err := merkle.IncludedRoot(hasher, leafHash, receipt.Proof())
	if err != nil {
		return false, err
	}
	return bytes.Equal(proven, root), nil
}
