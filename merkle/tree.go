package merkle

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("node index out of range")
	ErrNoChildren      = errors.New("leaf nodes have no children")
	ErrNoParent        = errors.New("the root node has no parent")
)

// Tree is a fully built fixed-arity merkle tree.
//
// All node digests live in a single flat backing slice, ordered row by row
// with the leaf digests first and the root digest last. A Tree is immutable
// once Build returns it and is safe for concurrent readers.
type Tree struct {
	arity      uint64
	leafCount  uint64
	length     uint64
	rowCount   uint64
	digestSize int

	// rowStarts[r] is the node index of the first node in row r. A final
	// entry equal to length terminates the slice so that row lookups never
	// need a special case for the root row.
	rowStarts []uint64

	// store is the digest arena, length * digestSize bytes. node(i) is the
	// subslice holding the digest of node i.
	store []byte
}

// Arity returns the number of children of every interior node.
func (t *Tree) Arity() uint64 { return t.arity }

// LeafCount returns the number of leaf records the tree was built from.
func (t *Tree) LeafCount() uint64 { return t.leafCount }

// Len returns the total node count, leaves included.
func (t *Tree) Len() uint64 { return t.length }

// RowCount returns the number of rows, counting both the leaf row and the
// root row.
func (t *Tree) RowCount() uint64 { return t.rowCount }

// DigestSize returns the width in bytes of every node digest.
func (t *Tree) DigestSize() int { return t.digestSize }

// Root returns the root digest, which is always the digest of the node at
// index Len() - 1. The returned slice aliases the tree storage and must not
// be modified.
func (t *Tree) Root() []byte {
	return t.node(t.length - 1)
}

// Digest returns the stored digest for node i. The returned slice aliases
// the tree storage and must not be modified.
func (t *Tree) Digest(i uint64) ([]byte, error) {
	if i >= t.length {
		return nil, fmt.Errorf("%w: %d, tree len %d", ErrIndexOutOfRange, i, t.length)
	}
	return t.node(i), nil
}

// Children returns the ordered child indices of node i, leftmost first.
// Every interior node has exactly Arity() children, stored contiguously in
// the row below.
func (t *Tree) Children(i uint64) ([]uint64, error) {
	r, err := t.row(i)
	if err != nil {
		return nil, err
	}
	if r == 0 {
		return nil, fmt.Errorf("%w: %d is a leaf", ErrNoChildren, i)
	}

	first := (i-t.rowStarts[r])*t.arity + t.rowStarts[r-1]
	children := make([]uint64, t.arity)
	for j := range children {
		children[j] = first + uint64(j)
	}
	return children, nil
}

// Parent returns the index of the single parent of node i.
func (t *Tree) Parent(i uint64) (uint64, error) {
	r, err := t.row(i)
	if err != nil {
		return 0, err
	}
	if i == t.length-1 {
		return 0, fmt.Errorf("%w: %d is the root", ErrNoParent, i)
	}
	return t.rowStarts[r+1] + (i-t.rowStarts[r])/t.arity, nil
}

// row returns the row number holding node i. The scan is bounded by
// RowCount, which is logarithmic in the leaf count.
func (t *Tree) row(i uint64) (uint64, error) {
	if i >= t.length {
		return 0, fmt.Errorf("%w: %d, tree len %d", ErrIndexOutOfRange, i, t.length)
	}
	for r := uint64(0); r < t.rowCount; r++ {
		if i < t.rowStarts[r+1] {
			return r, nil
		}
	}
	// Unreachable: rowStarts terminates with length and i < length.
	return 0, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
}

func (t *Tree) node(i uint64) []byte {
	start := i * uint64(t.digestSize)
	return t.store[start : start+uint64(t.digestSize)]
}
