package merkle

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLayout = errors.New("leaf count is not reducible to a single root by the arity")
)

// TreeLen returns the total node count for a tree with the given leaf count
// and arity.
//
// The total is the sum of the row widths
//
//	leafCount + leafCount/arity + leafCount/arity² + ... + 1
//
// ErrInvalidLayout is returned if any row other than the root row is not
// exactly divisible by the arity. A single leaf is a valid (one node) tree
// for any arity.
func TreeLen(leafCount uint64, arity uint64) (uint64, error) {
	widths, err := rowWidths(leafCount, arity)
	if err != nil {
		return 0, err
	}
	var length uint64
	for _, w := range widths {
		length += w
	}
	return length, nil
}

// TreeRowCount returns the number of rows for a tree with the given leaf
// count and arity, including the leaf row and the root row. The layout
// rules are exactly those of TreeLen.
func TreeRowCount(leafCount uint64, arity uint64) (uint64, error) {
	widths, err := rowWidths(leafCount, arity)
	if err != nil {
		return 0, err
	}
	return uint64(len(widths)), nil
}

// rowWidths returns the node count of every row, leaf row first, root row
// last. It is the single point deciding whether a (leafCount, arity) pair
// is a legal layout, and it runs before any hashing so that an invalid
// layout can never produce a partial tree.
func rowWidths(leafCount uint64, arity uint64) ([]uint64, error) {
	if arity < 2 {
		return nil, fmt.Errorf("%w: arity %d, the minimum is 2", ErrInvalidLayout, arity)
	}
	if leafCount == 0 {
		return nil, fmt.Errorf("%w: a tree requires at least one leaf", ErrInvalidLayout)
	}

	widths := []uint64{leafCount}
	for w := leafCount; w > 1; {
		if w%arity != 0 {
			return nil, fmt.Errorf(
				"%w: row of %d nodes does not divide by arity %d (leaf count %d)",
				ErrInvalidLayout, w, arity, leafCount)
		}
		w /= arity
		widths = append(widths, w)
	}
	return widths, nil
}
