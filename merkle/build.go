package merkle

import (
	"hash"
)

// Build constructs the complete tree for the ordered leaf records.
//
// The layout is checked first; if the leaf count does not divide exactly by
// the arity at every row the build fails with ErrInvalidLayout and nothing
// is hashed. Otherwise every leaf record is digested into row 0, and each
// subsequent row is produced left to right by hashing the concatenation,
// in index order, of the arity child digests from the row below. The
// strictly bottom-up order guarantees every child digest exists before its
// parent is computed.
//
// The digest algorithm is supplied by the caller as any stdlib hash.Hash;
// the tree's digest width is hasher.Size(). The hasher is Reset before
// each use and is not retained by the returned Tree.
func Build(hasher hash.Hash, leaves [][]byte, arity uint64) (*Tree, error) {
	widths, err := rowWidths(uint64(len(leaves)), arity)
	if err != nil {
		return nil, err
	}

	var length uint64
	rowStarts := make([]uint64, 0, len(widths)+1)
	for _, w := range widths {
		rowStarts = append(rowStarts, length)
		length += w
	}
	rowStarts = append(rowStarts, length)

	t := &Tree{
		arity:      arity,
		leafCount:  uint64(len(leaves)),
		length:     length,
		rowCount:   uint64(len(widths)),
		digestSize: hasher.Size(),
		rowStarts:  rowStarts,
		// The whole tree is backed by a single allocation; node(i) is a
		// fixed width subslice of it.
		store: make([]byte, length*uint64(hasher.Size())),
	}

	for i, leaf := range leaves {
		hasher.Reset()
		hasher.Write(leaf)
		t.sum(hasher, uint64(i))
	}

	for r := uint64(1); r < t.rowCount; r++ {
		for i := t.rowStarts[r]; i < t.rowStarts[r+1]; i++ {
			firstChild := (i-t.rowStarts[r])*arity + t.rowStarts[r-1]

			hasher.Reset()
			for j := uint64(0); j < arity; j++ {
				hasher.Write(t.node(firstChild + j))
			}
			t.sum(hasher, i)
		}
	}

	return t, nil
}

// sum writes the hasher's digest directly into node i's slot in the arena.
func (t *Tree) sum(hasher hash.Hash, i uint64) {
	start := i * uint64(t.digestSize)
	hasher.Sum(t.store[start:start])
}
