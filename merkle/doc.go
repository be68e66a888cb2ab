package merkle

/*

Package merkle implements a fixed-arity merkle (hash) tree over an ordered
set of leaf records, together with sibling based authentication paths and
their verification.

A merkle tree is a tree in which every interior node is the hash of its
child node values. For arity 2 and 4 leaves:

	       root = H(h01 || h23)
	      /                    \
	h01 = H(h0 || h1)     h23 = H(h2 || h3)
	 /          \          /          \
	h0 = H(r0)  h1 = H(r1) h2 = H(r2) h3 = H(r3)

The tree is realised as a flat array of node digests in a single backing
allocation. Row 0 holds the leaf digests, each subsequent row holds the
parents of the row below, and the final row holds the single root. Nodes
are addressed by their index in this flattened order, so the tree for the
diagram above is

	[h0, h1, h2, h3, h01, h23, root]
	[ 0,  1,  2,  3,   4,   5,    6]

and the root is always the node at index len - 1.

Because every row is exactly arity times smaller than the row below it,
navigation needs no edges or pointers at all. With rowStart(r) the index of
the first node in row r, the children of node i in row r are the arity
contiguous nodes beginning at

	(i - rowStart(r)) * arity + rowStart(r-1)

and the parent of i is

	rowStart(r+1) + (i - rowStart(r)) / arity

The price of this arrangement is that the leaf count must divide exactly by
the arity at every row until a single node remains. Build refuses anything
else before hashing a single byte, see TreeLen.

The digest algorithm is an injected capability. Everything here works with
any stdlib hash.Hash, and the digest width of the tree is simply whatever
hasher.Size() reports. Interior digests commit to their children by hashing
the concatenation of the child digests in index order, with no padding and
no reordering; that order is what a verifier reproduces when walking an
authentication path, see IncludedRoot and VerifyInclusion.

Trees are immutable once built. Proof extraction and verification are pure
functions, so any number of goroutines may share one tree, provided each
supplies its own hash.Hash instance (stdlib hashers are stateful).

*/
