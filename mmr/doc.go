// Package mmr implements the pure index algebra and proof machinery for a
// Merkle Mountain Range: node height, peaks, the leaf-to-node mapping, and
// the building and replaying of inclusion and consistency proof paths.
//
// Nothing in this package performs I/O. Appending nodes and reading them
// back is expressed through the narrow NodeAppender interface so that any
// backing store - an in-memory slice, a tile, a database row set - can
// drive the same arithmetic.
package mmr

/*

# Motivation

Merkle binary trees (not tries) are the simplest merkle structure. Merkle
Mountain Ranges are a way of working with binary merkles that suits an
append-only log:

 1. The structure is strictly append only, and this is easy to prove.
 2. The position of a value in the tree is easily provable.
 3. Historic state can be archived without keeping the whole log live:
    a later state can always show consistency with an earlier one.
 4. Consistency between two states - that everything in the earlier tree
    is still present in the later one - has a simple proof.

All of this follows from one property: the tree only grows to the right,
and nothing is ever inserted. The "mountain range" name comes from having
to maintain multiple peaks, with earlier peaks combined as new elements
arrive. The peaks at any point are fully determined by the count of
elements in the tree.

# Approach & background

The overall approach follows the lead of the mimblewimble rust
implementation, described at
https://github.com/mimblewimble/grin/blob/0ff6763ee64e5a14e70ddd4642b99789a1648a32/core/src/core/pmmr.rs#L18

In summary:

  - The post-order traversal (children first, left to right) of the MMR is
    identical to the natural append order of MMR nodes.
  - Independent of tree size or height, any position can be navigated to
    from any other using binary arithmetic: the jump size is always some
    power of two.
  - Because navigation is independent of height and size, the whole tree
    never needs to be materialized.
  - A narrow interface for appending and retrieving nodes by index permits
    a variety of storage approaches; this package calls it NodeAppender.
  - The low-level functions place a burden of knowledge on the caller in
    the interest of simplicity: calling a sibling-navigation function for
    a position that has no sibling yields nonsense silently. Higher-level
    callers (the tiles package) are expected to only call these functions
    where the inputs are known valid.

## Post order traversal

Given a graph of 7 nodes like this:

	   g
	c    f
      a   b d  e

The post order is children first, parents after, siblings left to right,
so flattening the tree in post order yields the labels above in series:

	[a, b, c, d, e, f, g]
	[1, 2, 3, 4, 5, 6, 7]

This is the natural order of insertion for an MMR, given its append-only
nature and its rule for back-filling earlier peaks. To move around this
sequence in post order requires only binary arithmetic: jumping right from
c to its sibling f is just `3 + (2 << 1) - 1`, and that holds regardless of
how large the tree grows.

Sources this implementation draws from:

  - https://github.com/mimblewimble/grin/blob/0ff6763ee64e5a14e70ddd4642b99789a1648a32/core/src/core/pmmr.rs#L606
  - https://github.com/proofchains/python-proofmarshal/blob/master/proofmarshal/mmr.py
  - https://github.com/jjyr/mmr.py/blob/master/mmr/mmr.py#L145
  - https://github.com/zmitton/go-merklemountainrange/blob/master/mmr/mmr.go

Good general backgrounders:

  - https://neptune.cash/learn/mmr/
  - https://docs.grin.mw/wiki/chain-state/merkle-mountain-range/
  - https://lists.linuxfoundation.org/pipermail/bitcoin-dev/2016-May/012715.html
  - https://ethresear.ch/t/double-batched-merkle-log-accumulator/571

## IndexHeight

The derivation behind IndexHeight (indexheight.go) is quoted below.

"The height of a node in a full binary tree from its postorder traversal
index. This function is the base on which all others, as well as the
MMR, are built.

We first start by noticing that the insertion order of a node in a MMR is
identical to the height of a node in a binary tree traversed in postorder.
Specifically, we want to be able to generate the following sequence:

	[0, 0, 1, 0, 0, 1, 2, 0, 0, 1, 0, 0, 1, 2, 3, 0, 0, 1, ...]

Which turns out to start as the heights in the (left, right, top)
postorder traversal of the following tree:

	             3
	           /   \
	         /       \
	       /           \
	      2             2
	    /  \          /  \
	   /    \        /    \
	  1      1      1      1
	 / \    / \    / \    / \
	0   0  0   0  0   0  0   0

If we extend this tree up to a height of 4, we can continue the sequence,
and for an infinitely high tree we get the infinite sequence of heights
in the MMR.

So to generate the MMR height sequence, we want a function that, given an
index in that sequence, gets us the height in the tree. This allows the
sequence to be computed at any index, without materializing the start of
the sequence.

To see how to get the height of a node at any position in the postorder
traversal sequence of heights, rewrite the previous tree with each node's
position written in binary:

	               1111
	              /   \
	            /       \
	          /           \
	        /               \
	     111                1110
	    /   \              /    \
	   /     \            /      \
	  11      110        1010     1101
	 / \      / \       /  \      / \
	1   10  100  101  1000 1001 1011 1100

The height of a node is the number of 1 digits on the leftmost branch of
the tree, minus 1. For example, 1111 has 4 ones, so its height is 4-1=3.

To get the height of any node (say 1101), travel left in the tree to the
leftmost node and count the ones. To travel left, subtract the position by
its most significant bit minus one: to get from 1101 to 110, subtract it
by (1000-1) (13-(8-1)=6). Then to get from 110 to 11, subtract it by
(100-1) (6-(4-1)=3).

Applying this recursively, until reaching a number that in binary is all
ones, and counting the ones, gives the height of any node from its
postorder traversal position - the order in which nodes are added in an
MMR."

## Spur sum & tile-local peak accounting

The tiles package splits the MMR index space into fixed-size contiguous
chunks ("tiles"). Treating the tile identifier itself as a leaf index of a
much smaller, logical MMR gives an efficient way to compute how many
ancestor peaks a tile must carry forward, and how many of them it
discards when it closes and seeds the next tile: the carried count is
popcount(tileID), and the number discarded when moving to the next tile
is trailing_zeros(tileID+1). See tiles/peakstack.go.
*/
