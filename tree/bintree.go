// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tree

import (
	"io"

	"github.com/gaissmai/bonsai/bitset"
	"github.com/gaissmai/bonsai/bonsaierr"
	"github.com/gaissmai/bonsai/format"
	"github.com/gaissmai/bonsai/layout"
)

// magicBonsai2 is the wire-format magic number for a full-binary tree,
// "BONSAI/2" (spec §6).
const magicBonsai2 = 0x0066797883657302

// BinTree is the compact full-binary tree of spec §4.5: a shape
// IndexedBitSet recording which heap-ordered slots are live, an isLeaf
// IndexedBitSet partitioning live nodes into branches and leaves, and two
// label Vecs consumed by branches and leaves respectively.
type BinTree[Branch any, Leaf any] struct {
	shape        *bitset.IndexedBitSet
	isLeaf       *bitset.IndexedBitSet
	branchLabels layout.Vec[Branch]
	leafLabels   layout.Vec[Leaf]
}

// BinNode is a non-owning handle into a BinTree: a shape-bitset position
// plus a back-reference (spec §5).
type BinNode[Branch any, Leaf any] struct {
	tree *BinTree[Branch, Leaf]
	pos  int
}

type bintreeSlot[N any] struct {
	present bool
	node    N
}

// BuildBinTree compacts a full-binary source tree into a BinTree via a
// breadth-first walk (spec §4.5). hasRoot is false for an empty tree.
func BuildBinTree[N any, Branch any, Leaf any](
	root N, hasRoot bool,
	src BinarySource[N, Branch, Leaf],
	branchLayout layout.Layout[Branch],
	leafLayout layout.Layout[Leaf],
) *BinTree[Branch, Leaf] {
	shapeBld := bitset.NewBuilder()
	isLeafBld := bitset.NewBuilder()
	branchBld := branchLayout.NewBuilder()
	leafBld := leafLayout.NewBuilder()

	var queue []bintreeSlot[N]
	if hasRoot {
		queue = append(queue, bintreeSlot[N]{present: true, node: root})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if !cur.present {
			shapeBld.Push(false)
			continue
		}
		shapeBld.Push(true)

		kind := src.Fold(cur.node)
		if kind.IsLeaf {
			isLeafBld.Push(true)
			leafBld.Push(kind.LeafLabel)
			queue = append(queue,
				bintreeSlot[N]{present: false},
				bintreeSlot[N]{present: false},
			)
			continue
		}

		isLeafBld.Push(false)
		branchBld.Push(kind.BranchLabel)
		queue = append(queue,
			bintreeSlot[N]{present: true, node: kind.Left},
			bintreeSlot[N]{present: true, node: kind.Right},
		)
	}

	return &BinTree[Branch, Leaf]{
		shape:        shapeBld.Finish(),
		isLeaf:       isLeafBld.Finish(),
		branchLabels: branchBld.Finish(),
		leafLabels:   leafBld.Finish(),
	}
}

// Root returns the tree's root node, or false if the tree is empty.
func (t *BinTree[Branch, Leaf]) Root() (BinNode[Branch, Leaf], bool) {
	if t.shape.Len() == 0 {
		return BinNode[Branch, Leaf]{}, false
	}
	return BinNode[Branch, Leaf]{tree: t, pos: 0}, true
}

// NumBranches and NumLeaves report the label column lengths.
func (t *BinTree[Branch, Leaf]) NumBranches() int { return t.branchLabels.Len() }
func (t *BinTree[Branch, Leaf]) NumLeaves() int   { return t.leafLabels.Len() }

func (n BinNode[Branch, Leaf]) liveIndex() int {
	return n.tree.shape.Rank(n.pos) - 1
}

// IsLeaf reports whether the node is a leaf.
func (n BinNode[Branch, Leaf]) IsLeaf() bool {
	return n.tree.isLeaf.Contains(n.liveIndex())
}

// BranchLabel returns the node's branch label. Undefined if IsLeaf.
func (n BinNode[Branch, Leaf]) BranchLabel() Branch {
	q := n.liveIndex()
	return n.tree.branchLabels.Get(q - n.tree.isLeaf.Rank(q))
}

// LeafLabel returns the node's leaf label. Undefined unless IsLeaf.
func (n BinNode[Branch, Leaf]) LeafLabel() Leaf {
	q := n.liveIndex()
	return n.tree.leafLabels.Get(n.tree.isLeaf.Rank(q) - 1)
}

// Left returns the node's left child. Defined only for branches.
func (n BinNode[Branch, Leaf]) Left() BinNode[Branch, Leaf] {
	return BinNode[Branch, Leaf]{tree: n.tree, pos: 2*n.liveIndex() + 1}
}

// Right returns the node's right child. Defined only for branches.
func (n BinNode[Branch, Leaf]) Right() BinNode[Branch, Leaf] {
	return BinNode[Branch, Leaf]{tree: n.tree, pos: 2*n.liveIndex() + 2}
}

// Fold recurses over the tree rooted at n: leafFn combines a leaf label
// into a result, branchFn combines a branch label with its two
// pre-evaluated child results. Children are evaluated left then right
// (spec §4.5).
func Fold[Branch any, Leaf any, R any](
	n BinNode[Branch, Leaf],
	leafFn func(Leaf) R,
	branchFn func(Branch, R, R) R,
) R {
	if n.IsLeaf() {
		return leafFn(n.LeafLabel())
	}
	left := Fold(n.Left(), leafFn, branchFn)
	right := Fold(n.Right(), leafFn, branchFn)
	return branchFn(n.BranchLabel(), left, right)
}

// Write serializes the tree per spec §6: magic, branch labels, leaf
// labels, isLeaf bitset, u32 shape length, shape bitset.
func (t *BinTree[Branch, Leaf]) Write(w io.Writer, branchLayout layout.Layout[Branch], leafLayout layout.Layout[Leaf]) error {
	if err := format.WriteMagic(w, magicBonsai2); err != nil {
		return err
	}
	if err := branchLayout.Write(t.branchLabels, w); err != nil {
		return err
	}
	if err := leafLayout.Write(t.leafLabels, w); err != nil {
		return err
	}
	if err := t.isLeaf.Write(w); err != nil {
		return err
	}
	if err := format.WriteUint32(w, uint32(t.shape.Len())); err != nil {
		return err
	}
	return t.shape.Write(w)
}

// ReadBinTree deserializes a BinTree previously produced by Write,
// rejecting any other magic with a format error.
func ReadBinTree[Branch any, Leaf any](
	r io.Reader,
	branchLayout layout.Layout[Branch],
	leafLayout layout.Layout[Leaf],
) (*BinTree[Branch, Leaf], error) {
	if err := format.ReadMagic(r, magicBonsai2); err != nil {
		return nil, err
	}
	branchLabels, err := branchLayout.Read(r)
	if err != nil {
		return nil, err
	}
	leafLabels, err := leafLayout.Read(r)
	if err != nil {
		return nil, err
	}
	isLeaf, err := bitset.Read(r, branchLabels.Len()+leafLabels.Len())
	if err != nil {
		return nil, err
	}
	shapeLen, err := format.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	shape, err := bitset.Read(r, int(shapeLen))
	if err != nil {
		return nil, err
	}
	if shape.Popcount() != isLeaf.Len() {
		return nil, bonsaierr.ErrFormat
	}
	return &BinTree[Branch, Leaf]{
		shape: shape, isLeaf: isLeaf,
		branchLabels: branchLabels, leafLabels: leafLabels,
	}, nil
}
