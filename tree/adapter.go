// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tree

// PointerNode is a conventional pointer-based k-ary tree node, the shape
// tests and callers reach for when they don't already have a tree type of
// their own to adapt. Grounded on the teacher's own node[V] pointer tree
// (github.com/gaissmai/bart's node.go), repurposed here as a generic
// example source tree instead of a routing trie.
type PointerNode[L any] struct {
	Label    L
	Children []*PointerNode[L]
}

// PointerTree adapts a *PointerNode[L] root into a Source[*PointerNode[L], L].
type PointerTree[L any] struct {
	RootNode *PointerNode[L]
}

// FromPointerTree builds a Source over a pointer-based k-ary tree.
func FromPointerTree[L any](root *PointerNode[L]) Source[*PointerNode[L], L] {
	return PointerTree[L]{RootNode: root}
}

func (t PointerTree[L]) Root() (*PointerNode[L], bool) {
	if t.RootNode == nil {
		return nil, false
	}
	return t.RootNode, true
}

func (t PointerTree[L]) Children(n *PointerNode[L]) []*PointerNode[L] { return n.Children }
func (t PointerTree[L]) Label(n *PointerNode[L]) L                   { return n.Label }

// BinPointerNode is a conventional pointer-based full-binary tree node:
// either a branch with two children, or a leaf.
type BinPointerNode[Branch any, Leaf any] struct {
	IsLeaf      bool
	BranchLabel Branch
	LeafLabel   Leaf
	Left, Right *BinPointerNode[Branch, Leaf]
}

type binPointerSource[Branch any, Leaf any] struct{}

func (binPointerSource[Branch, Leaf]) Fold(n *BinPointerNode[Branch, Leaf]) NodeKind[*BinPointerNode[Branch, Leaf], Branch, Leaf] {
	if n.IsLeaf {
		return NodeKind[*BinPointerNode[Branch, Leaf], Branch, Leaf]{IsLeaf: true, LeafLabel: n.LeafLabel}
	}
	return NodeKind[*BinPointerNode[Branch, Leaf], Branch, Leaf]{
		Left: n.Left, Right: n.Right, BranchLabel: n.BranchLabel,
	}
}

// FromBinPointerTree builds a BinarySource over a pointer-based
// full-binary tree.
func FromBinPointerTree[Branch any, Leaf any]() BinarySource[*BinPointerNode[Branch, Leaf], Branch, Leaf] {
	return binPointerSource[Branch, Leaf]{}
}
