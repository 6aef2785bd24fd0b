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

// KTree is the compact k-ary tree of spec §4.4: one IndexedBitSet
// recording the left-child/right-sibling transform of the source tree in
// breadth-first order, and one Vec<L> of labels for the real nodes.
type KTree[L any] struct {
	bits   *bitset.IndexedBitSet
	labels layout.Vec[L]
}

// KNode is a non-owning handle into a KTree: a bitset position plus a
// back-reference, per spec §5 (derived node handles must not outlive the
// tree they reference).
type KNode[L any] struct {
	tree *KTree[L]
	pos  int
}

type ktreeSlot[N any] struct {
	present bool
	node    N
	rest    []N
}

// Build compacts src into a KTree, applying the left-child/right-sibling
// transform on the fly and traversing the resulting binary tree
// breadth-first (spec §4.4). labelLayout controls how labels are stored.
func Build[N any, L any](src Source[N, L], labelLayout layout.Layout[L]) *KTree[L] {
	bld := bitset.NewBuilder()
	labelBld := labelLayout.NewBuilder()

	root, ok := src.Root()
	if !ok {
		return &KTree[L]{bits: bld.Finish(), labels: labelBld.Finish()}
	}

	queue := []ktreeSlot[N]{{present: true, node: root}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if !cur.present {
			bld.Push(false)
			continue
		}
		bld.Push(true)
		labelBld.Push(src.Label(cur.node))

		children := src.Children(cur.node)
		if len(children) > 0 {
			queue = append(queue, ktreeSlot[N]{present: true, node: children[0], rest: children[1:]})
		} else {
			queue = append(queue, ktreeSlot[N]{present: false})
		}

		if len(cur.rest) > 0 {
			queue = append(queue, ktreeSlot[N]{present: true, node: cur.rest[0], rest: cur.rest[1:]})
		} else {
			queue = append(queue, ktreeSlot[N]{present: false})
		}
	}

	return &KTree[L]{bits: bld.Finish(), labels: labelBld.Finish()}
}

// Root returns the tree's root node, or false if the tree is empty.
func (t *KTree[L]) Root() (KNode[L], bool) {
	if t.bits.Len() == 0 {
		return KNode[L]{}, false
	}
	return KNode[L]{tree: t, pos: 0}, true
}

// Len returns the number of labeled nodes in the tree.
func (t *KTree[L]) Len() int { return t.labels.Len() }

// Label returns the node's label.
func (n KNode[L]) Label() L {
	return n.tree.labels.Get(n.tree.bits.Rank(n.pos) - 1)
}

// FirstChild returns the node's first child, if any. The child slots of
// the q-th real node (q = Rank(pos)-1) are at 2q+1 and 2q+2.
func (n KNode[L]) FirstChild() (KNode[L], bool) {
	pos := 2*n.tree.bits.Rank(n.pos) - 1
	if pos < n.tree.bits.Len() && n.tree.bits.Contains(pos) {
		return KNode[L]{tree: n.tree, pos: pos}, true
	}
	return KNode[L]{}, false
}

// NextSibling returns the node's next sibling, if any.
func (n KNode[L]) NextSibling() (KNode[L], bool) {
	pos := 2 * n.tree.bits.Rank(n.pos)
	if pos < n.tree.bits.Len() && n.tree.bits.Contains(pos) {
		return KNode[L]{tree: n.tree, pos: pos}, true
	}
	return KNode[L]{}, false
}

// Children returns the node's children, in order, by walking the
// right-sibling chain from FirstChild.
func (n KNode[L]) Children() []KNode[L] {
	var out []KNode[L]
	child, ok := n.FirstChild()
	for ok {
		out = append(out, child)
		child, ok = child.NextSibling()
	}
	return out
}

// Write serializes the tree: a u32 bitset length, the bitset bytes, then
// the label vec in labelLayout's wire form.
func (t *KTree[L]) Write(w io.Writer, labelLayout layout.Layout[L]) error {
	if err := format.WriteUint32(w, uint32(t.bits.Len())); err != nil {
		return err
	}
	if err := t.bits.Write(w); err != nil {
		return err
	}
	return labelLayout.Write(t.labels, w)
}

// ReadKTree deserializes a KTree previously produced by Write.
func ReadKTree[L any](r io.Reader, labelLayout layout.Layout[L]) (*KTree[L], error) {
	n, err := format.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	bits, err := bitset.Read(r, int(n))
	if err != nil {
		return nil, err
	}
	labels, err := labelLayout.Read(r)
	if err != nil {
		return nil, err
	}
	if bits.Popcount() != labels.Len() {
		return nil, bonsaierr.ErrFormat
	}
	return &KTree[L]{bits: bits, labels: labels}, nil
}
