// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tree

import (
	"bytes"
	"testing"

	"github.com/gaissmai/bonsai/layout"
)

type branchLabel struct{ name string }
type leafLabel struct{ name string }

func bpLeaf(name string) *BinPointerNode[branchLabel, leafLabel] {
	return &BinPointerNode[branchLabel, leafLabel]{IsLeaf: true, LeafLabel: leafLabel{name}}
}

func bpBranch(name string, l, r *BinPointerNode[branchLabel, leafLabel]) *BinPointerNode[branchLabel, leafLabel] {
	return &BinPointerNode[branchLabel, leafLabel]{BranchLabel: branchLabel{name}, Left: l, Right: r}
}

func branchCodec() layout.Layout[branchLabel] {
	return layout.Transform[string, branchLabel](layout.String(),
		func(s string) branchLabel { return branchLabel{s} },
		func(b branchLabel) string { return b.name },
	)
}

func leafCodec() layout.Layout[leafLabel] {
	return layout.Transform[string, leafLabel](layout.String(),
		func(s string) leafLabel { return leafLabel{s} },
		func(l leafLabel) string { return l.name },
	)
}

func TestBinTreeHuffmanScenario(t *testing.T) {
	root := bpBranch("root",
		bpBranch("n1", bpLeaf("a"), bpLeaf("b")),
		bpBranch("n2", bpLeaf("c"), bpLeaf("d")),
	)

	src := FromBinPointerTree[branchLabel, leafLabel]()
	bt := BuildBinTree[*BinPointerNode[branchLabel, leafLabel], branchLabel, leafLabel](
		root, true, src, branchCodec(), leafCodec(),
	)

	if bt.NumBranches() != 3 {
		t.Errorf("NumBranches() = %d, want 3", bt.NumBranches())
	}
	if bt.NumLeaves() != 4 {
		t.Errorf("NumLeaves() = %d, want 4", bt.NumLeaves())
	}

	r, ok := bt.Root()
	if !ok || r.IsLeaf() || r.BranchLabel().name != "root" {
		t.Fatalf("Root() = %+v, ok=%v", r, ok)
	}

	n1 := r.Left()
	if n1.IsLeaf() || n1.BranchLabel().name != "n1" {
		t.Fatalf("Left() = %+v", n1)
	}
	a := n1.Left()
	b := n1.Right()
	if !a.IsLeaf() || a.LeafLabel().name != "a" {
		t.Fatalf("n1.Left() = %+v", a)
	}
	if !b.IsLeaf() || b.LeafLabel().name != "b" {
		t.Fatalf("n1.Right() = %+v", b)
	}

	n2 := r.Right()
	c := n2.Left()
	d := n2.Right()
	if !c.IsLeaf() || c.LeafLabel().name != "c" {
		t.Fatalf("n2.Left() = %+v", c)
	}
	if !d.IsLeaf() || d.LeafLabel().name != "d" {
		t.Fatalf("n2.Right() = %+v", d)
	}
}

func TestBinTreeFoldMatchesDirectRecursion(t *testing.T) {
	root := bpBranch("root",
		bpBranch("n1", bpLeaf("a"), bpLeaf("b")),
		bpBranch("n2", bpLeaf("c"), bpLeaf("d")),
	)
	src := FromBinPointerTree[branchLabel, leafLabel]()
	bt := BuildBinTree[*BinPointerNode[branchLabel, leafLabel], branchLabel, leafLabel](
		root, true, src, branchCodec(), leafCodec(),
	)
	r, _ := bt.Root()

	concat := func(n branchLabel, l, rr string) string { return "(" + l + n.name + rr + ")" }
	got := Fold[branchLabel, leafLabel, string](r,
		func(l leafLabel) string { return l.name },
		concat,
	)

	var direct func(n *BinPointerNode[branchLabel, leafLabel]) string
	direct = func(n *BinPointerNode[branchLabel, leafLabel]) string {
		if n.IsLeaf {
			return n.LeafLabel.name
		}
		return "(" + direct(n.Left) + n.BranchLabel.name + direct(n.Right) + ")"
	}
	want := direct(root)

	if got != want {
		t.Fatalf("Fold = %q, want %q", got, want)
	}
}

func TestBinTreeEmpty(t *testing.T) {
	src := FromBinPointerTree[branchLabel, leafLabel]()
	bt := BuildBinTree[*BinPointerNode[branchLabel, leafLabel], branchLabel, leafLabel](
		nil, false, src, branchCodec(), leafCodec(),
	)
	if bt.NumBranches() != 0 || bt.NumLeaves() != 0 {
		t.Fatalf("empty tree: branches=%d leaves=%d", bt.NumBranches(), bt.NumLeaves())
	}
	if _, ok := bt.Root(); ok {
		t.Fatal("Root() should report false for an empty tree")
	}
}

func TestBinTreeWriteReadRoundTrip(t *testing.T) {
	root := bpBranch("root",
		bpBranch("n1", bpLeaf("a"), bpLeaf("b")),
		bpBranch("n2", bpLeaf("c"), bpLeaf("d")),
	)
	src := FromBinPointerTree[branchLabel, leafLabel]()
	bt := BuildBinTree[*BinPointerNode[branchLabel, leafLabel], branchLabel, leafLabel](
		root, true, src, branchCodec(), leafCodec(),
	)

	var buf bytes.Buffer
	if err := bt.Write(&buf, branchCodec(), leafCodec()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := ReadBinTree[branchLabel, leafLabel](&buf, branchCodec(), leafCodec())
	if err != nil {
		t.Fatalf("ReadBinTree: %v", err)
	}

	if got.NumBranches() != bt.NumBranches() || got.NumLeaves() != bt.NumLeaves() {
		t.Fatalf("round trip counts mismatch: branches=%d leaves=%d, want %d,%d",
			got.NumBranches(), got.NumLeaves(), bt.NumBranches(), bt.NumLeaves())
	}

	r, ok := got.Root()
	if !ok || r.BranchLabel().name != "root" {
		t.Fatalf("round trip Root() = %+v, ok=%v", r, ok)
	}
	n1 := r.Left()
	if n1.BranchLabel().name != "n1" {
		t.Fatalf("round trip Left() = %+v", n1)
	}
	if n1.Left().LeafLabel().name != "a" || n1.Right().LeafLabel().name != "b" {
		t.Fatalf("round trip n1 children wrong")
	}
}

func TestBinTreeBadMagicRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0, 0, 0, 0, 0}) // all-zero, not the real magic
	_, err := ReadBinTree[branchLabel, leafLabel](&buf, branchCodec(), leafCodec())
	if err == nil {
		t.Fatal("ReadBinTree should reject a bad magic number")
	}
}
