// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tree

import (
	"bytes"
	"testing"

	"github.com/gaissmai/bonsai/layout"
)

func leaf(label string) *PointerNode[string] { return &PointerNode[string]{Label: label} }

func TestKTreeRoundTripsGenericTree(t *testing.T) {
	// root
	//  ├─ a
	//  │   ├─ a1
	//  │   └─ a2
	//  ├─ b
	//  └─ c
	//      └─ c1
	root := &PointerNode[string]{
		Label: "root",
		Children: []*PointerNode[string]{
			{Label: "a", Children: []*PointerNode[string]{leaf("a1"), leaf("a2")}},
			leaf("b"),
			{Label: "c", Children: []*PointerNode[string]{leaf("c1")}},
		},
	}

	src := FromPointerTree(root)
	kt := Build[*PointerNode[string], string](src, layout.String())

	if kt.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", kt.Len())
	}

	r, ok := kt.Root()
	if !ok || r.Label() != "root" {
		t.Fatalf("Root() label = %v, ok=%v", r.Label(), ok)
	}

	children := r.Children()
	var gotLabels []string
	for _, c := range children {
		gotLabels = append(gotLabels, c.Label())
	}
	want := []string{"a", "b", "c"}
	if len(gotLabels) != len(want) {
		t.Fatalf("children = %v, want %v", gotLabels, want)
	}
	for i := range want {
		if gotLabels[i] != want[i] {
			t.Fatalf("children = %v, want %v", gotLabels, want)
		}
	}

	aNode := children[0]
	aChildren := aNode.Children()
	if len(aChildren) != 2 || aChildren[0].Label() != "a1" || aChildren[1].Label() != "a2" {
		t.Fatalf("a's children wrong: %+v", aChildren)
	}

	bNode := children[1]
	if len(bNode.Children()) != 0 {
		t.Fatalf("b should have no children")
	}

	cNode := children[2]
	cChildren := cNode.Children()
	if len(cChildren) != 1 || cChildren[0].Label() != "c1" {
		t.Fatalf("c's children wrong: %+v", cChildren)
	}
}

func TestKTreeEmpty(t *testing.T) {
	src := FromPointerTree[string](nil)
	kt := Build[*PointerNode[string], string](src, layout.String())

	if kt.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", kt.Len())
	}
	if _, ok := kt.Root(); ok {
		t.Fatal("Root() should report false for an empty tree")
	}
}

func TestKTreeWriteReadRoundTrip(t *testing.T) {
	root := &PointerNode[string]{
		Label: "root",
		Children: []*PointerNode[string]{
			{Label: "a", Children: []*PointerNode[string]{leaf("a1"), leaf("a2")}},
			leaf("b"),
		},
	}
	kt := Build[*PointerNode[string], string](FromPointerTree(root), layout.String())

	var buf bytes.Buffer
	if err := kt.Write(&buf, layout.String()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := ReadKTree[string](&buf, layout.String())
	if err != nil {
		t.Fatalf("ReadKTree: %v", err)
	}
	if got.Len() != kt.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), kt.Len())
	}

	r, ok := got.Root()
	if !ok || r.Label() != "root" {
		t.Fatalf("round trip Root() label = %v, ok=%v", r.Label(), ok)
	}
	children := r.Children()
	if len(children) != 2 || children[0].Label() != "a" || children[1].Label() != "b" {
		t.Fatalf("round trip children wrong: %+v", children)
	}
}
