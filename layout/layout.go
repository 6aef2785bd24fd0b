// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package layout

import (
	"io"

	"github.com/gaissmai/bonsai/bonsaierr"
)

// Layout is a pure, composable description of how to build, serialize,
// deserialize and structurally identify a Vec[T] (spec §4.2). Layouts
// carry no state of their own beyond their child layouts/functions.
type Layout[T any] interface {
	// NewBuilder returns a fresh Builder[T] for this layout.
	NewBuilder() Builder[T]
	// Empty returns the empty Vec[T] for this layout.
	Empty() Vec[T]
	// Write serializes vec in this layout's wire form.
	Write(vec Vec[T], w io.Writer) error
	// Read deserializes a Vec[T] previously produced by Write.
	Read(r io.Reader) (Vec[T], error)
	// IsSafeToCast reports whether vec's physical shape already matches
	// this layout's natural shape, letting Write and adopting composite
	// builders skip an O(n) rebuild.
	IsSafeToCast(vec Vec[T]) bool
}

// guard enforces the one-shot Finish contract shared by every Builder in
// this package (spec §7, builder misuse).
type guard struct{ finished bool }

func (g *guard) checkFinish() {
	if g.finished {
		panic(bonsaierr.ErrBuilderMisuse)
	}
	g.finished = true
}

func (g *guard) reset() { g.finished = false }

// ensureShape returns vec unchanged if it already matches layout's
// natural physical shape, else rebuilds it by streaming through a fresh
// builder (spec §4.2's safe-cast protocol).
func ensureShape[T any](layout Layout[T], vec Vec[T]) Vec[T] {
	if layout.IsSafeToCast(vec) {
		return vec
	}
	bld := layout.NewBuilder()
	bld.PushVec(vec)
	return bld.Finish()
}
