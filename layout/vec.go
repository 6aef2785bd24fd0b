// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package layout implements the Vec/Layout algebra from spec §4.2: an
// immutable, random-access, length-typed columnar container (Vec[T]) and
// a composable description of how to build, serialize and deserialize one
// (Layout[T]), for primitives and for products, disjunctions, options and
// nested sequences of them.
//
// The variant dispatch (dense array vs product vs disjunction vs
// optional vs transformed vs nested vs unit) is modeled the teacher's
// way: a concrete type per shape implementing one small interface,
// exactly how github.com/gaissmai/bart's sparse.Array[T] is one concrete
// popcount-compressed shape behind a shared Get/Len contract, generalized
// here to several shapes instead of one.
package layout

// Vec is an immutable, random-access, length-typed sequence.
type Vec[T any] interface {
	// Len returns the number of elements.
	Len() int
	// Get returns the element at i. Panics with bonsaierr.ErrBounds if i
	// is outside [0, Len()).
	Get(i int) T
}

// Builder is a linear, non-reentrant state machine that accumulates
// values and, on Finish, publishes an immutable Vec[T]. Calling Finish
// twice without an intervening Clear panics with bonsaierr.ErrBuilderMisuse.
type Builder[T any] interface {
	// Push appends one value.
	Push(v T)
	// PushVec appends every element of v, in order.
	PushVec(v Vec[T])
	// Clear discards any accumulated state, allowing reuse.
	Clear()
	// Finish publishes the accumulated values as an immutable Vec[T].
	Finish() Vec[T]
}

// FromSlice wraps a plain slice as a Vec[T], copying it so later mutation
// of items is not observable through the returned Vec.
func FromSlice[T any](items []T) Vec[T] {
	return &denseVec[T]{items: append([]T(nil), items...)}
}
