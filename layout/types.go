// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package layout

import "github.com/gaissmai/bonsai/bonsaierr"

// Char is a single UTF-16 code unit, the fixed-width "char" primitive of
// spec §4.2.
type Char uint16

// Option is the element type of a Vec built by OptionalLayout.
type Option[A any] struct {
	Present bool
	Value   A
}

// Some returns a present Option wrapping v.
func Some[A any](v A) Option[A] { return Option[A]{Present: true, Value: v} }

// None returns an absent Option.
func None[A any]() Option[A] { var zero A; return Option[A]{Value: zero} }

// Either is the element type of a Vec built by DisjunctionLayout. Exactly
// one of Left/Right is meaningful, selected by IsLeft.
type Either[A, B any] struct {
	IsLeft bool
	left   A
	right  B
}

// Left wraps a left-tagged value.
func Left[A, B any](v A) Either[A, B] { return Either[A, B]{IsLeft: true, left: v} }

// Right wraps a right-tagged value.
func Right[A, B any](v B) Either[A, B] { return Either[A, B]{right: v} }

// UnwrapLeft returns the wrapped left value. Panics with
// bonsaierr.ErrBounds if IsLeft is false.
func (e Either[A, B]) UnwrapLeft() A {
	if !e.IsLeft {
		panic(bonsaierr.ErrBounds)
	}
	return e.left
}

// UnwrapRight returns the wrapped right value. Panics with
// bonsaierr.ErrBounds if IsLeft is true.
func (e Either[A, B]) UnwrapRight() B {
	if e.IsLeft {
		panic(bonsaierr.ErrBounds)
	}
	return e.right
}

func checkBounds(i, n int) {
	if i < 0 || i >= n {
		panic(bonsaierr.ErrBounds)
	}
}
