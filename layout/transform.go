// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package layout

import "io"

type transformedVec[A, B any] struct {
	inner Vec[A]
	to    func(A) B
}

func (v *transformedVec[A, B]) Len() int    { return v.inner.Len() }
func (v *transformedVec[A, B]) Get(i int) B { return v.to(v.inner.Get(i)) }

type transformedBuilder[A, B any] struct {
	guard
	inner Builder[A]
	from  func(B) A
	to    func(A) B
}

func (b *transformedBuilder[A, B]) Push(v B)       { b.inner.Push(b.from(v)) }
func (b *transformedBuilder[A, B]) PushVec(v Vec[B]) {
	for i := 0; i < v.Len(); i++ {
		b.Push(v.Get(i))
	}
}
func (b *transformedBuilder[A, B]) Clear() { b.inner.Clear(); b.reset() }
func (b *transformedBuilder[A, B]) Finish() Vec[B] {
	b.checkFinish()
	return &transformedVec[A, B]{inner: b.inner.Finish(), to: b.to}
}

// TransformedLayout is the Layout[B] combinator of spec §4.2: physically
// identical to its inner Layout[A], carrying a pure function pair
// (B -> A pre-applied by the builder, A -> B post-applied by readers) so
// the wire form never changes when a value is re-viewed as a different
// logical type.
type TransformedLayout[A, B any] struct {
	Inner Layout[A]
	From  func(B) A
	To    func(A) B
}

// Transform builds the TransformedLayout combinator over inner.
func Transform[A, B any](inner Layout[A], to func(A) B, from func(B) A) Layout[B] {
	return &TransformedLayout[A, B]{Inner: inner, From: from, To: to}
}

func (l *TransformedLayout[A, B]) NewBuilder() Builder[B] {
	return &transformedBuilder[A, B]{inner: l.Inner.NewBuilder(), from: l.From, to: l.To}
}

func (l *TransformedLayout[A, B]) Empty() Vec[B] {
	return &transformedVec[A, B]{inner: l.Inner.Empty(), to: l.To}
}

func (l *TransformedLayout[A, B]) IsSafeToCast(vec Vec[B]) bool {
	_, ok := vec.(*transformedVec[A, B])
	return ok
}

func (l *TransformedLayout[A, B]) Write(vec Vec[B], w io.Writer) error {
	tv, ok := vec.(*transformedVec[A, B])
	if !ok {
		bld := l.NewBuilder()
		bld.PushVec(vec)
		tv = bld.Finish().(*transformedVec[A, B])
	}
	return l.Inner.Write(tv.inner, w)
}

func (l *TransformedLayout[A, B]) Read(r io.Reader) (Vec[B], error) {
	inner, err := l.Inner.Read(r)
	if err != nil {
		return nil, err
	}
	return &transformedVec[A, B]{inner: inner, to: l.To}, nil
}
