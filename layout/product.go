// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"
	"io"

	"github.com/gaissmai/bonsai/bonsaierr"
	"github.com/gaissmai/bonsai/format"
)

// ---------------------------------------------------------------- Product

type productVec[A, B, T any] struct {
	left   Vec[A]
	right  Vec[B]
	pack   func(A, B) T
	unpack func(T) (A, B)
}

func (v *productVec[A, B, T]) Len() int { return v.left.Len() }
func (v *productVec[A, B, T]) Get(i int) T {
	checkBounds(i, v.left.Len())
	return v.pack(v.left.Get(i), v.right.Get(i))
}

type productBuilder[A, B, T any] struct {
	guard
	left   Builder[A]
	right  Builder[B]
	unpack func(T) (A, B)
	pack   func(A, B) T
}

func (b *productBuilder[A, B, T]) Push(v T) {
	a, c := b.unpack(v)
	b.left.Push(a)
	b.right.Push(c)
}

func (b *productBuilder[A, B, T]) PushVec(vec Vec[T]) {
	for i := 0; i < vec.Len(); i++ {
		b.Push(vec.Get(i))
	}
}

func (b *productBuilder[A, B, T]) Clear() {
	b.left.Clear()
	b.right.Clear()
	b.reset()
}

func (b *productBuilder[A, B, T]) Finish() Vec[T] {
	b.checkFinish()
	return &productVec[A, B, T]{left: b.left.Finish(), right: b.right.Finish(), pack: b.pack, unpack: b.unpack}
}

// ProductLayout is the Layout[T] combinator of spec §4.2 zipping two
// parallel Vecs into one, via a user-supplied pack/unpack pair.
type ProductLayout[A, B, T any] struct {
	Left   Layout[A]
	Right  Layout[B]
	Pack   func(A, B) T
	Unpack func(T) (A, B)
}

// Product builds the ProductLayout combinator, packing/unpacking T via
// pack/unpack.
func Product[A, B, T any](left Layout[A], right Layout[B], pack func(A, B) T, unpack func(T) (A, B)) Layout[T] {
	return &ProductLayout[A, B, T]{Left: left, Right: right, Pack: pack, Unpack: unpack}
}

func (l *ProductLayout[A, B, T]) NewBuilder() Builder[T] {
	return &productBuilder[A, B, T]{left: l.Left.NewBuilder(), right: l.Right.NewBuilder(), pack: l.Pack, unpack: l.Unpack}
}

func (l *ProductLayout[A, B, T]) Empty() Vec[T] {
	return &productVec[A, B, T]{left: l.Left.Empty(), right: l.Right.Empty(), pack: l.Pack, unpack: l.Unpack}
}

func (l *ProductLayout[A, B, T]) IsSafeToCast(vec Vec[T]) bool {
	_, ok := vec.(*productVec[A, B, T])
	return ok
}

func (l *ProductLayout[A, B, T]) Write(vec Vec[T], w io.Writer) error {
	pv, ok := ensureShape[T](l, vec).(*productVec[A, B, T])
	if !ok {
		return fmt.Errorf("%w: product layout rebuild produced unexpected shape", bonsaierr.ErrFormat)
	}
	if err := format.WriteByte(w, 1); err != nil {
		return err
	}
	if err := l.Left.Write(pv.left, w); err != nil {
		return err
	}
	return l.Right.Write(pv.right, w)
}

func (l *ProductLayout[A, B, T]) Read(r io.Reader) (Vec[T], error) {
	tag, err := format.ReadByte(r)
	if err != nil {
		return nil, err
	}
	if tag != 1 {
		return nil, fmt.Errorf("%w: unknown product layout tag %d", bonsaierr.ErrFormat, tag)
	}
	left, err := l.Left.Read(r)
	if err != nil {
		return nil, err
	}
	right, err := l.Right.Read(r)
	if err != nil {
		return nil, err
	}
	return &productVec[A, B, T]{left: left, right: right, pack: l.Pack, unpack: l.Unpack}, nil
}

// --------------------------------------------------------------- Product3

type product3Vec[A, B, C, T any] struct {
	first  Vec[A]
	second Vec[B]
	third  Vec[C]
	pack   func(A, B, C) T
	unpack func(T) (A, B, C)
}

func (v *product3Vec[A, B, C, T]) Len() int { return v.first.Len() }
func (v *product3Vec[A, B, C, T]) Get(i int) T {
	checkBounds(i, v.first.Len())
	return v.pack(v.first.Get(i), v.second.Get(i), v.third.Get(i))
}

type product3Builder[A, B, C, T any] struct {
	guard
	first  Builder[A]
	second Builder[B]
	third  Builder[C]
	unpack func(T) (A, B, C)
	pack   func(A, B, C) T
}

func (b *product3Builder[A, B, C, T]) Push(v T) {
	a, c, d := b.unpack(v)
	b.first.Push(a)
	b.second.Push(c)
	b.third.Push(d)
}

func (b *product3Builder[A, B, C, T]) PushVec(vec Vec[T]) {
	for i := 0; i < vec.Len(); i++ {
		b.Push(vec.Get(i))
	}
}

func (b *product3Builder[A, B, C, T]) Clear() {
	b.first.Clear()
	b.second.Clear()
	b.third.Clear()
	b.reset()
}

func (b *product3Builder[A, B, C, T]) Finish() Vec[T] {
	b.checkFinish()
	return &product3Vec[A, B, C, T]{
		first: b.first.Finish(), second: b.second.Finish(), third: b.third.Finish(),
		pack: b.pack, unpack: b.unpack,
	}
}

// Product3 builds the Product3Layout combinator (spec §4.2, zipping
// three parallel Vecs into one), packing/unpacking T via pack/unpack.
func Product3[A, B, C, T any](
	first Layout[A], second Layout[B], third Layout[C],
	pack func(A, B, C) T, unpack func(T) (A, B, C),
) Layout[T] {
	return &product3LayoutImpl[A, B, C, T]{first: first, second: second, third: third, pack: pack, unpack: unpack}
}

type product3LayoutImpl[A, B, C, T any] struct {
	first  Layout[A]
	second Layout[B]
	third  Layout[C]
	pack   func(A, B, C) T
	unpack func(T) (A, B, C)
}

func (l *product3LayoutImpl[A, B, C, T]) NewBuilder() Builder[T] {
	return &product3Builder[A, B, C, T]{
		first: l.first.NewBuilder(), second: l.second.NewBuilder(), third: l.third.NewBuilder(),
		pack: l.pack, unpack: l.unpack,
	}
}

func (l *product3LayoutImpl[A, B, C, T]) Empty() Vec[T] {
	return &product3Vec[A, B, C, T]{
		first: l.first.Empty(), second: l.second.Empty(), third: l.third.Empty(),
		pack: l.pack, unpack: l.unpack,
	}
}

func (l *product3LayoutImpl[A, B, C, T]) IsSafeToCast(vec Vec[T]) bool {
	_, ok := vec.(*product3Vec[A, B, C, T])
	return ok
}

func (l *product3LayoutImpl[A, B, C, T]) Write(vec Vec[T], w io.Writer) error {
	pv, ok := ensureShape[T](l, vec).(*product3Vec[A, B, C, T])
	if !ok {
		return fmt.Errorf("%w: product3 layout rebuild produced unexpected shape", bonsaierr.ErrFormat)
	}
	if err := format.WriteByte(w, 1); err != nil {
		return err
	}
	if err := l.first.Write(pv.first, w); err != nil {
		return err
	}
	if err := l.second.Write(pv.second, w); err != nil {
		return err
	}
	return l.third.Write(pv.third, w)
}

func (l *product3LayoutImpl[A, B, C, T]) Read(r io.Reader) (Vec[T], error) {
	tag, err := format.ReadByte(r)
	if err != nil {
		return nil, err
	}
	if tag != 1 {
		return nil, fmt.Errorf("%w: unknown product3 layout tag %d", bonsaierr.ErrFormat, tag)
	}
	first, err := l.first.Read(r)
	if err != nil {
		return nil, err
	}
	second, err := l.second.Read(r)
	if err != nil {
		return nil, err
	}
	third, err := l.third.Read(r)
	if err != nil {
		return nil, err
	}
	return &product3Vec[A, B, C, T]{first: first, second: second, third: third, pack: l.pack, unpack: l.unpack}, nil
}
