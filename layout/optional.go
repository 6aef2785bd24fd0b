// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"
	"io"

	"github.com/gaissmai/bonsai/bitset"
	"github.com/gaissmai/bonsai/bonsaierr"
	"github.com/gaissmai/bonsai/format"
)

type optionalVec[A any] struct {
	presence *bitset.IndexedBitSet
	inner    Vec[A]
}

func (v *optionalVec[A]) Len() int { return v.presence.Len() }

func (v *optionalVec[A]) Get(i int) Option[A] {
	checkBounds(i, v.presence.Len())
	if !v.presence.Contains(i) {
		return None[A]()
	}
	return Some(v.inner.Get(v.presence.Rank(i) - 1))
}

type optionalBuilder[A any] struct {
	guard
	presence *bitset.Builder
	inner    Builder[A]
}

func (b *optionalBuilder[A]) Push(v Option[A]) {
	b.presence.Push(v.Present)
	if v.Present {
		b.inner.Push(v.Value)
	}
}

func (b *optionalBuilder[A]) PushVec(vec Vec[Option[A]]) {
	for i := 0; i < vec.Len(); i++ {
		b.Push(vec.Get(i))
	}
}

func (b *optionalBuilder[A]) Clear() {
	b.presence = bitset.NewBuilder()
	b.inner.Clear()
	b.reset()
}

func (b *optionalBuilder[A]) Finish() Vec[Option[A]] {
	b.checkFinish()
	return &optionalVec[A]{presence: b.presence.Finish(), inner: b.inner.Finish()}
}

// OptionalLayout is the Layout[Option[A]] combinator of spec §4.2: a
// presence IndexedBitSet alongside an inner Vec[A] holding only the
// present values, densely packed.
type OptionalLayout[A any] struct {
	Inner Layout[A]
}

// Optional builds the OptionalLayout combinator over inner.
func Optional[A any](inner Layout[A]) Layout[Option[A]] {
	return &OptionalLayout[A]{Inner: inner}
}

func (l *OptionalLayout[A]) NewBuilder() Builder[Option[A]] {
	return &optionalBuilder[A]{presence: bitset.NewBuilder(), inner: l.Inner.NewBuilder()}
}

func (l *OptionalLayout[A]) Empty() Vec[Option[A]] {
	return &optionalVec[A]{presence: bitset.NewBuilder().Finish(), inner: l.Inner.Empty()}
}

func (l *OptionalLayout[A]) IsSafeToCast(vec Vec[Option[A]]) bool {
	_, ok := vec.(*optionalVec[A])
	return ok
}

func (l *OptionalLayout[A]) Write(vec Vec[Option[A]], w io.Writer) error {
	ov, ok := ensureShape[Option[A]](l, vec).(*optionalVec[A])
	if !ok {
		return fmt.Errorf("%w: optional layout rebuild produced unexpected shape", bonsaierr.ErrFormat)
	}

	if err := format.WriteByte(w, 1); err != nil {
		return err
	}
	if err := l.Inner.Write(ov.inner, w); err != nil {
		return err
	}
	if err := format.WriteUint32(w, uint32(ov.presence.Len())); err != nil {
		return err
	}
	return ov.presence.Write(w)
}

func (l *OptionalLayout[A]) Read(r io.Reader) (Vec[Option[A]], error) {
	tag, err := format.ReadByte(r)
	if err != nil {
		return nil, err
	}
	if tag != 1 {
		return nil, fmt.Errorf("%w: unknown optional layout tag %d", bonsaierr.ErrFormat, tag)
	}

	inner, err := l.Inner.Read(r)
	if err != nil {
		return nil, err
	}
	length, err := format.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	presence, err := bitset.Read(r, int(length))
	if err != nil {
		return nil, err
	}
	return &optionalVec[A]{presence: presence, inner: inner}, nil
}
