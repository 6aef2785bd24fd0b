// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"
	"io"

	"github.com/gaissmai/bonsai/bonsaierr"
	"github.com/gaissmai/bonsai/format"
)

type colVec[A any] struct {
	offsets Vec[int32]
	flat    Vec[A]
}

func (v *colVec[A]) Len() int { return v.offsets.Len() }

func (v *colVec[A]) Get(i int) []A {
	checkBounds(i, v.offsets.Len())
	start := v.offsets.Get(i)
	end := int32(v.flat.Len())
	if i+1 < v.offsets.Len() {
		end = v.offsets.Get(i + 1)
	}
	row := make([]A, end-start)
	for j := range row {
		row[j] = v.flat.Get(int(start) + j)
	}
	return row
}

type colBuilder[A any] struct {
	guard
	offsets Builder[int32]
	flat    Builder[A]
	flatLen int
}

func (b *colBuilder[A]) Push(row []A) {
	b.offsets.Push(int32(b.flatLen))
	for _, v := range row {
		b.flat.Push(v)
	}
	b.flatLen += len(row)
}

func (b *colBuilder[A]) PushVec(vec Vec[[]A]) {
	for i := 0; i < vec.Len(); i++ {
		b.Push(vec.Get(i))
	}
}

func (b *colBuilder[A]) Clear() {
	b.offsets = Int32().NewBuilder()
	b.flat.Clear()
	b.flatLen = 0
	b.reset()
}

func (b *colBuilder[A]) Finish() Vec[[]A] {
	b.checkFinish()
	return &colVec[A]{offsets: b.offsets.Finish(), flat: b.flat.Finish()}
}

// ColLayout is the Layout[[]A] combinator of spec §4.2: a nested
// sequence stored as per-row offsets into one flat Vec[A].
type ColLayout[A any] struct {
	Flat Layout[A]
}

// Col builds the ColLayout combinator over flat.
func Col[A any](flat Layout[A]) Layout[[]A] {
	return &ColLayout[A]{Flat: flat}
}

func (l *ColLayout[A]) NewBuilder() Builder[[]A] {
	return &colBuilder[A]{offsets: Int32().NewBuilder(), flat: l.Flat.NewBuilder()}
}

func (l *ColLayout[A]) Empty() Vec[[]A] {
	return &colVec[A]{offsets: Int32().Empty(), flat: l.Flat.Empty()}
}

func (l *ColLayout[A]) IsSafeToCast(vec Vec[[]A]) bool {
	_, ok := vec.(*colVec[A])
	return ok
}

func (l *ColLayout[A]) Write(vec Vec[[]A], w io.Writer) error {
	cv, ok := ensureShape[[]A](l, vec).(*colVec[A])
	if !ok {
		return fmt.Errorf("%w: col layout rebuild produced unexpected shape", bonsaierr.ErrFormat)
	}
	if err := format.WriteByte(w, 1); err != nil {
		return err
	}
	if err := Int32().Write(cv.offsets, w); err != nil {
		return err
	}
	return l.Flat.Write(cv.flat, w)
}

func (l *ColLayout[A]) Read(r io.Reader) (Vec[[]A], error) {
	tag, err := format.ReadByte(r)
	if err != nil {
		return nil, err
	}
	if tag != 1 {
		return nil, fmt.Errorf("%w: unknown col layout tag %d", bonsaierr.ErrFormat, tag)
	}
	offsets, err := Int32().Read(r)
	if err != nil {
		return nil, err
	}
	flat, err := l.Flat.Read(r)
	if err != nil {
		return nil, err
	}
	return &colVec[A]{offsets: offsets, flat: flat}, nil
}
