// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"
	"io"
	"math"

	"github.com/gaissmai/bonsai/bonsaierr"
	"github.com/gaissmai/bonsai/format"
)

const (
	tagPlain = 0
	tagDict  = 1

	// maxDictEntries caps the greedy byte-dictionary at 255 distinct
	// values. A 256th distinct value falls back to plain encoding: per
	// spec §8's boundary test, an input with exactly 256 distinct values
	// must not use dictionary encoding, even though a u8 index and a
	// u32 dict-length field could represent 256 entries. See DESIGN.md.
	maxDictEntries = 255
)

// elemCodec writes and reads one fixed- or variable-width element, the
// per-type plumbing a dense Layout[T] is built from.
type elemCodec[T any] struct {
	write func(io.Writer, T) error
	read  func(io.Reader) (T, error)
}

// denseVec is the plain array physical shape backing every dense
// primitive Layout[T] and the safe-cast target vecs of this package.
type denseVec[T any] struct{ items []T }

func (v *denseVec[T]) Len() int { return len(v.items) }
func (v *denseVec[T]) Get(i int) T {
	checkBounds(i, len(v.items))
	return v.items[i]
}

type denseBuilder[T any] struct {
	guard
	items []T
}

func (b *denseBuilder[T]) Push(v T)       { b.items = append(b.items, v) }
func (b *denseBuilder[T]) PushVec(v Vec[T]) {
	for i := 0; i < v.Len(); i++ {
		b.items = append(b.items, v.Get(i))
	}
}
func (b *denseBuilder[T]) Clear() { b.items = nil; b.reset() }
func (b *denseBuilder[T]) Finish() Vec[T] {
	b.checkFinish()
	return &denseVec[T]{items: b.items}
}

// denseLayout is the Layout[T] for every fixed- or variable-width
// primitive type (spec §4.2): bool, the signed/float integer widths,
// Char and string.
type denseLayout[T comparable] struct {
	codec elemCodec[T]
}

func (l *denseLayout[T]) NewBuilder() Builder[T] { return &denseBuilder[T]{} }
func (l *denseLayout[T]) Empty() Vec[T]          { return &denseVec[T]{} }

func (l *denseLayout[T]) IsSafeToCast(vec Vec[T]) bool {
	_, ok := vec.(*denseVec[T])
	return ok
}

func (l *denseLayout[T]) materialize(vec Vec[T]) []T {
	if dv, ok := vec.(*denseVec[T]); ok {
		return dv.items
	}
	items := make([]T, vec.Len())
	for i := range items {
		items[i] = vec.Get(i)
	}
	return items
}

func (l *denseLayout[T]) Write(vec Vec[T], w io.Writer) error {
	items := l.materialize(vec)

	dictItems := make([]T, 0, maxDictEntries)
	dictIndex := make(map[T]byte, maxDictEntries)
	indices := make([]byte, len(items))
	overflow := false

	for i, v := range items {
		idx, ok := dictIndex[v]
		if !ok {
			if len(dictItems) >= maxDictEntries {
				overflow = true
				break
			}
			idx = byte(len(dictItems))
			dictIndex[v] = idx
			dictItems = append(dictItems, v)
		}
		indices[i] = idx
	}

	if overflow {
		return l.writePlain(items, w)
	}
	return l.writeDict(dictItems, indices, w)
}

func (l *denseLayout[T]) writePlain(items []T, w io.Writer) error {
	if err := format.WriteByte(w, tagPlain); err != nil {
		return err
	}
	if err := format.WriteUint32(w, uint32(len(items))); err != nil {
		return err
	}
	for _, v := range items {
		if err := l.codec.write(w, v); err != nil {
			return err
		}
	}
	return nil
}

func (l *denseLayout[T]) writeDict(dict []T, indices []byte, w io.Writer) error {
	if err := format.WriteByte(w, tagDict); err != nil {
		return err
	}
	if err := format.WriteUint32(w, uint32(len(dict))); err != nil {
		return err
	}
	for _, v := range dict {
		if err := l.codec.write(w, v); err != nil {
			return err
		}
	}
	if err := format.WriteUint32(w, uint32(len(indices))); err != nil {
		return err
	}
	_, err := w.Write(indices)
	return err
}

func (l *denseLayout[T]) Read(r io.Reader) (Vec[T], error) {
	tag, err := format.ReadByte(r)
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagPlain:
		n, err := format.ReadUint32(r)
		if err != nil {
			return nil, err
		}
		items := make([]T, n)
		for i := range items {
			items[i], err = l.codec.read(r)
			if err != nil {
				return nil, err
			}
		}
		return &denseVec[T]{items: items}, nil

	case tagDict:
		dictLen, err := format.ReadUint32(r)
		if err != nil {
			return nil, err
		}
		if dictLen > 256 {
			return nil, fmt.Errorf("%w: dictionary length %d exceeds 256", bonsaierr.ErrFormat, dictLen)
		}
		dict := make([]T, dictLen)
		for i := range dict {
			dict[i], err = l.codec.read(r)
			if err != nil {
				return nil, err
			}
		}
		idxLen, err := format.ReadUint32(r)
		if err != nil {
			return nil, err
		}
		indices := make([]byte, idxLen)
		if _, err := io.ReadFull(r, indices); err != nil {
			return nil, err
		}
		items := make([]T, idxLen)
		for i, idx := range indices {
			if int(idx) >= len(dict) {
				return nil, fmt.Errorf("%w: dictionary index %d out of range", bonsaierr.ErrFormat, idx)
			}
			items[i] = dict[idx]
		}
		return &denseVec[T]{items: items}, nil

	default:
		return nil, fmt.Errorf("%w: unknown primitive encoding tag %d", bonsaierr.ErrFormat, tag)
	}
}

// Bool is the Layout[bool] for a dense boolean column.
func Bool() Layout[bool] {
	return &denseLayout[bool]{codec: elemCodec[bool]{
		write: func(w io.Writer, v bool) error { return format.WriteBool(w, v) },
		read:  func(r io.Reader) (bool, error) { return format.ReadBool(r) },
	}}
}

// Int8 is the Layout[int8] for a dense i8 column.
func Int8() Layout[int8] {
	return &denseLayout[int8]{codec: elemCodec[int8]{
		write: func(w io.Writer, v int8) error { return format.WriteByte(w, byte(v)) },
		read: func(r io.Reader) (int8, error) {
			b, err := format.ReadByte(r)
			return int8(b), err
		},
	}}
}

// Int16 is the Layout[int16] for a dense i16 column.
func Int16() Layout[int16] {
	return &denseLayout[int16]{codec: elemCodec[int16]{
		write: func(w io.Writer, v int16) error { return format.WriteUint16(w, uint16(v)) },
		read: func(r io.Reader) (int16, error) {
			u, err := format.ReadUint16(r)
			return int16(u), err
		},
	}}
}

// Int32 is the Layout[int32] for a dense i32 column.
func Int32() Layout[int32] {
	return &denseLayout[int32]{codec: elemCodec[int32]{
		write: func(w io.Writer, v int32) error { return format.WriteUint32(w, uint32(v)) },
		read: func(r io.Reader) (int32, error) {
			u, err := format.ReadUint32(r)
			return int32(u), err
		},
	}}
}

// Int64 is the Layout[int64] for a dense i64 column.
func Int64() Layout[int64] {
	return &denseLayout[int64]{codec: elemCodec[int64]{
		write: func(w io.Writer, v int64) error { return format.WriteUint64(w, uint64(v)) },
		read: func(r io.Reader) (int64, error) {
			u, err := format.ReadUint64(r)
			return int64(u), err
		},
	}}
}

// Float32 is the Layout[float32] for a dense f32 column.
func Float32() Layout[float32] {
	return &denseLayout[float32]{codec: elemCodec[float32]{
		write: func(w io.Writer, v float32) error { return format.WriteUint32(w, math.Float32bits(v)) },
		read: func(r io.Reader) (float32, error) {
			u, err := format.ReadUint32(r)
			return math.Float32frombits(u), err
		},
	}}
}

// Float64 is the Layout[float64] for a dense f64 column.
func Float64() Layout[float64] {
	return &denseLayout[float64]{codec: elemCodec[float64]{
		write: func(w io.Writer, v float64) error { return format.WriteUint64(w, math.Float64bits(v)) },
		read: func(r io.Reader) (float64, error) {
			u, err := format.ReadUint64(r)
			return math.Float64frombits(u), err
		},
	}}
}

// CharLayout is the Layout[Char] for a dense UTF-16 code unit column.
func CharLayout() Layout[Char] {
	return &denseLayout[Char]{codec: elemCodec[Char]{
		write: func(w io.Writer, v Char) error { return format.WriteUint16(w, uint16(v)) },
		read: func(r io.Reader) (Char, error) {
			u, err := format.ReadUint16(r)
			return Char(u), err
		},
	}}
}

// String is the Layout[string] for a dense, length-prefixed UTF-8 string
// column.
func String() Layout[string] {
	return &denseLayout[string]{codec: elemCodec[string]{
		write: format.WriteString,
		read:  format.ReadString,
	}}
}
