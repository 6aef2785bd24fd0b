// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package layout

import (
	"io"

	"github.com/gaissmai/bonsai/format"
)

// Unit is the element type of a Vec built by the UnitLayout combinator;
// it carries no data, only a position.
type Unit struct{}

type unitVec struct{ length int }

func (v *unitVec) Len() int { return v.length }
func (v *unitVec) Get(i int) Unit {
	checkBounds(i, v.length)
	return Unit{}
}

type unitBuilder struct {
	guard
	count int
}

func (b *unitBuilder) Push(Unit)         { b.count++ }
func (b *unitBuilder) PushVec(v Vec[Unit]) { b.count += v.Len() }
func (b *unitBuilder) Clear()            { b.count = 0; b.reset() }
func (b *unitBuilder) Finish() Vec[Unit] {
	b.checkFinish()
	return &unitVec{length: b.count}
}

// unitLayout is the Layout[Unit] combinator of spec §4.2: a Vec that
// stores only its length.
type unitLayout struct{}

// UnitLayoutInstance builds the dense-unit Layout[Unit] combinator.
func UnitLayoutInstance() Layout[Unit] { return unitLayout{} }

func (unitLayout) NewBuilder() Builder[Unit] { return &unitBuilder{} }
func (unitLayout) Empty() Vec[Unit]          { return &unitVec{} }
func (unitLayout) IsSafeToCast(vec Vec[Unit]) bool {
	_, ok := vec.(*unitVec)
	return ok
}

func (l unitLayout) Write(vec Vec[Unit], w io.Writer) error {
	return format.WriteUint32(w, uint32(vec.Len()))
}

func (l unitLayout) Read(r io.Reader) (Vec[Unit], error) {
	n, err := format.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	return &unitVec{length: int(n)}, nil
}
