// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bitset

import (
	"io"

	"github.com/gaissmai/bonsai/format"
)

// Write serializes b as ceil(Len()/8) bytes, bit i at byte i/8, position
// i%8 (LSB=0). The length is not written; the caller supplies it on Read
// (spec §6).
func (b *IndexedBitSet) Write(w io.Writer) error {
	bits := make([]bool, b.length)
	for i := range bits {
		bits[i] = b.Contains(i)
	}
	return format.WriteRawBits(w, bits)
}

// Read deserializes an IndexedBitSet of the given length, rebuilding the
// rank/select index from the raw bits (the inverse of Write).
func Read(r io.Reader, length int) (*IndexedBitSet, error) {
	bits, err := format.ReadRawBits(r, length)
	if err != nil {
		return nil, err
	}
	bld := NewBuilder()
	for _, v := range bits {
		bld.Push(v)
	}
	return bld.Finish(), nil
}
