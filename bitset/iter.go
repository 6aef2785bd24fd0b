//go:build go1.23

// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bitset

import (
	"iter"
	"math/bits"
)

// All iterates over the positions of all set bits, in ascending order.
func (b *IndexedBitSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for blockIdx, word := range b.raw {
			for word != 0 {
				i := blockIdx<<5 + bits.TrailingZeros32(word)
				if !yield(i) {
					return
				}
				word &= word - 1
			}
		}
	}
}
