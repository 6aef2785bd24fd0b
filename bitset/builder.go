// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bitset

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/gaissmai/bonsai/bonsaierr"
)

// Builder accepts a stream of booleans and, on Finish, freezes them into
// an immutable IndexedBitSet with a two-level rank/select index (spec
// §4.1). Not reentrant: one producer at a time.
type Builder struct {
	raw *bitset.BitSet // growable scratch accumulator, teacher's own type

	cnt int // total bits pushed so far
	k   int // running popcount over the whole sequence
	m   int // running popcount within the current superblock

	level1 []uint32
	level2 []uint32 // built incrementally, 3 fields packed per word

	level2pending uint32 // accumulator for the word currently being packed
	level2slot    int    // which of the 3 sub-fields is next, 0..2

	finished bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{raw: bitset.New(0)}
}

// Push appends one bit.
func (bld *Builder) Push(v bool) {
	if bld.cnt%superblockBits == 0 {
		bld.level1 = append(bld.level1, uint32(bld.k))
		bld.m = 0
	}
	if bld.cnt%blockBits == 0 {
		bld.pushLevel2(bld.m)
	}

	if v {
		bld.raw.Set(uint(bld.cnt))
		bld.k++
		bld.m++
	}
	bld.cnt++
}

func (bld *Builder) pushLevel2(m int) {
	bld.level2pending |= uint32(m&0x3FF) << uint(bld.level2slot*10)
	bld.level2slot++
	if bld.level2slot == 3 {
		bld.level2 = append(bld.level2, bld.level2pending)
		bld.level2pending = 0
		bld.level2slot = 0
	}
}

// Finish freezes the accumulated bits into an IndexedBitSet. Calling
// Finish twice without an intervening Clear panics with
// bonsaierr.ErrBuilderMisuse (spec §7, builder misuse).
func (bld *Builder) Finish() *IndexedBitSet {
	if bld.finished {
		panic(bonsaierr.ErrBuilderMisuse)
	}
	bld.finished = true

	// flush the last, possibly partial, level2 word
	if bld.level2slot != 0 {
		bld.level2 = append(bld.level2, bld.level2pending)
	}

	numBlocks := (bld.cnt + blockBits - 1) / blockBits
	raw := make([]uint32, numBlocks)

	// Repack the scratch bitset's 64-bit words down into 32-bit blocks.
	for i, ok := bld.raw.NextSet(0); ok; i, ok = bld.raw.NextSet(i + 1) {
		if int(i) >= bld.cnt {
			break
		}
		raw[i>>5] |= 1 << uint(i&31)
	}

	return &IndexedBitSet{
		length:   bld.cnt,
		popcnt:   bld.k,
		level1:   bld.level1,
		level2:   bld.level2,
		raw:      raw,
		numBlock: numBlocks,
	}
}

// Clear resets the builder to empty so it can be reused.
func (bld *Builder) Clear() {
	*bld = Builder{raw: bitset.New(0)}
}
