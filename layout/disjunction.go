// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package layout

import (
	"io"

	"github.com/gaissmai/bonsai/bitset"
)

type disjunctionVec[A, B any] struct {
	left  Vec[A]
	right Vec[B]
	disc  *bitset.IndexedBitSet // true = left
}

func (v *disjunctionVec[A, B]) Len() int { return v.disc.Len() }

func (v *disjunctionVec[A, B]) Get(i int) Either[A, B] {
	checkBounds(i, v.disc.Len())
	rank := v.disc.Rank(i)
	if v.disc.Contains(i) {
		return Left[A, B](v.left.Get(rank - 1))
	}
	return Right[A, B](v.right.Get(i - rank))
}

type disjunctionBuilder[A, B any] struct {
	guard
	left  Builder[A]
	right Builder[B]
	disc  *bitset.Builder
}

func (b *disjunctionBuilder[A, B]) Push(v Either[A, B]) {
	b.disc.Push(v.IsLeft)
	if v.IsLeft {
		b.left.Push(v.UnwrapLeft())
	} else {
		b.right.Push(v.UnwrapRight())
	}
}

func (b *disjunctionBuilder[A, B]) PushVec(vec Vec[Either[A, B]]) {
	for i := 0; i < vec.Len(); i++ {
		b.Push(vec.Get(i))
	}
}

func (b *disjunctionBuilder[A, B]) Clear() {
	b.left.Clear()
	b.right.Clear()
	b.disc = bitset.NewBuilder()
	b.reset()
}

func (b *disjunctionBuilder[A, B]) Finish() Vec[Either[A, B]] {
	b.checkFinish()
	return &disjunctionVec[A, B]{left: b.left.Finish(), right: b.right.Finish(), disc: b.disc.Finish()}
}

// DisjunctionLayout is the Layout[Either[A, B]] combinator of spec §4.2:
// parallel left/right Vecs selected by a discriminator IndexedBitSet,
// true meaning left.
type DisjunctionLayout[A, B any] struct {
	Left  Layout[A]
	Right Layout[B]
}

// EitherLayout builds the DisjunctionLayout combinator over left and right.
func EitherLayout[A, B any](left Layout[A], right Layout[B]) Layout[Either[A, B]] {
	return &DisjunctionLayout[A, B]{Left: left, Right: right}
}

func (l *DisjunctionLayout[A, B]) NewBuilder() Builder[Either[A, B]] {
	return &disjunctionBuilder[A, B]{left: l.Left.NewBuilder(), right: l.Right.NewBuilder(), disc: bitset.NewBuilder()}
}

func (l *DisjunctionLayout[A, B]) Empty() Vec[Either[A, B]] {
	return &disjunctionVec[A, B]{left: l.Left.Empty(), right: l.Right.Empty(), disc: bitset.NewBuilder().Finish()}
}

func (l *DisjunctionLayout[A, B]) IsSafeToCast(vec Vec[Either[A, B]]) bool {
	_, ok := vec.(*disjunctionVec[A, B])
	return ok
}

func (l *DisjunctionLayout[A, B]) Write(vec Vec[Either[A, B]], w io.Writer) error {
	dv := ensureShape[Either[A, B]](l, vec).(*disjunctionVec[A, B])

	if err := l.Left.Write(dv.left, w); err != nil {
		return err
	}
	if err := l.Right.Write(dv.right, w); err != nil {
		return err
	}
	return dv.disc.Write(w)
}

func (l *DisjunctionLayout[A, B]) Read(r io.Reader) (Vec[Either[A, B]], error) {
	left, err := l.Left.Read(r)
	if err != nil {
		return nil, err
	}
	right, err := l.Right.Read(r)
	if err != nil {
		return nil, err
	}
	disc, err := bitset.Read(r, left.Len()+right.Len())
	if err != nil {
		return nil, err
	}
	return &disjunctionVec[A, B]{left: left, right: right, disc: disc}, nil
}
