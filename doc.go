// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bonsai is the module root for a small family of packages for
// compactly representing immutable labeled trees and columnar sequences:
//
//   - bitset: an indexed bitset with O(1) rank and polylogarithmic select
//   - layout: a composable Vec/Layout algebra for columnar sequences, with
//     binary serialization and a safe-cast fast path
//   - tree: succinct k-ary and full-binary tree encodings built on bitset
//     and layout
//   - format: the shared big-endian wire primitives every Write/Read pair
//     in the module is built from
//   - bonsaierr: the sentinel errors shared across all of the above
//
// There is no code at the module root; callers import whichever
// subpackage their use case needs. A tree is built once from an ordinary
// pointer-based or custom source tree via tree.Build or tree.BuildBinTree,
// then queried by position with O(1) navigation and no further
// allocation.
package bonsai
