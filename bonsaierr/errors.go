// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bonsaierr collects the sentinel errors shared across bonsai's
// packages, so callers can discriminate failure kinds with [errors.Is]
// instead of matching on message text.
package bonsaierr

import "errors"

// Format errors: a magic mismatch, an unknown encoding tag, or a
// dictionary that grew past its 256-entry limit. Surfaced from read,
// leaving the source at an undefined position.
var ErrFormat = errors.New("bonsai: format error")

// Bounds errors: get(i) outside [0, len), select(k) outside [1, popcount].
// These indicate a caller bug and are never retried.
var ErrBounds = errors.New("bonsai: index out of bounds")

// Builder misuse: finish called twice without an intervening clear.
var ErrBuilderMisuse = errors.New("bonsai: builder already finished")
