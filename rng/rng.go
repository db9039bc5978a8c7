// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package rng provides the seeded generator used for resampling and its
// storable state snapshot.
//
// Example:
//
//	gen := rng.New(42)
//	snapshot := gen.State()
//	x := gen.Float64()
//	_ = gen.SetState(snapshot) // replays x
package rng

import (
	"github.com/born-ml/latan/internal/rng"
)

// Generator is a seeded PCG generator.
type Generator = rng.Generator

// State is an opaque generator state snapshot.
type State = rng.State

// ErrEmptyState is returned when restoring or decoding an empty state.
var ErrEmptyState = rng.ErrEmptyState

// New creates a generator from a seed.
func New(seed uint64) *Generator {
	return rng.New(seed)
}

// StateFromBytes wraps an already serialized generator state.
func StateFromBytes(b []byte) State {
	return rng.StateFromBytes(b)
}
