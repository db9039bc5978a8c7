// Package rng provides the pseudo-random generator used for resampling and
// the opaque snapshot of its state stored in latan containers.
package rng

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrEmptyState is returned when restoring or decoding an empty state.
var ErrEmptyState = errors.New("empty generator state")

// State is an opaque snapshot of a Generator.
type State struct {
	blob []byte
}

// StateFromBytes wraps an already serialized generator state.
func StateFromBytes(b []byte) State {
	return State{blob: bytes.Clone(b)}
}

// Bytes returns a copy of the serialized state.
func (s State) Bytes() []byte {
	return bytes.Clone(s.blob)
}

// IsZero reports whether the state holds nothing.
func (s State) IsZero() bool {
	return len(s.blob) == 0
}

// Equal reports whether two states are identical.
func (s State) Equal(other State) bool {
	return bytes.Equal(s.blob, other.blob)
}

// MarshalText renders the state as a single hexadecimal token.
func (s State) MarshalText() ([]byte, error) {
	if len(s.blob) == 0 {
		return nil, ErrEmptyState
	}
	out := make([]byte, hex.EncodedLen(len(s.blob)))
	hex.Encode(out, s.blob)
	return out, nil
}

// UnmarshalText decodes a state rendered by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	trimmed := strings.TrimSpace(string(text))
	if trimmed == "" {
		return ErrEmptyState
	}
	blob, err := hex.DecodeString(trimmed)
	if err != nil {
		return fmt.Errorf("invalid generator state: %w", err)
	}
	s.blob = blob
	return nil
}

// String implements fmt.Stringer.
func (s State) String() string {
	text, err := s.MarshalText()
	if err != nil {
		return "<empty>"
	}
	return string(text)
}

// Generator is a seeded PCG generator whose state can be captured and
// restored.
type Generator struct {
	src *rand.PCG
	rnd *rand.Rand
}

// New creates a generator from a seed.
func New(seed uint64) *Generator {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Generator{
		src: src,
		rnd: rand.New(src), //nolint:gosec // G404: resampling does not need a CSPRNG
	}
}

// State captures the current generator state.
func (g *Generator) State() State {
	blob, err := g.src.MarshalBinary()
	if err != nil {
		// PCG marshalling cannot fail.
		panic(err)
	}
	return State{blob: blob}
}

// SetState restores a state captured with State.
func (g *Generator) SetState(s State) error {
	if s.IsZero() {
		return ErrEmptyState
	}
	if err := g.src.UnmarshalBinary(s.blob); err != nil {
		return fmt.Errorf("failed to restore generator state: %w", err)
	}
	return nil
}

// Float64 returns a uniform value in [0, 1).
func (g *Generator) Float64() float64 {
	return g.rnd.Float64()
}

// NormFloat64 returns a standard normal value.
func (g *Generator) NormFloat64() float64 {
	return g.rnd.NormFloat64()
}

// IntN returns a uniform value in [0, n).
func (g *Generator) IntN(n int) int {
	return g.rnd.IntN(n)
}
