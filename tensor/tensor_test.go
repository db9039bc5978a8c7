// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/born-ml/latan/tensor"
)

// TestMatrixAPI verifies the Matrix alias exposes the expected API.
func TestMatrixAPI(t *testing.T) {
	m, err := tensor.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}

	if !m.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", m.Shape())
	}
	if got := m.At(1, 2); got != 6 {
		t.Errorf("At(1, 2) = %v, want 6", got)
	}

	z, err := tensor.NewMatrix(2, 3)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	if z.Equal(m, 0) {
		t.Error("zero matrix should differ from m")
	}
}

// TestMatSampleAPI verifies the MatSample alias exposes the expected API.
func TestMatSampleAPI(t *testing.T) {
	central, _ := tensor.FromData(1, []float64{1})
	a, _ := tensor.FromData(1, []float64{0})
	b, _ := tensor.FromData(1, []float64{2})

	s, err := tensor.SampleFrom(central, []*tensor.Matrix{a, b})
	if err != nil {
		t.Fatalf("SampleFrom failed: %v", err)
	}
	if s.Size() != 2 {
		t.Errorf("Size() = %d, want 2", s.Size())
	}
	if got := s.Mean().At(0, 0); got != 1 {
		t.Errorf("Mean() = %v, want 1", got)
	}
	if got := s.Variance().At(0, 0); got != 2 {
		t.Errorf("Variance() = %v, want 2", got)
	}

	empty, err := tensor.NewMatSample(0, 1, 1)
	if err != nil {
		t.Fatalf("NewMatSample failed: %v", err)
	}
	if empty.Size() != 0 {
		t.Errorf("Size() = %d, want 0", empty.Size())
	}
}
