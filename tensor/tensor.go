// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/latan/internal/tensor"
)

// Shape represents matrix dimensions.
// Example: Shape{2, 3} is a matrix with 2 rows and 3 columns.
type Shape = tensor.Shape

// Matrix is a dense row-major float64 matrix.
type Matrix = tensor.Matrix

// MatSample is a central matrix plus an ordered set of variations.
type MatSample = tensor.MatSample

// NewMatrix creates a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	return tensor.NewMatrix(rows, cols)
}

// FromRows builds a matrix from equally sized rows.
//
// Example:
//
//	m, err := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
func FromRows(rows [][]float64) (*Matrix, error) {
	return tensor.FromRows(rows)
}

// FromData wraps row-major values as a matrix with cols columns.
func FromData(cols int, values []float64) (*Matrix, error) {
	return tensor.FromData(cols, values)
}

// NewMatSample allocates a sample of n zero-filled rows x cols variations.
func NewMatSample(n, rows, cols int) (*MatSample, error) {
	return tensor.NewMatSample(n, rows, cols)
}

// SampleFrom builds a sample from a central value and its variations.
func SampleFrom(central *Matrix, samples []*Matrix) (*MatSample, error) {
	return tensor.SampleFrom(central, samples)
}
