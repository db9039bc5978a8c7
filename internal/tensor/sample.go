package tensor

import (
	"fmt"
	"math"
)

// MatSample is a resampled ensemble of matrices: a central value plus an
// ordered set of N variations (jackknife or bootstrap replicas).
// All matrices of a sample share one shape.
type MatSample struct {
	central *Matrix
	samples []*Matrix
}

// NewMatSample allocates a sample of size n with zero-filled rows x cols
// matrices.
func NewMatSample(n, rows, cols int) (*MatSample, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid sample size %d", n)
	}
	central, err := NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	s := &MatSample{
		central: central,
		samples: make([]*Matrix, n),
	}
	for i := range s.samples {
		s.samples[i] = MustMatrix(rows, cols)
	}
	return s, nil
}

// SampleFrom builds a sample from a central value and its variations.
// The matrices are stored as given, not copied.
func SampleFrom(central *Matrix, samples []*Matrix) (*MatSample, error) {
	if central == nil {
		return nil, fmt.Errorf("missing central value")
	}
	for i, m := range samples {
		if m == nil {
			return nil, fmt.Errorf("missing variation %d", i)
		}
		if !m.Shape().Equal(central.Shape()) {
			return nil, fmt.Errorf("variation %d has shape %s, central value has %s", i, m.Shape(), central.Shape())
		}
	}
	return &MatSample{
		central: central,
		samples: append([]*Matrix(nil), samples...),
	}, nil
}

// Size returns the number of variations N.
func (s *MatSample) Size() int {
	return len(s.samples)
}

// Shape returns the common matrix shape.
func (s *MatSample) Shape() Shape {
	return s.central.Shape()
}

// Central returns the central value.
func (s *MatSample) Central() *Matrix {
	return s.central
}

// At returns variation i.
func (s *MatSample) At(i int) *Matrix {
	return s.samples[i]
}

// Samples returns the variations in order.
func (s *MatSample) Samples() []*Matrix {
	return s.samples
}

// Equal reports whether both samples have the same size and matching
// central value and variations within tol.
func (s *MatSample) Equal(other *MatSample, tol float64) bool {
	if other == nil || s.Size() != other.Size() {
		return false
	}
	if !s.central.Equal(other.central, tol) {
		return false
	}
	for i, m := range s.samples {
		if !m.Equal(other.samples[i], tol) {
			return false
		}
	}
	return true
}

// Mean returns the element-wise mean over the variations.
// It returns a copy of the central value when the sample is empty.
func (s *MatSample) Mean() *Matrix {
	if len(s.samples) == 0 {
		return s.central.Clone()
	}
	mean := MustMatrix(s.central.Rows(), s.central.Cols())
	for _, m := range s.samples {
		for k, v := range m.data {
			mean.data[k] += v
		}
	}
	n := float64(len(s.samples))
	for k := range mean.data {
		mean.data[k] /= n
	}
	return mean
}

// Variance returns the element-wise variance over the variations, using an
// N-1 denominator. Samples with fewer than two variations give zeros.
func (s *MatSample) Variance() *Matrix {
	variance := MustMatrix(s.central.Rows(), s.central.Cols())
	if len(s.samples) < 2 {
		return variance
	}
	mean := s.Mean()
	for _, m := range s.samples {
		for k, v := range m.data {
			d := v - mean.data[k]
			variance.data[k] += d * d
		}
	}
	n := float64(len(s.samples) - 1)
	for k := range variance.data {
		variance.data[k] /= n
	}
	return variance
}

// StdDev returns the element-wise square root of Variance.
func (s *MatSample) StdDev() *Matrix {
	sd := s.Variance()
	for k, v := range sd.data {
		sd.data[k] = math.Sqrt(v)
	}
	return sd
}
