package tensor

import (
	"fmt"
	"math"
)

// Matrix is a dense row-major float64 matrix.
type Matrix struct {
	shape  Shape // {rows, cols}
	stride []int
	data   []float64
}

// NewMatrix creates a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	shape := Shape{rows, cols}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Matrix{
		shape:  shape,
		stride: shape.ComputeStrides(),
		data:   make([]float64, shape.NumElements()),
	}, nil
}

// MustMatrix is like NewMatrix but panics on an invalid shape.
func MustMatrix(rows, cols int) *Matrix {
	m, err := NewMatrix(rows, cols)
	if err != nil {
		panic(err)
	}
	return m
}

// FromRows builds a matrix from a slice of equally sized rows.
func FromRows(rows [][]float64) (*Matrix, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m, err := NewMatrix(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i, len(row), cols)
		}
		copy(m.data[i*cols:], row)
	}
	return m, nil
}

// FromData wraps values as a matrix with the given column count.
// len(values) must be a multiple of cols; cols == 0 requires no values.
// The slice is used directly, not copied.
func FromData(cols int, values []float64) (*Matrix, error) {
	if cols < 0 {
		return nil, fmt.Errorf("invalid column count %d", cols)
	}
	if cols == 0 {
		if len(values) != 0 {
			return nil, fmt.Errorf("%d values given for a matrix with no columns", len(values))
		}
		return MustMatrix(0, 0), nil
	}
	if len(values)%cols != 0 {
		return nil, fmt.Errorf("%d values do not fill rows of %d columns", len(values), cols)
	}
	shape := Shape{len(values) / cols, cols}
	return &Matrix{
		shape:  shape,
		stride: shape.ComputeStrides(),
		data:   values,
	}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.shape[0]
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.shape[1]
}

// Shape returns the matrix shape {rows, cols}.
func (m *Matrix) Shape() Shape {
	return m.shape
}

// NumElements returns rows*cols.
func (m *Matrix) NumElements() int {
	return len(m.data)
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[m.index(i, j)]
}

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.data[m.index(i, j)] = v
}

// Row returns row i as a slice sharing the matrix storage.
func (m *Matrix) Row(i int) []float64 {
	if i < 0 || i >= m.Rows() {
		panic(fmt.Sprintf("row %d out of range [0, %d)", i, m.Rows()))
	}
	start := i * m.stride[0]
	return m.data[start : start+m.Cols()]
}

// Data returns the row-major backing slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (m *Matrix) Data() []float64 {
	return m.data
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Matrix{
		shape:  m.shape.Clone(),
		stride: append([]int(nil), m.stride...),
		data:   data,
	}
}

// Equal reports whether both matrices have the same shape and all elements
// agree within the absolute tolerance tol.
func (m *Matrix) Equal(other *Matrix, tol float64) bool {
	if other == nil || !m.shape.Equal(other.shape) {
		return false
	}
	for i, v := range m.data {
		w := other.data[i]
		if v == w {
			continue
		}
		if math.IsNaN(v) && math.IsNaN(w) {
			continue
		}
		if math.Abs(v-w) > tol {
			return false
		}
	}
	return true
}

// String returns a short description like "Matrix(2x3)".
func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix(%s)", m.shape)
}

func (m *Matrix) index(i, j int) int {
	if i < 0 || i >= m.shape[0] || j < 0 || j >= m.shape[1] {
		panic(fmt.Sprintf("index (%d, %d) out of range for %s matrix", i, j, m.shape))
	}
	return i*m.stride[0] + j*m.stride[1]
}
