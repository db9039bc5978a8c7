// Package tensor provides the dense float64 matrix and matrix-sample types
// stored in latan containers.
package tensor
