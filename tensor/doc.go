// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the numeric types stored in latan containers.
//
// # Overview
//
//   - Matrix: dense row-major float64 matrix
//   - MatSample: a central matrix plus N resampled variations
//   - Shape: matrix dimensions
//
// # Basic Usage
//
//	m, err := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := tensor.NewMatSample(100, 2, 2)
//	...
//	mean := s.Mean()
//	err := s.StdDev()
package tensor
