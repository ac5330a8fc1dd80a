// Copyright 2025 Recur Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mat provides the dense float64 matrix that carries both values and
// accumulated gradients through the computation graph.
//
// Example:
//
//	import "github.com/recur-ml/recur/mat"
//
//	func main() {
//	    w, err := mat.FromSlice(2, 2, []float64{1, 2, 3, 4})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    x := mat.ColumnVector([]float64{0.5, -1})
//	    fmt.Println(w.Shape(), x.Shape())
//	}
package mat

import (
	"github.com/recur-ml/recur/internal/mat"
)

// Matrix is a row-major matrix with a gradient buffer of the same shape.
type Matrix = mat.Matrix

// Shape is a rows x cols pair.
type Shape = mat.Shape

// Errors returned by matrix construction and indexing.
var (
	ErrShapeMismatch   = mat.ErrShapeMismatch
	ErrIndexOutOfRange = mat.ErrIndexOutOfRange
	ErrInvalidShape    = mat.ErrInvalidShape
)

// New creates a zero-filled rows x cols matrix. Negative dimensions panic.
func New(rows, cols int) *Matrix {
	return mat.New(rows, cols)
}

// FromSlice creates a matrix holding a copy of data.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	return mat.FromSlice(rows, cols, data)
}

// ColumnVector creates a len(data) x 1 matrix holding a copy of data.
func ColumnVector(data []float64) *Matrix {
	return mat.ColumnVector(data)
}
