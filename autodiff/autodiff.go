// Copyright 2025 Recur Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// matrices.
//
// A Graph applies operations eagerly and, while memorizing, records one
// backward step per operation. Backward replays the recorded steps in reverse
// order, accumulating into the gradient buffers of every operand.
//
// Example:
//
//	import (
//	    "github.com/recur-ml/recur/autodiff"
//	    "github.com/recur-ml/recur/mat"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    g.MemorizeOperationSequence(true)
//
//	    w, _ := mat.FromSlice(1, 2, []float64{0.5, -0.3})
//	    x := mat.ColumnVector([]float64{1, 2})
//	    y, _ := g.Mul(w, x)
//	    out := g.Tanh(y)
//
//	    out.Grad()[0] = 1 // seed dL/dout
//	    g.Backward()
//	    fmt.Println(w.Grad())
//	}
package autodiff

import (
	"github.com/recur-ml/recur/internal/autodiff"
	"github.com/recur-ml/recur/internal/stats"
)

// Graph records differentiable matrix operations.
type Graph = autodiff.Graph

// Option configures a Graph.
type Option = autodiff.Option

// NewGraph creates a graph that is not recording.
func NewGraph(opts ...Option) *Graph {
	return autodiff.NewGraph(opts...)
}

// WithSeed makes Gauss draw from a deterministic source.
func WithSeed(seed int64) Option {
	return autodiff.WithSampler(stats.New(seed))
}
