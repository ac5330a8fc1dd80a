// Package autodiff implements the dynamic computation graph of the engine.
//
// A Graph exposes one method per matrix operation. Each method computes the
// forward result through package ops and, while the graph is memorizing,
// pushes the operation's backward record onto a stack. Backward replays the
// stack in reverse order, accumulating gradients into every matrix touched by
// the forward pass.
//
// Usage:
//
//	g := autodiff.NewGraph()
//	g.MemorizeOperationSequence(true)
//	z, _ := g.Mul(w, x)
//	y := g.Tanh(z)
//	y.Grad()[0] = 1 // seed the loss gradient
//	g.Backward()    // w.Grad() and x.Grad() now hold dL/dw and dL/dx
//
// A Graph is not safe for concurrent use. It never owns matrices: parameters
// belong to the caller, intermediate results to whoever received them.
package autodiff

import (
	"github.com/recur-ml/recur/internal/autodiff/ops"
	"github.com/recur-ml/recur/internal/mat"
	"github.com/recur-ml/recur/internal/stats"
)

// Graph records differentiable matrix operations for reverse-mode replay.
type Graph struct {
	stack     []ops.Operation // Recorded backward records (in execution order)
	recording bool            // Whether operations are currently recorded
	sampler   stats.Sampler   // Noise source for Gauss
}

// Option configures a Graph.
type Option func(*Graph)

// WithSampler sets the random source used by Gauss.
func WithSampler(s stats.Sampler) Option {
	return func(g *Graph) {
		g.sampler = s
	}
}

// NewGraph creates a graph that is not recording.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		stack:   make([]ops.Operation, 0, 64), // Pre-allocate for common case
		sampler: stats.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RowPluck returns row ix of m as a column vector.
func (g *Graph) RowPluck(m *mat.Matrix, ix int) (*mat.Matrix, error) {
	out, op, err := ops.RowPluck(m, ix)
	if err != nil {
		return nil, err
	}
	g.record(op)
	return out, nil
}

// Tanh applies tanh element-wise.
func (g *Graph) Tanh(m *mat.Matrix) *mat.Matrix {
	out, op := ops.Tanh(m)
	g.record(op)
	return out
}

// Sig applies the logistic sigmoid element-wise.
func (g *Graph) Sig(m *mat.Matrix) *mat.Matrix {
	out, op := ops.Sigmoid(m)
	g.record(op)
	return out
}

// Relu applies max(0, x) element-wise.
func (g *Graph) Relu(m *mat.Matrix) *mat.Matrix {
	out, op := ops.ReLU(m)
	g.record(op)
	return out
}

// Add returns a + b.
func (g *Graph) Add(a, b *mat.Matrix) (*mat.Matrix, error) {
	out, op, err := ops.Add(a, b)
	if err != nil {
		return nil, err
	}
	g.record(op)
	return out, nil
}

// Eltmul returns the element-wise product of a and b.
func (g *Graph) Eltmul(a, b *mat.Matrix) (*mat.Matrix, error) {
	out, op, err := ops.Eltmul(a, b)
	if err != nil {
		return nil, err
	}
	g.record(op)
	return out, nil
}

// Mul returns the matrix product a @ b.
func (g *Graph) Mul(a, b *mat.Matrix) (*mat.Matrix, error) {
	out, op, err := ops.MatMul(a, b)
	if err != nil {
		return nil, err
	}
	g.record(op)
	return out, nil
}

// Dot returns the 1x1 inner product of two column vectors.
func (g *Graph) Dot(a, b *mat.Matrix) (*mat.Matrix, error) {
	out, op, err := ops.Dot(a, b)
	if err != nil {
		return nil, err
	}
	g.record(op)
	return out, nil
}

// Gauss perturbs m with element-wise Gaussian noise of standard deviation std.
// The result is treated as a constant: nothing is recorded, even while
// memorizing.
func (g *Graph) Gauss(m, std *mat.Matrix) (*mat.Matrix, error) {
	return ops.Gauss(m, std, g.sampler)
}
