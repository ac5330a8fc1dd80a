package ops

import (
	"fmt"

	"github.com/recur-ml/recur/internal/mat"
)

// DotOp represents the inner product of two column vectors: output = sum(a * b).
//
// Backward pass (output is 1x1 with gradient g):
//   - grad_a += b * g
//   - grad_b += a * g
type DotOp struct {
	binaryOp
}

// NewDotOp creates a new DotOp.
func NewDotOp(a, b, output *mat.Matrix) *DotOp {
	return &DotOp{binaryOp{inputs: []*mat.Matrix{a, b}, output: output}}
}

// Dot returns the 1x1 inner product of two equally shaped column vectors.
func Dot(a, b *mat.Matrix) (*mat.Matrix, *DotOp, error) {
	if err := requireSameShape("dot", a, b); err != nil {
		return nil, nil, err
	}
	if !a.Shape().IsColumnVector() {
		return nil, nil, fmt.Errorf("dot: %w: expected column vectors, got %s", mat.ErrShapeMismatch, a.Shape())
	}

	out := mat.New(1, 1)
	sum := 0.0
	bw := b.Data()
	for i, v := range a.Data() {
		sum += v * bw[i]
	}
	out.Data()[0] = sum
	return out, NewDotOp(a, b, out), nil
}

// Backward computes input gradients for the inner product.
func (op *DotOp) Backward() {
	a, b := op.inputs[0], op.inputs[1]
	g := op.output.Grad()[0]
	aw, bw := a.Data(), b.Data()
	da, db := a.Grad(), b.Grad()
	for i := range aw {
		da[i] += bw[i] * g
		db[i] += aw[i] * g
	}
}
