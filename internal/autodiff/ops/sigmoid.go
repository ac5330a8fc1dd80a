package ops

import (
	"math"

	"github.com/recur-ml/recur/internal/mat"
)

// SigmoidOp represents the sigmoid activation operation: σ(x) = 1 / (1 + exp(-x)).
type SigmoidOp struct {
	unaryOp
}

// NewSigmoidOp creates a new sigmoid operation.
func NewSigmoidOp(input, output *mat.Matrix) *SigmoidOp {
	return &SigmoidOp{unaryOp{input: input, output: output}}
}

// Sigmoid applies the logistic function element-wise.
func Sigmoid(m *mat.Matrix) (*mat.Matrix, *SigmoidOp) {
	out := mat.New(m.Rows(), m.Cols())
	w := out.Data()
	for i, x := range m.Data() {
		w[i] = sigmoid(x)
	}
	return out, NewSigmoidOp(m, out)
}

// sigmoid only ever exponentiates a non-positive number, so it cannot overflow.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

// Backward computes the gradient for sigmoid.
//
// dσ/dx = σ(x) * (1 - σ(x)), using the stored output.
func (op *SigmoidOp) Backward() {
	dw := op.input.Grad()
	up := op.output.Grad()
	for i, y := range op.output.Data() {
		dw[i] += y * (1 - y) * up[i]
	}
}
