package ops

import (
	"math"

	"github.com/recur-ml/recur/internal/mat"
)

// TanhOp represents the hyperbolic tangent activation: tanh(x) = (exp(x) - exp(-x)) / (exp(x) + exp(-x)).
type TanhOp struct {
	unaryOp
}

// NewTanhOp creates a new tanh operation.
func NewTanhOp(input, output *mat.Matrix) *TanhOp {
	return &TanhOp{unaryOp{input: input, output: output}}
}

// Tanh applies tanh element-wise. math.Tanh saturates to ±1 for large inputs.
func Tanh(m *mat.Matrix) (*mat.Matrix, *TanhOp) {
	out := mat.New(m.Rows(), m.Cols())
	w := out.Data()
	for i, x := range m.Data() {
		w[i] = math.Tanh(x)
	}
	return out, NewTanhOp(m, out)
}

// Backward computes the gradient for tanh.
//
// For y = tanh(x): dy/dx = 1 - y², using the stored output.
func (op *TanhOp) Backward() {
	dw := op.input.Grad()
	up := op.output.Grad()
	for i, y := range op.output.Data() {
		dw[i] += (1 - y*y) * up[i]
	}
}
