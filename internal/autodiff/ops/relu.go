package ops

import "github.com/recur-ml/recur/internal/mat"

// ReLUOp represents a ReLU (Rectified Linear Unit) activation: output = max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0 (x == 0 routes no gradient)
type ReLUOp struct {
	unaryOp
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(input, output *mat.Matrix) *ReLUOp {
	return &ReLUOp{unaryOp{input: input, output: output}}
}

// ReLU applies max(0, x) element-wise.
func ReLU(m *mat.Matrix) (*mat.Matrix, *ReLUOp) {
	out := mat.New(m.Rows(), m.Cols())
	w := out.Data()
	for i, x := range m.Data() {
		if x > 0 {
			w[i] = x
		}
	}
	return out, NewReLUOp(m, out)
}

// Backward computes input gradient for ReLU.
func (op *ReLUOp) Backward() {
	dw := op.input.Grad()
	up := op.output.Grad()
	for i, x := range op.input.Data() {
		if x > 0 {
			dw[i] += up[i]
		}
	}
}
