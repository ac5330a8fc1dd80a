package ops

import "github.com/recur-ml/recur/internal/mat"

// EltmulOp represents an element-wise multiplication operation: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a += outputGrad * b
//   - d(a*b)/db = a, so grad_b += outputGrad * a
type EltmulOp struct {
	binaryOp
}

// NewEltmulOp creates a new EltmulOp.
func NewEltmulOp(a, b, output *mat.Matrix) *EltmulOp {
	return &EltmulOp{binaryOp{inputs: []*mat.Matrix{a, b}, output: output}}
}

// Eltmul returns the element-wise product of a and b. Both operands must have
// the same shape.
func Eltmul(a, b *mat.Matrix) (*mat.Matrix, *EltmulOp, error) {
	if err := requireSameShape("eltmul", a, b); err != nil {
		return nil, nil, err
	}

	out := mat.New(a.Rows(), a.Cols())
	w, aw, bw := out.Data(), a.Data(), b.Data()
	for i := range w {
		w[i] = aw[i] * bw[i]
	}
	return out, NewEltmulOp(a, b, out), nil
}

// Backward computes input gradients for element-wise multiplication.
func (op *EltmulOp) Backward() {
	a, b := op.inputs[0], op.inputs[1]
	aw, bw := a.Data(), b.Data()
	da, db := a.Grad(), b.Grad()
	for i, g := range op.output.Grad() {
		da[i] += bw[i] * g
		db[i] += aw[i] * g
	}
}
