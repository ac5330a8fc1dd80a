package ops

import "github.com/recur-ml/recur/internal/mat"

// AddOp represents an element-wise addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a += outputGrad
//   - d(a+b)/db = 1, so grad_b += outputGrad
type AddOp struct {
	binaryOp
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, output *mat.Matrix) *AddOp {
	return &AddOp{binaryOp{inputs: []*mat.Matrix{a, b}, output: output}}
}

// Add returns a + b. Both operands must have the same shape.
func Add(a, b *mat.Matrix) (*mat.Matrix, *AddOp, error) {
	if err := requireSameShape("add", a, b); err != nil {
		return nil, nil, err
	}

	out := mat.New(a.Rows(), a.Cols())
	w, aw, bw := out.Data(), a.Data(), b.Data()
	for i := range w {
		w[i] = aw[i] + bw[i]
	}
	return out, NewAddOp(a, b, out), nil
}

// Backward computes input gradients for addition.
// The gradient flows unchanged into both inputs.
func (op *AddOp) Backward() {
	a, b := op.inputs[0], op.inputs[1]
	da, db := a.Grad(), b.Grad()
	for i, g := range op.output.Grad() {
		da[i] += g
		db[i] += g
	}
}
