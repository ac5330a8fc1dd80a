package ops

import (
	"fmt"

	"github.com/recur-ml/recur/internal/mat"
)

// MatMulOp represents a matrix multiplication operation: output = a @ b.
//
// Backward pass:
//   - d(A@B)/dA = outputGrad @ B^T
//   - d(A@B)/dB = A^T @ outputGrad
//
// Where @ denotes matrix multiplication and ^T denotes transpose.
type MatMulOp struct {
	binaryOp
}

// NewMatMulOp creates a new MatMulOp.
func NewMatMulOp(a, b, output *mat.Matrix) *MatMulOp {
	return &MatMulOp{binaryOp{inputs: []*mat.Matrix{a, b}, output: output}}
}

// MatMul returns the a.Rows() x b.Cols() product of a and b.
// Requires a.Cols() == b.Rows().
func MatMul(a, b *mat.Matrix) (*mat.Matrix, *MatMulOp, error) {
	if a.Cols() != b.Rows() {
		return nil, nil, fmt.Errorf("mul: %w: %s @ %s", mat.ErrShapeMismatch, a.Shape(), b.Shape())
	}

	n, k, d := a.Rows(), a.Cols(), b.Cols()
	out := mat.New(n, d)
	aw, bw, w := a.Data(), b.Data(), out.Data()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			sum := 0.0
			for l := 0; l < k; l++ {
				sum += aw[i*k+l] * bw[l*d+j]
			}
			w[i*d+j] = sum
		}
	}
	return out, NewMatMulOp(a, b, out), nil
}

// Backward computes input gradients for matrix multiplication.
//
// Both transposed products are accumulated in a single pass over the output
// gradient instead of materializing B^T and A^T.
func (op *MatMulOp) Backward() {
	a, b := op.inputs[0], op.inputs[1]
	n, k, d := a.Rows(), a.Cols(), b.Cols()
	aw, bw := a.Data(), b.Data()
	da, db := a.Grad(), b.Grad()
	up := op.output.Grad()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			g := up[i*d+j]
			if g == 0 {
				continue
			}
			for l := 0; l < k; l++ {
				da[i*k+l] += bw[l*d+j] * g
				db[l*d+j] += aw[i*k+l] * g
			}
		}
	}
}
