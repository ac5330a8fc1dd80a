package ops

import (
	"fmt"

	"github.com/recur-ml/recur/internal/mat"
)

// RowPluckOp represents extracting row ix of a matrix as a column vector.
//
// Backward pass:
//   - d(out[j])/d(m[ix, j]) = 1, every other element of m receives nothing
type RowPluckOp struct {
	input  *mat.Matrix
	row    int
	output *mat.Matrix
}

// NewRowPluckOp creates a new RowPluckOp.
func NewRowPluckOp(input *mat.Matrix, row int, output *mat.Matrix) *RowPluckOp {
	return &RowPluckOp{
		input:  input,
		row:    row,
		output: output,
	}
}

// RowPluck copies row ix of m into a new m.Cols() x 1 matrix.
func RowPluck(m *mat.Matrix, ix int) (*mat.Matrix, *RowPluckOp, error) {
	if ix < 0 || ix >= m.Rows() {
		return nil, nil, fmt.Errorf("rowPluck: %w: row %d for %s", mat.ErrIndexOutOfRange, ix, m.Shape())
	}

	d := m.Cols()
	out := mat.New(d, 1)
	copy(out.Data(), m.Data()[d*ix:d*ix+d])

	return out, NewRowPluckOp(m, ix, out), nil
}

// Backward routes the output gradient into row ix of the input.
func (op *RowPluckOp) Backward() {
	d := op.input.Cols()
	dw := op.input.Grad()
	up := op.output.Grad()
	for j := 0; j < d; j++ {
		dw[d*op.row+j] += up[j]
	}
}

// Inputs returns the input matrix.
func (op *RowPluckOp) Inputs() []*mat.Matrix {
	return []*mat.Matrix{op.input}
}

// Output returns the plucked column vector.
func (op *RowPluckOp) Output() *mat.Matrix {
	return op.output
}
