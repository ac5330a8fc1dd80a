package ops

import (
	"fmt"

	"github.com/recur-ml/recur/internal/mat"
)

// requireSameShape fails with mat.ErrShapeMismatch unless a and b have equal shapes.
func requireSameShape(name string, a, b *mat.Matrix) error {
	if !a.Shape().Equal(b.Shape()) {
		return fmt.Errorf("%s: %w: %s vs %s", name, mat.ErrShapeMismatch, a.Shape(), b.Shape())
	}
	return nil
}

// unaryOp holds the operand and result shared by all element-wise activations.
type unaryOp struct {
	input  *mat.Matrix
	output *mat.Matrix
}

// Inputs returns the input matrix.
func (op *unaryOp) Inputs() []*mat.Matrix {
	return []*mat.Matrix{op.input}
}

// Output returns the output matrix.
func (op *unaryOp) Output() *mat.Matrix {
	return op.output
}

// binaryOp holds the operands and result shared by two-operand operations.
type binaryOp struct {
	inputs []*mat.Matrix // [a, b]
	output *mat.Matrix
}

// Inputs returns the input matrices [a, b].
func (op *binaryOp) Inputs() []*mat.Matrix {
	return op.inputs
}

// Output returns the output matrix.
func (op *binaryOp) Output() *mat.Matrix {
	return op.output
}
