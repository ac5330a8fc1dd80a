// Package ops implements the matrix operations of the autodiff engine.
//
// Every operation is a pure function that allocates a fresh result matrix.
// Differentiable operations also return a backward record implementing
// Operation. The record captures its operands and result by reference;
// calling Backward later reads whatever gradient has accumulated on the
// result by then and adds the chain-rule contribution into each operand's
// gradient buffer.
//
// Supported operations:
//   - RowPluck: copy one row of a matrix into a column vector
//   - Tanh, Sigmoid, ReLU: element-wise activations
//   - Add, Eltmul: element-wise sum and product
//   - MatMul: matrix product (d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad)
//   - Dot: inner product of two column vectors
//   - Gauss: Gaussian noise injection (not differentiable, no record)
package ops

import "github.com/recur-ml/recur/internal/mat"

// Operation is the backward record of one differentiable operation.
type Operation interface {
	// Backward accumulates the gradient of Output into the gradients of Inputs.
	Backward()

	// Inputs returns the operand matrices.
	Inputs() []*mat.Matrix

	// Output returns the result matrix produced by the forward pass.
	Output() *mat.Matrix
}
