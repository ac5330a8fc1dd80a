package nn

import (
	"github.com/recur-ml/recur/internal/mat"
)

// Parameter is a named trainable matrix owned by a network.
//
// The matrix carries its own gradient buffer; the graph accumulates into it
// during Backward and Update consumes and clears it.
//
// Example:
//
//	for _, p := range net.Parameters() {
//	    fmt.Println(p.Name(), p.Matrix().Shape())
//	}
type Parameter struct {
	name   string      // Parameter name (e.g., "hidden.0.Wx")
	matrix *mat.Matrix // Values and accumulated gradient
}

// NewParameter wraps m under name.
func NewParameter(name string, m *mat.Matrix) *Parameter {
	return &Parameter{
		name:   name,
		matrix: m,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Matrix returns the parameter matrix.
func (p *Parameter) Matrix() *mat.Matrix {
	return p.matrix
}

// Grad returns the live gradient buffer.
func (p *Parameter) Grad() []float64 {
	return p.matrix.Grad()
}

// ZeroGrad clears the accumulated gradient.
func (p *Parameter) ZeroGrad() {
	p.matrix.ZeroGrad()
}

// Update applies w -= alpha*dw and clears the gradient.
func (p *Parameter) Update(alpha float64) {
	p.matrix.Update(alpha)
}
