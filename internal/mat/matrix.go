// Package mat implements the two-dimensional matrix used by the autodiff engine.
//
// A Matrix holds a row-major value buffer and a gradient buffer of identical
// shape. Operations in the autodiff packages never write into an operand's
// values; they only accumulate into its gradient buffer. The only mutation of
// values is Update, which applies a gradient descent step and clears gradients.
package mat

import (
	"encoding/json"
	"fmt"
)

// Matrix is a 2-D float64 container with an accompanying gradient buffer.
type Matrix struct {
	rows int
	cols int
	w    []float64 // values, row-major
	dw   []float64 // gradients, same layout as w
}

// New creates a zero-filled rows x cols matrix with zeroed gradients.
//
// Panics if either dimension is negative. A zero dimension yields an empty
// matrix with empty buffers.
func New(rows, cols int) *Matrix {
	s := Shape{Rows: rows, Cols: cols}
	if err := s.Validate(); err != nil {
		panic(err)
	}
	n := s.NumElements()
	return &Matrix{
		rows: rows,
		cols: cols,
		w:    make([]float64, n),
		dw:   make([]float64, n),
	}
}

// FromSlice creates a matrix from row-major data. The data is copied.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	s := Shape{Rows: rows, Cols: cols}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if len(data) != s.NumElements() {
		return nil, fmt.Errorf("%w: %d values for shape %s", ErrShapeMismatch, len(data), s)
	}
	m := New(rows, cols)
	copy(m.w, data)
	return m, nil
}

// ColumnVector creates a len(data) x 1 matrix from data.
func ColumnVector(data []float64) *Matrix {
	m := New(len(data), 1)
	copy(m.w, data)
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Len returns rows*cols.
func (m *Matrix) Len() int { return len(m.w) }

// Shape returns the matrix shape.
func (m *Matrix) Shape() Shape {
	return Shape{Rows: m.rows, Cols: m.cols}
}

// Data returns the live value buffer.
func (m *Matrix) Data() []float64 { return m.w }

// Grad returns the live gradient buffer.
func (m *Matrix) Grad() []float64 { return m.dw }

// Values returns a copy of the value buffer.
func (m *Matrix) Values() []float64 {
	out := make([]float64, len(m.w))
	copy(out, m.w)
	return out
}

// Get returns the value at flat index i.
func (m *Matrix) Get(i int) (float64, error) {
	if err := m.checkIndex(i); err != nil {
		return 0, err
	}
	return m.w[i], nil
}

// Set stores v at flat index i.
func (m *Matrix) Set(i int, v float64) error {
	if err := m.checkIndex(i); err != nil {
		return err
	}
	m.w[i] = v
	return nil
}

// At returns the value at (row, col).
func (m *Matrix) At(row, col int) (float64, error) {
	i, err := m.index(row, col)
	if err != nil {
		return 0, err
	}
	return m.w[i], nil
}

// SetAt stores v at (row, col).
func (m *Matrix) SetAt(row, col int, v float64) error {
	i, err := m.index(row, col)
	if err != nil {
		return err
	}
	m.w[i] = v
	return nil
}

// GradAt returns the gradient at flat index i.
func (m *Matrix) GradAt(i int) (float64, error) {
	if err := m.checkIndex(i); err != nil {
		return 0, err
	}
	return m.dw[i], nil
}

// AddGrad accumulates v into the gradient at flat index i.
func (m *Matrix) AddGrad(i int, v float64) error {
	if err := m.checkIndex(i); err != nil {
		return err
	}
	m.dw[i] += v
	return nil
}

// ZeroGrad clears the gradient buffer.
func (m *Matrix) ZeroGrad() {
	clear(m.dw)
}

// Update applies one gradient descent step, w -= alpha*dw, and clears the
// gradients.
func (m *Matrix) Update(alpha float64) {
	for i := range m.w {
		m.w[i] -= alpha * m.dw[i]
		m.dw[i] = 0
	}
}

// Clone returns an independent copy with the same values and gradients.
func (m *Matrix) Clone() *Matrix {
	c := New(m.rows, m.cols)
	copy(c.w, m.w)
	copy(c.dw, m.dw)
	return c
}

// Fill sets every value to gen(i).
func (m *Matrix) Fill(gen func(i int) float64) {
	for i := range m.w {
		m.w[i] = gen(i)
	}
}

// FillConst sets every value to v.
func (m *Matrix) FillConst(v float64) {
	for i := range m.w {
		m.w[i] = v
	}
}

// Equal reports whether both matrices have the same shape and values.
// Gradients are ignored.
func (m *Matrix) Equal(other *Matrix) bool {
	if other == nil || !m.Shape().Equal(other.Shape()) {
		return false
	}
	for i, v := range m.w {
		if other.w[i] != v {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix%s%v", m.Shape(), m.w)
}

func (m *Matrix) checkIndex(i int) error {
	if i < 0 || i >= len(m.w) {
		return fmt.Errorf("%w: index %d for %s", ErrIndexOutOfRange, i, m.Shape())
	}
	return nil
}

func (m *Matrix) index(row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, fmt.Errorf("%w: (%d, %d) for %s", ErrIndexOutOfRange, row, col, m.Shape())
	}
	return row*m.cols + col, nil
}

type matrixJSON struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	W    []float64 `json:"w"`
}

// MarshalJSON encodes shape and values. Gradients are transient and not encoded.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(matrixJSON{Rows: m.rows, Cols: m.cols, W: m.w})
}

// UnmarshalJSON decodes shape and values and resets gradients.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var raw matrixJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := FromSlice(raw.Rows, raw.Cols, raw.W)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}
