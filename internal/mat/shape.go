package mat

import "fmt"

// Shape represents the dimensions of a matrix as (rows, cols).
type Shape struct {
	Rows int
	Cols int
}

// NumElements returns rows*cols.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Validate checks that no dimension is negative. Zero-width shapes are valid.
func (s Shape) Validate() error {
	if s.Rows < 0 || s.Cols < 0 {
		return fmt.Errorf("%w: %s (dimensions must be >= 0)", ErrInvalidShape, s)
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return s.Rows == other.Rows && s.Cols == other.Cols
}

// IsColumnVector reports whether the shape has exactly one column.
func (s Shape) IsColumnVector() bool {
	return s.Cols == 1
}

// String implements fmt.Stringer.
func (s Shape) String() string {
	return fmt.Sprintf("[%d x %d]", s.Rows, s.Cols)
}
