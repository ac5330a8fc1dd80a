package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrOffsetOverlap      = errors.New("matrix offsets overlap")
	ErrOutOfBounds        = errors.New("matrix extends beyond data section")
	ErrNegativeOffset     = errors.New("negative offset or size")
	ErrTooManyMatrices    = errors.New("too many matrices in file")
	ErrInvalidMatrixName  = errors.New("invalid matrix name")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrMissingMatrix      = errors.New("matrix missing from state dict")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Kind    error  // One of the sentinel errors above
	Matrix  string // Primary matrix name involved
	Matrix2 string // Secondary matrix name (for overlap errors)
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Matrix2 != "" {
		return fmt.Sprintf("%v: matrices %q and %q: %s", e.Kind, e.Matrix, e.Matrix2, e.Details)
	}
	if e.Matrix != "" {
		return fmt.Sprintf("%v: matrix %q: %s", e.Kind, e.Matrix, e.Details)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Details)
}

// Unwrap lets errors.Is match the sentinel kind.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}
