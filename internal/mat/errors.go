package mat

import "errors"

// Common errors.
var (
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidShape    = errors.New("invalid shape")
)
