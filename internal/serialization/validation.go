package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits.
const (
	MaxHeaderSize    = 16 * 1024 * 1024 // 16MB - maximum header size
	MaxMatrixCount   = 100_000          // Maximum number of matrices in a file
	MaxMatrixNameLen = 1024             // Maximum matrix name length
)

// ValidateMatrixOffsets checks for overlapping regions, out-of-bounds access
// and sizes that disagree with the declared shape.
func ValidateMatrixOffsets(matrices []MatrixMeta, dataSize int64) error {
	if len(matrices) > MaxMatrixCount {
		return &ValidationError{
			Kind:    ErrTooManyMatrices,
			Details: fmt.Sprintf("got %d, max %d", len(matrices), MaxMatrixCount),
		}
	}

	sorted := make([]MatrixMeta, len(matrices))
	copy(sorted, matrices)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, m := range sorted {
		if m.Offset < 0 || m.Size < 0 || m.Rows < 0 || m.Cols < 0 {
			return &ValidationError{
				Kind:    ErrNegativeOffset,
				Matrix:  m.Name,
				Details: fmt.Sprintf("offset=%d, size=%d, shape=[%d x %d]", m.Offset, m.Size, m.Rows, m.Cols),
			}
		}

		if m.Rows > 0 && int64(m.Cols) > dataSize/bytesPerValue/int64(m.Rows) {
			return &ValidationError{
				Kind:    ErrOutOfBounds,
				Matrix:  m.Name,
				Details: fmt.Sprintf("shape [%d x %d] exceeds data_size %d", m.Rows, m.Cols, dataSize),
			}
		}

		if want := int64(m.Rows) * int64(m.Cols) * bytesPerValue; m.Size != want {
			return &ValidationError{
				Kind:    ErrOutOfBounds,
				Matrix:  m.Name,
				Details: fmt.Sprintf("size %d does not match shape [%d x %d]", m.Size, m.Rows, m.Cols),
			}
		}

		if m.Offset > dataSize-m.Size {
			return &ValidationError{
				Kind:    ErrOutOfBounds,
				Matrix:  m.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", m.Offset, m.Size, dataSize),
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if m.Offset+m.Size > next.Offset {
				return &ValidationError{
					Kind:    ErrOffsetOverlap,
					Matrix:  m.Name,
					Matrix2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						m.Offset, m.Offset+m.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}

	return nil
}

// ValidateMatrixName rejects empty, oversized or control-character names.
func ValidateMatrixName(name string) error {
	if name == "" {
		return &ValidationError{Kind: ErrInvalidMatrixName, Details: "empty name"}
	}
	if len(name) > MaxMatrixNameLen {
		return &ValidationError{
			Kind:    ErrInvalidMatrixName,
			Matrix:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxMatrixNameLen),
		}
	}
	if strings.ContainsAny(name, "\x00\n\r") {
		return &ValidationError{
			Kind:    ErrInvalidMatrixName,
			Matrix:  name,
			Details: "contains control character",
		}
	}
	return nil
}

// ValidateHeader checks names, duplicates and data layout.
func ValidateHeader(h *Header, dataSize int64) error {
	if len(h.Matrices) > MaxMatrixCount {
		return &ValidationError{
			Kind:    ErrTooManyMatrices,
			Details: fmt.Sprintf("got %d, max %d", len(h.Matrices), MaxMatrixCount),
		}
	}

	seen := make(map[string]struct{}, len(h.Matrices))
	for _, m := range h.Matrices {
		if err := ValidateMatrixName(m.Name); err != nil {
			return err
		}
		if _, dup := seen[m.Name]; dup {
			return &ValidationError{Kind: ErrInvalidMatrixName, Matrix: m.Name, Details: "duplicate name"}
		}
		seen[m.Name] = struct{}{}
	}

	return ValidateMatrixOffsets(h.Matrices, dataSize)
}
