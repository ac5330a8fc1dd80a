package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/recur-ml/recur/internal/mat"
)

// ReaderOptions configures Read.
type ReaderOptions struct {
	SkipChecksumValidation bool // Skip checksum validation (faster but less safe)
}

// Read decodes a .recur stream with checksum validation.
func Read(r io.Reader) (*File, error) {
	return ReadWithOptions(r, ReaderOptions{})
}

// ReadWithOptions decodes a .recur stream.
func ReadWithOptions(r io.Reader, opts ReaderOptions) (*File, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, fmt.Errorf("failed to read fixed header: %w", err)
	}
	if string(fixed[0:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixed[4:8]); version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	dataSize := binary.LittleEndian.Uint64(fixed[24:32])
	var stored [32]byte
	copy(stored[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	pad := padding(int64(FixedHeaderSize) + int64(headerSize))
	if _, err := io.CopyN(io.Discard, r, pad); err != nil {
		return nil, fmt.Errorf("failed to skip padding: %w", err)
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(dataSize))) //nolint:gosec // G115: bounded by the reader
	if err != nil {
		return nil, fmt.Errorf("failed to read matrix data: %w", err)
	}
	if uint64(len(data)) != dataSize {
		return nil, fmt.Errorf("%w: data section truncated (%d of %d bytes)", ErrOutOfBounds, len(data), dataSize)
	}

	if !opts.SkipChecksumValidation {
		if err := ValidateChecksum(ComputeChecksum(data), stored); err != nil {
			return nil, err
		}
	}

	if err := ValidateHeader(&header, int64(len(data))); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	matrices := make(StateDict, len(header.Matrices))
	for _, meta := range header.Matrices {
		values := make([]float64, meta.Rows*meta.Cols)
		raw := data[meta.Offset : meta.Offset+meta.Size]
		for i := range values {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*bytesPerValue:]))
		}
		m, err := mat.FromSlice(meta.Rows, meta.Cols, values)
		if err != nil {
			return nil, fmt.Errorf("matrix %q: %w", meta.Name, err)
		}
		matrices[meta.Name] = m
	}

	return &File{Header: header, Matrices: matrices}, nil
}

// ReadFile decodes the .recur file at path.
func ReadFile(path string) (*File, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read(file)
}

// Matrix returns the named matrix or ErrMissingMatrix.
func (sd StateDict) Matrix(name string) (*mat.Matrix, error) {
	m, ok := sd[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingMatrix, name)
	}
	return m, nil
}
