package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"
)

const recurVersion = "0.1.0" // Current recur version

// Write encodes dict into w in .recur format.
//
// Matrices are written in name order so identical state dicts produce
// identical data sections. Header fields describing the layout are filled in
// by Write; ModelType, Metadata, Config and Training are taken from header.
func Write(w io.Writer, dict StateDict, header Header) error {
	names := make([]string, 0, len(dict))
	for name := range dict {
		if err := ValidateMatrixName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header.FormatVersion = FormatVersion
	header.RecurVersion = recurVersion
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	// Calculate offsets and encode matrix data
	header.Matrices = make([]MatrixMeta, 0, len(names))
	var data []byte
	for _, name := range names {
		m := dict[name]
		size := int64(m.Len()) * bytesPerValue
		header.Matrices = append(header.Matrices, MatrixMeta{
			Name:   name,
			Rows:   m.Rows(),
			Cols:   m.Cols(),
			Offset: int64(len(data)),
			Size:   size,
		})
		for _, v := range m.Data() {
			data = binary.LittleEndian.AppendUint64(data, math.Float64bits(v))
		}
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	// Fixed header
	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)
	binary.LittleEndian.PutUint32(fixed[8:12], flagsFor(&header))
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(data)))
	checksum := ComputeChecksum(data)
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := bw.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if pad := padding(int64(FixedHeaderSize + len(headerJSON))); pad > 0 {
		if _, err := bw.Write(make([]byte, pad)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}
	if _, err := bw.Write(data); err != nil {
		return fmt.Errorf("failed to write matrix data: %w", err)
	}
	return bw.Flush()
}

// WriteFile writes dict to path in .recur format.
func WriteFile(path string, dict StateDict, header Header) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return Write(file, dict, header)
}
