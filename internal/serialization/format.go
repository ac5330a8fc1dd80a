package serialization

import (
	"time"

	"github.com/recur-ml/recur/internal/mat"
)

// Format constants.
const (
	MagicBytes      = "RECR"
	FormatVersion   = 1    // v1: fixed header with SHA-256 checksum
	HeaderAlignment = 64   // Align matrix data to 64 bytes
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
	bytesPerValue   = 8    // float64
)

// Flags for the .recur format.
const (
	FlagHasMetadata   uint32 = 1 << 0 // bit 0: custom metadata included
	FlagHasTraining   uint32 = 1 << 1 // bit 1: training state included
	FlagHasConfigYAML uint32 = 1 << 2 // bit 2: architecture config included
)

// StateDict maps parameter names to matrices.
type StateDict map[string]*mat.Matrix

// Header represents the JSON header in a .recur file.
type Header struct {
	FormatVersion int               `json:"format_version"`     // Version of the .recur format
	RecurVersion  string            `json:"recur_version"`      // Version of recur that created this file
	ModelType     string            `json:"model_type"`         // Architecture name (e.g., "dnn", "lstm")
	CreatedAt     time.Time         `json:"created_at"`         // When the file was created
	Matrices      []MatrixMeta      `json:"matrices"`           // Matrix metadata
	Metadata      map[string]string `json:"metadata"`           // Custom metadata
	Config        string            `json:"config,omitempty"`   // Architecture config as YAML (optional)
	Training      *TrainingMeta     `json:"training,omitempty"` // Training state (optional)
}

// TrainingMeta contains training progress at save time.
type TrainingMeta struct {
	Iterations int     `json:"iterations"` // SGD steps taken
	Loss       float64 `json:"loss"`       // Loss of the last step
	Alpha      float64 `json:"alpha"`      // Learning rate in use
}

// MatrixMeta describes a matrix in the .recur file.
type MatrixMeta struct {
	Name   string `json:"name"`   // Parameter name (e.g., "hidden.0.weight")
	Rows   int    `json:"rows"`   // Row count
	Cols   int    `json:"cols"`   // Column count
	Offset int64  `json:"offset"` // Offset in the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// File is a decoded .recur file.
type File struct {
	Header   Header
	Matrices StateDict
}

// flagsFor derives the flag word from the header contents.
func flagsFor(h *Header) uint32 {
	var flags uint32
	if len(h.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	if h.Training != nil {
		flags |= FlagHasTraining
	}
	if h.Config != "" {
		flags |= FlagHasConfigYAML
	}
	return flags
}

// padding returns the bytes needed to align pos to HeaderAlignment.
func padding(pos int64) int64 {
	return (HeaderAlignment - (pos % HeaderAlignment)) % HeaderAlignment
}
