package serialization

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recur-ml/recur/internal/mat"
)

func testDict(t *testing.T) StateDict {
	t.Helper()
	w, err := mat.FromSlice(2, 3, []float64{1, -2, 3.25, 0, 1e-9, -7})
	require.NoError(t, err)
	b, err := mat.FromSlice(2, 1, []float64{0.5, -0.5})
	require.NoError(t, err)
	return StateDict{"hidden.0.weight": w, "hidden.0.bias": b}
}

func encode(t *testing.T, dict StateDict, h Header) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, dict, h))
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	dict := testDict(t)
	dict["hidden.0.weight"].Grad()[0] = 42 // gradients are not persisted

	data := encode(t, dict, Header{
		ModelType: "dnn",
		Metadata:  map[string]string{"note": "test"},
		Config:    "architecture:\n  inputSize: 3\n",
		Training:  &TrainingMeta{Iterations: 10, Loss: 0.25, Alpha: 0.01},
	})

	f, err := Read(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, FormatVersion, f.Header.FormatVersion)
	assert.Equal(t, "dnn", f.Header.ModelType)
	assert.Equal(t, "test", f.Header.Metadata["note"])
	assert.Equal(t, "architecture:\n  inputSize: 3\n", f.Header.Config)
	require.NotNil(t, f.Header.Training)
	assert.Equal(t, 10, f.Header.Training.Iterations)

	require.Len(t, f.Matrices, 2)
	for name, want := range dict {
		got, err := f.Matrices.Matrix(name)
		require.NoError(t, err)
		assert.True(t, got.Equal(want), name)
		assert.Equal(t, make([]float64, got.Len()), got.Grad())
	}

	flags := binary.LittleEndian.Uint32(data[8:12])
	assert.Equal(t, FlagHasMetadata|FlagHasTraining|FlagHasConfigYAML, flags)
}

func TestWrite_Deterministic(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := encode(t, testDict(t), Header{CreatedAt: created})
	b := encode(t, testDict(t), Header{CreatedAt: created})
	assert.Equal(t, a, b)
}

func TestWrite_DataAligned(t *testing.T) {
	data := encode(t, testDict(t), Header{})
	headerSize := binary.LittleEndian.Uint64(data[16:24])
	dataSize := binary.LittleEndian.Uint64(data[24:32])

	dataStart := uint64(len(data)) - dataSize
	assert.Zero(t, dataStart%HeaderAlignment)
	assert.GreaterOrEqual(t, dataStart, uint64(FixedHeaderSize)+headerSize)
	assert.Equal(t, uint64(8*8), dataSize)
}

func TestWrite_EmptyAndZeroWidth(t *testing.T) {
	data := encode(t, StateDict{"empty": mat.New(0, 3)}, Header{})

	f, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	m, err := f.Matrices.Matrix("empty")
	require.NoError(t, err)
	assert.Equal(t, mat.Shape{Rows: 0, Cols: 3}, m.Shape())
}

func TestWrite_RejectsInvalidName(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, StateDict{"": mat.New(1, 1)}, Header{})
	assert.ErrorIs(t, err, ErrInvalidMatrixName)
}

func TestRead_Corruption(t *testing.T) {
	valid := encode(t, testDict(t), Header{})

	tests := []struct {
		name   string
		mutate func(b []byte) []byte
		want   error
	}{
		{"magic", func(b []byte) []byte { b[0] = 'X'; return b }, ErrInvalidMagic},
		{"version", func(b []byte) []byte { binary.LittleEndian.PutUint32(b[4:8], 9); return b }, ErrUnsupportedVersion},
		{"data byte", func(b []byte) []byte { b[len(b)-1] ^= 0xFF; return b }, ErrChecksumMismatch},
		{"checksum byte", func(b []byte) []byte { b[ChecksumOffset] ^= 0xFF; return b }, ErrChecksumMismatch},
		{"truncated", func(b []byte) []byte { return b[:len(b)-8] }, ErrOutOfBounds},
		{"header size", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[16:24], MaxHeaderSize+1)
			return b
		}, ErrHeaderTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corrupted := tt.mutate(append([]byte(nil), valid...))
			_, err := Read(bytes.NewReader(corrupted))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRead_SkipChecksum(t *testing.T) {
	data := encode(t, testDict(t), Header{})
	data[ChecksumOffset] ^= 0xFF

	f, err := ReadWithOptions(bytes.NewReader(data), ReaderOptions{SkipChecksumValidation: true})
	require.NoError(t, err)
	assert.Len(t, f.Matrices, 2)
}

func TestStateDict_MissingMatrix(t *testing.T) {
	_, err := testDict(t).Matrix("decoder.weight")
	assert.ErrorIs(t, err, ErrMissingMatrix)
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.recur")
	require.NoError(t, WriteFile(path, testDict(t), Header{ModelType: "bnn"}))

	f, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bnn", f.Header.ModelType)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.recur"))
	assert.Error(t, err)
}
