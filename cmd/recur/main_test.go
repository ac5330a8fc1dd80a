package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVector(t *testing.T) {
	v, err := parseVector("0.5, 1,-2")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1, -2}, v)

	_, err = parseVector("1,x")
	assert.Error(t, err)
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte("  hello \n\nworld\n   \n"), 0o600))

	lines, err := readLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "world"}, lines)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n \n"), 0o600))
	_, err = readLines(empty)
	assert.Error(t, err)
}

func TestTrainCommand(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "net.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`
architecture:
  inputSize: 2
  hiddenUnits: [3]
  outputSize: 1
training:
  alpha: 0.1
  iterations: 200
seed: 4
samples:
  - {input: [0, 1], output: [1]}
  - {input: [1, 0], output: [0]}
`), 0o600))
	model := filepath.Join(dir, "net.recur")

	require.NoError(t, runTrain([]string{"-config", config, "-save", model, "-progress", "50"}))
	require.FileExists(t, model)
	require.NoError(t, runPredict([]string{"-model", model, "0,1", "1,0"}))

	assert.Error(t, runTrain(nil))
	assert.Error(t, runPredict([]string{"-model", model, "0"}))
}

func TestTextgenCommand(t *testing.T) {
	corpus := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(corpus, []byte("abc\nbca\n"), 0o600))
	base := []string{"-corpus", corpus, "-hidden", "4", "-epochs", "1", "-samples", "1"}

	require.NoError(t, runTextgen(append(base, "-n", "5")))
	assert.Error(t, runTextgen(append(base, "-n", "-1")))
	assert.Error(t, runTextgen([]string{"-n", "5"}))
}
