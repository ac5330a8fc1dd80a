// Package dataset holds input/expected-output pairs used to train networks.
package dataset

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/recur-ml/recur/internal/stats"
)

// Errors returned by TrainingSet.
var (
	ErrEmpty         = errors.New("training set is empty")
	ErrSampleSize    = errors.New("sample size does not match network")
	ErrSampleMissing = errors.New("sample index out of range")
)

// Sample is one input vector with its expected output vector.
type Sample struct {
	Input  []float64 `yaml:"input"`
	Output []float64 `yaml:"output"`
}

// TrainingSet is an ordered collection of samples.
//
// Accessors return copies so callers may perturb inputs in place.
type TrainingSet struct {
	samples []Sample
}

// New creates a training set holding copies of samples.
func New(samples ...Sample) *TrainingSet {
	ts := &TrainingSet{}
	ts.SetSamples(samples)
	return ts
}

// SetSamples replaces the contents of the set.
func (ts *TrainingSet) SetSamples(samples []Sample) {
	ts.samples = make([]Sample, 0, len(samples))
	for _, s := range samples {
		ts.Add(s)
	}
}

// Add appends a copy of s.
func (ts *TrainingSet) Add(s Sample) {
	ts.samples = append(ts.samples, Sample{
		Input:  append([]float64(nil), s.Input...),
		Output: append([]float64(nil), s.Output...),
	})
}

// Len returns the number of samples.
func (ts *TrainingSet) Len() int {
	return len(ts.samples)
}

// Input returns a copy of the input vector of sample i.
func (ts *TrainingSet) Input(i int) ([]float64, error) {
	if i < 0 || i >= len(ts.samples) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSampleMissing, i, len(ts.samples))
	}
	return append([]float64(nil), ts.samples[i].Input...), nil
}

// ExpectedOutput returns a copy of the expected output vector of sample i.
func (ts *TrainingSet) ExpectedOutput(i int) ([]float64, error) {
	if i < 0 || i >= len(ts.samples) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSampleMissing, i, len(ts.samples))
	}
	return append([]float64(nil), ts.samples[i].Output...), nil
}

// RandomIndex draws a uniform sample index.
func (ts *TrainingSet) RandomIndex(rng stats.Sampler) int {
	return rng.Randi(0, len(ts.samples))
}

// Validate checks that the set is non-empty and every sample matches the
// given input and output widths.
func (ts *TrainingSet) Validate(inputSize, outputSize int) error {
	if len(ts.samples) == 0 {
		return ErrEmpty
	}
	for i, s := range ts.samples {
		if len(s.Input) != inputSize {
			return fmt.Errorf("%w: sample %d input has %d values, want %d", ErrSampleSize, i, len(s.Input), inputSize)
		}
		if len(s.Output) != outputSize {
			return fmt.Errorf("%w: sample %d output has %d values, want %d", ErrSampleSize, i, len(s.Output), outputSize)
		}
	}
	return nil
}

// file is the YAML layout of a sample file.
type file struct {
	Samples []Sample `yaml:"samples"`
}

// Parse decodes a YAML document with a top-level samples list.
func Parse(data []byte) (*TrainingSet, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse samples: %w", err)
	}
	return New(f.Samples...), nil
}

// Load reads a YAML sample file.
func Load(path string) (*TrainingSet, error) {
	//nolint:gosec // G304: File path comes from user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}
	return Parse(data)
}
