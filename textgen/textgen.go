// Package textgen trains recurrent networks on token sequences and samples
// text from them.
//
// This package wraps the internal textgen implementation and provides a
// clean public API.
//
// Example usage:
//
//	import (
//	    "github.com/recur-ml/recur/textgen"
//	    "github.com/recur-ml/recur/tokenizer"
//	)
//
//	tok := tokenizer.NewChar(corpus...)
//	model, err := textgen.New(tok, textgen.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, line := range corpus {
//	    res, _ := model.TrainText(line)
//	    fmt.Println(res.Perplexity)
//	}
//	text, err := model.Generate("the", 40, textgen.SamplingConfig{Temperature: 0.8, Seed: 1})
package textgen

import (
	"github.com/recur-ml/recur/internal/textgen"
	"github.com/recur-ml/recur/internal/tokenizer"
)

// Config describes a sequence model.
type Config = textgen.Config

// DefaultConfig returns a small LSTM setup.
func DefaultConfig() Config {
	return textgen.DefaultConfig()
}

// Model is an embedding table feeding a recurrent core.
type Model = textgen.Model

// TrainResult reports the cost of one sequence.
type TrainResult = textgen.TrainResult

// ErrEmptySequence is returned when a training sequence has no tokens.
var ErrEmptySequence = textgen.ErrEmptySequence

// ErrInvalidLength is returned when a generation length is negative.
var ErrInvalidLength = textgen.ErrInvalidLength

// New creates a model sized to tok's vocabulary.
func New(tok tokenizer.Tokenizer, cfg Config) (*Model, error) {
	return textgen.New(tok, cfg)
}

// Sampling Configuration

// SamplingConfig configures the sampling strategy for text generation.
//
// Parameters:
//   - Temperature: Controls randomness (0 = greedy, 1 = normal, >1 = more random)
//   - TopK: Limits sampling to top K tokens (0 = disabled)
//   - RepeatPenalty: Penalty for repeated tokens (1.0 = no penalty)
//   - RepeatWindow: Number of tokens to consider for penalties (0 = all)
//   - Seed: Random seed for reproducibility (-1 = random)
type SamplingConfig = textgen.SamplingConfig

// DefaultSamplingConfig returns sensible defaults for generation.
func DefaultSamplingConfig() SamplingConfig {
	return textgen.DefaultSamplingConfig()
}

// Sampler samples tokens from logits.
type Sampler = textgen.Sampler

// NewSampler creates a new sampler with the given configuration.
func NewSampler(config SamplingConfig) *Sampler {
	return textgen.NewSampler(config)
}
