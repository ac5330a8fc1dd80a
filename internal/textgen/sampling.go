package textgen

import (
	"math"
	"sort"

	"github.com/recur-ml/recur/internal/stats"
)

// SamplingConfig configures how the next token is drawn from the logits.
type SamplingConfig struct {
	// Temperature controls randomness. 0 = greedy, 1 = normal, >1 = more random.
	Temperature float64

	// TopK limits sampling to top K tokens. 0 = disabled.
	TopK int

	// Repetition control
	RepeatPenalty float64 // Penalty for repeated tokens. 1.0 = no penalty.
	RepeatWindow  int     // Number of tokens to consider. 0 = all.

	// Seed for reproducibility. -1 = random.
	Seed int64
}

// DefaultSamplingConfig returns sensible defaults for generation.
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Temperature:   1.0,
		TopK:          0,
		RepeatPenalty: 1.0,
		RepeatWindow:  64,
		Seed:          -1,
	}
}

// Sampler samples tokens from logits using configurable strategies.
type Sampler struct {
	config SamplingConfig
	rng    *stats.Rand
}

// NewSampler creates a new sampler with the given configuration.
func NewSampler(config SamplingConfig) *Sampler {
	rng := stats.Default()
	if config.Seed >= 0 {
		rng = stats.New(config.Seed)
	}
	return &Sampler{
		config: config,
		rng:    rng,
	}
}

// Sample returns the next token ID from logits.
//
// The sampling process:
//  1. Apply repetition penalty
//  2. Apply temperature scaling (argmax if temperature=0)
//  3. Apply Top-K filtering
//  4. Sample from the softmax distribution
func (s *Sampler) Sample(logits []float64, previousTokens []int32) int32 {
	logits = append([]float64(nil), logits...)

	if s.config.RepeatPenalty != 0 && s.config.RepeatPenalty != 1.0 && len(previousTokens) > 0 {
		s.applyRepetitionPenalty(logits, previousTokens)
	}

	if s.config.Temperature <= 0 {
		return int32(stats.Argmax(logits)) //nolint:gosec // vocab size is bounded by the tokenizer
	}
	if s.config.Temperature != 1.0 {
		for i := range logits {
			logits[i] /= s.config.Temperature
		}
	}

	if s.config.TopK > 0 && s.config.TopK < len(logits) {
		s.topKFilter(logits)
	}

	return int32(s.rng.SampleWeighted(stats.Softmax(logits))) //nolint:gosec // vocab size is bounded by the tokenizer
}

// applyRepetitionPenalty penalizes tokens that appeared recently.
func (s *Sampler) applyRepetitionPenalty(logits []float64, prev []int32) {
	penalty := s.config.RepeatPenalty
	window := s.config.RepeatWindow

	recent := prev
	if window > 0 && len(prev) > window {
		recent = prev[len(prev)-window:]
	}

	seen := make(map[int32]bool)
	for _, tok := range recent {
		seen[tok] = true
	}

	for tok := range seen {
		if tok >= 0 && int(tok) < len(logits) {
			if logits[tok] > 0 {
				logits[tok] /= penalty
			} else {
				logits[tok] *= penalty
			}
		}
	}
}

// topKFilter keeps only top K logits, sets rest to -inf.
func (s *Sampler) topKFilter(logits []float64) {
	sorted := append([]float64(nil), logits...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	threshold := sorted[s.config.TopK-1]

	for i := range logits {
		if logits[i] < threshold {
			logits[i] = math.Inf(-1)
		}
	}
}
