// Package textgen trains recurrent networks as next-token predictors and
// samples text from them.
//
// Each token is embedded by plucking its row from an embedding matrix on the
// network's graph, so the embedding learns together with the recurrent core.
// Sequences are framed by tokenizer.EndOfSequence on both sides.
package textgen

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/recur-ml/recur/internal/autodiff"
	"github.com/recur-ml/recur/internal/mat"
	"github.com/recur-ml/recur/internal/nn"
	"github.com/recur-ml/recur/internal/stats"
	"github.com/recur-ml/recur/internal/tokenizer"
)

// ErrEmptySequence is returned when a training sequence has no tokens.
var ErrEmptySequence = errors.New("empty sequence")

// ErrInvalidLength is returned when a generation length is negative.
var ErrInvalidLength = errors.New("invalid generation length")

// Config describes a sequence model.
type Config struct {
	Architecture string      `yaml:"architecture"` // "rnn" or "lstm"
	EmbedSize    int         `yaml:"embedSize"`
	HiddenUnits  []int       `yaml:"hiddenUnits,flow"`
	Training     nn.Training `yaml:"training"`
	GradClip     float64     `yaml:"gradClip"` // Bound on parameter gradients before each update (0 disables)
	Seed         int64       `yaml:"seed,omitempty"`
}

// DefaultConfig returns a small LSTM setup.
func DefaultConfig() Config {
	training := nn.DefaultTraining()
	training.Alpha = 0.05
	return Config{
		Architecture: "lstm",
		EmbedSize:    5,
		HiddenUnits:  []int{20, 20},
		Training:     training,
		GradClip:     5,
	}
}

// Model is an embedding table feeding a recurrent core whose outputs are
// logits over the vocabulary.
type Model struct {
	tok   tokenizer.Tokenizer
	embed *nn.Parameter // vocab x embed
	core  nn.Recurrent
	cfg   Config
}

// TrainResult reports the cost of one sequence.
type TrainResult struct {
	Loss       float64 // Mean cross-entropy per predicted token, in nats
	Perplexity float64 // exp(Loss)
	Tokens     int     // Predictions made
}

// New creates a model sized to tok's vocabulary.
func New(tok tokenizer.Tokenizer, cfg Config) (*Model, error) {
	vocab := tok.VocabSize()
	if cfg.EmbedSize <= 0 {
		return nil, fmt.Errorf("%w: embedSize must be positive, got %d", nn.ErrInvalidConfiguration, cfg.EmbedSize)
	}
	if cfg.GradClip < 0 {
		return nil, fmt.Errorf("%w: gradClip must not be negative", nn.ErrInvalidConfiguration)
	}

	netCfg := nn.Config{
		Architecture: nn.Architecture{
			InputSize:   cfg.EmbedSize,
			HiddenUnits: cfg.HiddenUnits,
			OutputSize:  vocab,
		},
		Training: cfg.Training,
		Seed:     cfg.Seed,
	}
	net, err := nn.New(cfg.Architecture, netCfg)
	if err != nil {
		return nil, err
	}
	core, ok := net.(nn.Recurrent)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not recurrent", nn.ErrUnknownArchitecture, cfg.Architecture)
	}

	rng := stats.Default()
	if cfg.Seed != 0 {
		rng = stats.New(cfg.Seed + 1)
	}
	return &Model{
		tok:   tok,
		embed: nn.NewParameter("embedding", nn.Randn(vocab, cfg.EmbedSize, 0.08, rng)),
		core:  core,
		cfg:   cfg,
	}, nil
}

// Tokenizer returns the model's tokenizer.
func (m *Model) Tokenizer() tokenizer.Tokenizer {
	return m.tok
}

// Core returns the recurrent network behind the model.
func (m *Model) Core() nn.Recurrent {
	return m.core
}

// Parameters returns the embedding followed by the core's parameters.
func (m *Model) Parameters() []*nn.Parameter {
	return append([]*nn.Parameter{m.embed}, m.core.Parameters()...)
}

// TrainText encodes text and trains on it as one sequence.
func (m *Model) TrainText(text string) (TrainResult, error) {
	tokens, err := m.tok.Encode(text)
	if err != nil {
		return TrainResult{}, fmt.Errorf("encode: %w", err)
	}
	return m.TrainSequence(tokens)
}

// TrainSequence runs one step of backpropagation through time over tokens.
//
// The inputs are EndOfSequence followed by tokens and the targets are tokens
// followed by EndOfSequence. At every step the softmax cross-entropy gradient
// is seeded onto the logits; after the whole sequence the graph is replayed,
// gradients are clipped and every parameter moves by the configured alpha.
func (m *Model) TrainSequence(tokens []int32) (TrainResult, error) {
	if len(tokens) == 0 {
		return TrainResult{}, ErrEmptySequence
	}
	if err := m.checkTokens(tokens); err != nil {
		return TrainResult{}, err
	}

	m.core.SetTrainability(true)
	m.core.ResetState()
	g := m.core.Graph()

	eos := tokenizer.EndOfSequence
	inputs := append([]int32{eos}, tokens...)
	targets := append(append([]int32(nil), tokens...), eos)

	total := 0.0
	for t, ix := range inputs {
		logits, err := m.step(g, ix)
		if err != nil {
			m.core.ResetState()
			return TrainResult{}, fmt.Errorf("step %d: %w", t, err)
		}
		probs := stats.Softmax(logits.Data())
		target := targets[t]
		total -= math.Log(probs[target])

		grad := logits.Grad()
		for i, p := range probs {
			grad[i] += p
		}
		grad[target]--
	}

	g.Backward()
	alpha := m.core.Config().Training.Alpha
	for _, p := range m.Parameters() {
		clipGradients(p.Grad(), m.cfg.GradClip)
		p.Update(alpha)
	}
	m.core.ResetState()

	loss := total / float64(len(inputs))
	return TrainResult{Loss: loss, Perplexity: math.Exp(loss), Tokens: len(inputs)}, nil
}

// Generate feeds prefix and then samples up to n tokens, stopping early at
// EndOfSequence. It returns prefix followed by the generated text. Nothing is
// recorded on the graph.
func (m *Model) Generate(prefix string, n int, cfg SamplingConfig) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: n must not be negative, got %d", ErrInvalidLength, n)
	}
	prompt, err := m.tok.Encode(prefix)
	if err != nil {
		return "", fmt.Errorf("encode prefix: %w", err)
	}
	if err := m.checkTokens(prompt); err != nil {
		return "", err
	}

	trainable := m.core.IsTrainable()
	m.core.SetTrainability(false)
	defer m.core.SetTrainability(trainable)
	m.core.ResetState()
	defer m.core.ResetState()

	g := m.core.Graph()
	var logits *mat.Matrix
	for _, ix := range append([]int32{tokenizer.EndOfSequence}, prompt...) {
		if logits, err = m.step(g, ix); err != nil {
			return "", err
		}
	}

	sampler := NewSampler(cfg)
	history := append([]int32(nil), prompt...)
	generated := make([]int32, 0, n)
	for len(generated) < n {
		next := sampler.Sample(logits.Data(), history)
		if next == tokenizer.EndOfSequence {
			break
		}
		generated = append(generated, next)
		history = append(history, next)
		if logits, err = m.step(g, next); err != nil {
			return "", err
		}
	}

	text, err := m.tok.Decode(generated)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(text)
	return sb.String(), nil
}

// step embeds token ix and advances the core by one time step.
func (m *Model) step(g *autodiff.Graph, ix int32) (*mat.Matrix, error) {
	x, err := g.RowPluck(m.embed.Matrix(), int(ix))
	if err != nil {
		return nil, err
	}
	return m.core.StepMatrix(x)
}

// checkTokens rejects IDs outside the embedding table.
func (m *Model) checkTokens(tokens []int32) error {
	vocab := m.embed.Matrix().Rows()
	for i, tok := range tokens {
		if tok < 0 || int(tok) >= vocab {
			return fmt.Errorf("%w: token %d at position %d outside vocabulary of %d", tokenizer.ErrUnknownToken, tok, i, vocab)
		}
	}
	return nil
}

// clipGradients bounds every element of grad to [-clip, clip]; clip <= 0 disables it.
func clipGradients(grad []float64, clip float64) {
	if clip <= 0 {
		return
	}
	for i, v := range grad {
		grad[i] = max(-clip, min(clip, v))
	}
}
