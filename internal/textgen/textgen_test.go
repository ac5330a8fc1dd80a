package textgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recur-ml/recur/internal/nn"
	"github.com/recur-ml/recur/internal/tokenizer"
)

func testModel(t *testing.T, corpus string, arch string, alpha float64) *Model {
	t.Helper()
	cfg := Config{
		Architecture: arch,
		EmbedSize:    4,
		HiddenUnits:  []int{10},
		Training:     nn.Training{Alpha: alpha},
		GradClip:     5,
		Seed:         3,
	}
	m, err := New(tokenizer.NewChar(corpus), cfg)
	require.NoError(t, err)
	return m
}

func TestSampler_Greedy(t *testing.T) {
	s := NewSampler(SamplingConfig{Temperature: 0, Seed: 1})
	assert.Equal(t, int32(2), s.Sample([]float64{0.1, -3, 4.5, 4.4}, nil))
}

func TestSampler_TopKOne(t *testing.T) {
	s := NewSampler(SamplingConfig{Temperature: 2, TopK: 1, Seed: 1})
	for i := 0; i < 50; i++ {
		assert.Equal(t, int32(1), s.Sample([]float64{0.3, 0.9, 0.8}, nil))
	}
}

func TestSampler_RepeatPenalty(t *testing.T) {
	s := NewSampler(SamplingConfig{Temperature: 0, RepeatPenalty: 4, Seed: 1})
	logits := []float64{2, 1, -1}

	assert.Equal(t, int32(1), s.Sample(logits, []int32{0}))
	assert.Equal(t, []float64{2, 1, -1}, logits, "caller's logits must not change")
}

func TestSampler_RepeatWindow(t *testing.T) {
	s := NewSampler(SamplingConfig{Temperature: 0, RepeatPenalty: 4, RepeatWindow: 1, Seed: 1})
	// Token 0 falls outside the window, so only token 2 is penalized.
	assert.Equal(t, int32(0), s.Sample([]float64{2, 1, -1}, []int32{0, 2}))
}

func TestSampler_TemperatureFollowsSoftmax(t *testing.T) {
	s := NewSampler(SamplingConfig{Temperature: 1, Seed: 7})
	logits := []float64{0, math.Log(3)}

	const draws = 4000
	ones := 0
	for i := 0; i < draws; i++ {
		if s.Sample(logits, nil) == 1 {
			ones++
		}
	}
	assert.InDelta(t, 0.75, float64(ones)/draws, 0.03)
}

func TestSampler_SeedIsReproducible(t *testing.T) {
	logits := []float64{0.2, 0.1, 0.4, 0.3}
	a := NewSampler(SamplingConfig{Temperature: 1.5, Seed: 42})
	b := NewSampler(SamplingConfig{Temperature: 1.5, Seed: 42})
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Sample(logits, nil), b.Sample(logits, nil))
	}
}

func TestNew_Errors(t *testing.T) {
	tok := tokenizer.NewChar("ab")

	_, err := New(tok, Config{Architecture: "dnn", EmbedSize: 2, HiddenUnits: []int{3}})
	require.ErrorIs(t, err, nn.ErrUnknownArchitecture)

	_, err = New(tok, Config{Architecture: "lstm", EmbedSize: 0, HiddenUnits: []int{3}})
	require.ErrorIs(t, err, nn.ErrInvalidConfiguration)

	_, err = New(tok, Config{Architecture: "rnn", EmbedSize: 2})
	require.ErrorIs(t, err, nn.ErrInvalidConfiguration)
}

func TestModel_Shapes(t *testing.T) {
	m := testModel(t, "abc", "lstm", 0.1)

	params := m.Parameters()
	require.NotEmpty(t, params)
	assert.Equal(t, "embedding", params[0].Name())
	assert.Equal(t, 4, params[0].Matrix().Rows())
	assert.Equal(t, 4, params[0].Matrix().Cols())
	assert.Equal(t, 4, m.Core().Config().Architecture.OutputSize)
	assert.Equal(t, 4, m.Core().Config().Architecture.InputSize)
}

func TestModel_TrainSequenceErrors(t *testing.T) {
	m := testModel(t, "ab", "rnn", 0.1)

	_, err := m.TrainSequence(nil)
	require.ErrorIs(t, err, ErrEmptySequence)

	_, err = m.TrainSequence([]int32{1, 9})
	require.ErrorIs(t, err, tokenizer.ErrUnknownToken)

	_, err = m.TrainText("abz")
	require.ErrorIs(t, err, tokenizer.ErrUnknownToken)
}

func TestModel_UntrainedLossNearUniform(t *testing.T) {
	m := testModel(t, "abc", "lstm", 0.1)

	res, err := m.TrainText("abc")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Tokens)
	assert.InDelta(t, math.Log(4), res.Loss, 0.7)
	assert.InDelta(t, math.Exp(res.Loss), res.Perplexity, 1e-12)
	assert.Zero(t, m.Core().Graph().Len())
}

func TestModel_OnlyPluckedEmbeddingRowsChange(t *testing.T) {
	m := testModel(t, "abcd", "lstm", 0.1)
	embed := m.Parameters()[0].Matrix()
	before := embed.Clone()

	_, err := m.TrainText("ab")
	require.NoError(t, err)

	cols := embed.Cols()
	rowChanged := func(r int) bool {
		for c := 0; c < cols; c++ {
			if embed.Data()[r*cols+c] != before.Data()[r*cols+c] {
				return true
			}
		}
		return false
	}
	// End-of-sequence, a and b are fed; c and d are not.
	assert.True(t, rowChanged(0))
	assert.True(t, rowChanged(1))
	assert.True(t, rowChanged(2))
	assert.False(t, rowChanged(3))
	assert.False(t, rowChanged(4))
	for _, v := range embed.Grad() {
		assert.Zero(t, v)
	}
}

func TestModel_LearnsSequence(t *testing.T) {
	for _, arch := range []string{"rnn", "lstm"} {
		t.Run(arch, func(t *testing.T) {
			m := testModel(t, "abc", arch, 0.1)

			first, err := m.TrainText("abc")
			require.NoError(t, err)
			var last TrainResult
			for i := 0; i < 1500; i++ {
				last, err = m.TrainText("abc")
				require.NoError(t, err)
			}
			assert.Less(t, last.Loss, first.Loss/4)

			text, err := m.Generate("a", 10, SamplingConfig{Temperature: 0})
			require.NoError(t, err)
			assert.Equal(t, "abc", text)
		})
	}
}

func TestModel_GenerateDoesNotRecord(t *testing.T) {
	m := testModel(t, "abc", "lstm", 0.1)
	m.Core().SetTrainability(true)

	text, err := m.Generate("ab", 5, SamplingConfig{Temperature: 1, Seed: 5})
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(text)), 7)
	assert.Equal(t, "ab", text[:2])
	assert.Zero(t, m.Core().Graph().Len())
	assert.True(t, m.Core().IsTrainable())

	_, err = m.Generate("xyz", 5, DefaultSamplingConfig())
	require.ErrorIs(t, err, tokenizer.ErrUnknownToken)
}

func TestModel_GenerateLength(t *testing.T) {
	m := testModel(t, "abc", "rnn", 0.1)

	_, err := m.Generate("a", -1, SamplingConfig{})
	require.ErrorIs(t, err, ErrInvalidLength)

	text, err := m.Generate("ab", 0, SamplingConfig{})
	require.NoError(t, err)
	assert.Equal(t, "ab", text)
}
