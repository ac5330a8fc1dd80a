package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []float64{3, 5, 4, 4, 1, 1, 2, 3}

type summary struct {
	min, max, mean, std, variance float64
}

func describe(x []float64) summary {
	s := summary{min: math.Inf(1), max: math.Inf(-1)}
	for _, v := range x {
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}
	s.mean = Mean(x)
	s.std = Std(x, Unbiased)
	s.variance = Var(x, Unbiased)
	return s
}

func draw(n int, f func() float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f()
	}
	return out
}

func TestSum(t *testing.T) {
	assert.Equal(t, 23.0, Sum(sample))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 2.875, Mean(sample))
	assert.Equal(t, 0.0, Mean(nil))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, Median(sample))
	assert.Equal(t, 3.0, Median(append(append([]float64{}, sample...), 9)))
	assert.Equal(t, []float64{3, 5, 4, 4, 1, 1, 2, 3}, sample, "Median must not reorder its input")
}

func TestVar(t *testing.T) {
	tests := []struct {
		name string
		mode VarianceMode
		want float64
	}{
		{"unbiased", Unbiased, 2.125},
		{"uncorrected", Uncorrected, 1.859375},
		{"biased", Biased, 1.6527777777777777},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Var(sample, tt.mode), 1e-12)
		})
	}

	assert.Equal(t, 0.0, Var([]float64{3}, Unbiased), "single element falls back to 0")
}

func TestStd(t *testing.T) {
	assert.InDelta(t, math.Sqrt(2.125), Std(sample, Unbiased), 1e-12)
}

func TestMode(t *testing.T) {
	assert.Equal(t, []float64{1, 3, 4}, Mode(sample))
}

func TestZerosOnes(t *testing.T) {
	assert.Equal(t, []float64{0, 0, 0, 0}, Zeros(4))
	assert.Equal(t, []float64{1, 1, 1, 1}, Ones(4))
}

func TestSoftmax(t *testing.T) {
	input := []float64{0, 1, 10, 3, 4}
	out := Softmax(input)

	assert.InDelta(t, 1.0, Sum(out), 1e-12)

	expSum := 0.0
	for _, v := range input {
		expSum += math.Exp(v)
	}
	for i, v := range input {
		assert.InDelta(t, math.Exp(v)/expSum, out[i], 1e-12)
	}
}

func TestSoftmax_LargeLogits(t *testing.T) {
	out := Softmax([]float64{1000, 1000})
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, out, 1e-12)
}

func TestArgmax(t *testing.T) {
	assert.Equal(t, 2, Argmax([]float64{0, 1, 10, 3, 4}))
	assert.Equal(t, -1, Argmax(nil))
}

func TestSampleWeighted(t *testing.T) {
	r := New(7)

	for i := 0; i < 100; i++ {
		assert.Equal(t, 2, r.SampleWeighted([]float64{0, 0, 1, 0}))
	}
	assert.Equal(t, 0, r.SampleWeighted([]float64{0, 0, 0, 0}), "all-zero weights fall back to 0")

	counts := make([]int, 2)
	for i := 0; i < 10000; i++ {
		counts[r.SampleWeighted([]float64{1, 3})]++
	}
	assert.InDelta(t, 0.75, float64(counts[1])/10000, 0.03)
}

func TestFill(t *testing.T) {
	r := New(1)
	dst := make([]float64, 5)

	r.FillRand(dst, 2, 3)
	for _, v := range dst {
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 3.0)
	}

	FillConst(dst, 2)
	assert.Equal(t, []float64{2, 2, 2, 2, 2}, dst)
}

func TestRandn_Statistics(t *testing.T) {
	r := New(42)
	s := describe(draw(100000, func() float64 { return r.Randn(0, 1) }))

	assert.Greater(t, s.min, -5.5)
	assert.Less(t, s.min, -3.5)
	assert.Greater(t, s.max, 3.5)
	assert.Less(t, s.max, 5.5)
	assert.InDelta(t, 0, s.mean, 0.1)
	assert.InDelta(t, 1, s.std, 0.1)
	assert.InDelta(t, 1, s.variance, 0.1)
}

func TestRandn_ShiftAndScale(t *testing.T) {
	r := New(3)
	s := describe(draw(50000, func() float64 { return r.Randn(1, 1.123) }))

	assert.InDelta(t, 1, s.mean, 0.05)
	assert.InDelta(t, 1.123, s.std, 0.05)
}

func TestBoxMuller_Statistics(t *testing.T) {
	r := New(42)
	s := describe(draw(100000, r.boxMuller))

	assert.Greater(t, s.min, 0.0)
	assert.Less(t, s.min, 0.12)
	assert.Greater(t, s.max, 0.87)
	assert.Less(t, s.max, 1.0)
	assert.InDelta(t, 0.5, s.mean, 0.01)
	assert.InDelta(t, 0.1, s.std, 0.01)
}

func TestRandf_Statistics(t *testing.T) {
	r := New(42)
	s := describe(draw(100000, func() float64 { return r.Randf(0, 100) }))

	assert.GreaterOrEqual(t, s.min, 0.0)
	assert.Less(t, s.min, 0.01)
	assert.Greater(t, s.max, 99.9)
	assert.Less(t, s.max, 100.0)
	assert.InDelta(t, 50, s.mean, 0.3)
}

func TestRandi_Statistics(t *testing.T) {
	r := New(42)
	s := describe(draw(100000, func() float64 { return float64(r.Randi(0, 100)) }))

	assert.Equal(t, 0.0, s.min)
	assert.Equal(t, 99.0, s.max)
	assert.InDelta(t, 49.5, s.mean, 1)
}

func TestRandi_DegenerateRange(t *testing.T) {
	r := New(1)
	assert.Equal(t, 1, r.Randi(1, 1))
}

func TestSkewedRandn_Unskewed(t *testing.T) {
	r := New(42)
	s := describe(draw(100000, func() float64 { return r.SkewedRandn(0, 1, 1) }))

	assert.Greater(t, s.min, -5.0)
	assert.Less(t, s.min, -3.5)
	assert.Greater(t, s.max, 3.5)
	assert.Less(t, s.max, 5.0)
	assert.InDelta(t, 0, s.mean, 0.05)
	assert.InDelta(t, 1, s.std, 0.1)
}

func TestSkewedRandn_ShiftsMean(t *testing.T) {
	// Only the direction of the shift is asserted; the spread of skewed
	// samples is not calibrated.
	r := New(42)
	positive := Mean(draw(20000, func() float64 { return r.SkewedRandn(0, 1, 0.5) }))
	negative := Mean(draw(20000, func() float64 { return r.SkewedRandn(0, 1, 2) }))

	assert.Greater(t, positive, 1.0)
	assert.Less(t, negative, -1.0)
}

func TestRand_Deterministic(t *testing.T) {
	a, b := New(99), New(99)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Randn(0, 1), b.Randn(0, 1))
	}
}

func TestDefaultSampler(t *testing.T) {
	v := Randf(1, 2)
	assert.GreaterOrEqual(t, v, 1.0)
	assert.Less(t, v, 2.0)

	i := Randi(0, 3)
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 3)

	assert.False(t, math.IsNaN(Randn(0, 1)))
	assert.NotNil(t, Default())
}
