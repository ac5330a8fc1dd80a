package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// VarianceMode selects the denominator used by Var.
type VarianceMode int

const (
	// Unbiased divides by n-1 (Bessel's correction). This is the default.
	Unbiased VarianceMode = iota
	// Uncorrected divides by n.
	Uncorrected
	// Biased divides by n+1.
	Biased
)

// Zeros returns a slice of n zeros.
func Zeros(n int) []float64 {
	return make([]float64, n)
}

// Ones returns a slice of n ones.
func Ones(n int) []float64 {
	out := make([]float64, n)
	FillConst(out, 1)
	return out
}

// Sum returns the sum of x.
func Sum(x []float64) float64 {
	return floats.Sum(x)
}

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Median returns the middle value of x, averaging the two central values when
// len(x) is even. Returns 0 for an empty slice.
func Median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Var returns the variance of x using the given denominator.
// Returns 0 when the sample is too small for the chosen mode.
func Var(x []float64, mode VarianceMode) float64 {
	n := float64(len(x))
	if len(x) < 2 {
		return 0
	}
	unbiased := stat.Variance(x, nil)
	switch mode {
	case Uncorrected:
		return unbiased * (n - 1) / n
	case Biased:
		return unbiased * (n - 1) / (n + 1)
	default:
		return unbiased
	}
}

// Std returns the square root of Var(x, mode).
func Std(x []float64, mode VarianceMode) float64 {
	return math.Sqrt(Var(x, mode))
}

// Mode returns every value sharing the highest frequency, in ascending order.
func Mode(x []float64) []float64 {
	counts := make(map[float64]int, len(x))
	best := 0
	for _, v := range x {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	var modes []float64
	for v, c := range counts {
		if c == best {
			modes = append(modes, v)
		}
	}
	sort.Float64s(modes)
	return modes
}

// Softmax returns exp(x_i)/sum(exp(x)). The maximum is subtracted first so
// large logits do not overflow.
func Softmax(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	maxVal := floats.Max(x)
	total := 0.0
	for i, v := range x {
		out[i] = math.Exp(v - maxVal)
		total += out[i]
	}
	for i := range out {
		out[i] /= total
	}
	return out
}

// Argmax returns the index of the first maximum of x, or -1 if x is empty.
func Argmax(x []float64) int {
	if len(x) == 0 {
		return -1
	}
	return floats.MaxIdx(x)
}
