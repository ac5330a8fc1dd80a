package nn

import (
	"math"

	"github.com/recur-ml/recur/internal/mat"
	"github.com/recur-ml/recur/internal/stats"
)

// Xavier (Glorot) initialization for a rows x cols weight matrix.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
// where fan_in = cols and fan_out = rows.
func Xavier(rows, cols int, rng stats.Sampler) *mat.Matrix {
	m := mat.New(rows, cols)
	if rows+cols == 0 {
		return m
	}
	bound := math.Sqrt(6.0 / float64(rows+cols))
	m.Fill(func(int) float64 {
		return rng.Randf(-bound, bound)
	})
	return m
}

// Zeros creates a rows x cols matrix filled with zeros.
//
// This is commonly used for bias initialization.
func Zeros(rows, cols int) *mat.Matrix {
	return mat.New(rows, cols)
}

// Constant creates a rows x cols matrix filled with v.
func Constant(rows, cols int, v float64) *mat.Matrix {
	m := mat.New(rows, cols)
	m.FillConst(v)
	return m
}

// Randn creates a rows x cols matrix with values drawn from N(0, std²).
func Randn(rows, cols int, std float64, rng stats.Sampler) *mat.Matrix {
	m := mat.New(rows, cols)
	m.Fill(func(int) float64 {
		return rng.Randn(0, std)
	})
	return m
}
