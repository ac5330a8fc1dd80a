// Package stats provides the random samplers and small statistical helpers
// used by parameter initialization, noise injection and output decoding.
package stats

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Sampler draws random numbers for initialization and noise injection.
type Sampler interface {
	// Randn returns a sample from N(mean, std²).
	Randn(mean, std float64) float64

	// Randf returns a uniform sample from [min, max).
	Randf(min, max float64) float64

	// Randi returns a uniform integer from [min, max).
	Randi(min, max int) int
}

// Rand is a Sampler backed by math/rand. It is safe for concurrent use.
type Rand struct {
	mu  sync.Mutex
	rng *rand.Rand

	// The polar method produces samples in pairs; the second one is cached.
	spare    float64
	hasSpare bool
}

// New creates a deterministic sampler seeded with seed.
func New(seed int64) *Rand {
	return &Rand{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // Numeric sampling, not security-critical
	}
}

var defaultRand = New(time.Now().UnixNano())

// Default returns the package-level time-seeded sampler.
func Default() *Rand {
	return defaultRand
}

// Randn returns mean + std*z where z is a standard normal sample.
func (r *Rand) Randn(mean, std float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return mean + r.gaussRandom()*std
}

// Randf returns a uniform sample from [min, max).
func (r *Rand) Randf(min, max float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()*(max-min) + min
}

// Randi returns a uniform integer from [min, max).
func (r *Rand) Randi(min, max int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(math.Floor(r.rng.Float64()*float64(max-min))) + min
}

// SkewedRandn returns a sample around mean whose tail is shifted by skew.
// skew == 1 yields an (approximately) unskewed normal truncated at ±5 std;
// skew < 1 shifts mass to the positive side, skew > 1 to the negative side.
//
// The reported spread is only reliable for skew == 1. For other factors the
// transformation also changes the variance, and no corrected formula is
// provided.
func (r *Rand) SkewedRandn(mean, std, skew float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	num := math.Pow(r.boxMuller(), skew)
	num = (num - 0.5) * 10
	return num*std + mean
}

// gaussRandom draws a standard normal sample with the Marsaglia polar method.
// Callers must hold r.mu.
func (r *Rand) gaussRandom() float64 {
	if r.hasSpare {
		r.hasSpare = false
		return r.spare
	}
	for {
		u := 2*r.rng.Float64() - 1
		v := 2*r.rng.Float64() - 1
		s := u*u + v*v
		if s == 0 || s >= 1 {
			continue
		}
		c := math.Sqrt(-2 * math.Log(s) / s)
		r.spare = v * c
		r.hasSpare = true
		return u * c
	}
}

// boxMuller draws a normal sample rescaled into (0, 1) with mean 0.5 and
// std 0.1, resampling values that fall outside the interval.
// Callers must hold r.mu.
func (r *Rand) boxMuller() float64 {
	for {
		u := r.rng.Float64()
		v := r.rng.Float64()
		if u == 0 {
			continue
		}
		num := math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
		num = num/10 + 0.5
		if num > 0 && num < 1 {
			return num
		}
	}
}

// FillRandn fills dst with Randn(mean, std) samples.
func (r *Rand) FillRandn(dst []float64, mean, std float64) {
	for i := range dst {
		dst[i] = r.Randn(mean, std)
	}
}

// FillRand fills dst with Randf(min, max) samples.
func (r *Rand) FillRand(dst []float64, min, max float64) {
	for i := range dst {
		dst[i] = r.Randf(min, max)
	}
}

// SampleWeighted draws an index with probability proportional to weights[i].
// Returns 0 if all weights are zero.
func (r *Rand) SampleWeighted(weights []float64) int {
	total := Sum(weights)
	if total <= 0 {
		return 0
	}
	x := r.Randf(0, total)
	acc := 0.0
	for i, w := range weights {
		acc += w
		if acc > x {
			return i
		}
	}
	return 0
}

// Randn draws from the default sampler.
func Randn(mean, std float64) float64 { return defaultRand.Randn(mean, std) }

// Randf draws from the default sampler.
func Randf(min, max float64) float64 { return defaultRand.Randf(min, max) }

// Randi draws from the default sampler.
func Randi(min, max int) int { return defaultRand.Randi(min, max) }

// SkewedRandn draws from the default sampler.
func SkewedRandn(mean, std, skew float64) float64 { return defaultRand.SkewedRandn(mean, std, skew) }

// FillRandn fills dst from the default sampler.
func FillRandn(dst []float64, mean, std float64) { defaultRand.FillRandn(dst, mean, std) }

// FillRand fills dst from the default sampler.
func FillRand(dst []float64, min, max float64) { defaultRand.FillRand(dst, min, max) }

// FillConst sets every element of dst to v.
func FillConst(dst []float64, v float64) {
	for i := range dst {
		dst[i] = v
	}
}

// SampleWeighted draws from the default sampler.
func SampleWeighted(weights []float64) int { return defaultRand.SampleWeighted(weights) }
