package nn

import (
	"fmt"

	"github.com/recur-ml/recur/internal/dataset"
	"github.com/recur-ml/recur/internal/stats"
)

// TrainOptions controls Train. Zero values fall back to the network config.
type TrainOptions struct {
	Iterations int     // Step budget (default Config().Training.Iterations)
	Alpha      float64 // Fixed learning rate (default Config().Training.Alpha)

	// AlphaMin and AlphaMax, when AlphaMax > AlphaMin, draw a fresh learning
	// rate from [AlphaMin, AlphaMax) on every step instead of using Alpha.
	AlphaMin float64
	AlphaMax float64

	// NoEarlyStop keeps training after the loss drops below the threshold.
	NoEarlyStop bool

	Sampler       stats.Sampler                     // Sample selection (default: network seed)
	Progress      func(iteration int, loss float64) // Called every ProgressEvery steps
	ProgressEvery int                               // Default 1000
	Perturb       func(input []float64) []float64   // Optional input distortion per step
}

// TrainResult summarizes a Train run.
type TrainResult struct {
	Iterations int     // Steps performed
	Loss       float64 // Loss of the last step
	Converged  bool    // Whether the loss fell below Training.Loss
}

// Train runs stochastic gradient descent: each step draws a uniform sample
// index, runs Forward and Backward on it and records the step loss. Training
// stops once the step loss falls below Config().Training.Loss unless
// NoEarlyStop is set.
//
// Recurrent networks are reset before every sample so samples are
// independent sequences of length one.
func Train(net Net, set *dataset.TrainingSet, opts TrainOptions) (TrainResult, error) {
	cfg := net.Config()
	if err := set.Validate(cfg.Architecture.InputSize, cfg.Architecture.OutputSize); err != nil {
		return TrainResult{}, fmt.Errorf("training set: %w", err)
	}

	if opts.Iterations == 0 {
		opts.Iterations = cfg.Training.Iterations
	}
	if opts.Alpha == 0 {
		opts.Alpha = cfg.Training.Alpha
	}
	if opts.Sampler == nil {
		opts.Sampler = samplerFor(cfg.Seed)
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = 1000
	}

	net.SetTrainability(true)
	recurrent, _ := net.(Recurrent)

	var res TrainResult
	for i := 0; i < opts.Iterations; i++ {
		ix := set.RandomIndex(opts.Sampler)
		input, err := set.Input(ix)
		if err != nil {
			return res, err
		}
		expected, err := set.ExpectedOutput(ix)
		if err != nil {
			return res, err
		}
		if opts.Perturb != nil {
			input = opts.Perturb(input)
		}

		alpha := opts.Alpha
		if opts.AlphaMax > opts.AlphaMin {
			alpha = opts.Sampler.Randf(opts.AlphaMin, opts.AlphaMax)
		}

		if recurrent != nil {
			recurrent.ResetState()
		}
		if _, err := net.Forward(input); err != nil {
			return res, fmt.Errorf("iteration %d: %w", i, err)
		}
		loss, err := net.BackwardWithAlpha(expected, alpha)
		if err != nil {
			return res, fmt.Errorf("iteration %d: %w", i, err)
		}

		res.Iterations = i + 1
		res.Loss = loss
		if opts.Progress != nil && res.Iterations%opts.ProgressEvery == 0 {
			opts.Progress(res.Iterations, loss)
		}
		if loss < cfg.Training.Loss {
			res.Converged = true
			if !opts.NoEarlyStop {
				break
			}
		}
	}
	return res, nil
}
