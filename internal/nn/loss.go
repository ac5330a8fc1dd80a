package nn

import (
	"fmt"

	"github.com/recur-ml/recur/internal/mat"
)

// SquaredLoss returns sum(0.5 * (y - t)²) over the elements of output.
//
// When seed is true it also accumulates the loss gradient y - t into
// output's gradient buffer, clipped to [-clip, clip] when clip > 0.
func SquaredLoss(output *mat.Matrix, expected []float64, clip float64, seed bool) (float64, error) {
	if output.Len() != len(expected) {
		return 0, fmt.Errorf("%w: output has %d values, expected %d", mat.ErrShapeMismatch, output.Len(), len(expected))
	}

	w, dw := output.Data(), output.Grad()
	loss := 0.0
	for i, t := range expected {
		d := w[i] - t
		loss += 0.5 * d * d
		if seed {
			dw[i] += clipGradient(d, clip)
		}
	}
	return loss, nil
}

// clipGradient bounds d to [-clip, clip]; clip <= 0 disables clipping.
func clipGradient(d, clip float64) float64 {
	if clip <= 0 {
		return d
	}
	return max(-clip, min(clip, d))
}
