package ops

import (
	"github.com/recur-ml/recur/internal/mat"
	"github.com/recur-ml/recur/internal/stats"
)

// Gauss draws every output element from N(m[i], std[i]²).
//
// The result is a constant leaf: it has no slope with respect to m or std,
// so no backward record is produced.
func Gauss(m, std *mat.Matrix, rng stats.Sampler) (*mat.Matrix, error) {
	if err := requireSameShape("gauss", m, std); err != nil {
		return nil, err
	}

	out := mat.New(m.Rows(), m.Cols())
	w, sw := out.Data(), std.Data()
	for i, mean := range m.Data() {
		w[i] = rng.Randn(mean, sw[i])
	}
	return out, nil
}
