package nn

import (
	"github.com/recur-ml/recur/internal/parallel"
)

// PredictBatch evaluates p on every input, fanning the work out across
// goroutines. Results are returned in input order.
func PredictBatch(p Predictor, inputs [][]float64, cfg parallel.Config) ([][]float64, error) {
	return parallel.Map(len(inputs), func(i int) ([]float64, error) {
		return p.Predict(inputs[i])
	}, cfg)
}
