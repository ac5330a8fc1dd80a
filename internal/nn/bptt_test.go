package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/recur-ml/recur/internal/mat"
	"github.com/recur-ml/recur/internal/nn"
)

// sequenceLoss runs inputs through net from a fresh state and returns the
// squared loss of the final output. When seed is set the loss gradient is
// backpropagated through every step.
func sequenceLoss(t *testing.T, net nn.Recurrent, inputs [][]float64, expected []float64, seed bool) float64 {
	t.Helper()
	net.ResetState()
	var out *mat.Matrix
	for _, in := range inputs {
		var err error
		out, err = net.StepMatrix(mat.ColumnVector(in))
		require.NoError(t, err)
	}
	loss, err := nn.SquaredLoss(out, expected, 0, seed)
	require.NoError(t, err)
	if seed {
		net.Graph().Backward()
	}
	return loss
}

func TestRecurrent_BackpropagationThroughTime(t *testing.T) {
	inputs := [][]float64{{0.3, -0.7}, {0.9, 0.1}, {-0.4, 0.5}}
	expected := []float64{0.25, -0.5}
	cfg := nn.Config{
		Architecture: nn.Architecture{InputSize: 2, HiddenUnits: []int{3}, OutputSize: 2},
		Seed:         11,
	}

	for _, kind := range []string{"rnn", "lstm"} {
		for _, name := range []string{"hidden.0.Wx", "hidden.0.Wh", "hidden.0.bh", "decoder.Wh"} {
			if kind == "lstm" && name != "decoder.Wh" {
				name = "hidden.0.forget." + name[len("hidden.0."):]
			}
			t.Run(kind+"/"+name, func(t *testing.T) {
				built, err := nn.New(kind, cfg)
				require.NoError(t, err)
				net := built.(nn.Recurrent)
				p := param(t, net, name)

				net.SetTrainability(true)
				for _, q := range net.Parameters() {
					q.ZeroGrad()
				}
				sequenceLoss(t, net, inputs, expected, true)
				analytic := append([]float64(nil), p.Matrix().Grad()...)

				net.SetTrainability(false)
				original := p.Matrix().Values()
				loss := func(x []float64) float64 {
					copy(p.Matrix().Data(), x)
					return sequenceLoss(t, net, inputs, expected, false)
				}
				numeric := fd.Gradient(nil, loss, original, &fd.Settings{Formula: fd.Central, Step: 1e-6})
				copy(p.Matrix().Data(), original)

				for i := range analytic {
					tol := 1e-4 * math.Max(1, math.Abs(numeric[i]))
					require.InDelta(t, numeric[i], analytic[i], tol, "gradient mismatch at index %d", i)
				}
			})
		}
	}
}
