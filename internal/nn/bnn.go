package nn

import (
	"github.com/recur-ml/recur/internal/autodiff"
	"github.com/recur-ml/recur/internal/mat"
)

// BNN is a feed-forward network whose input is drawn from N(x, InputStd²) on
// every pass. The perturbation is not differentiated, so training shapes the
// deterministic parameters while the output stays stochastic.
type BNN struct {
	*DNN
	inputStd []float64
}

// NewBNN creates a noise-injected feed-forward network. A zero InputStd
// selects DefaultInputStd.
func NewBNN(cfg Config) (*BNN, error) {
	if cfg.Architecture.InputStd == 0 {
		cfg.Architecture.InputStd = DefaultInputStd
	}
	dnn, err := newFeedForward("bnn", cfg)
	if err != nil {
		return nil, err
	}

	std := make([]float64, dnn.cfg.Architecture.InputSize)
	for i := range std {
		std[i] = dnn.cfg.Architecture.InputStd
	}
	return &BNN{DNN: dnn, inputStd: std}, nil
}

// Forward perturbs input and runs the feed-forward layers.
func (n *BNN) Forward(input []float64) ([]float64, error) {
	out, err := n.forward(n.graph, input)
	if err != nil {
		return nil, err
	}
	n.output = out
	return out.Values(), nil
}

// Predict runs a perturbed pass on a private non-recording graph.
func (n *BNN) Predict(input []float64) ([]float64, error) {
	out, err := n.forward(autodiff.NewGraph(autodiff.WithSampler(n.sampler)), input)
	if err != nil {
		return nil, err
	}
	return out.Data(), nil
}

func (n *BNN) forward(g *autodiff.Graph, input []float64) (*mat.Matrix, error) {
	x, err := n.inputVector(input)
	if err != nil {
		return nil, err
	}
	g.ForgetCurrentSequence()

	noisy, err := g.Gauss(x, mat.ColumnVector(n.inputStd))
	if err != nil {
		return nil, err
	}
	return n.forwardMatrix(g, noisy)
}
