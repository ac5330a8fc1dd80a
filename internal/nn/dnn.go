package nn

import (
	"fmt"

	"github.com/recur-ml/recur/internal/autodiff"
	"github.com/recur-ml/recur/internal/mat"
)

// DNN is a deep feed-forward network.
//
// Each hidden layer computes h = tanh(W h_prev + b); the decoder is linear.
// Weights start Xavier-uniform, biases at zero.
//
// Example:
//
//	net, _ := nn.NewDNN(nn.Config{
//	    Architecture: nn.Architecture{InputSize: 2, HiddenUnits: []int{2, 3}, OutputSize: 3},
//	})
//	net.SetTrainability(true)
//	out, _ := net.Forward([]float64{0, 1})
//	loss, _ := net.Backward([]float64{0, 1, 0})
type DNN struct {
	base
	hiddenW  []*mat.Matrix // hidden.d.W: units[d] x units[d-1]
	hiddenB  []*mat.Matrix // hidden.d.b: units[d] x 1
	decoderW *mat.Matrix   // decoder.W: output x units[last]
	decoderB *mat.Matrix   // decoder.b: output x 1
}

// NewDNN creates a feed-forward network.
func NewDNN(cfg Config) (*DNN, error) {
	return newFeedForward("dnn", cfg)
}

func newFeedForward(kind string, cfg Config) (*DNN, error) {
	b, err := newBase(kind, cfg)
	if err != nil {
		return nil, err
	}
	n := &DNN{base: b}

	a := n.cfg.Architecture
	prev := a.InputSize
	for d, units := range a.HiddenUnits {
		n.hiddenW = append(n.hiddenW, n.register(fmt.Sprintf("hidden.%d.W", d), Xavier(units, prev, n.sampler)))
		n.hiddenB = append(n.hiddenB, n.register(fmt.Sprintf("hidden.%d.b", d), Zeros(units, 1)))
		prev = units
	}
	n.decoderW = n.register("decoder.W", Xavier(a.OutputSize, prev, n.sampler))
	n.decoderB = n.register("decoder.b", Zeros(a.OutputSize, 1))
	return n, nil
}

// Forward computes the network output. Each call starts a new episode: any
// operations recorded by an earlier Forward without Backward are dropped.
func (n *DNN) Forward(input []float64) ([]float64, error) {
	x, err := n.inputVector(input)
	if err != nil {
		return nil, err
	}
	n.graph.ForgetCurrentSequence()

	out, err := n.forwardMatrix(n.graph, x)
	if err != nil {
		return nil, err
	}
	n.output = out
	return out.Values(), nil
}

// Predict computes the output on a private non-recording graph. It does not
// affect Backward and is safe to call concurrently.
func (n *DNN) Predict(input []float64) ([]float64, error) {
	x, err := n.inputVector(input)
	if err != nil {
		return nil, err
	}
	out, err := n.forwardMatrix(autodiff.NewGraph(), x)
	if err != nil {
		return nil, err
	}
	return out.Data(), nil
}

// forwardMatrix runs the layers on g starting from column vector x.
func (n *DNN) forwardMatrix(g *autodiff.Graph, x *mat.Matrix) (*mat.Matrix, error) {
	h := x
	for d := range n.hiddenW {
		a, err := affine(g, n.hiddenW[d], h, n.hiddenB[d])
		if err != nil {
			return nil, fmt.Errorf("hidden layer %d: %w", d, err)
		}
		h = g.Tanh(a)
	}
	out, err := affine(g, n.decoderW, h, n.decoderB)
	if err != nil {
		return nil, fmt.Errorf("decoder: %w", err)
	}
	return out, nil
}
