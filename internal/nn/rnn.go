package nn

import (
	"fmt"

	"github.com/recur-ml/recur/internal/autodiff"
	"github.com/recur-ml/recur/internal/mat"
)

// recurrentUnit is one input-to-hidden plus hidden-to-hidden mapping.
type recurrentUnit struct {
	wx *mat.Matrix // units x prev
	wh *mat.Matrix // units x units
	bh *mat.Matrix // units x 1
}

// newRecurrentUnit registers Wx, Wh and bh under prefix.
func (b *base) newRecurrentUnit(prefix string, units, prev int, bias float64) recurrentUnit {
	return recurrentUnit{
		wx: b.register(prefix+".Wx", Xavier(units, prev, b.sampler)),
		wh: b.register(prefix+".Wh", Xavier(units, units, b.sampler)),
		bh: b.register(prefix+".bh", Constant(units, 1, bias)),
	}
}

// preactivation computes Wx x + Wh h + bh on g.
func (u recurrentUnit) preactivation(g *autodiff.Graph, x, h *mat.Matrix) (*mat.Matrix, error) {
	wx, err := g.Mul(u.wx, x)
	if err != nil {
		return nil, err
	}
	wh, err := g.Mul(u.wh, h)
	if err != nil {
		return nil, err
	}
	sum, err := g.Add(wx, wh)
	if err != nil {
		return nil, err
	}
	return g.Add(sum, u.bh)
}

// RNN is a deep recurrent network: h_t = relu(Wx x_t + Wh h_{t-1} + bh) per
// layer, followed by a linear decoder.
//
// Hidden state carries over between Forward calls until ResetState. Backward
// propagates through every step recorded since the previous Backward.
type RNN struct {
	base
	layers   []recurrentUnit
	decoderW *mat.Matrix // decoder.Wh: output x units[last]
	decoderB *mat.Matrix // decoder.b: output x 1
	state    []*mat.Matrix
}

// NewRNN creates a recurrent network.
func NewRNN(cfg Config) (*RNN, error) {
	b, err := newBase("rnn", cfg)
	if err != nil {
		return nil, err
	}
	n := &RNN{base: b}

	a := n.cfg.Architecture
	prev := a.InputSize
	for d, units := range a.HiddenUnits {
		n.layers = append(n.layers, n.newRecurrentUnit(fmt.Sprintf("hidden.%d", d), units, prev, 0))
		prev = units
	}
	n.decoderW = n.register("decoder.Wh", Xavier(a.OutputSize, prev, n.sampler))
	n.decoderB = n.register("decoder.b", Zeros(a.OutputSize, 1))
	return n, nil
}

// ResetState zeroes the hidden state and drops recorded operations.
func (n *RNN) ResetState() {
	n.state = nil
	n.output = nil
	n.graph.ForgetCurrentSequence()
}

// Forward advances one time step.
func (n *RNN) Forward(input []float64) ([]float64, error) {
	x, err := n.inputVector(input)
	if err != nil {
		return nil, err
	}
	out, err := n.StepMatrix(x)
	if err != nil {
		return nil, err
	}
	n.output = out
	return out.Values(), nil
}

// StepMatrix advances one time step on an InputSize x 1 column vector.
func (n *RNN) StepMatrix(x *mat.Matrix) (*mat.Matrix, error) {
	if want := (mat.Shape{Rows: n.cfg.Architecture.InputSize, Cols: 1}); !x.Shape().Equal(want) {
		return nil, fmt.Errorf("%w: input is %s, want %s", mat.ErrShapeMismatch, x.Shape(), want)
	}
	if n.state == nil {
		n.state = make([]*mat.Matrix, len(n.layers))
		for d, units := range n.cfg.Architecture.HiddenUnits {
			n.state[d] = Zeros(units, 1)
		}
	}

	g := n.graph
	h := x
	next := make([]*mat.Matrix, len(n.layers))
	for d, l := range n.layers {
		a, err := l.preactivation(g, h, n.state[d])
		if err != nil {
			return nil, fmt.Errorf("hidden layer %d: %w", d, err)
		}
		h = g.Relu(a)
		next[d] = h
	}

	out, err := affine(g, n.decoderW, h, n.decoderB)
	if err != nil {
		return nil, fmt.Errorf("decoder: %w", err)
	}
	n.state = next
	return out, nil
}
