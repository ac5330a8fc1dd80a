package nn

import (
	"fmt"

	"github.com/recur-ml/recur/internal/mat"
)

// lstmLayer holds the four gate groups of one layer, each shaped like a
// plain recurrent layer.
type lstmLayer struct {
	input  recurrentUnit
	forget recurrentUnit
	output recurrentUnit
	cell   recurrentUnit
}

// LSTM is a deep long short-term memory network:
//
//	i = sig(input gate)   f = sig(forget gate)   o = sig(output gate)
//	g = tanh(cell gate)   c = f*c_prev + i*g     h = o*tanh(c)
//
// Forget-gate biases start at 1. Hidden and cell state persist between
// Forward calls until ResetState.
type LSTM struct {
	base
	layers   []lstmLayer
	decoderW *mat.Matrix // decoder.Wh: output x units[last]
	decoderB *mat.Matrix // decoder.b: output x 1
	hidden   []*mat.Matrix
	cells    []*mat.Matrix
}

// NewLSTM creates a gated recurrent network.
func NewLSTM(cfg Config) (*LSTM, error) {
	b, err := newBase("lstm", cfg)
	if err != nil {
		return nil, err
	}
	n := &LSTM{base: b}

	a := n.cfg.Architecture
	prev := a.InputSize
	for d, units := range a.HiddenUnits {
		prefix := fmt.Sprintf("hidden.%d", d)
		n.layers = append(n.layers, lstmLayer{
			input:  n.newRecurrentUnit(prefix+".input", units, prev, 0),
			forget: n.newRecurrentUnit(prefix+".forget", units, prev, 1),
			output: n.newRecurrentUnit(prefix+".output", units, prev, 0),
			cell:   n.newRecurrentUnit(prefix+".cell", units, prev, 0),
		})
		prev = units
	}
	n.decoderW = n.register("decoder.Wh", Xavier(a.OutputSize, prev, n.sampler))
	n.decoderB = n.register("decoder.b", Zeros(a.OutputSize, 1))
	return n, nil
}

// ResetState zeroes hidden and cell state and drops recorded operations.
func (n *LSTM) ResetState() {
	n.hidden = nil
	n.cells = nil
	n.output = nil
	n.graph.ForgetCurrentSequence()
}

// Forward advances one time step.
func (n *LSTM) Forward(input []float64) ([]float64, error) {
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
func (n *LSTM) StepMatrix(x *mat.Matrix) (*mat.Matrix, error) {
	if want := (mat.Shape{Rows: n.cfg.Architecture.InputSize, Cols: 1}); !x.Shape().Equal(want) {
		return nil, fmt.Errorf("%w: input is %s, want %s", mat.ErrShapeMismatch, x.Shape(), want)
	}
	if n.hidden == nil {
		n.hidden = make([]*mat.Matrix, len(n.layers))
		n.cells = make([]*mat.Matrix, len(n.layers))
		for d, units := range n.cfg.Architecture.HiddenUnits {
			n.hidden[d] = Zeros(units, 1)
			n.cells[d] = Zeros(units, 1)
		}
	}

	h := x
	nextHidden := make([]*mat.Matrix, len(n.layers))
	nextCells := make([]*mat.Matrix, len(n.layers))
	for d, l := range n.layers {
		hd, cd, err := n.cellStep(l, h, n.hidden[d], n.cells[d])
		if err != nil {
			return nil, fmt.Errorf("hidden layer %d: %w", d, err)
		}
		nextHidden[d], nextCells[d] = hd, cd
		h = hd
	}

	out, err := affine(n.graph, n.decoderW, h, n.decoderB)
	if err != nil {
		return nil, fmt.Errorf("decoder: %w", err)
	}
	n.hidden, n.cells = nextHidden, nextCells
	return out, nil
}

// cellStep computes one layer's new hidden and cell state.
func (n *LSTM) cellStep(l lstmLayer, x, hPrev, cPrev *mat.Matrix) (h, c *mat.Matrix, err error) {
	g := n.graph

	gate := func(u recurrentUnit, activate func(*mat.Matrix) *mat.Matrix) (*mat.Matrix, error) {
		a, err := u.preactivation(g, x, hPrev)
		if err != nil {
			return nil, err
		}
		return activate(a), nil
	}

	in, err := gate(l.input, g.Sig)
	if err != nil {
		return nil, nil, err
	}
	forget, err := gate(l.forget, g.Sig)
	if err != nil {
		return nil, nil, err
	}
	out, err := gate(l.output, g.Sig)
	if err != nil {
		return nil, nil, err
	}
	write, err := gate(l.cell, g.Tanh)
	if err != nil {
		return nil, nil, err
	}

	retained, err := g.Eltmul(forget, cPrev)
	if err != nil {
		return nil, nil, err
	}
	written, err := g.Eltmul(in, write)
	if err != nil {
		return nil, nil, err
	}
	c, err = g.Add(retained, written)
	if err != nil {
		return nil, nil, err
	}
	h, err = g.Eltmul(out, g.Tanh(c))
	if err != nil {
		return nil, nil, err
	}
	return h, c, nil
}
