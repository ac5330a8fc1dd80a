package nn

import (
	"fmt"

	"github.com/recur-ml/recur/internal/autodiff"
	"github.com/recur-ml/recur/internal/mat"
	"github.com/recur-ml/recur/internal/serialization"
	"github.com/recur-ml/recur/internal/stats"
)

// base carries the state every architecture shares: configuration, the
// graph, the random source and the parameter registry.
type base struct {
	cfg       Config
	kind      string
	graph     *autodiff.Graph
	sampler   stats.Sampler
	params    []*Parameter
	byName    map[string]*Parameter
	trainable bool
	output    *mat.Matrix // Output of the last Forward, consumed by Backward
}

func newBase(kind string, cfg Config) (base, error) {
	if err := cfg.Validate(); err != nil {
		return base{}, err
	}
	cfg = cfg.withDefaults()
	rng := samplerFor(cfg.Seed)
	return base{
		cfg:     cfg,
		kind:    kind,
		graph:   autodiff.NewGraph(autodiff.WithSampler(rng)),
		sampler: rng,
		byName:  make(map[string]*Parameter),
	}, nil
}

// samplerFor returns a deterministic sampler for non-zero seeds.
func samplerFor(seed int64) stats.Sampler {
	if seed == 0 {
		return stats.Default()
	}
	return stats.New(seed)
}

// register adds m to the parameter list under name and returns it.
func (b *base) register(name string, m *mat.Matrix) *mat.Matrix {
	p := NewParameter(name, m)
	b.params = append(b.params, p)
	b.byName[name] = p
	return m
}

// Parameters returns all trainable parameters in registration order.
func (b *base) Parameters() []*Parameter {
	return append([]*Parameter(nil), b.params...)
}

// Parameter looks up a parameter by name.
func (b *base) Parameter(name string) (*Parameter, bool) {
	p, ok := b.byName[name]
	return p, ok
}

// Config returns a copy of the effective configuration.
func (b *base) Config() Config {
	c := b.cfg
	c.Architecture.HiddenUnits = append([]int(nil), b.cfg.Architecture.HiddenUnits...)
	return c
}

// Graph returns the network's computation graph.
func (b *base) Graph() *autodiff.Graph {
	return b.graph
}

// Kind names the architecture.
func (b *base) Kind() string {
	return b.kind
}

// SetTrainability toggles gradient recording. Disabling it also drops any
// operations recorded so far.
func (b *base) SetTrainability(trainable bool) {
	b.trainable = trainable
	b.graph.MemorizeOperationSequence(trainable)
	if !trainable {
		b.graph.ForgetCurrentSequence()
	}
}

// IsTrainable reports whether gradients are recorded.
func (b *base) IsTrainable() bool {
	return b.trainable
}

// Update applies gradient descent to every parameter and clears gradients.
func (b *base) Update(alpha float64) {
	for _, p := range b.params {
		p.Update(alpha)
	}
}

// Backward uses the configured learning rate.
func (b *base) Backward(expected []float64) (float64, error) {
	return b.BackwardWithAlpha(expected, b.cfg.Training.Alpha)
}

// BackwardWithAlpha computes the squared loss of the last output and, when
// trainable, replays the graph and updates all parameters with alpha.
func (b *base) BackwardWithAlpha(expected []float64, alpha float64) (float64, error) {
	if b.output == nil {
		return 0, ErrNoForwardPass
	}

	loss, err := SquaredLoss(b.output, expected, b.cfg.Training.LossClipping, b.trainable)
	if err != nil {
		return 0, err
	}
	if b.trainable {
		b.graph.Backward()
		b.Update(alpha)
	}
	b.output = nil
	return loss, nil
}

// StateDict returns copies of all parameter matrices keyed by name.
func (b *base) StateDict() serialization.StateDict {
	dict := make(serialization.StateDict, len(b.params))
	for _, p := range b.params {
		dict[p.Name()] = p.Matrix().Clone()
	}
	return dict
}

// LoadStateDict copies parameter values from dict. Every parameter must be
// present with a matching shape; nothing is modified otherwise.
func (b *base) LoadStateDict(dict serialization.StateDict) error {
	for _, p := range b.params {
		m, err := dict.Matrix(p.Name())
		if err != nil {
			return err
		}
		if !m.Shape().Equal(p.Matrix().Shape()) {
			return fmt.Errorf("%w: parameter %q is %s, state dict has %s",
				mat.ErrShapeMismatch, p.Name(), p.Matrix().Shape(), m.Shape())
		}
	}
	for _, p := range b.params {
		copy(p.Matrix().Data(), dict[p.Name()].Data())
		p.ZeroGrad()
	}
	return nil
}

// inputVector converts input into a column vector of the configured width.
func (b *base) inputVector(input []float64) (*mat.Matrix, error) {
	if len(input) != b.cfg.Architecture.InputSize {
		return nil, fmt.Errorf("%w: input has %d values, network expects %d",
			mat.ErrShapeMismatch, len(input), b.cfg.Architecture.InputSize)
	}
	return mat.ColumnVector(input), nil
}

// affine computes W x + bias on g.
func affine(g *autodiff.Graph, w, x, bias *mat.Matrix) (*mat.Matrix, error) {
	wx, err := g.Mul(w, x)
	if err != nil {
		return nil, err
	}
	return g.Add(wx, bias)
}
