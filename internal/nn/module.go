// Package nn implements the network architectures trained through the
// computation graph:
//   - DNN: deep feed-forward network with tanh hidden layers
//   - BNN: DNN whose input is perturbed by Gaussian noise on every pass
//   - RNN: deep recurrent network with relu hidden layers
//   - LSTM: deep gated recurrent network
//
// Every architecture owns its parameter matrices and a private Graph. The
// training cycle per sample is Forward, then Backward with the expected
// output, which seeds the squared-loss gradient, replays the graph and
// applies gradient descent when the network is trainable.
package nn

import (
	"github.com/recur-ml/recur/internal/autodiff"
	"github.com/recur-ml/recur/internal/mat"
	"github.com/recur-ml/recur/internal/serialization"
)

// Net is the contract shared by all architectures.
type Net interface {
	// Forward computes the output vector for input.
	Forward(input []float64) ([]float64, error)

	// Backward computes the squared loss of the last Forward output against
	// expected. When the network is trainable it also backpropagates and
	// updates every parameter with the configured learning rate.
	Backward(expected []float64) (float64, error)

	// BackwardWithAlpha is Backward with an explicit learning rate.
	BackwardWithAlpha(expected []float64, alpha float64) (float64, error)

	// Update applies gradient descent to every parameter and clears gradients.
	Update(alpha float64)

	// SetTrainability toggles gradient recording.
	SetTrainability(trainable bool)

	// IsTrainable reports whether gradients are recorded.
	IsTrainable() bool

	// Parameters returns all trainable parameters in a stable order.
	Parameters() []*Parameter

	// Config returns the configuration the network was built from.
	Config() Config

	// Kind names the architecture ("dnn", "bnn", "rnn", "lstm").
	Kind() string

	// StateDict returns the parameter matrices keyed by name.
	StateDict() serialization.StateDict

	// LoadStateDict copies values from dict into the parameters.
	LoadStateDict(dict serialization.StateDict) error
}

// Predictor is implemented by stateless networks whose inference does not
// touch shared mutable state and can therefore run concurrently.
type Predictor interface {
	Predict(input []float64) ([]float64, error)
}

// Recurrent is implemented by networks that carry hidden state between
// Forward calls.
type Recurrent interface {
	Net

	// ResetState clears the hidden state and any recorded operations.
	ResetState()

	// StepMatrix advances one time step on a column-vector input and returns
	// the decoder output, recorded on Graph while trainable.
	StepMatrix(x *mat.Matrix) (*mat.Matrix, error)

	// Graph returns the network's computation graph.
	Graph() *autodiff.Graph
}

var (
	_ Net       = (*DNN)(nil)
	_ Net       = (*BNN)(nil)
	_ Predictor = (*DNN)(nil)
	_ Predictor = (*BNN)(nil)
	_ Recurrent = (*RNN)(nil)
	_ Recurrent = (*LSTM)(nil)
)
