package nn

import (
	"fmt"
	"strings"

	"github.com/recur-ml/recur/internal/serialization"
)

// Architectures lists the names accepted by New.
var Architectures = []string{"dnn", "bnn", "rnn", "lstm"}

// New creates a network by architecture name.
func New(kind string, cfg Config) (Net, error) {
	switch strings.ToLower(kind) {
	case "dnn":
		return NewDNN(cfg)
	case "bnn":
		return NewBNN(cfg)
	case "rnn":
		return NewRNN(cfg)
	case "lstm":
		return NewLSTM(cfg)
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownArchitecture, kind, strings.Join(Architectures, ", "))
	}
}

// Save writes net's parameters and configuration to a .recur file.
//
// training may be nil. The configuration is embedded as YAML so Load can
// rebuild the network without any other input.
//
// Example:
//
//	err := nn.Save("model.recur", net, &serialization.TrainingMeta{Iterations: res.Iterations, Loss: res.Loss})
func Save(path string, net Net, training *serialization.TrainingMeta) error {
	cfgYAML, err := net.Config().MarshalYAMLBytes()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	header := serialization.Header{
		ModelType: net.Kind(),
		Config:    string(cfgYAML),
		Training:  training,
	}
	if err := serialization.WriteFile(path, net.StateDict(), header); err != nil {
		return fmt.Errorf("failed to save %s: %w", net.Kind(), err)
	}
	return nil
}

// Load rebuilds a network saved with Save.
//
// The returned network is not trainable; call SetTrainability(true) to
// resume training.
func Load(path string) (Net, *serialization.Header, error) {
	f, err := serialization.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := ParseConfig([]byte(f.Header.Config))
	if err != nil {
		return nil, nil, fmt.Errorf("checkpoint config: %w", err)
	}
	net, err := New(f.Header.ModelType, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := net.LoadStateDict(f.Matrices); err != nil {
		return nil, nil, fmt.Errorf("failed to load state dict: %w", err)
	}
	return net, &f.Header, nil
}
