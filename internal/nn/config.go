package nn

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Errors returned by network construction and training.
var (
	ErrInvalidConfiguration = errors.New("invalid network configuration")
	ErrNoForwardPass        = errors.New("backward called without a preceding forward pass")
	ErrUnknownArchitecture  = errors.New("unknown architecture")
)

// DefaultInputStd is the input noise used by BNN when none is configured.
const DefaultInputStd = 1e-3

// Architecture describes layer widths.
type Architecture struct {
	InputSize   int     `yaml:"inputSize"`
	HiddenUnits []int   `yaml:"hiddenUnits,flow"`
	OutputSize  int     `yaml:"outputSize"`
	InputStd    float64 `yaml:"inputStd,omitempty"` // BNN only
}

// Training holds the gradient-descent hyperparameters.
type Training struct {
	Alpha        float64 `yaml:"alpha"`        // Learning rate used by Backward
	LossClipping float64 `yaml:"lossClipping"` // Bound on the seeded output gradient (0 disables)
	Loss         float64 `yaml:"loss"`         // Early-stop threshold for Train
	Iterations   int     `yaml:"iterations"`   // Step budget for Train
}

// Config is the full network configuration.
type Config struct {
	Architecture Architecture `yaml:"architecture"`
	Training     Training     `yaml:"training"`
	Seed         int64        `yaml:"seed,omitempty"` // 0 selects a time-seeded sampler
}

// DefaultTraining returns the default hyperparameters.
func DefaultTraining() Training {
	return Training{
		Alpha:        0.01,
		LossClipping: 5,
		Loss:         1e-11,
		Iterations:   10000,
	}
}

// withDefaults fills zero-valued training fields.
func (c Config) withDefaults() Config {
	def := DefaultTraining()
	if c.Training.Alpha == 0 {
		c.Training.Alpha = def.Alpha
	}
	if c.Training.LossClipping == 0 {
		c.Training.LossClipping = def.LossClipping
	}
	if c.Training.Loss == 0 {
		c.Training.Loss = def.Loss
	}
	if c.Training.Iterations == 0 {
		c.Training.Iterations = def.Iterations
	}
	c.Architecture.HiddenUnits = append([]int(nil), c.Architecture.HiddenUnits...)
	return c
}

// Validate reports ErrInvalidConfiguration for non-positive widths, an empty
// hidden layer list or negative hyperparameters.
func (c Config) Validate() error {
	a := c.Architecture
	if a.InputSize <= 0 {
		return fmt.Errorf("%w: inputSize must be positive, got %d", ErrInvalidConfiguration, a.InputSize)
	}
	if a.OutputSize <= 0 {
		return fmt.Errorf("%w: outputSize must be positive, got %d", ErrInvalidConfiguration, a.OutputSize)
	}
	if len(a.HiddenUnits) == 0 {
		return fmt.Errorf("%w: at least one hidden layer is required", ErrInvalidConfiguration)
	}
	for i, h := range a.HiddenUnits {
		if h <= 0 {
			return fmt.Errorf("%w: hiddenUnits[%d] must be positive, got %d", ErrInvalidConfiguration, i, h)
		}
	}
	if a.InputStd < 0 {
		return fmt.Errorf("%w: inputStd must not be negative", ErrInvalidConfiguration)
	}
	t := c.Training
	if t.Alpha < 0 || t.LossClipping < 0 || t.Loss < 0 || t.Iterations < 0 {
		return fmt.Errorf("%w: training parameters must not be negative", ErrInvalidConfiguration)
	}
	return nil
}

// ParseConfig decodes a YAML configuration.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c.withDefaults(), nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	//nolint:gosec // G304: File path comes from user input
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// MarshalYAMLBytes encodes c as YAML.
func (c Config) MarshalYAMLBytes() ([]byte, error) {
	return yaml.Marshal(c)
}
