// Copyright 2025 Recur Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/recur-ml/recur/internal/dataset"
	"github.com/recur-ml/recur/internal/nn"
	"github.com/recur-ml/recur/internal/parallel"
	"github.com/recur-ml/recur/internal/serialization"
)

// Net is the contract shared by all architectures.
type Net = nn.Net

// Predictor is implemented by networks whose inference is safe to run
// concurrently.
type Predictor = nn.Predictor

// Recurrent is implemented by networks that carry hidden state.
type Recurrent = nn.Recurrent

// Parameter is a named trainable matrix.
type Parameter = nn.Parameter

// Configuration

// Config is the full network configuration.
type Config = nn.Config

// Architecture describes layer widths.
type Architecture = nn.Architecture

// Training holds the gradient-descent hyperparameters.
type Training = nn.Training

// DefaultTraining returns the default hyperparameters.
func DefaultTraining() Training {
	return nn.DefaultTraining()
}

// ParseConfig decodes a YAML configuration.
func ParseConfig(data []byte) (Config, error) {
	return nn.ParseConfig(data)
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	return nn.LoadConfig(path)
}

// Errors returned by construction and training.
var (
	ErrInvalidConfiguration = nn.ErrInvalidConfiguration
	ErrNoForwardPass        = nn.ErrNoForwardPass
	ErrUnknownArchitecture  = nn.ErrUnknownArchitecture
)

// Architectures

// DNN is a deep feed-forward network.
type DNN = nn.DNN

// BNN is a DNN with Gaussian input noise.
type BNN = nn.BNN

// RNN is a deep recurrent network.
type RNN = nn.RNN

// LSTM is a deep long short-term memory network.
type LSTM = nn.LSTM

// NewDNN creates a feed-forward network.
func NewDNN(cfg Config) (*DNN, error) {
	return nn.NewDNN(cfg)
}

// NewBNN creates a feed-forward network with noisy inputs.
func NewBNN(cfg Config) (*BNN, error) {
	return nn.NewBNN(cfg)
}

// NewRNN creates a recurrent network.
func NewRNN(cfg Config) (*RNN, error) {
	return nn.NewRNN(cfg)
}

// NewLSTM creates a gated recurrent network.
func NewLSTM(cfg Config) (*LSTM, error) {
	return nn.NewLSTM(cfg)
}

// New creates a network by architecture name ("dnn", "bnn", "rnn", "lstm").
func New(kind string, cfg Config) (Net, error) {
	return nn.New(kind, cfg)
}

// Training

// Sample is one input vector with its expected output vector.
type Sample = dataset.Sample

// TrainingSet is an ordered collection of samples.
type TrainingSet = dataset.TrainingSet

// NewTrainingSet creates a training set holding copies of samples.
func NewTrainingSet(samples ...Sample) *TrainingSet {
	return dataset.New(samples...)
}

// LoadTrainingSet reads a YAML file with a top-level samples list.
func LoadTrainingSet(path string) (*TrainingSet, error) {
	return dataset.Load(path)
}

// TrainOptions controls Train.
type TrainOptions = nn.TrainOptions

// TrainResult summarizes a Train run.
type TrainResult = nn.TrainResult

// Train runs stochastic gradient descent over set.
func Train(net Net, set *TrainingSet, opts TrainOptions) (TrainResult, error) {
	return nn.Train(net, set, opts)
}

// Inference

// ParallelConfig controls PredictBatch fan-out.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns defaults based on CPU count.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// PredictBatch evaluates p on every input concurrently, in input order.
func PredictBatch(p Predictor, inputs [][]float64, cfg ParallelConfig) ([][]float64, error) {
	return nn.PredictBatch(p, inputs, cfg)
}

// Checkpoints

// Header is the metadata stored in a checkpoint.
type Header = serialization.Header

// TrainingMeta records training progress in a checkpoint.
type TrainingMeta = serialization.TrainingMeta

// Save writes net's parameters and configuration to path.
func Save(path string, net Net, training *TrainingMeta) error {
	return nn.Save(path, net, training)
}

// Load rebuilds a network saved with Save.
func Load(path string) (Net, *Header, error) {
	return nn.Load(path)
}
