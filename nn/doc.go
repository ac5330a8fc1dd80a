// Copyright 2025 Recur Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides small neural networks trained by reverse-mode
// automatic differentiation.
//
// # Overview
//
// This package contains:
//   - DNN: feed-forward network with tanh hidden layers
//   - BNN: DNN whose input is perturbed by Gaussian noise on every pass
//   - RNN: recurrent network with relu hidden layers
//   - LSTM: gated recurrent network
//   - Utilities: Config, Train, PredictBatch, Save/Load
//
// # Basic Usage
//
//	import "github.com/recur-ml/recur/nn"
//
//	func main() {
//	    net, err := nn.NewDNN(nn.Config{
//	        Architecture: nn.Architecture{InputSize: 2, HiddenUnits: []int{3}, OutputSize: 3},
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    net.SetTrainability(true)
//
//	    for i := 0; i < 1000; i++ {
//	        net.Forward([]float64{0, 1})
//	        net.Backward([]float64{0, 1, 0})
//	    }
//	}
//
// # Training Sets
//
// Train draws samples at random and stops once the loss falls below the
// configured threshold:
//
//	set := nn.NewTrainingSet(
//	    nn.Sample{Input: []float64{0, 1}, Output: []float64{0, 1, 0}},
//	    nn.Sample{Input: []float64{1, 0}, Output: []float64{1, 0, 1}},
//	)
//	res, err := nn.Train(net, set, nn.TrainOptions{})
//
// # Recurrent Networks
//
// RNN and LSTM keep hidden state between Forward calls. Backward propagates
// through every step since the previous Backward; ResetState starts a new
// sequence.
//
// # Checkpoints
//
// Save writes parameters and configuration to a .recur file; Load rebuilds
// the network:
//
//	err := nn.Save("model.recur", net, nil)
//	net, header, err := nn.Load("model.recur")
package nn
