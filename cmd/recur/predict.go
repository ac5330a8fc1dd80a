package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/recur-ml/recur/internal/nn"
	"github.com/recur-ml/recur/internal/parallel"
)

// runPredict evaluates a saved network. Each positional argument is one
// comma-separated input vector. Recurrent networks consume the arguments as
// one sequence; the others evaluate them in parallel.
func runPredict(args []string) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	modelPath := fs.String("model", "", "Path to a .recur file (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *modelPath == "" {
		return fmt.Errorf("-model is required")
	}

	net, header, err := nn.Load(*modelPath)
	if err != nil {
		return err
	}
	if header.Training != nil {
		fmt.Printf("# %s trained for %d iterations, loss %.3e\n", header.ModelType, header.Training.Iterations, header.Training.Loss)
	}

	inputs := make([][]float64, fs.NArg())
	for i, arg := range fs.Args() {
		if inputs[i], err = parseVector(arg); err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
	}

	var outputs [][]float64
	if p, ok := net.(nn.Predictor); ok {
		outputs, err = nn.PredictBatch(p, inputs, parallel.DefaultConfig())
		if err != nil {
			return err
		}
	} else {
		for _, in := range inputs {
			out, err := net.Forward(in)
			if err != nil {
				return err
			}
			outputs = append(outputs, out)
		}
	}

	for i, out := range outputs {
		fmt.Printf("%v -> %.6f\n", inputs[i], out)
	}
	return nil
}

// parseVector parses "0.5,1,-2" into a float slice.
func parseVector(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
