package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/recur-ml/recur/internal/dataset"
	"github.com/recur-ml/recur/internal/nn"
	"github.com/recur-ml/recur/internal/serialization"
)

// runTrain trains a network described by a YAML config. The sample list may
// live in the same file under "samples" or in a separate -samples file.
func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML network configuration (required)")
	samplesPath := fs.String("samples", "", "YAML sample file (default: the config file)")
	arch := fs.String("arch", "dnn", "Architecture: dnn, bnn, rnn or lstm")
	savePath := fs.String("save", "", "Write the trained network to this .recur file")
	iterations := fs.Int("iterations", 0, "Override training.iterations")
	alpha := fs.Float64("alpha", 0, "Override training.alpha")
	every := fs.Int("progress", 1000, "Log the loss every N iterations")
	keepGoing := fs.Bool("no-early-stop", false, "Run every iteration even after the loss threshold is met")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return fmt.Errorf("-config is required")
	}
	if *samplesPath == "" {
		*samplesPath = *configPath
	}

	cfg, err := nn.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	set, err := dataset.Load(*samplesPath)
	if err != nil {
		return err
	}

	net, err := nn.New(*arch, cfg)
	if err != nil {
		return err
	}
	a := cfg.Architecture
	log.Printf("training %s %d->%v->%d on %d samples", net.Kind(), a.InputSize, a.HiddenUnits, a.OutputSize, set.Len())

	res, err := nn.Train(net, set, nn.TrainOptions{
		Iterations:    *iterations,
		Alpha:         *alpha,
		NoEarlyStop:   *keepGoing,
		ProgressEvery: *every,
		Progress: func(i int, loss float64) {
			log.Printf("iteration %d: loss %.3e", i, loss)
		},
	})
	if err != nil {
		return err
	}
	log.Printf("finished after %d iterations: loss %.3e (converged: %t)", res.Iterations, res.Loss, res.Converged)

	for i := 0; i < set.Len(); i++ {
		in, _ := set.Input(i)
		want, _ := set.ExpectedOutput(i)
		if r, ok := net.(nn.Recurrent); ok {
			r.ResetState()
		}
		got, err := net.Forward(in)
		if err != nil {
			return err
		}
		fmt.Printf("%v -> %.6f (expected %v)\n", in, got, want)
	}

	if *savePath == "" {
		return nil
	}
	used := *alpha
	if used == 0 {
		used = cfg.Training.Alpha
	}
	meta := &serialization.TrainingMeta{Iterations: res.Iterations, Loss: res.Loss, Alpha: used}
	if err := nn.Save(*savePath, net, meta); err != nil {
		return err
	}
	log.Printf("saved %s", *savePath)
	return nil
}
