package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/recur-ml/recur/internal/stats"
	"github.com/recur-ml/recur/internal/textgen"
	"github.com/recur-ml/recur/internal/tokenizer"
)

// runTextgen trains a sequence model on the non-empty lines of a text file
// and prints samples after every epoch.
func runTextgen(args []string) error {
	def := textgen.DefaultConfig()

	fs := flag.NewFlagSet("textgen", flag.ContinueOnError)
	corpusPath := fs.String("corpus", "", "Text file, one training sequence per line (required)")
	tokName := fs.String("tokenizer", "char", "char, or a tiktoken encoding such as cl100k_base")
	arch := fs.String("arch", def.Architecture, "Recurrent core: rnn or lstm")
	embed := fs.Int("embed", def.EmbedSize, "Embedding width")
	hidden := fs.String("hidden", "20,20", "Comma-separated hidden layer widths")
	alpha := fs.Float64("alpha", 0.05, "Learning rate")
	epochs := fs.Int("epochs", 10, "Passes over the corpus")
	samples := fs.Int("samples", 3, "Samples printed after each epoch")
	length := fs.Int("n", 80, "Maximum tokens per sample")
	prefix := fs.String("prefix", "", "Text every sample starts with")
	temperature := fs.Float64("temperature", 0.8, "Sampling temperature (0 = greedy)")
	seed := fs.Int64("seed", 1, "Random seed (0 = time based)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *corpusPath == "" {
		return fmt.Errorf("-corpus is required")
	}
	if *length < 0 {
		return fmt.Errorf("-n must not be negative, got %d", *length)
	}

	lines, err := readLines(*corpusPath)
	if err != nil {
		return err
	}
	tok, err := buildTokenizer(*tokName, lines)
	if err != nil {
		return err
	}
	units, err := parseVector(*hidden)
	if err != nil {
		return fmt.Errorf("-hidden: %w", err)
	}

	cfg := def
	cfg.Architecture = *arch
	cfg.EmbedSize = *embed
	cfg.HiddenUnits = make([]int, len(units))
	for i, u := range units {
		cfg.HiddenUnits[i] = int(u)
	}
	cfg.Training.Alpha = *alpha
	cfg.Seed = *seed

	model, err := textgen.New(tok, cfg)
	if err != nil {
		return err
	}
	log.Printf("%s model: %d lines, vocabulary %d", *arch, len(lines), tok.VocabSize())

	rng := stats.Default()
	if *seed != 0 {
		rng = stats.New(*seed)
	}
	for epoch := 1; epoch <= *epochs; epoch++ {
		var loss float64
		for range lines {
			res, err := model.TrainText(lines[rng.Randi(0, len(lines))])
			if err != nil {
				return err
			}
			loss += res.Loss
		}
		loss /= float64(len(lines))
		log.Printf("epoch %d/%d: loss %.4f, perplexity %.2f", epoch, *epochs, loss, math.Exp(loss))
		for s := 0; s < *samples; s++ {
			text, err := model.Generate(*prefix, *length, textgen.SamplingConfig{
				Temperature:   *temperature,
				RepeatPenalty: 1,
				Seed:          *seed + int64(epoch*100+s),
			})
			if err != nil {
				return err
			}
			fmt.Printf("  %q\n", text)
		}
	}
	return nil
}

func buildTokenizer(name string, corpus []string) (tokenizer.Tokenizer, error) {
	if name == "char" {
		return tokenizer.NewChar(corpus...), nil
	}
	return tokenizer.NewTikToken(name, corpus...)
}

// readLines returns the trimmed non-empty lines of path.
func readLines(path string) ([]string, error) {
	//nolint:gosec // G304: File path comes from user input
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("corpus %s has no non-empty lines", path)
	}
	return lines, nil
}
