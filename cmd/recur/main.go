// Package main provides the recur CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("recur %s\n", version)
		return
	case "train":
		err = runTrain(os.Args[2:])
	case "predict":
		err = runPredict(os.Args[2:])
	case "textgen":
		err = runTextgen(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "recur %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("recur - autodiff and recurrent networks for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  train      Train a network on a YAML sample file")
	fmt.Println("  predict    Run a saved network on input vectors")
	fmt.Println("  textgen    Train a character or BPE sequence model and sample from it")
	fmt.Println("")
	fmt.Println("Run 'recur <command> -h' for command flags.")
}
