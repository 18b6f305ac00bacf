package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// argPredictors predicts the positional arguments of some commands.
var argPredictors = map[string]complete.Predictor{
	"type":        predict.Set{"text", "number", "formula", "header", "price", "quantity", "product"},
	"import-xlsx": predict.Files("*.xlsx"),
	"export-xlsx": predict.Files("*.xlsx"),
	"topic":       predict.Set{"*", "cells", "formulas", "storage"},
}

// Completion describes the csh command line for shell completion.
func Completion(commands []subcommands.Command) *complete.Command {
	root := &complete.Command{
		Sub: make(map[string]*complete.Command),
		Flags: map[string]complete.Predictor{
			"sheet":  predict.Files("*.jsonl"),
			"config": predict.Files("*.yaml"),
		},
	}
	for _, c := range commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor), Args: argPredictors[c.Name()]}
		fs.VisitAll(func(f *flag.Flag) {
			if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				sub.Flags[f.Name] = nil
				return
			}
			sub.Flags[f.Name] = predict.Something
		})
		root.Sub[c.Name()] = sub
	}
	return root
}
