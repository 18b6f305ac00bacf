package costsheet

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// Reducer computes a function result from its flattened numeric arguments.
// A range argument contributes one value per cell.
type Reducer func(args []float64) float64

// Registry is an immutable table of formula functions, keyed by upper-case name.
type Registry struct {
	funcs map[string]Reducer
}

// DefaultRegistry returns the built-in functions:
// SUM, AVERAGE, MIN, MAX, COUNT, ABS, ROUND and IF.
func DefaultRegistry() Registry { return builtins }

// With returns a copy of r where name resolves to fn.
func (r Registry) With(name string, fn Reducer) Registry {
	funcs := maps.Clone(r.funcs)
	if funcs == nil {
		funcs = make(map[string]Reducer)
	}
	funcs[strings.ToUpper(name)] = fn
	return Registry{funcs: funcs}
}

// Lookup finds a function by name, ignoring case.
func (r Registry) Lookup(name string) (Reducer, bool) {
	fn, ok := r.funcs[strings.ToUpper(name)]
	return fn, ok
}

// Names returns the sorted function names.
func (r Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.funcs))
}

var builtins = Registry{funcs: map[string]Reducer{
	"SUM":     sum,
	"AVERAGE": average,
	"MIN":     minimum,
	"MAX":     maximum,
	"COUNT":   count,
	"ABS":     abs,
	"ROUND":   round,
	"IF":      ifThenElse,
}}

func sum(args []float64) float64 {
	total := 0.0
	for _, v := range args {
		total += v
	}
	return total
}

func average(args []float64) float64 {
	if len(args) == 0 {
		return 0
	}
	return sum(args) / float64(len(args))
}

func minimum(args []float64) float64 {
	if len(args) == 0 {
		return 0
	}
	return slices.Min(args)
}

func maximum(args []float64) float64 {
	if len(args) == 0 {
		return 0
	}
	return slices.Max(args)
}

func count(args []float64) float64 {
	n := 0
	for _, v := range args {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			n++
		}
	}
	return float64(n)
}

func abs(args []float64) float64 {
	if len(args) == 0 {
		return 0
	}
	return math.Abs(args[0])
}

// round rounds to the nearest integer, halves toward positive infinity.
func round(args []float64) float64 {
	if len(args) == 0 {
		return 0
	}
	return math.Floor(args[0] + 0.5)
}

func ifThenElse(args []float64) float64 {
	arg := func(i int) float64 {
		if i < len(args) {
			return args[i]
		}
		return 0
	}
	if cond := arg(0); cond != 0 && !math.IsNaN(cond) {
		return arg(1)
	}
	return arg(2)
}
