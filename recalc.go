package costsheet

import "fmt"

// Mode selects a recalculation strategy.
type Mode uint8

const (
	// TwoPass settles every plain cell first, then evaluates every formula
	// twice in row-major order. One level of formula-to-formula dependency is
	// guaranteed to settle; longer chains settle only when their cells are
	// laid out in evaluation order. Only a formula reading its own cell,
	// directly or through a range containing it, is reported as circular.
	TwoPass Mode = iota
	// Ordered evaluates each formula once, after the formulas it reads, and
	// reports every cell of a reference cycle as circular.
	Ordered
)

func (m Mode) String() string {
	if m == Ordered {
		return "ordered"
	}
	return "two-pass"
}

// Recalculate returns a copy of g where every cell's computed value and error
// reflect its content, using the TwoPass strategy. g is left untouched.
func Recalculate(g *Grid) *Grid { return defaultEvaluator.Recalculate(g, TwoPass) }

// RecalculateOrdered is like Recalculate with the Ordered strategy.
func RecalculateOrdered(g *Grid) *Grid { return defaultEvaluator.Recalculate(g, Ordered) }

// RecalculateMode recalculates g with the built-in functions and the given strategy.
func RecalculateMode(g *Grid, mode Mode) *Grid { return defaultEvaluator.Recalculate(g, mode) }

// Recalculate returns a recalculated copy of g.
func (e *Evaluator) Recalculate(g *Grid, mode Mode) *Grid {
	out := g.Clone()
	cells := out.sorted()
	if mode == Ordered {
		e.ordered(out, cells)
	} else {
		e.twoPass(out, cells)
	}
	return out
}

func (e *Evaluator) twoPass(g *Grid, cells []*Cell) {
	for _, c := range cells {
		if !c.IsFormula() {
			settle(c)
		}
	}
	// Pass 1 reads formula values already updated by cells visited earlier.
	for _, c := range cells {
		if c.IsFormula() {
			e.apply(g, c)
		}
	}
	// Pass 2 lets formulas pick up formula cells visited after them.
	for _, c := range cells {
		if c.IsFormula() {
			e.apply(g, c)
		}
	}
}

func (e *Evaluator) ordered(g *Grid, cells []*Cell) {
	for _, c := range cells {
		if !c.IsFormula() {
			settle(c)
		}
	}
	order, cyclic := NewDependencyGraph(g).Order()
	for _, key := range order {
		c := g.cells[key]
		if cyclic[key] {
			c.Computed = ErrorSentinel
			c.Error = fmt.Errorf("%w: %s is part of a reference cycle", ErrCircularReference, key).Error()
			continue
		}
		e.apply(g, c)
	}
}

// apply evaluates the formula of c against g and records the outcome.
func (e *Evaluator) apply(g *Grid, c *Cell) {
	res := e.Evaluate(c.Formula, g, c.Key())
	c.Computed, c.Error = res.Value, ""
	if res.Err != nil {
		c.Error = res.Err.Error()
	}
}

// settle derives the computed value of a plain cell from its raw content.
func settle(c *Cell) {
	c.Error = ""
	if f, ok := ParseNumber(c.Raw); ok {
		c.Computed = f
		return
	}
	c.Computed = c.Raw
}
