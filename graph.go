package costsheet

import "slices"

// DependencyGraph links every formula cell of a grid to the cells its formula
// reads (its precedents) and back (its dependents).
type DependencyGraph struct {
	keys       []string            // formula cells, row-major
	precedents map[string][]string // cell -> cells it reads, in order of first appearance
	dependents map[string][]string // cell -> formula cells reading it
	broken     map[string]error    // formula cells whose references do not parse
}

// NewDependencyGraph builds the dependency graph of the formula cells of g.
func NewDependencyGraph(g *Grid) *DependencyGraph {
	dg := &DependencyGraph{
		precedents: make(map[string][]string),
		dependents: make(map[string][]string),
		broken:     make(map[string]error),
	}
	for _, c := range g.sorted() {
		if !c.IsFormula() {
			continue
		}
		key := c.Key()
		dg.keys = append(dg.keys, key)
		refs, err := References(c.Formula)
		if err != nil {
			dg.broken[key] = err
			continue
		}
		seen := make(map[string]bool, len(refs))
		for _, a := range refs {
			ref := a.Key()
			if seen[ref] {
				continue
			}
			seen[ref] = true
			dg.precedents[key] = append(dg.precedents[key], ref)
			dg.dependents[ref] = append(dg.dependents[ref], key)
		}
	}
	return dg
}

// Precedents returns the cells read by the formula in key.
func (dg *DependencyGraph) Precedents(key string) []string {
	return slices.Clone(dg.precedents[key])
}

// Dependents returns the formula cells reading key.
func (dg *DependencyGraph) Dependents(key string) []string {
	return slices.Clone(dg.dependents[key])
}

// Order returns the formula cells in evaluation order, every cell after the
// formula cells it reads, and the set of cells that belong to a cycle. Cells
// of a cycle are still listed, after everything they can reach.
func (dg *DependencyGraph) Order() (order []string, cyclic map[string]bool) {
	isFormula := make(map[string]bool, len(dg.keys))
	for _, k := range dg.keys {
		isFormula[k] = true
	}

	// Tarjan's strongly connected components. Components come out with their
	// precedents first, which is the evaluation order.
	var (
		index   = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		stack   []string
		next    int
	)
	cyclic = make(map[string]bool)

	var visit func(key string)
	visit = func(key string) {
		index[key], lowlink[key] = next, next
		next++
		stack = append(stack, key)
		onStack[key] = true

		for _, p := range dg.precedents[key] {
			if !isFormula[p] {
				continue
			}
			if _, seen := index[p]; !seen {
				visit(p)
				lowlink[key] = min(lowlink[key], lowlink[p])
			} else if onStack[p] {
				lowlink[key] = min(lowlink[key], index[p])
			}
		}

		if lowlink[key] != index[key] {
			return
		}
		var component []string
		for {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[top] = false
			component = append(component, top)
			if top == key {
				break
			}
		}
		if len(component) > 1 || slices.Contains(dg.precedents[key], key) {
			for _, k := range component {
				cyclic[k] = true
			}
		}
		slices.Reverse(component)
		order = append(order, component...)
	}

	for _, k := range dg.keys {
		if _, seen := index[k]; !seen {
			visit(k)
		}
	}
	return order, cyclic
}
