package costsheet

import (
	"fmt"
	"slices"
	"strings"
)

// Value is a computed cell value: nil until the first recalculation, then a
// float64 for numbers or a string for text and the error sentinel.
type Value any

// Cell is one cell of a grid.
type Cell struct {
	Row     int
	Col     int
	Raw     string   // content as typed
	Formula string   // set only when the content starts with "="
	Type    CellType // advisory

	Computed Value  // last derived value
	Error    string // message of the last evaluation failure, if any
}

// Key returns the cell key.
func (c *Cell) Key() string { return CellKey(c.Row, c.Col) }

// Touched reports whether the cell holds content worth persisting.
func (c *Cell) Touched() bool { return c.Raw != "" || c.Formula != "" }

// IsFormula reports whether the cell is driven by a formula.
func (c *Cell) IsFormula() bool { return c.Formula != "" }

// Grid is a sparse mapping from cell key to cell, with a declared extent.
// Keys absent from the mapping are empty cells.
type Grid struct {
	rows, cols int
	cells      map[string]*Cell
}

// MaxCells bounds the number of cells of a grid extent, and the number of
// cells a formula reads through ranges.
const MaxCells = 1 << 18

// CheckExtent reports whether a grid of rows by cols cells is allowed: both
// non-negative, within MaxRows and MaxCols, and at most MaxCells cells.
func CheckExtent(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return fmt.Errorf("%w: negative extent %dx%d", ErrExtent, rows, cols)
	}
	if rows > MaxRows || cols > MaxCols || int64(rows)*int64(cols) > MaxCells {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrExtent, rows, cols, MaxCells)
	}
	return nil
}

// NewGrid returns a grid of the given extent where every cell is a blank text
// cell. A negative size is taken as 0. It panics on an extent CheckExtent
// rejects; callers check extents that come from input.
func NewGrid(rows, cols int) *Grid {
	rows, cols = max(rows, 0), max(cols, 0)
	if err := CheckExtent(rows, cols); err != nil {
		panic(err)
	}
	g := &Grid{rows: rows, cols: cols, cells: make(map[string]*Cell, rows*cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.cells[CellKey(r, c)] = &Cell{Row: r, Col: c}
		}
	}
	return g
}

// Rows returns the number of rows of the grid extent.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns of the grid extent.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells stored in the mapping.
func (g *Grid) Len() int { return len(g.cells) }

// Resize changes the grid extent. Cells outside the new extent are kept in
// the mapping but are no longer exported. A negative size is taken as 0.
func (g *Grid) Resize(rows, cols int) error {
	rows, cols = max(rows, 0), max(cols, 0)
	if err := CheckExtent(rows, cols); err != nil {
		return err
	}
	g.rows, g.cols = rows, cols
	return nil
}

// Lookup returns a copy of the cell stored under key.
func (g *Grid) Lookup(key string) (Cell, bool) {
	c, ok := g.cells[key]
	if !ok {
		return Cell{}, false
	}
	return *c, true
}

// Cell returns a copy of the cell at (row, col). An absent cell is returned
// empty with its coordinates set.
func (g *Grid) Cell(row, col int) Cell {
	if c, ok := g.cells[CellKey(row, col)]; ok {
		return *c
	}
	return Cell{Row: row, Col: col}
}

// Touched reports whether the cell under key has content.
func (g *Grid) Touched(key string) bool {
	c, ok := g.cells[key]
	return ok && c.Touched()
}

// Set is the editor entry point: it stores content in the cell at (row, col).
// Content starting with "=" becomes the cell formula, anything else a plain
// value. The cell type defaults to formula, number or text unless it carries a
// domain type (header, price, quantity, product). Empty content clears the cell.
// The extent grows to include the cell; Set fails when it would exceed the
// limits of CheckExtent.
func (g *Grid) Set(row, col int, content string) error {
	c, err := g.touch(row, col)
	if err != nil {
		return err
	}
	c.Raw = content
	c.Formula = ""
	if strings.HasPrefix(content, "=") {
		c.Formula = content
	}
	if !c.Type.domain() {
		switch {
		case c.Formula != "":
			c.Type = TypeFormula
		case isNumeric(content):
			c.Type = TypeNumber
		default:
			c.Type = TypeText
		}
	}
	return nil
}

// SetType changes the advisory type of the cell at (row, col).
func (g *Grid) SetType(row, col int, t CellType) error {
	c, err := g.touch(row, col)
	if err != nil {
		return err
	}
	c.Type = t
	return nil
}

// put stores a cell as is, used by loaders.
func (g *Grid) put(c Cell) error {
	dst, err := g.touch(c.Row, c.Col)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}

func (g *Grid) touch(row, col int) (*Cell, error) {
	if row < 0 || col < 0 {
		return nil, fmt.Errorf("invalid cell coordinates (%d, %d)", row, col)
	}
	rows, cols := max(g.rows, row+1), max(g.cols, col+1)
	if err := CheckExtent(rows, cols); err != nil {
		return nil, fmt.Errorf("cell (%d, %d) out of bounds: %w", row, col, err)
	}
	if g.cells == nil {
		g.cells = make(map[string]*Cell)
	}
	key := CellKey(row, col)
	c, ok := g.cells[key]
	if !ok {
		c = &Cell{Row: row, Col: col}
		g.cells[key] = c
	}
	g.rows, g.cols = rows, cols
	return c, nil
}

// Keys returns every stored key in row-major order.
func (g *Grid) Keys() []string {
	list := g.sorted()
	keys := make([]string, len(list))
	for i, c := range list {
		keys[i] = c.Key()
	}
	return keys
}

// sorted returns the stored cells in row-major order.
func (g *Grid) sorted() []*Cell {
	list := make([]*Cell, 0, len(g.cells))
	for _, c := range g.cells {
		list = append(list, c)
	}
	slices.SortFunc(list, func(a, b *Cell) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return list
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	n := &Grid{rows: g.rows, cols: g.cols, cells: make(map[string]*Cell, len(g.cells))}
	for k, c := range g.cells {
		cp := *c
		n.cells[k] = &cp
	}
	return n
}

// numberAt resolves the cell under key to a number: its computed value when
// numeric-looking, else 0.
func (g *Grid) numberAt(key string) float64 {
	c, ok := g.cells[key]
	if !ok {
		return 0
	}
	switch v := c.Computed.(type) {
	case float64:
		return v
	case string:
		if f, ok := ParseNumber(v); ok {
			return f
		}
	}
	return 0
}
