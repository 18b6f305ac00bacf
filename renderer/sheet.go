package renderer

import (
	"github.com/BiagiVarnoux/costsheet"
	"golang.org/x/text/language"
)

// Sheet is the display model of a computed grid.
type Sheet struct {
	Title   string
	Columns []string // column letters
	Rows    []SheetRow
	Errors  []CellError // cells whose formula failed, row-major
}

// SheetRow is one displayed row, Number is 1-based.
type SheetRow struct {
	Number int
	Cells  []string
}

// CellError describes a cell whose evaluation failed.
type CellError struct {
	Key     string
	Formula string
	Message string
}

// SheetOptions holds configuration for rendering a sheet.
type SheetOptions struct {
	Title    string
	Format   costsheet.NumberFormat // zero value means costsheet.DefaultNumberFormat
	Currency string                 // ISO code used for price cells, plain numbers when empty
}

// NewSheet builds the display model of g. g is expected to be recalculated;
// a cell never computed shows its raw content.
func NewSheet(g *costsheet.Grid, opts SheetOptions) *Sheet {
	if opts.Format.Locale == language.Und && opts.Format.Decimals == 0 {
		opts.Format = costsheet.DefaultNumberFormat
	}
	s := &Sheet{Title: opts.Title}
	for col := 0; col < g.Cols(); col++ {
		s.Columns = append(s.Columns, costsheet.ColumnToLetter(col))
	}
	for row := 0; row < g.Rows(); row++ {
		r := SheetRow{Number: row + 1, Cells: make([]string, g.Cols())}
		for col := range r.Cells {
			c := g.Cell(row, col)
			r.Cells[col] = escapeCell(display(c, opts))
			if c.Error != "" {
				s.Errors = append(s.Errors, CellError{Key: c.Key(), Formula: c.Formula, Message: c.Error})
			}
		}
		s.Rows = append(s.Rows, r)
	}
	return s
}

func display(c costsheet.Cell, opts SheetOptions) string {
	if c.Error != "" {
		return costsheet.ErrorSentinel
	}
	switch v := c.Computed.(type) {
	case nil:
		return c.Raw
	case float64:
		if c.Type == costsheet.TypePrice && opts.Currency != "" {
			return costsheet.FormatMoney(v, opts.Currency)
		}
		return opts.Format.Format(v)
	case string:
		if c.Type == costsheet.TypeHeader && v != "" {
			return "**" + v + "**"
		}
		return v
	default:
		return opts.Format.Format(v)
	}
}
