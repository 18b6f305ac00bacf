// Package xlsx exchanges sheets with spreadsheet applications through .xlsx workbooks.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/BiagiVarnoux/costsheet"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet used when none is named.
const DefaultSheet = "Sheet1"

// Export writes g to w as a workbook holding a single worksheet. Formulas are
// written with their computed value cached, plain numbers as numbers.
func Export(w io.Writer, g *costsheet.Grid, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()
	if sheet != DefaultSheet {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return fmt.Errorf("cannot create worksheet %q: %w", sheet, err)
		}
		f.SetActiveSheet(idx)
		if err := f.DeleteSheet(DefaultSheet); err != nil {
			return fmt.Errorf("cannot remove worksheet %q: %w", DefaultSheet, err)
		}
	}

	for _, e := range costsheet.ToFlatList(g) {
		cell, err := excelize.CoordinatesToCellName(e.Col+1, e.Row+1)
		if err != nil {
			return fmt.Errorf("cell (%d, %d) does not fit in a worksheet: %w", e.Row, e.Col, err)
		}
		c := g.Cell(e.Row, e.Col)
		var value any = c.Computed
		if e.Formula == "" {
			value = e.Value
			if n, ok := costsheet.ParseNumber(e.Value); ok {
				value = n
			}
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("cannot write %s: %w", cell, err)
		}
		// The formula goes last, setting a value drops it.
		if e.Formula != "" {
			if err := f.SetCellFormula(sheet, cell, strings.TrimPrefix(e.Formula, "=")); err != nil {
				return fmt.Errorf("cannot write formula in %s: %w", cell, err)
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}

// Import reads a worksheet of the workbook in r, the active one when sheet is
// empty, and returns it as a recalculated grid. Cells with a formula keep the
// formula, other cells their raw value.
func Import(r io.Reader, sheet string) (*costsheet.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no worksheet")
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("cannot read worksheet %q: %w", sheet, err)
	}

	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	if err := costsheet.CheckExtent(len(rows), cols); err != nil {
		return nil, fmt.Errorf("worksheet %q is too large: %w", sheet, err)
	}
	g := costsheet.NewGrid(len(rows), cols)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			formula, err := f.GetCellFormula(sheet, cell)
			if err != nil {
				return nil, fmt.Errorf("cannot read formula in %s: %w", cell, err)
			}
			content := value
			if formula != "" {
				content = "=" + formula
			}
			if content == "" {
				continue
			}
			if err := g.Set(r, c, content); err != nil {
				return nil, err
			}
		}
	}
	return costsheet.Recalculate(g), nil
}
