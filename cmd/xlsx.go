package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/BiagiVarnoux/costsheet/xlsx"
	"github.com/google/subcommands"
)

type importXLSXCmd struct {
	sheet string
}

func (*importXLSXCmd) Name() string     { return "import-xlsx" }
func (*importXLSXCmd) Synopsis() string { return "replaces the sheet with a worksheet of a workbook" }
func (*importXLSXCmd) Usage() string {
	return `csh import-xlsx [-s <worksheet>] <file.xlsx>

  Replaces the sheet with the content of a worksheet, the active one by
  default. Formulas are kept as formulas, other cells as plain values.
`
}

func (c *importXLSXCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sheet, "s", "", "Worksheet to import. Defaults to the active one.")
}

func (c *importXLSXCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(f.Output(), "Error: a workbook file is required")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)
	return run(ctx, func(s *session) error {
		r, err := os.Open(path)
		if err != nil {
			return err
		}
		defer r.Close()
		g, err := xlsx.Import(r, c.sheet)
		if err != nil {
			return fmt.Errorf("cannot import %q: %w", path, err)
		}
		if err := s.save(ctx, g); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Imported %q into sheet %q (%dx%d)\n", path, s.name, g.Rows(), g.Cols())
		return nil
	})
}

type exportXLSXCmd struct {
	sheet  string
	strict bool
}

func (*exportXLSXCmd) Name() string     { return "export-xlsx" }
func (*exportXLSXCmd) Synopsis() string { return "writes the sheet to a workbook" }
func (*exportXLSXCmd) Usage() string {
	return `csh export-xlsx [-s <worksheet>] [-strict] <file.xlsx>

  Writes the sheet to a new workbook. Formulas are exported with their
  computed value.
`
}

func (c *exportXLSXCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sheet, "s", xlsx.DefaultSheet, "Name of the worksheet")
	f.BoolVar(&c.strict, "strict", false, "Recalculate in dependency order, detecting reference cycles")
}

func (c *exportXLSXCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(f.Output(), "Error: a workbook file is required")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)
	return run(ctx, func(s *session) error {
		g, err := s.load(ctx, s.mode(c.strict))
		if err != nil {
			return err
		}
		w, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := xlsx.Export(w, g, c.sheet); err != nil {
			w.Close()
			return fmt.Errorf("cannot export %q: %w", path, err)
		}
		if err := w.Close(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported sheet %q to %q\n", s.name, path)
		return nil
	})
}
