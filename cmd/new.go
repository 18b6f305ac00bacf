package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/BiagiVarnoux/costsheet"
	"github.com/BiagiVarnoux/costsheet/store"
	"github.com/google/subcommands"
)

type newCmd struct {
	rows, cols int
	force      bool
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "creates an empty sheet" }
func (*newCmd) Usage() string {
	return `csh new [-rows <n>] [-cols <n>] [-f]

  Creates an empty sheet. The extent defaults to the grid section of the
  configuration. An existing sheet is only replaced with -f.

Usage Examples:
$ csh -sheet quote new -rows 30 -cols 6
`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.rows, "rows", 0, "Number of rows. Defaults to the configured grid rows.")
	f.IntVar(&c.cols, "cols", 0, "Number of columns. Defaults to the configured grid columns.")
	f.BoolVar(&c.force, "f", false, "Replace an existing sheet")
}

func (c *newCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.rows < 0 || c.cols < 0 {
		fmt.Fprintln(f.Output(), "Error: the extent must not be negative")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		if !c.force {
			_, err := s.store.Load(ctx, s.name)
			if err == nil {
				return fmt.Errorf("sheet %q already exists, use -f to replace it", s.name)
			}
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}
		rows, cols := c.rows, c.cols
		if rows == 0 {
			rows = s.cfg.Grid.Rows
		}
		if cols == 0 {
			cols = s.cfg.Grid.Cols
		}
		if err := costsheet.CheckExtent(rows, cols); err != nil {
			return err
		}
		if err := s.save(ctx, costsheet.NewGrid(rows, cols)); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Created sheet %q (%dx%d)\n", s.name, rows, cols)
		return nil
	})
}
