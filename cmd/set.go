package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BiagiVarnoux/costsheet"
	"github.com/google/subcommands"
)

type setCmd struct {
	strict bool
}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "sets the content of a cell" }
func (*setCmd) Usage() string {
	return `csh set [-strict] <cell> [<content>...]

  Sets the content of a cell, recalculates the sheet and saves it.
  Content starting with "=" is a formula, anything else a plain value.
  Without content the cell is cleared. The computed value is printed.

Usage Examples:
$ csh set A1 Freight
$ csh set B1 1,250.00
$ csh set C1 '=SUM(B1:B4)*1.2'
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Recalculate in dependency order, detecting reference cycles")
}

func (c *setCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Fprintln(f.Output(), "Error: a cell is required")
		return subcommands.ExitUsageError
	}
	row, col, err := parseCell(f.Arg(0))
	if err != nil {
		fmt.Fprintf(f.Output(), "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	content := strings.Join(f.Args()[1:], " ")

	return run(ctx, func(s *session) error {
		g, err := s.store.Load(ctx, s.name)
		if err != nil {
			return err
		}
		if err := g.Set(row, col, content); err != nil {
			return err
		}
		g = costsheet.RecalculateMode(g, s.mode(c.strict))
		if err := s.save(ctx, g); err != nil {
			return err
		}
		printCell(g.Cell(row, col))
		return nil
	})
}

// printCell prints the computed value of a cell, and its error if any.
func printCell(c costsheet.Cell) {
	if c.Error != "" {
		fmt.Fprintf(stdout, "%s = %s\n", c.Key(), costsheet.ErrorSentinel)
		fmt.Fprintf(os.Stderr, "%s: %s\n", c.Key(), c.Error)
		return
	}
	fmt.Fprintf(stdout, "%s = %s\n", c.Key(), costsheet.FormatNumber(c.Computed, 2))
}

type typeCmd struct{}

func (*typeCmd) Name() string     { return "type" }
func (*typeCmd) Synopsis() string { return "sets the type of a cell" }
func (*typeCmd) Usage() string {
	return `csh type <cell> <text|number|formula|header|price|quantity|product>

  Sets the advisory type of a cell. The type only changes how the cell is
  displayed: price cells use the configured currency, header cells are bold.
`
}

func (*typeCmd) SetFlags(*flag.FlagSet) {}

func (*typeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(f.Output(), "Error: a cell and a type are required")
		return subcommands.ExitUsageError
	}
	row, col, err := parseCell(f.Arg(0))
	if err != nil {
		fmt.Fprintf(f.Output(), "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	typ, err := costsheet.ParseCellType(f.Arg(1))
	if err != nil {
		fmt.Fprintf(f.Output(), "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return run(ctx, func(s *session) error {
		g, err := s.store.Load(ctx, s.name)
		if err != nil {
			return err
		}
		if err := g.SetType(row, col, typ); err != nil {
			return err
		}
		return s.save(ctx, g)
	})
}
