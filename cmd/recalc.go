package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type recalcCmd struct {
	strict bool
}

func (*recalcCmd) Name() string { return "recalc" }
func (*recalcCmd) Synopsis() string {
	return "recalculates the sheet and rewrites it in canonical form"
}
func (*recalcCmd) Usage() string {
	return `csh recalc [-strict]

  Recalculates every cell of the sheet and writes it back in canonical form:
  cells in row-major order, empty cells omitted. Cells in error are listed.

Usage Examples:
$ csh recalc -strict
`
}

func (c *recalcCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Recalculate in dependency order, detecting reference cycles")
}

func (c *recalcCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		g, err := s.load(ctx, s.mode(c.strict))
		if err != nil {
			return err
		}
		if err := s.save(ctx, g); err != nil {
			return err
		}
		errs := 0
		for _, key := range g.Keys() {
			if cell, _ := g.Lookup(key); cell.Error != "" {
				errs++
				fmt.Fprintf(os.Stderr, "%s: %s\n", key, cell.Error)
			}
		}
		fmt.Fprintf(stdout, "Recalculated sheet %q (%s): %d errors\n", s.name, s.mode(c.strict), errs)
		return nil
	})
}
