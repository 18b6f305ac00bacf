package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type resizeCmd struct {
	rows, cols int
}

func (*resizeCmd) Name() string     { return "resize" }
func (*resizeCmd) Synopsis() string { return "changes the extent of a sheet" }
func (*resizeCmd) Usage() string {
	return `csh resize -rows <n> -cols <n>

  Changes the extent of the sheet. Cells outside a smaller extent are no
  longer saved.
`
}

func (c *resizeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.rows, "rows", -1, "Number of rows")
	f.IntVar(&c.cols, "cols", -1, "Number of columns")
}

func (c *resizeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.rows < 0 || c.cols < 0 {
		fmt.Fprintln(f.Output(), "Error: -rows and -cols are required")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		g, err := s.store.Load(ctx, s.name)
		if err != nil {
			return err
		}
		if err := g.Resize(c.rows, c.cols); err != nil {
			return err
		}
		if err := s.save(ctx, g); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Resized sheet %q to %dx%d\n", s.name, c.rows, c.cols)
		return nil
	})
}
