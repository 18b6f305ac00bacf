package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/BiagiVarnoux/costsheet"
	"github.com/google/subcommands"
)

type evalCmd struct {
	strict bool
}

func (*evalCmd) Name() string     { return "eval" }
func (*evalCmd) Synopsis() string { return "evaluates a formula against the sheet" }
func (*evalCmd) Usage() string {
	return `csh eval [-strict] <formula>

  Evaluates a formula against the computed sheet without changing it.
  The leading "=" is optional.

Usage Examples:
$ csh eval 'SUM(C2:C9)/COUNT(C2:C9)'
`
}

func (c *evalCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Recalculate in dependency order, detecting reference cycles")
}

func (c *evalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(f.Output(), "Error: a formula is required")
		return subcommands.ExitUsageError
	}
	formula := strings.Join(f.Args(), " ")
	if !strings.HasPrefix(formula, "=") {
		formula = "=" + formula
	}
	return run(ctx, func(s *session) error {
		g, err := s.load(ctx, s.mode(c.strict))
		if err != nil {
			return err
		}
		res := costsheet.Evaluate(formula, g, "")
		if res.Err != nil {
			return res.Err
		}
		fmt.Fprintln(stdout, s.cfg.NumberFormat().Format(res.Value))
		return nil
	})
}
