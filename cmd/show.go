package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/BiagiVarnoux/costsheet"
	"github.com/BiagiVarnoux/costsheet/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	strict bool
	plain  bool
	asJSON bool
	query  string
	title  string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "displays the computed sheet" }
func (*showCmd) Usage() string {
	return `csh show [-strict] [-plain] [-json] [-q <jsonpath>] [-title <title>]

  Displays the computed sheet as a table, followed by the cells in error.
  With -json the sheet is printed as JSON, with -q only the result of a
  JSONPath query over that JSON.

Usage Examples:
$ csh show -plain
$ csh show -q '$.cells[?(@.type=="price")].value'
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Recalculate in dependency order, detecting reference cycles")
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of rendering it for the terminal")
	f.BoolVar(&c.asJSON, "json", false, "Print the sheet as JSON")
	f.StringVar(&c.query, "q", "", "JSONPath query over the JSON form of the sheet")
	f.StringVar(&c.title, "title", "", "Title of the table. Defaults to the sheet name.")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		g, err := s.load(ctx, s.mode(c.strict))
		if err != nil {
			return err
		}
		switch {
		case c.query != "":
			v, err := costsheet.Query(g, c.query)
			if err != nil {
				return err
			}
			return printJSON(v)
		case c.asJSON:
			return printJSON(g)
		}

		title := c.title
		if title == "" {
			title = strings.TrimSuffix(s.name, ".jsonl")
		}
		md := renderer.RenderSheet(renderer.NewSheet(g, renderer.SheetOptions{
			Title:    title,
			Format:   s.cfg.NumberFormat(),
			Currency: s.cfg.Display.Currency,
		}))
		if c.plain {
			fmt.Fprint(stdout, md)
		} else {
			printMarkdown(md)
		}
		return nil
	})
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode JSON: %w", err)
	}
	fmt.Fprintln(stdout, string(data))
	return nil
}
