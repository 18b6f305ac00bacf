// Package cmd implements the csh CLI application to edit cost sheets.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BiagiVarnoux/costsheet"
	"github.com/BiagiVarnoux/costsheet/config"
	"github.com/BiagiVarnoux/costsheet/store"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists the csh subcommands. A main package registers them in its
// commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&newCmd{},
	&setCmd{},
	&typeCmd{},
	&resizeCmd{},
	&recalcCmd{},
	&showCmd{},
	&evalCmd{},
	&importXLSXCmd{},
	&exportXLSXCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var sheetName = flag.String("sheet", "costsheet", "Sheet to work on. With the jsonl backend, a path to its file.")
var configFile = flag.String("config", "costsheet.yaml", "Path to the YAML configuration file")

// stdout receives command output.
var stdout io.Writer = os.Stdout

// session is what a command works on: the configuration and the sheet in its store.
type session struct {
	cfg   *config.Config
	store store.Store
	name  string
	close func() error
}

// openSession loads the configuration and opens the configured store.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Backend == config.BackendBigtable {
		bt := cfg.Store.Bigtable
		s, err := store.OpenBigtable(ctx, bt.Project, bt.Instance, bt.Table, bt.Family)
		if err != nil {
			return nil, err
		}
		return &session{cfg: cfg, store: s, name: *sheetName, close: s.Close}, nil
	}

	dir, name := filepath.Split(*sheetName)
	if dir == "" {
		dir = cfg.Store.Dir
	}
	return &session{cfg: cfg, store: store.NewFiles(dir), name: name, close: func() error { return nil }}, nil
}

// load returns the sheet recalculated in the given mode.
func (s *session) load(ctx context.Context, mode costsheet.Mode) (*costsheet.Grid, error) {
	g, err := s.store.Load(ctx, s.name)
	if err != nil {
		return nil, err
	}
	if mode != costsheet.TwoPass {
		g = costsheet.RecalculateMode(g, mode)
	}
	return g, nil
}

func (s *session) save(ctx context.Context, g *costsheet.Grid) error {
	return s.store.Save(ctx, s.name, g)
}

// mode returns the recalculation mode, strict forcing the ordered one.
func (s *session) mode(strict bool) costsheet.Mode {
	if strict {
		return costsheet.Ordered
	}
	return s.cfg.Mode()
}

// run opens a session, runs fn and reports its error.
func run(ctx context.Context, fn func(s *session) error) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	if err := fn(s); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: %v (create it with 'csh new')\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseCell parses a cell key given on the command line.
func parseCell(key string) (row, col int, err error) {
	return costsheet.ParseCellReference(strings.TrimSpace(key))
}

// printMarkdown renders md for the terminal, or prints it as is when it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
