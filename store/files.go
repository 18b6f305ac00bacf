package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/BiagiVarnoux/costsheet"
)

// Files stores each sheet as a JSONL file in a directory.
type Files struct {
	Dir string
}

// NewFiles returns a store of sheet files in dir.
func NewFiles(dir string) *Files { return &Files{Dir: dir} }

// Path returns the file holding the sheet name. The ".jsonl" extension is
// added when missing.
func (s *Files) Path(name string) string {
	if !strings.HasSuffix(name, ".jsonl") {
		name += ".jsonl"
	}
	return filepath.Join(s.Dir, name)
}

func (s *Files) Load(ctx context.Context, name string) (*costsheet.Grid, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	path := s.Path(name)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q: %w", ErrNotFound, name, err)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open sheet %q: %w", path, err)
	}
	defer f.Close()

	g, err := costsheet.DecodeGrid(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", path, err)
	}
	log.Printf("load-sheet path=%q rows=%d cols=%d", path, g.Rows(), g.Cols())
	return g, nil
}

// Save writes the sheet to a temporary file then renames it over the previous version.
func (s *Files) Save(ctx context.Context, name string, g *costsheet.Grid) error {
	if err := checkName(name); err != nil {
		return err
	}
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create sheet directory: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".sheet-*")
	if err != nil {
		return fmt.Errorf("cannot create sheet file: %w", err)
	}
	defer os.Remove(f.Name())

	if err := costsheet.EncodeGrid(f, g); err != nil {
		f.Close()
		return fmt.Errorf("cannot write sheet %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot write sheet %q: %w", path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("cannot replace sheet %q: %w", path, err)
	}
	log.Printf("save-sheet path=%q rows=%d cols=%d", path, g.Rows(), g.Cols())
	return nil
}
