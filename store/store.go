// Package store persists sheets through their flat-list form.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BiagiVarnoux/costsheet"
)

// ErrNotFound is returned by Load when no sheet has the given name.
var ErrNotFound = errors.New("sheet not found")

// Store loads and saves named sheets.
//
// Only the content of the cells is persisted, a loaded grid is recalculated.
type Store interface {
	Load(ctx context.Context, name string) (*costsheet.Grid, error)
	Save(ctx context.Context, name string, g *costsheet.Grid) error
}

// checkName rejects names that cannot be used as a file name or a row key prefix.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\#`) {
		return fmt.Errorf("invalid sheet name %q", name)
	}
	return nil
}
