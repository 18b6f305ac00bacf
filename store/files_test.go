package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/BiagiVarnoux/costsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quote returns a recalculated sample sheet.
func quote(t *testing.T) *costsheet.Grid {
	t.Helper()
	g := costsheet.NewGrid(3, 3)
	for _, c := range []struct {
		row, col int
		content  string
	}{
		{0, 0, "Item"}, {0, 1, "Qty"}, {0, 2, "Price"},
		{1, 0, "Valve"}, {1, 1, "4"}, {1, 2, "12.5"},
		{2, 2, "=B2*C2"},
	} {
		require.NoError(t, g.Set(c.row, c.col, c.content))
	}
	require.NoError(t, g.SetType(1, 2, costsheet.TypePrice))
	return costsheet.Recalculate(g)
}

func TestFiles(t *testing.T) {
	ctx := context.Background()
	s := NewFiles(filepath.Join(t.TempDir(), "sheets"))
	g := quote(t)

	require.NoError(t, s.Save(ctx, "quote", g))
	assert.FileExists(t, filepath.Join(s.Dir, "quote.jsonl"))

	loaded, err := s.Load(ctx, "quote")
	require.NoError(t, err)
	assert.Equal(t, g, loaded)
	assert.Equal(t, 50.0, loaded.Cell(2, 2).Computed)

	// Saving again replaces the file.
	require.NoError(t, g.Set(2, 2, ""))
	require.NoError(t, s.Save(ctx, "quote.jsonl", g))
	loaded, err = s.Load(ctx, "quote")
	require.NoError(t, err)
	assert.False(t, loaded.Touched("C3"))

	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are left behind")
}

func TestFilesErrors(t *testing.T) {
	ctx := context.Background()
	s := NewFiles(t.TempDir())

	_, err := s.Load(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound), "error %v is not ErrNotFound", err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "error %v is not fs.ErrNotExist", err)

	for _, name := range []string{"", "..", "a/b", "a#b"} {
		assert.Error(t, s.Save(ctx, name, costsheet.NewGrid(1, 1)), "name %q", name)
	}

	require.NoError(t, os.WriteFile(s.Path("broken"), []byte("{\"rows\":1,\"cols\":1}\n{oops\n"), 0644))
	_, err = s.Load(ctx, "broken")
	assert.ErrorContains(t, err, "line 2")
}
