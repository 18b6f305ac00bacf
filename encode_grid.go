package costsheet

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// A grid is persisted as JSONL: a first line holding the extent
//
//	{"rows":20,"cols":8}
//
// followed by one Entry per line, row-major. Empty cells are not written.

type extent struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// EncodeGrid writes g to w as JSONL.
func EncodeGrid(w io.Writer, g *Grid) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(extent{Rows: g.rows, Cols: g.cols}); err != nil {
		return fmt.Errorf("cannot encode grid extent: %w", err)
	}
	for _, e := range ToFlatList(g) {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("cannot encode cell %s: %w", CellKey(e.Row, e.Col), err)
		}
	}
	return nil
}

// DecodeGrid reads a grid written by EncodeGrid and returns it recalculated.
// Blank lines are ignored.
func DecodeGrid(r io.Reader) (*Grid, error) {
	var (
		ext     *extent
		entries []Entry
		i       int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if strings.TrimSpace(string(line)) == "" {
			continue
		}
		if ext == nil {
			ext = new(extent)
			if err := json.Unmarshal(line, ext); err != nil {
				return nil, fmt.Errorf("parse error line %d: invalid grid extent: %w", i, err)
			}
			if err := CheckExtent(ext.Rows, ext.Cols); err != nil {
				return nil, fmt.Errorf("parse error line %d: %w", i, err)
			}
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("parse error line %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read grid: %w", err)
	}
	if ext == nil {
		return NewGrid(0, 0), nil
	}
	g, err := FromFlatList(entries, ext.Rows, ext.Cols)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return g, nil
}
