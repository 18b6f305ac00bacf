package costsheet

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// MarshalJSON renders the read view of the grid: its extent and every
// touched cell inside it with its computed value and error.
//
//	{"rows":3,"cols":3,"cells":[{"key":"C1","row":0,"col":2,"type":"formula","raw":"=A1+B1","formula":"=A1+B1","value":150}]}
func (g *Grid) MarshalJSON() ([]byte, error) {
	cells := make([]json.Marshaler, 0)
	for _, c := range g.sorted() {
		if !c.Touched() || c.Row >= g.rows || c.Col >= g.cols {
			continue
		}
		var w jsonObjectWriter
		w.Append("key", c.Key())
		w.Append("row", c.Row)
		w.Append("col", c.Col)
		w.Append("type", c.Type)
		w.Optional("raw", c.Raw)
		w.Optional("formula", c.Formula)
		w.Append("value", c.Computed)
		w.Optional("error", c.Error)
		cells = append(cells, &w)
	}
	var w jsonObjectWriter
	w.Append("rows", g.rows)
	w.Append("cols", g.cols)
	w.Append("cells", cells)
	return w.MarshalJSON()
}

// Query evaluates a JSONPath expression against the JSON view of g, e.g.
// "$.cells[?(@.error)].key" lists the cells in error.
func Query(g *Grid, path string) (any, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal grid: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot decode grid view: %w", err)
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	return v, nil
}
