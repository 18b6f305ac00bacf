package costsheet

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is the persisted form of one non-empty cell.
type Entry struct {
	Row     int
	Col     int
	Value   string   // raw content
	Formula string   // empty when the cell holds a plain value
	Type    CellType // advisory
}

// MarshalJSON writes {"row","col","value","formula","type"} in that order,
// with a null formula for plain values.
func (e Entry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("row", e.Row)
	w.Append("col", e.Col)
	w.Append("value", e.Value)
	if e.Formula != "" {
		w.Append("formula", e.Formula)
	} else {
		w.Append("formula", nil)
	}
	w.Append("type", e.Type)
	return w.MarshalJSON()
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var je struct {
		Row     int      `json:"row"`
		Col     int      `json:"col"`
		Value   string   `json:"value"`
		Formula *string  `json:"formula"`
		Type    CellType `json:"type"`
	}
	if err := json.Unmarshal(data, &je); err != nil {
		return err
	}
	*e = Entry{Row: je.Row, Col: je.Col, Value: je.Value, Type: je.Type}
	if je.Formula != nil {
		e.Formula = *je.Formula
	}
	return nil
}

// ToFlatList returns the non-empty cells inside the grid extent, row-major.
func ToFlatList(g *Grid) []Entry {
	var list []Entry
	for _, c := range g.sorted() {
		if !c.Touched() || c.Row >= g.rows || c.Col >= g.cols {
			continue
		}
		list = append(list, Entry{Row: c.Row, Col: c.Col, Value: c.Raw, Formula: c.Formula, Type: c.Type})
	}
	return list
}

// FromFlatList builds an empty grid of the given extent, overlays every entry
// and returns it recalculated. The extent and every entry must fit the limits
// of CheckExtent.
func FromFlatList(list []Entry, rows, cols int) (*Grid, error) {
	if err := CheckExtent(rows, cols); err != nil {
		return nil, err
	}
	g := NewGrid(rows, cols)
	for _, e := range list {
		if e.Row < 0 || e.Col < 0 {
			return nil, fmt.Errorf("invalid entry at (%d, %d)", e.Row, e.Col)
		}
		formula := e.Formula
		if formula != "" && !strings.HasPrefix(formula, "=") {
			formula = "=" + formula
		}
		raw := e.Value
		if raw == "" {
			raw = formula
		}
		c := Cell{Row: e.Row, Col: e.Col, Raw: raw, Formula: formula, Type: e.Type}
		if err := g.put(c); err != nil {
			return nil, err
		}
	}
	return Recalculate(g), nil
}
