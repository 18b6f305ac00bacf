package costsheet

import (
	"encoding/json"
	"fmt"
)

// CellType is an advisory tag on a cell. It never changes how a cell
// evaluates; the editor only uses it to pick a default on edit and the
// renderer to pick a display format.
type CellType uint8

const (
	TypeText CellType = iota
	TypeNumber
	TypeFormula
	TypeHeader
	TypePrice
	TypeQuantity
	TypeProduct
)

var cellTypeNames = [...]string{
	TypeText:     "text",
	TypeNumber:   "number",
	TypeFormula:  "formula",
	TypeHeader:   "header",
	TypePrice:    "price",
	TypeQuantity: "quantity",
	TypeProduct:  "product",
}

func (t CellType) String() string {
	if int(t) < len(cellTypeNames) {
		return cellTypeNames[t]
	}
	return fmt.Sprintf("CellType(%d)", t)
}

// domain reports whether t is one of the domain subtypes that survive an edit.
func (t CellType) domain() bool {
	switch t {
	case TypeHeader, TypePrice, TypeQuantity, TypeProduct:
		return true
	}
	return false
}

// ParseCellType parses a type tag. The empty string is "text".
func ParseCellType(s string) (CellType, error) {
	if s == "" {
		return TypeText, nil
	}
	for i, name := range cellTypeNames {
		if name == s {
			return CellType(i), nil
		}
	}
	return TypeText, fmt.Errorf("unknown cell type %q", s)
}

func (t CellType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *CellType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseCellType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
