package costsheet

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid(2, 3)
	if g.Rows() != 2 || g.Cols() != 3 || g.Len() != 6 {
		t.Errorf("NewGrid(2, 3) = %dx%d with %d cells", g.Rows(), g.Cols(), g.Len())
	}
	c, ok := g.Lookup("C2")
	if !ok {
		t.Fatal("C2 is missing")
	}
	if want := (Cell{Row: 1, Col: 2}); c != want {
		t.Errorf("C2 = %+v, want %+v", c, want)
	}
	if g.Touched("C2") {
		t.Error("a new cell is touched")
	}
	if g := NewGrid(-1, 2); g.Rows() != 0 || g.Len() != 0 {
		t.Errorf("NewGrid(-1, 2) = %dx%d with %d cells", g.Rows(), g.Cols(), g.Len())
	}
}

func TestGridSet(t *testing.T) {
	tests := []struct {
		content     string
		wantFormula string
		wantType    CellType
	}{
		{"=A2*2", "=A2*2", TypeFormula},
		{"12.5", "", TypeNumber},
		{"1,200", "", TypeNumber},
		{"Steel pipes", "", TypeText},
		{"", "", TypeText},
	}
	for _, tt := range tests {
		g := NewGrid(1, 1)
		if err := g.Set(0, 0, tt.content); err != nil {
			t.Fatalf("Set(%q) error: %v", tt.content, err)
		}
		c := g.Cell(0, 0)
		if c.Raw != tt.content || c.Formula != tt.wantFormula || c.Type != tt.wantType {
			t.Errorf("Set(%q) = %+v, want formula %q and type %v", tt.content, c, tt.wantFormula, tt.wantType)
		}
	}
}

func TestGridSetKeepsDomainType(t *testing.T) {
	g := NewGrid(1, 1)
	if err := g.SetType(0, 0, TypePrice); err != nil {
		t.Fatal(err)
	}
	for _, content := range []string{"9.99", "=B1*2", "n/a"} {
		g.Set(0, 0, content)
		if got := g.Cell(0, 0).Type; got != TypePrice {
			t.Errorf("Set(%q) type = %v, want price", content, got)
		}
	}

	g.SetType(0, 0, TypeNumber)
	g.Set(0, 0, "=1")
	if got := g.Cell(0, 0).Type; got != TypeFormula {
		t.Errorf("type = %v, want formula", got)
	}
}

func TestGridSetGrowsExtent(t *testing.T) {
	g := NewGrid(1, 1)
	if err := g.Set(4, 2, "x"); err != nil {
		t.Fatal(err)
	}
	if g.Rows() != 5 || g.Cols() != 3 {
		t.Errorf("extent = %dx%d, want 5x3", g.Rows(), g.Cols())
	}
	if !g.Touched("C5") {
		t.Error("C5 is not touched")
	}
	if c := g.Cell(3, 0); c.Row != 3 || c.Col != 0 || c.Touched() {
		t.Errorf("absent cell = %+v", c)
	}

	if err := g.Set(-1, 0, "x"); err == nil {
		t.Error("expected an error for a negative row")
	}
	if err := g.SetType(0, -1, TypePrice); err == nil {
		t.Error("expected an error for a negative column")
	}

	// The extent would exceed MaxCells.
	if err := g.Set(MaxRows-1, 0, "x"); !errors.Is(err, ErrExtent) {
		t.Errorf("Set(A1048576) error = %v, want ErrExtent", err)
	}
	if g.Rows() != 5 || g.Cols() != 3 || g.Touched("A1048576") {
		t.Errorf("a rejected Set changed the grid: %dx%d", g.Rows(), g.Cols())
	}
}

func TestCheckExtent(t *testing.T) {
	tests := []struct {
		rows, cols int
		ok         bool
	}{
		{0, 0, true},
		{20, 8, true},
		{MaxCells, 1, true},
		{1, MaxCols, true},
		{512, 512, true},
		{513, 512, false},
		{MaxRows + 1, 0, false},
		{0, MaxCols + 1, false},
		{-1, 1, false},
		{100000000, 100, false},
	}
	for _, tt := range tests {
		err := CheckExtent(tt.rows, tt.cols)
		if tt.ok && err != nil {
			t.Errorf("CheckExtent(%d, %d) error: %v", tt.rows, tt.cols, err)
		}
		if !tt.ok && !errors.Is(err, ErrExtent) {
			t.Errorf("CheckExtent(%d, %d) error = %v, want ErrExtent", tt.rows, tt.cols, err)
		}
	}
}

func TestNewGridPanicsOnOversizedExtent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewGrid(MaxRows, MaxCols) did not panic")
		}
	}()
	NewGrid(MaxRows, MaxCols)
}

func TestGridResize(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(2, 2, "9")
	g.Resize(2, 2)
	if g.Rows() != 2 || g.Cols() != 2 {
		t.Errorf("extent = %dx%d, want 2x2", g.Rows(), g.Cols())
	}
	if !g.Touched("C3") {
		t.Error("Resize dropped C3")
	}
	g.Resize(3, 3)
	if c := g.Cell(2, 2); c.Raw != "9" {
		t.Errorf("C3 = %+v after growing back", c)
	}

	if err := g.Resize(100000, 100); !errors.Is(err, ErrExtent) {
		t.Errorf("Resize(100000, 100) error = %v, want ErrExtent", err)
	}
	if g.Rows() != 3 || g.Cols() != 3 {
		t.Errorf("a rejected Resize changed the extent to %dx%d", g.Rows(), g.Cols())
	}
}

func TestGridKeys(t *testing.T) {
	g := NewGrid(0, 0)
	g.Set(1, 0, "a")
	g.Set(0, 27, "b")
	g.Set(0, 2, "c")
	g.Set(10, 1, "d")
	want := []string{"C1", "AB1", "A2", "B11"}
	if got := g.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestGridClone(t *testing.T) {
	g := NewGrid(1, 1)
	g.Set(0, 0, "1")
	cp := g.Clone()
	cp.Set(0, 0, "2")
	cp.Set(1, 1, "3")
	if c := g.Cell(0, 0); c.Raw != "1" {
		t.Errorf("original A1 = %q after editing the clone", c.Raw)
	}
	if g.Rows() != 1 || g.Len() != 1 {
		t.Errorf("original grid changed: %dx%d with %d cells", g.Rows(), g.Cols(), g.Len())
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		s      string
		want   float64
		wantOK bool
	}{
		{"42", 42, true},
		{"-3.5", -3.5, true},
		{"1,234.50", 1234.5, true},
		{" 7 ", 7, true},
		{".5", 0.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"#ERROR", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.s)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseNumber(%q) = %v, %v, want %v, %v", tt.s, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCellTypeJSON(t *testing.T) {
	for _, name := range []string{"text", "number", "formula", "header", "price", "quantity", "product"} {
		ct, err := ParseCellType(name)
		if err != nil {
			t.Fatalf("ParseCellType(%q) error: %v", name, err)
		}
		if ct.String() != name {
			t.Errorf("ParseCellType(%q).String() = %q", name, ct.String())
		}
	}
	if _, err := ParseCellType("currency"); err == nil {
		t.Error("expected an error for an unknown type")
	}
	if ct, err := ParseCellType(""); err != nil || ct != TypeText {
		t.Errorf("ParseCellType(\"\") = %v, %v, want text", ct, err)
	}
}
