package costsheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEntryJSON(t *testing.T) {
	tests := []struct {
		entry Entry
		want  string
	}{
		{
			Entry{Row: 0, Col: 2, Value: "=A1+B1", Formula: "=A1+B1", Type: TypeFormula},
			`{"row":0,"col":2,"value":"=A1+B1","formula":"=A1+B1","type":"formula"}`,
		},
		{
			Entry{Row: 3, Col: 1, Value: "12.50", Type: TypePrice},
			`{"row":3,"col":1,"value":"12.50","formula":null,"type":"price"}`,
		},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.entry)
		if err != nil {
			t.Fatalf("Marshal(%v) error: %v", tt.entry, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.entry, got, tt.want)
		}
		var back Entry
		if err := json.Unmarshal(got, &back); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", got, err)
		}
		if back != tt.entry {
			t.Errorf("Unmarshal(%s) = %v, want %v", got, back, tt.entry)
		}
	}

	var e Entry
	if err := json.Unmarshal([]byte(`{"row":0,"col":0,"value":"x","type":"bogus"}`), &e); err == nil {
		t.Error("expected an error for an unknown cell type")
	}
}

func TestToFlatList(t *testing.T) {
	g := sheet(t, 3, 3, "A1", "100", "B1", "50", "C1", "=A1+B1")
	got := ToFlatList(g)
	want := []Entry{
		{Row: 0, Col: 0, Value: "100", Type: TypeNumber},
		{Row: 0, Col: 1, Value: "50", Type: TypeNumber},
		{Row: 0, Col: 2, Value: "=A1+B1", Formula: "=A1+B1", Type: TypeFormula},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToFlatList() = %v, want %v", got, want)
	}

	g.Resize(3, 2)
	if got := ToFlatList(g); len(got) != 2 {
		t.Errorf("ToFlatList() after shrinking = %v, want 2 entries", got)
	}
}

func TestFromFlatList(t *testing.T) {
	list := []Entry{
		{Row: 0, Col: 0, Value: "4", Type: TypeQuantity},
		{Row: 0, Col: 1, Value: "2.5", Type: TypePrice},
		{Row: 0, Col: 2, Formula: "A1*B1"},
	}
	g, err := FromFlatList(list, 2, 3)
	if err != nil {
		t.Fatalf("FromFlatList() error: %v", err)
	}
	if g.Rows() != 2 || g.Cols() != 3 {
		t.Errorf("extent = %dx%d, want 2x3", g.Rows(), g.Cols())
	}
	c := g.Cell(0, 2)
	if c.Formula != "=A1*B1" || c.Raw != "=A1*B1" {
		t.Errorf("C1 formula = %q, raw = %q, want =A1*B1", c.Formula, c.Raw)
	}
	if c.Computed != 10.0 {
		t.Errorf("C1 = %#v, want 10", c.Computed)
	}
	if c := g.Cell(1, 1); c.Touched() || c.Computed != "" {
		t.Errorf("B2 = %+v, want an empty settled cell", c)
	}
	if got := g.Cell(0, 1).Type; got != TypePrice {
		t.Errorf("B1 type = %v, want price", got)
	}

	if _, err := FromFlatList([]Entry{{Row: -1, Col: 0, Value: "1"}}, 1, 1); err == nil {
		t.Error("expected an error for a negative row")
	}
	if _, err := FromFlatList(nil, 100000000, 100); !errors.Is(err, ErrExtent) {
		t.Errorf("FromFlatList(100000000x100) error = %v, want ErrExtent", err)
	}
	if _, err := FromFlatList([]Entry{{Row: 9999998, Col: 18277, Value: "x"}}, 1, 1); !errors.Is(err, ErrExtent) {
		t.Errorf("FromFlatList(ZZZ9999999) error = %v, want ErrExtent", err)
	}
}

func TestFlatListRoundTrip(t *testing.T) {
	g := sheet(t, 4, 3,
		"A1", "Item", "B1", "Qty", "C1", "Price",
		"A2", "Valve", "B2", "4", "C2", "12.5",
		"C3", "=B2*C2",
		"A4", "=A4", // an error survives the round trip
	)
	back, err := FromFlatList(ToFlatList(g), g.Rows(), g.Cols())
	if err != nil {
		t.Fatalf("FromFlatList() error: %v", err)
	}
	if !reflect.DeepEqual(back, Recalculate(g)) {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", ToFlatList(back), ToFlatList(g))
	}
}

func TestEncodeGrid(t *testing.T) {
	g := sheet(t, 3, 3, "A1", "100", "B1", "50", "C1", "=A1+B1")

	var buf bytes.Buffer
	if err := EncodeGrid(&buf, g); err != nil {
		t.Fatalf("EncodeGrid() error: %v", err)
	}
	want := `{"rows":3,"cols":3}
{"row":0,"col":0,"value":"100","formula":null,"type":"number"}
{"row":0,"col":1,"value":"50","formula":null,"type":"number"}
{"row":0,"col":2,"value":"=A1+B1","formula":"=A1+B1","type":"formula"}
`
	if got := buf.String(); got != want {
		t.Errorf("EncodeGrid() =\n%s\nwant\n%s", got, want)
	}

	back, err := DecodeGrid(&buf)
	if err != nil {
		t.Fatalf("DecodeGrid() error: %v", err)
	}
	if !reflect.DeepEqual(back, g) {
		t.Errorf("DecodeGrid() = %v, want %v", ToFlatList(back), ToFlatList(g))
	}
	if c := back.Cell(0, 2); c.Computed != 150.0 {
		t.Errorf("C1 = %#v, want 150", c.Computed)
	}
}

func TestDecodeGrid(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		g, err := DecodeGrid(strings.NewReader(""))
		if err != nil {
			t.Fatalf("DecodeGrid() error: %v", err)
		}
		if g.Rows() != 0 || g.Cols() != 0 || g.Len() != 0 {
			t.Errorf("DecodeGrid() = %dx%d with %d cells, want an empty grid", g.Rows(), g.Cols(), g.Len())
		}
	})

	t.Run("blank lines", func(t *testing.T) {
		input := "\n{\"rows\":1,\"cols\":1}\n\n{\"row\":0,\"col\":0,\"value\":\"7\",\"formula\":null,\"type\":\"number\"}\n"
		g, err := DecodeGrid(strings.NewReader(input))
		if err != nil {
			t.Fatalf("DecodeGrid() error: %v", err)
		}
		if c := g.Cell(0, 0); c.Computed != 7.0 {
			t.Errorf("A1 = %#v, want 7", c.Computed)
		}
	})

	errorTests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad entry", "{\"rows\":1,\"cols\":1}\nnot json\n", "line 2"},
		{"bad extent", "[1,2]\n", "line 1"},
		{"negative extent", "{\"rows\":-1,\"cols\":1}\n", "line 1"},
		{"oversized extent", "{\"rows\":100000000,\"cols\":100}\n", "line 1"},
		{"negative cell", "{\"rows\":1,\"cols\":1}\n{\"row\":-2,\"col\":0,\"value\":\"1\"}\n", "invalid entry"},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeGrid(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
