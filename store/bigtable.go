package store

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"cloud.google.com/go/bigtable"
	"github.com/BiagiVarnoux/costsheet"
	"google.golang.org/api/option"
)

// Bigtable stores sheets in a Bigtable table, one row per non-empty cell.
//
// The row "<name>#" holds the extent of the sheet, the row "<name>#<key>"
// the cell with that key. Every value is written as a string in the
// configured column family.
type Bigtable struct {
	client *bigtable.Client
	table  *bigtable.Table
	family string
}

// NewBigtable returns a store writing in table under the column family.
func NewBigtable(table *bigtable.Table, family string) *Bigtable {
	return &Bigtable{table: table, family: family}
}

// OpenBigtable connects to a Bigtable instance. The table and its column
// family must exist.
func OpenBigtable(ctx context.Context, project, instance, table, family string, opts ...option.ClientOption) (*Bigtable, error) {
	client, err := bigtable.NewClient(ctx, project, instance, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating bigtable client: %w", err)
	}
	s := NewBigtable(client.Open(table), family)
	s.client = client
	return s, nil
}

// Close releases the client opened by OpenBigtable.
func (s *Bigtable) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

const (
	colRows    = "rows"
	colCols    = "cols"
	colRow     = "row"
	colCol     = "col"
	colValue   = "value"
	colFormula = "formula"
	colType    = "type"
)

func (s *Bigtable) Load(ctx context.Context, name string) (*costsheet.Grid, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	prefix := name + "#"
	var (
		found      bool
		rows, cols int
		entries    []costsheet.Entry
		rowErr     error
	)
	filter := bigtable.ChainFilters(bigtable.LatestNFilter(1), bigtable.FamilyFilter(s.family))
	err := s.table.ReadRows(ctx, bigtable.PrefixRange(prefix),
		func(row bigtable.Row) bool {
			values := s.columns(row)
			if row.Key() == prefix {
				found = true
				rows, rowErr = strconv.Atoi(values[colRows])
				if rowErr == nil {
					cols, rowErr = strconv.Atoi(values[colCols])
				}
				return rowErr == nil
			}
			var e costsheet.Entry
			e, rowErr = decodeEntry(values)
			if rowErr != nil {
				rowErr = fmt.Errorf("invalid cell row %q: %w", row.Key(), rowErr)
				return false
			}
			entries = append(entries, e)
			return true
		},
		bigtable.RowFilter(filter),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", name, err)
	}
	if rowErr != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", name, rowErr)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	g, err := costsheet.FromFlatList(entries, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", name, err)
	}
	log.Printf("load-sheet name=%q cells=%d", name, len(entries))
	return g, nil
}

// Save replaces the stored sheet: rows of cells that became empty are deleted.
func (s *Bigtable) Save(ctx context.Context, name string, g *costsheet.Grid) error {
	if err := checkName(name); err != nil {
		return err
	}
	prefix := name + "#"

	stale := make(map[string]bool)
	err := s.table.ReadRows(ctx, bigtable.PrefixRange(prefix),
		func(row bigtable.Row) bool {
			stale[row.Key()] = true
			return true
		},
		bigtable.RowFilter(bigtable.StripValueFilter()),
	)
	if err != nil {
		return fmt.Errorf("cannot list sheet %q: %w", name, err)
	}

	timestamp := bigtable.Now()
	header := bigtable.NewMutation()
	header.Set(s.family, colRows, timestamp, []byte(strconv.Itoa(g.Rows())))
	header.Set(s.family, colCols, timestamp, []byte(strconv.Itoa(g.Cols())))
	keys := []string{prefix}
	muts := []*bigtable.Mutation{header}
	delete(stale, prefix)

	for _, e := range costsheet.ToFlatList(g) {
		key := prefix + costsheet.CellKey(e.Row, e.Col)
		mut := bigtable.NewMutation()
		mut.Set(s.family, colRow, timestamp, []byte(strconv.Itoa(e.Row)))
		mut.Set(s.family, colCol, timestamp, []byte(strconv.Itoa(e.Col)))
		mut.Set(s.family, colValue, timestamp, []byte(e.Value))
		mut.Set(s.family, colFormula, timestamp, []byte(e.Formula))
		mut.Set(s.family, colType, timestamp, []byte(e.Type.String()))
		keys = append(keys, key)
		muts = append(muts, mut)
		delete(stale, key)
	}
	for key := range stale {
		mut := bigtable.NewMutation()
		mut.DeleteRow()
		keys = append(keys, key)
		muts = append(muts, mut)
	}

	errs, err := s.table.ApplyBulk(ctx, keys, muts)
	if err != nil {
		return fmt.Errorf("cannot write sheet %q: %w", name, err)
	}
	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("cannot write row %q: %w", keys[i], err)
		}
	}
	log.Printf("save-sheet name=%q cells=%d deleted=%d", name, len(keys)-1-len(stale), len(stale))
	return nil
}

// columns returns the values of the row in the store family, by qualifier.
func (s *Bigtable) columns(row bigtable.Row) map[string]string {
	values := make(map[string]string)
	for _, item := range row[s.family] {
		_, qualifier, _ := strings.Cut(item.Column, ":")
		values[qualifier] = string(item.Value)
	}
	return values
}

func decodeEntry(values map[string]string) (costsheet.Entry, error) {
	var e costsheet.Entry
	var err error
	if e.Row, err = strconv.Atoi(values[colRow]); err != nil {
		return e, fmt.Errorf("invalid row: %w", err)
	}
	if e.Col, err = strconv.Atoi(values[colCol]); err != nil {
		return e, fmt.Errorf("invalid col: %w", err)
	}
	if e.Type, err = costsheet.ParseCellType(values[colType]); err != nil {
		return e, err
	}
	e.Value, e.Formula = values[colValue], values[colFormula]
	return e, nil
}
