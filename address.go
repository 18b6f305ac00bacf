package costsheet

import (
	"fmt"
	"strconv"
	"strings"
)

// Limits of the addressable area, those of an .xlsx worksheet: rows 1 to
// 1048576, columns A to XFD.
const (
	MaxRows = 1 << 20
	MaxCols = 1 << 14
)

// maxLetters bounds column letters so that their value fits in an int.
const maxLetters = 7

// Address locates a cell by its zero-based row and column.
type Address struct {
	Row int
	Col int
}

// Key returns the canonical cell key, e.g. "B7".
func (a Address) Key() string { return CellKey(a.Row, a.Col) }

func (a Address) String() string { return a.Key() }

// ColumnToLetter returns the bijective base-26 letters of a zero-based column
// index: 0 is "A", 25 is "Z", 26 is "AA".
func ColumnToLetter(col int) string {
	if col < 0 {
		panic("negative column index " + strconv.Itoa(col))
	}
	var buf [16]byte
	i := len(buf)
	for col >= 0 {
		i--
		buf[i] = byte('A' + col%26)
		col = col/26 - 1
	}
	return string(buf[i:])
}

// LetterToColumn is the inverse of ColumnToLetter. Letters are case-insensitive.
func LetterToColumn(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty column letters", ErrBadReference)
	}
	if len(letters) > maxLetters {
		return 0, fmt.Errorf("%w: too many column letters in %q", ErrBadReference, letters)
	}
	result := 0
	for _, r := range letters {
		switch {
		case r >= 'A' && r <= 'Z':
			result = result*26 + int(r-'A') + 1
		case r >= 'a' && r <= 'z':
			result = result*26 + int(r-'a') + 1
		default:
			return 0, fmt.Errorf("%w: invalid column letters %q", ErrBadReference, letters)
		}
	}
	return result - 1, nil
}

// CellKey returns the key of the cell at (row, col): column letters followed by
// the one-based row number.
func CellKey(row, col int) string {
	return ColumnToLetter(col) + strconv.Itoa(row+1)
}

// ParseCellReference parses a single reference like "B7" or "ab12" into its
// zero-based coordinates. Anything else, ranges and function names included,
// is rejected, as is a reference beyond MaxRows or MaxCols.
func ParseCellReference(ref string) (row, col int, err error) {
	split := 0
	for split < len(ref) && isLetter(ref[split]) {
		split++
	}
	if split == 0 || split == len(ref) {
		return 0, 0, fmt.Errorf("%w: %q is not a cell reference", ErrBadReference, ref)
	}
	digits := ref[split:]
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return 0, 0, fmt.Errorf("%w: %q is not a cell reference", ErrBadReference, ref)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > MaxRows {
		return 0, 0, fmt.Errorf("%w: invalid row number in %q", ErrBadReference, ref)
	}
	col, err = LetterToColumn(ref[:split])
	if err != nil {
		return 0, 0, err
	}
	if col >= MaxCols {
		return 0, 0, fmt.Errorf("%w: column out of range in %q", ErrBadReference, ref)
	}
	return n - 1, col, nil
}

// ParseRange parses "A1:B5" into every address of the rectangle between both
// corners, in row-major order. Corners may be given in any order. A range
// covering more than MaxCells cells is rejected.
func ParseRange(rng string) ([]Address, error) {
	start, end, err := parseCorners(rng)
	if err != nil {
		return nil, err
	}
	return expand(start, end), nil
}

// parseCorners parses both halves of a range and normalizes them so that start
// is the top-left and end the bottom-right corner.
func parseCorners(rng string) (start, end Address, err error) {
	first, second, ok := strings.Cut(rng, ":")
	if !ok || strings.Contains(second, ":") {
		return start, end, fmt.Errorf("%w: %q is not a range", ErrBadReference, rng)
	}
	r1, c1, err := ParseCellReference(strings.TrimSpace(first))
	if err != nil {
		return start, end, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	r2, c2, err := ParseCellReference(strings.TrimSpace(second))
	if err != nil {
		return start, end, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	start = Address{Row: min(r1, r2), Col: min(c1, c2)}
	end = Address{Row: max(r1, r2), Col: max(c1, c2)}
	if area(start, end) > MaxCells {
		return start, end, fmt.Errorf("%w: range %q covers more than %d cells", ErrBadReference, rng, MaxCells)
	}
	return start, end, nil
}

// area returns the number of cells between both corners.
func area(start, end Address) int64 {
	return int64(end.Row-start.Row+1) * int64(end.Col-start.Col+1)
}

func expand(start, end Address) []Address {
	list := make([]Address, 0, (end.Row-start.Row+1)*(end.Col-start.Col+1))
	for r := start.Row; r <= end.Row; r++ {
		for c := start.Col; c <= end.Col; c++ {
			list = append(list, Address{Row: r, Col: c})
		}
	}
	return list
}

func isLetter(b byte) bool { return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' }
func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
