package workbook

import "fmt"

// Sheet is a row/column addressed view of one worksheet.
// Rows and columns are 1-based, as in the spreadsheet.
type Sheet interface {
	Name() string
	Cell(row, col int) Value
	MaxRow() int
}

// Grid is an in-memory Sheet
type Grid struct {
	name string
	rows [][]Value
}

// NewGrid creates an empty grid
func NewGrid(name string) *Grid {
	return &Grid{name: name}
}

// Name returns the sheet name
func (g *Grid) Name() string { return g.name }

// MaxRow returns the last populated row
func (g *Grid) MaxRow() int { return len(g.rows) }

// Cell returns the value at row, col; cells outside the grid are empty
func (g *Grid) Cell(row, col int) Value {
	if row < 1 || col < 1 || row > len(g.rows) {
		return Empty
	}
	r := g.rows[row-1]
	if col > len(r) {
		return Empty
	}
	return r[col-1]
}

// Set stores v at row, col, growing the grid as needed
func (g *Grid) Set(row, col int, v Value) *Grid {
	if row < 1 || col < 1 {
		return g
	}
	for len(g.rows) < row {
		g.rows = append(g.rows, nil)
	}
	r := g.rows[row-1]
	for len(r) < col {
		r = append(r, Empty)
	}
	r[col-1] = v
	g.rows[row-1] = r
	return g
}

// SetRow stores values starting at column 1 of row
func (g *Grid) SetRow(row int, values ...Value) *Grid {
	for i, v := range values {
		g.Set(row, i+1, v)
	}
	return g
}

// Column letters for layout tables
const (
	ColA = iota + 1
	ColB
	ColC
	ColD
	ColE
	ColF
	ColG
	ColH
	ColI
	ColJ
	ColK
	ColL
)

func (g *Grid) grow(rows int) {
	for len(g.rows) < rows {
		g.rows = append(g.rows, nil)
	}
}

// Source hands out sheets by name
type Source interface {
	Sheet(name string) (*Grid, error)
}

// MemoryBook is a Source backed by in-memory grids
type MemoryBook map[string]*Grid

// Sheet returns the grid registered under name
func (b MemoryBook) Sheet(name string) (*Grid, error) {
	g, ok := b[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return g, nil
}
