package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDimensions reports a grid constructed with non-positive rows or cols.
var ErrInvalidDimensions = errors.New("grid dimensions must be positive")

// CellState enumerates the values a grid cell can hold.
type CellState uint8

const (
	Empty CellState = iota
	Fuel
	Burning
)

// String returns the lower-case state name.
func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Fuel:
		return "fuel"
	case Burning:
		return "burning"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}

// Glyph returns the rune used by the ASCII dump.
func (s CellState) Glyph() rune {
	switch s {
	case Fuel:
		return 'T'
	case Burning:
		return '*'
	default:
		return '.'
	}
}

// Coord addresses a single grid cell.
type Coord struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Add offsets the coordinate by the provided row/column delta.
func (c Coord) Add(dr, dc int) Coord { return Coord{Row: c.Row + dr, Col: c.Col + dc} }

// Grid stores a rows×cols matrix of cell states in row-major order. A Grid is
// never modified after it is returned to a caller; derivation helpers build a
// fresh copy instead.
type Grid struct {
	rows, cols int
	data       []CellState
}

// NewGrid allocates a grid with every cell set to fill.
func NewGrid(rows, cols int, fill CellState) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	g := &Grid{rows: rows, cols: cols, data: make([]CellState, rows*cols)}
	if fill != Empty {
		for i := range g.data {
			g.data[i] = fill
		}
	}
	return g, nil
}

// MustGrid is NewGrid for dimensions known to be valid. It panics otherwise.
func MustGrid(rows, cols int, fill CellState) *Grid {
	g, err := NewGrid(rows, cols, fill)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size reports the grid dimensions with W as columns and H as rows.
func (g *Grid) Size() Size { return Size{W: g.cols, H: g.rows} }

// Len returns rows*cols.
func (g *Grid) Len() int { return len(g.data) }

// Index returns the linear slice index for c.
func (g *Grid) Index(c Coord) int { return c.Row*g.cols + c.Col }

// InBounds reports whether c addresses a cell of the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the state at c. Out of range coordinates read as Empty.
func (g *Grid) At(c Coord) CellState {
	if !g.InBounds(c) {
		return Empty
	}
	return g.data[g.Index(c)]
}

// Count returns the number of cells holding state.
func (g *Grid) Count(state CellState) int {
	n := 0
	for _, v := range g.data {
		if v == state {
			n++
		}
	}
	return n
}

// Counts tallies every state in a single pass.
func (g *Grid) Counts() map[CellState]int {
	counts := map[CellState]int{Empty: 0, Fuel: 0, Burning: 0}
	for _, v := range g.data {
		counts[v]++
	}
	return counts
}

// Cells lists the coordinates holding state in row-major order.
func (g *Grid) Cells(state CellState) []Coord {
	var out []Coord
	for i, v := range g.data {
		if v == state {
			out = append(out, Coord{Row: i / g.cols, Col: i % g.cols})
		}
	}
	return out
}

// Equal reports whether both grids have identical dimensions and states.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.data {
		if g.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// With returns a copy of the grid where every in-bounds coordinate is set to
// state. Out of range coordinates are ignored.
func (g *Grid) With(state CellState, coords ...Coord) *Grid {
	next := g.clone()
	for _, c := range coords {
		if g.InBounds(c) {
			next.data[g.Index(c)] = state
		}
	}
	return next
}

// Map builds a new grid by applying fn to every cell of g in row-major order.
// fn only ever observes g, never the grid under construction.
func (g *Grid) Map(fn func(Coord, CellState) CellState) *Grid {
	next := &Grid{rows: g.rows, cols: g.cols, data: make([]CellState, len(g.data))}
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			idx := r*g.cols + c
			next.data[idx] = fn(Coord{Row: r, Col: c}, g.data[idx])
		}
	}
	return next
}

// String renders the grid one row per line using CellState glyphs.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(len(g.data) + g.rows)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			b.WriteRune(g.data[r*g.cols+c].Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Grid) clone() *Grid {
	data := make([]CellState, len(g.data))
	copy(data, g.data)
	return &Grid{rows: g.rows, cols: g.cols, data: data}
}
