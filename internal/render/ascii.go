// Package render draws grids as text frames for terminal watch mode.
package render

import (
	"bufio"
	"fmt"
	"io"

	"firegrid/internal/core"
)

// Palette maps cell states onto the runes used in a frame.
type Palette map[core.CellState]rune

// DefaultPalette uses the glyphs of core.CellState.
var DefaultPalette = Palette{
	core.Fuel:    core.Fuel.Glyph(),
	core.Burning: core.Burning.Glyph(),
	core.Empty:   core.Empty.Glyph(),
}

// FrontierGlyph marks predicted cells in an overlay.
const FrontierGlyph = 'o'

func (p Palette) glyph(s core.CellState) rune {
	if r, ok := p[s]; ok {
		return r
	}
	return '?'
}

// Frame describes one drawn step.
type Frame struct {
	Title    string
	Step     int
	Grid     *core.Grid
	Frontier []core.Coord
}

// Status returns the one-line summary printed above the grid.
func (f Frame) Status() string {
	counts := f.Grid.Counts()
	s := fmt.Sprintf("step %d  burning %d  fuel %d  burned %d",
		f.Step, counts[core.Burning], counts[core.Fuel], counts[core.Empty])
	if f.Title != "" {
		s = f.Title + "  " + s
	}
	if len(f.Frontier) > 0 {
		s += fmt.Sprintf("  frontier %d", len(f.Frontier))
	}
	return s
}

// Draw writes the status line followed by one text row per grid row.
// Frontier cells that are not burning are drawn with FrontierGlyph.
func Draw(w io.Writer, f Frame, p Palette) error {
	if p == nil {
		p = DefaultPalette
	}
	overlay := make(map[core.Coord]struct{}, len(f.Frontier))
	for _, c := range f.Frontier {
		overlay[c] = struct{}{}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, f.Status())
	for r := 0; r < f.Grid.Rows(); r++ {
		for c := 0; c < f.Grid.Cols(); c++ {
			at := core.Coord{Row: r, Col: c}
			state := f.Grid.At(at)
			if _, ok := overlay[at]; ok && state != core.Burning {
				bw.WriteRune(FrontierGlyph)
				continue
			}
			bw.WriteRune(p.glyph(state))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
