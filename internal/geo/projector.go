// Package geo maps geographic coordinates onto simulation grid cells.
//
// Projection is a linear scaling of latitude and longitude inside a bounding
// box. Row 0 is the northern edge (LatMax) and column 0 the western edge
// (LonMin), which matches core.Wind where North decreases the row index.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"firegrid/internal/core"
)

// ErrDegenerateBox reports a bounding box with an empty or inverted extent.
var ErrDegenerateBox = errors.New("degenerate bounding box")

// BoundingBox is the geographic rectangle a grid discretizes.
type BoundingBox struct {
	LatMin float64 `mapstructure:"lat_min" json:"lat_min" yaml:"lat_min"`
	LatMax float64 `mapstructure:"lat_max" json:"lat_max" yaml:"lat_max"`
	LonMin float64 `mapstructure:"lon_min" json:"lon_min" yaml:"lon_min"`
	LonMax float64 `mapstructure:"lon_max" json:"lon_max" yaml:"lon_max"`
}

// Validate checks that the box has a finite, non-empty extent.
func (b BoundingBox) Validate() error {
	var errs []string
	for _, v := range []float64{b.LatMin, b.LatMax, b.LonMin, b.LonMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, "bounds must be finite")
			break
		}
	}
	if !(b.LatMin < b.LatMax) {
		errs = append(errs, fmt.Sprintf("lat_min %.4f must be below lat_max %.4f", b.LatMin, b.LatMax))
	}
	if !(b.LonMin < b.LonMax) {
		errs = append(errs, fmt.Sprintf("lon_min %.4f must be below lon_max %.4f", b.LonMin, b.LonMax))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrDegenerateBox, strings.Join(errs, "; "))
	}
	return nil
}

// Contains reports whether the point lies inside the half-open box
// (LatMin, LatMax] × [LonMin, LonMax) that projects onto the grid.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat > b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon < b.LonMax
}

// Projector maps coordinates into a rows×cols grid over Box.
type Projector struct {
	Box  BoundingBox
	Rows int
	Cols int
}

// NewProjector validates the box and grid dimensions.
func NewProjector(box BoundingBox, rows, cols int) (Projector, error) {
	if rows <= 0 || cols <= 0 {
		return Projector{}, fmt.Errorf("%w: got %dx%d", core.ErrInvalidDimensions, rows, cols)
	}
	if err := box.Validate(); err != nil {
		return Projector{}, err
	}
	return Projector{Box: box, Rows: rows, Cols: cols}, nil
}

// Project returns the grid cell containing (lat, lon). Points outside the
// grid, including non-finite input, return ok=false and are never clamped.
func (p Projector) Project(lat, lon float64) (core.Coord, bool) {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return core.Coord{}, false
	}
	latSpan := p.Box.LatMax - p.Box.LatMin
	lonSpan := p.Box.LonMax - p.Box.LonMin
	if latSpan <= 0 || lonSpan <= 0 || p.Rows <= 0 || p.Cols <= 0 {
		return core.Coord{}, false
	}
	row := math.Floor((p.Box.LatMax - lat) / latSpan * float64(p.Rows))
	col := math.Floor((lon - p.Box.LonMin) / lonSpan * float64(p.Cols))
	if row < 0 || row >= float64(p.Rows) || col < 0 || col >= float64(p.Cols) {
		return core.Coord{}, false
	}
	return core.Coord{Row: int(row), Col: int(col)}, true
}

// CellCenter returns the latitude and longitude at the centre of c.
func (p Projector) CellCenter(c core.Coord) (float64, float64) {
	latStep := (p.Box.LatMax - p.Box.LatMin) / float64(p.Rows)
	lonStep := (p.Box.LonMax - p.Box.LonMin) / float64(p.Cols)
	lat := p.Box.LatMax - (float64(c.Row)+0.5)*latStep
	lon := p.Box.LonMin + (float64(c.Col)+0.5)*lonStep
	return lat, lon
}

// Project is the free-function form of Projector.Project.
func Project(lat, lon float64, box BoundingBox, rows, cols int) (core.Coord, bool) {
	return Projector{Box: box, Rows: rows, Cols: cols}.Project(lat, lon)
}
