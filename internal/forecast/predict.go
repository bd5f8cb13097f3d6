// Package forecast computes a next-day ignition frontier for map overlays.
//
// The frontier is deliberately broader than the simulation's spread rule: it
// looks at all eight neighbours of every burning cell and ignores whether a
// neighbour still holds fuel. It never feeds back into simulated state.
package forecast

import "firegrid/internal/core"

// directions lists the eight neighbour offsets in their fallback order.
var directions = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// Order returns the neighbour offsets visited for wind: the wind direction
// first, then the remaining seven in fallback order.
func Order(wind core.Wind) [][2]int {
	dr, dc := wind.Delta()
	out := make([][2]int, 0, len(directions))
	out = append(out, [2]int{dr, dc})
	for _, d := range directions {
		if d[0] == dr && d[1] == dc {
			continue
		}
		out = append(out, d)
	}
	return out
}

// PredictNext returns every in-bounds cell adjacent (8-connected) to a burning
// cell that is not itself burning. Each coordinate appears once; ordering
// follows the input cells and, per cell, Order(wind).
func PredictNext(burning []core.Coord, rows, cols int, wind core.Wind) []core.Coord {
	lit := make(map[core.Coord]struct{}, len(burning))
	for _, c := range burning {
		lit[c] = struct{}{}
	}

	order := Order(wind)
	seen := make(map[core.Coord]struct{})
	var out []core.Coord
	for _, c := range burning {
		for _, d := range order {
			n := c.Add(d[0], d[1])
			if n.Row < 0 || n.Row >= rows || n.Col < 0 || n.Col >= cols {
				continue
			}
			if _, ok := lit[n]; ok {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}

// Frontier runs PredictNext over the burning cells of g.
func Frontier(g *core.Grid, wind core.Wind) []core.Coord {
	return PredictNext(g.Cells(core.Burning), g.Rows(), g.Cols(), wind)
}
