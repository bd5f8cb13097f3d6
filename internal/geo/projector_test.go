package geo

import (
	"errors"
	"math"
	"testing"

	"firegrid/internal/core"
)

var india = BoundingBox{LatMin: 6, LatMax: 36, LonMin: 68, LonMax: 98}

func TestProjectNorthIsRowZero(t *testing.T) {
	p, err := NewProjector(india, 50, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name     string
		lat, lon float64
		want     core.Coord
	}{
		{"north-west corner", 36, 68, core.Coord{Row: 0, Col: 0}},
		{"just inside south-east", 6.01, 97.99, core.Coord{Row: 49, Col: 49}},
		{"centre", 21, 83, core.Coord{Row: 25, Col: 25}},
		{"northern band", 35.5, 70, core.Coord{Row: 0, Col: 3}},
		{"southern band", 6.5, 70, core.Coord{Row: 49, Col: 3}},
	}
	for _, tc := range cases {
		got, ok := p.Project(tc.lat, tc.lon)
		if !ok {
			t.Fatalf("%s: expected (%f,%f) to project in range", tc.name, tc.lat, tc.lon)
		}
		if got != tc.want {
			t.Fatalf("%s: got %+v, expected %+v", tc.name, got, tc.want)
		}
	}
}

func TestProjectDropsOutsideBox(t *testing.T) {
	p, err := NewProjector(india, 10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outside := [][2]float64{
		{36.001, 80}, // north of box
		{6, 80},      // southern edge maps to row == rows
		{5, 80},
		{20, 67.9},
		{20, 98}, // eastern edge maps to col == cols
		{math.NaN(), 80},
		{20, math.Inf(1)},
	}
	for _, pt := range outside {
		if c, ok := p.Project(pt[0], pt[1]); ok {
			t.Fatalf("expected (%v,%v) to be dropped, got %+v", pt[0], pt[1], c)
		}
	}
}

func TestProjectAgreesWithContains(t *testing.T) {
	p, _ := NewProjector(india, 7, 13)
	for lat := 4.0; lat <= 38; lat += 0.37 {
		for lon := 66.0; lon <= 100; lon += 0.41 {
			_, ok := p.Project(lat, lon)
			if ok != india.Contains(lat, lon) {
				t.Fatalf("Project ok=%v but Contains=%v for (%f,%f)", ok, !ok, lat, lon)
			}
		}
	}
}

func TestCellCenterRoundTrips(t *testing.T) {
	p, _ := NewProjector(india, 50, 40)
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			want := core.Coord{Row: r, Col: c}
			lat, lon := p.CellCenter(want)
			got, ok := p.Project(lat, lon)
			if !ok || got != want {
				t.Fatalf("cell %+v centre (%f,%f) projected to %+v ok=%v", want, lat, lon, got, ok)
			}
		}
	}
}

func TestNewProjectorFailsFast(t *testing.T) {
	if _, err := NewProjector(india, 0, 10); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := NewProjector(india, 10, -1); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
	degenerate := []BoundingBox{
		{LatMin: 10, LatMax: 10, LonMin: 0, LonMax: 1},
		{LatMin: 20, LatMax: 10, LonMin: 0, LonMax: 1},
		{LatMin: 0, LatMax: 1, LonMin: 5, LonMax: 5},
		{LatMin: math.NaN(), LatMax: 1, LonMin: 0, LonMax: 1},
	}
	for _, box := range degenerate {
		if _, err := NewProjector(box, 10, 10); !errors.Is(err, ErrDegenerateBox) {
			t.Fatalf("expected ErrDegenerateBox for %+v, got %v", box, err)
		}
	}
}

func TestProjectFreeFunction(t *testing.T) {
	got, ok := Project(21, 83, india, 50, 50)
	if !ok || got != (core.Coord{Row: 25, Col: 25}) {
		t.Fatalf("got %+v ok=%v", got, ok)
	}
}
