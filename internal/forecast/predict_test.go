package forecast

import (
	"testing"

	"firegrid/internal/core"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPredictNext(t *testing.T) {
	Convey("Given a single burning cell in the middle of a 5x5 grid", t, func() {
		burning := []core.Coord{{Row: 2, Col: 2}}

		Convey("When predicting with an easterly wind", func() {
			got := PredictNext(burning, 5, 5, core.East)

			Convey("All eight neighbours are predicted", func() {
				So(len(got), ShouldEqual, 8)
			})

			Convey("The wind-aligned neighbour comes first", func() {
				So(got[0], ShouldResemble, core.Coord{Row: 2, Col: 3})
			})

			Convey("The origin is never predicted", func() {
				So(contains(got, core.Coord{Row: 2, Col: 2}), ShouldBeFalse)
			})
		})

		Convey("When predicting with a northerly wind", func() {
			got := PredictNext(burning, 5, 5, core.North)
			So(got[0], ShouldResemble, core.Coord{Row: 1, Col: 2})
		})
	})

	Convey("Given burning cells on a grid corner", t, func() {
		burning := []core.Coord{{Row: 0, Col: 0}}
		got := PredictNext(burning, 3, 3, core.West)

		Convey("Off-grid neighbours are discarded", func() {
			So(len(got), ShouldEqual, 3)
			So(contains(got, core.Coord{Row: 0, Col: 1}), ShouldBeTrue)
			So(contains(got, core.Coord{Row: 1, Col: 0}), ShouldBeTrue)
			So(contains(got, core.Coord{Row: 1, Col: 1}), ShouldBeTrue)
		})
	})

	Convey("Given adjacent burning cells sharing neighbours", t, func() {
		burning := []core.Coord{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 1}}
		got := PredictNext(burning, 4, 4, core.South)

		Convey("No burning cell is predicted and nothing repeats", func() {
			seen := map[core.Coord]bool{}
			for _, c := range got {
				So(seen[c], ShouldBeFalse)
				seen[c] = true
				for _, b := range burning {
					So(c, ShouldNotResemble, b)
				}
			}
		})

		Convey("The frontier is the full 8-neighbourhood union", func() {
			// Union of neighbourhoods inside a 4x4 grid minus the burning cells.
			So(len(got), ShouldEqual, 12)
		})
	})

	Convey("Given a grid with fuel and empty cells", t, func() {
		g := core.MustGrid(3, 3, core.Empty).With(core.Burning, core.Coord{Row: 1, Col: 1})

		Convey("Frontier ignores the fuel/empty distinction", func() {
			So(len(Frontier(g, core.East)), ShouldEqual, 8)
		})
	})
}

func contains(coords []core.Coord, want core.Coord) bool {
	for _, c := range coords {
		if c == want {
			return true
		}
	}
	return false
}

func TestOrderPutsWindFirstWithoutDuplicates(t *testing.T) {
	for _, w := range []core.Wind{core.North, core.South, core.East, core.West} {
		order := Order(w)
		if len(order) != 8 {
			t.Fatalf("%v: expected 8 directions, got %d", w, len(order))
		}
		dr, dc := w.Delta()
		if order[0] != [2]int{dr, dc} {
			t.Fatalf("%v: expected wind direction first, got %v", w, order[0])
		}
		seen := map[[2]int]bool{}
		for _, d := range order {
			if seen[d] {
				t.Fatalf("%v: duplicate direction %v", w, d)
			}
			seen[d] = true
		}
	}
}
