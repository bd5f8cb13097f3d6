// Package export flattens simulation runs and observations into dated point
// events and renders them as timestamped GeoJSON for map animation.
package export

import (
	"sort"
	"time"

	"firegrid/internal/core"
	"firegrid/internal/geo"
	"firegrid/internal/hotspot"
	"firegrid/internal/series"
)

// Category classifies where an event came from.
type Category string

const (
	Confirmed Category = "confirmed"
	Simulated Category = "simulated"
	Predicted Category = "predicted"
)

// Style returns the colour hint renderers use for the category.
func (c Category) Style() string {
	switch c {
	case Confirmed:
		return "red"
	case Simulated:
		return "darkred"
	case Predicted:
		return "orange"
	default:
		return "gray"
	}
}

func (c Category) label() string {
	switch c {
	case Confirmed:
		return "Confirmed fire"
	case Simulated:
		return "Simulated fire"
	case Predicted:
		return "Predicted fire"
	default:
		return "Fire"
	}
}

// Event is a single dated point on the map.
type Event struct {
	Lat      float64  `json:"lat" yaml:"lat"`
	Lon      float64  `json:"lon" yaml:"lon"`
	Time     string   `json:"time" yaml:"time"`
	Category Category `json:"category" yaml:"category"`
	Style    string   `json:"style" yaml:"style"`
	// Step is the simulation step for simulated events. Confirmed events
	// carry 0 and predicted events 1.
	Step int `json:"step" yaml:"step"`
}

func newEvent(lat, lon float64, day time.Time, cat Category, step int) Event {
	return Event{
		Lat:      lat,
		Lon:      lon,
		Time:     day.Format(hotspot.DateLayout),
		Category: cat,
		Style:    cat.Style(),
		Step:     step,
	}
}

// ExportSteps emits one event per burning cell of every recorded step. Step 0
// is the seeded grid and its cells are confirmed; later steps are simulated.
// Each step is dated origin plus its index in days, at the cell centre.
func ExportSteps(steps []series.Step, proj geo.Projector, origin time.Time) []Event {
	var out []Event
	for _, st := range steps {
		if st.Grid == nil {
			continue
		}
		cat := Simulated
		if st.Index == 0 {
			cat = Confirmed
		}
		day := origin.AddDate(0, 0, st.Index)
		for _, c := range st.Grid.Cells(core.Burning) {
			lat, lon := proj.CellCenter(c)
			out = append(out, newEvent(lat, lon, day, cat, st.Index))
		}
	}
	return out
}

// ExportObservations emits confirmed events at each hotspot's own position and
// acquisition date, and predicted events at the centre of every predicted
// cell. Hotspots without a date use fallback, as do predictions when no
// hotspot is dated; otherwise predictions fall on the day after the latest
// acquisition. Hotspots outside the projector's grid are left out.
func ExportObservations(hotspots []hotspot.Hotspot, predicted []core.Coord, proj geo.Projector, fallback time.Time) []Event {
	out := make([]Event, 0, len(hotspots)+len(predicted))
	for _, h := range hotspots {
		if !h.Valid() {
			continue
		}
		if _, ok := proj.Project(h.Latitude, h.Longitude); !ok {
			continue
		}
		day := fallback
		if h.HasDate() {
			day = h.Observed
		}
		out = append(out, newEvent(h.Latitude, h.Longitude, day, Confirmed, 0))
	}

	predictedDay := fallback
	if latest, ok := hotspot.LatestObserved(hotspots); ok {
		predictedDay = latest.AddDate(0, 0, 1)
	}
	for _, c := range predicted {
		lat, lon := proj.CellCenter(c)
		out = append(out, newEvent(lat, lon, predictedDay, Predicted, 1))
	}
	return out
}

// Merge concatenates event lists and orders them by date. Events sharing a
// date keep their input order.
func Merge(lists ...[]Event) []Event {
	var n int
	for _, l := range lists {
		n += len(l)
	}
	out := make([]Event, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// Count returns how many events fall into each category.
func Count(events []Event) map[Category]int {
	out := make(map[Category]int, 3)
	for _, e := range events {
		out[e.Category]++
	}
	return out
}
