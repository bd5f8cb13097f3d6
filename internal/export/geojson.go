package export

import "fmt"

// FeatureCollection is a GeoJSON collection of point features in the shape
// expected by time-slider map plugins: every feature carries a "time"
// property and a "style" object.
type FeatureCollection struct {
	Type       string         `json:"type" yaml:"type"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
	Features   []Feature      `json:"features" yaml:"features"`
}

// Feature is a single GeoJSON point feature.
type Feature struct {
	Type       string         `json:"type" yaml:"type"`
	Geometry   Geometry       `json:"geometry" yaml:"geometry"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

// Geometry is a GeoJSON point. Coordinates are [lon, lat].
type Geometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"`
}

// Period is the animation step advertised to renderers.
const Period = "P1D"

// NewFeatureCollection converts events into a FeatureCollection. runID is
// recorded on the collection when non-empty.
func NewFeatureCollection(events []Event, runID string) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(events)),
		Properties: map[string]any{
			"period": Period,
		},
	}
	if runID != "" {
		fc.Properties["run"] = runID
	}
	for _, e := range events {
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{e.Lon, e.Lat},
			},
			Properties: map[string]any{
				"time":     e.Time,
				"style":    map[string]string{"color": e.Style},
				"icon":     "circle",
				"popup":    fmt.Sprintf("%s (%s)", e.Category.label(), e.Time),
				"category": string(e.Category),
				"step":     e.Step,
			},
		})
	}
	return fc
}
