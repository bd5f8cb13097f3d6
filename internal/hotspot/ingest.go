package hotspot

import (
	"firegrid/internal/core"
	"firegrid/internal/geo"
)

// Stats summarises a single ingestion pass.
type Stats struct {
	// Applied counts hotspots that landed inside the grid.
	Applied int
	// Cells counts distinct cells set Burning; several hotspots may share one.
	Cells int
	// Dropped counts hotspots projecting outside the grid.
	Dropped int
	// Skipped counts hotspots with non-finite coordinates.
	Skipped int
}

// Ingest returns a copy of g with the cell under every in-range hotspot set
// Burning, whatever its prior state. Out of range and malformed hotspots are
// tallied in Stats and never abort the batch.
func Ingest(g *core.Grid, hotspots []Hotspot, proj geo.Projector) (*core.Grid, Stats) {
	var stats Stats
	seen := make(map[core.Coord]struct{})
	coords := make([]core.Coord, 0, len(hotspots))
	for _, h := range hotspots {
		if !h.Valid() {
			stats.Skipped++
			continue
		}
		c, ok := proj.Project(h.Latitude, h.Longitude)
		if !ok || !g.InBounds(c) {
			stats.Dropped++
			continue
		}
		stats.Applied++
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		coords = append(coords, c)
	}
	stats.Cells = len(coords)
	return g.With(core.Burning, coords...), stats
}

// IngestRecords decodes raw records and ingests the valid ones. Records that
// fail to decode are added to Stats.Skipped.
func IngestRecords(g *core.Grid, records []Record, proj geo.Projector) (*core.Grid, []Hotspot, Stats) {
	hotspots, skipped := Decode(records)
	next, stats := Ingest(g, hotspots, proj)
	stats.Skipped += skipped
	return next, hotspots, stats
}
