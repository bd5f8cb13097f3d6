// Package wildfire implements the grid fire-spread simulation.
package wildfire

import (
	"fmt"
	"log/slog"

	"firegrid/internal/core"
	"firegrid/internal/geo"
	"firegrid/internal/hotspot"
)

var discardLogger = slog.New(slog.DiscardHandler)

// Fire holds the published grid of a running simulation together with the
// rule, wind and random source that advance it.
type Fire struct {
	cfg  Config
	proj geo.Projector
	rule Rule

	grid  *core.Grid
	step  int
	rng   *core.RNG
	log   *slog.Logger
	stats hotspot.Stats
}

// New returns a Fire simulation with the provided dimensions using defaults.
func New(rows, cols int) (*Fire, error) {
	cfg := DefaultConfig()
	cfg.Rows = rows
	cfg.Cols = cols
	return NewWithConfig(cfg)
}

// NewWithConfig validates cfg and returns a reset simulation. Configuration
// problems are reported here rather than mid-run.
func NewWithConfig(cfg Config) (*Fire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	proj, err := geo.NewProjector(cfg.Box, cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	rule, err := RuleByName(cfg.Rule, cfg.Params)
	if err != nil {
		return nil, err
	}
	f := &Fire{
		cfg:  cfg,
		proj: proj,
		rule: rule,
		log:  slog.Default(),
	}
	f.Reset(0)
	return f, nil
}

// WithLogger sets the logger used for step and seeding events.
func (f *Fire) WithLogger(l *slog.Logger) *Fire {
	if l != nil {
		f.log = l
	}
	return f
}

// Name returns the simulation identifier.
func (f *Fire) Name() string { return "wildfire" }

// Size reports the grid dimensions.
func (f *Fire) Size() core.Size { return core.Size{W: f.cfg.Cols, H: f.cfg.Rows} }

// Grid returns the currently published grid.
func (f *Fire) Grid() *core.Grid { return f.grid }

// StepIndex returns how many steps have been taken since the last reset.
func (f *Fire) StepIndex() int { return f.step }

// Config returns the configuration the simulation was built with.
func (f *Fire) Config() Config { return f.cfg }

// Projector returns the geographic projection of the grid.
func (f *Fire) Projector() geo.Projector { return f.proj }

// Rule returns the active ignition rule.
func (f *Fire) Rule() Rule { return f.rule }

// IngestStats returns the summary of the last Seed call.
func (f *Fire) IngestStats() hotspot.Stats { return f.stats }

// Reset refills the grid with fuel and reseeds the random source. A zero seed
// falls back to the configured one. When IgniteCenter is set the central cell
// starts burning.
func (f *Fire) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = f.cfg.Seed
	}
	f.rng = core.NewRNG(effective)
	f.step = 0
	f.stats = hotspot.Stats{}
	f.grid = core.MustGrid(f.cfg.Rows, f.cfg.Cols, core.Fuel)
	if f.cfg.Params.IgniteCenter {
		f.grid = f.grid.With(core.Burning, core.Coord{Row: f.cfg.Rows / 2, Col: f.cfg.Cols / 2})
	}
}

// Seed replaces the initial ignition with the supplied observations: the grid
// is refilled with fuel and every in-range hotspot is set burning.
func (f *Fire) Seed(hotspots []hotspot.Hotspot) hotspot.Stats {
	base := core.MustGrid(f.cfg.Rows, f.cfg.Cols, core.Fuel)
	f.grid, f.stats = hotspot.Ingest(base, hotspots, f.proj)
	f.step = 0
	f.log.Info("seeded grid from hotspots",
		"hotspots", len(hotspots),
		"applied", f.stats.Applied,
		"cells", f.stats.Cells,
		"dropped", f.stats.Dropped,
		"skipped", f.stats.Skipped)
	return f.stats
}

// Ignite sets the provided cells burning on top of the current grid.
func (f *Fire) Ignite(coords ...core.Coord) {
	f.grid = f.grid.With(core.Burning, coords...)
}

// Step advances the simulation by one synchronous update.
func (f *Fire) Step() {
	f.grid = Step(f.grid, f.cfg.Wind, f.rule, f.rng)
	f.step++
	f.log.Debug("step", "index", f.step, "burning", f.grid.Count(core.Burning))
}

func init() {
	core.Register("wildfire", func(cfg map[string]string) (core.Sim, error) {
		return NewWithConfig(FromMap(cfg))
	})
}
