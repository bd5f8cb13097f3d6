// Package app wires configuration, ingestion, simulation, forecasting and
// export into a single headless run.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"firegrid/internal/config"
	"firegrid/internal/core"
	"firegrid/internal/export"
	"firegrid/internal/forecast"
	"firegrid/internal/hotspot"
	"firegrid/internal/metrics"
	"firegrid/internal/render"
	"firegrid/internal/series"
	"firegrid/internal/sims/wildfire"
)

// App runs one configured simulation.
type App struct {
	cfg   *config.Config
	log   *slog.Logger
	runID string
	out   io.Writer
	now   func() time.Time

	watch bool
	tps   int
}

// Report summarises a finished run.
type Report struct {
	RunID    string
	Result   series.Result
	Ingest   hotspot.Stats
	Hotspots int
	Frontier []core.Coord
	Events   int
	Origin   time.Time
}

// New prepares a run of cfg with a fresh run ID.
func New(cfg *config.Config, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	id := uuid.NewString()
	return &App{
		cfg:   cfg,
		log:   log.With("run", id),
		runID: id,
		out:   os.Stdout,
		now:   time.Now,
	}
}

// RunID identifies this run in logs, metrics and exports.
func (a *App) RunID() string { return a.runID }

// WithOutput redirects the series and frame output.
func (a *App) WithOutput(w io.Writer) *App {
	if w != nil {
		a.out = w
	}
	return a
}

// WithWatch enables text frames paced at tps frames per second.
func (a *App) WithWatch(tps int) *App {
	a.watch = true
	a.tps = tps
	return a
}

// Build creates the simulation and seeds it from the configured hotspot file,
// if any. The returned hotspots are the decoded observations.
func (a *App) Build() (*wildfire.Fire, []hotspot.Hotspot, hotspot.Stats, error) {
	if !a.cfg.Sim.WindKnown() {
		a.log.Warn("unknown wind direction, using east", "wind", a.cfg.Sim.Wind)
	}
	fire, err := wildfire.NewWithConfig(a.cfg.Sim.Wildfire())
	if err != nil {
		return nil, nil, hotspot.Stats{}, err
	}
	fire.WithLogger(a.log)

	if a.cfg.Input.Hotspots == "" {
		return fire, nil, hotspot.Stats{}, nil
	}
	spots, skipped, err := hotspot.ReadFile(a.cfg.Input.Hotspots)
	if err != nil {
		return nil, nil, hotspot.Stats{}, err
	}
	stats := fire.Seed(spots)
	stats.Skipped += skipped
	if stats.Cells == 0 {
		a.log.Warn("no hotspot fell inside the grid", "file", a.cfg.Input.Hotspots)
	}
	return fire, spots, stats, nil
}

// origin picks the date of step 0: the configured origin, else the latest
// acquisition date, else today.
func (a *App) origin(spots []hotspot.Hotspot) (time.Time, error) {
	if t, ok, err := a.cfg.Input.OriginDate(); err != nil || ok {
		return t, err
	}
	if latest, ok := hotspot.LatestObserved(spots); ok {
		return latest, nil
	}
	y, m, d := a.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// Run executes the simulation, prints the burning series and writes every
// configured output. On cancellation the partial series is still exported.
func (a *App) Run(ctx context.Context) (Report, error) {
	report := Report{RunID: a.runID}

	fire, spots, stats, err := a.Build()
	if err != nil {
		return report, err
	}
	report.Ingest = stats
	report.Hotspots = len(spots)

	m := metrics.New(a.runID)
	if a.cfg.Input.Hotspots != "" {
		m.ObserveIngest(stats)
	}

	frontier := forecast.Frontier(fire.Grid(), fire.Config().Wind)
	report.Frontier = frontier
	m.ObserveFrontier(len(frontier))

	observers := []wildfire.Observer{m.ObserveStep, a.printStep}
	if a.watch {
		observers = append(observers, a.frameObserver(frontier))
	}

	a.log.Info("simulation starting",
		"rows", fire.Config().Rows,
		"cols", fire.Config().Cols,
		"rule", fire.Rule().Name(),
		"wind", fire.Config().Wind.String(),
		"burning", fire.Grid().Count(core.Burning))
	rec, res, runErr := wildfire.Simulate(ctx, fire, observers...)
	report.Result = res
	m.ObserveResult(res)

	origin, err := a.origin(spots)
	if err != nil {
		return report, err
	}
	report.Origin = origin

	events := a.events(rec, spots, frontier, fire, origin)
	report.Events = len(events)
	if err := a.writeOutputs(events, res); err != nil {
		return report, err
	}
	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := ensureDir(path); err != nil {
			return report, err
		}
		if err := m.WriteTextfile(path); err != nil {
			return report, err
		}
	}
	return report, runErr
}

func (a *App) events(rec *series.Recorder, spots []hotspot.Hotspot, frontier []core.Coord, fire *wildfire.Fire, origin time.Time) []export.Event {
	proj := fire.Projector()
	steps := rec.Steps()
	var observed []export.Event
	if len(spots) > 0 {
		// Observed hotspots replace the step 0 cell centres.
		observed = export.ExportObservations(spots, frontier, proj, origin)
		if len(steps) > 0 {
			steps = steps[1:]
		}
	} else {
		observed = export.ExportObservations(nil, frontier, proj, origin.AddDate(0, 0, 1))
	}
	return export.Merge(observed, export.ExportSteps(steps, proj, origin))
}

type seriesDoc struct {
	Run           string `json:"run" yaml:"run"`
	series.Result `json:",inline" yaml:",inline"`
}

func (a *App) writeOutputs(events []export.Event, res series.Result) error {
	out := a.cfg.Output
	if out.Events != "" {
		if err := writeFile(out.Events, events); err != nil {
			return err
		}
		a.log.Info("wrote events", "path", out.Events, "events", len(events))
	}
	if out.GeoJSON != "" {
		if err := writeFile(out.GeoJSON, export.NewFeatureCollection(events, a.runID)); err != nil {
			return err
		}
		a.log.Info("wrote geojson", "path", out.GeoJSON)
	}
	if out.Series != "" {
		if err := writeFile(out.Series, seriesDoc{Run: a.runID, Result: res}); err != nil {
			return err
		}
		a.log.Info("wrote series", "path", out.Series, "points", len(res.Points))
	}
	return nil
}

func (a *App) printStep(st series.Step) {
	if a.watch {
		return
	}
	fmt.Fprintf(a.out, "step %d: %d burning\n", st.Index, st.Burning)
}

func (a *App) frameObserver(frontier []core.Coord) wildfire.Observer {
	pacer := core.NewFixedStep(a.tps)
	return func(st series.Step) {
		frame := render.Frame{Title: "wildfire", Step: st.Index, Grid: st.Grid}
		if st.Index == 0 {
			frame.Frontier = frontier
		} else {
			pacer.Wait()
		}
		if err := render.Draw(a.out, frame, nil); err != nil {
			a.log.Warn("frame output failed", "err", err)
		}
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

func writeFile(path string, v any) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.Write(f, v, export.FormatFor(path)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
