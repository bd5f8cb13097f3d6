package wildfire

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"firegrid/internal/core"
	"firegrid/internal/geo"
	"firegrid/internal/hotspot"
	"firegrid/internal/series"
)

func newTestFire(t *testing.T, cfg Config) *Fire {
	t.Helper()
	f, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return f.WithLogger(discardLogger)
}

func smallConfig(rows, cols int) Config {
	cfg := DefaultConfig()
	cfg.Rows = rows
	cfg.Cols = cols
	cfg.Steps = 0
	return cfg
}

func TestNewIgnitesCentre(t *testing.T) {
	f, err := New(5, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	burning := f.Grid().Cells(core.Burning)
	if len(burning) != 1 || burning[0] != (core.Coord{Row: 2, Col: 2}) {
		t.Fatalf("expected centre ignition, got %v", burning)
	}
	if f.Name() != "wildfire" {
		t.Fatalf("unexpected name %q", f.Name())
	}
	if sz := f.Size(); sz.W != 5 || sz.H != 5 {
		t.Fatalf("unexpected size %+v", sz)
	}
}

func TestNewWithConfigFailsFast(t *testing.T) {
	cases := map[string]func(*Config){
		"zero rows":      func(c *Config) { c.Rows = 0 },
		"negative cols":  func(c *Config) { c.Cols = -3 },
		"inverted box":   func(c *Config) { c.Box.LatMin, c.Box.LatMax = 36, 6 },
		"unknown rule":   func(c *Config) { c.Rule = "lightning" },
		"negative steps": func(c *Config) { c.Steps = -1 },
		"p_wind above 1": func(c *Config) { c.Params.PWind = 1.5 },
		"p_other below 0": func(c *Config) {
			c.Params.POther = -0.1
		},
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if _, err := NewWithConfig(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 0
	cfg.Rule = "nope"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"grid must be at least 1x1", `unknown rule "nope"`} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q does not mention %q", msg, want)
		}
	}
}

func TestFromMapParsesKnownKeys(t *testing.T) {
	cfg := FromMap(map[string]string{
		"rows":          "12",
		"cols":          "8",
		"lat_min":       "10.5",
		"lat_max":       "20",
		"lon_min":       "70",
		"lon_max":       "80.25",
		"wind":          "north",
		"rule":          "wind",
		"steps":         "0",
		"seed":          "-4",
		"p_wind":        "0.75",
		"p_other":       "0.05",
		"ignite_center": "false",
	})
	want := Config{
		Rows:  12,
		Cols:  8,
		Box:   geo.BoundingBox{LatMin: 10.5, LatMax: 20, LonMin: 70, LonMax: 80.25},
		Wind:  core.North,
		Rule:  RuleProbabilistic,
		Steps: 0,
		Seed:  -4,
		Params: Params{
			PWind:        0.75,
			POther:       0.05,
			IgniteCenter: false,
		},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("FromMap mismatch\n got %+v\nwant %+v", cfg, want)
	}
}

func TestFromMapKeepsDefaultsOnBadInput(t *testing.T) {
	cfg := FromMap(map[string]string{
		"rows":    "-1",
		"wind":    "sideways",
		"rule":    "???",
		"p_wind":  "2",
		"p_other": "abc",
	})
	def := DefaultConfig()
	if cfg.Rows != def.Rows || cfg.Rule != def.Rule {
		t.Fatalf("expected defaults to survive bad input, got %+v", cfg)
	}
	if cfg.Wind != core.East {
		t.Fatalf("unknown wind should fall back to East, got %v", cfg.Wind)
	}
	if cfg.Params.PWind != def.Params.PWind || cfg.Params.POther != def.Params.POther {
		t.Fatalf("probabilities should keep defaults, got %+v", cfg.Params)
	}
}

func TestSnapshotValuesRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 17, 23
	cfg.Box = geo.BoundingBox{LatMin: -12.25, LatMax: 3.5, LonMin: 100, LonMax: 130.125}
	cfg.Wind = core.West
	cfg.Rule = RuleProbabilistic
	cfg.Steps = 44
	cfg.Seed = 987654321
	cfg.Params = Params{PWind: 0.65, POther: 0.1, IgniteCenter: false}

	got := FromMap(cfg.Snapshot().Values())
	if !reflect.DeepEqual(got, cfg) {
		t.Fatalf("snapshot round trip mismatch\n got %+v\nwant %+v", got, cfg)
	}
}

func TestRuleByName(t *testing.T) {
	params := Params{PWind: 0.8, POther: 0.2}
	cases := map[string]Rule{
		"deterministic": Deterministic{},
		"Contact":       Deterministic{},
		"probabilistic": ProbabilisticWind{PWind: 0.8, POther: 0.2},
		" WIND ":        ProbabilisticWind{PWind: 0.8, POther: 0.2},
	}
	for name, want := range cases {
		got, err := RuleByName(name, params)
		if err != nil {
			t.Fatalf("RuleByName(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("RuleByName(%q) = %#v, expected %#v", name, got, want)
		}
	}
	if _, err := RuleByName("spontaneous", params); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRegistryBuildsWildfire(t *testing.T) {
	factory, ok := core.Sims()["wildfire"]
	if !ok {
		t.Fatal("wildfire not registered")
	}
	sim, err := factory(map[string]string{"rows": "7", "cols": "9"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if sz := sim.Size(); sz.W != 9 || sz.H != 7 {
		t.Fatalf("unexpected size %+v", sz)
	}
}

func TestRunBurnsOutDeterministically(t *testing.T) {
	f := newTestFire(t, smallConfig(5, 5))
	rec := series.NewRecorder(0)

	var seen []int
	res, err := Run(context.Background(), f, rec, func(s series.Step) { seen = append(seen, s.Index) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []series.Point{
		{Step: 0, Burning: 1},
		{Step: 1, Burning: 4},
		{Step: 2, Burning: 8},
		{Step: 3, Burning: 8},
		{Step: 4, Burning: 4},
		{Step: 5, Burning: 0},
	}
	if !reflect.DeepEqual(res.Points, want) {
		t.Fatalf("points = %v, expected %v", res.Points, want)
	}
	if !res.BurnedOut() {
		t.Fatalf("expected burned_out, got %q", res.Reason)
	}
	if res.Peak != 8 || res.PeakStep != 2 {
		t.Fatalf("peak = %d at %d, expected 8 at 2", res.Peak, res.PeakStep)
	}
	if !reflect.DeepEqual(seen, []int{0, 1, 2, 3, 4, 5}) {
		t.Fatalf("observer saw %v", seen)
	}
	if f.Grid().Count(core.Empty) != 25 {
		t.Fatalf("expected the whole grid burned, got\n%s", f.Grid())
	}
}

func TestRunStopsAtCeiling(t *testing.T) {
	cfg := smallConfig(5, 5)
	cfg.Steps = 3
	f := newTestFire(t, cfg)

	rec, res, err := Simulate(context.Background(), f)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if rec.Len() != 3 || res.Reason != series.ReasonCeiling {
		t.Fatalf("expected 3 steps stopped by ceiling, got %d (%q)", rec.Len(), res.Reason)
	}
	if f.StepIndex() != 2 {
		t.Fatalf("expected two updates, got %d", f.StepIndex())
	}
}

func TestRunTerminatesWithoutCeiling(t *testing.T) {
	cfg := smallConfig(30, 30)
	cfg.Rule = RuleProbabilistic
	f := newTestFire(t, cfg)

	rec, res, err := Simulate(context.Background(), f)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if !res.BurnedOut() {
		t.Fatalf("expected burn out, got %q", res.Reason)
	}
	if rec.Len() > 30*30+1 {
		t.Fatalf("series longer than fuel allows: %d", rec.Len())
	}
	last := res.Points[len(res.Points)-1]
	if last.Burning != 0 {
		t.Fatalf("final point should have zero burning, got %+v", last)
	}
	for _, p := range res.Points[:len(res.Points)-1] {
		if p.Burning == 0 {
			t.Fatalf("zero burning recorded before the end: %v", res.Points)
		}
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	f := newTestFire(t, smallConfig(10, 10))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := series.NewRecorder(0)
	res, err := Run(ctx, f, rec)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res.Reason != series.ReasonCancelled || rec.Len() != 1 {
		t.Fatalf("expected one recorded step and cancelled reason, got %d (%q)", rec.Len(), res.Reason)
	}
	if f.StepIndex() != 0 {
		t.Fatalf("no update should run after cancellation, got %d", f.StepIndex())
	}
}

func TestResetIsReproducible(t *testing.T) {
	cfg := smallConfig(25, 25)
	cfg.Rule = RuleProbabilistic
	f := newTestFire(t, cfg)

	advance := func() *core.Grid {
		for i := 0; i < 10; i++ {
			f.Step()
		}
		return f.Grid()
	}
	f.Reset(42)
	first := advance()
	f.Reset(42)
	second := advance()
	if !first.Equal(second) {
		t.Fatal("same seed produced different grids")
	}
}

func TestSeedReplacesCentreIgnition(t *testing.T) {
	cfg := smallConfig(50, 50)
	f := newTestFire(t, cfg)
	spots := []hotspot.Hotspot{
		{Latitude: 20.99, Longitude: 83.01, Observed: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Latitude: 35.9, Longitude: 68.1},
		{Latitude: 50, Longitude: 83},
	}
	stats := f.Seed(spots)
	if stats.Applied != 2 || stats.Dropped != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	burning := f.Grid().Cells(core.Burning)
	want := []core.Coord{{Row: 0, Col: 0}, {Row: 25, Col: 25}}
	if !reflect.DeepEqual(burning, want) {
		t.Fatalf("burning = %v, expected %v", burning, want)
	}
	if f.IngestStats() != stats {
		t.Fatalf("IngestStats = %+v, expected %+v", f.IngestStats(), stats)
	}
}

func TestSweepMatchesSequentialEvaluation(t *testing.T) {
	base := smallConfig(15, 15)
	candidates := Candidates([]float64{1, 0.6}, []float64{0, 1}, []int64{3, 4})
	if len(candidates) != 8 {
		t.Fatalf("expected 8 candidates, got %d", len(candidates))
	}

	results, err := Sweep(context.Background(), base, candidates, nil, 4)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	for i, c := range candidates {
		seq, err := Evaluate(context.Background(), base, c, nil)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if !reflect.DeepEqual(results[i], seq) {
			t.Fatalf("candidate %s: sweep %+v != sequential %+v", c, results[i], seq)
		}
	}

	line := results[0]
	if line.Candidate != (Candidate{PWind: 1, POther: 0, Seed: 3}) {
		t.Fatalf("results out of order: %+v", line.Candidate)
	}
	// Only the easterly line from the centre to the edge can burn.
	if line.Burned != 8 || line.Steps != 9 || line.Reason != series.ReasonBurnedOut {
		t.Fatalf("unexpected saturated-wind result %+v", line)
	}
	full := results[2]
	if full.Burned != 15*15 {
		t.Fatalf("p_other=1 should burn everything, got %+v", full)
	}
}

func TestRankByBurned(t *testing.T) {
	in := []SweepResult{
		{Candidate: Candidate{Seed: 1}, Burned: 5},
		{Candidate: Candidate{Seed: 2}, Burned: 9},
		{Candidate: Candidate{Seed: 3}, Burned: 5},
	}
	out := RankByBurned(in)
	seeds := []int64{out[0].Candidate.Seed, out[1].Candidate.Seed, out[2].Candidate.Seed}
	if !reflect.DeepEqual(seeds, []int64{2, 1, 3}) {
		t.Fatalf("unexpected ranking %v", seeds)
	}
	if in[0].Candidate.Seed != 1 {
		t.Fatal("RankByBurned must not reorder its input")
	}
}
