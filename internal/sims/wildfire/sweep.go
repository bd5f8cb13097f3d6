package wildfire

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"firegrid/internal/core"
	"firegrid/internal/hotspot"
	"firegrid/internal/series"
)

// Candidate is one point of a spread-parameter sweep.
type Candidate struct {
	PWind  float64
	POther float64
	Seed   int64
}

// String formats the candidate for log and CLI output.
func (c Candidate) String() string {
	return fmt.Sprintf("p_wind=%.2f p_other=%.2f seed=%d", c.PWind, c.POther, c.Seed)
}

// SweepResult captures telemetry from a single candidate run.
type SweepResult struct {
	Candidate Candidate
	// Burned counts cells that burned at any point during the run.
	Burned int
	// Steps is the length of the recorded series.
	Steps    int
	Peak     int
	PeakStep int
	Reason   series.StopReason
}

// Candidates builds the cartesian product of the provided options.
func Candidates(pWinds, pOthers []float64, seeds []int64) []Candidate {
	out := make([]Candidate, 0, len(pWinds)*len(pOthers)*len(seeds))
	for _, pw := range pWinds {
		for _, po := range pOthers {
			for _, seed := range seeds {
				out = append(out, Candidate{PWind: pw, POther: po, Seed: seed})
			}
		}
	}
	return out
}

// Evaluate runs a single probabilistic simulation for candidate on top of
// base. Hotspots, when given, replace the default ignition.
func Evaluate(ctx context.Context, base Config, c Candidate, hotspots []hotspot.Hotspot) (SweepResult, error) {
	cfg := base
	cfg.Rule = RuleProbabilistic
	cfg.Seed = c.Seed
	cfg.Params.PWind = c.PWind
	cfg.Params.POther = c.POther

	f, err := NewWithConfig(cfg)
	if err != nil {
		return SweepResult{}, err
	}
	f.WithLogger(discardLogger)
	if len(hotspots) > 0 {
		f.Seed(hotspots)
	}
	initialEmpty := f.Grid().Count(core.Empty)

	rec := series.NewRecorder(cfg.Steps)
	res, err := Run(ctx, f, rec)
	if err != nil {
		return SweepResult{}, err
	}
	final := f.Grid()
	return SweepResult{
		Candidate: c,
		Burned:    final.Count(core.Empty) - initialEmpty + final.Count(core.Burning),
		Steps:     len(res.Points),
		Peak:      res.Peak,
		PeakStep:  res.PeakStep,
		Reason:    res.Reason,
	}, nil
}

// Sweep evaluates every candidate with at most workers concurrent runs. Each
// run owns its grid and random source, so runs share nothing. Results keep
// the candidate order.
func Sweep(ctx context.Context, base Config, candidates []Candidate, hotspots []hotspot.Hotspot, workers int) ([]SweepResult, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]SweepResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range candidates {
		g.Go(func() error {
			res, err := Evaluate(gctx, base, c, hotspots)
			if err != nil {
				return fmt.Errorf("candidate %s: %w", c, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RankByBurned sorts results by burned area, largest first, keeping the
// candidate order for ties.
func RankByBurned(results []SweepResult) []SweepResult {
	out := append([]SweepResult(nil), results...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Burned > out[j].Burned })
	return out
}
