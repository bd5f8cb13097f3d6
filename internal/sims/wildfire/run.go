package wildfire

import (
	"context"

	"firegrid/internal/core"
	"firegrid/internal/series"
)

// Observer is notified with every recorded step, after the recorder saw it.
type Observer func(series.Step)

// Run records the current grid as step 0 and keeps stepping until rec stops
// or ctx is done. Each step is published whole, so cancelling never leaves a
// partially updated grid behind. The returned error is ctx.Err() on
// cancellation.
func Run(ctx context.Context, f *Fire, rec *series.Recorder, observers ...Observer) (series.Result, error) {
	record := func() bool {
		g := f.Grid()
		st := series.Step{Index: f.StepIndex(), Grid: g, Burning: g.Count(core.Burning)}
		more := rec.Record(st)
		for _, obs := range observers {
			if obs != nil {
				obs(st)
			}
		}
		return more
	}

	for more := record(); more; more = record() {
		if err := ctx.Err(); err != nil {
			rec.Cancel()
			return rec.Result(), err
		}
		f.Step()
	}

	res := rec.Result()
	f.log.Info("simulation finished",
		"steps", len(res.Points),
		"peak", res.Peak,
		"peak_step", res.PeakStep,
		"reason", string(res.Reason))
	return res, nil
}

// Simulate is a convenience wrapper that runs f for at most cfg.Steps
// recorded steps and returns the recorder for later export.
func Simulate(ctx context.Context, f *Fire, observers ...Observer) (*series.Recorder, series.Result, error) {
	rec := series.NewRecorder(f.Config().Steps)
	res, err := Run(ctx, f, rec, observers...)
	return rec, res, err
}
