// Package series records per-step burning counts and decides when a run ends.
package series

import "firegrid/internal/core"

// Step is one propagation iteration: the grid published at Index and the
// number of burning cells in it.
type Step struct {
	Index   int
	Grid    *core.Grid
	Burning int
}

// Point is a single (step index, burning count) sample.
type Point struct {
	Step    int `json:"step" yaml:"step"`
	Burning int `json:"burning" yaml:"burning"`
}

// StopReason explains why a recorder stopped accepting steps.
type StopReason string

const (
	ReasonNone      StopReason = ""
	ReasonBurnedOut StopReason = "burned_out"
	ReasonCeiling   StopReason = "ceiling"
	ReasonCancelled StopReason = "cancelled"
)

// Recorder accumulates steps until the fire burns out or the ceiling is hit.
type Recorder struct {
	ceiling int
	steps   []Step
	reason  StopReason
}

// NewRecorder returns a recorder that accepts at most ceiling steps. A
// non-positive ceiling means the recorder only stops on burn out.
func NewRecorder(ceiling int) *Recorder {
	return &Recorder{ceiling: ceiling}
}

// Record appends step and reports whether the caller should keep advancing.
// The first step with zero burning cells is recorded and then stops the
// series. Steps offered after the recorder stopped are ignored.
func (r *Recorder) Record(step Step) bool {
	if r.reason != ReasonNone {
		return false
	}
	r.steps = append(r.steps, step)
	switch {
	case step.Burning == 0:
		r.reason = ReasonBurnedOut
	case r.ceiling > 0 && len(r.steps) >= r.ceiling:
		r.reason = ReasonCeiling
	}
	return r.reason == ReasonNone
}

// Cancel stops the recorder without recording anything further.
func (r *Recorder) Cancel() {
	if r.reason == ReasonNone {
		r.reason = ReasonCancelled
	}
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int { return len(r.steps) }

// Stopped reports whether the recorder accepts no more steps.
func (r *Recorder) Stopped() bool { return r.reason != ReasonNone }

// Reason returns why the recorder stopped, or ReasonNone.
func (r *Recorder) Reason() StopReason { return r.reason }

// Steps returns the recorded steps in order.
func (r *Recorder) Steps() []Step {
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Points returns the (index, burning) series.
func (r *Recorder) Points() []Point {
	out := make([]Point, len(r.steps))
	for i, s := range r.steps {
		out[i] = Point{Step: s.Index, Burning: s.Burning}
	}
	return out
}

// Result summarises a recorded run.
type Result struct {
	Points   []Point    `json:"points" yaml:"points"`
	Peak     int        `json:"peak" yaml:"peak"`
	PeakStep int        `json:"peak_step" yaml:"peak_step"`
	Reason   StopReason `json:"reason" yaml:"reason"`
}

// BurnedOut reports whether the run ended because nothing was left burning.
func (res Result) BurnedOut() bool { return res.Reason == ReasonBurnedOut }

// Result builds a summary of the recorded series.
func (r *Recorder) Result() Result {
	res := Result{Points: r.Points(), Reason: r.reason}
	for _, p := range res.Points {
		if p.Burning > res.Peak {
			res.Peak = p.Burning
			res.PeakStep = p.Step
		}
	}
	return res
}
