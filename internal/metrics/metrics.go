package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"firegrid/internal/hotspot"
	"firegrid/internal/series"
)

const namespace = "firegrid"

// Run collects telemetry for one simulation on a private registry so that
// concurrent runs and tests never share collectors.
type Run struct {
	registry *prometheus.Registry

	Steps            prometheus.Counter
	Burning          prometheus.Gauge
	Peak             prometheus.Gauge
	Ignitions        prometheus.Counter
	HotspotsIngested prometheus.Counter
	HotspotsDropped  prometheus.Counter
	HotspotsSkipped  prometheus.Counter
	IgnitedCells     prometheus.Gauge
	Frontier         prometheus.Gauge
	Finished         *prometheus.GaugeVec
}

// New registers the run collectors. runID, when set, is attached as a
// constant label.
func New(runID string) *Run {
	labels := prometheus.Labels{}
	if runID != "" {
		labels["run"] = runID
	}
	r := &Run{
		registry: prometheus.NewRegistry(),
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "sim",
			Name:        "steps_total",
			Help:        "Recorded simulation steps, including the seeded grid",
			ConstLabels: labels,
		}),
		Burning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "sim",
			Name:        "burning_cells",
			Help:        "Burning cells in the latest recorded step",
			ConstLabels: labels,
		}),
		Peak: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "sim",
			Name:        "burning_cells_peak",
			Help:        "Largest burning count seen so far",
			ConstLabels: labels,
		}),
		Ignitions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "sim",
			Name:        "ignitions_total",
			Help:        "Cells that caught fire during propagation",
			ConstLabels: labels,
		}),
		HotspotsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "hotspots",
			Name:        "ingested_total",
			Help:        "Hotspots that landed inside the grid",
			ConstLabels: labels,
		}),
		HotspotsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "hotspots",
			Name:        "dropped_total",
			Help:        "Hotspots outside the bounding box",
			ConstLabels: labels,
		}),
		HotspotsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "hotspots",
			Name:        "skipped_total",
			Help:        "Malformed hotspot records",
			ConstLabels: labels,
		}),
		IgnitedCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "hotspots",
			Name:        "ignited_cells",
			Help:        "Distinct cells set burning by ingestion",
			ConstLabels: labels,
		}),
		Frontier: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "forecast",
			Name:        "frontier_cells",
			Help:        "Cells predicted to ignite next",
			ConstLabels: labels,
		}),
		Finished: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "sim",
			Name:        "finished",
			Help:        "Set to 1 for the reason the run stopped",
			ConstLabels: labels,
		}, []string{"reason"}),
	}
	r.registry.MustRegister(
		r.Steps, r.Burning, r.Peak, r.Ignitions,
		r.HotspotsIngested, r.HotspotsDropped, r.HotspotsSkipped, r.IgnitedCells,
		r.Frontier, r.Finished,
	)
	return r
}

// Registry exposes the private registry for gathering.
func (r *Run) Registry() *prometheus.Registry { return r.registry }

// ObserveStep updates the step counters. Every burning cell after step 0 was
// ignited in that step.
func (r *Run) ObserveStep(st series.Step) {
	r.Steps.Inc()
	r.Burning.Set(float64(st.Burning))
	if st.Index > 0 {
		r.Ignitions.Add(float64(st.Burning))
	}
}

// ObserveIngest records an ingestion summary.
func (r *Run) ObserveIngest(stats hotspot.Stats) {
	r.HotspotsIngested.Add(float64(stats.Applied))
	r.HotspotsDropped.Add(float64(stats.Dropped))
	r.HotspotsSkipped.Add(float64(stats.Skipped))
	r.IgnitedCells.Set(float64(stats.Cells))
}

// ObserveResult records the outcome of a finished run.
func (r *Run) ObserveResult(res series.Result) {
	r.Peak.Set(float64(res.Peak))
	if res.Reason != series.ReasonNone {
		r.Finished.WithLabelValues(string(res.Reason)).Set(1)
	}
}

// ObserveFrontier records the size of the predicted frontier.
func (r *Run) ObserveFrontier(cells int) {
	r.Frontier.Set(float64(cells))
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
