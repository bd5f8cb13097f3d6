package app

import "flag"

// Flags represents the command-line parameters of firesim. Simulation
// settings only override the loaded configuration when given explicitly.
type Flags struct {
	ConfigPath string

	Rows   int
	Cols   int
	Wind   string
	Rule   string
	Steps  int
	Seed   int64
	PWind  float64
	POther float64

	Hotspots string
	Origin   string
	Events   string
	GeoJSON  string
	Series   string
	Metrics  string

	LogLevel  string
	LogFormat string

	Watch      bool
	TPS        int
	DumpParams bool
}

// NewFlags returns Flags populated with the configuration defaults.
func NewFlags() *Flags {
	return &Flags{
		Rows:      50,
		Cols:      50,
		Wind:      "E",
		Rule:      "deterministic",
		Steps:     30,
		Seed:      1337,
		PWind:     0.9,
		POther:    0.3,
		LogLevel:  "info",
		LogFormat: "text",
		TPS:       4,
	}
}

// flagKeys maps flag names onto configuration keys.
var flagKeys = map[string]string{
	"rows":       "sim.rows",
	"cols":       "sim.cols",
	"wind":       "sim.wind",
	"rule":       "sim.rule",
	"steps":      "sim.steps",
	"seed":       "sim.seed",
	"p-wind":     "sim.p_wind",
	"p-other":    "sim.p_other",
	"hotspots":   "input.hotspots",
	"origin":     "input.origin",
	"events":     "output.events",
	"geojson":    "output.geojson",
	"series":     "output.series",
	"metrics":    "metrics.textfile",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "YAML config file (default ./firegrid.yaml when present)")
	fs.IntVar(&f.Rows, "rows", f.Rows, "grid rows")
	fs.IntVar(&f.Cols, "cols", f.Cols, "grid columns")
	fs.StringVar(&f.Wind, "wind", f.Wind, "wind direction: N, S, E or W")
	fs.StringVar(&f.Rule, "rule", f.Rule, "ignition rule: deterministic or probabilistic")
	fs.IntVar(&f.Steps, "steps", f.Steps, "maximum recorded steps, 0 runs until the fire burns out")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "random seed for the probabilistic rule")
	fs.Float64Var(&f.PWind, "p-wind", f.PWind, "downwind ignition probability")
	fs.Float64Var(&f.POther, "p-other", f.POther, "ignition probability in other directions")
	fs.StringVar(&f.Hotspots, "hotspots", f.Hotspots, "FIRMS hotspot CSV; empty ignites the centre cell")
	fs.StringVar(&f.Origin, "origin", f.Origin, "date of step 0 (YYYY-MM-DD)")
	fs.StringVar(&f.Events, "events", f.Events, "write the event list to this file (.json or .yaml)")
	fs.StringVar(&f.GeoJSON, "geojson", f.GeoJSON, "write the timestamped GeoJSON to this file")
	fs.StringVar(&f.Series, "series", f.Series, "write the burning series to this file (.json or .yaml)")
	fs.StringVar(&f.Metrics, "metrics", f.Metrics, "write Prometheus metrics to this textfile")
	fs.StringVar(&f.LogLevel, "log-level", f.LogLevel, "debug, info, warn or error")
	fs.StringVar(&f.LogFormat, "log-format", f.LogFormat, "text or json")
	fs.BoolVar(&f.Watch, "watch", f.Watch, "print every step as a text frame")
	fs.IntVar(&f.TPS, "tps", f.TPS, "frames per second in watch mode")
	fs.BoolVar(&f.DumpParams, "dump-params", f.DumpParams, "print the resolved parameters as YAML and exit")
}

// Overrides returns the configuration keys of every flag set explicitly on
// fs, with their raw values.
func (f *Flags) Overrides(fs *flag.FlagSet) map[string]any {
	out := make(map[string]any)
	fs.Visit(func(fl *flag.Flag) {
		if key, ok := flagKeys[fl.Name]; ok {
			out[key] = fl.Value.String()
		}
	})
	return out
}
