package wildfire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"firegrid/internal/core"
	"firegrid/internal/geo"
)

// ErrInvalidConfig reports a configuration that cannot produce a simulation.
var ErrInvalidConfig = errors.New("invalid wildfire config")

// Params holds the spread tunables.
type Params struct {
	// PWind is the ignition chance for spread moving with the wind.
	PWind float64
	// POther is the ignition chance for every other direction.
	POther float64
	// IgniteCenter seeds the central cell on Reset when no hotspots are given.
	IgniteCenter bool
}

// Config controls grid dimensions, extent and spread behaviour.
type Config struct {
	Rows int
	Cols int
	Box  geo.BoundingBox

	Wind  core.Wind
	Rule  string
	Steps int
	Seed  int64

	Params Params
}

// DefaultConfig returns the standard configuration: a 50x50 grid over the
// Indian subcontinent with an easterly wind.
func DefaultConfig() Config {
	return Config{
		Rows:  50,
		Cols:  50,
		Box:   geo.BoundingBox{LatMin: 6, LatMax: 36, LonMin: 68, LonMax: 98},
		Wind:  core.DefaultWind,
		Rule:  RuleDeterministic,
		Steps: 30,
		Seed:  1337,
		Params: Params{
			PWind:        0.9,
			POther:       0.3,
			IgniteCenter: true,
		},
	}
}

// Validate reports every problem that would prevent building a simulation.
func (c Config) Validate() error {
	var errs []string
	if c.Rows <= 0 || c.Cols <= 0 {
		errs = append(errs, fmt.Sprintf("grid must be at least 1x1, got %dx%d", c.Rows, c.Cols))
	}
	if err := c.Box.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if _, ok := CanonicalRule(c.Rule); !ok {
		errs = append(errs, fmt.Sprintf("unknown rule %q", c.Rule))
	}
	if c.Steps < 0 {
		errs = append(errs, fmt.Sprintf("steps must not be negative, got %d", c.Steps))
	}
	if c.Params.PWind < 0 || c.Params.PWind > 1 {
		errs = append(errs, fmt.Sprintf("p_wind must be within [0,1], got %g", c.Params.PWind))
	}
	if c.Params.POther < 0 || c.Params.POther > 1 {
		errs = append(errs, fmt.Sprintf("p_other must be within [0,1], got %g", c.Params.POther))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidConfig, strings.Join(errs, "\n  - "))
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults; wind falls back to East.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rows = parsed
		}
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Cols = parsed
		}
	}
	floats := map[string]*float64{
		"lat_min": &c.Box.LatMin,
		"lat_max": &c.Box.LatMax,
		"lon_min": &c.Box.LonMin,
		"lon_max": &c.Box.LonMax,
	}
	for key, dst := range floats {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = parsed
			}
		}
	}
	if v, ok := cfg["wind"]; ok {
		c.Wind, _ = core.ParseWind(v)
	}
	if v, ok := cfg["rule"]; ok {
		if canonical, known := CanonicalRule(v); known {
			c.Rule = canonical
		}
	}
	if v, ok := cfg["steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Steps = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["p_wind"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.PWind = parsed
		}
	}
	if v, ok := cfg["p_other"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.POther = parsed
		}
	}
	if v, ok := cfg["ignite_center"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.IgniteCenter = parsed
		}
	}
	return c
}
