package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"firegrid/internal/core"
	"firegrid/internal/geo"
	"firegrid/internal/hotspot"
	"firegrid/internal/sims/wildfire"
)

// EnvPrefix namespaces environment overrides: FIREGRID_SIM_ROWS -> sim.rows.
const EnvPrefix = "FIREGRID"

// Config holds all application configuration.
type Config struct {
	Sim     SimConfig     `mapstructure:"sim" yaml:"sim"`
	Input   InputConfig   `mapstructure:"input" yaml:"input"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

type SimConfig struct {
	Rows         int             `mapstructure:"rows" yaml:"rows"`
	Cols         int             `mapstructure:"cols" yaml:"cols"`
	Box          geo.BoundingBox `mapstructure:"box" yaml:"box"`
	Wind         string          `mapstructure:"wind" yaml:"wind"`
	Rule         string          `mapstructure:"rule" yaml:"rule"`
	Steps        int             `mapstructure:"steps" yaml:"steps"`
	Seed         int64           `mapstructure:"seed" yaml:"seed"`
	PWind        float64         `mapstructure:"p_wind" yaml:"p_wind"`
	POther       float64         `mapstructure:"p_other" yaml:"p_other"`
	IgniteCenter bool            `mapstructure:"ignite_center" yaml:"ignite_center"`
}

type InputConfig struct {
	// Hotspots is a FIRMS-style CSV file. Empty means ignite the centre cell.
	Hotspots string `mapstructure:"hotspots" yaml:"hotspots"`
	// Origin dates step 0 of the simulation (YYYY-MM-DD). Empty means the
	// latest acquisition date, or today when no hotspot is dated.
	Origin string `mapstructure:"origin" yaml:"origin"`
}

// OutputConfig lists export destinations. Empty paths are skipped; the
// format follows the file extension.
type OutputConfig struct {
	Events  string `mapstructure:"events" yaml:"events"`
	GeoJSON string `mapstructure:"geojson" yaml:"geojson"`
	Series  string `mapstructure:"series" yaml:"series"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type MetricsConfig struct {
	// Textfile is written in the node-exporter textfile format after a run.
	Textfile string `mapstructure:"textfile" yaml:"textfile"`
}

// ErrInvalid wraps every validation failure reported by Load.
var ErrInvalid = errors.New("config validation failed")

func setDefaults(v *viper.Viper) {
	def := wildfire.DefaultConfig()
	v.SetDefault("sim.rows", def.Rows)
	v.SetDefault("sim.cols", def.Cols)
	v.SetDefault("sim.box.lat_min", def.Box.LatMin)
	v.SetDefault("sim.box.lat_max", def.Box.LatMax)
	v.SetDefault("sim.box.lon_min", def.Box.LonMin)
	v.SetDefault("sim.box.lon_max", def.Box.LonMax)
	v.SetDefault("sim.wind", def.Wind.String())
	v.SetDefault("sim.rule", def.Rule)
	v.SetDefault("sim.steps", def.Steps)
	v.SetDefault("sim.seed", def.Seed)
	v.SetDefault("sim.p_wind", def.Params.PWind)
	v.SetDefault("sim.p_other", def.Params.POther)
	v.SetDefault("sim.ignite_center", def.Params.IgniteCenter)
	v.SetDefault("input.hotspots", "")
	v.SetDefault("input.origin", "")
	v.SetDefault("output.events", "")
	v.SetDefault("output.geojson", "")
	v.SetDefault("output.series", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.textfile", "")
}

// Load reads configuration from defaults, an optional YAML file, FIREGRID_*
// environment variables and finally overrides, in increasing precedence.
// When path is empty a firegrid.yaml in the working directory is used if it
// exists. Override keys use dotted paths such as "sim.rows".
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("firegrid")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var missing viper.ConfigFileNotFoundError
			if !errors.As(err, &missing) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Wildfire converts the sim section into a simulation config. An unknown or
// empty wind falls back to East; WindKnown reports whether that happened.
func (s SimConfig) Wildfire() wildfire.Config {
	wind, _ := core.ParseWind(s.Wind)
	rule := s.Rule
	if canonical, ok := wildfire.CanonicalRule(rule); ok {
		rule = canonical
	}
	return wildfire.Config{
		Rows:  s.Rows,
		Cols:  s.Cols,
		Box:   s.Box,
		Wind:  wind,
		Rule:  rule,
		Steps: s.Steps,
		Seed:  s.Seed,
		Params: wildfire.Params{
			PWind:        s.PWind,
			POther:       s.POther,
			IgniteCenter: s.IgniteCenter,
		},
	}
}

// WindKnown reports whether the configured wind parsed.
func (s SimConfig) WindKnown() bool {
	_, ok := core.ParseWind(s.Wind)
	return ok
}

// OriginDate parses Input.Origin. ok is false when no origin is configured.
func (in InputConfig) OriginDate() (time.Time, bool, error) {
	if strings.TrimSpace(in.Origin) == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(hotspot.DateLayout, strings.TrimSpace(in.Origin))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("input.origin: %w", err)
	}
	return t, true, nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if err := c.Sim.Wildfire().Validate(); err != nil {
		msg := strings.TrimPrefix(err.Error(), wildfire.ErrInvalidConfig.Error()+":")
		for _, line := range strings.Split(msg, "\n") {
			line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
			if line != "" {
				errs = append(errs, "sim: "+line)
			}
		}
	}
	if _, _, err := c.Input.OriginDate(); err != nil {
		errs = append(errs, fmt.Sprintf("input.origin must be YYYY-MM-DD, got %q", c.Input.Origin))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalid, strings.Join(errs, "\n  - "))
	}
	return nil
}
