package wildfire

import (
	"strconv"

	"firegrid/internal/core"
)

// Parameters describes the tunables the simulation was built with.
func (f *Fire) Parameters() core.ParameterSnapshot {
	return f.cfg.Snapshot()
}

// Snapshot describes cfg as grouped parameters.
func (c Config) Snapshot() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("rows", "Rows", c.Rows),
				intParam("cols", "Columns", c.Cols),
				int64Param("seed", "Seed", c.Seed),
				intParam("steps", "Step ceiling", c.Steps),
			},
		},
		{
			Name:    "Extent",
			Summary: "Row 0 is the northern edge, column 0 the western edge.",
			Params: []core.Parameter{
				floatParam("lat_min", "Latitude min", c.Box.LatMin),
				floatParam("lat_max", "Latitude max", c.Box.LatMax),
				floatParam("lon_min", "Longitude min", c.Box.LonMin),
				floatParam("lon_max", "Longitude max", c.Box.LonMax),
			},
		},
		{
			Name: "Spread",
			Params: []core.Parameter{
				stringParam("rule", "Ignition rule", c.Rule),
				stringParam("wind", "Wind direction", c.Wind.String()),
				floatParam("p_wind", "Downwind ignition chance", c.Params.PWind),
				floatParam("p_other", "Other ignition chance", c.Params.POther),
				boolParam("ignite_center", "Ignite centre cell", c.Params.IgniteCenter),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
