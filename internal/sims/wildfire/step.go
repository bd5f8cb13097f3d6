package wildfire

import (
	"time"

	"firegrid/internal/core"
)

// Step computes the grid that follows prev. Every cell is evaluated against
// prev only, in row-major order, and prev is never modified:
//
//	Burning -> Empty
//	Fuel    -> Burning when rule.Ignites, otherwise Fuel
//	Empty   -> Empty
//
// A nil rng is replaced by a time-seeded source; reproducible runs must pass
// their own.
func Step(prev *core.Grid, wind core.Wind, rule Rule, rng core.Source) *core.Grid {
	if rule == nil {
		rule = Deterministic{}
	}
	if rng == nil {
		rng = core.NewRNG(time.Now().UnixNano())
	}
	return prev.Map(func(at core.Coord, state core.CellState) core.CellState {
		switch state {
		case core.Burning:
			return core.Empty
		case core.Fuel:
			if rule.Ignites(prev, at, wind, rng) {
				return core.Burning
			}
			return core.Fuel
		default:
			return core.Empty
		}
	})
}
