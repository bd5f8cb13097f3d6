package wildfire

import (
	"fmt"
	"sort"
	"strings"

	"firegrid/internal/core"
)

// neighbors lists the 4-connected offsets in evaluation order: N, S, W, E.
// Probabilistic rules consume random draws in this order.
var neighbors = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Rule decides whether a Fuel cell ignites given the previous grid.
type Rule interface {
	Name() string
	Ignites(prev *core.Grid, at core.Coord, wind core.Wind, rng core.Source) bool
}

// Deterministic ignites a fuel cell whenever any 4-connected neighbour was
// burning. Wind and the random source are ignored.
type Deterministic struct{}

// Name identifies the rule.
func (Deterministic) Name() string { return RuleDeterministic }

// Ignites reports whether any neighbour of at is burning in prev.
func (Deterministic) Ignites(prev *core.Grid, at core.Coord, _ core.Wind, _ core.Source) bool {
	for _, d := range neighbors {
		if prev.At(at.Add(d[0], d[1])) == core.Burning {
			return true
		}
	}
	return false
}

// ProbabilisticWind draws one Bernoulli trial per burning neighbour. The trial
// succeeds with PWind when fire travelling from that neighbour into the cell
// moves with the wind, and with POther otherwise.
type ProbabilisticWind struct {
	PWind  float64
	POther float64
}

// Name identifies the rule.
func (ProbabilisticWind) Name() string { return RuleProbabilistic }

// Ignites draws a trial for every burning neighbour, in N,S,W,E order, and
// reports whether any succeeded. Every trial is drawn even after a success so
// the stream position only depends on the previous grid.
func (p ProbabilisticWind) Ignites(prev *core.Grid, at core.Coord, wind core.Wind, rng core.Source) bool {
	wr, wc := wind.Delta()
	ignited := false
	for _, d := range neighbors {
		if prev.At(at.Add(d[0], d[1])) != core.Burning {
			continue
		}
		// The neighbour sits at +d, so fire reaching us travels along -d.
		chance := p.POther
		if -d[0] == wr && -d[1] == wc {
			chance = p.PWind
		}
		if core.Bernoulli(rng, chance) {
			ignited = true
		}
	}
	return ignited
}

// Rule names accepted by RuleByName.
const (
	RuleDeterministic = "deterministic"
	RuleProbabilistic = "probabilistic"
)

var ruleAliases = map[string]string{
	RuleDeterministic: RuleDeterministic,
	"contact":         RuleDeterministic,
	RuleProbabilistic: RuleProbabilistic,
	"wind":            RuleProbabilistic,
}

// RuleNames lists the canonical rule names.
func RuleNames() []string {
	names := []string{RuleDeterministic, RuleProbabilistic}
	sort.Strings(names)
	return names
}

// CanonicalRule maps an alias onto its canonical rule name.
func CanonicalRule(name string) (string, bool) {
	canonical, ok := ruleAliases[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// RuleByName builds the rule registered under name. Probabilistic parameters
// come from params.
func RuleByName(name string, params Params) (Rule, error) {
	canonical, ok := CanonicalRule(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown rule %q (want one of %s)", ErrInvalidConfig, name, strings.Join(RuleNames(), ", "))
	}
	if canonical == RuleProbabilistic {
		return ProbabilisticWind{PWind: params.PWind, POther: params.POther}, nil
	}
	return Deterministic{}, nil
}
