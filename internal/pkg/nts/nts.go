/*
Package nts aggregates the small value types shared by every energy system
component: correspondent value pairs, graph edges, tuple-valued dictionary
keys and scalar-or-series flow bounds.
*/
package nts

import (
	"fmt"
	"strings"
)

// MinMax is a correspondent minimum and maximum value pair. Used for flow
// limits, accumulated amounts and expansion limits.
type MinMax struct {
	Min Float
	Max Float
}

// OnOff is a correspondent value pair for parameters depending on a boolean
// commitment status, e.g. minimum uptime and downtime.
type OnOff struct {
	On  Float
	Off Float
}

// InOut is a correspondent inflow/outflow value pair, e.g. asymmetric
// storage flow efficiencies.
type InOut struct {
	Inflow  Float
	Outflow Float
}

// PositiveNegative is a correspondent value pair for direction dependent
// parameters, e.g. power gradients between timesteps.
type PositiveNegative struct {
	Positive Float
	Negative Float
}

// Edge is a directed edge of an energy system graph, going from Source to
// Target. Both fields hold uid string representations.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Pair is an ordered carrier pair used as dictionary key, e.g. transformer
// conversion efficiencies keyed by (input carrier, output carrier).
type Pair struct {
	From string
	To   string
}

// String renders the pair in its wire form, e.g. "('fuel', 'electricity')".
func (p Pair) String() string {
	return fmt.Sprintf("('%s', '%s')", p.From, p.To)
}

// Bound is a flow limit that is either constant or varies per simulation
// timestep. Steps is nil for constant bounds.
type Bound struct {
	Constant Float
	Steps    []Float
}

// Scalar wraps a constant value into a Bound.
func Scalar(v Float) Bound {
	return Bound{Constant: v}
}

// Series wraps one value per timestep into a Bound.
func Series(vs ...Float) Bound {
	return Bound{Steps: vs}
}

// IsSeries reports whether the bound varies per timestep.
func (b Bound) IsSeries() bool {
	return b.Steps != nil
}

// MinMaxSeries is a minimum and maximum bound pair where either bound may be
// constant or a series. Used for the optional timeseries parameter and the
// CHP characteristic curves.
type MinMaxSeries struct {
	Min Bound
	Max Bound
}

// pairCutset holds the characters deleted when destringifying tuple and
// edge keys.
const pairCutset = "[]()'\""

// SplitPair destringifies a tuple or bracketed edge key such as
// "('fuel', 'electricity')" or "[node, bus]" into its two members. The stray
// bracket and quote characters are removed through a character deletion
// table before splitting on the comma.
func SplitPair(s string) (string, string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(pairCutset, r) {
			return -1
		}
		return r
	}, s)

	parts := strings.Split(cleaned, ",")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("nts: key %q does not split into a pair", s)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
