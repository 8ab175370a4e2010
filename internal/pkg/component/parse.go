package component

import (
	"encoding/json"
	"math"

	"github.com/esdl/esn_core/internal/pkg/nts"
)

// This file holds the attribute parsing engine shared by every component
// type. Each helper implements one of the five parameter categories:
//
//   singular values           parseSingular, parseBool
//   singular value mappings   parseFloatMap, parseBoolMap
//   plain named tuples        parseMinMax, parseOnOff, parsePosNeg
//   interface keyed tuples    parseMinMaxMap, parseInOutMap,
//                             parsePosNegMap, parseConversions
//   timeseries                parseSeriesMap
//
// All helpers are total: missing keys and unusable values fall back to the
// declared default. A NaN valued input (which occurs when the bag originates
// from spreadsheet import) always falls back to the full default, never to a
// partial merge. Supplied mapping keys outside the declared interface set
// are kept as dangling entries; Validate surfaces them.

// floatOf coerces the scalar shapes an attribute bag may carry.
func floatOf(v interface{}) (nts.Float, bool) {
	switch x := v.(type) {
	case nts.Float:
		return x, true
	case float64:
		return nts.Float(x), true
	case float32:
		return nts.Float(x), true
	case int:
		return nts.Float(x), true
	case int64:
		return nts.Float(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return nts.Float(f), true
	case string:
		f, err := nts.ParseLiteral(x)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// isNaN detects the spreadsheet import sentinel.
func isNaN(v interface{}) bool {
	switch x := v.(type) {
	case float64:
		return math.IsNaN(x)
	case nts.Float:
		return x.IsNaN()
	}
	return false
}

// absent reports whether the bag carries no usable value for key.
func absent(bag Attributes, key string) bool {
	v, ok := bag[key]
	return !ok || v == nil || isNaN(v)
}

func stringOf(v interface{}) string {
	s, _ := v.(string)
	return s
}

// stringsOf coerces a label collection (slice, decoded JSON array or parsed
// tuple literal) into a string slice.
func stringsOf(v interface{}) []string {
	switch x := v.(type) {
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	case []interface{}:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func parseSingular(bag Attributes, key string, def nts.Float) nts.Float {
	if absent(bag, key) {
		return def
	}
	if f, ok := floatOf(bag[key]); ok {
		return f
	}
	return def
}

func parseBool(bag Attributes, key string, def bool) bool {
	if absent(bag, key) {
		return def
	}
	switch x := bag[key].(type) {
	case bool:
		return x
	default:
		if f, ok := floatOf(x); ok {
			return f != 0
		}
	}
	return def
}

func parseFloatMap(bag Attributes, key string, ifaces []string, def nts.Float) map[string]nts.Float {
	out := make(map[string]nts.Float, len(ifaces))
	for _, i := range ifaces {
		out[i] = def
	}
	if absent(bag, key) {
		return out
	}
	switch m := bag[key].(type) {
	case map[string]nts.Float:
		for k, v := range m {
			out[k] = v
		}
	case map[string]interface{}:
		for k, raw := range m {
			if f, ok := floatOf(raw); ok {
				out[k] = f
			}
		}
	}
	return out
}

func parseBoolMap(bag Attributes, key string, ifaces []string, def bool) map[string]bool {
	out := make(map[string]bool, len(ifaces))
	for _, i := range ifaces {
		out[i] = def
	}
	if absent(bag, key) {
		return out
	}
	switch m := bag[key].(type) {
	case map[string]bool:
		for k, v := range m {
			out[k] = v
		}
	case map[string]interface{}:
		for k, raw := range m {
			switch b := raw.(type) {
			case bool:
				out[k] = b
			default:
				if f, ok := floatOf(raw); ok {
					out[k] = f != 0
				}
			}
		}
	}
	return out
}

// pairValues extracts the two members of a 2-sequence.
func pairValues(v interface{}) (nts.Float, nts.Float, bool) {
	switch x := v.(type) {
	case []interface{}:
		if len(x) != 2 {
			return 0, 0, false
		}
		a, ok1 := floatOf(x[0])
		b, ok2 := floatOf(x[1])
		return a, b, ok1 && ok2
	case []nts.Float:
		if len(x) != 2 {
			return 0, 0, false
		}
		return x[0], x[1], true
	case []float64:
		if len(x) != 2 {
			return 0, 0, false
		}
		return nts.Float(x[0]), nts.Float(x[1]), true
	}
	return 0, 0, false
}

func minMaxOf(v interface{}, def nts.MinMax) nts.MinMax {
	if t, ok := v.(nts.MinMax); ok {
		return t
	}
	if a, b, ok := pairValues(v); ok {
		return nts.MinMax{Min: a, Max: b}
	}
	return def
}

func onOffOf(v interface{}, def nts.OnOff) nts.OnOff {
	if t, ok := v.(nts.OnOff); ok {
		return t
	}
	if a, b, ok := pairValues(v); ok {
		return nts.OnOff{On: a, Off: b}
	}
	return def
}

func inOutOf(v interface{}, def nts.InOut) nts.InOut {
	if t, ok := v.(nts.InOut); ok {
		return t
	}
	if a, b, ok := pairValues(v); ok {
		return nts.InOut{Inflow: a, Outflow: b}
	}
	return def
}

func posNegOf(v interface{}, def nts.PositiveNegative) nts.PositiveNegative {
	if t, ok := v.(nts.PositiveNegative); ok {
		return t
	}
	if a, b, ok := pairValues(v); ok {
		return nts.PositiveNegative{Positive: a, Negative: b}
	}
	return def
}

func parseMinMax(bag Attributes, key string, def nts.MinMax) nts.MinMax {
	if absent(bag, key) {
		return def
	}
	return minMaxOf(bag[key], def)
}

func parseOnOff(bag Attributes, key string, def nts.OnOff) nts.OnOff {
	if absent(bag, key) {
		return def
	}
	return onOffOf(bag[key], def)
}

func parsePosNeg(bag Attributes, key string, def nts.PositiveNegative) nts.PositiveNegative {
	if absent(bag, key) {
		return def
	}
	return posNegOf(bag[key], def)
}

func parseMinMaxMap(bag Attributes, key string, ifaces []string, def nts.MinMax) map[string]nts.MinMax {
	out := make(map[string]nts.MinMax, len(ifaces))
	for _, i := range ifaces {
		out[i] = def
	}
	if absent(bag, key) {
		return out
	}
	switch m := bag[key].(type) {
	case map[string]nts.MinMax:
		for k, v := range m {
			out[k] = v
		}
	case map[string]interface{}:
		for k, raw := range m {
			out[k] = minMaxOf(raw, def)
		}
	}
	return out
}

func parseInOutMap(bag Attributes, key string, ifaces []string, def nts.InOut) map[string]nts.InOut {
	out := make(map[string]nts.InOut, len(ifaces))
	for _, i := range ifaces {
		out[i] = def
	}
	if absent(bag, key) {
		return out
	}
	switch m := bag[key].(type) {
	case map[string]nts.InOut:
		for k, v := range m {
			out[k] = v
		}
	case map[string]interface{}:
		for k, raw := range m {
			out[k] = inOutOf(raw, def)
		}
	}
	return out
}

func parsePosNegMap(bag Attributes, key string, ifaces []string, def nts.PositiveNegative) map[string]nts.PositiveNegative {
	out := make(map[string]nts.PositiveNegative, len(ifaces))
	for _, i := range ifaces {
		out[i] = def
	}
	if absent(bag, key) {
		return out
	}
	switch m := bag[key].(type) {
	case map[string]nts.PositiveNegative:
		for k, v := range m {
			out[k] = v
		}
	case map[string]interface{}:
		for k, raw := range m {
			out[k] = posNegOf(raw, def)
		}
	}
	return out
}

// boundOf coerces a scalar or sequence into a flow bound.
func boundOf(v interface{}) (nts.Bound, bool) {
	switch x := v.(type) {
	case nts.Bound:
		return x, true
	case []nts.Float:
		steps := make([]nts.Float, len(x))
		copy(steps, x)
		return nts.Bound{Steps: steps}, true
	case []float64:
		steps := make([]nts.Float, len(x))
		for i, f := range x {
			steps[i] = nts.Float(f)
		}
		return nts.Bound{Steps: steps}, true
	case []interface{}:
		steps := make([]nts.Float, 0, len(x))
		for _, e := range x {
			f, ok := floatOf(e)
			if !ok {
				return nts.Bound{}, false
			}
			steps = append(steps, f)
		}
		return nts.Bound{Steps: steps}, true
	}
	if f, ok := floatOf(v); ok {
		return nts.Scalar(f), true
	}
	return nts.Bound{}, false
}

// minMaxSeriesOf coerces any 2-sequence of bounds to the 2-ary bounds type.
func minMaxSeriesOf(v interface{}) (nts.MinMaxSeries, bool) {
	switch x := v.(type) {
	case nts.MinMaxSeries:
		return x, true
	case nts.MinMax:
		return nts.MinMaxSeries{Min: nts.Scalar(x.Min), Max: nts.Scalar(x.Max)}, true
	case []interface{}:
		if len(x) != 2 {
			return nts.MinMaxSeries{}, false
		}
		min, ok1 := boundOf(x[0])
		max, ok2 := boundOf(x[1])
		if !ok1 || !ok2 {
			return nts.MinMaxSeries{}, false
		}
		return nts.MinMaxSeries{Min: min, Max: max}, true
	}
	return nts.MinMaxSeries{}, false
}

// parseSeriesMap handles the optional timeseries category. Absent input
// yields nil rather than an empty mapping.
func parseSeriesMap(bag Attributes, key string) map[string]nts.MinMaxSeries {
	if absent(bag, key) {
		return nil
	}
	out := make(map[string]nts.MinMaxSeries)
	switch m := bag[key].(type) {
	case map[string]nts.MinMaxSeries:
		for k, v := range m {
			out[k] = v
		}
	case map[string]interface{}:
		for k, raw := range m {
			if s, ok := minMaxSeriesOf(raw); ok {
				out[k] = s
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// parseSeries handles a singular scalar-or-series curve.
func parseSeries(bag Attributes, key string, def nts.MinMaxSeries) nts.MinMaxSeries {
	if absent(bag, key) {
		return def
	}
	if s, ok := minMaxSeriesOf(bag[key]); ok {
		return s
	}
	return def
}

// parseConversions handles tuple keyed efficiency mappings. Wire form keys
// ("('fuel', 'electricity')") are destringified through nts.SplitPair.
func parseConversions(bag Attributes, key string, def map[nts.Pair]nts.Float) map[nts.Pair]nts.Float {
	if absent(bag, key) {
		return copyPairMap(def)
	}
	out := make(map[nts.Pair]nts.Float)
	switch m := bag[key].(type) {
	case map[nts.Pair]nts.Float:
		for k, v := range m {
			out[k] = v
		}
	case map[string]interface{}:
		for k, raw := range m {
			from, to, err := nts.SplitPair(k)
			if err != nil {
				continue
			}
			if f, ok := floatOf(raw); ok {
				out[nts.Pair{From: from, To: to}] = f
			}
		}
	}
	if len(out) == 0 {
		return copyPairMap(def)
	}
	return out
}

func copyPairMap(m map[nts.Pair]nts.Float) map[nts.Pair]nts.Float {
	out := make(map[nts.Pair]nts.Float, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
