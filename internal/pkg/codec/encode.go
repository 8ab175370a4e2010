/*
Package codec serializes system models to and from their wire document, a
JSON envelope whose component payloads are themselves JSON encoded. Value
tuples travel as stringified literals ("(0, inf)"), tuple-valued dictionary
keys as "('from', 'to')" strings and non-finite floats as the quoted
sentinels "inf", "-inf" and "nan". The text is process boundary safe: a
deserialize of a serialize yields an equal model.
*/
package codec

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/esdl/esn_core/internal/pkg/component"
	"github.com/esdl/esn_core/internal/pkg/model"
	"github.com/esdl/esn_core/internal/pkg/nts"
)

// envelope is the wire document. Component payloads are double encoded so
// consumers can hand single components around without reparsing the whole
// document.
type envelope struct {
	Uid               string               `json:"uid"`
	Busses            []string             `json:"busses"`
	CHPs              []string             `json:"chps"`
	Connectors        []string             `json:"connectors"`
	Sinks             []string             `json:"sinks"`
	Sources           []string             `json:"sources"`
	Transformers      []string             `json:"transformers"`
	Storages          []string             `json:"storages"`
	Timeframe         string               `json:"timeframe"`
	GlobalConstraints map[string]nts.Float `json:"global_constraints"`
}

// Serialize renders a system model into its wire document.
func Serialize(m *model.SystemModel) ([]byte, error) {
	env := envelope{
		Uid:               m.Uid(),
		Busses:            make([]string, 0, len(m.Busses())),
		CHPs:              make([]string, 0, len(m.CHPs())),
		Connectors:        make([]string, 0, len(m.Connectors())),
		Sinks:             make([]string, 0, len(m.Sinks())),
		Sources:           make([]string, 0, len(m.Sources())),
		Transformers:      make([]string, 0, len(m.Transformers())),
		Storages:          make([]string, 0, len(m.Storages())),
		GlobalConstraints: m.GlobalConstraints(),
	}

	collect := func(into *[]string, components ...component.Component) error {
		for _, c := range components {
			doc, err := encodeComponent(c)
			if err != nil {
				return err
			}
			*into = append(*into, doc)
		}
		return nil
	}

	for _, c := range m.Busses() {
		if err := collect(&env.Busses, c); err != nil {
			return nil, err
		}
	}
	for _, c := range m.CHPs() {
		if err := collect(&env.CHPs, c); err != nil {
			return nil, err
		}
	}
	for _, c := range m.Connectors() {
		if err := collect(&env.Connectors, c); err != nil {
			return nil, err
		}
	}
	for _, c := range m.Sinks() {
		if err := collect(&env.Sinks, c); err != nil {
			return nil, err
		}
	}
	for _, c := range m.Sources() {
		if err := collect(&env.Sources, c); err != nil {
			return nil, err
		}
	}
	for _, c := range m.Transformers() {
		if err := collect(&env.Transformers, c); err != nil {
			return nil, err
		}
	}
	for _, c := range m.Storages() {
		if err := collect(&env.Storages, c); err != nil {
			return nil, err
		}
	}

	tf, err := encodeTimeframe(m)
	if err != nil {
		return nil, err
	}
	env.Timeframe = tf

	return json.Marshal(env)
}

func encodeComponent(c component.Component) (string, error) {
	attrs := c.Attributes()
	wire := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		wire[k] = wireValue(v)
	}
	doc, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}
	return string(doc), nil
}

// wireValue stringifies the typed attribute values that JSON cannot carry
// natively. Everything else passes through to the encoder.
func wireValue(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case nts.MinMax:
		return tupleLiteral(x.Min, x.Max)
	case nts.OnOff:
		return tupleLiteral(x.On, x.Off)
	case nts.InOut:
		return tupleLiteral(x.Inflow, x.Outflow)
	case nts.PositiveNegative:
		return tupleLiteral(x.Positive, x.Negative)
	case nts.MinMaxSeries:
		if zeroSeries(x) {
			return nil
		}
		return seriesLiteral(x)
	case map[string]nts.MinMax:
		out := make(map[string]string, len(x))
		for k, t := range x {
			out[k] = tupleLiteral(t.Min, t.Max)
		}
		return out
	case map[string]nts.OnOff:
		out := make(map[string]string, len(x))
		for k, t := range x {
			out[k] = tupleLiteral(t.On, t.Off)
		}
		return out
	case map[string]nts.InOut:
		out := make(map[string]string, len(x))
		for k, t := range x {
			out[k] = tupleLiteral(t.Inflow, t.Outflow)
		}
		return out
	case map[string]nts.PositiveNegative:
		out := make(map[string]string, len(x))
		for k, t := range x {
			out[k] = tupleLiteral(t.Positive, t.Negative)
		}
		return out
	case map[string]nts.MinMaxSeries:
		if x == nil {
			return nil
		}
		out := make(map[string]string, len(x))
		for k, s := range x {
			out[k] = seriesLiteral(s)
		}
		return out
	case map[nts.Pair]nts.Float:
		out := make(map[string]nts.Float, len(x))
		for k, f := range x {
			out[k.String()] = f
		}
		return out
	}
	return v
}

func tupleLiteral(a, b nts.Float) string {
	return "(" + a.Literal() + ", " + b.Literal() + ")"
}

func boundLiteral(b nts.Bound) string {
	if !b.IsSeries() {
		return b.Constant.Literal()
	}
	parts := make([]string, len(b.Steps))
	for i, s := range b.Steps {
		parts[i] = s.Literal()
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func seriesLiteral(s nts.MinMaxSeries) string {
	return "(" + boundLiteral(s.Min) + ", " + boundLiteral(s.Max) + ")"
}

func zeroSeries(s nts.MinMaxSeries) bool {
	return !s.Min.IsSeries() && !s.Max.IsSeries() &&
		s.Min.Constant == 0 && s.Max.Constant == 0
}

// encodeTimeframe renders the timeframe as a JSON string keyed by epoch
// millisecond timestamps, the usual column oriented series export.
func encodeTimeframe(m *model.SystemModel) (string, error) {
	stamps := m.Timeframe().Stamps()
	series := make(map[string]int64, len(stamps))
	for i, s := range stamps {
		series[strconv.FormatInt(s.UnixNano()/int64(time.Millisecond), 10)] = int64(i)
	}
	doc, err := json.Marshal(series)
	if err != nil {
		return "", err
	}
	return string(doc), nil
}
