package codec

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/esdl/esn_core/internal/pkg/component"
	"github.com/esdl/esn_core/internal/pkg/model"
	"github.com/esdl/esn_core/internal/pkg/timeframe"
	"github.com/esdl/esn_core/internal/pkg/uid"
)

// DecodeError names the wire document key whose payload could not be
// decoded.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// constructors maps the envelope's plural tags onto the component
// factories. Dispatch is through this explicit registry, never through
// reflection.
var constructors = map[string]func(component.Attributes) (component.Component, error){
	"busses":       func(a component.Attributes) (component.Component, error) { return component.BusFromAttributes(a) },
	"chps":         func(a component.Attributes) (component.Component, error) { return component.CHPFromAttributes(a) },
	"connectors":   func(a component.Attributes) (component.Component, error) { return component.ConnectorFromAttributes(a) },
	"sinks":        func(a component.Attributes) (component.Component, error) { return component.SinkFromAttributes(a) },
	"sources":      func(a component.Attributes) (component.Component, error) { return component.SourceFromAttributes(a) },
	"transformers": func(a component.Attributes) (component.Component, error) { return component.TransformerFromAttributes(a) },
	"storages":     func(a component.Attributes) (component.Component, error) { return component.StorageFromAttributes(a) },
}

// Deserialize rebuilds a system model from its wire document. The style
// must match the uid projection the document's topology endpoints were
// written under.
func Deserialize(data []byte, style uid.Style) (*model.SystemModel, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DecodeError{Key: "envelope", Err: err}
	}

	m, err := model.New(env.Uid, style)
	if err != nil {
		return nil, err
	}

	collections := []struct {
		tag  string
		docs []string
	}{
		{"busses", env.Busses},
		{"chps", env.CHPs},
		{"connectors", env.Connectors},
		{"sinks", env.Sinks},
		{"sources", env.Sources},
		{"transformers", env.Transformers},
		{"storages", env.Storages},
	}
	for _, coll := range collections {
		build := constructors[coll.tag]
		for i, doc := range coll.docs {
			key := fmt.Sprintf("%s[%d]", coll.tag, i)
			attrs, err := decodeAttributes(doc)
			if err != nil {
				return nil, &DecodeError{Key: key, Err: err}
			}
			c, err := build(attrs)
			if err != nil {
				return nil, &DecodeError{Key: key, Err: err}
			}
			if err := m.Add(c); err != nil {
				return nil, &DecodeError{Key: key, Err: err}
			}
		}
	}

	tf, err := decodeTimeframe(env.Timeframe)
	if err != nil {
		return nil, &DecodeError{Key: "timeframe", Err: err}
	}
	m.SetTimeframe(tf)

	if env.GlobalConstraints != nil {
		constraints := m.GlobalConstraints()
		for k := range constraints {
			delete(constraints, k)
		}
		for k, v := range env.GlobalConstraints {
			constraints[k] = v
		}
	}
	return m, nil
}

// decodeAttributes unmarshals one double encoded component payload and
// destringifies every tuple literal in it. The resulting bag feeds the
// component factories, which run it back through the parsing engine.
func decodeAttributes(doc string) (component.Attributes, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, err
	}
	attrs := make(component.Attributes, len(raw))
	for k, v := range raw {
		restored, err := destringify(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %v", k, err)
		}
		attrs[k] = restored
	}
	return attrs, nil
}

// destringify walks a decoded JSON value and parses every "("-prefixed
// string back into its tuple members. Bare sentinel strings stay put; the
// parsing engine coerces them.
func destringify(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case string:
		if strings.HasPrefix(strings.TrimSpace(x), "(") {
			return ParseTupleLiteral(strings.TrimSpace(x))
		}
		return x, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, raw := range x {
			restored, err := destringify(raw)
			if err != nil {
				return nil, fmt.Errorf("key %q: %v", k, err)
			}
			out[k] = restored
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, raw := range x {
			restored, err := destringify(raw)
			if err != nil {
				return nil, err
			}
			out[i] = restored
		}
		return out, nil
	}
	return v, nil
}

// decodeTimeframe repairs the timeframe from its epoch millisecond keys:
// the stamps are sorted and rebuilt as an equidistant range from the first
// gap.
func decodeTimeframe(doc string) (timeframe.Timeframe, error) {
	if doc == "" {
		return timeframe.Timeframe{}, nil
	}
	var series map[string]int64
	if err := json.Unmarshal([]byte(doc), &series); err != nil {
		return timeframe.Timeframe{}, err
	}

	millis := make([]int64, 0, len(series))
	for k := range series {
		ms, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return timeframe.Timeframe{}, fmt.Errorf("timestamp key %q: %v", k, err)
		}
		millis = append(millis, ms)
	}
	sort.Slice(millis, func(i, j int) bool { return millis[i] < millis[j] })

	stamps := make([]time.Time, len(millis))
	for i, ms := range millis {
		stamps[i] = time.Unix(0, ms*int64(time.Millisecond)).UTC()
	}
	return timeframe.FromStamps(stamps)
}
