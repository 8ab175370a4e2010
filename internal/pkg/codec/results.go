package codec

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/esdl/esn_core/internal/pkg/nts"
)

// Series is a named value sequence in split orientation, e.g. a storage's
// state of charge over the simulated horizon. Index holds epoch
// millisecond timestamps.
type Series struct {
	Name  string      `json:"name"`
	Index []int64     `json:"index"`
	Data  []nts.Float `json:"data"`
}

// Frame is a value table in split orientation, e.g. the per-carrier load
// of one node over the simulated horizon.
type Frame struct {
	Columns []string      `json:"columns"`
	Index   []int64       `json:"index"`
	Data    [][]nts.Float `json:"data"`
}

// RestoredResults is an optimization result document restored from its
// wire form. Frames and series travel double encoded like the component
// payloads; edge keyed mappings use bracketed "[source, target]" keys.
type RestoredResults struct {
	Nodes               []string
	UidNodes            map[string]string
	Edges               []nts.Edge
	GlobalResults       map[string]nts.Float
	NumberOfConstraints nts.Float
	NodeLoads           map[string]Frame
	StatesOfCharge      map[string]Series
	EdgeWeights         map[nts.Edge]nts.Float
	InstalledCapacities map[string]nts.Float
}

type resultsEnvelope struct {
	Nodes               []string             `json:"nodes"`
	UidNodes            map[string]string    `json:"uid_nodes"`
	Edges               [][]string           `json:"edges"`
	GlobalResults       map[string]nts.Float `json:"global_results"`
	NumberOfConstraints nts.Float            `json:"number_of_constraints"`
	NodeLoads           map[string]string    `json:"node_loads"`
	StatesOfCharge      map[string]string    `json:"states_of_charge"`
	EdgeWeights         map[string]nts.Float `json:"edge_weights"`
	InstalledCapacities map[string]nts.Float `json:"installed_capacities"`
}

// RestoreResults decodes an optimization result document.
func RestoreResults(data []byte) (*RestoredResults, error) {
	var env resultsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DecodeError{Key: "results", Err: err}
	}

	out := &RestoredResults{
		Nodes:               env.Nodes,
		UidNodes:            env.UidNodes,
		GlobalResults:       env.GlobalResults,
		NumberOfConstraints: env.NumberOfConstraints,
		InstalledCapacities: env.InstalledCapacities,
	}

	for i, e := range env.Edges {
		if len(e) != 2 {
			return nil, &DecodeError{
				Key: fmt.Sprintf("edges[%d]", i),
				Err: fmt.Errorf("edge holds %d members, want 2", len(e)),
			}
		}
		out.Edges = append(out.Edges, nts.Edge{Source: e[0], Target: e[1]})
	}

	if env.NodeLoads != nil {
		out.NodeLoads = make(map[string]Frame, len(env.NodeLoads))
		for node, doc := range env.NodeLoads {
			var frame Frame
			if err := json.Unmarshal([]byte(doc), &frame); err != nil {
				return nil, &DecodeError{Key: "node_loads." + node, Err: err}
			}
			out.NodeLoads[node] = frame
		}
	}

	if env.StatesOfCharge != nil {
		out.StatesOfCharge = make(map[string]Series, len(env.StatesOfCharge))
		for node, doc := range env.StatesOfCharge {
			var series Series
			if err := json.Unmarshal([]byte(doc), &series); err != nil {
				return nil, &DecodeError{Key: "states_of_charge." + node, Err: err}
			}
			out.StatesOfCharge[node] = series
		}
	}

	if env.EdgeWeights != nil {
		out.EdgeWeights = make(map[nts.Edge]nts.Float, len(env.EdgeWeights))
		for key, weight := range env.EdgeWeights {
			source, target, err := nts.SplitPair(key)
			if err != nil {
				return nil, &DecodeError{Key: "edge_weights." + key, Err: err}
			}
			out.EdgeWeights[nts.Edge{Source: source, Target: target}] = weight
		}
	}
	return out, nil
}

// Inbounds maps every node onto its sorted predecessor set.
func (r *RestoredResults) Inbounds() map[string][]string {
	inbound := make(map[string][]string, len(r.Nodes))
	for _, n := range r.Nodes {
		inbound[n] = []string{}
	}
	for _, e := range r.Edges {
		inbound[e.Target] = append(inbound[e.Target], e.Source)
	}
	for n := range inbound {
		sort.Strings(inbound[n])
	}
	return inbound
}

// Outbounds maps every node onto its sorted successor set.
func (r *RestoredResults) Outbounds() map[string][]string {
	outbound := make(map[string][]string, len(r.Nodes))
	for _, n := range r.Nodes {
		outbound[n] = []string{}
	}
	for _, e := range r.Edges {
		outbound[e.Source] = append(outbound[e.Source], e.Target)
	}
	for n := range outbound {
		sort.Strings(outbound[n])
	}
	return outbound
}
