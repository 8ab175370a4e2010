/*
Package model implements the energy supply system model: a uid'd collection
of typed components plus the simulated timeframe and global constraints.
Network topology is not stored; it is inferred on demand from the bus
connection labels.
*/
package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/esdl/esn_core/internal/pkg/component"
	"github.com/esdl/esn_core/internal/pkg/nts"
	"github.com/esdl/esn_core/internal/pkg/timeframe"
	"github.com/esdl/esn_core/internal/pkg/uid"
)

// SystemModel aggregates the components of one energy supply network.
type SystemModel struct {
	pid   uuid.UUID
	uid   string
	style uid.Style

	busses       []*component.Bus
	chps         []*component.CHP
	connectors   []*component.Connector
	sinks        []*component.Sink
	sources      []*component.Source
	storages     []*component.Storage
	transformers []*component.Transformer

	timeframe         timeframe.Timeframe
	globalConstraints map[string]nts.Float
}

// New returns an empty system model. The style selects the uid projection
// used for node identities and topology endpoints; it must match the style
// the component uids were designed for.
func New(uidStr string, style uid.Style) (*SystemModel, error) {
	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	if style == "" {
		style = uid.StyleName
	}
	return &SystemModel{
		pid:               pid,
		uid:               uidStr,
		style:             style,
		globalConstraints: map[string]nts.Float{"emissions": nts.PosInf},
	}, nil
}

// FromComponents returns a system model populated with the given
// components, timeframe and global constraints. A nil constraints mapping
// keeps the default of unconstrained emissions.
func FromComponents(uidStr string, style uid.Style, components []component.Component, tf timeframe.Timeframe, constraints map[string]nts.Float) (*SystemModel, error) {
	m, err := New(uidStr, style)
	if err != nil {
		return nil, err
	}
	if err := m.Add(components...); err != nil {
		return nil, err
	}
	m.timeframe = tf
	if constraints != nil {
		m.globalConstraints = make(map[string]nts.Float, len(constraints))
		for k, v := range constraints {
			m.globalConstraints[k] = v
		}
	}
	return m, nil
}

// Add sorts components into their typed collections. Sorting is by
// concrete type, so a CHP lands in its own collection rather than the
// transformer one.
func (m *SystemModel) Add(components ...component.Component) error {
	for _, c := range components {
		switch x := c.(type) {
		case *component.Bus:
			m.busses = append(m.busses, x)
		case *component.CHP:
			m.chps = append(m.chps, x)
		case *component.Connector:
			m.connectors = append(m.connectors, x)
		case *component.Sink:
			m.sinks = append(m.sinks, x)
		case *component.Source:
			m.sources = append(m.sources, x)
		case *component.Storage:
			m.storages = append(m.storages, x)
		case *component.Transformer:
			m.transformers = append(m.transformers, x)
		default:
			return fmt.Errorf("model %s: unsupported component type %T", m.uid, c)
		}
	}
	return nil
}

// PID returns the model's process id.
func (m *SystemModel) PID() uuid.UUID { return m.pid }

// Uid returns the model identifier.
func (m *SystemModel) Uid() string { return m.uid }

// Style returns the uid projection style of the model.
func (m *SystemModel) Style() uid.Style { return m.style }

// Busses returns the bus collection.
func (m *SystemModel) Busses() []*component.Bus { return m.busses }

// CHPs returns the combined heat and power collection.
func (m *SystemModel) CHPs() []*component.CHP { return m.chps }

// Connectors returns the connector collection.
func (m *SystemModel) Connectors() []*component.Connector { return m.connectors }

// Sinks returns the sink collection.
func (m *SystemModel) Sinks() []*component.Sink { return m.sinks }

// Sources returns the source collection.
func (m *SystemModel) Sources() []*component.Source { return m.sources }

// Storages returns the storage collection.
func (m *SystemModel) Storages() []*component.Storage { return m.storages }

// Transformers returns the transformer collection.
func (m *SystemModel) Transformers() []*component.Transformer { return m.transformers }

// Timeframe returns the simulated time horizon.
func (m *SystemModel) Timeframe() timeframe.Timeframe { return m.timeframe }

// SetTimeframe replaces the simulated time horizon.
func (m *SystemModel) SetTimeframe(tf timeframe.Timeframe) { m.timeframe = tf }

// GlobalConstraints returns the model wide constraint mapping.
func (m *SystemModel) GlobalConstraints() map[string]nts.Float { return m.globalConstraints }

// Nodes returns every component in deterministic collection order: busses,
// chps, sources, sinks, transformers, storages, connectors. Within a
// collection, insertion order is kept.
func (m *SystemModel) Nodes() []component.Component {
	nodes := make([]component.Component, 0, m.Len())
	for _, c := range m.busses {
		nodes = append(nodes, c)
	}
	for _, c := range m.chps {
		nodes = append(nodes, c)
	}
	for _, c := range m.sources {
		nodes = append(nodes, c)
	}
	for _, c := range m.sinks {
		nodes = append(nodes, c)
	}
	for _, c := range m.transformers {
		nodes = append(nodes, c)
	}
	for _, c := range m.storages {
		nodes = append(nodes, c)
	}
	for _, c := range m.connectors {
		nodes = append(nodes, c)
	}
	return nodes
}

// Len returns the total component count.
func (m *SystemModel) Len() int {
	return len(m.busses) + len(m.chps) + len(m.sources) + len(m.sinks) +
		len(m.transformers) + len(m.storages) + len(m.connectors)
}

// prefixOf splits a bus connection label "component.carrier" into its
// component name part.
func prefixOf(label string) string {
	if i := strings.Index(label, "."); i >= 0 {
		return label[:i]
	}
	return label
}

// carrierOf splits a bus connection label "component.carrier" into its
// carrier part.
func carrierOf(label string) string {
	if i := strings.Index(label, "."); i >= 0 {
		return label[i+1:]
	}
	return ""
}

// nodesByName indexes the uid projections of every node under its plain
// uid name. Several nodes may share a name; under the non-name styles their
// projections still differ.
func (m *SystemModel) nodesByName() map[string][]string {
	byName := make(map[string][]string)
	for _, n := range m.Nodes() {
		name := n.Uid().Name
		byName[name] = append(byName[name], n.Uid().Format(m.style))
	}
	return byName
}

// Edges infers the directed network topology from the bus connection
// labels and the connector interfaces. A bus input label yields an edge
// from every node named by the label's component part into the bus; an
// output label the reverse. Connector interfaces name busses by their full
// uid projection and yield edges in both directions. Labels whose
// component name matches no node are skipped. Duplicate edges are reported
// once.
func (m *SystemModel) Edges() []nts.Edge {
	byName := m.nodesByName()

	var edges []nts.Edge
	seen := make(map[nts.Edge]bool)
	add := func(e nts.Edge) {
		if !seen[e] {
			seen[e] = true
			edges = append(edges, e)
		}
	}

	for _, b := range m.busses {
		busUid := b.Uid().Format(m.style)
		for _, label := range b.Inputs() {
			for _, node := range byName[prefixOf(label)] {
				add(nts.Edge{Source: node, Target: busUid})
			}
		}
		for _, label := range b.Outputs() {
			for _, node := range byName[prefixOf(label)] {
				add(nts.Edge{Source: busUid, Target: node})
			}
		}
	}

	for _, c := range m.connectors {
		conUid := c.Uid().Format(m.style)
		for _, busUid := range c.Interfaces() {
			add(nts.Edge{Source: busUid, Target: conUid})
			add(nts.Edge{Source: conUid, Target: busUid})
		}
	}
	return edges
}

// EdgeCarriers maps every inferred edge to its energy carrier. Bus edges
// carry the label's carrier part; connector edges carry the coupled bus's
// carrier tag.
func (m *SystemModel) EdgeCarriers() map[nts.Edge]string {
	byName := m.nodesByName()
	busByUid := make(map[string]*component.Bus)
	for _, b := range m.busses {
		busByUid[b.Uid().Format(m.style)] = b
	}

	carriers := make(map[nts.Edge]string)
	for _, b := range m.busses {
		busUid := b.Uid().Format(m.style)
		for _, label := range b.Inputs() {
			for _, node := range byName[prefixOf(label)] {
				carriers[nts.Edge{Source: node, Target: busUid}] = carrierOf(label)
			}
		}
		for _, label := range b.Outputs() {
			for _, node := range byName[prefixOf(label)] {
				carriers[nts.Edge{Source: busUid, Target: node}] = carrierOf(label)
			}
		}
	}
	for _, c := range m.connectors {
		conUid := c.Uid().Format(m.style)
		for _, busUid := range c.Interfaces() {
			carrier := ""
			if b, ok := busByUid[busUid]; ok {
				carrier = b.Uid().Carrier
			}
			carriers[nts.Edge{Source: busUid, Target: conUid}] = carrier
			carriers[nts.Edge{Source: conUid, Target: busUid}] = carrier
		}
	}
	return carriers
}

// Connect joins this model with another into a new model coupled through a
// fresh connector between the two named busses. Both bus uids must resolve
// within the combined model.
func (m *SystemModel) Connect(other *SystemModel, busses [2]string, connectorUid uid.Uid) (*SystemModel, error) {
	joined, err := New(m.uid, m.style)
	if err != nil {
		return nil, err
	}
	if err := joined.Add(m.Nodes()...); err != nil {
		return nil, err
	}
	if err := joined.Add(other.Nodes()...); err != nil {
		return nil, err
	}

	for _, busUid := range busses {
		if !joined.hasBus(busUid) {
			return nil, fmt.Errorf("model %s: connect: no bus %q in joined model", m.uid, busUid)
		}
	}

	connector := component.NewConnector(connectorUid, busses[0], busses[1], nil)
	if err := joined.Add(connector); err != nil {
		return nil, err
	}

	joined.timeframe = m.timeframe
	for k, v := range m.globalConstraints {
		joined.globalConstraints[k] = v
	}
	return joined, nil
}

func (m *SystemModel) hasBus(busUid string) bool {
	for _, b := range m.busses {
		if b.Uid().Format(m.style) == busUid {
			return true
		}
	}
	return false
}

// Duplicate returns a copy of the model with the duplicate naming
// convention applied to the model uid and every component.
func (m *SystemModel) Duplicate(prefix, separator, suffix string) (*SystemModel, error) {
	name := m.uid
	if prefix != "" {
		name = prefix + separator + name
	}
	if suffix != "" {
		name = name + separator + suffix
	}

	dup, err := New(name, m.style)
	if err != nil {
		return nil, err
	}
	for _, n := range m.Nodes() {
		if err := dup.Add(n.Duplicate(prefix, separator, suffix)); err != nil {
			return nil, err
		}
	}
	dup.timeframe = m.timeframe
	dup.globalConstraints = make(map[string]nts.Float, len(m.globalConstraints))
	for k, v := range m.globalConstraints {
		dup.globalConstraints[k] = v
	}
	return dup, nil
}

// Validate runs every component's schema check and returns the first
// failure.
func (m *SystemModel) Validate() error {
	for _, n := range m.Nodes() {
		if err := n.Validate(); err != nil {
			return err
		}
	}
	return nil
}
