package component

import (
	"github.com/esdl/esn_core/internal/pkg/nts"
	"github.com/esdl/esn_core/internal/pkg/uid"
)

// Storage buffers a single energy carrier over time, e.g. a battery or a
// heat reservoir. It declares exactly one input and one output interface,
// usually the same carrier. Expansion additionally covers the "capacity"
// pseudo interface so installed energy content can grow alongside the
// charge and discharge ratings.
type Storage struct {
	flowParams
	commitmentParams

	uid                  uid.Uid
	input                string
	output               string
	capacity             nts.Float
	initialSoc           nts.Float
	finalSoc             nts.Float
	idleChanges          nts.PositiveNegative
	flowEfficiencies     map[string]nts.InOut
	fixedExpansionRatios bool
}

// NewStorage returns a configured Storage.
func NewStorage(u uid.Uid, input, output string, capacity nts.Float, attrs Attributes) *Storage {
	if attrs == nil {
		attrs = Attributes{}
	}
	s := &Storage{
		uid:      tagged(u, "storage"),
		input:    input,
		output:   output,
		capacity: capacity,
	}
	s.initialSoc = parseSingular(attrs, "initial_soc", defaultInitialSoc)
	s.finalSoc = parseSingular(attrs, "final_soc", nts.NaN)
	s.idleChanges = parsePosNeg(attrs, "idle_changes", defaultIdleChanges)
	s.flowEfficiencies = parseInOutMap(attrs, "flow_efficiencies", s.flows(), defaultEfficiencies)
	s.fixedExpansionRatios = parseBool(attrs, "fixed_expansion_ratios", true)
	s.flowParams.parse(attrs, s.flows(), s.expansionInterfaces())
	s.commitmentParams.parse(attrs)
	return s
}

// StorageFromAttributes rebuilds a Storage from its flat attribute mapping.
func StorageFromAttributes(attrs Attributes) (*Storage, error) {
	return NewStorage(
		uidFromAttributes(attrs),
		stringOf(attrs["input"]),
		stringOf(attrs["output"]),
		parseSingular(attrs, capacityKey, 0),
		attrs,
	), nil
}

func (s *Storage) flows() []string {
	if s.input == s.output {
		return []string{s.input}
	}
	return []string{s.input, s.output}
}

func (s *Storage) expansionInterfaces() []string {
	return append(s.flows(), capacityKey)
}

// Uid returns the storage identity.
func (s *Storage) Uid() uid.Uid { return s.uid }

// Inputs returns the single input interface.
func (s *Storage) Inputs() []string { return []string{s.input} }

// Outputs returns the single output interface.
func (s *Storage) Outputs() []string { return []string{s.output} }

// Interfaces returns the distinct declared interfaces.
func (s *Storage) Interfaces() []string { return s.flows() }

// Capacity returns the installed energy content.
func (s *Storage) Capacity() nts.Float { return s.capacity }

// InitialSoc returns the state of charge at the start of the horizon.
func (s *Storage) InitialSoc() nts.Float { return s.initialSoc }

// FinalSoc returns the required state of charge at the end of the horizon,
// NaN when unconstrained.
func (s *Storage) FinalSoc() nts.Float { return s.finalSoc }

// IdleChanges returns the state of charge drift per timestep while idle.
func (s *Storage) IdleChanges() nts.PositiveNegative { return s.idleChanges }

// FlowEfficiencies returns the charge and discharge efficiencies per
// interface.
func (s *Storage) FlowEfficiencies() map[string]nts.InOut { return s.flowEfficiencies }

// FixedExpansionRatios reports whether flow rate expansion is tied to
// capacity expansion.
func (s *Storage) FixedExpansionRatios() bool { return s.fixedExpansionRatios }

// Attributes returns the flat public field mapping used by the codec.
func (s *Storage) Attributes() Attributes {
	attrs := Attributes{}
	uidAttributes(s.uid, attrs)
	attrs["input"] = s.input
	attrs["output"] = s.output
	attrs[capacityKey] = s.capacity
	attrs["initial_soc"] = s.initialSoc
	attrs["final_soc"] = s.finalSoc
	attrs["idle_changes"] = s.idleChanges
	attrs["flow_efficiencies"] = s.flowEfficiencies
	attrs["fixed_expansion_ratios"] = s.fixedExpansionRatios
	s.flowParams.attributes(attrs)
	s.commitmentParams.attributes(attrs)
	return attrs
}

// Duplicate returns a copy with the duplicate naming convention applied.
func (s *Storage) Duplicate(prefix, separator, suffix string) Component {
	dup := *s
	dup.uid = renamed(s.uid, prefix, separator, suffix)
	dup.flowParams = s.flowParams.clone()
	dup.flowEfficiencies = make(map[string]nts.InOut, len(s.flowEfficiencies))
	for k, v := range s.flowEfficiencies {
		dup.flowEfficiencies[k] = v
	}
	return &dup
}

// Validate flags mapping keys outside the declared interface sets.
func (s *Storage) Validate() error {
	members := memberSet(s.flows())
	for _, k := range inOutKeys(s.flowEfficiencies) {
		if !members[k] {
			return &SchemaError{Component: s.uid.Name, Parameter: "flow_efficiencies", Interface: k}
		}
	}
	return s.flowParams.validate(s.uid.Name, s.flows(), s.expansionInterfaces())
}
