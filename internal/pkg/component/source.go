package component

import (
	"github.com/esdl/esn_core/internal/pkg/nts"
	"github.com/esdl/esn_core/internal/pkg/uid"
)

// Source produces energy carriers out of nothing, e.g. a gas import or a
// wind turbine. All parameters are keyed over its output interfaces.
type Source struct {
	flowParams
	commitmentParams

	uid                uid.Uid
	outputs            []string
	accumulatedAmounts map[string]nts.MinMax
}

// NewSource returns a configured Source. Missing attributes fall back to
// the schema defaults, so NewSource(u, outputs, nil) yields a fully
// defaulted component.
func NewSource(u uid.Uid, outputs []string, attrs Attributes) *Source {
	if attrs == nil {
		attrs = Attributes{}
	}
	s := &Source{
		uid:     tagged(u, "source"),
		outputs: append([]string(nil), outputs...),
	}
	s.accumulatedAmounts = parseMinMaxMap(attrs, "accumulated_amounts", s.outputs, defaultAmounts)
	s.flowParams.parse(attrs, s.outputs, s.outputs)
	s.commitmentParams.parse(attrs)
	return s
}

// SourceFromAttributes rebuilds a Source from its flat attribute mapping.
func SourceFromAttributes(attrs Attributes) (*Source, error) {
	return NewSource(uidFromAttributes(attrs), stringsOf(attrs["outputs"]), attrs), nil
}

// Uid returns the source identity.
func (s *Source) Uid() uid.Uid { return s.uid }

// Inputs returns nil; a source only produces.
func (s *Source) Inputs() []string { return nil }

// Outputs returns the declared output interfaces.
func (s *Source) Outputs() []string { return s.outputs }

// Interfaces returns the declared interface set.
func (s *Source) Interfaces() []string { return append([]string(nil), s.outputs...) }

// AccumulatedAmounts returns the lifetime production bounds per interface.
func (s *Source) AccumulatedAmounts() map[string]nts.MinMax { return s.accumulatedAmounts }

// Attributes returns the flat public field mapping used by the codec.
func (s *Source) Attributes() Attributes {
	attrs := Attributes{}
	uidAttributes(s.uid, attrs)
	attrs["outputs"] = append([]string(nil), s.outputs...)
	attrs["accumulated_amounts"] = s.accumulatedAmounts
	s.flowParams.attributes(attrs)
	s.commitmentParams.attributes(attrs)
	return attrs
}

// Duplicate returns a copy with the duplicate naming convention applied.
func (s *Source) Duplicate(prefix, separator, suffix string) Component {
	dup := *s
	dup.uid = renamed(s.uid, prefix, separator, suffix)
	dup.flowParams = s.flowParams.clone()
	dup.accumulatedAmounts = make(map[string]nts.MinMax, len(s.accumulatedAmounts))
	for k, v := range s.accumulatedAmounts {
		dup.accumulatedAmounts[k] = v
	}
	dup.outputs = append([]string(nil), s.outputs...)
	return &dup
}

// Validate flags mapping keys outside the declared output set.
func (s *Source) Validate() error {
	members := memberSet(s.outputs)
	for _, k := range minMaxKeys(s.accumulatedAmounts) {
		if !members[k] {
			return &SchemaError{Component: s.uid.Name, Parameter: "accumulated_amounts", Interface: k}
		}
	}
	return s.flowParams.validate(s.uid.Name, s.outputs, s.outputs)
}
