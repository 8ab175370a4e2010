package component

import (
	"github.com/esdl/esn_core/internal/pkg/nts"
	"github.com/esdl/esn_core/internal/pkg/uid"
)

// Sink consumes energy carriers, e.g. a demand or an export. It mirrors
// Source with all parameters keyed over its input interfaces.
type Sink struct {
	flowParams
	commitmentParams

	uid                uid.Uid
	inputs             []string
	accumulatedAmounts map[string]nts.MinMax
}

// NewSink returns a configured Sink.
func NewSink(u uid.Uid, inputs []string, attrs Attributes) *Sink {
	if attrs == nil {
		attrs = Attributes{}
	}
	s := &Sink{
		uid:    tagged(u, "sink"),
		inputs: append([]string(nil), inputs...),
	}
	s.accumulatedAmounts = parseMinMaxMap(attrs, "accumulated_amounts", s.inputs, defaultAmounts)
	s.flowParams.parse(attrs, s.inputs, s.inputs)
	s.commitmentParams.parse(attrs)
	return s
}

// SinkFromAttributes rebuilds a Sink from its flat attribute mapping.
func SinkFromAttributes(attrs Attributes) (*Sink, error) {
	return NewSink(uidFromAttributes(attrs), stringsOf(attrs["inputs"]), attrs), nil
}

// Uid returns the sink identity.
func (s *Sink) Uid() uid.Uid { return s.uid }

// Inputs returns the declared input interfaces.
func (s *Sink) Inputs() []string { return s.inputs }

// Outputs returns nil; a sink only consumes.
func (s *Sink) Outputs() []string { return nil }

// Interfaces returns the declared interface set.
func (s *Sink) Interfaces() []string { return append([]string(nil), s.inputs...) }

// AccumulatedAmounts returns the lifetime consumption bounds per interface.
func (s *Sink) AccumulatedAmounts() map[string]nts.MinMax { return s.accumulatedAmounts }

// Attributes returns the flat public field mapping used by the codec.
func (s *Sink) Attributes() Attributes {
	attrs := Attributes{}
	uidAttributes(s.uid, attrs)
	attrs["inputs"] = append([]string(nil), s.inputs...)
	attrs["accumulated_amounts"] = s.accumulatedAmounts
	s.flowParams.attributes(attrs)
	s.commitmentParams.attributes(attrs)
	return attrs
}

// Duplicate returns a copy with the duplicate naming convention applied.
func (s *Sink) Duplicate(prefix, separator, suffix string) Component {
	dup := *s
	dup.uid = renamed(s.uid, prefix, separator, suffix)
	dup.flowParams = s.flowParams.clone()
	dup.accumulatedAmounts = make(map[string]nts.MinMax, len(s.accumulatedAmounts))
	for k, v := range s.accumulatedAmounts {
		dup.accumulatedAmounts[k] = v
	}
	dup.inputs = append([]string(nil), s.inputs...)
	return &dup
}

// Validate flags mapping keys outside the declared input set.
func (s *Sink) Validate() error {
	members := memberSet(s.inputs)
	for _, k := range minMaxKeys(s.accumulatedAmounts) {
		if !members[k] {
			return &SchemaError{Component: s.uid.Name, Parameter: "accumulated_amounts", Interface: k}
		}
	}
	return s.flowParams.validate(s.uid.Name, s.inputs, s.inputs)
}
