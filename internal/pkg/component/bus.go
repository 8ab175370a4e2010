package component

import "github.com/esdl/esn_core/internal/pkg/uid"

// Bus collects and distributes flows of a single energy carrier. Its inputs
// and outputs are free-form connection labels of the form
// "<component-name>.<carrier>"; the network topology is recovered purely
// from these labels.
type Bus struct {
	uid     uid.Uid
	inputs  []string
	outputs []string
}

// NewBus returns a configured Bus.
func NewBus(u uid.Uid, inputs, outputs []string) *Bus {
	return &Bus{
		uid:     tagged(u, "bus"),
		inputs:  append([]string(nil), inputs...),
		outputs: append([]string(nil), outputs...),
	}
}

// BusFromAttributes rebuilds a Bus from its flat attribute mapping.
func BusFromAttributes(attrs Attributes) (*Bus, error) {
	return NewBus(
		uidFromAttributes(attrs),
		stringsOf(attrs["inputs"]),
		stringsOf(attrs["outputs"]),
	), nil
}

// Uid returns the bus identity.
func (b *Bus) Uid() uid.Uid { return b.uid }

// Inputs returns the incoming connection labels.
func (b *Bus) Inputs() []string { return b.inputs }

// Outputs returns the outgoing connection labels.
func (b *Bus) Outputs() []string { return b.outputs }

// Interfaces returns inputs and outputs combined.
func (b *Bus) Interfaces() []string {
	return append(append([]string(nil), b.inputs...), b.outputs...)
}

// Attributes returns the flat public field mapping used by the codec.
func (b *Bus) Attributes() Attributes {
	attrs := Attributes{}
	uidAttributes(b.uid, attrs)
	attrs["inputs"] = append([]string(nil), b.inputs...)
	attrs["outputs"] = append([]string(nil), b.outputs...)
	return attrs
}

// Duplicate returns a copy with the duplicate naming convention applied.
func (b *Bus) Duplicate(prefix, separator, suffix string) Component {
	return NewBus(renamed(b.uid, prefix, separator, suffix), b.inputs, b.outputs)
}

// Validate always succeeds; a bus declares no mapping-typed parameters.
func (b *Bus) Validate() error { return nil }
