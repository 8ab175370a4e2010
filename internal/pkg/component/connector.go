package component

import (
	"github.com/esdl/esn_core/internal/pkg/nts"
	"github.com/esdl/esn_core/internal/pkg/uid"
)

// Connector couples exactly two busses so flows can pass between them in
// both directions. Both interfaces act as input and output at once.
type Connector struct {
	uid         uid.Uid
	interfaces  []string
	conversions map[nts.Pair]nts.Float
}

// NewConnector returns a configured Connector linking busses a and b.
// Conversion efficiencies default to 1 in both directions.
func NewConnector(u uid.Uid, a, b string, attrs Attributes) *Connector {
	if attrs == nil {
		attrs = Attributes{}
	}
	def := map[nts.Pair]nts.Float{
		{From: a, To: b}: 1,
		{From: b, To: a}: 1,
	}
	return &Connector{
		uid:         tagged(u, "connector"),
		interfaces:  []string{a, b},
		conversions: parseConversions(attrs, "conversions", def),
	}
}

// ConnectorFromAttributes rebuilds a Connector from its flat attribute
// mapping.
func ConnectorFromAttributes(attrs Attributes) (*Connector, error) {
	ifaces := stringsOf(attrs["interfaces"])
	var a, b string
	if len(ifaces) == 2 {
		a, b = ifaces[0], ifaces[1]
	}
	return NewConnector(uidFromAttributes(attrs), a, b, attrs), nil
}

// Uid returns the connector identity.
func (c *Connector) Uid() uid.Uid { return c.uid }

// Inputs returns both coupled bus labels; a connector is bidirectional.
func (c *Connector) Inputs() []string { return c.interfaces }

// Outputs returns both coupled bus labels; a connector is bidirectional.
func (c *Connector) Outputs() []string { return c.interfaces }

// Interfaces returns the two coupled bus labels.
func (c *Connector) Interfaces() []string { return c.interfaces }

// Conversions returns the transfer efficiency per direction.
func (c *Connector) Conversions() map[nts.Pair]nts.Float { return c.conversions }

// Attributes returns the flat public field mapping used by the codec.
func (c *Connector) Attributes() Attributes {
	attrs := Attributes{}
	uidAttributes(c.uid, attrs)
	attrs["interfaces"] = append([]string(nil), c.interfaces...)
	attrs["conversions"] = c.conversions
	return attrs
}

// Duplicate returns a copy with the duplicate naming convention applied.
func (c *Connector) Duplicate(prefix, separator, suffix string) Component {
	dup := *c
	dup.uid = renamed(c.uid, prefix, separator, suffix)
	dup.interfaces = append([]string(nil), c.interfaces...)
	dup.conversions = copyPairMap(c.conversions)
	return &dup
}

// Validate flags conversion pairs not matching the coupled busses.
func (c *Connector) Validate() error {
	members := memberSet(c.interfaces)
	for pair := range c.conversions {
		if !members[pair.From] {
			return &SchemaError{Component: c.uid.Name, Parameter: "conversions", Interface: pair.From}
		}
		if !members[pair.To] {
			return &SchemaError{Component: c.uid.Name, Parameter: "conversions", Interface: pair.To}
		}
	}
	return nil
}
