/*
Package component implements the typed components of an energy supply
network: Bus, Source, Sink, Transformer, CHP, Storage and Connector.

Every type owns a uid and a parameter set parsed from a loosely typed
attribute bag by the shared parsing helpers in parse.go. Parsing is total
(missing keys fall back to declared defaults) and idempotent (already typed
values pass through unchanged). Construction never fails; callers wanting
eager schema guarantees run Validate after construction.
*/
package component

import (
	"fmt"

	"github.com/esdl/esn_core/internal/pkg/uid"
)

// Attributes is the loosely typed keyword bag a component is built from,
// e.g. a decoded wire payload or imported spreadsheet row.
type Attributes map[string]interface{}

// Component is implemented by every energy system component type.
type Component interface {
	Uid() uid.Uid
	Inputs() []string
	Outputs() []string
	Interfaces() []string
	Attributes() Attributes
	Duplicate(prefix, separator, suffix string) Component
	Validate() error
}

// SchemaError reports a mapping-typed parameter referencing an interface
// outside the component's declared interface set.
type SchemaError struct {
	Component string
	Parameter string
	Interface string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf(
		"component %s: parameter %s references undeclared interface %q",
		e.Component, e.Parameter, e.Interface)
}

// renamed applies the duplicate naming convention to a uid.
func renamed(u uid.Uid, prefix, separator, suffix string) uid.Uid {
	name := u.Name
	if prefix != "" {
		name = prefix + separator + name
	}
	if suffix != "" {
		name = name + separator + suffix
	}
	u.Name = name
	return u
}

// tagged fills the uid's component tag when the caller left it empty.
func tagged(u uid.Uid, component string) uid.Uid {
	if u.Component == "" {
		u.Component = component
	}
	return u
}

// uidAttributes flattens the uid fields into an attribute bag.
func uidAttributes(u uid.Uid, into Attributes) {
	into["name"] = u.Name
	into["latitude"] = u.Latitude
	into["longitude"] = u.Longitude
	into["region"] = u.Region
	into["sector"] = u.Sector
	into["carrier"] = u.Carrier
	into["component"] = u.Component
	into["node_type"] = u.NodeType
}

// uidFromAttributes rebuilds a uid from a flat attribute bag.
func uidFromAttributes(attrs Attributes) uid.Uid {
	return uid.Uid{
		Name:      stringOf(attrs["name"]),
		Latitude:  float64(parseSingular(attrs, "latitude", 0)),
		Longitude: float64(parseSingular(attrs, "longitude", 0)),
		Region:    stringOf(attrs["region"]),
		Sector:    stringOf(attrs["sector"]),
		Carrier:   stringOf(attrs["carrier"]),
		Component: stringOf(attrs["component"]),
		NodeType:  stringOf(attrs["node_type"]),
	}
}
