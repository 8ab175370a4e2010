/*
Package uid implements the unique identifier attached to every energy system
component. A Uid carries eight orthogonal tags; which subset appears in the
string projection is selected by an explicit Style threaded through every
formatting call, never by package level state.
*/
package uid

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator joins the projected uid fields.
const Separator = "_"

// Uid identifies one energy system component. The projection produced by
// Format under the model's configured style must be unique across all
// components of one system model.
type Uid struct {
	Name      string
	Latitude  float64
	Longitude float64
	Region    string
	Sector    string
	Carrier   string
	Component string
	NodeType  string
}

// Style selects the field subset used for the string projection.
type Style string

// Recognized projection styles.
const (
	StyleName      Style = "name"
	StyleQualname  Style = "qualname"
	StyleCoords    Style = "coords"
	StyleRegion    Style = "region"
	StyleSector    Style = "sector"
	StyleCarrier   Style = "carrier"
	StyleComponent Style = "component"
	StyleNodeType  Style = "node_type"
)

var styleFields = map[Style][]string{
	StyleName: {"name"},
	StyleQualname: {
		"name", "latitude", "longitude", "region",
		"sector", "carrier", "component", "node_type",
	},
	StyleCoords:    {"name", "latitude", "longitude"},
	StyleRegion:    {"name", "region"},
	StyleSector:    {"name", "sector"},
	StyleCarrier:   {"name", "carrier"},
	StyleComponent: {"name", "component"},
	StyleNodeType:  {"name", "node_type"},
}

// ParseStyle maps a configuration string onto its Style.
func ParseStyle(s string) (Style, error) {
	style := Style(s)
	if _, ok := styleFields[style]; !ok {
		return "", fmt.Errorf("uid: unknown style %q", s)
	}
	return style, nil
}

// Format projects the uid onto the style's field subset, joined by
// Separator.
func (u Uid) Format(style Style) string {
	fields, ok := styleFields[style]
	if !ok {
		fields = styleFields[StyleName]
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, u.field(f))
	}
	return strings.Join(parts, Separator)
}

// String returns the name-only projection. Richer projections must request
// their style explicitly through Format.
func (u Uid) String() string {
	return u.Format(StyleName)
}

func (u Uid) field(name string) string {
	switch name {
	case "name":
		return u.Name
	case "latitude":
		return strconv.FormatFloat(u.Latitude, 'g', -1, 64)
	case "longitude":
		return strconv.FormatFloat(u.Longitude, 'g', -1, 64)
	case "region":
		return u.Region
	case "sector":
		return u.Sector
	case "carrier":
		return u.Carrier
	case "component":
		return u.Component
	case "node_type":
		return u.NodeType
	}
	return ""
}

// Reconstruct inverts Format. It only succeeds when the style used at
// construction time is known at reconstruction time; a projection holding
// fewer fields than the style demands is reported as an error rather than
// silently misassigning tags.
func Reconstruct(s string, style Style) (Uid, error) {
	fields, ok := styleFields[style]
	if !ok {
		return Uid{}, fmt.Errorf("uid: unknown style %q", style)
	}

	parts := strings.Split(s, Separator)
	if len(parts) < len(fields) {
		return Uid{}, fmt.Errorf(
			"uid: projection %q holds %d fields, style %q demands %d; "+
				"the style must match the one used at construction time",
			s, len(parts), style, len(fields))
	}

	u := Uid{}
	for pos, f := range fields {
		if err := u.setField(f, parts[pos]); err != nil {
			return Uid{}, err
		}
	}
	return u, nil
}

func (u *Uid) setField(name, value string) error {
	switch name {
	case "name":
		u.Name = value
	case "latitude", "longitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("uid: field %s: %v", name, err)
		}
		if name == "latitude" {
			u.Latitude = v
		} else {
			u.Longitude = v
		}
	case "region":
		u.Region = value
	case "sector":
		u.Sector = value
	case "carrier":
		u.Carrier = value
	case "component":
		u.Component = value
	case "node_type":
		u.NodeType = value
	}
	return nil
}
