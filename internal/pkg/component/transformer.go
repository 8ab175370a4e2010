package component

import (
	"github.com/esdl/esn_core/internal/pkg/nts"
	"github.com/esdl/esn_core/internal/pkg/uid"
)

// Transformer converts between energy carriers, e.g. a gas fired power
// plant turning fuel into electricity. Flow parameters are keyed over
// inputs and outputs combined; conversion efficiencies are keyed by
// (input carrier, output carrier) pairs.
type Transformer struct {
	flowParams
	commitmentParams

	uid         uid.Uid
	inputs      []string
	outputs     []string
	conversions map[nts.Pair]nts.Float
}

// NewTransformer returns a configured Transformer. A nil conversions
// argument defers to the "conversions" attribute of the bag.
func NewTransformer(u uid.Uid, inputs, outputs []string, conversions map[nts.Pair]nts.Float, attrs Attributes) *Transformer {
	if attrs == nil {
		attrs = Attributes{}
	}
	t := &Transformer{
		uid:     tagged(u, "transformer"),
		inputs:  append([]string(nil), inputs...),
		outputs: append([]string(nil), outputs...),
	}
	if conversions != nil {
		t.conversions = copyPairMap(conversions)
	} else {
		t.conversions = parseConversions(attrs, "conversions", nil)
	}
	t.flowParams.parse(attrs, t.interfaces(), t.interfaces())
	t.commitmentParams.parse(attrs)
	return t
}

// TransformerFromAttributes rebuilds a Transformer from its flat attribute
// mapping.
func TransformerFromAttributes(attrs Attributes) (*Transformer, error) {
	return NewTransformer(
		uidFromAttributes(attrs),
		stringsOf(attrs["inputs"]),
		stringsOf(attrs["outputs"]),
		nil,
		attrs,
	), nil
}

func (t *Transformer) interfaces() []string {
	return append(append([]string(nil), t.inputs...), t.outputs...)
}

// Uid returns the transformer identity.
func (t *Transformer) Uid() uid.Uid { return t.uid }

// Inputs returns the declared input interfaces.
func (t *Transformer) Inputs() []string { return t.inputs }

// Outputs returns the declared output interfaces.
func (t *Transformer) Outputs() []string { return t.outputs }

// Interfaces returns inputs and outputs combined.
func (t *Transformer) Interfaces() []string { return t.interfaces() }

// Conversions returns the efficiency per (input, output) carrier pair.
// Efficiencies lie in [0, 1] and state output units produced per input unit
// consumed.
func (t *Transformer) Conversions() map[nts.Pair]nts.Float { return t.conversions }

// InputRequired returns the input units consumed to produce outputUnits on
// the given carrier pair, i.e. outputUnits / efficiency. The second return
// is false when no conversion is declared for the pair.
func (t *Transformer) InputRequired(from, to string, outputUnits nts.Float) (nts.Float, bool) {
	eff, ok := t.conversions[nts.Pair{From: from, To: to}]
	if !ok || eff == 0 {
		return 0, false
	}
	return outputUnits / eff, true
}

// Attributes returns the flat public field mapping used by the codec.
func (t *Transformer) Attributes() Attributes {
	attrs := Attributes{}
	uidAttributes(t.uid, attrs)
	attrs["inputs"] = append([]string(nil), t.inputs...)
	attrs["outputs"] = append([]string(nil), t.outputs...)
	attrs["conversions"] = t.conversions
	t.flowParams.attributes(attrs)
	t.commitmentParams.attributes(attrs)
	return attrs
}

// Duplicate returns a copy with the duplicate naming convention applied.
func (t *Transformer) Duplicate(prefix, separator, suffix string) Component {
	dup := t.duplicate(prefix, separator, suffix)
	return &dup
}

func (t *Transformer) duplicate(prefix, separator, suffix string) Transformer {
	dup := *t
	dup.uid = renamed(t.uid, prefix, separator, suffix)
	dup.flowParams = t.flowParams.clone()
	dup.conversions = copyPairMap(t.conversions)
	dup.inputs = append([]string(nil), t.inputs...)
	dup.outputs = append([]string(nil), t.outputs...)
	return dup
}

// Validate flags mapping keys outside the declared interface sets,
// including conversion pairs not matching inputs x outputs.
func (t *Transformer) Validate() error {
	if err := t.validateConversions(t.conversions); err != nil {
		return err
	}
	return t.flowParams.validate(t.uid.Name, t.interfaces(), t.interfaces())
}

func (t *Transformer) validateConversions(conversions map[nts.Pair]nts.Float) error {
	ins := memberSet(t.inputs)
	outs := memberSet(t.outputs)
	for pair := range conversions {
		if !ins[pair.From] {
			return &SchemaError{Component: t.uid.Name, Parameter: "conversions", Interface: pair.From}
		}
		if !outs[pair.To] {
			return &SchemaError{Component: t.uid.Name, Parameter: "conversions", Interface: pair.To}
		}
	}
	return nil
}
