package component

import (
	"github.com/esdl/esn_core/internal/pkg/nts"
	"github.com/esdl/esn_core/internal/pkg/uid"
)

// CHP is a combined heat and power unit. It extends Transformer with back
// pressure operation, full condensation efficiencies and three
// characteristic curves; conversions become optional because they may be
// derived from the curves instead.
type CHP struct {
	Transformer

	backPressure           bool
	fullCondensation       map[nts.Pair]nts.Float
	elEfficiencyWoDistHeat nts.MinMaxSeries
	enthalpyLoss           nts.MinMaxSeries
	powerWoDistHeat        nts.MinMaxSeries
	powerLossIndex         nts.Float
	minCondenserLoad       nts.Float
}

// NewCHP returns a configured CHP. The embedded transformer block is parsed
// first; the CHP block only adds its own parameters and never reverts the
// ones already set. conversions may be nil.
func NewCHP(u uid.Uid, inputs, outputs []string, conversions map[nts.Pair]nts.Float, attrs Attributes) *CHP {
	if attrs == nil {
		attrs = Attributes{}
	}
	c := &CHP{
		Transformer: *NewTransformer(tagged(u, "chp"), inputs, outputs, conversions, attrs),
	}
	c.backPressure = parseBool(attrs, "back_pressure", false)
	c.fullCondensation = parseConversions(attrs, "conversion_factor_full_condensation", nil)
	c.elEfficiencyWoDistHeat = parseSeries(attrs, "el_efficiency_wo_dist_heat", nts.MinMaxSeries{})
	c.enthalpyLoss = parseSeries(attrs, "enthalpy_loss", nts.MinMaxSeries{})
	c.powerWoDistHeat = parseSeries(attrs, "power_wo_dist_heat", nts.MinMaxSeries{})
	c.powerLossIndex = parseSingular(attrs, "power_loss_index", nts.NaN)
	c.minCondenserLoad = parseSingular(attrs, "min_condenser_load", nts.NaN)
	return c
}

// CHPFromAttributes rebuilds a CHP from its flat attribute mapping.
func CHPFromAttributes(attrs Attributes) (*CHP, error) {
	return NewCHP(
		uidFromAttributes(attrs),
		stringsOf(attrs["inputs"]),
		stringsOf(attrs["outputs"]),
		nil,
		attrs,
	), nil
}

// BackPressure reports whether the unit runs in back pressure mode.
func (c *CHP) BackPressure() bool { return c.backPressure }

// FullCondensation returns the conversion factors under full condensation.
func (c *CHP) FullCondensation() map[nts.Pair]nts.Float { return c.fullCondensation }

// ElEfficiencyWoDistHeat returns the electric efficiency curve without
// district heat extraction.
func (c *CHP) ElEfficiencyWoDistHeat() nts.MinMaxSeries { return c.elEfficiencyWoDistHeat }

// EnthalpyLoss returns the enthalpy loss curve.
func (c *CHP) EnthalpyLoss() nts.MinMaxSeries { return c.enthalpyLoss }

// PowerWoDistHeat returns the power curve without district heat extraction.
func (c *CHP) PowerWoDistHeat() nts.MinMaxSeries { return c.powerWoDistHeat }

// PowerLossIndex returns the power loss index, NaN when unset.
func (c *CHP) PowerLossIndex() nts.Float { return c.powerLossIndex }

// MinCondenserLoad returns the minimum condenser load, NaN when unset.
func (c *CHP) MinCondenserLoad() nts.Float { return c.minCondenserLoad }

// Attributes returns the flat public field mapping used by the codec.
func (c *CHP) Attributes() Attributes {
	attrs := c.Transformer.Attributes()
	attrs["back_pressure"] = c.backPressure
	attrs["conversion_factor_full_condensation"] = c.fullCondensation
	attrs["el_efficiency_wo_dist_heat"] = c.elEfficiencyWoDistHeat
	attrs["enthalpy_loss"] = c.enthalpyLoss
	attrs["power_wo_dist_heat"] = c.powerWoDistHeat
	attrs["power_loss_index"] = c.powerLossIndex
	attrs["min_condenser_load"] = c.minCondenserLoad
	return attrs
}

// Duplicate returns a copy with the duplicate naming convention applied.
func (c *CHP) Duplicate(prefix, separator, suffix string) Component {
	dup := *c
	dup.Transformer = c.Transformer.duplicate(prefix, separator, suffix)
	dup.fullCondensation = copyPairMap(c.fullCondensation)
	return &dup
}

// Validate flags mapping keys outside the declared interface sets.
func (c *CHP) Validate() error {
	if err := c.validateConversions(c.fullCondensation); err != nil {
		return err
	}
	return c.Transformer.Validate()
}
