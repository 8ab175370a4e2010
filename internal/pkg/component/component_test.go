package component

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/assert"

	"github.com/esdl/esn_core/internal/pkg/nts"
	"github.com/esdl/esn_core/internal/pkg/uid"
)

// floatCmp equates NaN sentinels so attribute bags with unset optional
// scalars diff clean.
var floatCmp = cmp.Comparer(func(a, b nts.Float) bool {
	if a.IsNaN() && b.IsNaN() {
		return true
	}
	return a == b
})

func genUid(name string) uid.Uid {
	return uid.Uid{Name: name, Region: "here", Sector: "power", Carrier: "electricity"}
}

func newDefaultedSource() *Source {
	return NewSource(genUid("Gen"), []string{"fuel"}, nil)
}

func TestSourceDefaults(t *testing.T) {
	s := newDefaultedSource()

	assert.Assert(t, s.Uid().Component == "source")
	assert.Assert(t, s.Inputs() == nil)
	assert.Assert(t, len(s.Outputs()) == 1 && s.Outputs()[0] == "fuel")

	assert.Equal(t, s.AccumulatedAmounts()["fuel"], nts.MinMax{Min: 0, Max: nts.PosInf})
	assert.Equal(t, s.FlowRates()["fuel"], nts.MinMax{Min: 0, Max: nts.PosInf})
	assert.Equal(t, s.FlowCosts()["fuel"], nts.Float(0))
	assert.Equal(t, s.FlowEmissions()["fuel"], nts.Float(0))
	assert.Equal(t, s.FlowGradients()["fuel"], nts.PositiveNegative{Positive: nts.PosInf, Negative: nts.PosInf})
	assert.Equal(t, s.GradientCosts()["fuel"], nts.PositiveNegative{})
	assert.Assert(t, s.Timeseries() == nil)
	assert.Assert(t, !s.Expandable()["fuel"])
	assert.Equal(t, s.ExpansionCosts()["fuel"], nts.Float(0))
	assert.Equal(t, s.ExpansionLimits()["fuel"], nts.MinMax{Min: 0, Max: nts.PosInf})

	assert.Assert(t, !s.Milp())
	assert.Assert(t, s.InitialStatus())
	assert.Equal(t, s.StatusInertia(), nts.OnOff{})
	assert.Equal(t, s.StatusChangingCosts(), nts.OnOff{})
	assert.Equal(t, s.NumberOfStatusChanges(), nts.OnOff{On: nts.PosInf, Off: nts.PosInf})
	assert.Equal(t, s.CostsForBeingActive(), nts.Float(0))

	assert.Assert(t, s.Validate() == nil)
}

func TestStorageDefaults(t *testing.T) {
	s := NewStorage(genUid("Battery"), "electricity", "electricity", 100, nil)

	assert.Equal(t, s.Capacity(), nts.Float(100))
	assert.Equal(t, s.InitialSoc(), nts.Float(0))
	assert.Assert(t, s.FinalSoc().IsNaN())
	assert.Equal(t, s.IdleChanges(), nts.PositiveNegative{})
	assert.Equal(t, s.FlowEfficiencies()["electricity"], nts.InOut{Inflow: 1, Outflow: 1})
	assert.Assert(t, s.FixedExpansionRatios())

	// expansion covers the capacity pseudo interface
	assert.Equal(t, s.ExpansionLimits()[capacityKey], nts.MinMax{Min: 0, Max: nts.PosInf})
	assert.Assert(t, !s.Expandable()[capacityKey])

	assert.Assert(t, s.Validate() == nil)
}

func TestParseOverridesAndCoercion(t *testing.T) {
	attrs := Attributes{
		"flow_rates": map[string]interface{}{
			"fuel": []interface{}{float64(10), float64(50)},
		},
		"flow_costs":     map[string]interface{}{"fuel": float64(2)},
		"flow_gradients": map[string]interface{}{"fuel": []interface{}{float64(5), "inf"}},
		"milp":           true,
		"initial_status": false,
	}
	s := NewSource(genUid("Gen"), []string{"fuel"}, attrs)

	assert.Equal(t, s.FlowRates()["fuel"], nts.MinMax{Min: 10, Max: 50})
	assert.Equal(t, s.FlowCosts()["fuel"], nts.Float(2))
	assert.Equal(t, s.FlowGradients()["fuel"], nts.PositiveNegative{Positive: 5, Negative: nts.PosInf})
	assert.Assert(t, s.Milp())
	assert.Assert(t, !s.InitialStatus())
}

func TestNaNFallsBackToDefaults(t *testing.T) {
	attrs := Attributes{
		"flow_rates": nts.NaN,
		"flow_costs": float64(nts.NaN),
	}
	s := NewSource(genUid("Gen"), []string{"fuel"}, attrs)

	assert.Equal(t, s.FlowRates()["fuel"], nts.MinMax{Min: 0, Max: nts.PosInf})
	assert.Equal(t, s.FlowCosts()["fuel"], nts.Float(0))
}

func TestReparseIsIdempotent(t *testing.T) {
	attrs := Attributes{
		"flow_rates":          map[string]interface{}{"fuel": []interface{}{float64(0), float64(40)}},
		"flow_emissions":      map[string]interface{}{"fuel": float64(0.8)},
		"accumulated_amounts": map[string]interface{}{"fuel": []interface{}{float64(0), "inf"}},
		"timeseries": map[string]interface{}{
			"fuel": []interface{}{float64(0), []interface{}{float64(10), float64(20), float64(30)}},
		},
		"milp": true,
	}
	first := NewSource(genUid("Gen"), []string{"fuel"}, attrs)

	second, err := SourceFromAttributes(first.Attributes())
	assert.NilError(t, err)

	diff := cmp.Diff(first.Attributes(), second.Attributes(), floatCmp)
	assert.Assert(t, diff == "", diff)
}

func TestDanglingKeysSurviveParseAndFailValidate(t *testing.T) {
	attrs := Attributes{
		"flow_costs": map[string]interface{}{"fuel": float64(1), "typo": float64(3)},
	}
	s := NewSource(genUid("Gen"), []string{"fuel"}, attrs)

	// parse keeps the dangling entry verbatim
	assert.Equal(t, s.FlowCosts()["typo"], nts.Float(3))

	err := s.Validate()
	assert.Assert(t, err != nil)
	schemaErr, ok := err.(*SchemaError)
	assert.Assert(t, ok)
	assert.Equal(t, schemaErr.Component, "Gen")
	assert.Equal(t, schemaErr.Parameter, "flow_costs")
	assert.Equal(t, schemaErr.Interface, "typo")
}

func TestTransformerInputRequired(t *testing.T) {
	conversions := map[nts.Pair]nts.Float{
		{From: "fuel", To: "electricity"}: 0.5,
	}
	tr := NewTransformer(genUid("Plant"), []string{"fuel"}, []string{"electricity"}, conversions, nil)

	in, ok := tr.InputRequired("fuel", "electricity", 1)
	assert.Assert(t, ok)
	assert.Equal(t, in, nts.Float(2))

	_, ok = tr.InputRequired("fuel", "heat", 1)
	assert.Assert(t, !ok)
}

func TestTransformerConversionValidation(t *testing.T) {
	conversions := map[nts.Pair]nts.Float{
		{From: "fuel", To: "heat"}: 0.9,
	}
	tr := NewTransformer(genUid("Plant"), []string{"fuel"}, []string{"electricity"}, conversions, nil)

	err := tr.Validate()
	assert.Assert(t, err != nil)
	schemaErr := err.(*SchemaError)
	assert.Equal(t, schemaErr.Parameter, "conversions")
	assert.Equal(t, schemaErr.Interface, "heat")
}

func TestTransformerConversionsFromBag(t *testing.T) {
	attrs := Attributes{
		"conversions": map[string]interface{}{
			"('fuel', 'electricity')": float64(0.4),
		},
	}
	tr := NewTransformer(genUid("Plant"), []string{"fuel"}, []string{"electricity"}, nil, attrs)

	assert.Equal(t, tr.Conversions()[nts.Pair{From: "fuel", To: "electricity"}], nts.Float(0.4))
	assert.Assert(t, tr.Validate() == nil)
}

func TestCHPExtendsTransformer(t *testing.T) {
	attrs := Attributes{
		"conversions": map[string]interface{}{
			"('fuel', 'electricity')": float64(0.3),
			"('fuel', 'heat')":        float64(0.5),
		},
		"back_pressure": true,
		"conversion_factor_full_condensation": map[string]interface{}{
			"('fuel', 'electricity')": float64(0.5),
		},
		"el_efficiency_wo_dist_heat": []interface{}{float64(0.25), float64(0.45)},
	}
	c := NewCHP(genUid("CHP"), []string{"fuel"}, []string{"electricity", "heat"}, nil, attrs)

	assert.Assert(t, c.BackPressure())
	assert.Equal(t, c.Conversions()[nts.Pair{From: "fuel", To: "heat"}], nts.Float(0.5))
	assert.Equal(t, c.FullCondensation()[nts.Pair{From: "fuel", To: "electricity"}], nts.Float(0.5))
	assert.Equal(t, c.ElEfficiencyWoDistHeat().Min.Constant, nts.Float(0.25))
	assert.Assert(t, !c.ElEfficiencyWoDistHeat().Min.IsSeries())
	assert.Assert(t, c.PowerLossIndex().IsNaN())
	assert.Assert(t, c.MinCondenserLoad().IsNaN())
	assert.Assert(t, c.Validate() == nil)
}

func TestCHPReparse(t *testing.T) {
	attrs := Attributes{
		"conversions": map[string]interface{}{
			"('fuel', 'electricity')": float64(0.3),
		},
		"power_loss_index": float64(0.2),
	}
	first := NewCHP(genUid("CHP"), []string{"fuel"}, []string{"electricity"}, nil, attrs)

	second, err := CHPFromAttributes(first.Attributes())
	assert.NilError(t, err)

	diff := cmp.Diff(first.Attributes(), second.Attributes(), floatCmp)
	assert.Assert(t, diff == "", diff)
}

func TestConnectorDefaultConversions(t *testing.T) {
	c := NewConnector(genUid("Link"), "bus A", "bus B", nil)

	assert.Equal(t, c.Conversions()[nts.Pair{From: "bus A", To: "bus B"}], nts.Float(1))
	assert.Equal(t, c.Conversions()[nts.Pair{From: "bus B", To: "bus A"}], nts.Float(1))
	assert.Assert(t, len(c.Inputs()) == 2)
	assert.Assert(t, c.Validate() == nil)
}

func TestBusAttributesRoundTrip(t *testing.T) {
	b := NewBus(genUid("Powerline"), []string{"Gen.electricity"}, []string{"Load.electricity"})

	rebuilt, err := BusFromAttributes(b.Attributes())
	assert.NilError(t, err)

	diff := cmp.Diff(b.Attributes(), rebuilt.Attributes(), floatCmp)
	assert.Assert(t, diff == "", diff)
}

func TestDuplicateNaming(t *testing.T) {
	s := newDefaultedSource()

	dup := s.Duplicate("copy", "_", "1")
	assert.Equal(t, dup.Uid().Name, "copy_Gen_1")
	assert.Equal(t, s.Uid().Name, "Gen")

	// duplicated state is independent
	dupSource := dup.(*Source)
	dupSource.FlowCosts()["fuel"] = 9
	assert.Equal(t, s.FlowCosts()["fuel"], nts.Float(0))
}

func TestStorageReparse(t *testing.T) {
	attrs := Attributes{
		"initial_soc":  float64(10),
		"final_soc":    float64(50),
		"idle_changes": []interface{}{float64(0), float64(0.5)},
		"flow_efficiencies": map[string]interface{}{
			"electricity": []interface{}{float64(0.95), float64(0.9)},
		},
		"expandable": map[string]interface{}{capacityKey: true},
	}
	first := NewStorage(genUid("Battery"), "electricity", "electricity", 100, attrs)

	second, err := StorageFromAttributes(first.Attributes())
	assert.NilError(t, err)

	diff := cmp.Diff(first.Attributes(), second.Attributes(), floatCmp)
	assert.Assert(t, diff == "", diff)
}
