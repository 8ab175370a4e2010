package component

import "github.com/esdl/esn_core/internal/pkg/nts"

// Fallback defaults shared by every component schema. Per-interface default
// mappings are materialized from these values at parse time.
var (
	defaultAmounts       = nts.MinMax{Min: 0, Max: nts.PosInf}
	defaultFlowRates     = nts.MinMax{Min: 0, Max: nts.PosInf}
	defaultGradients     = nts.PositiveNegative{Positive: nts.PosInf, Negative: nts.PosInf}
	defaultGradientCosts = nts.PositiveNegative{Positive: 0, Negative: 0}
	defaultIdleChanges   = nts.PositiveNegative{Positive: 0, Negative: 0}
	defaultEfficiencies  = nts.InOut{Inflow: 1, Outflow: 1}
	defaultInertia       = nts.OnOff{On: 0, Off: 0}
	defaultStatusChanges = nts.OnOff{On: nts.PosInf, Off: nts.PosInf}
	defaultStatusCosts   = nts.OnOff{On: 0, Off: 0}
	defaultExpansion     = nts.MinMax{Min: 0, Max: nts.PosInf}
)

const (
	defaultFlowCosts     = nts.Float(0)
	defaultFlowEmissions = nts.Float(0)
	defaultExpansionCost = nts.Float(0)
	defaultActiveCosts   = nts.Float(0)
	defaultInitialSoc    = nts.Float(0)
	defaultEfficiency    = nts.Float(1)
)

// capacityKey extends a storage's expansion mappings beyond its flow
// interfaces.
const capacityKey = "capacity"
