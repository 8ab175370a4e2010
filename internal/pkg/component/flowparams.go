package component

import "github.com/esdl/esn_core/internal/pkg/nts"

// flowParams is the per-interface parameter block shared by sources, sinks,
// transformers, CHPs and storages. Embedding promotes its getters onto the
// concrete component types.
type flowParams struct {
	flowRates       map[string]nts.MinMax
	flowCosts       map[string]nts.Float
	flowEmissions   map[string]nts.Float
	flowGradients   map[string]nts.PositiveNegative
	gradientCosts   map[string]nts.PositiveNegative
	timeseries      map[string]nts.MinMaxSeries
	expandable      map[string]bool
	expansionCosts  map[string]nts.Float
	expansionLimits map[string]nts.MinMax
}

// parse fills the block from the attribute bag. Flow mappings default over
// flowIfaces; expansion mappings default over expansionIfaces, which a
// storage extends by its capacity key.
func (p *flowParams) parse(bag Attributes, flowIfaces, expansionIfaces []string) {
	p.flowRates = parseMinMaxMap(bag, "flow_rates", flowIfaces, defaultFlowRates)
	p.flowCosts = parseFloatMap(bag, "flow_costs", flowIfaces, defaultFlowCosts)
	p.flowEmissions = parseFloatMap(bag, "flow_emissions", flowIfaces, defaultFlowEmissions)
	p.flowGradients = parsePosNegMap(bag, "flow_gradients", flowIfaces, defaultGradients)
	p.gradientCosts = parsePosNegMap(bag, "gradient_costs", flowIfaces, defaultGradientCosts)
	p.timeseries = parseSeriesMap(bag, "timeseries")
	p.expandable = parseBoolMap(bag, "expandable", expansionIfaces, false)
	p.expansionCosts = parseFloatMap(bag, "expansion_costs", expansionIfaces, defaultExpansionCost)
	p.expansionLimits = parseMinMaxMap(bag, "expansion_limits", expansionIfaces, defaultExpansion)
}

// FlowRates returns the minimum/maximum flow rate per interface.
func (p *flowParams) FlowRates() map[string]nts.MinMax { return p.flowRates }

// FlowCosts returns the specific flow costs per interface.
func (p *flowParams) FlowCosts() map[string]nts.Float { return p.flowCosts }

// FlowEmissions returns the specific flow emissions per interface.
func (p *flowParams) FlowEmissions() map[string]nts.Float { return p.flowEmissions }

// FlowGradients returns the allowed flow change between timesteps.
func (p *flowParams) FlowGradients() map[string]nts.PositiveNegative { return p.flowGradients }

// GradientCosts returns the costs attached to flow changes.
func (p *flowParams) GradientCosts() map[string]nts.PositiveNegative { return p.gradientCosts }

// Timeseries returns the optional per-interface flow bound series, or nil.
func (p *flowParams) Timeseries() map[string]nts.MinMaxSeries { return p.timeseries }

// Expandable reports which interfaces may be expanded.
func (p *flowParams) Expandable() map[string]bool { return p.expandable }

// ExpansionCosts returns the specific expansion costs per interface.
func (p *flowParams) ExpansionCosts() map[string]nts.Float { return p.expansionCosts }

// ExpansionLimits returns the expansion bounds per interface.
func (p *flowParams) ExpansionLimits() map[string]nts.MinMax { return p.expansionLimits }

func (p *flowParams) attributes(into Attributes) {
	into["flow_rates"] = p.flowRates
	into["flow_costs"] = p.flowCosts
	into["flow_emissions"] = p.flowEmissions
	into["flow_gradients"] = p.flowGradients
	into["gradient_costs"] = p.gradientCosts
	if p.timeseries != nil {
		into["timeseries"] = p.timeseries
	} else {
		into["timeseries"] = nil
	}
	into["expandable"] = p.expandable
	into["expansion_costs"] = p.expansionCosts
	into["expansion_limits"] = p.expansionLimits
}

// validate flags mapping keys outside the declared interface sets.
func (p *flowParams) validate(component string, flowIfaces, expansionIfaces []string) error {
	flows := memberSet(flowIfaces)
	expansions := memberSet(expansionIfaces)

	checks := []struct {
		parameter string
		keys      []string
		members   map[string]bool
	}{
		{"flow_rates", minMaxKeys(p.flowRates), flows},
		{"flow_costs", floatKeys(p.flowCosts), flows},
		{"flow_emissions", floatKeys(p.flowEmissions), flows},
		{"flow_gradients", posNegKeys(p.flowGradients), flows},
		{"gradient_costs", posNegKeys(p.gradientCosts), flows},
		{"timeseries", seriesKeys(p.timeseries), flows},
		{"expandable", boolKeys(p.expandable), expansions},
		{"expansion_costs", floatKeys(p.expansionCosts), expansions},
		{"expansion_limits", minMaxKeys(p.expansionLimits), expansions},
	}
	for _, c := range checks {
		for _, k := range c.keys {
			if !c.members[k] {
				return &SchemaError{Component: component, Parameter: c.parameter, Interface: k}
			}
		}
	}
	return nil
}

func (p *flowParams) clone() flowParams {
	out := flowParams{
		flowRates:       make(map[string]nts.MinMax, len(p.flowRates)),
		flowCosts:       make(map[string]nts.Float, len(p.flowCosts)),
		flowEmissions:   make(map[string]nts.Float, len(p.flowEmissions)),
		flowGradients:   make(map[string]nts.PositiveNegative, len(p.flowGradients)),
		gradientCosts:   make(map[string]nts.PositiveNegative, len(p.gradientCosts)),
		expandable:      make(map[string]bool, len(p.expandable)),
		expansionCosts:  make(map[string]nts.Float, len(p.expansionCosts)),
		expansionLimits: make(map[string]nts.MinMax, len(p.expansionLimits)),
	}
	for k, v := range p.flowRates {
		out.flowRates[k] = v
	}
	for k, v := range p.flowCosts {
		out.flowCosts[k] = v
	}
	for k, v := range p.flowEmissions {
		out.flowEmissions[k] = v
	}
	for k, v := range p.flowGradients {
		out.flowGradients[k] = v
	}
	for k, v := range p.gradientCosts {
		out.gradientCosts[k] = v
	}
	for k, v := range p.expandable {
		out.expandable[k] = v
	}
	for k, v := range p.expansionCosts {
		out.expansionCosts[k] = v
	}
	for k, v := range p.expansionLimits {
		out.expansionLimits[k] = v
	}
	if p.timeseries != nil {
		out.timeseries = make(map[string]nts.MinMaxSeries, len(p.timeseries))
		for k, v := range p.timeseries {
			steps := func(b nts.Bound) nts.Bound {
				if !b.IsSeries() {
					return b
				}
				c := make([]nts.Float, len(b.Steps))
				copy(c, b.Steps)
				return nts.Bound{Steps: c}
			}
			out.timeseries[k] = nts.MinMaxSeries{Min: steps(v.Min), Max: steps(v.Max)}
		}
	}
	return out
}

// commitmentParams is the unit commitment block shared by every flow
// carrying component type.
type commitmentParams struct {
	milp                  bool
	initialStatus         bool
	statusInertia         nts.OnOff
	statusChangingCosts   nts.OnOff
	numberOfStatusChanges nts.OnOff
	costsForBeingActive   nts.Float
}

func (p *commitmentParams) parse(bag Attributes) {
	p.milp = parseBool(bag, "milp", false)
	p.initialStatus = parseBool(bag, "initial_status", true)
	p.statusInertia = parseOnOff(bag, "status_inertia", defaultInertia)
	p.statusChangingCosts = parseOnOff(bag, "status_changing_costs", defaultStatusCosts)
	p.numberOfStatusChanges = parseOnOff(bag, "number_of_status_changes", defaultStatusChanges)
	p.costsForBeingActive = parseSingular(bag, "costs_for_being_active", defaultActiveCosts)
}

// Milp reports whether the component demands mixed integer constraints.
func (p *commitmentParams) Milp() bool { return p.milp }

// InitialStatus reports whether the component starts committed.
func (p *commitmentParams) InitialStatus() bool { return p.initialStatus }

// StatusInertia returns minimum uptime and downtime.
func (p *commitmentParams) StatusInertia() nts.OnOff { return p.statusInertia }

// StatusChangingCosts returns startup and shutdown costs.
func (p *commitmentParams) StatusChangingCosts() nts.OnOff { return p.statusChangingCosts }

// NumberOfStatusChanges returns the maximum startups and shutdowns.
func (p *commitmentParams) NumberOfStatusChanges() nts.OnOff { return p.numberOfStatusChanges }

// CostsForBeingActive returns the per-timestep commitment costs.
func (p *commitmentParams) CostsForBeingActive() nts.Float { return p.costsForBeingActive }

func (p *commitmentParams) attributes(into Attributes) {
	into["milp"] = p.milp
	into["initial_status"] = p.initialStatus
	into["status_inertia"] = p.statusInertia
	into["status_changing_costs"] = p.statusChangingCosts
	into["number_of_status_changes"] = p.numberOfStatusChanges
	into["costs_for_being_active"] = p.costsForBeingActive
}

func memberSet(ifaces []string) map[string]bool {
	set := make(map[string]bool, len(ifaces))
	for _, i := range ifaces {
		set[i] = true
	}
	return set
}

func minMaxKeys(m map[string]nts.MinMax) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func floatKeys(m map[string]nts.Float) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func inOutKeys(m map[string]nts.InOut) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func posNegKeys(m map[string]nts.PositiveNegative) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func boolKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func seriesKeys(m map[string]nts.MinMaxSeries) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
