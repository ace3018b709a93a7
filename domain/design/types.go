// Package design holds the pure data model of the decision-support pipeline:
// constraint sets, design alternatives, sustainability metrics and the
// training sample schemas shared by the real and synthetic data sources.
// Nothing here performs I/O or holds mutable state.
package design

// Climate is the climate zone of a constraint set.
type Climate string

const (
	ClimateCold     Climate = "cold"
	ClimateModerate Climate = "moderate"
	ClimateHot      Climate = "hot"
)

// Valid reports whether the climate is one of the supported zones.
func (c Climate) Valid() bool {
	switch c {
	case ClimateCold, ClimateModerate, ClimateHot:
		return true
	}
	return false
}

// Priority is the optimization priority of a constraint set.
type Priority string

const (
	PriorityEnergy    Priority = "energy"
	PriorityWater     Priority = "water"
	PriorityMaterials Priority = "materials"
)

// Valid reports whether the priority is one of the supported values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityEnergy, PriorityWater, PriorityMaterials:
		return true
	}
	return false
}

// Constraint field domains.
const (
	AreaMin   = 300
	AreaMax   = 2000
	BudgetMin = 0
	BudgetMax = 100
)

// Constraints is the four-field input describing a design problem.
// Immutable once validated; every downstream component only ever receives
// constraints that passed ConstraintEngine validation.
type Constraints struct {
	Area     int      `json:"area" db:"area"`
	Budget   int      `json:"budget" db:"budget"`
	Climate  Climate  `json:"climate" db:"climate"`
	Priority Priority `json:"priority" db:"priority"`
}

// ValidationResult reports constraint validation. Errors carries one message
// per offending field so a client sees every problem at once.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ClimateProfile holds the demand coefficients resolved for a climate zone.
// Values are multipliers relative to the moderate zone (1.0 everywhere).
type ClimateProfile struct {
	Heating float64 `json:"heating"`
	Cooling float64 `json:"cooling"`
	Water   float64 `json:"water"`
}

var climateProfiles = map[Climate]ClimateProfile{
	ClimateCold:     {Heating: 1.30, Cooling: 0.70, Water: 0.90},
	ClimateModerate: {Heating: 1.00, Cooling: 1.00, Water: 1.00},
	ClimateHot:      {Heating: 0.70, Cooling: 1.35, Water: 1.25},
}

// ProfileFor resolves the demand coefficients for a climate zone. Unknown
// zones fall back to the moderate profile; validation upstream makes that
// path unreachable for pipeline traffic.
func ProfileFor(c Climate) ClimateProfile {
	if p, ok := climateProfiles[c]; ok {
		return p
	}
	return climateProfiles[ClimateModerate]
}

// BudgetTier classifies the budget fraction of a constraint set.
type BudgetTier string

const (
	TierLow      BudgetTier = "low"
	TierStandard BudgetTier = "standard"
	TierPremium  BudgetTier = "premium"
)

// TierFor maps a budget fraction to its tier.
func TierFor(budget int) BudgetTier {
	switch {
	case budget < 35:
		return TierLow
	case budget < 70:
		return TierStandard
	default:
		return TierPremium
	}
}

// Processed is the normalized form of a validated constraint set. It derives
// additional fields but never mutates the original constraints.
type Processed struct {
	Constraints Constraints    `json:"constraints"`
	Tier        BudgetTier     `json:"budget_tier"`
	Climate     ClimateProfile `json:"climate_profile"`
	AreaRatio   float64        `json:"area_ratio"`   // position of area within [AreaMin, AreaMax]
	BudgetRatio float64        `json:"budget_ratio"` // budget as a fraction of BudgetMax
}

// Metrics are the three sustainability scores computed per design, each
// normalized to [0, 100]. CarbonFootprint is an impact score: lower is better.
type Metrics struct {
	EnergyEfficiency float64 `json:"energyEfficiency"`
	WaterEfficiency  float64 `json:"waterEfficiency"`
	CarbonFootprint  float64 `json:"carbonFootprint"`
}

// Attributes are the physical characteristics of a generated alternative.
type Attributes struct {
	SolarCapacityKW   float64 `json:"solar_capacity_kw"`
	InsulationRValue  float64 `json:"insulation_r_value"`
	WaterRecyclingPct float64 `json:"water_recycling_pct"`
	GreenMaterialsPct float64 `json:"green_materials_pct"`
	WindowRatio       float64 `json:"window_ratio"`
	FootprintM2       float64 `json:"footprint_m2"`
}

// Design is one identified alternative. Metrics is nil until the design has
// been evaluated; MLPredictedCost is nil whenever the cost model declined to
// produce a figure (never an error condition).
type Design struct {
	ID              Archetype  `json:"id"`
	Name            string     `json:"name"`
	Strategy        string     `json:"strategy"`
	Attributes      Attributes `json:"attributes"`
	Metrics         *Metrics   `json:"metrics,omitempty"`
	MLPredictedCost *int       `json:"ml_predicted_cost,omitempty"`
}

// RankingEntry is one row of an ML ranking.
type RankingEntry struct {
	ID      Archetype `json:"id"`
	MLScore float64   `json:"ml_score"`
}

// Recommendation is the outcome of a historical-similarity lookup.
// RecommendedDesign is nil when no sufficiently similar history exists;
// that is a degraded-but-valid response, not a failure.
type Recommendation struct {
	RecommendedDesign *Archetype `json:"recommended_design"`
	Confidence        float64    `json:"confidence"`
}
