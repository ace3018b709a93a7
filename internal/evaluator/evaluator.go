// Package evaluator computes sustainability metrics for a design under its
// generating constraints and ranks evaluated design sets with fixed,
// hand-specified rules.
package evaluator

import (
	"math"
	"sort"

	"ecodesign/domain/design"
	"ecodesign/internal/errors"
)

// Evaluator computes metrics and rule-based rankings. Stateless; every
// metric is a pure function of (design, constraints) with no cross-design
// normalization (that belongs to ranking).
type Evaluator struct{}

// NewEvaluator creates a sustainability evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate computes the three sustainability metrics, each bounded [0, 100].
// CarbonFootprint is an impact measure: lower is better.
func (e *Evaluator) Evaluate(d design.Design, c design.Constraints) design.Metrics {
	climate := design.ProfileFor(c.Climate)
	attrs := d.Attributes

	// kW of generation per 1000 m2 of floor area, so metric formulas are
	// area-neutral.
	solarDensity := attrs.SolarCapacityKW / float64(c.Area) * 1000

	energy := 30 + attrs.InsulationRValue*0.8 + solarDensity*0.9
	// Combined heating+cooling demand above the moderate baseline drags
	// achievable efficiency down.
	energy -= (climate.Heating + climate.Cooling - 2) * 8
	if c.Priority == design.PriorityEnergy {
		energy += 4
	}

	water := 20 + attrs.WaterRecyclingPct*0.7
	// Recycling is worth more where water is scarce.
	water += (climate.Water - 1) * 24
	if c.Priority == design.PriorityWater {
		water += 4
	}

	areaRatio := float64(c.Area-design.AreaMin) / float64(design.AreaMax-design.AreaMin)
	carbon := 74 - attrs.GreenMaterialsPct*0.45 - solarDensity*0.35
	carbon += areaRatio * 15
	// Cheap builds lean on carbon-heavy conventional structure.
	carbon += float64(design.BudgetMax-c.Budget) * 0.08
	if c.Priority == design.PriorityMaterials {
		carbon -= 4
	}

	return design.Metrics{
		EnergyEfficiency: round2(clampScore(energy)),
		WaterEfficiency:  round2(clampScore(water)),
		CarbonFootprint:  round2(clampScore(carbon)),
	}
}

// Ranked is one row of a rule-based ranking.
type Ranked struct {
	Design    design.Design `json:"design"`
	Composite float64       `json:"composite_score"`
	Rank      int           `json:"rank"`
}

// RankDesigns produces a total order over a set of already-evaluated
// designs. The composite averages the three metrics with carbon inverted.
// Tie-break is fixed and stable: higher composite, then lower carbon, then
// lower id, so the output order is invariant to input permutation.
func (e *Evaluator) RankDesigns(designs []design.Design) ([]Ranked, error) {
	if len(designs) == 0 {
		return nil, errors.InvalidInput("no designs to rank")
	}

	ranked := make([]Ranked, 0, len(designs))
	for _, d := range designs {
		if d.Metrics == nil {
			return nil, errors.InvalidInput("design has no metrics; evaluate before ranking")
		}
		composite := (d.Metrics.EnergyEfficiency + d.Metrics.WaterEfficiency + (100 - d.Metrics.CarbonFootprint)) / 3
		ranked = append(ranked, Ranked{Design: d, Composite: round2(composite)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Composite != b.Composite {
			return a.Composite > b.Composite
		}
		if a.Design.Metrics.CarbonFootprint != b.Design.Metrics.CarbonFootprint {
			return a.Design.Metrics.CarbonFootprint < b.Design.Metrics.CarbonFootprint
		}
		return a.Design.ID < b.Design.ID
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
