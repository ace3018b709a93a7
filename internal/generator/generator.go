// Package generator synthesizes the three archetype design alternatives for
// a validated constraint set. Generation is a pure function of constraints:
// identical input always yields identical alternatives.
package generator

import (
	"math"

	"ecodesign/domain/design"
)

// archetypeProfile is the fixed parameterization of one design strategy.
// Multipliers are relative to a neutral baseline; each archetype pushes a
// different lever hard enough that metric rankings genuinely shift with the
// input constraints rather than differing cosmetically.
type archetypeProfile struct {
	strategy   string
	solar      float64
	insulation float64
	recycling  float64
	materials  float64
	window     float64
	footprint  float64
}

var profiles = [design.ArchetypeCount]archetypeProfile{
	design.ArchetypeEcoEfficient: {
		strategy:   "passive efficiency first: envelope, orientation and demand reduction",
		solar:      1.00,
		insulation: 1.10,
		recycling:  0.80,
		materials:  0.75,
		window:     0.30,
		footprint:  1.00,
	},
	design.ArchetypeCarbonOptimized: {
		strategy:   "embodied-carbon reduction: low-carbon structure and material reuse",
		solar:      1.25,
		insulation: 1.00,
		recycling:  0.70,
		materials:  1.30,
		window:     0.26,
		footprint:  0.92,
	},
	design.ArchetypeRegenerative: {
		strategy:   "net-positive systems: on-site generation, water loops, living materials",
		solar:      1.60,
		insulation: 1.20,
		recycling:  1.30,
		materials:  1.10,
		window:     0.34,
		footprint:  0.88,
	},
}

// Generator synthesizes design alternatives. Stateless.
type Generator struct{}

// NewGenerator creates a design generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces exactly one design per archetype, in id order. The
// caller is responsible for having validated the constraints first;
// generation itself never fails for validated input.
func (g *Generator) Generate(c design.Constraints) []design.Design {
	designs := make([]design.Design, 0, design.ArchetypeCount)
	for _, a := range design.Archetypes() {
		designs = append(designs, g.synthesize(a, c))
	}
	return designs
}

func (g *Generator) synthesize(a design.Archetype, c design.Constraints) design.Design {
	p := profiles[a]
	climate := design.ProfileFor(c.Climate)

	// Budget scales every active system between 60% and 100% of its
	// archetype target.
	budgetFactor := 0.6 + 0.4*float64(c.Budget)/float64(design.BudgetMax)

	// Solar sizing follows the cooling coefficient: sunnier zones carry
	// a larger array per square meter.
	solar := float64(c.Area) * 0.015 * p.solar * budgetFactor * climate.Cooling

	insulation := (20 + 18*budgetFactor) * p.insulation * climate.Heating
	if c.Priority == design.PriorityEnergy {
		insulation += 4
	}

	recycling := 28 + 30*p.recycling*budgetFactor*climate.Water
	if c.Priority == design.PriorityWater {
		recycling += 12
	}

	materials := 30 + 40*p.materials*budgetFactor
	if c.Priority == design.PriorityMaterials {
		materials += 10
	}

	window := p.window * (0.5 + 0.5*climate.Cooling)

	return design.Design{
		ID:       a,
		Name:     a.Name(),
		Strategy: p.strategy,
		Attributes: design.Attributes{
			SolarCapacityKW:   round2(solar),
			InsulationRValue:  round2(insulation),
			WaterRecyclingPct: round2(clampPct(recycling)),
			GreenMaterialsPct: round2(clampPct(materials)),
			WindowRatio:       round2(clamp(window, 0.15, 0.55)),
			FootprintM2:       round2(float64(c.Area) * p.footprint),
		},
	}
}

func clampPct(v float64) float64 {
	return clamp(v, 0, 95)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
