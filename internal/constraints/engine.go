// Package constraints validates and normalizes raw design constraints and
// scores how realistic a constraint combination is before any design exists.
package constraints

import (
	"fmt"
	"math"

	"ecodesign/domain/design"
)

// Engine is the constraint validation and normalization engine. It is
// stateless; every method is a pure function of its input.
type Engine struct{}

// NewEngine creates a constraint engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Validate checks every field of the constraint set against its domain and
// collects one error per offending field. It never stops at the first
// problem, so a client sees all of them at once.
func (e *Engine) Validate(c design.Constraints) design.ValidationResult {
	var errs []string

	if c.Area < design.AreaMin || c.Area > design.AreaMax {
		errs = append(errs, fmt.Sprintf("area must be between %d and %d square meters", design.AreaMin, design.AreaMax))
	}
	if c.Budget < design.BudgetMin || c.Budget > design.BudgetMax {
		errs = append(errs, fmt.Sprintf("budget must be between %d and %d", design.BudgetMin, design.BudgetMax))
	}
	if c.Climate == "" {
		errs = append(errs, "climate is required")
	} else if !c.Climate.Valid() {
		errs = append(errs, fmt.Sprintf("climate must be one of %s, %s, %s", design.ClimateCold, design.ClimateModerate, design.ClimateHot))
	}
	if c.Priority == "" {
		errs = append(errs, "priority is required")
	} else if !c.Priority.Valid() {
		errs = append(errs, fmt.Sprintf("priority must be one of %s, %s, %s", design.PriorityEnergy, design.PriorityWater, design.PriorityMaterials))
	}

	return design.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// Process derives the normalized form of an already-validated constraint set:
// resolved climate coefficients, budget tier and position ratios. Pure and
// side-effect free; the original constraints are embedded, never mutated.
func (e *Engine) Process(c design.Constraints) design.Processed {
	return design.Processed{
		Constraints: c,
		Tier:        design.TierFor(c.Budget),
		Climate:     design.ProfileFor(c.Climate),
		AreaRatio:   float64(c.Area-design.AreaMin) / float64(design.AreaMax-design.AreaMin),
		BudgetRatio: float64(c.Budget) / float64(design.BudgetMax),
	}
}

// Feasibility scores how realistic the constraint combination is on a
// [0, 100] scale, independent of any design. The score is strictly
// increasing in budget: a larger area under a shrinking budget applies
// pressure, priorities that suit the climate relieve it.
func (e *Engine) Feasibility(p design.Processed) float64 {
	c := p.Constraints

	score := 40.0 + 0.45*float64(c.Budget)

	// Ambition pressure: large floor area with little budget to cover it.
	score -= p.AreaRatio * float64(design.BudgetMax-c.Budget) * 0.25

	// Climate/priority synergies.
	switch {
	case c.Climate == design.ClimateHot && c.Priority == design.PriorityEnergy:
		score += 8 // cooling-dominated demand rewards energy focus
	case c.Climate == design.ClimateCold && c.Priority == design.PriorityEnergy:
		score += 6
	case c.Climate == design.ClimateHot && c.Priority == design.PriorityWater:
		score += 5
	case c.Climate == design.ClimateModerate:
		score += 2
	}
	if c.Priority == design.PriorityMaterials && p.Tier == design.TierLow {
		score += 4 // material reuse is the cheapest lever
	}

	return math.Max(0, math.Min(100, score))
}
