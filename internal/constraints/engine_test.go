package constraints

import (
	"strings"
	"testing"

	"ecodesign/domain/design"
)

func validConstraints() design.Constraints {
	return design.Constraints{
		Area:     1000,
		Budget:   50,
		Climate:  design.ClimateModerate,
		Priority: design.PriorityEnergy,
	}
}

func TestEngine_Validate(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name       string
		mutate     func(*design.Constraints)
		wantValid  bool
		wantErrors int
		wantField  string
	}{
		{
			name:      "valid constraints",
			mutate:    func(c *design.Constraints) {},
			wantValid: true,
		},
		{
			name:       "area below minimum",
			mutate:     func(c *design.Constraints) { c.Area = 50 },
			wantValid:  false,
			wantErrors: 1,
			wantField:  "area",
		},
		{
			name:       "area above maximum",
			mutate:     func(c *design.Constraints) { c.Area = 5000 },
			wantValid:  false,
			wantErrors: 1,
			wantField:  "area",
		},
		{
			name:       "budget above maximum",
			mutate:     func(c *design.Constraints) { c.Budget = 120 },
			wantValid:  false,
			wantErrors: 1,
			wantField:  "budget",
		},
		{
			name:       "unknown climate",
			mutate:     func(c *design.Constraints) { c.Climate = "tropical" },
			wantValid:  false,
			wantErrors: 1,
			wantField:  "climate",
		},
		{
			name:       "missing climate",
			mutate:     func(c *design.Constraints) { c.Climate = "" },
			wantValid:  false,
			wantErrors: 1,
			wantField:  "climate",
		},
		{
			name:       "unknown priority",
			mutate:     func(c *design.Constraints) { c.Priority = "cost" },
			wantValid:  false,
			wantErrors: 1,
			wantField:  "priority",
		},
		{
			name: "multiple problems reported together",
			mutate: func(c *design.Constraints) {
				c.Area = 10
				c.Budget = -5
				c.Climate = "arctic"
			},
			wantValid:  false,
			wantErrors: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConstraints()
			tt.mutate(&c)

			result := engine.Validate(c)
			if result.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if tt.wantErrors > 0 && len(result.Errors) != tt.wantErrors {
				t.Errorf("got %d errors, want %d: %v", len(result.Errors), tt.wantErrors, result.Errors)
			}
			if tt.wantField != "" {
				found := false
				for _, msg := range result.Errors {
					if strings.Contains(msg, tt.wantField) {
						found = true
					}
				}
				if !found {
					t.Errorf("no error names field %q: %v", tt.wantField, result.Errors)
				}
			}
		})
	}
}

func TestEngine_Process(t *testing.T) {
	engine := NewEngine()

	c := design.Constraints{Area: 1150, Budget: 20, Climate: design.ClimateHot, Priority: design.PriorityWater}
	p := engine.Process(c)

	if p.Constraints != c {
		t.Errorf("processed form mutated the original constraints: %+v", p.Constraints)
	}
	if p.Tier != design.TierLow {
		t.Errorf("Tier = %s, want %s", p.Tier, design.TierLow)
	}
	if p.Climate != design.ProfileFor(design.ClimateHot) {
		t.Errorf("unexpected climate profile: %+v", p.Climate)
	}
	if p.AreaRatio != 0.5 {
		t.Errorf("AreaRatio = %v, want 0.5", p.AreaRatio)
	}
	if p.BudgetRatio != 0.2 {
		t.Errorf("BudgetRatio = %v, want 0.2", p.BudgetRatio)
	}
}

func TestEngine_Process_BudgetTiers(t *testing.T) {
	engine := NewEngine()
	tiers := []struct {
		budget int
		want   design.BudgetTier
	}{
		{0, design.TierLow},
		{34, design.TierLow},
		{35, design.TierStandard},
		{69, design.TierStandard},
		{70, design.TierPremium},
		{100, design.TierPremium},
	}
	for _, tt := range tiers {
		c := validConstraints()
		c.Budget = tt.budget
		if got := engine.Process(c).Tier; got != tt.want {
			t.Errorf("budget %d: tier = %s, want %s", tt.budget, got, tt.want)
		}
	}
}

func TestEngine_Feasibility_Bounds(t *testing.T) {
	engine := NewEngine()

	for _, area := range []int{300, 1000, 2000} {
		for _, budget := range []int{0, 35, 70, 100} {
			for _, climate := range []design.Climate{design.ClimateCold, design.ClimateModerate, design.ClimateHot} {
				for _, priority := range []design.Priority{design.PriorityEnergy, design.PriorityWater, design.PriorityMaterials} {
					c := design.Constraints{Area: area, Budget: budget, Climate: climate, Priority: priority}
					score := engine.Feasibility(engine.Process(c))
					if score < 0 || score > 100 {
						t.Errorf("feasibility out of bounds for %+v: %v", c, score)
					}
				}
			}
		}
	}
}

func TestEngine_Feasibility_IncreasesWithBudget(t *testing.T) {
	engine := NewEngine()

	low := validConstraints()
	low.Area = 1500
	low.Budget = 20

	high := low
	high.Budget = 80

	scoreLow := engine.Feasibility(engine.Process(low))
	scoreHigh := engine.Feasibility(engine.Process(high))
	if scoreHigh <= scoreLow {
		t.Errorf("feasibility did not increase with budget: budget 20 -> %v, budget 80 -> %v", scoreLow, scoreHigh)
	}
}

func TestEngine_Feasibility_ClimateSynergy(t *testing.T) {
	engine := NewEngine()

	hotEnergy := design.Constraints{Area: 1000, Budget: 50, Climate: design.ClimateHot, Priority: design.PriorityEnergy}
	hotMaterials := design.Constraints{Area: 1000, Budget: 50, Climate: design.ClimateHot, Priority: design.PriorityMaterials}

	if engine.Feasibility(engine.Process(hotEnergy)) <= engine.Feasibility(engine.Process(hotMaterials)) {
		t.Error("hot climate with energy priority should score above hot climate with materials priority")
	}
}

func TestEngine_Feasibility_Deterministic(t *testing.T) {
	engine := NewEngine()
	p := engine.Process(validConstraints())
	if engine.Feasibility(p) != engine.Feasibility(p) {
		t.Error("feasibility is not stable across calls")
	}
}
