package generator

import (
	"reflect"
	"testing"

	"ecodesign/domain/design"
)

func TestGenerator_ExactlyThreeDistinctIDs(t *testing.T) {
	g := NewGenerator()
	c := design.Constraints{Area: 1000, Budget: 50, Climate: design.ClimateModerate, Priority: design.PriorityEnergy}

	designs := g.Generate(c)
	if len(designs) != design.ArchetypeCount {
		t.Fatalf("got %d designs, want %d", len(designs), design.ArchetypeCount)
	}

	seen := make(map[design.Archetype]bool)
	for i, d := range designs {
		if d.ID != design.Archetype(i) {
			t.Errorf("design %d has id %d, want id order", i, d.ID)
		}
		if seen[d.ID] {
			t.Errorf("duplicate archetype id %d", d.ID)
		}
		seen[d.ID] = true
		if d.Name != d.ID.Name() {
			t.Errorf("design %d name %q does not match archetype name %q", i, d.Name, d.ID.Name())
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	g := NewGenerator()
	c := design.Constraints{Area: 1200, Budget: 60, Climate: design.ClimateHot, Priority: design.PriorityWater}

	first := g.Generate(c)
	second := g.Generate(c)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated generation with identical constraints produced different designs")
	}
}

func TestGenerator_ConstraintsShapeAttributes(t *testing.T) {
	g := NewGenerator()

	base := design.Constraints{Area: 1000, Budget: 50, Climate: design.ClimateModerate, Priority: design.PriorityMaterials}

	t.Run("energy priority raises insulation", func(t *testing.T) {
		energy := base
		energy.Priority = design.PriorityEnergy
		for i := 0; i < design.ArchetypeCount; i++ {
			withEnergy := g.Generate(energy)[i].Attributes.InsulationRValue
			without := g.Generate(base)[i].Attributes.InsulationRValue
			if withEnergy <= without {
				t.Errorf("archetype %d: insulation %v (energy) <= %v (materials)", i, withEnergy, without)
			}
		}
	})

	t.Run("water priority raises recycling", func(t *testing.T) {
		water := base
		water.Priority = design.PriorityWater
		for i := 0; i < design.ArchetypeCount; i++ {
			withWater := g.Generate(water)[i].Attributes.WaterRecyclingPct
			without := g.Generate(base)[i].Attributes.WaterRecyclingPct
			if withWater <= without {
				t.Errorf("archetype %d: recycling %v (water) <= %v (materials)", i, withWater, without)
			}
		}
	})

	t.Run("hot climate sizes solar above cold", func(t *testing.T) {
		hot, cold := base, base
		hot.Climate = design.ClimateHot
		cold.Climate = design.ClimateCold
		for i := 0; i < design.ArchetypeCount; i++ {
			if g.Generate(hot)[i].Attributes.SolarCapacityKW <= g.Generate(cold)[i].Attributes.SolarCapacityKW {
				t.Errorf("archetype %d: hot-climate solar not above cold-climate solar", i)
			}
		}
	})

	t.Run("budget scales system sizing", func(t *testing.T) {
		rich, poor := base, base
		rich.Budget = 90
		poor.Budget = 10
		for i := 0; i < design.ArchetypeCount; i++ {
			if g.Generate(rich)[i].Attributes.SolarCapacityKW <= g.Generate(poor)[i].Attributes.SolarCapacityKW {
				t.Errorf("archetype %d: higher budget did not increase solar capacity", i)
			}
		}
	})
}

func TestGenerator_AttributeRanges(t *testing.T) {
	g := NewGenerator()

	for _, area := range []int{300, 1150, 2000} {
		for _, budget := range []int{0, 50, 100} {
			for _, climate := range []design.Climate{design.ClimateCold, design.ClimateModerate, design.ClimateHot} {
				c := design.Constraints{Area: area, Budget: budget, Climate: climate, Priority: design.PriorityEnergy}
				for _, d := range g.Generate(c) {
					attrs := d.Attributes
					if attrs.WaterRecyclingPct < 0 || attrs.WaterRecyclingPct > 95 {
						t.Errorf("%+v archetype %d: recycling out of range: %v", c, d.ID, attrs.WaterRecyclingPct)
					}
					if attrs.GreenMaterialsPct < 0 || attrs.GreenMaterialsPct > 95 {
						t.Errorf("%+v archetype %d: materials out of range: %v", c, d.ID, attrs.GreenMaterialsPct)
					}
					if attrs.WindowRatio < 0.15 || attrs.WindowRatio > 0.55 {
						t.Errorf("%+v archetype %d: window ratio out of range: %v", c, d.ID, attrs.WindowRatio)
					}
					if attrs.SolarCapacityKW <= 0 || attrs.InsulationRValue <= 0 || attrs.FootprintM2 <= 0 {
						t.Errorf("%+v archetype %d: non-positive sizing: %+v", c, d.ID, attrs)
					}
				}
			}
		}
	}
}
