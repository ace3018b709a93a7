package ml

import (
	"math"
	"sort"

	"ecodesign/domain/design"
	"ecodesign/internal/errors"
)

// DesignRanker scores designs with preference weights fitted from labeled
// preference data, blended with the current request's priority. Immutable
// after Train.
type DesignRanker struct {
	// weights[priority][archetype] is the share of historical preferences
	// for that archetype under that priority. Rows sum to 1.
	weights [3][design.ArchetypeCount]float64
	trained bool
}

// NewDesignRanker creates an untrained preference ranker.
func NewDesignRanker() *DesignRanker {
	return &DesignRanker{}
}

// Ready reports whether the model has been trained.
func (r *DesignRanker) Ready() bool {
	return r.trained
}

// Train fits preference shares per (priority, archetype) from the labeled
// samples. Priorities never observed in training fall back to a uniform row.
func (r *DesignRanker) Train(samples []design.PreferenceSample) error {
	if len(samples) == 0 {
		return errors.DegenerateInput("no preference samples to fit ranker")
	}

	var counts [3][design.ArchetypeCount]float64
	for _, s := range samples {
		pIdx, ok := encodePriority(s.Constraints.Priority)
		if !ok || !s.Preferred.Valid() {
			continue
		}
		counts[int(pIdx)][s.Preferred]++
	}

	for p := range counts {
		total := 0.0
		for _, n := range counts[p] {
			total += n
		}
		for a := range counts[p] {
			if total > 0 {
				r.weights[p][a] = counts[p][a] / total
			} else {
				r.weights[p][a] = 1.0 / design.ArchetypeCount
			}
		}
	}

	r.trained = true
	return nil
}

// Scored pairs a design with its preference score.
type Scored struct {
	Design design.Design
	Score  float64
}

// RankDesigns scores each design and returns them in descending score order.
// The score blends the fitted preference share with the metric the request's
// priority cares about, so an energy priority amplifies the energy component.
// Stable under re-invocation: exact score ties break on lower id.
func (r *DesignRanker) RankDesigns(designs []design.Design, c design.Constraints) []Scored {
	scored := make([]Scored, 0, len(designs))
	for _, d := range designs {
		scored = append(scored, Scored{Design: d, Score: r.score(d, c)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Design.ID < scored[j].Design.ID
	})
	return scored
}

func (r *DesignRanker) score(d design.Design, c design.Constraints) float64 {
	weight := 1.0 / design.ArchetypeCount
	if pIdx, ok := encodePriority(c.Priority); ok && d.ID.Valid() {
		weight = r.weights[int(pIdx)][d.ID]
	}

	// 60% learned preference, 40% the metric aligned with the priority.
	score := weight*100*0.6 + alignedMetric(d, c.Priority)*0.4
	return math.Round(score*100) / 100
}

// alignedMetric picks the metric the priority optimizes for, on a 0-100
// scale where higher is better. Unevaluated designs contribute a neutral 50.
func alignedMetric(d design.Design, p design.Priority) float64 {
	if d.Metrics == nil {
		return 50
	}
	switch p {
	case design.PriorityEnergy:
		return d.Metrics.EnergyEfficiency
	case design.PriorityWater:
		return d.Metrics.WaterEfficiency
	case design.PriorityMaterials:
		return 100 - d.Metrics.CarbonFootprint
	}
	return 50
}
