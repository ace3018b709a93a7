package ml

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"ecodesign/domain/design"
)

// similarityFloor is the minimum similarity for a historical project to
// count as a neighbour. Below it, recommendations degrade to "no answer"
// rather than guessing from unrelated history.
const similarityFloor = 0.45

// DesignRecommender recommends an archetype by nearest-neighbour lookup over
// past projects' constraints. History is ingested once at startup and never
// mutated by serving traffic.
type DesignRecommender struct {
	projects []design.HistoricalProject
}

// NewDesignRecommender creates a recommender with no history.
func NewDesignRecommender() *DesignRecommender {
	return &DesignRecommender{}
}

// LearnFromHistory ingests the historical project records. Called once at
// startup, before any serving traffic.
func (r *DesignRecommender) LearnFromHistory(projects []design.HistoricalProject) {
	r.projects = projects
}

// HistorySize reports how many historical projects the model holds.
func (r *DesignRecommender) HistorySize() int {
	return len(r.projects)
}

type neighbour struct {
	chosen     design.Archetype
	similarity float64
}

// RecommendDesign finds the topN most similar historical projects and
// returns the most common archetype among them, with confidence proportional
// to neighbour agreement and closeness. With no history, or no neighbour
// above the similarity floor, it returns a nil archetype and zero confidence:
// a degraded-but-valid response, not a failure.
func (r *DesignRecommender) RecommendDesign(c design.Constraints, topN int) design.Recommendation {
	if topN < 1 {
		topN = 1
	} else if topN > 5 {
		topN = 5
	}

	neighbours := make([]neighbour, 0, len(r.projects))
	for _, p := range r.projects {
		sim, ok := similarity(c, p.Constraints)
		if !ok || sim < similarityFloor || !p.Chosen.Valid() {
			continue
		}
		neighbours = append(neighbours, neighbour{chosen: p.Chosen, similarity: sim})
	}
	if len(neighbours) == 0 {
		return design.Recommendation{RecommendedDesign: nil, Confidence: 0}
	}

	sort.SliceStable(neighbours, func(i, j int) bool {
		return neighbours[i].similarity > neighbours[j].similarity
	})
	if len(neighbours) > topN {
		neighbours = neighbours[:topN]
	}

	var votes [design.ArchetypeCount]int
	sims := make([]float64, len(neighbours))
	for i, n := range neighbours {
		votes[n.chosen]++
		sims[i] = n.similarity
	}

	// Majority vote; vote ties break on lower id to stay deterministic.
	best := design.ArchetypeEcoEfficient
	for _, a := range design.Archetypes() {
		if votes[a] > votes[best] {
			best = a
		}
	}

	agreement := float64(votes[best]) / float64(len(neighbours))
	meanSim, err := stats.Mean(sims)
	if err != nil {
		meanSim = 0
	}

	recommended := best
	return design.Recommendation{
		RecommendedDesign: &recommended,
		Confidence:        math.Max(0, math.Min(1, agreement*meanSim)),
	}
}

// similarity measures closeness of two constraint sets in [0, 1] over
// normalized area and budget distance, climate ordering distance and
// priority match. False when either set carries an unknown category.
func similarity(a, b design.Constraints) (float64, bool) {
	climA, okA := encodeClimate(a.Climate)
	climB, okB := encodeClimate(b.Climate)
	if !okA || !okB {
		return 0, false
	}
	if _, ok := encodePriority(a.Priority); !ok {
		return 0, false
	}
	if _, ok := encodePriority(b.Priority); !ok {
		return 0, false
	}

	areaDist := math.Abs(float64(a.Area-b.Area)) / float64(design.AreaMax-design.AreaMin)
	budgetDist := math.Abs(float64(a.Budget-b.Budget)) / float64(design.BudgetMax)
	climateDist := math.Abs(climA-climB) / 2
	priorityDist := 0.0
	if a.Priority != b.Priority {
		priorityDist = 1
	}

	dist := 0.3*areaDist + 0.3*budgetDist + 0.2*climateDist + 0.2*priorityDist
	return 1 - dist, true
}
