package design

// CostSample is one observation for the cost regression. Real and synthetic
// sources produce the identical schema so training is source-agnostic.
type CostSample struct {
	Area      int
	Budget    int
	Climate   Climate
	Priority  Priority
	Archetype Archetype
	Cost      float64
}

// PreferenceSample records which archetype was preferred under a given
// constraint set. Used to fit the preference ranker.
type PreferenceSample struct {
	Constraints Constraints
	Preferred   Archetype
}

// HistoricalProject is a completed past project: its constraints, the
// archetype that was built, and how well it performed afterwards.
// Read-only reference data for the similarity recommender.
type HistoricalProject struct {
	Constraints  Constraints
	Chosen       Archetype
	OutcomeScore float64 // post-occupancy performance, 0-100
}
