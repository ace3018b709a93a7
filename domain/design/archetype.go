package design

// Archetype identifies one of the three fixed design strategies. The numeric
// values are stable identifiers shared by the generator, evaluator, rankers
// and the API layer, and by persisted project records.
type Archetype int

const (
	ArchetypeEcoEfficient Archetype = iota
	ArchetypeCarbonOptimized
	ArchetypeRegenerative
)

// ArchetypeCount is the fixed number of alternatives per generation.
const ArchetypeCount = 3

var archetypeNames = [ArchetypeCount]string{
	"Eco-Efficient",
	"Carbon-Optimized",
	"Regenerative",
}

// Name returns the canonical display name for the archetype.
func (a Archetype) Name() string {
	if !a.Valid() {
		return "Unknown"
	}
	return archetypeNames[a]
}

// Valid reports whether the archetype is one of the three defined strategies.
func (a Archetype) Valid() bool {
	return a >= 0 && a < ArchetypeCount
}

// Archetypes returns all archetypes in id order.
func Archetypes() [ArchetypeCount]Archetype {
	return [ArchetypeCount]Archetype{
		ArchetypeEcoEfficient,
		ArchetypeCarbonOptimized,
		ArchetypeRegenerative,
	}
}
