package ports

import (
	"context"

	"ecodesign/domain/design"
)

// TrainingData bundles the three datasets the models train on. Real and
// synthetic sources produce the identical schema so training code never
// knows which supplied the samples.
type TrainingData struct {
	Costs       []design.CostSample
	Preferences []design.PreferenceSample
	Historical  []design.HistoricalProject
}

// TrainingDataSource supplies training datasets. Selected once at
// initialization; the loader-backed implementation reads real historical
// data, the synthetic implementation generates fixed-size samples.
type TrainingDataSource interface {
	// Name identifies the source for startup logging.
	Name() string

	// Load produces the full training bundle.
	Load(ctx context.Context) (*TrainingData, error)
}
