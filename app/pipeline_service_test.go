package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecodesign/domain/design"
	"ecodesign/internal/constraints"
	"ecodesign/internal/errors"
	"ecodesign/internal/evaluator"
	"ecodesign/internal/generator"
	"ecodesign/internal/ml"
)

// newTrainedService builds a pipeline with models trained on the synthetic
// source and no repository.
func newTrainedService(t *testing.T) *PipelineService {
	t.Helper()

	data, err := ml.NewSyntheticSource(ml.DefaultSyntheticConfig()).Load(context.Background())
	require.NoError(t, err)

	costs := ml.NewCostPredictor()
	require.NoError(t, costs.Train(data.Costs))
	ranker := ml.NewDesignRanker()
	require.NoError(t, ranker.Train(data.Preferences))
	recommender := ml.NewDesignRecommender()
	recommender.LearnFromHistory(data.Historical)

	return NewPipelineService(
		constraints.NewEngine(),
		generator.NewGenerator(),
		evaluator.NewEvaluator(),
		costs, ranker, recommender, nil,
	)
}

// newBareService builds a pipeline with no ML models at all.
func newBareService() *PipelineService {
	return NewPipelineService(
		constraints.NewEngine(),
		generator.NewGenerator(),
		evaluator.NewEvaluator(),
		nil, nil, nil, nil,
	)
}

func TestPipeline_EndToEnd(t *testing.T) {
	svc := newTrainedService(t)
	c := design.Constraints{Area: 1200, Budget: 60, Climate: design.ClimateHot, Priority: design.PriorityWater}

	outcome := svc.Validate(c)
	require.True(t, outcome.Result.Valid)
	require.Empty(t, outcome.Result.Errors)
	require.NotNil(t, outcome.Processed)
	assert.GreaterOrEqual(t, outcome.Feasibility, 0.0)
	assert.LessOrEqual(t, outcome.Feasibility, 100.0)

	result, err := svc.Generate(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, result.Designs, 3)

	for i, d := range result.Designs {
		assert.Equal(t, design.Archetype(i), d.ID)
		require.NotNil(t, d.Metrics, "design %d has no metrics", i)
	}

	require.Len(t, result.Rankings, 3)
	seen := make(map[design.Archetype]bool)
	for _, entry := range result.Rankings {
		assert.False(t, seen[entry.ID], "archetype %d ranked twice", entry.ID)
		seen[entry.ID] = true
	}

	require.NotNil(t, result.Recommendation)
	assert.GreaterOrEqual(t, result.Recommendation.Confidence, 0.0)
	assert.LessOrEqual(t, result.Recommendation.Confidence, 1.0)
	if result.Recommendation.RecommendedDesign != nil {
		assert.True(t, result.Recommendation.RecommendedDesign.Valid())
	}

	assert.Nil(t, result.ProjectID, "no repository configured, nothing persisted")
}

func TestPipeline_InvalidConstraintsRejectedBeforeGeneration(t *testing.T) {
	svc := newTrainedService(t)
	c := design.Constraints{Area: 50, Budget: 60, Climate: design.ClimateHot, Priority: design.PriorityWater}

	result, err := svc.Generate(context.Background(), c)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	assert.Contains(t, err.Error(), "area")
}

func TestPipeline_DegradesWithoutModels(t *testing.T) {
	svc := newBareService()
	c := design.Constraints{Area: 1000, Budget: 50, Climate: design.ClimateModerate, Priority: design.PriorityEnergy}

	result, err := svc.Generate(context.Background(), c)
	require.NoError(t, err, "missing models must not fail the rule-based pipeline")

	require.Len(t, result.Designs, 3)
	for _, d := range result.Designs {
		require.NotNil(t, d.Metrics)
		assert.Nil(t, d.MLPredictedCost)
	}
	assert.Nil(t, result.Rankings)
	assert.Nil(t, result.Recommendation)
	assert.False(t, svc.ModelsReady())
}

func TestPipeline_GenerateAttachesCosts(t *testing.T) {
	svc := newTrainedService(t)
	c := design.Constraints{Area: 1500, Budget: 70, Climate: design.ClimateCold, Priority: design.PriorityEnergy}

	result, err := svc.Generate(context.Background(), c)
	require.NoError(t, err)
	for _, d := range result.Designs {
		require.NotNil(t, d.MLPredictedCost, "in-domain input should carry a cost estimate")
		assert.Greater(t, *d.MLPredictedCost, 0)
	}
	assert.True(t, svc.ModelsReady())
}

func TestPipeline_Rankings(t *testing.T) {
	svc := newTrainedService(t)
	c := design.Constraints{Area: 900, Budget: 40, Climate: design.ClimateModerate, Priority: design.PriorityMaterials}

	generated, err := svc.Generate(context.Background(), c)
	require.NoError(t, err)

	outcome, err := svc.Rankings(generated.Designs, c)
	require.NoError(t, err)
	require.Len(t, outcome.RuleBased, 3)
	require.Len(t, outcome.ML, 3)
	for i, r := range outcome.RuleBased {
		assert.Equal(t, i+1, r.Rank)
	}

	_, err = svc.Rankings(nil, c)
	require.Error(t, err, "empty design set cannot be ranked")
}

func TestPipeline_PredictCost(t *testing.T) {
	svc := newTrainedService(t)
	c := design.Constraints{Area: 1000, Budget: 50, Climate: design.ClimateModerate, Priority: design.PriorityEnergy}

	pred, err := svc.PredictCost(c, design.ArchetypeCarbonOptimized)
	require.NoError(t, err)
	assert.Greater(t, pred.PredictedCost, 0)
	assert.Len(t, pred.FeatureImportance, 5)

	// Out-of-domain category degrades, it does not fail the model.
	bad := c
	bad.Climate = "lunar"
	_, err = svc.PredictCost(bad, design.ArchetypeEcoEfficient)
	require.Error(t, err)
	assert.Equal(t, errors.CodeDegenerateInput, errors.GetCode(err))

	_, err = newBareService().PredictCost(c, design.ArchetypeEcoEfficient)
	require.Error(t, err)
	assert.Equal(t, errors.CodeModelUnavailable, errors.GetCode(err))
}

func TestPipeline_Recommend(t *testing.T) {
	svc := newTrainedService(t)
	c := design.Constraints{Area: 1200, Budget: 60, Climate: design.ClimateHot, Priority: design.PriorityWater}

	rec, err := svc.Recommend(c, 3)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rec.Confidence, 0.0)
	assert.LessOrEqual(t, rec.Confidence, 1.0)

	_, err = newBareService().Recommend(c, 3)
	require.Error(t, err)
	assert.Equal(t, errors.CodeModelUnavailable, errors.GetCode(err))
}

func TestPipeline_GenerateDeterministicDesigns(t *testing.T) {
	svc := newTrainedService(t)
	c := design.Constraints{Area: 1000, Budget: 50, Climate: design.ClimateModerate, Priority: design.PriorityEnergy}

	first, err := svc.Generate(context.Background(), c)
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), c)
	require.NoError(t, err)

	require.Equal(t, len(first.Designs), len(second.Designs))
	for i := range first.Designs {
		assert.Equal(t, first.Designs[i].Attributes, second.Designs[i].Attributes)
		assert.Equal(t, *first.Designs[i].Metrics, *second.Designs[i].Metrics)
	}
	assert.Equal(t, first.Rankings, second.Rankings)
}
