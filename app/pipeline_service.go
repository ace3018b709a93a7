// Package app wires the pipeline components into the request-level
// operations the API exposes: validation, generation with ML enhancements,
// ranking and recommendation.
package app

import (
	"context"
	"log"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ecodesign/domain/core"
	"ecodesign/domain/design"
	"ecodesign/domain/project"
	"ecodesign/internal/constraints"
	"ecodesign/internal/errors"
	"ecodesign/internal/evaluator"
	"ecodesign/internal/generator"
	"ecodesign/internal/ml"
	"ecodesign/ports"
)

// PipelineService runs the generation-evaluation-ranking pipeline. The three
// ML models are injected already trained and are read-only here; any of them
// (and the repository) may be nil, in which case the matching enhancement is
// omitted rather than failed.
type PipelineService struct {
	engine      *constraints.Engine
	generator   *generator.Generator
	evaluator   *evaluator.Evaluator
	costs       *ml.CostPredictor
	ranker      *ml.DesignRanker
	recommender *ml.DesignRecommender
	projects    ports.ProjectRepository
}

// NewPipelineService creates the pipeline orchestrator.
func NewPipelineService(
	engine *constraints.Engine,
	gen *generator.Generator,
	eval *evaluator.Evaluator,
	costs *ml.CostPredictor,
	ranker *ml.DesignRanker,
	recommender *ml.DesignRecommender,
	projects ports.ProjectRepository,
) *PipelineService {
	return &PipelineService{
		engine:      engine,
		generator:   gen,
		evaluator:   eval,
		costs:       costs,
		ranker:      ranker,
		recommender: recommender,
		projects:    projects,
	}
}

// ValidationOutcome is the result of the validation operation.
type ValidationOutcome struct {
	Result      design.ValidationResult
	Processed   *design.Processed
	Feasibility float64
}

// Validate checks the constraints and, when they pass, returns the processed
// form and its feasibility score.
func (s *PipelineService) Validate(c design.Constraints) ValidationOutcome {
	result := s.engine.Validate(c)
	if !result.Valid {
		return ValidationOutcome{Result: result}
	}
	processed := s.engine.Process(c)
	return ValidationOutcome{
		Result:      result,
		Processed:   &processed,
		Feasibility: s.engine.Feasibility(processed),
	}
}

// GenerateResult is the merged output of a full pipeline run. Rankings and
// Recommendation are nil whenever the corresponding model was unavailable;
// ProjectID is nil when no repository is configured or persistence failed.
type GenerateResult struct {
	Designs        []design.Design
	Rankings       []design.RankingEntry
	Recommendation *design.Recommendation
	ProjectID      *core.ProjectID
	GeneratedAt    time.Time
}

// Generate runs the whole pipeline for one constraint set.
func (s *PipelineService) Generate(ctx context.Context, c design.Constraints) (*GenerateResult, error) {
	if result := s.engine.Validate(c); !result.Valid {
		return nil, errors.ValidationError(strings.Join(result.Errors, "; "))
	}

	designs := s.generator.Generate(c)

	// Designs are independent: evaluate and cost-predict them in parallel.
	g, _ := errgroup.WithContext(ctx)
	for i := range designs {
		i := i
		g.Go(func() error {
			d := &designs[i]
			metrics := s.evaluator.Evaluate(*d, c)
			d.Metrics = &metrics
			if s.costs != nil {
				if cost, ok := s.costs.Predict(c.Area, c.Budget, c.Climate, c.Priority, d.ID); ok {
					rounded := int(math.Round(cost))
					d.MLPredictedCost = &rounded
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "design evaluation failed")
	}

	result := &GenerateResult{
		Designs:        designs,
		Rankings:       s.mlRankings(designs, c),
		Recommendation: s.recommendation(c),
		GeneratedAt:    time.Now().UTC(),
	}

	// Persistence is a side effect of the run, never a reason to fail it.
	if s.projects != nil {
		record := &project.Record{
			ID:          core.NewProjectID(),
			Constraints: c,
			Designs:     designs,
			CreatedAt:   result.GeneratedAt,
		}
		if result.Rankings != nil || result.Recommendation != nil {
			record.ML = &project.Enhancements{
				Rankings:       result.Rankings,
				Recommendation: result.Recommendation,
			}
		}
		if err := s.projects.Save(ctx, record); err != nil {
			log.Printf("failed to persist project: %v", err)
		} else {
			result.ProjectID = &record.ID
		}
	}

	return result, nil
}

// EvaluateDesign computes metrics for a caller-supplied design/constraints
// pair.
func (s *PipelineService) EvaluateDesign(d design.Design, c design.Constraints) design.Metrics {
	return s.evaluator.Evaluate(d, c)
}

// RankingOutcome combines rule-based and optional ML rankings over a
// caller-supplied design set.
type RankingOutcome struct {
	RuleBased []evaluator.Ranked
	ML        []design.RankingEntry
}

// Rankings ranks an already-evaluated design set.
func (s *PipelineService) Rankings(designs []design.Design, c design.Constraints) (*RankingOutcome, error) {
	ruleBased, err := s.evaluator.RankDesigns(designs)
	if err != nil {
		return nil, err
	}
	return &RankingOutcome{
		RuleBased: ruleBased,
		ML:        s.mlRankings(designs, c),
	}, nil
}

// CostPrediction is the cost endpoint's payload.
type CostPrediction struct {
	PredictedCost     int
	Confidence        float64
	FeatureImportance map[string]float64
}

// PredictCost estimates cost for one (constraints, archetype) combination.
// A MODEL_UNAVAILABLE error means no trained model exists; DEGENERATE_INPUT
// means the model declined this particular input.
func (s *PipelineService) PredictCost(c design.Constraints, archetype design.Archetype) (*CostPrediction, error) {
	if s.costs == nil || !s.costs.Ready() {
		return nil, errors.ModelUnavailable("cost prediction")
	}
	cost, ok := s.costs.Predict(c.Area, c.Budget, c.Climate, c.Priority, archetype)
	if !ok {
		return nil, errors.DegenerateInput("no confident cost estimate for this input")
	}
	return &CostPrediction{
		PredictedCost:     int(math.Round(cost)),
		Confidence:        s.costs.Confidence(),
		FeatureImportance: s.costs.FeatureImportance(),
	}, nil
}

// Recommend runs the historical-similarity lookup. A nil-archetype
// recommendation is a valid degraded answer and is returned as-is.
func (s *PipelineService) Recommend(c design.Constraints, topN int) (design.Recommendation, error) {
	if s.recommender == nil {
		return design.Recommendation{}, errors.ModelUnavailable("recommendation")
	}
	return s.recommender.RecommendDesign(c, topN), nil
}

// ModelsReady reports whether every ML enhancement is live.
func (s *PipelineService) ModelsReady() bool {
	return s.costs != nil && s.costs.Ready() &&
		s.ranker != nil && s.ranker.Ready() &&
		s.recommender != nil && s.recommender.HistorySize() > 0
}

func (s *PipelineService) mlRankings(designs []design.Design, c design.Constraints) []design.RankingEntry {
	if s.ranker == nil || !s.ranker.Ready() {
		return nil
	}
	scored := s.ranker.RankDesigns(designs, c)
	entries := make([]design.RankingEntry, 0, len(scored))
	for _, sd := range scored {
		entries = append(entries, design.RankingEntry{ID: sd.Design.ID, MLScore: round2(sd.Score)})
	}
	return entries
}

func (s *PipelineService) recommendation(c design.Constraints) *design.Recommendation {
	if s.recommender == nil {
		return nil
	}
	rec := s.recommender.RecommendDesign(c, 3)
	return &rec
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
