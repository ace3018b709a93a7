package container

import (
	"context"
	"fmt"
	"log"

	"ecodesign/adapters/excel"
	"ecodesign/adapters/postgres"
	"ecodesign/app"
	"ecodesign/internal/config"
	"ecodesign/internal/constraints"
	"ecodesign/internal/evaluator"
	"ecodesign/internal/generator"
	"ecodesign/internal/ml"
	"ecodesign/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	ProjectRepo ports.ProjectRepository

	// Pipeline engines
	Constraints *constraints.Engine
	Generator   *generator.Generator
	Evaluator   *evaluator.Evaluator

	// ML models (trained during InitModels, before the server starts)
	CostPredictor *ml.CostPredictor
	DesignRanker  *ml.DesignRanker
	Recommender   *ml.DesignRecommender

	Pipeline *app.PipelineService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return &Container{
		Config:      cfg,
		Constraints: constraints.NewEngine(),
		Generator:   generator.NewGenerator(),
		Evaluator:   evaluator.NewEvaluator(),
	}, nil
}

// InitWithDatabase initializes components that require database access.
// The application runs fine without it; callers skip this when no
// DATABASE_URL is configured.
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure project schema: %w", err)
	}

	c.ProjectRepo = postgres.NewProjectRepository(db)
	log.Printf("Container initialized with database connection")
	return nil
}

// InitModels loads training data and trains all three models. A configured
// workbook that fails to load falls back to synthetic data rather than
// aborting startup.
func (c *Container) InitModels(ctx context.Context) error {
	source := c.trainingSource()

	data, err := source.Load(ctx)
	if err != nil {
		if _, isSynthetic := source.(*ml.SyntheticSource); isSynthetic {
			return fmt.Errorf("failed to load training data: %w", err)
		}
		log.Printf("Warning: training source %q failed (%v), falling back to synthetic data", source.Name(), err)
		source = ml.NewSyntheticSource(c.syntheticConfig())
		if data, err = source.Load(ctx); err != nil {
			return fmt.Errorf("failed to load training data: %w", err)
		}
	}
	log.Printf("Training data loaded from %s: %d cost samples, %d preference samples, %d historical projects",
		source.Name(), len(data.Costs), len(data.Preferences), len(data.Historical))

	c.CostPredictor = ml.NewCostPredictor()
	if err := c.CostPredictor.Train(data.Costs); err != nil {
		log.Printf("Warning: cost predictor training failed: %v (cost predictions disabled)", err)
		c.CostPredictor = nil
	}

	c.DesignRanker = ml.NewDesignRanker()
	if err := c.DesignRanker.Train(data.Preferences); err != nil {
		log.Printf("Warning: design ranker training failed: %v (ML rankings disabled)", err)
		c.DesignRanker = nil
	}

	c.Recommender = ml.NewDesignRecommender()
	c.Recommender.LearnFromHistory(data.Historical)
	if c.Recommender.HistorySize() == 0 {
		log.Printf("Warning: no historical projects available (recommendations disabled)")
		c.Recommender = nil
	}

	c.Pipeline = app.NewPipelineService(
		c.Constraints,
		c.Generator,
		c.Evaluator,
		c.CostPredictor,
		c.DesignRanker,
		c.Recommender,
		c.ProjectRepo,
	)
	return nil
}

// trainingSource picks the workbook source when one is configured,
// synthetic data otherwise.
func (c *Container) trainingSource() ports.TrainingDataSource {
	if c.Config.Data.TrainingFile != "" {
		log.Printf("Using training data file: %s", c.Config.Data.TrainingFile)
		return excel.NewTrainingSource(c.Config.Data.TrainingFile)
	}
	log.Printf("No training data file configured, using synthetic data")
	return ml.NewSyntheticSource(c.syntheticConfig())
}

func (c *Container) syntheticConfig() ml.SyntheticConfig {
	return ml.SyntheticConfig{
		CostSamples:        c.Config.Data.CostSamples,
		PreferenceSamples:  c.Config.Data.PreferenceSamples,
		HistoricalProjects: c.Config.Data.HistoricalProjects,
		Seed:               c.Config.Data.Seed,
	}
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
