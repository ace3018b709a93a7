// Package api is the thin HTTP shell over the decision-support pipeline.
// It owns request decoding, the archetype id-to-name mapping of responses,
// and the translation of error codes to HTTP statuses; all computation
// happens in the pipeline service.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ecodesign/app"
	"ecodesign/ports"
)

// App is the HTTP application.
type App struct {
	router   *chi.Mux
	pipeline *app.PipelineService
	projects ports.ProjectRepository // nil when no database is configured
}

// NewApp creates the HTTP application over an initialized pipeline.
func NewApp(pipeline *app.PipelineService, projects ports.ProjectRepository) *App {
	a := &App{
		router:   chi.NewRouter(),
		pipeline: pipeline,
		projects: projects,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// Router exposes the handler for the HTTP server.
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/api/health", a.handleHealth)
	a.router.Get("/api/metadata", a.handleMetadata)

	a.router.Post("/api/constraints/validate", a.handleValidateConstraints)
	a.router.Post("/api/designs/generate", a.handleGenerateDesigns)
	a.router.Post("/api/designs/{id}/evaluate", a.handleEvaluateDesign)
	a.router.Post("/api/comparison/rankings", a.handleRankings)

	a.router.Post("/api/ml/cost-prediction", a.handleCostPrediction)
	a.router.Post("/api/ml/recommendations", a.handleRecommendations)

	a.router.Get("/api/projects", a.handleListProjects)
	a.router.Get("/api/projects/{id}", a.handleGetProject)
	a.router.Get("/api/projects/{id}/report", a.handleProjectReport)
	a.router.Post("/api/projects/clear", a.handleClearProjects)

	a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "endpoint not found")
	})
}
