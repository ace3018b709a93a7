package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ecodesign/domain/design"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"service":    "Sustainable Design API",
		"ml_enabled": a.pipeline.ModelsReady(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *App) handleMetadata(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"project": "Sustainable Design and Planning",
		"version": "2.0.0",
		"type":    "Decision-Support System with ML",
		"capabilities": map[string]interface{}{
			"constraints":            []string{"area", "budget", "climate", "priority"},
			"metrics":                []string{"energyEfficiency", "waterEfficiency", "carbonFootprint"},
			"designs_per_generation": design.ArchetypeCount,
			"ml_features": []string{
				"Cost prediction (LinearRegression)",
				"Design ranking (Priority-weighted)",
				"Recommendations (HistoricalSimilarity)",
			},
		},
		"ml_enabled": a.pipeline.ModelsReady(),
	})
}

func (a *App) handleValidateConstraints(w http.ResponseWriter, r *http.Request) {
	var c design.Constraints
	if err := decodeBody(r, &c); err != nil {
		writeAppError(w, err)
		return
	}

	outcome := a.pipeline.Validate(c)
	if !outcome.Result.Valid {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"valid":  false,
			"errors": outcome.Result.Errors,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":             true,
		"original":          c,
		"processed":         outcome.Processed,
		"feasibility_score": outcome.Feasibility,
	})
}

func (a *App) handleGenerateDesigns(w http.ResponseWriter, r *http.Request) {
	var c design.Constraints
	if err := decodeBody(r, &c); err != nil {
		writeAppError(w, err)
		return
	}

	result, err := a.pipeline.Generate(r.Context(), c)
	if err != nil {
		writeAppError(w, err)
		return
	}

	response := map[string]interface{}{
		"designs":      result.Designs,
		"count":        len(result.Designs),
		"constraints":  c,
		"generated_at": result.GeneratedAt.Format(time.RFC3339),
	}
	if result.Rankings != nil {
		response["ml_rankings"] = result.Rankings
	}
	if result.Recommendation != nil {
		response["recommendations"] = result.Recommendation
	}
	if result.ProjectID != nil {
		response["project_id"] = result.ProjectID.String()
	}
	writeJSON(w, http.StatusOK, response)
}

func (a *App) handleEvaluateDesign(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Design      *design.Design      `json:"design"`
		Constraints *design.Constraints `json:"constraints"`
	}
	if err := decodeBody(r, &payload); err != nil {
		writeAppError(w, err)
		return
	}
	if payload.Design == nil || payload.Constraints == nil {
		writeError(w, http.StatusBadRequest, "missing design or constraints")
		return
	}
	if outcome := a.pipeline.Validate(*payload.Constraints); !outcome.Result.Valid {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"valid":  false,
			"errors": outcome.Result.Errors,
		})
		return
	}

	metrics := a.pipeline.EvaluateDesign(*payload.Design, *payload.Constraints)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"design_id":            chi.URLParam(r, "id"),
		"metrics":              metrics,
		"evaluation_timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *App) handleRankings(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Designs     []design.Design    `json:"designs"`
		Constraints design.Constraints `json:"constraints"`
	}
	if err := decodeBody(r, &payload); err != nil {
		writeAppError(w, err)
		return
	}
	if len(payload.Designs) == 0 {
		writeError(w, http.StatusBadRequest, "no designs provided")
		return
	}

	outcome, err := a.pipeline.Rankings(payload.Designs, payload.Constraints)
	if err != nil {
		writeAppError(w, err)
		return
	}

	response := map[string]interface{}{
		"rule_based_rankings": outcome.RuleBased,
		"total_designs":       len(payload.Designs),
	}
	if outcome.ML != nil {
		response["ml_rankings"] = outcome.ML
	}
	writeJSON(w, http.StatusOK, response)
}
