package api

import (
	"net/http"

	"ecodesign/domain/design"
)

// costPredictionRequest carries the cost endpoint payload. Pointer fields
// distinguish "absent" from zero so the endpoint can apply its documented
// defaults.
type costPredictionRequest struct {
	Area     *int             `json:"area"`
	Budget   *int             `json:"budget"`
	Climate  *design.Climate  `json:"climate"`
	Priority *design.Priority `json:"priority"`
	DesignID *int             `json:"design_id"`
}

func (a *App) handleCostPrediction(w http.ResponseWriter, r *http.Request) {
	var req costPredictionRequest
	if err := decodeBody(r, &req); err != nil {
		writeAppError(w, err)
		return
	}

	c := design.Constraints{Area: 1000, Budget: 50, Climate: design.ClimateModerate, Priority: design.PriorityEnergy}
	archetype := design.ArchetypeEcoEfficient
	if req.Area != nil {
		c.Area = *req.Area
	}
	if req.Budget != nil {
		c.Budget = *req.Budget
	}
	if req.Climate != nil {
		c.Climate = *req.Climate
	}
	if req.Priority != nil {
		c.Priority = *req.Priority
	}
	if req.DesignID != nil {
		archetype = design.Archetype(*req.DesignID)
	}

	prediction, err := a.pipeline.PredictCost(c, archetype)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"predicted_cost":     prediction.PredictedCost,
		"confidence":         prediction.Confidence,
		"feature_importance": prediction.FeatureImportance,
		"model":              "LinearRegression",
	})
}

func (a *App) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var c design.Constraints
	if err := decodeBody(r, &c); err != nil {
		writeAppError(w, err)
		return
	}

	rec, err := a.pipeline.Recommend(c, 3)
	if err != nil {
		writeAppError(w, err)
		return
	}

	// The id-to-name mapping belongs to this boundary layer.
	var name interface{}
	var id interface{}
	if rec.RecommendedDesign != nil {
		name = rec.RecommendedDesign.Name()
		id = int(*rec.RecommendedDesign)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recommended_design":    name,
		"recommended_design_id": id,
		"confidence":            rec.Confidence,
		"model":                 "HistoricalSimilarity",
	})
}
