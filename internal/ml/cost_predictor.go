// Package ml holds the three lightweight learned models of the pipeline:
// the cost regression, the preference ranker and the historical-similarity
// recommender. Each is constructed once, trained once at startup, then
// treated as read-only shared state for the life of the process.
package ml

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"ecodesign/domain/design"
	"ecodesign/internal/errors"
)

// costFeatureNames is the regression feature schema, shared by real and
// synthetic training data. Order matters: it matches the design matrix
// columns (after the intercept).
var costFeatureNames = []string{"area", "budget", "climate", "priority", "design"}

// CostPredictor is a linear regression from (area, budget, climate,
// priority, archetype) to estimated construction cost. Immutable after Train.
type CostPredictor struct {
	coeffs      []float64 // intercept followed by one coefficient per feature
	meanCost    float64
	residualStd float64
	trained     bool
}

// NewCostPredictor creates an untrained cost predictor.
func NewCostPredictor() *CostPredictor {
	return &CostPredictor{}
}

// Ready reports whether the model has been trained.
func (p *CostPredictor) Ready() bool {
	return p.trained
}

// Train fits the regression by least squares over the sample set. It is
// called exactly once per process lifetime, before serving traffic.
func (p *CostPredictor) Train(samples []design.CostSample) error {
	cols := len(costFeatureNames) + 1
	if len(samples) < cols {
		return errors.DegenerateInput("not enough cost samples to fit regression")
	}

	x := mat.NewDense(len(samples), cols, nil)
	y := mat.NewDense(len(samples), 1, nil)
	rows := 0
	for _, s := range samples {
		features, ok := costFeatures(s.Area, s.Budget, s.Climate, s.Priority, s.Archetype)
		if !ok {
			continue // out-of-domain category in training data, skip the row
		}
		x.SetRow(rows, features)
		y.Set(rows, 0, s.Cost)
		rows++
	}
	if rows < cols {
		return errors.DegenerateInput("not enough usable cost samples to fit regression")
	}
	x = x.Slice(0, rows, 0, cols).(*mat.Dense)
	y = y.Slice(0, rows, 0, 1).(*mat.Dense)

	var qr mat.QR
	qr.Factorize(x)
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, y); err != nil {
		return errors.Wrap(err, "cost regression is singular")
	}

	coeffs := make([]float64, cols)
	for i := range coeffs {
		coeffs[i] = beta.At(i, 0)
	}

	// Residual spread feeds the confidence figure on predictions.
	residuals := make([]float64, rows)
	costs := make([]float64, rows)
	for i := 0; i < rows; i++ {
		fitted := coeffs[0]
		for j := 1; j < cols; j++ {
			fitted += coeffs[j] * x.At(i, j)
		}
		residuals[i] = y.At(i, 0) - fitted
		costs[i] = y.At(i, 0)
	}
	residualStd, err := stats.StandardDeviation(residuals)
	if err != nil {
		return errors.Wrap(err, "residual analysis failed")
	}
	meanCost, err := stats.Mean(costs)
	if err != nil {
		return errors.Wrap(err, "residual analysis failed")
	}

	p.coeffs = coeffs
	p.residualStd = residualStd
	p.meanCost = meanCost
	p.trained = true
	return nil
}

// Predict returns the estimated cost and true, or 0 and false when the model
// cannot produce a confident figure: untrained model, out-of-domain category
// or a non-physical estimate. Callers treat false as "omit the enhancement".
func (p *CostPredictor) Predict(area, budget int, climate design.Climate, priority design.Priority, archetype design.Archetype) (float64, bool) {
	if !p.trained {
		return 0, false
	}
	features, ok := costFeatures(area, budget, climate, priority, archetype)
	if !ok {
		return 0, false
	}

	cost := 0.0
	for i, f := range features {
		cost += p.coeffs[i] * f
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost <= 0 {
		return 0, false
	}
	return cost, true
}

// Confidence reports how tightly the fitted model tracked its training data,
// as the share of the mean cost not explained away by residual spread.
func (p *CostPredictor) Confidence() float64 {
	if !p.trained || p.meanCost <= 0 {
		return 0
	}
	conf := 1 - p.residualStd/p.meanCost
	return math.Max(0.5, math.Min(0.99, conf))
}

// FeatureImportance exposes the fitted coefficients as normalized absolute
// weights summing to 1, reflecting the currently trained model.
func (p *CostPredictor) FeatureImportance() map[string]float64 {
	importance := make(map[string]float64, len(costFeatureNames))
	if !p.trained {
		return importance
	}

	total := 0.0
	for i := range costFeatureNames {
		total += math.Abs(p.coeffs[i+1])
	}
	for i, name := range costFeatureNames {
		if total > 0 {
			importance[name] = math.Abs(p.coeffs[i+1]) / total
		} else {
			importance[name] = 0
		}
	}
	return importance
}

// costFeatures builds the intercept-led feature vector. False when a
// categorical value lies outside the trained domain.
func costFeatures(area, budget int, climate design.Climate, priority design.Priority, archetype design.Archetype) ([]float64, bool) {
	climateEnc, ok := encodeClimate(climate)
	if !ok {
		return nil, false
	}
	priorityEnc, ok := encodePriority(priority)
	if !ok {
		return nil, false
	}
	if !archetype.Valid() {
		return nil, false
	}
	return []float64{1, float64(area), float64(budget), climateEnc, priorityEnc, float64(archetype)}, true
}

func encodeClimate(c design.Climate) (float64, bool) {
	switch c {
	case design.ClimateCold:
		return 0, true
	case design.ClimateModerate:
		return 1, true
	case design.ClimateHot:
		return 2, true
	}
	return 0, false
}

func encodePriority(p design.Priority) (float64, bool) {
	switch p {
	case design.PriorityEnergy:
		return 0, true
	case design.PriorityWater:
		return 1, true
	case design.PriorityMaterials:
		return 2, true
	}
	return 0, false
}
