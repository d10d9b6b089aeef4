package dss

import (
	"fmt"
	"math"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/dss"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/strategy/topsis"
)

// Preferences are the per-request inputs of the vectorizer
type Preferences struct {
	// AmenityWeights maps a requested amenity id to its importance
	AmenityWeights map[int64]float64

	// Location enables the distance criterion when set
	Location *dss.Coordinate
}

// DecisionMatrix has one row per house, in HouseIDs order, and one column per criterion
type DecisionMatrix struct {
	HouseIDs []int64
	Criteria []topsis.Criterion
	Rows     [][]float64
}

// Row returns the criterion values of a house keyed by criterion name
func (m *DecisionMatrix) Row(i int) map[string]dss.Value {
	out := make(map[string]dss.Value, len(m.Criteria))
	for j, c := range m.Criteria {
		out[c.Name] = dss.Value(m.Rows[i][j])
	}
	return out
}

// Columns returns the criteria of the decision matrix in column order, all weighted 1
func Columns(withLocation bool) []topsis.Criterion {
	cols := []topsis.Criterion{
		{Name: dss.CriterionPrice, Polarity: topsis.Cost, Weight: 1},
		{Name: dss.CriterionAcreage, Polarity: topsis.Benefit, Weight: 1},
		{Name: dss.CriterionAcreageRatio, Polarity: topsis.Benefit, Weight: 1},
		{Name: dss.CriterionAmenitiesW, Polarity: topsis.Benefit, Weight: 1},
		{Name: dss.CriterionAmenitiesRatio, Polarity: topsis.Benefit, Weight: 1},
	}
	if withLocation {
		cols = append(cols, topsis.Criterion{Name: dss.CriterionDistance, Polarity: topsis.Cost, Weight: 1})
	}
	return cols
}

// AmenityWeightMap pairs amenities with weights by position.
// Empty weights mean equal importance: the L2 normalized all-ones vector.
// It also returns the weight vector actually applied, aligned with amenities.
func AmenityWeightMap(amenities []int64, weights []float64) (map[int64]float64, []float64, error) {
	if len(weights) == 0 {
		weights = topsis.NormL2(topsis.Uniform(len(amenities)))
	}
	if len(weights) != len(amenities) {
		return nil, nil, fmt.Errorf("%w: %d weights for %d amenities",
			dss.ErrAmenityWeightsMismatch, len(weights), len(amenities))
	}

	m := make(map[int64]float64, len(amenities))
	for i, id := range amenities {
		w := weights[i]
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, nil, fmt.Errorf("%w: amenity %d has weight %v", dss.ErrNegativeWeight, id, w)
		}
		m[id] = w
	}
	return m, weights, nil
}

// Vectorize builds the decision matrix of houses.
// A house without coordinates is infinitely far from the preferred location.
func Vectorize(houses []house.House, prefs Preferences) *DecisionMatrix {
	m := &DecisionMatrix{
		HouseIDs: make([]int64, len(houses)),
		Criteria: Columns(prefs.Location != nil),
		Rows:     make([][]float64, len(houses)),
	}

	for i, h := range houses {
		amenitiesW := 0.0
		for _, env := range h.Environments {
			amenitiesW += prefs.AmenityWeights[env.ID]
		}

		row := []float64{
			h.Price,
			h.Acreage,
			ratio(h.Acreage, h.Price),
			amenitiesW,
			ratio(amenitiesW, h.Price),
		}
		if prefs.Location != nil {
			row = append(row, distance(h, *prefs.Location))
		}

		m.HouseIDs[i] = h.ID
		m.Rows[i] = row
	}

	return m
}

// ratio divides a by b. Division by zero gives ±Inf, or 0 when a is 0 as well.
func ratio(a, b float64) float64 {
	if b == 0 && a == 0 {
		return 0
	}
	return a / b
}

// distance is the planar Euclidean distance in degrees
func distance(h house.House, to dss.Coordinate) float64 {
	if !h.HasCoordinates() {
		return math.Inf(1)
	}
	return math.Hypot(*h.Latitude-to.Latitude, *h.Longitude-to.Longitude)
}
