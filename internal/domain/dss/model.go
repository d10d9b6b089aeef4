package dss

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
)

// Criterion names, in decision matrix column order
const (
	CriterionPrice          = "price"
	CriterionAcreage        = "acreage"
	CriterionAcreageRatio   = "acreage_ratio"
	CriterionAmenitiesW     = "amenities_w"
	CriterionAmenitiesRatio = "amenities_ratio"
	CriterionDistance       = "distance_to_preferred_location"
)

// CriterionNames lists every criterion the engine knows about
var CriterionNames = []string{
	CriterionPrice,
	CriterionAcreage,
	CriterionAcreageRatio,
	CriterionAmenitiesW,
	CriterionAmenitiesRatio,
	CriterionDistance,
}

// Coordinate is a (latitude, longitude) pair, encoded as a two element JSON array
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// MarshalJSON encodes the coordinate as [latitude, longitude]
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Latitude, c.Longitude})
}

// UnmarshalJSON decodes [latitude, longitude]
func (c *Coordinate) UnmarshalJSON(b []byte) error {
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("preferred_location: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("preferred_location: expected [latitude, longitude], got %d values", len(pair))
	}
	c.Latitude, c.Longitude = pair[0], pair[1]
	return nil
}

// Valid reports whether the coordinate is a real point on the globe
func (c Coordinate) Valid() bool {
	return !math.IsNaN(c.Latitude) && c.Latitude >= -90 && c.Latitude <= 90 &&
		!math.IsNaN(c.Longitude) && c.Longitude >= -180 && c.Longitude <= 180
}

// CompareRequest asks for a TOPSIS ranking of a chosen set of listings
type CompareRequest struct {
	// HouseRentIDs are the listings to compare; empty yields an empty result
	HouseRentIDs []int64 `json:"house_rent_ids"`

	// Amenities the user cares about
	Amenities []int64 `json:"amenities"`

	// Weights are positionally paired with Amenities; empty means equal importance
	Weights []float64 `json:"weights,omitempty"`

	// TopsisWeight has one entry per decision matrix column; empty means the default vector
	TopsisWeight []float64 `json:"topsis_weight,omitempty"`

	// PreferredLocation adds the distance criterion when present
	PreferredLocation *Coordinate `json:"preferred_location,omitempty"`
}

// RankedHouse is a listing with its TOPSIS outcome
type RankedHouse struct {
	house.House

	// Criteria holds the decision matrix row of this listing keyed by criterion name
	Criteria         map[string]Value    `json:"criteria"`
	TopsisScore      float64             `json:"topsis_score"`
	Rank             int                 `json:"rank"`
	MatchedAmenities []house.Environment `json:"matched_amenities"`
}

// AmenityWeight reports the importance applied to a requested amenity
type AmenityWeight struct {
	ID       int64   `json:"id"`
	Category string  `json:"category,omitempty"`
	Value    string  `json:"value,omitempty"`
	Weight   float64 `json:"weight"`
}

// CompareResult is the response of a compare request
type CompareResult struct {
	RankedHouses []RankedHouse `json:"ranked_houses"`

	// IdealBest and IdealWorst are computed from the raw, unnormalized matrix
	IdealBest  map[string]Value `json:"ideal_best"`
	IdealWorst map[string]Value `json:"ideal_worst"`

	// CriterionWeights are the normalized weights the solver used
	CriterionWeights map[string]float64 `json:"criterion_weights"`

	Amenities []AmenityWeight `json:"amenities"`
}

// EmptyResult returns a result with no listings
func EmptyResult() *CompareResult {
	return &CompareResult{
		RankedHouses:     []RankedHouse{},
		IdealBest:        map[string]Value{},
		IdealWorst:       map[string]Value{},
		CriterionWeights: map[string]float64{},
		Amenities:        []AmenityWeight{},
	}
}
