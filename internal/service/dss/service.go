package dss

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/dss"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/pkg/config"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/pkg/logger"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/strategy/ranking"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/strategy/topsis"
)

// DefaultMaxCompare caps the number of listings in one compare request
const DefaultMaxCompare = 50

// Options tune the compare service
type Options struct {
	// FallbackLocation is used when a request has no preferred location
	FallbackLocation *dss.Coordinate

	// DefaultCriterionWeights replace the uniform vector when a request has no topsis_weight
	DefaultCriterionWeights map[string]float64

	MaxCompare int
}

// OptionsFromProfile converts a YAML profile into service options
func OptionsFromProfile(p *config.Profile, maxCompare int) (Options, error) {
	opts := Options{MaxCompare: maxCompare}
	if p == nil {
		return opts, nil
	}

	if len(p.FallbackPreferredLocation) == 2 {
		opts.FallbackLocation = &dss.Coordinate{
			Latitude:  p.FallbackPreferredLocation[0],
			Longitude: p.FallbackPreferredLocation[1],
		}
	}

	for name := range p.CriterionWeights {
		if !slices.Contains(dss.CriterionNames, name) {
			return Options{}, fmt.Errorf("dss profile: unknown criterion %q", name)
		}
	}
	if len(p.CriterionWeights) > 0 {
		// Without a location the distance column is dropped, so the base criteria must carry weight
		if opts.FallbackLocation == nil && !hasBaseWeight(p.CriterionWeights) {
			return Options{}, fmt.Errorf("%w: set a weight on a criterion other than %s or a fallback_preferred_location",
				ErrNoBaseWeight, dss.CriterionDistance)
		}
		opts.DefaultCriterionWeights = p.CriterionWeights
	}

	return opts, nil
}

// ErrNoBaseWeight is returned for a profile whose weights would leave requests without a location unranked
var ErrNoBaseWeight = errors.New("dss profile: every base criterion weight is zero")

func hasBaseWeight(weights map[string]float64) bool {
	for name, w := range weights {
		if name != dss.CriterionDistance && w > 0 {
			return true
		}
	}
	return false
}

// Service compares listings with TOPSIS
type Service struct {
	houses       house.Repository
	environments house.EnvironmentRepository
	opts         Options
}

// NewService creates a compare service
func NewService(houses house.Repository, environments house.EnvironmentRepository, opts Options) *Service {
	if opts.MaxCompare <= 0 {
		opts.MaxCompare = DefaultMaxCompare
	}
	return &Service{
		houses:       houses,
		environments: environments,
		opts:         opts,
	}
}

// Compare scores and ranks the requested listings.
// Shape errors are returned before any data is fetched; see dss.IsRequestError.
func (s *Service) Compare(ctx context.Context, req dss.CompareRequest) (*dss.CompareResult, error) {
	// 1. Resolve preferences and validate
	location := req.PreferredLocation
	if location == nil {
		location = s.opts.FallbackLocation
	}

	if err := s.validate(req, location); err != nil {
		return nil, err
	}

	amenityWeights, appliedWeights, err := AmenityWeightMap(req.Amenities, req.Weights)
	if err != nil {
		return nil, err
	}

	criteria, err := s.criteria(req.TopsisWeight, location != nil)
	if err != nil {
		return nil, err
	}

	if len(req.HouseRentIDs) == 0 {
		return dss.EmptyResult(), nil
	}

	// 2. Fetch listings and amenity metadata
	var (
		houses  []house.House
		catalog []house.Environment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		houses, err = s.houses.GetByIDs(gctx, req.HouseRentIDs)
		if err != nil {
			return fmt.Errorf("fetch houses: %w", err)
		}
		return nil
	})
	if len(req.Amenities) > 0 {
		g.Go(func() error {
			var err error
			catalog, err = s.environments.GetByIDs(gctx, req.Amenities)
			if err != nil {
				return fmt.Errorf("fetch amenities: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	houses = excludeUnpriced(ctx, houses)

	logger.Ctx(ctx).Debug().
		Int("requested", len(req.HouseRentIDs)).
		Int("found", len(houses)).
		Bool("with_location", location != nil).
		Msg("Listings loaded for comparison")

	result := dss.EmptyResult()
	result.Amenities = amenityMetadata(req.Amenities, appliedWeights, catalog)
	for _, c := range criteria {
		result.CriterionWeights[c.Name] = c.Weight
	}
	if len(houses) == 0 {
		return result, nil
	}

	// 3. Vectorize
	matrix := Vectorize(houses, Preferences{AmenityWeights: amenityWeights, Location: location})

	// 4. Solve
	sol, err := topsis.Solve(matrix.Rows, criteria)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	// 5. Rank
	ranked, err := ranking.Rank(houses, sol.Scores, req.Amenities)
	if err != nil {
		return nil, err
	}

	rowByID := make(map[int64]int, len(matrix.HouseIDs))
	for i, id := range matrix.HouseIDs {
		rowByID[id] = i
	}
	for i := range ranked {
		ranked[i].Criteria = matrix.Row(rowByID[ranked[i].ID])
	}

	// 6. Assemble
	result.RankedHouses = ranked
	for j, c := range criteria {
		result.IdealBest[c.Name] = dss.Value(sol.RawIdealBest[j])
		result.IdealWorst[c.Name] = dss.Value(sol.RawIdealWorst[j])
	}

	logger.Ctx(ctx).Info().
		Int("houses", len(ranked)).
		Int64("top_house_id", ranked[0].ID).
		Float64("top_score", ranked[0].TopsisScore).
		Msg("Comparison complete")

	return result, nil
}

func (s *Service) validate(req dss.CompareRequest, location *dss.Coordinate) error {
	if len(req.HouseRentIDs) > s.opts.MaxCompare {
		return fmt.Errorf("%w: %d given, at most %d allowed", dss.ErrTooManyHouses, len(req.HouseRentIDs), s.opts.MaxCompare)
	}
	for _, id := range req.HouseRentIDs {
		if id <= 0 {
			return fmt.Errorf("%w: %d", dss.ErrInvalidHouseID, id)
		}
	}

	if len(req.Weights) > 0 && len(req.Weights) != len(req.Amenities) {
		return fmt.Errorf("%w: %d weights for %d amenities", dss.ErrAmenityWeightsMismatch, len(req.Weights), len(req.Amenities))
	}
	if err := checkWeights("weights", req.Weights); err != nil {
		return err
	}

	if n := len(Columns(location != nil)); len(req.TopsisWeight) > 0 && len(req.TopsisWeight) != n {
		return fmt.Errorf("%w: got %d, want %d", dss.ErrTopsisWeightMismatch, len(req.TopsisWeight), n)
	}
	if err := checkWeights("topsis_weight", req.TopsisWeight); err != nil {
		return err
	}

	if location != nil && !location.Valid() {
		return fmt.Errorf("%w: [%v, %v]", dss.ErrInvalidLocation, location.Latitude, location.Longitude)
	}
	return nil
}

func checkWeights(field string, weights []float64) error {
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return fmt.Errorf("%w: %s[%d] = %v", dss.ErrNegativeWeight, field, i, w)
		}
	}
	return nil
}

// criteria returns the decision matrix columns carrying L2 normalized weights
func (s *Service) criteria(requested []float64, withLocation bool) ([]topsis.Criterion, error) {
	cols := Columns(withLocation)

	weights := requested
	if len(weights) == 0 {
		weights = s.defaultWeights(cols)
	}

	return topsis.WithWeights(cols, topsis.NormL2(weights))
}

func (s *Service) defaultWeights(cols []topsis.Criterion) []float64 {
	if s.opts.DefaultCriterionWeights == nil {
		return topsis.Uniform(len(cols))
	}

	w := make([]float64, len(cols))
	for i, c := range cols {
		w[i] = s.opts.DefaultCriterionWeights[c.Name]
	}
	return w
}

// excludeUnpriced drops listings with a non-positive price, their ratios are undefined
func excludeUnpriced(ctx context.Context, houses []house.House) []house.House {
	kept := houses[:0:0]
	for _, h := range houses {
		if h.Price <= 0 {
			logger.Ctx(ctx).Warn().
				Int64("house_id", h.ID).
				Float64("price", h.Price).
				Msg("Listing without a positive price excluded from comparison")
			continue
		}
		kept = append(kept, h)
	}
	return kept
}

func amenityMetadata(ids []int64, weights []float64, catalog []house.Environment) []dss.AmenityWeight {
	byID := make(map[int64]house.Environment, len(catalog))
	for _, env := range catalog {
		byID[env.ID] = env
	}

	out := make([]dss.AmenityWeight, len(ids))
	for i, id := range ids {
		env := byID[id]
		out[i] = dss.AmenityWeight{
			ID:       id,
			Category: env.Category,
			Value:    env.Value,
			Weight:   weights[i],
		}
	}
	return out
}
