package ranking

import (
	"fmt"
	"sort"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/dss"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
)

// Rank orders houses by score, best first. scores[i] belongs to houses[i].
// Equal scores fall back to ascending house id, so the order never depends on fetch order.
// Each entry gets its 1-based rank and the environments that match requestedAmenities.
func Rank(houses []house.House, scores []float64, requestedAmenities []int64) ([]dss.RankedHouse, error) {
	if len(houses) != len(scores) {
		return nil, fmt.Errorf("rank: %d houses but %d scores", len(houses), len(scores))
	}

	requested := make(map[int64]struct{}, len(requestedAmenities))
	for _, id := range requestedAmenities {
		requested[id] = struct{}{}
	}

	ranked := make([]dss.RankedHouse, len(houses))
	for i, h := range houses {
		ranked[i] = dss.RankedHouse{
			House:            h,
			TopsisScore:      scores[i],
			MatchedAmenities: matchedAmenities(h.Environments, requested),
		}
	}

	sortByScore(ranked)

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked, nil
}

// sortByScore sorts descending by score, then ascending by id
func sortByScore(houses []dss.RankedHouse) {
	sort.SliceStable(houses, func(i, j int) bool {
		if houses[i].TopsisScore != houses[j].TopsisScore {
			return houses[i].TopsisScore > houses[j].TopsisScore
		}
		return houses[i].ID < houses[j].ID
	})
}

func matchedAmenities(envs []house.Environment, requested map[int64]struct{}) []house.Environment {
	matched := make([]house.Environment, 0, len(envs))
	for _, env := range envs {
		if _, ok := requested[env.ID]; ok {
			matched = append(matched, env)
		}
	}
	return matched
}
