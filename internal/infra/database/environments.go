package database

import "github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"

// HouseIDs returns the ids of houses, in order
func HouseIDs(houses []house.House) []int64 {
	ids := make([]int64, len(houses))
	for i, h := range houses {
		ids[i] = h.ID
	}
	return ids
}

// AttachEnvironments sets the amenities of every house; houses without any get an empty slice
func AttachEnvironments(houses []house.House, byHouse map[int64][]house.Environment) {
	for i := range houses {
		envs := byHouse[houses[i].ID]
		if envs == nil {
			envs = []house.Environment{}
		}
		houses[i].Environments = envs
	}
}
