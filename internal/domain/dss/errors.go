package dss

import "errors"

var (
	// Request shape errors, all reported to the client as 400
	ErrAmenityWeightsMismatch = errors.New("weights must have the same length as amenities")
	ErrTopsisWeightMismatch   = errors.New("topsis_weight length must equal the number of criteria")
	ErrNegativeWeight         = errors.New("weights must be non-negative finite numbers")
	ErrInvalidLocation        = errors.New("preferred_location is out of range")
	ErrInvalidHouseID         = errors.New("house_rent_ids must be positive")
	ErrTooManyHouses          = errors.New("too many house_rent_ids")
)

// IsRequestError reports whether err is caused by an invalid compare request
func IsRequestError(err error) bool {
	for _, target := range []error{
		ErrAmenityWeightsMismatch,
		ErrTopsisWeightMismatch,
		ErrNegativeWeight,
		ErrInvalidLocation,
		ErrInvalidHouseID,
		ErrTooManyHouses,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
