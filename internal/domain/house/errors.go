package house

import "errors"

var (
	// Validation errors
	ErrInvalidLimit        = errors.New("limit must be between 1 and 100")
	ErrInvalidOffset       = errors.New("offset must not be negative")
	ErrInvalidPriceRange   = errors.New("min_price must not exceed max_price")
	ErrInvalidAcreageRange = errors.New("min_acreage must not exceed max_acreage")
)
