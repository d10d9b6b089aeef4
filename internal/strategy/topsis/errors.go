package topsis

import "errors"

var (
	ErrEmptyCriteria  = errors.New("topsis: no criteria")
	ErrShapeMismatch  = errors.New("topsis: matrix shape does not match criteria")
	ErrNegativeWeight = errors.New("topsis: criterion weights must be non-negative finite numbers")
	ErrNaNValue       = errors.New("topsis: matrix contains NaN")
)
