package topsis

import "fmt"

// Polarity tells which direction of a criterion is desirable
type Polarity int

const (
	// Benefit criteria prefer higher values
	Benefit Polarity = iota
	// Cost criteria prefer lower values
	Cost
)

func (p Polarity) String() string {
	switch p {
	case Benefit:
		return "benefit"
	case Cost:
		return "cost"
	default:
		return fmt.Sprintf("polarity(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Polarity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Criterion binds a decision matrix column to its name, polarity and weight
type Criterion struct {
	Name     string   `json:"name"`
	Polarity Polarity `json:"polarity"`
	Weight   float64  `json:"weight"`
}

// better reports whether a is preferable to b on this criterion
func (c Criterion) better(a, b float64) bool {
	if c.Polarity == Cost {
		return a < b
	}
	return a > b
}

// WithWeights returns a copy of criteria carrying the given weights, matched by position
func WithWeights(criteria []Criterion, weights []float64) ([]Criterion, error) {
	if len(weights) != len(criteria) {
		return nil, fmt.Errorf("%w: %d weights for %d criteria", ErrShapeMismatch, len(weights), len(criteria))
	}

	out := make([]Criterion, len(criteria))
	for i, c := range criteria {
		c.Weight = weights[i]
		out[i] = c
	}
	return out, nil
}

// Weights returns the weight column of criteria
func Weights(criteria []Criterion) []float64 {
	w := make([]float64, len(criteria))
	for i, c := range criteria {
		w[i] = c.Weight
	}
	return w
}
