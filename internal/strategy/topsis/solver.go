package topsis

import (
	"fmt"
	"math"
)

// Solution is the outcome of a TOPSIS run.
// Per-alternative slices follow matrix row order, per-criterion slices follow criteria order.
type Solution struct {
	// Scores are relative closeness values in [0, 1]
	Scores    []float64
	DistBest  []float64
	DistWorst []float64

	// IdealBest and IdealWorst live in weighted normalized space and drive the distances
	IdealBest  []float64
	IdealWorst []float64

	// RawIdealBest and RawIdealWorst are taken from the input matrix, for display
	RawIdealBest  []float64
	RawIdealWorst []float64
}

// Solve ranks the rows of matrix against criteria.
//
// Infinite entries are clamped per column to twice the largest finite magnitude of that
// column, keeping the sign, so they sit strictly beyond every finite value. The raw ideal
// values still report the infinity.
func Solve(matrix [][]float64, criteria []Criterion) (*Solution, error) {
	if err := validate(matrix, criteria); err != nil {
		return nil, err
	}

	m, n := len(matrix), len(criteria)
	sol := &Solution{
		Scores:    make([]float64, m),
		DistBest:  make([]float64, m),
		DistWorst: make([]float64, m),
	}
	if m == 0 {
		return sol, nil
	}

	sol.RawIdealBest, sol.RawIdealWorst = ideals(matrix, criteria)

	// 1. Vector normalization, 2. weighting
	weighted := clampInfinite(matrix, n)
	for j := 0; j < n; j++ {
		norm := 0.0
		for i := 0; i < m; i++ {
			norm = math.Hypot(norm, weighted[i][j])
		}
		if norm == 0 {
			norm = 1
		}
		for i := 0; i < m; i++ {
			weighted[i][j] = weighted[i][j] / norm * criteria[j].Weight
		}
	}

	// 3. Ideal best / worst
	sol.IdealBest, sol.IdealWorst = ideals(weighted, criteria)

	// 4. Distances, 5. closeness
	for i, row := range weighted {
		dBest, dWorst := 0.0, 0.0
		for j, v := range row {
			dBest = math.Hypot(dBest, v-sol.IdealBest[j])
			dWorst = math.Hypot(dWorst, v-sol.IdealWorst[j])
		}
		sol.DistBest[i] = dBest
		sol.DistWorst[i] = dWorst

		if total := dBest + dWorst; total > 0 {
			sol.Scores[i] = dWorst / total
		} else {
			sol.Scores[i] = 0.5
		}
	}

	return sol, nil
}

func validate(matrix [][]float64, criteria []Criterion) error {
	if len(criteria) == 0 {
		return ErrEmptyCriteria
	}
	for _, c := range criteria {
		if math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) || c.Weight < 0 {
			return fmt.Errorf("%w: %s = %v", ErrNegativeWeight, c.Name, c.Weight)
		}
	}
	for i, row := range matrix {
		if len(row) != len(criteria) {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrShapeMismatch, i, len(row), len(criteria))
		}
		for j, v := range row {
			if math.IsNaN(v) {
				return fmt.Errorf("%w: row %d, criterion %s", ErrNaNValue, i, criteria[j].Name)
			}
		}
	}
	return nil
}

// ideals picks the best and worst value of every column according to its polarity
func ideals(matrix [][]float64, criteria []Criterion) (best, worst []float64) {
	best = make([]float64, len(criteria))
	worst = make([]float64, len(criteria))
	for j, c := range criteria {
		best[j], worst[j] = matrix[0][j], matrix[0][j]
		for _, row := range matrix[1:] {
			if c.better(row[j], best[j]) {
				best[j] = row[j]
			}
			if c.better(worst[j], row[j]) {
				worst[j] = row[j]
			}
		}
	}
	return best, worst
}

// clampInfinite copies matrix, replacing ±Inf by ±2·B where B is the largest finite
// magnitude in the column (1 when there is none)
func clampInfinite(matrix [][]float64, n int) [][]float64 {
	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		out[i] = append([]float64(nil), row...)
	}

	for j := 0; j < n; j++ {
		bound, hasInf := 0.0, false
		for _, row := range matrix {
			if math.IsInf(row[j], 0) {
				hasInf = true
				continue
			}
			bound = math.Max(bound, math.Abs(row[j]))
		}
		if !hasInf {
			continue
		}
		if bound == 0 {
			bound = 1
		}
		for _, row := range out {
			switch {
			case math.IsInf(row[j], 1):
				row[j] = 2 * bound
			case math.IsInf(row[j], -1):
				row[j] = -2 * bound
			}
		}
	}
	return out
}
