package embedding

import (
	"fmt"
	"sort"
)

// Reduction names an element-wise reduction applied across one axis of a
// matrix (token axis in the aggregator, sentence axis for summary
// embeddings). The set is closed; values are validated at the boundary with
// ParseReduction and dispatched by switch.
type Reduction string

const (
	ReductionMean   Reduction = "mean"
	ReductionMin    Reduction = "min"
	ReductionMedian Reduction = "median"
	ReductionMax    Reduction = "max"
)

// ParseReduction validates s as one of the four named reductions.
func ParseReduction(s string) (Reduction, error) {
	switch Reduction(s) {
	case ReductionMean, ReductionMin, ReductionMedian, ReductionMax:
		return Reduction(s), nil
	default:
		return "", fmt.Errorf("invalid reduction %q: must be one of mean, min, median, max", s)
	}
}

// Apply reduces matrix element-wise across the row axis, returning one value
// per column. Rows must be non-empty and of equal width.
func (r Reduction) Apply(matrix [][]float32) ([]float32, error) {
	if len(matrix) == 0 {
		return nil, fmt.Errorf("cannot reduce empty matrix")
	}
	width := len(matrix[0])
	for i, row := range matrix {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has width %d, expected %d", i, len(row), width)
		}
	}

	out := make([]float32, width)
	switch r {
	case ReductionMean:
		for _, row := range matrix {
			for j, v := range row {
				out[j] += v
			}
		}
		n := float32(len(matrix))
		for j := range out {
			out[j] /= n
		}
	case ReductionMin:
		copy(out, matrix[0])
		for _, row := range matrix[1:] {
			for j, v := range row {
				if v < out[j] {
					out[j] = v
				}
			}
		}
	case ReductionMax:
		copy(out, matrix[0])
		for _, row := range matrix[1:] {
			for j, v := range row {
				if v > out[j] {
					out[j] = v
				}
			}
		}
	case ReductionMedian:
		column := make([]float64, len(matrix))
		for j := 0; j < width; j++ {
			for i, row := range matrix {
				column[i] = float64(row[j])
			}
			sort.Float64s(column)
			mid := len(column) / 2
			if len(column)%2 == 0 {
				out[j] = float32((column[mid-1] + column[mid]) / 2)
			} else {
				out[j] = float32(column[mid])
			}
		}
	default:
		return nil, fmt.Errorf("invalid reduction %q", string(r))
	}
	return out, nil
}
