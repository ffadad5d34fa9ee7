// Package cluster selects representative vectors via seeded k-means or GMM.
package cluster

import (
	"fmt"
	"math"
	"math/rand"
)

// Algorithm names a clustering algorithm. The set is closed and validated at
// the boundary with ParseAlgorithm.
type Algorithm string

const (
	AlgorithmKMeans Algorithm = "kmeans"
	AlgorithmGMM    Algorithm = "gmm"
)

// ParseAlgorithm validates s as a supported clustering algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AlgorithmKMeans, AlgorithmGMM:
		return Algorithm(s), nil
	default:
		return "", fmt.Errorf("invalid algorithm %q: must be kmeans or gmm", s)
	}
}

// Select partitions vectors into K clusters and returns the index of the
// vector nearest each cluster's center. K is numSentences when positive,
// otherwise max(1, round(ratio*len(vectors))), always clamped to
// [1, len(vectors)]. The returned indices are a set: unordered and
// duplicate-free; callers re-sort. The seed is threaded explicitly so that
// identical (vectors, K, algorithm, seed) always produce the same set.
func Select(vectors [][]float32, ratio float64, algorithm Algorithm, numSentences int, seed int64) ([]int, error) {
	if len(vectors) == 0 {
		return nil, nil
	}
	dims := len(vectors[0])
	if dims == 0 {
		return nil, fmt.Errorf("vectors have zero dimension")
	}
	for i, v := range vectors {
		if len(v) != dims {
			return nil, fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), dims)
		}
	}

	k := numSentences
	if k <= 0 {
		k = int(math.Round(ratio * float64(len(vectors))))
	}
	if k < 1 {
		k = 1
	}
	if k > len(vectors) {
		k = len(vectors)
	}

	rng := rand.New(rand.NewSource(seed))
	switch algorithm {
	case AlgorithmKMeans:
		return kmeansSelect(vectors, k, rng), nil
	case AlgorithmGMM:
		return gmmSelect(vectors, k, rng), nil
	default:
		return nil, fmt.Errorf("invalid algorithm %q", string(algorithm))
	}
}

// squaredDistance returns the squared Euclidean distance between a vector
// and a float64 center.
func squaredDistance(v []float32, center []float64) float64 {
	var sum float64
	for i, x := range v {
		d := float64(x) - center[i]
		sum += d * d
	}
	return sum
}

// dedupe returns the unique values of indices, preserving first-seen order.
func dedupe(indices []int) []int {
	seen := make(map[int]bool, len(indices))
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	return out
}
