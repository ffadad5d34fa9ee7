package cluster

import (
	"math"
	"math/rand"
)

const maxKMeansIterations = 100

// kmeansSelect runs Lloyd's algorithm with k-means++ initialization and
// returns, for each cluster, the index of the vector nearest its centroid.
func kmeansSelect(vectors [][]float32, k int, rng *rand.Rand) []int {
	centroids := kmeansPlusPlusInit(vectors, k, rng)
	assignments := make([]int, len(vectors))

	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, v := range vectors {
			best := nearestCentroid(v, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}
		recomputeCentroids(vectors, assignments, centroids)
	}

	selected := make([]int, 0, k)
	for c := range centroids {
		best := -1
		bestDist := math.Inf(1)
		for i, v := range vectors {
			if assignments[i] != c {
				continue
			}
			if d := squaredDistance(v, centroids[c]); d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best >= 0 {
			selected = append(selected, best)
		}
	}
	return dedupe(selected)
}

// kmeansPlusPlusInit seeds k centroids: the first uniformly at random, the
// rest weighted by squared distance to the nearest existing centroid.
func kmeansPlusPlusInit(vectors [][]float32, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, toFloat64(vectors[rng.Intn(len(vectors))]))

	dists := make([]float64, len(vectors))
	for len(centroids) < k {
		var total float64
		for i, v := range vectors {
			d := math.Inf(1)
			for _, c := range centroids {
				if dd := squaredDistance(v, c); dd < d {
					d = dd
				}
			}
			dists[i] = d
			total += d
		}
		next := 0
		if total > 0 {
			target := rng.Float64() * total
			var cum float64
			for i, d := range dists {
				cum += d
				if cum >= target {
					next = i
					break
				}
			}
		} else {
			// All vectors coincide with existing centroids.
			next = rng.Intn(len(vectors))
		}
		centroids = append(centroids, toFloat64(vectors[next]))
	}
	return centroids
}

func nearestCentroid(v []float32, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		if d := squaredDistance(v, centroid); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// recomputeCentroids sets each centroid to the mean of its assigned vectors.
// A cluster that lost all members keeps its previous centroid.
func recomputeCentroids(vectors [][]float32, assignments []int, centroids [][]float64) {
	dims := len(centroids[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, dims)
	}
	for i, v := range vectors {
		c := assignments[i]
		counts[c]++
		for j, x := range v {
			sums[c][j] += float64(x)
		}
	}
	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for j := range centroids[c] {
			centroids[c][j] = sums[c][j] / float64(counts[c])
		}
	}
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
