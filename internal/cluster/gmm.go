package cluster

import (
	"math"
	"math/rand"
)

const (
	maxGMMIterations = 50
	varianceFloor    = 1e-6
)

// gmmSelect fits a diagonal-covariance Gaussian mixture with EM and returns,
// for each component, the index of the vector with the highest posterior
// responsibility.
func gmmSelect(vectors [][]float32, k int, rng *rand.Rand) []int {
	n := len(vectors)
	dims := len(vectors[0])

	means := kmeansPlusPlusInit(vectors, k, rng)
	variances := make([][]float64, k)
	global := globalVariance(vectors)
	for c := range variances {
		variances[c] = make([]float64, dims)
		copy(variances[c], global)
	}
	weights := make([]float64, k)
	for c := range weights {
		weights[c] = 1.0 / float64(k)
	}

	resp := make([][]float64, n)
	for i := range resp {
		resp[i] = make([]float64, k)
	}
	logp := make([]float64, k)

	for iter := 0; iter < maxGMMIterations; iter++ {
		// E-step: posterior responsibilities in the log domain.
		for i, v := range vectors {
			for c := 0; c < k; c++ {
				logp[c] = math.Log(weights[c]) + logGaussian(v, means[c], variances[c])
			}
			norm := logSumExp(logp)
			for c := 0; c < k; c++ {
				resp[i][c] = math.Exp(logp[c] - norm)
			}
		}

		// M-step: re-estimate weights, means, and diagonal variances.
		for c := 0; c < k; c++ {
			var total float64
			for i := 0; i < n; i++ {
				total += resp[i][c]
			}
			if total < varianceFloor {
				continue
			}
			weights[c] = total / float64(n)
			for j := 0; j < dims; j++ {
				var mean float64
				for i, v := range vectors {
					mean += resp[i][c] * float64(v[j])
				}
				mean /= total
				var variance float64
				for i, v := range vectors {
					d := float64(v[j]) - mean
					variance += resp[i][c] * d * d
				}
				means[c][j] = mean
				variances[c][j] = variance/total + varianceFloor
			}
		}
	}

	selected := make([]int, 0, k)
	for c := 0; c < k; c++ {
		best := 0
		bestResp := -1.0
		for i := 0; i < n; i++ {
			if resp[i][c] > bestResp {
				bestResp = resp[i][c]
				best = i
			}
		}
		selected = append(selected, best)
	}
	return dedupe(selected)
}

// logGaussian returns the log density of v under a diagonal Gaussian.
func logGaussian(v []float32, mean, variance []float64) float64 {
	sum := 0.0
	for j, x := range v {
		d := float64(x) - mean[j]
		sum += math.Log(2*math.Pi*variance[j]) + d*d/variance[j]
	}
	return -0.5 * sum
}

// logSumExp returns log(sum(exp(xs))) stably.
func logSumExp(xs []float64) float64 {
	max := math.Inf(-1)
	for _, x := range xs {
		if x > max {
			max = x
		}
	}
	if math.IsInf(max, -1) {
		return max
	}
	var sum float64
	for _, x := range xs {
		sum += math.Exp(x - max)
	}
	return max + math.Log(sum)
}

// globalVariance returns the per-dimension variance over all vectors, with a
// floor so degenerate dimensions stay usable.
func globalVariance(vectors [][]float32) []float64 {
	dims := len(vectors[0])
	n := float64(len(vectors))
	mean := make([]float64, dims)
	for _, v := range vectors {
		for j, x := range v {
			mean[j] += float64(x)
		}
	}
	for j := range mean {
		mean[j] /= n
	}
	variance := make([]float64, dims)
	for _, v := range vectors {
		for j, x := range v {
			d := float64(x) - mean[j]
			variance[j] += d * d
		}
	}
	for j := range variance {
		variance[j] = variance[j]/n + varianceFloor
	}
	return variance
}
