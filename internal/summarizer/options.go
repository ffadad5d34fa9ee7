package summarizer

import (
	"fmt"

	"github.com/hyperjump/youyaku/internal/cluster"
	"github.com/hyperjump/youyaku/internal/embedding"
)

// Options are per-call knobs for the pipeline. Zero values fall back to the
// summarizer's configured defaults; UseFirst is a pointer so an explicit
// false survives defaulting.
type Options struct {
	// Ratio of input sentences to keep; ignored when NumSentences is set.
	Ratio float64
	// MinLength and MaxLength are the strict length bounds (in runes) a
	// sentence must satisfy to enter the pipeline.
	MinLength int
	MaxLength int
	// UseFirst forces inclusion of the first sentence.
	UseFirst *bool
	// Algorithm selects the clustering algorithm.
	Algorithm cluster.Algorithm
	// NumSentences is the explicit cluster count; overrides Ratio when > 0.
	NumSentences int
	// Aggregate, when set, reduces the selected vectors along the sentence
	// axis into one vector. Only meaningful for Embeddings.
	Aggregate embedding.Reduction
}

// normalize fills defaults and validates opts. Validation happens here, before
// any model computation (fail fast on configuration errors).
func (s *Summarizer) normalize(opts Options) (Options, error) {
	if opts.Ratio == 0 {
		opts.Ratio = s.defaults.Ratio
	}
	if opts.Ratio <= 0 || opts.Ratio > 1 {
		return opts, fmt.Errorf("ratio must be in (0, 1], got %v", opts.Ratio)
	}
	if opts.MinLength == 0 {
		opts.MinLength = s.defaults.MinLength
	}
	if opts.MaxLength == 0 {
		opts.MaxLength = s.defaults.MaxLength
	}
	if opts.MinLength < 0 || opts.MaxLength <= opts.MinLength {
		return opts, fmt.Errorf("invalid length bounds (%d, %d)", opts.MinLength, opts.MaxLength)
	}
	if opts.NumSentences < 0 {
		return opts, fmt.Errorf("num sentences must not be negative, got %d", opts.NumSentences)
	}
	if opts.UseFirst == nil {
		opts.UseFirst = &s.defaults.UseFirst
	}
	if opts.Algorithm == "" {
		opts.Algorithm = s.defaults.Algorithm
	}
	if _, err := cluster.ParseAlgorithm(string(opts.Algorithm)); err != nil {
		return opts, err
	}
	if opts.Aggregate != "" {
		if _, err := embedding.ParseReduction(string(opts.Aggregate)); err != nil {
			return opts, err
		}
	}
	return opts, nil
}
