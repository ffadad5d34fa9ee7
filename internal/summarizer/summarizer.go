// Package summarizer composes segmentation, embedding, clustering, and
// ordering into the extractive summarization pipeline.
package summarizer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/youyaku/internal/cluster"
	"github.com/hyperjump/youyaku/internal/embedding"
	"github.com/hyperjump/youyaku/internal/models"
	"github.com/hyperjump/youyaku/internal/sentence"
)

// Defaults are the configured fallbacks applied to zero-valued Options. They
// mirror the summarizer section of the config file.
type Defaults struct {
	Ratio     float64
	MinLength int
	MaxLength int
	UseFirst  bool
	Algorithm cluster.Algorithm
	Seed      int64
	Layer     int
	Reduce    embedding.Reduction
}

// Summarizer is the pipeline facade. All state is per-call; a Summarizer may
// serve concurrent calls as long as the provider is reentrant.
type Summarizer struct {
	segmenter  *sentence.Segmenter
	aggregator *embedding.Aggregator
	defaults   Defaults
	logger     *zap.Logger
}

// New creates a summarizer over the given provider and segmenter.
func New(provider embedding.Provider, segmenter *sentence.Segmenter, defaults Defaults, cacheSize int, logger *zap.Logger) *Summarizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{
		segmenter:  segmenter,
		aggregator: embedding.NewAggregator(provider, cacheSize),
		defaults:   defaults,
		logger:     logger,
	}
}

// Summarize runs the pipeline and joins the selected sentences with a single
// space, preserving original order. When no sentence survives the length
// bounds, it returns "" without error.
func (s *Summarizer) Summarize(ctx context.Context, body string, opts Options) (string, error) {
	result, err := s.Select(ctx, body, opts)
	if err != nil {
		return "", err
	}
	return result.JoinText(), nil
}

// Select runs the pipeline and returns the ordered selection. An empty
// result means no sentence survived the length bounds.
func (s *Summarizer) Select(ctx context.Context, body string, opts Options) (models.SelectionResult, error) {
	opts, err := s.normalize(opts)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, body, opts)
}

// EmbeddingResult holds the vectors of selected sentences in original order.
// Vector is populated only when an aggregate reduction was requested.
type EmbeddingResult struct {
	Vectors [][]float32
	Vector  []float32
}

// Embeddings runs the pipeline and returns the selected sentence vectors.
// With opts.Aggregate set, the vectors are additionally reduced element-wise
// along the sentence axis into EmbeddingResult.Vector. An invalid aggregate
// fails before any model computation. When no sentence survives the length
// bounds, it returns (nil, nil): a no-result, not an error.
func (s *Summarizer) Embeddings(ctx context.Context, body string, opts Options) (*EmbeddingResult, error) {
	opts, err := s.normalize(opts)
	if err != nil {
		return nil, err
	}
	result, err := s.run(ctx, body, opts)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	out := &EmbeddingResult{Vectors: result.Vectors()}
	if opts.Aggregate != "" {
		vec, err := opts.Aggregate.Apply(out.Vectors)
		if err != nil {
			return nil, fmt.Errorf("aggregate embeddings: %w", err)
		}
		out.Vector = vec
	}
	return out, nil
}

// run executes segment → embed → select → order. An empty SelectionResult
// means no sentence survived the bounds.
func (s *Summarizer) run(ctx context.Context, body string, opts Options) (models.SelectionResult, error) {
	sents, err := s.segmenter.Segment(ctx, body, opts.MinLength, opts.MaxLength)
	if err != nil {
		return nil, err
	}
	if len(sents) == 0 {
		s.logger.Debug("no sentences within length bounds",
			zap.Int("min_length", opts.MinLength),
			zap.Int("max_length", opts.MaxLength),
		)
		return nil, nil
	}

	vectors, err := s.aggregator.EmbedAll(ctx, sents, s.defaults.Layer, s.defaults.Reduce)
	if err != nil {
		return nil, err
	}

	selected, err := cluster.Select(vectors, opts.Ratio, opts.Algorithm, opts.NumSentences, s.defaults.Seed)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("cluster selection",
		zap.Int("sentences", len(sents)),
		zap.Int("selected", len(selected)),
		zap.String("algorithm", string(opts.Algorithm)),
	)

	return Order(sents, vectors, selected, *opts.UseFirst), nil
}
