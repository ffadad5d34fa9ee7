package embedding

import (
	"context"
	"fmt"

	"github.com/hyperjump/youyaku/internal/models"
)

// Aggregator turns sentences into fixed-size vectors: per-token hidden
// states from the provider, reduced element-wise across the token axis.
type Aggregator struct {
	provider Provider
	cache    *VectorCache
}

// NewAggregator creates an aggregator over provider. cacheSize <= 0 disables
// caching.
func NewAggregator(provider Provider, cacheSize int) *Aggregator {
	a := &Aggregator{provider: provider}
	if cacheSize > 0 {
		a.cache = NewVectorCache(cacheSize)
	}
	return a
}

// EmbedAll returns one vector per sentence, in input order. Every vector has
// the provider's dimension; a provider returning a mismatched width is a
// precondition violation and fails the whole call, as does any provider
// error (no partial results).
func (a *Aggregator) EmbedAll(ctx context.Context, sents []models.Sentence, layer int, reduce Reduction) ([][]float32, error) {
	vectors := make([][]float32, len(sents))
	want := a.provider.Dimensions()
	for i, sent := range sents {
		key := cacheKey(sent.Text, layer, reduce)
		if a.cache != nil {
			if cached, ok := a.cache.Get(key); ok {
				vectors[i] = cached
				continue
			}
		}
		states, err := a.provider.HiddenStates(ctx, sent.Text, layer)
		if err != nil {
			return nil, fmt.Errorf("embed sentence %d: %w", sent.Index, err)
		}
		vec, err := reduce.Apply(states)
		if err != nil {
			return nil, fmt.Errorf("reduce sentence %d: %w", sent.Index, err)
		}
		if len(vec) != want {
			return nil, fmt.Errorf("sentence %d: vector dimension %d, provider reports %d", sent.Index, len(vec), want)
		}
		if a.cache != nil {
			a.cache.Set(key, vec)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func cacheKey(text string, layer int, reduce Reduction) string {
	return fmt.Sprintf("%d|%s|%s", layer, reduce, text)
}
