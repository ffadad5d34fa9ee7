package embedding

import (
	"context"
	"fmt"
	"math"
)

// MockProvider is a deterministic provider for tests. Hidden states are
// derived from word hashes so the same text always gets the same matrix, and
// different texts get well-separated matrices.
type MockProvider struct {
	layers     int
	dimensions int
	maxTokens  int
}

// NewMockProvider returns a provider with the given layer count and width.
// maxTokens <= 0 disables the token budget.
func NewMockProvider(layers, dimensions, maxTokens int) *MockProvider {
	if layers <= 0 {
		layers = 12
	}
	if dimensions <= 0 {
		dimensions = 384
	}
	return &MockProvider{layers: layers, dimensions: dimensions, maxTokens: maxTokens}
}

// HiddenStates returns one deterministic row per word of text.
func (p *MockProvider) HiddenStates(ctx context.Context, text string, layer int) ([][]float32, error) {
	resolved, err := ResolveLayer(layer, p.layers)
	if err != nil {
		return nil, err
	}
	words := SplitWords(text)
	if p.maxTokens > 0 && len(words)+2 > p.maxTokens {
		return nil, fmt.Errorf("%w: %d tokens, budget %d", ErrSentenceTooLong, len(words)+2, p.maxTokens)
	}
	if len(words) == 0 {
		words = []string{""}
	}
	states := make([][]float32, len(words))
	for t, word := range words {
		h := HashString(word)
		row := make([]float32, p.dimensions)
		for d := 0; d < p.dimensions; d++ {
			row[d] = float32(math.Sin(float64(h%997+1)*float64(resolved+1)*float64(d+1)*0.1) * 0.1)
		}
		states[t] = row
	}
	return states, nil
}

// Layers returns the mock layer count.
func (p *MockProvider) Layers() int {
	return p.layers
}

// Dimensions returns the mock hidden-state width.
func (p *MockProvider) Dimensions() int {
	return p.dimensions
}

// Close is a no-op for MockProvider.
func (p *MockProvider) Close() error {
	return nil
}
