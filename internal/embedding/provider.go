// Package embedding provides the model provider abstraction, hidden-state
// reduction, and the per-sentence embedding aggregator.
package embedding

import (
	"context"
	"errors"
	"fmt"
)

// ErrSentenceTooLong reports that a sentence exceeds the provider's maximum
// token budget. The whole summarization call fails; there is no partial
// skipping.
var ErrSentenceTooLong = errors.New("sentence exceeds maximum token length")

// Provider produces per-token hidden states for a sentence at a given model
// layer. It is the only external model dependency of the pipeline.
type Provider interface {
	// HiddenStates returns one row per token at the given layer. Negative
	// layers count from the end of the stack (-1 is the last layer).
	HiddenStates(ctx context.Context, text string, layer int) ([][]float32, error)
	// Layers returns the number of hidden layers the provider exposes.
	Layers() int
	// Dimensions returns the hidden-state width.
	Dimensions() int
	Close() error
}

// ResolveLayer maps a possibly negative layer index onto [0, layers).
func ResolveLayer(layer, layers int) (int, error) {
	resolved := layer
	if resolved < 0 {
		resolved = layers + resolved
	}
	if resolved < 0 || resolved >= layers {
		return 0, fmt.Errorf("layer %d out of range for %d-layer model", layer, layers)
	}
	return resolved, nil
}
