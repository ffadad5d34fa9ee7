// Package sentence provides sentence segmentation with length filtering.
package sentence

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/hyperjump/youyaku/internal/models"
)

// Segmenter splits raw text into candidate sentences and filters them by
// length bounds. Boundary detection is delegated to a Punkt-style tokenizer;
// an optional rewriter runs on the body before splitting.
type Segmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
	rewriter  TextRewriter
}

// SegmenterOption configures a Segmenter.
type SegmenterOption func(*Segmenter)

// WithRewriter sets a rewriter applied to the body before splitting (e.g.
// coreference resolution). The default is the identity rewriter.
func WithRewriter(r TextRewriter) SegmenterOption {
	return func(s *Segmenter) {
		if r != nil {
			s.rewriter = r
		}
	}
}

// NewSegmenter creates a segmenter using the English sentence tokenizer.
func NewSegmenter(opts ...SegmenterOption) (*Segmenter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("create sentence tokenizer: %w", err)
	}
	s := &Segmenter{
		tokenizer: tokenizer,
		rewriter:  IdentityRewriter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Segment splits body into sentences and keeps those whose trimmed length is
// strictly between minLength and maxLength (in runes). Surviving sentences
// are indexed by their position in the filtered sequence, which is what all
// downstream stages refer to. An empty result is not an error; it means no
// summary is possible for these bounds.
func (s *Segmenter) Segment(ctx context.Context, body string, minLength, maxLength int) ([]models.Sentence, error) {
	rewritten, err := s.rewriter.Rewrite(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("rewrite body: %w", err)
	}

	var result []models.Sentence
	for _, sent := range s.tokenizer.Tokenize(rewritten) {
		text := strings.TrimSpace(sent.Text)
		n := utf8.RuneCountInString(text)
		if n <= minLength || n >= maxLength {
			continue
		}
		result = append(result, models.Sentence{Text: text, Index: len(result)})
	}
	return result, nil
}
