// Package frequency implements the word-frequency fallback summarizer. It is
// fully independent of the embedding pipeline and needs no model.
package frequency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/token/stop"
	unicodetokenizer "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
)

// Summarizer scores sentences by summed relative word frequencies and
// greedily picks the top distinct sentences. The word analysis chain
// (tokenize, lowercase, strip English stop words) comes from Bleve.
type Summarizer struct {
	sentTokenizer *sentences.DefaultSentenceTokenizer
	wordTokenizer analysis.Tokenizer
	lowercase     *lowercase.LowerCaseFilter
	stopFilter    *stop.StopTokensFilter
	logger        *zap.Logger
}

// New creates a fallback summarizer.
func New(logger *zap.Logger) (*Summarizer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sentTokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("create sentence tokenizer: %w", err)
	}
	stopWords := analysis.NewTokenMap()
	if err := stopWords.LoadBytes(en.EnglishStopWords); err != nil {
		return nil, fmt.Errorf("load stop words: %w", err)
	}
	return &Summarizer{
		sentTokenizer: sentTokenizer,
		wordTokenizer: unicodetokenizer.NewUnicodeTokenizer(),
		lowercase:     lowercase.NewLowerCaseFilter(),
		stopFilter:    stop.NewStopTokensFilter(stopWords),
		logger:        logger,
	}, nil
}

// Summarize returns up to maxSentences of the highest-scoring sentences of
// input, restored to original order. maxSentences must be positive; asking
// for more sentences than exist is non-fatal (a warning is logged and every
// sentence is returned).
//
// Scoring checks whether each frequency-table word occurs as a substring of
// the original-cased sentence, not as a token. This over-counts partial
// matches ("cat" scores inside "category") and is kept intentionally to
// match established output; see the characterization tests before changing.
func (s *Summarizer) Summarize(input string, maxSentences int) ([]string, error) {
	if maxSentences <= 0 {
		return nil, fmt.Errorf("max sentences must be positive, got %d", maxSentences)
	}

	sents := s.splitSentences(input)
	if len(sents) == 0 {
		return nil, nil
	}
	if maxSentences > len(sents) {
		s.logger.Warn("requested sentence count exceeds available sentences",
			zap.Int("requested", maxSentences),
			zap.Int("available", len(sents)),
		)
	}

	freq := s.wordFrequencies(input)

	type scored struct {
		idx   int
		score float64
	}
	entries := make([]scored, len(sents))
	for i, sent := range sents {
		entries[i].idx = i
		for word, f := range freq {
			if strings.Contains(sent, word) {
				entries[i].score += f
			}
		}
	}

	// Greedy: pick the current maximum, drop its score entry, repeat until
	// enough distinct sentences are collected.
	chosen := make([]int, 0, maxSentences)
	chosenText := make(map[string]bool, maxSentences)
	for len(chosen) < maxSentences && len(entries) > 0 {
		best := 0
		for i, e := range entries {
			if e.score > entries[best].score {
				best = i
			}
		}
		text := sents[entries[best].idx]
		if !chosenText[text] {
			chosenText[text] = true
			chosen = append(chosen, entries[best].idx)
		}
		entries = append(entries[:best], entries[best+1:]...)
	}

	sort.Ints(chosen)
	out := make([]string, len(chosen))
	for i, idx := range chosen {
		out[i] = sents[idx]
	}
	return out, nil
}

// splitSentences returns the trimmed sentences of input with original casing.
func (s *Summarizer) splitSentences(input string) []string {
	var out []string
	for _, sent := range s.sentTokenizer.Tokenize(input) {
		text := strings.TrimSpace(sent.Text)
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

// wordFrequencies builds the relative frequency table: lowercased word tokens
// with punctuation and English stop words removed, each mapped to
// count / total filtered-word count. The table is scoped to one call.
func (s *Summarizer) wordFrequencies(input string) map[string]float64 {
	tokens := s.wordTokenizer.Tokenize([]byte(input))
	tokens = s.lowercase.Filter(tokens)
	tokens = s.stopFilter.Filter(tokens)

	counts := make(map[string]float64)
	total := 0.0
	for _, tok := range tokens {
		counts[string(tok.Term)]++
		total++
	}
	if total == 0 {
		return counts
	}
	for word := range counts {
		counts[word] /= total
	}
	return counts
}
