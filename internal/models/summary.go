package models

import "fmt"

// SummaryRequest is the input for the summary endpoints. Pointer fields
// distinguish "not provided" from an explicit zero so server-side defaults
// apply only when the caller omitted the field.
type SummaryRequest struct {
	Text         string   `json:"text"`
	Ratio        *float64 `json:"ratio,omitempty"`
	NumSentences int      `json:"num_sentences,omitempty"`
	MinLength    *int     `json:"min_length,omitempty"`
	MaxLength    *int     `json:"max_length,omitempty"`
	UseFirst     *bool    `json:"use_first,omitempty"`
	Algorithm    string   `json:"algorithm,omitempty"`
	Aggregate    string   `json:"aggregate,omitempty"`
}

// Validate checks request fields that do not depend on pipeline configuration.
func (r *SummaryRequest) Validate() error {
	if r.Text == "" {
		return fmt.Errorf("text is required")
	}
	if r.Ratio != nil && (*r.Ratio <= 0 || *r.Ratio > 1) {
		return fmt.Errorf("ratio must be in (0, 1], got %v", *r.Ratio)
	}
	if r.NumSentences < 0 {
		return fmt.Errorf("num_sentences must not be negative, got %d", r.NumSentences)
	}
	return nil
}

// SummaryResponse carries an extractive summary.
type SummaryResponse struct {
	ID            string `json:"id"`
	Summary       string `json:"summary"`
	SentenceCount int    `json:"sentence_count"`
	ElapsedMS     int64  `json:"elapsed_ms"`
}

// EmbeddingResponse carries selected sentence embeddings. When the request
// asked for an aggregate, Vector holds the single reduced vector and Vectors
// is omitted.
type EmbeddingResponse struct {
	ID         string      `json:"id"`
	Vectors    [][]float32 `json:"vectors,omitempty"`
	Vector     []float32   `json:"vector,omitempty"`
	Dimensions int         `json:"dimensions"`
}

// FrequencyRequest is the input for the frequency fallback endpoint.
type FrequencyRequest struct {
	Text         string `json:"text"`
	MaxSentences int    `json:"max_sentences"`
}

// Validate rejects missing text and non-positive sentence counts before any
// work happens.
func (r *FrequencyRequest) Validate() error {
	if r.Text == "" {
		return fmt.Errorf("text is required")
	}
	if r.MaxSentences <= 0 {
		return fmt.Errorf("max_sentences must be positive, got %d", r.MaxSentences)
	}
	return nil
}

// FrequencyResponse carries the fallback summarizer's selected sentences in
// original document order.
type FrequencyResponse struct {
	ID        string   `json:"id"`
	Sentences []string `json:"sentences"`
}
