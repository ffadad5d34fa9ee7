// Package models defines core data structures for sentences, selections, and API payloads.
package models

import "strings"

// Sentence is an immutable span of text plus its index in the filtered
// sentence sequence. Sentences are produced once by the segmenter and never
// mutated; all downstream indices refer to Index.
type Sentence struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// SelectedSentence pairs a selected sentence with its embedding vector.
type SelectedSentence struct {
	Sentence Sentence  `json:"sentence"`
	Vector   []float32 `json:"-"`
}

// SelectionResult is the final output of the selection pipeline: selected
// sentences sorted ascending by original index, duplicate-free.
type SelectionResult []SelectedSentence

// Texts returns the sentence texts in order.
func (r SelectionResult) Texts() []string {
	texts := make([]string, len(r))
	for i, s := range r {
		texts[i] = s.Sentence.Text
	}
	return texts
}

// Vectors returns the sentence vectors in order.
func (r SelectionResult) Vectors() [][]float32 {
	vectors := make([][]float32, len(r))
	for i, s := range r {
		vectors[i] = s.Vector
	}
	return vectors
}

// JoinText joins the selected sentence texts with a single space.
func (r SelectionResult) JoinText() string {
	return strings.Join(r.Texts(), " ")
}
