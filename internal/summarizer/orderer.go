package summarizer

import (
	"sort"

	"github.com/hyperjump/youyaku/internal/models"
)

// Order restores selected sentence indices to original document order,
// pairing each with its sentence and vector. Duplicates are dropped. When
// useFirst is set, index 0 is included even if the selector did not pick it
// (including the case of an empty selection).
func Order(sents []models.Sentence, vectors [][]float32, selected []int, useFirst bool) models.SelectionResult {
	seen := make(map[int]bool, len(selected)+1)
	indices := make([]int, 0, len(selected)+1)
	for _, idx := range selected {
		if idx < 0 || idx >= len(sents) || seen[idx] {
			continue
		}
		seen[idx] = true
		indices = append(indices, idx)
	}
	if useFirst && len(sents) > 0 && !seen[0] {
		indices = append(indices, 0)
	}
	sort.Ints(indices)

	result := make(models.SelectionResult, 0, len(indices))
	for _, idx := range indices {
		result = append(result, models.SelectedSentence{
			Sentence: sents[idx],
			Vector:   vectors[idx],
		})
	}
	return result
}
