package internal

import (
	"sort"
	"strings"
)

// CategorySuggestion is a set of category labels that differ only by letter
// case or spacing. Because the breakdown keys on the label as stored, each
// variant gets its own row there.
type CategorySuggestion struct {
	Suggested string   `json:"suggested"` // most used variant
	Variants  []string `json:"variants"`  // all labels in the group, most used first
	Count     int      `json:"count"`     // transactions across all variants
}

// SuggestCategoryMerges groups categories by a normalized key and returns
// the groups with more than one variant.
func SuggestCategoryMerges(txs []Transaction) []CategorySuggestion {
	uses := make(map[string]map[string]int) // key -> label -> count
	for _, tx := range txs {
		key := normalizeCategory(tx.Category)
		if uses[key] == nil {
			uses[key] = make(map[string]int)
		}
		uses[key][tx.Category]++
	}

	var suggestions []CategorySuggestion
	for _, labels := range uses {
		if len(labels) < 2 {
			continue
		}
		variants := make([]string, 0, len(labels))
		count := 0
		for label, n := range labels {
			variants = append(variants, label)
			count += n
		}
		sort.Slice(variants, func(i, j int) bool {
			if labels[variants[i]] != labels[variants[j]] {
				return labels[variants[i]] > labels[variants[j]]
			}
			return variants[i] < variants[j]
		})
		suggestions = append(suggestions, CategorySuggestion{
			Suggested: variants[0],
			Variants:  variants,
			Count:     count,
		})
	}

	// Sort by number of affected transactions (descending)
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Count != suggestions[j].Count {
			return suggestions[i].Count > suggestions[j].Count
		}
		return suggestions[i].Suggested < suggestions[j].Suggested
	})
	return suggestions
}

// normalizeCategory lowercases and collapses inner whitespace
func normalizeCategory(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
