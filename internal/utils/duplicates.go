package utils

import (
	"strings"
)

// SuggestionFilter drops repeated strings while keeping first-seen order.
// Comparison is case-insensitive.
type SuggestionFilter struct {
	seenWords map[string]bool
}

// NewSuggestionFilter creates a new filter. Any excluded words are treated as already seen.
func NewSuggestionFilter(excluded ...string) *SuggestionFilter {
	seenWords := make(map[string]bool, len(excluded))
	for _, w := range excluded {
		seenWords[strings.ToLower(w)] = true
	}
	return &SuggestionFilter{seenWords: seenWords}
}

// ShouldInclude checks if a word should be included in results (not a duplicate)
// Returns true if the word should be included, false if it's a duplicate
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	lowerWord := strings.ToLower(word)
	if f.seenWords[lowerWord] {
		return false
	}
	f.seenWords[lowerWord] = true
	return true
}

// Len returns how many distinct words the filter has accepted or excluded.
func (f *SuggestionFilter) Len() int {
	return len(f.seenWords)
}
