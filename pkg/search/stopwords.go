package search

import "strings"

var defaultStopWords = []string{
	"a", "an", "and", "as", "at", "by", "for", "from", "in", "into",
	"is", "of", "on", "or", "over", "the", "to", "under", "upon", "with",
	"da", "de", "del", "der", "des", "di", "du", "el", "la", "le",
	"les", "los", "van", "von", "y",
}

// StopWords is a set of low-signal words kept out of the label index.
type StopWords map[string]struct{}

// DefaultStopWords returns a fresh copy of the builtin set.
func DefaultStopWords() StopWords {
	return NewStopWords()
}

// NewStopWords returns the builtin set extended with extra words.
func NewStopWords(extra ...string) StopWords {
	sw := make(StopWords, len(defaultStopWords)+len(extra))
	for _, w := range defaultStopWords {
		sw[w] = struct{}{}
	}
	for _, w := range extra {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			sw[w] = struct{}{}
		}
	}
	return sw
}

// Contains reports whether word (already lowercase) is a stop word.
func (sw StopWords) Contains(word string) bool {
	_, ok := sw[word]
	return ok
}
