package search

import (
	"strings"

	"github.com/bastiangx/mapsearch/internal/utils"
)

// collector gathers distinct suggestions up to a limit.
type collector struct {
	out    []string
	filter *utils.SuggestionFilter
	limit  int
}

func newCollector(limit int) *collector {
	return &collector{out: []string{}, filter: utils.NewSuggestionFilter(), limit: limit}
}

// add appends s unless it was seen before and reports whether there is room for more.
func (c *collector) add(s string) bool {
	if len(c.out) >= c.limit {
		return false
	}
	if c.filter.ShouldInclude(s) {
		c.out = append(c.out, s)
	}
	return len(c.out) < c.limit
}

// Suggest returns at most limit completions for the query being typed.
//
// Input whose first word starts with '#' (or that contains any '#' word)
// completes the last word against tag names. Several plain words complete
// against whole node titles. A single plain word offers matching tags first,
// then titles containing a word with that prefix.
func (s *Snapshot) Suggest(rawInput string, limit int) []string {
	c := newCollector(limit)
	if s == nil || limit <= 0 {
		return c.out
	}

	input := utils.Fold(rawInput)
	words := strings.Fields(input)
	if len(words) == 0 {
		return c.out
	}

	switch {
	case hasTagWord(words):
		last := strings.TrimLeft(words[len(words)-1], "#")
		if last == "" {
			return c.out
		}
		s.suggestTags(last, c)
	case len(words) > 1:
		phrase := strings.Join(words, " ")
		for _, name := range s.namesWithPrefix(phrase) {
			if !c.add(name.display) {
				break
			}
		}
	default:
		word := words[0]
		if s.suggestTags(word, c) {
			s.suggestWordNames(word, c)
		}
	}
	return c.out
}

// suggestTags adds "#tag" for each tag starting with prefix. It reports
// whether the collector still has room.
func (s *Snapshot) suggestTags(prefix string, c *collector) bool {
	for _, entry := range searchTrie(s.tags, prefix) {
		if !c.add("#" + entry.key) {
			return false
		}
	}
	return true
}

func (s *Snapshot) suggestWordNames(prefix string, c *collector) {
	for _, entry := range searchTrie(s.wordNames, prefix) {
		for _, title := range entry.item.([]string) {
			if !c.add(title) {
				return
			}
		}
	}
}

func hasTagWord(words []string) bool {
	for _, w := range words {
		if strings.HasPrefix(w, "#") {
			return true
		}
	}
	return false
}
