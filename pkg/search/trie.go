package search

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// trieEntry is one key/item pair found under a prefix.
type trieEntry struct {
	key  string
	item patricia.Item
}

// searchTrie returns every entry whose key starts with prefix, sorted by key.
func searchTrie(trie *patricia.Trie, prefix string) []trieEntry {
	if trie == nil {
		return nil
	}

	var entries []trieEntry
	err := trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		entries = append(entries, trieEntry{key: string(p), item: item})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})
	return entries
}

// namesWithPrefix returns the full-name entries whose folded title starts with
// prefix, in sorted order.
func (s *Snapshot) namesWithPrefix(prefix string) []fullName {
	start := sort.Search(len(s.names), func(i int) bool {
		return s.names[i].lower >= prefix
	})
	end := start
	for end < len(s.names) && strings.HasPrefix(s.names[end].lower, prefix) {
		end++
	}
	return s.names[start:end]
}

// namesEqual returns the full-name entries whose folded title equals title.
func (s *Snapshot) namesEqual(title string) []fullName {
	matches := s.namesWithPrefix(title)
	end := 0
	for end < len(matches) && matches[end].lower == title {
		end++
	}
	return matches[:end]
}
