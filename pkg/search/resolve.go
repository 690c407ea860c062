package search

import (
	"strings"

	"github.com/bastiangx/mapsearch/internal/utils"
)

// Query tokenizes input and resolves it.
func (s *Snapshot) Query(input string) Result {
	return s.Resolve(TokenizeQuery(input))
}

// Resolve returns the nodes and edges matched by every token.
//
// Two or more plain tokens are first tried as one title phrase: an exact
// title match, else a title starting with the phrase, returns that single
// node and no edges. Otherwise each token is resolved on its own and the
// results are intersected. A token matching nothing empties the result.
func (s *Snapshot) Resolve(tokens []string) Result {
	if s == nil || len(tokens) == 0 {
		return emptyResult()
	}

	folded := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok = utils.Fold(tok); tok != "" {
			folded = append(folded, tok)
		}
	}
	if len(folded) == 0 {
		return emptyResult()
	}

	if id, ok := s.matchPhrase(folded); ok {
		return Result{NodeIDs: NewIDSet(id), EdgeIDs: NewIDSet()}
	}

	var acc Result
	for i, tok := range folded {
		r := s.resolveToken(tok)
		if i == 0 {
			acc = r
		} else {
			acc = Result{
				NodeIDs: acc.NodeIDs.Intersect(r.NodeIDs),
				EdgeIDs: acc.EdgeIDs.Intersect(r.EdgeIDs),
			}
		}
		if acc.Empty() {
			break
		}
	}
	return acc
}

// matchPhrase implements the unquoted multi-word shortcut.
func (s *Snapshot) matchPhrase(tokens []string) (string, bool) {
	if len(tokens) < 2 {
		return "", false
	}
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "#") || strings.HasPrefix(tok, `"`) {
			return "", false
		}
	}

	phrase := strings.Join(tokens, " ")
	if exact := s.namesEqual(phrase); len(exact) > 0 {
		return exact[0].id, true
	}
	if prefixed := s.namesWithPrefix(phrase); len(prefixed) > 0 {
		return prefixed[0].id, true
	}
	return "", false
}

func (s *Snapshot) resolveToken(tok string) Result {
	r := emptyResult()

	switch {
	case utils.IsQuoted(tok):
		for _, name := range s.namesEqual(utils.Unquote(tok)) {
			r.NodeIDs.Add(name.id)
		}
	case strings.HasPrefix(tok, "#"):
		s.collectTags(strings.TrimLeft(tok, "#"), &r)
	default:
		s.collectTags(tok, &r)
		for _, entry := range searchTrie(s.labels, tok) {
			r.NodeIDs.AddAll(entry.item.(IDSet))
		}
	}
	return r
}

func (s *Snapshot) collectTags(prefix string, r *Result) {
	for _, entry := range searchTrie(s.tags, prefix) {
		p := entry.item.(*tagPostings)
		r.NodeIDs.AddAll(p.nodes)
		r.EdgeIDs.AddAll(p.edges)
	}
}
