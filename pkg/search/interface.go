// Package search indexes the annotations and titles of graph entities and
// answers hashtag, word and place-name queries against them.
//
// A Builder turns the current nodes and edges into a Snapshot. Snapshots are
// never patched: when entities change, the host builds a new one and swaps it
// in. Suggest offers completions while a query is typed, Resolve maps a
// submitted query to node and edge ids. Neither ever fails; unmatched or
// malformed input yields empty results.
package search

// ISearcher defines what hosts query against. *Snapshot implements it, as
// does any holder that swaps snapshots underneath.
type ISearcher interface {
	// Suggest returns up to limit completions for partially typed input
	Suggest(rawInput string, limit int) []string

	// Resolve returns the entities matched by already tokenized input
	Resolve(tokens []string) Result

	// Query tokenizes input and resolves it
	Query(input string) Result

	// Stats returns index sizes
	Stats() map[string]int
}

var _ ISearcher = (*Snapshot)(nil)
