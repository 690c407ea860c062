package search

import "sort"

// IDSet is a set of entity ids.
type IDSet map[string]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Len() int {
	return len(s)
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AddAll adds every id of other to s.
func (s IDSet) AddAll(other IDSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Intersect returns a new set with the ids present in both s and other.
func (s IDSet) Intersect(other IDSet) IDSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(IDSet, len(small))
	for id := range small {
		if large.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Result is the outcome of resolving a query.
type Result struct {
	NodeIDs IDSet
	EdgeIDs IDSet
}

func emptyResult() Result {
	return Result{NodeIDs: NewIDSet(), EdgeIDs: NewIDSet()}
}

// Empty reports whether nothing matched.
func (r Result) Empty() bool {
	return r.NodeIDs.Len() == 0 && r.EdgeIDs.Len() == 0
}
