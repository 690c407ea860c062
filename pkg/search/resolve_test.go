package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	snap := fixtureSnapshot()

	testCases := []struct {
		query       string
		nodes       []string
		edges       []string
		description string
	}{
		{"", nil, nil, "Empty query"},
		{"the ka shrine", []string{"n1"}, nil, "Unquoted exact phrase"},
		{"the ka", []string{"n1"}, nil, "Unquoted phrase prefix"},
		{"old ridge", []string{"n2"}, nil, "Exact phrase beats longer title"},
		{"old outpost", []string{"n3"}, nil, "Phrase miss falls back to AND"},
		{"#myth", []string{"n2", "n3"}, []string{"e1"}, "Hashtag query covers nodes and edges"},
		{"#myst", []string{"n1", "n4"}, nil, "Hashtag prefix"},
		{"#MYTH", []string{"n2", "n3"}, []string{"e1"}, "Case-insensitive"},
		{"#myth #trade", nil, nil, "Conjunctive across tags"},
		{"#myth ridge", []string{"n2", "n3"}, nil, "Tag and word"},
		{"shrine", []string{"n1"}, nil, "Word matches tag and label"},
		{"trade", nil, []string{"e2"}, "Plain word reaches edge tags"},
		{"ka", []string{"n1", "n5"}, nil, "Word prefix"},
		{"nothing here", nil, nil, "No match"},
		{"ridge nothing", nil, nil, "One dead token empties the result"},
		{`"old ridge"`, []string{"n2"}, nil, "Quoted exact title"},
		{`"old ridg"`, nil, nil, "Quoted is not a prefix"},
		{`"old ridge" #outpost`, nil, nil, "Quoted and tag are intersected"},
		{`"old ridge outpost" #outpost`, []string{"n3"}, nil, "Quoted title with its tag"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			res := snap.Query(tc.query)
			assert.Equal(t, NewIDSet(tc.nodes...), res.NodeIDs, "nodes")
			assert.Equal(t, NewIDSet(tc.edges...), res.EdgeIDs, "edges")
		})
	}
}

func TestResolveEmptyTokens(t *testing.T) {
	snap := fixtureSnapshot()

	for _, tokens := range [][]string{nil, {}, {"", "  "}} {
		res := snap.Resolve(tokens)
		assert.Equal(t, NewIDSet(), res.NodeIDs)
		assert.Equal(t, NewIDSet(), res.EdgeIDs)
		assert.True(t, res.Empty())
	}
}

func TestResolveHandTokens(t *testing.T) {
	nodes := []Node{
		{ID: "a", Title: "Old Ridge"},
		{ID: "b", Title: "Old Ridge Outpost"},
	}
	snap := Build(nodes, nil, nil)

	assert.Equal(t, NewIDSet("a"), snap.Resolve([]string{`"old ridge"`}).NodeIDs)
	assert.Equal(t, NewIDSet("a"), snap.Resolve([]string{`"Old Ridge"`}).NodeIDs, "tokens are folded")
	assert.Equal(t, NewIDSet("a", "b"), snap.Resolve([]string{"OLD"}).NodeIDs)
}

func TestResolveHashtagPrefix(t *testing.T) {
	nodes := []Node{
		{ID: "n1", Notes: []string{"#mystery unfolds here"}},
		{ID: "n2", Notes: []string{"#myth retold"}},
	}
	snap := Build(nodes, nil, nil)

	assert.Equal(t, NewIDSet("n1", "n2"), snap.Query("#my").NodeIDs)
	assert.Equal(t, NewIDSet("n1"), snap.Query("#myst").NodeIDs)
}

func TestResolvePhraseFirstMatch(t *testing.T) {
	nodes := []Node{
		{ID: "z", Title: "North Gate Tower"},
		{ID: "y", Title: "North Gate"},
		{ID: "x", Title: "North Gate"},
		{ID: "w", Title: "North Gable"},
	}
	snap := Build(nodes, nil, nil)

	assert.Equal(t, NewIDSet("x"), snap.Query("north gate").NodeIDs, "exact titles win, lowest id first")
	assert.Equal(t, NewIDSet("w"), snap.Query("north ga").NodeIDs, "prefix takes the first title in order")
}

func TestResolveResultsAreCopies(t *testing.T) {
	snap := fixtureSnapshot()

	res := snap.Query("#myth")
	res.NodeIDs.Add("intruder")
	res.EdgeIDs.Add("intruder")

	again := snap.Query("#myth")
	assert.False(t, again.NodeIDs.Has("intruder"))
	assert.False(t, again.EdgeIDs.Has("intruder"))
}

// Adding tokens never grows the result. Queries here avoid the unquoted
// phrase shortcut, which answers with a single title instead.
func TestResolveMonotonic(t *testing.T) {
	snap := fixtureSnapshot()

	queries := [][]string{
		{"#myth", "ridge", "outpost"},
		{"#my", "#myth", "old"},
		{"o", "#outpost", "ridge"},
		{`"old ridge"`, "ridge", "#myth"},
		{"#mystery", "ka", "shrine"},
	}

	for _, tokens := range queries {
		prev := snap.Resolve(tokens[:1])
		for i := 2; i <= len(tokens); i++ {
			cur := snap.Resolve(tokens[:i])
			for id := range cur.NodeIDs {
				assert.True(t, prev.NodeIDs.Has(id), "%v grew nodes with %s", tokens[:i], id)
			}
			for id := range cur.EdgeIDs {
				assert.True(t, prev.EdgeIDs.Has(id), "%v grew edges with %s", tokens[:i], id)
			}
			prev = cur
		}
	}
}

func TestIDSet(t *testing.T) {
	a := NewIDSet("3", "1", "2")
	b := NewIDSet("2", "3", "4")

	assert.Equal(t, []string{"1", "2", "3"}, a.Sorted())
	assert.Equal(t, NewIDSet("2", "3"), a.Intersect(b))
	assert.Equal(t, 3, a.Len(), "intersection leaves operands alone")

	a.AddAll(b)
	assert.Equal(t, []string{"1", "2", "3", "4"}, a.Sorted())
}
