package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture is a small map: a shrine, a ridge and its outpost, a waterfall,
// an untitled marker, and two roads.
func fixture() ([]Node, []Edge) {
	nodes := []Node{
		{ID: "n1", Title: "The Ka Shrine", Notes: []string{"#mystery unfolds here", "Pilgrims gather. #Shrine"}},
		{ID: "n2", Title: "Old Ridge", Notes: []string{"#myth retold"}},
		{ID: "n3", Title: "Old Ridge Outpost", Notes: []string{"guarded #outpost #myth"}},
		{ID: "n4", Notes: []string{"#mystery", "#MYSTERY again"}},
		{ID: "n5", Title: "  Kaia Falls "},
	}
	edges := []Edge{
		{ID: "e1", Source: "n2", Target: "n3", Notes: []string{"#myth of the road"}},
		{ID: "e2", Source: "n1", Target: "n5", Notes: []string{"#trade route"}},
	}
	return nodes, edges
}

func fixtureSnapshot() *Snapshot {
	nodes, edges := fixture()
	return Build(nodes, edges, nil)
}

func TestBuildStats(t *testing.T) {
	snap := fixtureSnapshot()

	assert.Equal(t, map[string]int{
		"tags":   5, // mystery shrine myth outpost trade
		"labels": 11,
		"names":  4,
		"nodes":  5,
		"edges":  2,
	}, snap.Stats())
}

func TestBuildFullNames(t *testing.T) {
	snap := fixtureSnapshot()

	title, ok := snap.FullName("n5")
	assert.True(t, ok)
	assert.Equal(t, "Kaia Falls", title, "titles are trimmed but keep their case")

	_, ok = snap.FullName("n4")
	assert.False(t, ok, "untitled nodes have no full name")
}

func TestBuildStopWordsOnlyAffectLabels(t *testing.T) {
	snap := fixtureSnapshot()

	// "the" is a stop word: no label of its own, but the full title stays reachable
	assert.False(t, hasKey(searchTrie(snap.labels, "the"), "the"))
	assert.True(t, hasKey(searchTrie(snap.labels, "the"), "the ka shrine"))
	assert.Equal(t, NewIDSet("n1"), snap.Resolve([]string{`"the ka shrine"`}).NodeIDs)
}

func TestBuildCustomStopWords(t *testing.T) {
	nodes, edges := fixture()
	snap := NewBuilder(nil, NewStopWords("old")).Build(nodes, edges)

	assert.Equal(t, []string{}, snap.Suggest("ol", 5))
	// the full titles still start with "old"
	assert.Equal(t, []string{"Old Ridge", "Old Ridge Outpost"}, snap.Suggest("old r", 5))
}

type noteMap map[string]string

func (m noteMap) NodeText(n Node) string { return m[n.ID] }
func (m noteMap) EdgeText(e Edge) string { return m[e.ID] }

func TestBuildCustomExtractor(t *testing.T) {
	nodes, edges := fixture()
	snap := NewBuilder(noteMap{"n5": "#waterfall", "e2": "#waterfall"}, nil).Build(nodes, edges)

	res := snap.Query("#water")
	assert.Equal(t, NewIDSet("n5"), res.NodeIDs)
	assert.Equal(t, NewIDSet("e2"), res.EdgeIDs)

	assert.True(t, snap.Query("#myth").Empty(), "default note text is not consulted")
}

func TestBuildIsFromScratch(t *testing.T) {
	nodes, edges := fixture()
	b := NewBuilder(nil, nil)
	first := b.Build(nodes, edges)
	second := b.Build(nodes[:1], nil)

	assert.Equal(t, 1, second.Stats()["nodes"])
	assert.True(t, second.Query("#myth").Empty())
	assert.False(t, first.Query("#myth").Empty(), "older snapshots are unaffected")
}

func TestNilSnapshot(t *testing.T) {
	var snap *Snapshot
	assert.Equal(t, []string{}, snap.Suggest("old", 5))
	assert.True(t, snap.Query("old").Empty())
	assert.Equal(t, 0, snap.Stats()["nodes"])
}

func TestSnapshotConcurrentReaders(t *testing.T) {
	snap := fixtureSnapshot()
	done := make(chan struct{})
	for w := 0; w < 8; w++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 200; i++ {
				snap.Suggest("o", 5)
				snap.Query(fmt.Sprintf("#myth ridge %d", i%2))
			}
		}()
	}
	for w := 0; w < 8; w++ {
		<-done
	}
	require.Equal(t, NewIDSet("n2", "n3"), snap.Query("#myth ridge").NodeIDs)
}

func hasKey(entries []trieEntry, key string) bool {
	for _, e := range entries {
		if e.key == key {
			return true
		}
	}
	return false
}
