package search

import (
	"sort"
	"strings"

	"github.com/bastiangx/mapsearch/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Node is a graph node as the index sees it. Title is optional.
type Node struct {
	ID    string
	Title string
	Notes []string
}

// Edge is a graph edge. Edges carry annotations but no title.
type Edge struct {
	ID     string
	Source string
	Target string
	Notes  []string
}

// TextExtractor produces the searchable annotation text of an entity.
// Hosts override it to make other fields searchable.
type TextExtractor interface {
	NodeText(n Node) string
	EdgeText(e Edge) string
}

// DefaultExtractor joins an entity's notes with newlines.
type DefaultExtractor struct{}

func (DefaultExtractor) NodeText(n Node) string { return strings.Join(n.Notes, "\n") }
func (DefaultExtractor) EdgeText(e Edge) string { return strings.Join(e.Notes, "\n") }

// tagPostings lists the entities annotated with one tag.
type tagPostings struct {
	nodes IDSet
	edges IDSet
}

// fullName is one titled node, keyed by its folded title.
type fullName struct {
	lower   string
	display string
	id      string
}

// Snapshot is an immutable set of indices built from one entity set.
// It is safe for concurrent readers; a nil Snapshot behaves as an empty one.
type Snapshot struct {
	tags      *patricia.Trie // tag -> *tagPostings
	labels    *patricia.Trie // word or full title -> IDSet
	wordNames *patricia.Trie // word -> []string display titles
	fullNames map[string]string
	names     []fullName // sorted by lower, then id

	tagCount   int
	labelCount int
	nodeCount  int
	edgeCount  int
}

// FullName returns the display title stored for a node id.
func (s *Snapshot) FullName(id string) (string, bool) {
	if s == nil {
		return "", false
	}
	title, ok := s.fullNames[id]
	return title, ok
}

// Stats returns index sizes, mainly for logging.
func (s *Snapshot) Stats() map[string]int {
	if s == nil {
		return map[string]int{"tags": 0, "labels": 0, "names": 0, "nodes": 0, "edges": 0}
	}
	return map[string]int{
		"tags":   s.tagCount,
		"labels": s.labelCount,
		"names":  len(s.fullNames),
		"nodes":  s.nodeCount,
		"edges":  s.edgeCount,
	}
}

// Builder turns entity sets into snapshots. A Builder holds no state
// between calls; every Build starts from scratch.
type Builder struct {
	extractor TextExtractor
	stopWords StopWords
}

// NewBuilder returns a builder using extractor and stopWords.
// Nil arguments select DefaultExtractor and DefaultStopWords.
func NewBuilder(extractor TextExtractor, stopWords StopWords) *Builder {
	if extractor == nil {
		extractor = DefaultExtractor{}
	}
	if stopWords == nil {
		stopWords = DefaultStopWords()
	}
	return &Builder{extractor: extractor, stopWords: stopWords}
}

// Build indexes nodes and edges with the default stop words.
func Build(nodes []Node, edges []Edge, extractor TextExtractor) *Snapshot {
	return NewBuilder(extractor, nil).Build(nodes, edges)
}

// Build indexes nodes and edges into a new snapshot.
func (b *Builder) Build(nodes []Node, edges []Edge) *Snapshot {
	tags := make(map[string]*tagPostings)
	labels := make(map[string]IDSet)
	wordNames := make(map[string][]string)
	wordNameSeen := make(map[string]map[string]bool)
	fullNames := make(map[string]string)

	posting := func(tag string) *tagPostings {
		p, ok := tags[tag]
		if !ok {
			p = &tagPostings{nodes: NewIDSet(), edges: NewIDSet()}
			tags[tag] = p
		}
		return p
	}
	addLabel := func(key, id string) {
		set, ok := labels[key]
		if !ok {
			set = NewIDSet()
			labels[key] = set
		}
		set.Add(id)
	}

	for _, n := range nodes {
		for _, tag := range ExtractHashtags(b.extractor.NodeText(n)) {
			posting(tag).nodes.Add(n.ID)
		}

		title := strings.TrimSpace(utils.NFC(n.Title))
		if title == "" {
			continue
		}
		fullNames[n.ID] = title

		lower := strings.ToLower(title)
		addLabel(lower, n.ID)
		for _, word := range strings.Fields(lower) {
			if b.stopWords.Contains(word) {
				continue
			}
			addLabel(word, n.ID)
			if wordNameSeen[word] == nil {
				wordNameSeen[word] = make(map[string]bool)
			}
			if !wordNameSeen[word][title] {
				wordNameSeen[word][title] = true
				wordNames[word] = append(wordNames[word], title)
			}
		}
	}

	for _, e := range edges {
		for _, tag := range ExtractHashtags(b.extractor.EdgeText(e)) {
			posting(tag).edges.Add(e.ID)
		}
	}

	snap := &Snapshot{
		tags:       patricia.NewTrie(),
		labels:     patricia.NewTrie(),
		wordNames:  patricia.NewTrie(),
		fullNames:  fullNames,
		names:      make([]fullName, 0, len(fullNames)),
		tagCount:   len(tags),
		labelCount: len(labels),
		nodeCount:  len(nodes),
		edgeCount:  len(edges),
	}
	for tag, p := range tags {
		snap.tags.Insert(patricia.Prefix(tag), p)
	}
	for key, ids := range labels {
		snap.labels.Insert(patricia.Prefix(key), ids)
	}
	for word, titles := range wordNames {
		snap.wordNames.Insert(patricia.Prefix(word), titles)
	}
	for id, title := range fullNames {
		snap.names = append(snap.names, fullName{lower: strings.ToLower(title), display: title, id: id})
	}
	sort.Slice(snap.names, func(i, j int) bool {
		if snap.names[i].lower != snap.names[j].lower {
			return snap.names[i].lower < snap.names[j].lower
		}
		return snap.names[i].id < snap.names[j].id
	})

	log.Debugf("Built search snapshot: %d nodes, %d edges, %d tags, %d labels",
		snap.nodeCount, snap.edgeCount, snap.tagCount, snap.labelCount)
	return snap
}
