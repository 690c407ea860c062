// Package graph loads the editor's graph documents and turns them into the
// node and edge values the search index consumes.
package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/mapsearch/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateID is returned when two nodes, or two edges, share an id.
var ErrDuplicateID = errors.New("duplicate entity id")

// Document is a graph as stored by the editor.
type Document struct {
	Nodes []search.Node
	Edges []search.Edge
}

// rawEntity accepts both shapes the editor has written over time: a single
// "note" string and a "notes" list.
type rawEntity struct {
	ID     string   `json:"id" yaml:"id" toml:"id"`
	Title  string   `json:"title" yaml:"title" toml:"title"`
	Source string   `json:"source" yaml:"source" toml:"source"`
	Target string   `json:"target" yaml:"target" toml:"target"`
	Note   string   `json:"note" yaml:"note" toml:"note"`
	Notes  []string `json:"notes" yaml:"notes" toml:"notes"`
}

type rawDocument struct {
	Nodes []rawEntity `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges []rawEntity `json:"edges" yaml:"edges" toml:"edges"`
}

func (r rawEntity) notes() []string {
	notes := make([]string, 0, len(r.Notes)+1)
	if strings.TrimSpace(r.Note) != "" {
		notes = append(notes, r.Note)
	}
	for _, n := range r.Notes {
		if strings.TrimSpace(n) != "" {
			notes = append(notes, n)
		}
	}
	return notes
}

// Load reads and decodes a graph document, picking the decoder from the extension.
func Load(path string) (*Document, error) {
	format, err := ValidateFile(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	log.Debugf("Loaded graph document %s: %d nodes, %d edges", path, len(doc.Nodes), len(doc.Edges))
	return doc, nil
}

// Decode parses data in the given format.
func Decode(data []byte, format FileFormat) (*Document, error) {
	var raw rawDocument

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	return raw.document()
}

func (raw rawDocument) document() (*Document, error) {
	doc := &Document{
		Nodes: make([]search.Node, 0, len(raw.Nodes)),
		Edges: make([]search.Edge, 0, len(raw.Edges)),
	}

	nodeIDs := make(map[string]bool, len(raw.Nodes))
	for _, r := range raw.Nodes {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if nodeIDs[id] {
			return nil, fmt.Errorf("%w: node %q", ErrDuplicateID, id)
		}
		nodeIDs[id] = true
		doc.Nodes = append(doc.Nodes, search.Node{ID: id, Title: r.Title, Notes: r.notes()})
	}

	edgeIDs := make(map[string]bool, len(raw.Edges))
	for _, r := range raw.Edges {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if edgeIDs[id] {
			return nil, fmt.Errorf("%w: edge %q", ErrDuplicateID, id)
		}
		edgeIDs[id] = true
		if !nodeIDs[r.Source] || !nodeIDs[r.Target] {
			log.Warnf("Edge %s references a missing node (%s -> %s)", id, r.Source, r.Target)
		}
		doc.Edges = append(doc.Edges, search.Edge{ID: id, Source: r.Source, Target: r.Target, Notes: r.notes()})
	}
	return doc, nil
}
