// Package engine holds the active search snapshot for a running host and
// replaces it when the graph document changes.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bastiangx/mapsearch/internal/logger"
	"github.com/bastiangx/mapsearch/pkg/graph"
	"github.com/bastiangx/mapsearch/pkg/search"
	"github.com/charmbracelet/log"
)

// ErrNoDocument is returned by Reload before any document was loaded.
var ErrNoDocument = errors.New("no graph document loaded")

// Engine serves queries from the most recently built snapshot. Rebuilds are
// serialized; readers never block and always see a complete snapshot.
type Engine struct {
	builder  *search.Builder
	current  atomic.Pointer[search.Snapshot]
	rebuilds atomic.Int64

	mu   sync.Mutex // serializes rebuilds and guards path
	path string

	logger *log.Logger
}

// New returns an engine with an empty snapshot. A nil builder uses the defaults.
func New(builder *search.Builder) *Engine {
	if builder == nil {
		builder = search.NewBuilder(nil, nil)
	}
	e := &Engine{
		builder: builder,
		logger:  logger.New("engine"),
	}
	e.current.Store(builder.Build(nil, nil))
	return e
}

// Snapshot returns the active snapshot.
func (e *Engine) Snapshot() *search.Snapshot {
	return e.current.Load()
}

// Rebuild indexes doc and makes the result the active snapshot.
func (e *Engine) Rebuild(doc *graph.Document) *search.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rebuildLocked(doc)
}

func (e *Engine) rebuildLocked(doc *graph.Document) *search.Snapshot {
	var snap *search.Snapshot
	if doc == nil {
		snap = e.builder.Build(nil, nil)
	} else {
		snap = e.builder.Build(doc.Nodes, doc.Edges)
	}
	e.current.Store(snap)
	n := e.rebuilds.Add(1)
	e.logger.Debug("Swapped snapshot", "rebuild", n, "nodes", snap.Stats()["nodes"], "edges", snap.Stats()["edges"])
	return snap
}

// LoadFile loads the graph document at path and rebuilds from it. On error
// the previous snapshot stays active.
func (e *Engine) LoadFile(path string) error {
	doc, err := graph.Load(path)
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.path = path
	e.rebuildLocked(doc)
	return nil
}

// Reload re-reads the last document passed to LoadFile.
func (e *Engine) Reload() error {
	e.mu.Lock()
	path := e.path
	e.mu.Unlock()

	if path == "" {
		return ErrNoDocument
	}
	return e.LoadFile(path)
}

// Path returns the document path of the last successful LoadFile.
func (e *Engine) Path() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.path
}

func (e *Engine) Suggest(rawInput string, limit int) []string {
	return e.current.Load().Suggest(rawInput, limit)
}

func (e *Engine) Resolve(tokens []string) search.Result {
	return e.current.Load().Resolve(tokens)
}

func (e *Engine) Query(input string) search.Result {
	return e.current.Load().Query(input)
}

// Stats returns the active snapshot's stats plus the rebuild count.
func (e *Engine) Stats() map[string]int {
	stats := e.current.Load().Stats()
	stats["rebuilds"] = int(e.rebuilds.Load())
	return stats
}

var _ search.ISearcher = (*Engine)(nil)
