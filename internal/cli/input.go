// Package cli handles cmd line input for debugging searches in real-time
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/mapsearch/internal/utils"
	"github.com/bastiangx/mapsearch/pkg/search"
	"github.com/charmbracelet/log"
)

// InputHandler reads queries from stdin and prints both what Suggest would
// offer for them and what Resolve matches.
type InputHandler struct {
	searcher     search.ISearcher
	reader       io.Reader
	suggestLimit int
	maxInput     int
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(searcher search.ISearcher, limit, maxInput int) *InputHandler {
	return &InputHandler{
		searcher:     searcher,
		reader:       os.Stdin,
		suggestLimit: limit,
		maxInput:     maxInput,
	}
}

// Start begins the interface loop. It stops at the end of input.
func (h *InputHandler) Start() error {
	log.Print("mapsearch CLI [BETA]")
	log.Print("type a query and press Enter (#tag, words, \"exact title\"; Ctrl+C to exit):")
	scanner := bufio.NewScanner(h.reader)

	for {
		log.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput runs one query and prints the outcome.
func (h *InputHandler) handleInput(line string) ([]string, search.Result) {
	h.requestCount++

	if !utils.IsValidQuery(line, h.maxInput) {
		log.Errorf("Query too long: %d characters (max %d)", len([]rune(line)), h.maxInput)
		return nil, search.Result{}
	}

	start := time.Now()
	suggestions := h.searcher.Suggest(line, h.suggestLimit)
	tokens := search.TokenizeQuery(line)
	res := h.searcher.Resolve(tokens)
	elapsed := time.Since(start)

	log.Debug("Processed query", "tokens", tokens, "took", elapsed)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions for '%s'", line)
	} else {
		log.Printf("%d suggestions for '%s':", len(suggestions), line)
		for i, s := range suggestions {
			log.Printf("%2d. \033[38;5;75m%s\033[0m", i+1, s)
		}
	}

	if res.Empty() {
		log.Warnf("Nothing matches '%s'", line)
	} else {
		log.Printf("matches: nodes %s | edges %s",
			formatIDs(res.NodeIDs), formatIDs(res.EdgeIDs))
	}
	return suggestions, res
}

func formatIDs(ids search.IDSet) string {
	if ids.Len() == 0 {
		return "-"
	}
	return fmt.Sprintf("%s (%d)", strings.Join(ids.Sorted(), ", "), ids.Len())
}
