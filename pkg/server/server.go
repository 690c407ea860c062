package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/mapsearch/internal/logger"
	"github.com/bastiangx/mapsearch/internal/utils"
	"github.com/bastiangx/mapsearch/pkg/config"
	"github.com/bastiangx/mapsearch/pkg/engine"
	"github.com/bastiangx/mapsearch/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for graph search
type Server struct {
	engine  *engine.Engine
	config  *config.Config
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	logger  *log.Logger

	requestCount int
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(eng *engine.Engine, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		engine:  eng,
		config:  cfg,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		logger:  logger.New("server"),
	}
}

// Start announces readiness and serves requests until the input ends.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")

	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Client disconnected", "requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			return err
		}
		s.requestCount++

		var request Request
		if err := msgpack.Unmarshal(raw, &request); err != nil {
			s.logger.Warnf("Unmarshaling request: %v", err)
			if err := s.sendError("", "invalid msgpack request", 400); err != nil {
				return err
			}
			continue
		}
		if err := s.handleRequest(request); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the op. Only write failures are returned.
func (s *Server) handleRequest(request Request) error {
	switch request.Op {
	case "suggest":
		return s.handleSuggest(request)
	case "resolve":
		return s.handleResolve(request)
	case "reload":
		if err := s.engine.Reload(); err != nil {
			s.logger.Warnf("Reload failed: %v", err)
			return s.sendError(request.ID, err.Error(), 500)
		}
		return s.send(StatusResponse{ID: request.ID, Status: "ok", Stats: s.engine.Stats()})
	case "stats":
		return s.send(StatusResponse{ID: request.ID, Status: "ok", Stats: s.engine.Stats()})
	case "health":
		return s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		return s.sendError(request.ID, fmt.Sprintf("unknown op: %s", request.Op), 400)
	}
}

func (s *Server) handleSuggest(request Request) error {
	if !utils.IsValidQuery(request.Query, s.config.Server.MaxInput) {
		return s.sendError(request.ID, fmt.Sprintf("query must be a single line of at most %d characters", s.config.Server.MaxInput), 400)
	}
	limit := s.config.ClampLimit(request.Limit)

	start := time.Now()
	words := s.engine.Suggest(request.Query, limit)
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(words))
	suggestions := make([]Suggestion, len(words))
	for i, w := range words {
		suggestions[i] = Suggestion{Text: w, Rank: ranks[i]}
	}

	s.logger.Debug("Suggest", "q", request.Query, "count", len(words), "took", elapsed)
	return s.send(SuggestResponse{
		ID:          request.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleResolve(request Request) error {
	tokens := request.Tokens
	if len(tokens) == 0 {
		if !utils.IsValidQuery(request.Query, s.config.Server.MaxInput) {
			return s.sendError(request.ID, fmt.Sprintf("query must be a single line of at most %d characters", s.config.Server.MaxInput), 400)
		}
		tokens = search.TokenizeQuery(request.Query)
	}

	start := time.Now()
	res := s.engine.Resolve(tokens)
	elapsed := time.Since(start)

	s.logger.Debug("Resolve", "tokens", tokens, "nodes", res.NodeIDs.Len(), "edges", res.EdgeIDs.Len(), "took", elapsed)
	return s.send(ResolveResponse{
		ID:        request.ID,
		NodeIDs:   res.NodeIDs.Sorted(),
		EdgeIDs:   res.EdgeIDs.Sorted(),
		TimeTaken: elapsed.Microseconds(),
	})
}

// send encodes one response message.
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
