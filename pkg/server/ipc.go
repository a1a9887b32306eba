package server

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/screengreen/suggestive-service/internal/utils"
	"github.com/screengreen/suggestive-service/pkg/config"
	"github.com/screengreen/suggestive-service/pkg/suggest"
)

// IPCServer serves completion requests as msgpack frames over a byte
// stream, stdin/stdout by default. One request per frame, answered in
// order.
type IPCServer struct {
	suggester suggest.ISuggester
	cache     *suggest.QueryCache
	cfg       *config.Config
	dec       *msgpack.Decoder
	enc       *msgpack.Encoder
}

// NewIPCServer creates an IPC server over stdin/stdout.
func NewIPCServer(suggester suggest.ISuggester, cfg *config.Config) *IPCServer {
	return NewIPCServerIO(suggester, cfg, os.Stdin, os.Stdout)
}

// NewIPCServerIO creates an IPC server over explicit streams, mainly for
// tests.
func NewIPCServerIO(suggester suggest.ISuggester, cfg *config.Config, r io.Reader, w io.Writer) *IPCServer {
	s := &IPCServer{
		suggester: suggester,
		cfg:       cfg,
		dec:       msgpack.NewDecoder(r),
		enc:       msgpack.NewEncoder(w),
	}
	if cfg.Cache.Enabled {
		s.cache = suggest.NewQueryCache(cfg.Cache.MaxEntries)
	}
	return s
}

// Start processes request frames until the input stream ends.
func (s *IPCServer) Start() error {
	log.Debug("Starting IPC server")

	for {
		var req CompletionRequest
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack frame", 400)
			return err
		}
		s.handleRequest(req)
	}
}

func (s *IPCServer) handleRequest(req CompletionRequest) {
	if len(req.Query) > s.cfg.Server.MaxQueryLen {
		s.sendError(req.ID, "Query exceeds maximum length", 400)
		return
	}

	k := s.cfg.Server.DefaultLimit
	if req.K != nil {
		if *req.K < 0 {
			s.sendError(req.ID, "'k' must be a non-negative integer", 400)
			return
		}
		k = *req.K
	}
	if k > s.cfg.Server.MaxLimit {
		k = s.cfg.Server.MaxLimit
	}

	query := utils.Normalize(req.Query)

	start := time.Now()
	suggestions, ok := s.cached(query, k, req.Deep)
	if !ok {
		suggestions = s.compute(query, k, req.Deep)
		if s.cache != nil {
			s.cache.Put(query, k, req.Deep, suggestions)
		}
	}
	elapsed := time.Since(start)

	s.send(CompletionResponse{
		ID:          req.ID,
		Query:       query,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *IPCServer) cached(query string, k int, deep bool) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(query, k, deep)
}

func (s *IPCServer) compute(query string, k int, deep bool) []string {
	if query == "" {
		return []string{}
	}
	candidates := s.suggester.Suggest(query)
	if deep && len(candidates) < k {
		candidates = append(candidates, s.suggester.SuggestTrimmed(query)...)
		candidates = append(candidates, s.suggester.SuggestPerWord(query)...)
	}
	suggestions, err := suggest.Rank(candidates, k)
	if err != nil {
		return []string{}
	}
	return suggestions
}

func (s *IPCServer) send(payload any) {
	if err := s.enc.Encode(payload); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *IPCServer) sendError(id, message string, code int) {
	s.send(CompletionError{ID: id, Error: message, Code: code})
}
