package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	_ "embed"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/screengreen/suggestive-service/internal/logger"
	"github.com/screengreen/suggestive-service/internal/utils"
	"github.com/screengreen/suggestive-service/pkg/config"
	"github.com/screengreen/suggestive-service/pkg/suggest"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// SuggestResponse is the payload for /suggest: the normalized query plus the
// ranked suggestion strings.
type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
	Count       int      `json:"count"`
	TimeTaken   int64    `json:"time_ms"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Server handles the HTTP API for query suggestions.
type Server struct {
	suggester suggest.ISuggester
	cache     *suggest.QueryCache
	cfg       *config.Config
	router    *mux.Router
	log       *log.Logger
}

// NewServer wires the suggester into an HTTP handler. The suggester must be
// fully fitted before the first request arrives; the server itself never
// mutates it.
func NewServer(suggester suggest.ISuggester, cfg *config.Config) *Server {
	s := &Server{
		suggester: suggester,
		cfg:       cfg,
		log:       logger.New("http"),
	}
	if cfg.Cache.Enabled {
		s.cache = suggest.NewQueryCache(cfg.Cache.MaxEntries)
	}

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			s.log.Debugf("%s %s (%v)", req.Method, req.URL.RequestURI(), time.Since(start))
		})
	})

	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/suggest", s.handleSuggest).Methods("GET")
	r.HandleFunc("/suggest/", s.handleSuggest).Methods("GET")
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/stats", s.handleStats).Methods("GET")

	s.router = r
	return s
}

// Handler returns the root HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving the API on the configured address.
func (s *Server) ListenAndServe() error {
	httpServer := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return httpServer.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]int{
		"storedQueries": s.suggester.Count(),
	}
	if s.cache != nil {
		for k, v := range s.cache.Stats() {
			stats[k] = v
		}
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// handleSuggest validates the request, normalizes the query, gathers
// candidates and responds with the top-k suggestions sorted by weight
// descending. Results are memoized in the query cache when enabled.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	rawQuery := r.URL.Query().Get("query")
	if len(rawQuery) > s.cfg.Server.MaxQueryLen {
		s.writeError(w, "Query exceeds maximum length", http.StatusBadRequest)
		return
	}

	k := s.cfg.Server.DefaultLimit
	if rawK := r.URL.Query().Get("k"); rawK != "" {
		parsed, err := strconv.Atoi(rawK)
		if err != nil || parsed < 0 {
			s.writeError(w, "Parameter 'k' must be a non-negative integer", http.StatusBadRequest)
			return
		}
		k = parsed
	}
	if k > s.cfg.Server.MaxLimit {
		k = s.cfg.Server.MaxLimit
	}
	deep := r.URL.Query().Get("deep") == "true"

	query := utils.Normalize(rawQuery)

	start := time.Now()
	suggestions, ok := s.cachedSuggestions(query, k, deep)
	if !ok {
		suggestions = s.computeSuggestions(query, k, deep)
		if s.cache != nil {
			s.cache.Put(query, k, deep, suggestions)
		}
	}
	elapsed := time.Since(start)

	s.writeJSON(w, http.StatusOK, SuggestResponse{
		Query:       query,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Milliseconds(),
	})
}

func (s *Server) cachedSuggestions(query string, k int, deep bool) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(query, k, deep)
}

// computeSuggestions gathers the merged candidate set and, in deep mode,
// widens it with the trimmed and per-word strategies when the primary pass
// falls short of k. k has been validated by the caller.
func (s *Server) computeSuggestions(query string, k int, deep bool) []string {
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
		// k was validated above, so ranking cannot reject it.
		return []string{}
	}
	return suggestions
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, code int) {
	s.writeJSON(w, code, ErrorResponse{Error: message, Status: code})
}
