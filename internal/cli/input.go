// Package cli handles command line input and suggestions for debugging and
// testing the engine interactively.
package cli

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/screengreen/suggestive-service/internal/utils"
	"github.com/screengreen/suggestive-service/pkg/suggest"
)

// InputHandler reads queries from stdin and prints ranked suggestions with
// their weights and lookup timing.
type InputHandler struct {
	suggester suggest.ISuggester
	limit     int
	deep      bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(suggester suggest.ISuggester, limit int, deep bool) *InputHandler {
	return &InputHandler{
		suggester: suggester,
		limit:     limit,
		deep:      deep,
	}
}

// Start begins the interface loop. It continuously prompts for input, reads
// a line from stdin, and passes the trimmed input on for processing. The
// loop terminates if an error occurs while reading from stdin.
func (h *InputHandler) Start() error {
	log.Print("Suggestive CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a query and press Enter to see suggestions (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput normalizes a single query, gathers candidates and prints the
// ranked suggestions.
func (h *InputHandler) handleInput(raw string) {
	query := utils.Normalize(raw)
	if query == "" {
		log.Warnf("Nothing left of %q after normalization", raw)
		return
	}

	start := time.Now()
	candidates := h.suggester.Suggest(query)
	if h.deep && len(candidates) < h.limit {
		candidates = append(candidates, h.suggester.SuggestTrimmed(query)...)
		candidates = append(candidates, h.suggester.SuggestPerWord(query)...)
	}
	top, err := suggest.Top(candidates, h.limit)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("Ranking failed: %v", err)
		return
	}

	log.Debugf("Took [ %v ] for query %q", elapsed, query)
	if len(top) == 0 {
		log.Warnf("No suggestions found for %q", query)
		return
	}

	log.Printf("Found %d suggestions for %q:", len(top), query)
	for i, e := range top {
		log.Printf("%2d. %-40s (weight: %8.1f)", i+1, e.Query, e.Weight)
	}
}
