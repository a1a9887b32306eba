package corpus

import (
	"bufio"
	"io"

	"github.com/charmbracelet/log"

	"github.com/screengreen/suggestive-service/internal/utils"
)

// progressEvery controls how often line progress is logged while counting.
const progressEvery = 100_000

// Count aggregates one raw (possibly noisy) query line per occurrence into
// weighted votes: each line is normalized and identical normalized queries
// accumulate weight 1.0 apiece. Lines that normalize to nothing are skipped.
func Count(r io.Reader) (map[string]float64, error) {
	counts := make(map[string]float64)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := 0
	for scanner.Scan() {
		lines++
		if lines%progressEvery == 0 {
			log.Debugf("Counting corpus lines: %d processed", lines)
		}
		query := utils.Normalize(scanner.Text())
		if query == "" {
			continue
		}
		counts[query]++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	log.Debugf("Counted %d lines into %d distinct queries", lines, len(counts))
	return counts, nil
}
