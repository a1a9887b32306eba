package suggest

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// QueryCache memoizes ranked suggestion lists for the serving boundaries.
// The engine is read-only while serving, so identical (query, k, deep)
// requests always produce identical responses and can be answered from the
// cache. Entries are evicted least-recently-used once maxEntries is reached;
// any mutation of the underlying tries must Flush.
type QueryCache struct {
	results     *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	misses      int64
	maxEntries  int
	mu          sync.Mutex
}

// NewQueryCache creates a cache holding at most maxEntries responses.
func NewQueryCache(maxEntries int) *QueryCache {
	return &QueryCache{
		results:    patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

func cacheKey(query string, k int, deep bool) string {
	return fmt.Sprintf("%s|%d|%t", query, k, deep)
}

// Get returns the cached suggestions for the request, if present.
func (qc *QueryCache) Get(query string, k int, deep bool) ([]string, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	key := cacheKey(query, k, deep)
	item := qc.results.Get(patricia.Prefix(key))
	if item == nil {
		qc.misses++
		return nil, false
	}
	qc.hits++
	qc.markAccessed(key)
	return item.([]string), true
}

// Put stores a computed response, evicting the least recently used entry
// when the cache is full.
func (qc *QueryCache) Put(query string, k int, deep bool, suggestions []string) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if len(qc.accessTime) >= qc.maxEntries {
		qc.evictLRU()
	}
	key := cacheKey(query, k, deep)
	qc.results.Set(patricia.Prefix(key), suggestions)
	qc.markAccessed(key)
}

// Flush drops every cached response. Must be called after any mutation of
// the fitted tries.
func (qc *QueryCache) Flush() {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	qc.results = patricia.NewTrie()
	qc.accessTime = make(map[string]int64, qc.maxEntries)
	log.Debug("Query cache flushed")
}

// Stats reports cache counters.
func (qc *QueryCache) Stats() map[string]int {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	return map[string]int{
		"cacheEntries": len(qc.accessTime),
		"cacheMax":     qc.maxEntries,
		"cacheHits":    int(qc.hits),
		"cacheMisses":  int(qc.misses),
	}
}

func (qc *QueryCache) markAccessed(key string) {
	qc.accessCount++
	qc.accessTime[key] = qc.accessCount
}

func (qc *QueryCache) evictLRU() {
	var oldestKey string
	oldestTime := int64(1<<63 - 1)

	for key, accessTime := range qc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestKey = key
		}
	}
	if oldestKey != "" {
		qc.results.Delete(patricia.Prefix(oldestKey))
		delete(qc.accessTime, oldestKey)
		log.Debugf("Evicted %q from query cache", oldestKey)
	}
}
