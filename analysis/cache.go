package analysis

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultMaxFileSize bounds worst-case latency: files above it are never
// parsed and get a degenerate empty analysis instead.
const DefaultMaxFileSize = 1 << 20

// AnalyzeFunc runs the full analysis pipeline on one document. The cache
// calls it only on a miss, which makes it the natural injection point for
// counting pipeline runs in tests.
type AnalyzeFunc func(source []byte, fallbackName string) (*FileAnalysis, error)

type cacheEntry struct {
	fingerprint uint64
	size        int
	result      *FileAnalysis
}

// Cache memoizes per-document analysis results keyed by document identity,
// invalidated by a content fingerprint. It is explicitly constructed and
// owned by its session; there is no package-level instance. The mutex makes
// the check-compute-insert path safe under a concurrent host.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]cacheEntry
	maxBytes int
	analyze  AnalyzeFunc
}

// NewCache builds a cache around the given pipeline. maxBytes <= 0 selects
// DefaultMaxFileSize.
func NewCache(analyze AnalyzeFunc, maxBytes int) *Cache {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileSize
	}
	return &Cache{
		entries:  make(map[string]cacheEntry),
		maxBytes: maxBytes,
		analyze:  analyze,
	}
}

// Fingerprint is the cache key half derived from content: a fast
// non-cryptographic hash, paired with the byte size. Collisions are
// tolerable; this is invalidation, not security.
func Fingerprint(source []byte) uint64 {
	return xxhash.Sum64(source)
}

// Analyze returns the memoized analysis for identity, recomputing only when
// the content fingerprint or size changed. Oversized documents yield a
// degenerate empty analysis without invoking the pipeline; that outcome is
// cached as a valid result. A pipeline failure is returned to the caller
// and nothing is cached, so "could not analyze" stays distinct from "known
// empty".
func (c *Cache) Analyze(identity string, source []byte, fallbackName string) (*FileAnalysis, error) {
	size := len(source)
	fingerprint := Fingerprint(source)

	c.mu.RLock()
	entry, ok := c.entries[identity]
	c.mu.RUnlock()
	if ok && entry.fingerprint == fingerprint && entry.size == size {
		return entry.result, nil
	}

	var result *FileAnalysis
	if size > c.maxBytes {
		result = &FileAnalysis{Summary: ClassSummary{ClassName: fallbackName}}
	} else {
		computed, err := c.analyze(source, fallbackName)
		if err != nil {
			return nil, err
		}
		result = computed
	}

	c.mu.Lock()
	c.entries[identity] = cacheEntry{fingerprint: fingerprint, size: size, result: result}
	c.mu.Unlock()
	return result, nil
}

// Evict drops the entry for one document.
func (c *Cache) Evict(identity string) {
	c.mu.Lock()
	delete(c.entries, identity)
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len reports the number of cached documents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
