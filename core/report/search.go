package report

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

// DefaultMaxDistance is the normalized edit-distance cutoff for a match.
// Roughly a third of the query may be typos before a candidate is dropped.
const DefaultMaxDistance = 0.3

// Searcher ranks records by approximate match distance over a set of text
// keys. The index derived from the source collection is cached and reused
// until Invalidate is called; callers hook Invalidate to the store's
// change events so the index tracks exactly one collection version.
type Searcher struct {
	mu          sync.Mutex
	logger      *zap.Logger
	maxDistance float64

	version uint64 // current collection version, bumped by Invalidate
	indexed uint64 // version the cached index was built at
	index   []indexEntry
	keys    string // comma-joined keys the cached index covers
	size    int    // record count the cached index covers
}

type indexEntry struct {
	pos   int
	texts []string
}

// NewSearcher creates a searcher with the default tolerance. A nil logger
// is replaced with a no-op logger.
func NewSearcher(logger *zap.Logger) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{
		logger:      logger,
		maxDistance: DefaultMaxDistance,
		version:     1,
	}
}

// Invalidate marks the cached index stale. Call whenever the source
// collection changes; the next Search rebuilds the index.
func (s *Searcher) Invalidate() {
	s.mu.Lock()
	s.version++
	s.mu.Unlock()
}

// Search returns the records matching the query over the listed keys,
// best match first. An empty query is the identity: the input collection
// comes back unchanged, order and membership intact.
func (s *Searcher) Search(records []record.Record, query string, keys []string) []record.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	s.mu.Lock()
	s.ensureIndex(records, keys)
	index := s.index
	s.mu.Unlock()

	type ranked struct {
		pos      int
		distance float64
	}
	hits := make([]ranked, 0, len(index))
	for _, e := range index {
		d := bestDistance(q, e.texts)
		if d <= s.maxDistance {
			hits = append(hits, ranked{pos: e.pos, distance: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })

	out := make([]record.Record, len(hits))
	for i, h := range hits {
		out[i] = records[h.pos]
	}
	return out
}

// ensureIndex rebuilds the cached index when the collection version,
// the key set, or the record count has changed. Caller holds s.mu.
func (s *Searcher) ensureIndex(records []record.Record, keys []string) {
	joined := strings.Join(keys, ",")
	if s.indexed == s.version && s.keys == joined && s.size == len(records) {
		return
	}

	index := make([]indexEntry, len(records))
	for i, rec := range records {
		texts := make([]string, 0, len(keys))
		for _, key := range keys {
			if v, ok := rec[key].(string); ok && v != "" {
				texts = append(texts, strings.ToLower(v))
			}
		}
		index[i] = indexEntry{pos: i, texts: texts}
	}

	s.index = index
	s.indexed = s.version
	s.keys = joined
	s.size = len(records)
	s.logger.Debug("rebuilt search index",
		zap.Int("records", len(records)),
		zap.Uint64("version", s.version))
}

// bestDistance returns the smallest normalized edit distance between the
// query and any indexed text. A text containing the query verbatim scores
// 0, matching the backend's substring prefilter. Multi-word texts are also
// matched token by token so a typo in one word is not penalized by the
// length of the whole value.
func bestDistance(query string, texts []string) float64 {
	best := 1.0
	for _, text := range texts {
		if strings.Contains(text, query) {
			return 0
		}
		if d := normalizedDistance(query, text); d < best {
			best = d
		}
		for _, token := range strings.Fields(text) {
			if d := normalizedDistance(query, token); d < best {
				best = d
			}
		}
	}
	return best
}

func normalizedDistance(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 0
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}
