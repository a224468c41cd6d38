package diff

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	scoreCacheExpiration = 10 * time.Minute
	scoreCacheCleanup    = 30 * time.Minute
)

// Scorer rates how related two lines of text are, in [0,1]. The score only
// gates whether a pair is worth word-level highlighting; it never affects
// line classification. Results are memoized because the same pairs are
// re-scored on every rebuild.
type Scorer struct {
	cache *gocache.Cache
}

// NewScorer creates a scorer with an in-memory result cache.
func NewScorer() *Scorer {
	return &Scorer{cache: gocache.New(scoreCacheExpiration, scoreCacheCleanup)}
}

// Similarity returns the total display width of unchanged spans between a
// and b, divided by max(width(a), width(b)).
//
// Contract: Similarity(a,a) == 1, Similarity("","") == 1,
// Similarity(a,"") == 0 for non-empty a, and Similarity(a,b) == Similarity(b,a).
func (s *Scorer) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	// Unchanged-span width is symmetric, so one cache entry serves both
	// argument orders.
	ka, kb := a, b
	if ka > kb {
		ka, kb = kb, ka
	}
	key := ka + "\x00" + kb
	if s != nil && s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			return v.(float64)
		}
	}

	maxWidth := max(DisplayWidth(a), DisplayWidth(b))
	if maxWidth == 0 {
		return 1
	}

	unchanged := 0
	for _, span := range DiffSpans(ka, kb) {
		if !span.Added && !span.Removed {
			unchanged += DisplayWidth(span.Text)
		}
	}

	score := float64(unchanged) / float64(maxWidth)
	if score > 1 {
		score = 1
	}
	if s != nil && s.cache != nil {
		s.cache.SetDefault(key, score)
	}
	return score
}
