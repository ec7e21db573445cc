package cache

import "fmt"

// Stats is a point-in-time snapshot of cache counters, suitable for
// presentation layers. It has no effect on cache behavior.
type Stats struct {
	ID        string
	Entries   int
	Capacity  int
	Hits      int64
	Misses    int64
	Evictions int64
}

// Requests returns the total number of accounted lookups.
func (s Stats) Requests() int64 {
	return s.Hits + s.Misses
}

// HitRate returns the fraction of lookups served from cache, 0 when there
// have been no lookups.
func (s Stats) HitRate() float64 {
	total := s.Requests()
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// String renders a human-readable one-line summary.
func (s Stats) String() string {
	id := s.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("cache %s: %d/%d entries, %d hits, %d misses (%.1f%% hit rate), %d evictions",
		id, s.Entries, s.Capacity, s.Hits, s.Misses, s.HitRate()*100, s.Evictions)
}
