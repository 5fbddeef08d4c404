package repository

import (
	"time"

	"github.com/okian/chemdraft/internal/domain/dedupe"
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxSessions bounds the number of live sessions. Zero or less means unbounded.
func WithMaxSessions(n int) Option {
	return func(s *MemoryStore) {
		s.maxSessions = n
	}
}

// WithClock replaces time.Now for pick and session timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// WithCaptains sets the characters that count as captains. Each session keeps
// the ones present in its universe.
func WithCaptains(names []string) Option {
	return func(s *MemoryStore) {
		s.captains = append([]string(nil), names...)
	}
}

// WithPickIDs replaces the tracker of client pick ids.
func WithPickIDs(d dedupe.Deduper[Pick]) Option {
	return func(s *MemoryStore) {
		if d != nil {
			s.pickIDs = d
		}
	}
}
