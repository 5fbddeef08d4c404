package dedupe

type settings struct {
	maxSize int
}

// Option applies a configuration option to the in-memory deduper.
type Option func(*settings)

// WithMaxSize sets the maximum number of ids to keep in memory.
// If maxSize > 0: bounded mode, the oldest id is evicted first.
// If maxSize <= 0: unbounded mode (no eviction, no size limit).
func WithMaxSize(maxSize int) Option {
	return func(s *settings) {
		s.maxSize = maxSize
	}
}
