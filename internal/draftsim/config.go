// Package draftsim drives complete drafts against a running chemdraft server
// and checks the resulting sessions.
package draftsim

import (
	"fmt"
	"time"
)

// Default simulation settings.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultTimeout = 10 * time.Second
	DefaultRPS     = 200
	DefaultBurst   = 20
)

// Config holds the settings of one simulation run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Sessions int           // Number of drafts to run
	Rounds   int           // Rounds per draft; 0 drafts until the pool is empty
	Teams    []string      // Explicit teams; empty uses the server's configured teams
	Workers  int           // Concurrent drafts
	Timeout  time.Duration // HTTP request timeout
	RPS      float64       // Request rate shared by all workers
	Burst    int           // Limiter burst
	Replay   bool          // Resend every pick with the same pick id and expect a duplicate
	Keep     bool          // Keep sessions on the server after a draft
	Verbose  bool          // Log every pick
}

// NewConfig returns a Config with defaults for a single draft.
func NewConfig() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		Sessions: 1,
		Workers:  1,
		Timeout:  DefaultTimeout,
		RPS:      DefaultRPS,
		Burst:    DefaultBurst,
		Replay:   true,
	}
}

func (c *Config) validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base url must not be empty", ErrInvalidConfig)
	case c.Sessions < 1:
		return fmt.Errorf("%w: sessions must be positive", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case c.Rounds < 0:
		return fmt.Errorf("%w: rounds must not be negative", ErrInvalidConfig)
	case c.RPS <= 0:
		return fmt.Errorf("%w: rps must be positive", ErrInvalidConfig)
	}
	return nil
}
