package service

import (
	"github.com/okian/chemdraft/internal/adapters/refdata"
	"github.com/okian/chemdraft/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReferencePaths sets the reference files loaded by Start.
func WithReferencePaths(paths refdata.Paths) Option {
	return func(s *Service) {
		s.paths = paths
	}
}

// WithReferenceData provides already loaded reference tables; Start then
// skips file loading.
func WithReferenceData(t *refdata.Tables) Option {
	return func(s *Service) {
		s.tables = t
	}
}

// WithTeams sets the teams of sessions created without an explicit list.
func WithTeams(teams []string) Option {
	return func(s *Service) {
		if len(teams) > 0 {
			s.teams = append([]string{}, teams...)
		}
	}
}

// WithCaptains sets the characters that may captain a team. An empty list
// turns the captain rule off.
func WithCaptains(captains []string) Option {
	return func(s *Service) {
		s.captains = append([]string{}, captains...)
	}
}

// WithLimits sets the default and maximum recommendation counts.
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(s *Service) {
		if defaultLimit > 0 && maxLimit >= defaultLimit {
			s.defaultLimit = defaultLimit
			s.maxLimit = maxLimit
		}
	}
}

// WithOutfield sets the default outfield list length and its speed threshold.
func WithOutfield(limit int, minSpeed float64) Option {
	return func(s *Service) {
		if limit > 0 {
			s.outfieldLimit = limit
		}
		if minSpeed >= 0 {
			s.outfieldMinSpeed = minSpeed
		}
	}
}

// WithDedupeSize sets the number of remembered pick ids.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxSessions bounds the number of live sessions; 0 means unbounded.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxSessions = n
		}
	}
}

// WithChemistry sets the logistic growth rate, midpoint and hate weight of
// the chemistry score.
func WithChemistry(k, x0, negativeWeight float64) Option {
	return func(s *Service) {
		s.chemK = k
		s.chemX0 = x0
		s.negativeWeight = negativeWeight
	}
}

// WithFallbackFactor sets the league-mean multiplier for characters without stats.
func WithFallbackFactor(f float64) Option {
	return func(s *Service) {
		s.fallbackFactor = f
	}
}
