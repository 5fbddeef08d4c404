// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/chemdraft/internal/adapters/refdata"
	"github.com/okian/chemdraft/internal/adapters/repository"
	"github.com/okian/chemdraft/internal/domain/affinity"
	"github.com/okian/chemdraft/internal/domain/chemistry"
	"github.com/okian/chemdraft/internal/domain/dedupe"
	"github.com/okian/chemdraft/internal/domain/engine"
	"github.com/okian/chemdraft/internal/domain/stats"
	"github.com/okian/chemdraft/pkg/logger"
	"github.com/okian/chemdraft/pkg/metrics"
)

// Service implements the API dependencies for the draft assistant.
type Service struct {
	mu sync.RWMutex

	// Core components
	tables   *refdata.Tables
	universe []string
	engine   *engine.Engine
	sessions repository.Store
	pickIDs  dedupe.Deduper[repository.Pick]

	// Configuration
	paths            refdata.Paths
	teams            []string
	captains         []string
	defaultLimit     int
	maxLimit         int
	outfieldLimit    int
	outfieldMinSpeed float64
	dedupeSize       int
	maxSessions      int
	chemK            float64
	chemX0           float64
	negativeWeight   float64
	fallbackFactor   float64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// DefaultCaptains returns the characters that may captain a team.
func DefaultCaptains() []string {
	return []string{
		"Mario", "Luigi", "Peach", "Daisy", "Yoshi", "Birdo",
		"Wario", "Waluigi", "Donkey Kong", "Diddy Kong", "Bowser", "Bowser Jr",
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		paths: refdata.Paths{
			Affinity:   "data/affinity.yaml",
			Attributes: "data/attributes.yaml",
			Seasons:    "data/seasons.yaml",
		},
		teams:            []string{"BenR", "Julian", "Tom", "Harry", "Kircher", "BenT", "Carbone", "Jmo"},
		captains:         DefaultCaptains(),
		defaultLimit:     5,
		maxLimit:         50,
		outfieldLimit:    10,
		outfieldMinSpeed: engine.DefaultOutfieldMinSpeed,
		dedupeSize:       dedupe.DefaultMaxSize,
		chemK:            chemistry.DefaultGrowthRate,
		chemX0:           chemistry.DefaultMidpoint,
		negativeWeight:   chemistry.DefaultNegativeWeight,
		fallbackFactor:   stats.DefaultFallbackFactor,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the reference data (unless provided) and builds the engine,
// the session store and the pick id tracker.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting draft service...")

	if s.tables == nil {
		tables, err := refdata.Load(ctx, s.paths, refdata.WithLogger(s.logger.Named("refdata")))
		if err != nil {
			return fmt.Errorf("load reference data: %w", err)
		}
		s.tables = tables
	}
	s.universe = s.tables.Universe()

	graph := affinity.NewGraph(ctx, s.tables.Affinity, s.logger.Named("affinity"))
	projector := stats.NewProjector(s.tables.Attributes, s.tables.Seasons,
		stats.WithFallbackFactor(s.fallbackFactor))
	s.engine = engine.New(graph, projector,
		engine.WithLogger(s.logger.Named("engine")),
		engine.WithOutfieldMinSpeed(s.outfieldMinSpeed),
		engine.WithChemistryOptions(
			chemistry.WithGrowth(s.chemK, s.chemX0),
			chemistry.WithNegativeWeight(s.negativeWeight),
		),
	)
	s.pickIDs = dedupe.NewInMemoryDeduper[repository.Pick](dedupe.WithMaxSize(s.dedupeSize))
	s.sessions = repository.NewMemoryStore(ctx,
		repository.WithMaxSessions(s.maxSessions),
		repository.WithCaptains(s.captains),
		repository.WithPickIDs(s.pickIDs),
	)

	if q := s.tables.Quality(); len(q.MissingAffinity) > 0 || len(q.UnknownReferences) > 0 {
		s.logger.Warn(ctx, "reference data has gaps",
			logger.Strings("missing_affinity", q.MissingAffinity),
			logger.Strings("unknown_references", q.UnknownReferences))
	}

	attrRows, seasonRows := projector.Rows()
	s.started = true
	s.logger.Info(ctx, "draft service started",
		logger.Int("universe", len(s.universe)),
		logger.Int("attributeRows", attrRows),
		logger.Int("seasonRows", seasonRows),
		logger.Strings("teams", s.teams),
		logger.Strings("captains", s.captains),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("maxSessions", s.maxSessions),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping draft service...")

	if closer, ok := s.sessions.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "draft service stopped")
}

// components returns the engine and store of a started service.
func (s *Service) components() (*engine.Engine, repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.engine, s.sessions, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	out := map[string]interface{}{
		"started":      s.started,
		"teams":        len(s.teams),
		"defaultLimit": s.defaultLimit,
		"maxLimit":     s.maxLimit,
		"dedupeSize":   s.dedupeSize,
	}

	if s.started {
		sessions := s.sessions.Count(ctx)
		out["universe"] = len(s.universe)
		out["sessions"] = sessions
		out["pickIds"] = s.pickIDs.Size()

		metrics.UpdateSessionsActive(sessions)
	}

	return out
}
