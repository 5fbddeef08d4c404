package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/chemdraft/internal/domain/dedupe"
	"github.com/okian/chemdraft/pkg/metrics"
)

// entry guards one session. Mutations of a session are serialized on its own
// mutex so sessions never contend with each other.
type entry struct {
	mu       sync.Mutex
	session  Session
	universe []string
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*entry
	maxSessions int
	captains    []string
	pickIDs     dedupe.Deduper[Pick]
	now         func() time.Time

	metricsUpdateInterval time.Duration
	wg                    sync.WaitGroup
	stopChan              chan struct{}
	closeOnce             sync.Once
}

// NewMemoryStore constructs a session store with configuration options. The
// background metrics updater stops when ctx is done or Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions:              make(map[string]*entry),
		now:                   time.Now,
		metricsUpdateInterval: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pickIDs == nil {
		s.pickIDs = dedupe.NewInMemoryDeduper[Pick]()
	}

	s.stopChan = make(chan struct{})
	s.startMetricsUpdater(ctx)
	return s
}

// Close stops the background metrics updater.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

// Create implements Store.Create.
func (s *MemoryStore) Create(_ context.Context, teams, universe []string) (Session, error) {
	if err := validateTeams(teams); err != nil {
		return Session{}, err
	}

	now := s.now()
	e := &entry{universe: append([]string{}, universe...)}
	e.session = Session{
		ID:        uuid.NewString(),
		Teams:     append([]string{}, teams...),
		Captains:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, c := range universe {
		if slices.Contains(s.captains, c) {
			e.session.Captains = append(e.session.Captains, c)
		}
	}
	e.resetLocked()

	s.mu.Lock()
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.mu.Unlock()
		return Session{}, fmt.Errorf("%w: %d", ErrTooManySessions, s.maxSessions)
	}
	s.sessions[e.session.ID] = e
	count := len(s.sessions)
	s.mu.Unlock()

	metrics.RecordSessionCreated()
	metrics.UpdateSessionsActive(count)
	return e.session.clone(), nil
}

// Get implements Store.Get.
func (s *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.clone(), nil
}

// Pick implements Store.Pick. The pick id lookup, the validation and the
// mutation run under the session lock, so a replay never observes a pick
// that is still being applied.
func (s *MemoryStore) Pick(ctx context.Context, id string, req PickRequest) (Pick, bool, error) {
	e, err := s.lookup(id)
	if err != nil {
		return Pick{}, false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if req.PickID != "" {
		if prev, ok := s.pickIDs.Lookup(ctx, id, req.PickID); ok {
			if prev.Team != req.Team || prev.Character != req.Character {
				return Pick{}, false, fmt.Errorf("%w: %q took %s for %s", ErrPickIDConflict, req.PickID, prev.Character, prev.Team)
			}
			return prev, true, nil
		}
	}

	sess := &e.session
	roster, ok := sess.Rosters[req.Team]
	if !ok {
		return Pick{}, false, fmt.Errorf("%w: %q", ErrUnknownTeam, req.Team)
	}
	idx := indexOf(sess.Pool, req.Character)
	if idx < 0 {
		return Pick{}, false, fmt.Errorf("%w: %q", ErrInvalidPick, req.Character)
	}
	if err := sess.checkCaptain(req.Team, req.Character); err != nil {
		return Pick{}, false, err
	}

	now := s.now()
	sess.Pool = append(sess.Pool[:idx], sess.Pool[idx+1:]...)
	sess.Rosters[req.Team] = append(roster, req.Character)
	p := Pick{
		Number:    len(sess.Picks) + 1,
		Round:     len(roster) + 1,
		Team:      req.Team,
		Character: req.Character,
		At:        now,
	}
	sess.Picks = append(sess.Picks, p)
	sess.UpdatedAt = now
	if req.PickID != "" {
		s.pickIDs.Record(ctx, id, req.PickID, p)
	}
	return p, false, nil
}

// Reset implements Store.Reset.
func (s *MemoryStore) Reset(ctx context.Context, id string) (Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	s.pickIDs.Forget(ctx, id)
	e.resetLocked()
	e.session.UpdatedAt = s.now()
	return e.session.clone(), nil
}

// Delete implements Store.Delete.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	count := len(s.sessions)
	s.mu.Unlock()

	e.mu.Lock()
	s.pickIDs.Forget(ctx, id)
	e.mu.Unlock()

	metrics.UpdateSessionsActive(count)
	return nil
}

// Count implements Store.Count.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) lookup(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e, nil
}

// resetLocked must be called with e.mu held or before e is shared.
func (e *entry) resetLocked() {
	e.session.Rosters = make(map[string][]string, len(e.session.Teams))
	for _, t := range e.session.Teams {
		e.session.Rosters[t] = []string{}
	}
	e.session.Pool = append([]string{}, e.universe...)
	e.session.Picks = []Pick{}
}

// startMetricsUpdater periodically publishes the number of live sessions.
func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateSessionsActive(s.Count(ctx))
			}
		}
	}()
}

func validateTeams(teams []string) error {
	if len(teams) == 0 {
		return fmt.Errorf("%w: no teams", ErrInvalidTeams)
	}
	seen := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		if t == "" {
			return fmt.Errorf("%w: empty team name", ErrInvalidTeams)
		}
		if _, dup := seen[t]; dup {
			return fmt.Errorf("%w: duplicate team %q", ErrInvalidTeams, t)
		}
		seen[t] = struct{}{}
	}
	return nil
}

func indexOf(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}
