package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/chemdraft/internal/adapters/refdata"
	"github.com/okian/chemdraft/internal/adapters/repository"
	"github.com/okian/chemdraft/internal/domain/types"
	"github.com/okian/chemdraft/pkg/logger"
	"github.com/okian/chemdraft/pkg/metrics"
)

// PickRequest is one draft pick. PickID is an optional client key that makes
// retries of the same pick idempotent.
type PickRequest = repository.PickRequest

// PickResult reports the outcome of an accepted or replayed pick. A replay
// carries the pick recorded for its id.
type PickResult struct {
	Pick      repository.Pick
	Duplicate bool
}

// CreateSession starts a draft for teams, or for the configured teams when
// the list is empty.
func (s *Service) CreateSession(ctx context.Context, teams []string) (repository.Session, error) {
	_, store, err := s.components()
	if err != nil {
		return repository.Session{}, err
	}
	if len(teams) == 0 {
		teams = s.teams
	}
	sess, err := store.Create(ctx, teams, s.universe)
	if err != nil {
		return repository.Session{}, err
	}
	s.logger.Info(ctx, "draft session created",
		logger.String("session", sess.ID),
		logger.Strings("teams", sess.Teams))
	return sess, nil
}

// Session returns a snapshot of the session.
func (s *Service) Session(ctx context.Context, id string) (repository.Session, error) {
	_, store, err := s.components()
	if err != nil {
		return repository.Session{}, err
	}
	return store.Get(ctx, id)
}

// Pick applies req to the session. A repeated PickID with the same team and
// character is acknowledged as a duplicate without touching the session; with
// a different one it fails with repository.ErrPickIDConflict. Only accepted
// picks claim their PickID.
func (s *Service) Pick(ctx context.Context, id string, req PickRequest) (PickResult, error) {
	_, store, err := s.components()
	if err != nil {
		return PickResult{}, err
	}

	p, replayed, err := store.Pick(ctx, id, req)
	if err != nil {
		metrics.RecordPickRejected(rejectReason(err))
		s.logger.Warn(ctx, "pick rejected",
			logger.String("session", id),
			logger.String("team", req.Team),
			logger.String("character", req.Character),
			logger.String("pick_id", req.PickID),
			logger.Error(err))
		return PickResult{}, err
	}
	if replayed {
		metrics.RecordPickDuplicate()
		s.logger.Debug(ctx, "duplicate pick ignored",
			logger.String("session", id),
			logger.String("pick_id", req.PickID),
			logger.Int("number", p.Number))
		return PickResult{Pick: p, Duplicate: true}, nil
	}

	metrics.RecordPickAccepted()
	s.logger.Info(ctx, "pick accepted",
		logger.String("session", id),
		logger.String("team", p.Team),
		logger.String("character", p.Character),
		logger.Int("number", p.Number))
	return PickResult{Pick: p}, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrInvalidPick):
		return "invalid_pick"
	case errors.Is(err, repository.ErrPickIDConflict):
		return "pick_id_conflict"
	case errors.Is(err, repository.ErrCaptainRequired), errors.Is(err, repository.ErrSecondCaptain):
		return "captain_rule"
	case errors.Is(err, repository.ErrUnknownTeam):
		return "unknown_team"
	case errors.Is(err, repository.ErrSessionNotFound):
		return "session_not_found"
	default:
		return "other"
	}
}

// Reset empties every roster of the session and restores the full pool.
// Pick ids recorded for the session are forgotten.
func (s *Service) Reset(ctx context.Context, id string) (repository.Session, error) {
	_, store, err := s.components()
	if err != nil {
		return repository.Session{}, err
	}
	sess, err := store.Reset(ctx, id)
	if err != nil {
		return repository.Session{}, err
	}
	s.logger.Info(ctx, "draft session reset", logger.String("session", id))
	return sess, nil
}

// DeleteSession drops the session and its pick ids.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	_, store, err := s.components()
	if err != nil {
		return err
	}
	return store.Delete(ctx, id)
}

// Recommend ranks the undrafted pool for team. A non-positive limit selects
// the configured default; larger limits are capped at the configured maximum.
// While the captain rule forces the team's choice, only eligible candidates
// are listed; their ranks still come from the full pool.
func (s *Service) Recommend(ctx context.Context, id, team string, limit int) (types.TeamRecommendations, error) {
	eng, store, err := s.components()
	if err != nil {
		return types.TeamRecommendations{}, err
	}
	sess, err := teamSession(ctx, store, id, team)
	if err != nil {
		return types.TeamRecommendations{}, err
	}

	out := types.TeamRecommendations{
		Team:            team,
		HasCaptain:      sess.HasCaptain(team),
		MustPickCaptain: sess.MustPickCaptain(),
	}
	var eligible func(string) bool
	if out.MustPickCaptain {
		eligible = func(c string) bool { return sess.Eligible(team, c) }
	}
	out.Recommendations = eng.RecommendAnnotated(ctx, sess.Roster(team), sess.Pool,
		s.clampLimit(limit, s.defaultLimit), eligible)
	for i := range out.Recommendations {
		out.Recommendations[i].Annotation.Captain = sess.IsCaptain(out.Recommendations[i].Candidate)
	}
	return out, nil
}

// Outfielders lists the fastest undrafted candidates for team, led by those
// with chemistry toward cf when cf is set.
func (s *Service) Outfielders(ctx context.Context, id, team, cf string, limit int) ([]types.OutfieldPick, error) {
	eng, store, err := s.components()
	if err != nil {
		return nil, err
	}
	sess, err := teamSession(ctx, store, id, team)
	if err != nil {
		return nil, err
	}
	return eng.Outfielders(sess.Pool, cf, s.clampLimit(limit, s.outfieldLimit)), nil
}

// Board returns the picks of the session round by round.
func (s *Service) Board(ctx context.Context, id string) (types.Board, error) {
	_, store, err := s.components()
	if err != nil {
		return types.Board{}, err
	}
	sess, err := store.Get(ctx, id)
	if err != nil {
		return types.Board{}, err
	}

	b := types.Board{Teams: sess.Teams, Rounds: make([]types.BoardRound, sess.Rounds())}
	for i := range b.Rounds {
		round := types.BoardRound{Round: i + 1, Picks: make(map[string]string, len(sess.Teams))}
		for _, team := range sess.Teams {
			if roster := sess.Roster(team); i < len(roster) {
				round.Picks[team] = roster[i]
			}
		}
		b.Rounds[i] = round
	}
	return b, nil
}

// Affinity returns the chemistry and hate sets of character.
func (s *Service) Affinity(_ context.Context, character string) (types.Affinity, error) {
	eng, _, err := s.components()
	if err != nil {
		return types.Affinity{}, err
	}
	return eng.Affinity(character), nil
}

// DataQuality reports the draftable characters that rely on defaults.
func (s *Service) DataQuality(_ context.Context) (refdata.Quality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return refdata.Quality{}, ErrNotStarted
	}
	return s.tables.Quality(), nil
}

func (s *Service) clampLimit(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return limit
}

func teamSession(ctx context.Context, store repository.Store, id, team string) (repository.Session, error) {
	sess, err := store.Get(ctx, id)
	if err != nil {
		return repository.Session{}, err
	}
	if !sess.HasTeam(team) {
		return repository.Session{}, fmt.Errorf("%w: %q", repository.ErrUnknownTeam, team)
	}
	return sess, nil
}
