// Package repository holds draft sessions: the rosters of every team and the
// undrafted pool, mutated only by picks and resets.
package repository

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// Pick is one entry of a session's pick log.
type Pick struct {
	Number    int       `json:"number"`
	Round     int       `json:"round"`
	Team      string    `json:"team"`
	Character string    `json:"character"`
	At        time.Time `json:"at"`
}

// PickRequest is one draft pick. PickID is an optional client key: a replay
// with the same team and character returns the recorded pick, a replay with
// a different one fails with ErrPickIDConflict.
type PickRequest struct {
	Team      string
	Character string
	PickID    string
}

// Session is a snapshot of one draft. Values returned by a Store are deep
// copies and safe to keep.
type Session struct {
	ID        string              `json:"id"`
	Teams     []string            `json:"teams"`
	Rosters   map[string][]string `json:"rosters"`
	Pool      []string            `json:"pool"`
	Picks     []Pick              `json:"picks"`
	// Captains lists the draftable captains in universe order.
	Captains  []string            `json:"captains"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Store provides read/write access to draft sessions.
type Store interface {
	// Create starts a session where every team has an empty roster and the
	// pool holds universe in order.
	Create(ctx context.Context, teams, universe []string) (Session, error)

	// Get returns the session or ErrSessionNotFound.
	Get(ctx context.Context, id string) (Session, error)

	// Pick moves req.Character from the pool to req.Team's roster. A replayed
	// PickID returns the recorded pick with replayed set. Nothing changes
	// when it fails.
	Pick(ctx context.Context, id string, req PickRequest) (p Pick, replayed bool, err error)

	// Reset empties every roster, restores the full pool and forgets the
	// session's pick ids.
	Reset(ctx context.Context, id string) (Session, error)

	// Delete drops the session and its pick ids.
	Delete(ctx context.Context, id string) error

	// Count returns the number of sessions held.
	Count(ctx context.Context) int
}

// Roster returns the members of team, or nil for an unknown team.
func (s Session) Roster(team string) []string {
	return s.Rosters[team]
}

// HasTeam reports whether team takes part in the session.
func (s Session) HasTeam(team string) bool {
	_, ok := s.Rosters[team]
	return ok
}

// Rounds returns the length of the longest roster.
func (s Session) Rounds() int {
	n := 0
	for _, r := range s.Rosters {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

// IsCaptain reports whether character is a captain of the session.
func (s Session) IsCaptain(character string) bool {
	return slices.Contains(s.Captains, character)
}

// HasCaptain reports whether team has drafted a captain.
func (s Session) HasCaptain(team string) bool {
	return slices.ContainsFunc(s.Rosters[team], s.IsCaptain)
}

// MustPickCaptain reports whether the captains left in the pool are exactly
// as many as the teams still without one. While it holds, a team without a
// captain may only draft a captain and a team with one may not.
func (s Session) MustPickCaptain() bool {
	missing := 0
	for _, team := range s.Teams {
		if !s.HasCaptain(team) {
			missing++
		}
	}
	remaining := 0
	for _, c := range s.Pool {
		if s.IsCaptain(c) {
			remaining++
		}
	}
	return missing > 0 && missing == remaining
}

// Eligible reports whether team may draft character under the captain rule.
// It does not check that character is in the pool.
func (s Session) Eligible(team, character string) bool {
	return s.checkCaptain(team, character) == nil
}

func (s Session) checkCaptain(team, character string) error {
	if !s.MustPickCaptain() {
		return nil
	}
	captain := s.IsCaptain(character)
	switch has := s.HasCaptain(team); {
	case !has && !captain:
		return fmt.Errorf("%w: %s must draft one of %v", ErrCaptainRequired, team, s.remainingCaptains())
	case has && captain:
		return fmt.Errorf("%w: %s already has one, %q is needed by another team", ErrSecondCaptain, team, character)
	}
	return nil
}

func (s Session) remainingCaptains() []string {
	out := []string{}
	for _, c := range s.Pool {
		if s.IsCaptain(c) {
			out = append(out, c)
		}
	}
	return out
}

// CheckPartition verifies that the rosters and the pool together hold every
// character of universe exactly once.
func (s Session) CheckPartition(universe []string) error {
	count := make(map[string]int, len(universe))
	for _, c := range s.Pool {
		count[c]++
	}
	for _, team := range s.Teams {
		for _, c := range s.Rosters[team] {
			count[c]++
		}
	}
	for _, c := range universe {
		if count[c] != 1 {
			return fmt.Errorf("%w: %q held %d times", ErrPoolInvariant, c, count[c])
		}
		delete(count, c)
	}
	for c := range count {
		return fmt.Errorf("%w: %q is not a known character", ErrPoolInvariant, c)
	}
	return nil
}

func (s Session) clone() Session {
	out := s
	out.Teams = append([]string(nil), s.Teams...)
	out.Pool = append([]string{}, s.Pool...)
	out.Picks = append([]Pick{}, s.Picks...)
	out.Captains = append([]string{}, s.Captains...)
	out.Rosters = make(map[string][]string, len(s.Rosters))
	for team, members := range s.Rosters {
		out.Rosters[team] = append([]string{}, members...)
	}
	return out
}
