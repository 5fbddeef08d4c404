package draftsim

import (
	"fmt"

	"github.com/okian/chemdraft/internal/adapters/repository"
	"github.com/okian/chemdraft/internal/domain/types"
)

// verifySession checks a finished draft: the rosters and the pool partition
// universe, every pick was applied once, roster sizes differ by at most one,
// and the board agrees with the rosters.
func verifySession(s repository.Session, b types.Board, universe []string, picks int) error {
	if err := s.CheckPartition(universe); err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}
	if len(s.Picks) != picks {
		return fmt.Errorf("%w: %d picks applied, %d made", ErrVerification, len(s.Picks), picks)
	}

	lo, hi := -1, 0
	for _, team := range s.Teams {
		n := len(s.Roster(team))
		if lo < 0 || n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	if hi-lo > 1 {
		return fmt.Errorf("%w: roster sizes range from %d to %d", ErrVerification, lo, hi)
	}

	if len(b.Rounds) != hi {
		return fmt.Errorf("%w: board has %d rounds, longest roster %d", ErrVerification, len(b.Rounds), hi)
	}
	for i, round := range b.Rounds {
		for team, character := range round.Picks {
			roster := s.Roster(team)
			if i >= len(roster) || roster[i] != character {
				return fmt.Errorf("%w: board round %d lists %q for %s", ErrVerification, round.Round, character, team)
			}
		}
	}
	return nil
}
