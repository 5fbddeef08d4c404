package draftsim

import (
	"errors"
	"testing"

	"github.com/okian/chemdraft/internal/adapters/repository"
	"github.com/okian/chemdraft/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVerifySession(t *testing.T) {
	Convey("Given a finished two-team draft", t, func() {
		universe := []string{"A", "B", "C"}
		sess := repository.Session{
			Teams:   []string{"X", "Y"},
			Rosters: map[string][]string{"X": {"A", "C"}, "Y": {"B"}},
			Pool:    []string{},
			Picks:   make([]repository.Pick, 3),
		}
		board := types.Board{Teams: sess.Teams, Rounds: []types.BoardRound{
			{Round: 1, Picks: map[string]string{"X": "A", "Y": "B"}},
			{Round: 2, Picks: map[string]string{"X": "C"}},
		}}

		Convey("Then it verifies", func() {
			So(verifySession(sess, board, universe, 3), ShouldBeNil)
		})

		Convey("Then a lost character fails the partition check", func() {
			sess.Rosters["Y"] = nil
			err := verifySession(sess, board, universe, 3)
			So(errors.Is(err, ErrVerification), ShouldBeTrue)
			So(errors.Is(err, repository.ErrPoolInvariant), ShouldBeTrue)
		})

		Convey("Then a pick count mismatch fails", func() {
			So(errors.Is(verifySession(sess, board, universe, 4), ErrVerification), ShouldBeTrue)
		})

		Convey("Then a board that disagrees with the rosters fails", func() {
			board.Rounds[1].Picks["X"] = "B"
			So(errors.Is(verifySession(sess, board, universe, 3), ErrVerification), ShouldBeTrue)
		})

		Convey("Then unbalanced rosters fail", func() {
			sess.Rosters = map[string][]string{"X": {"A", "B", "C"}, "Y": {}}
			board.Rounds = append(board.Rounds, types.BoardRound{Round: 3})
			So(errors.Is(verifySession(sess, board, universe, 3), ErrVerification), ShouldBeTrue)
		})
	})
}
