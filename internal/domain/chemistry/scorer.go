// Package chemistry computes the chemistry score of a draft candidate against
// the drafting team's roster and the remaining undrafted pool.
package chemistry

import (
	"context"
	"math"

	"github.com/okian/chemdraft/internal/domain/affinity"
	"github.com/okian/chemdraft/internal/domain/model"
)

// Default scoring constants.
const (
	DefaultGrowthRate     = 0.9 // k of the team-weight logistic curve
	DefaultMidpoint       = 4.5 // x0: roster size at which team and pool weigh the same
	DefaultNegativeWeight = 0.5 // a hate link counts half a chemistry link
)

// Relations is the read side of the affinity graph the scorer needs.
type Relations interface {
	PositiveOf(c string) affinity.Set
	NegativeOf(c string) affinity.Set
	Has(c string) bool
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithGrowth sets the logistic growth rate k and midpoint x0 of the team weight.
func WithGrowth(k, x0 float64) Option {
	return func(s *Scorer) {
		if k > 0 {
			s.k = k
		}
		s.x0 = x0
	}
}

// WithNegativeWeight sets the multiplier applied to hate links.
func WithNegativeWeight(w float64) Option {
	return func(s *Scorer) {
		if w >= 0 {
			s.negWeight = w
		}
	}
}

// Input is one scoring request.
type Input struct {
	Candidate string
	// Team is the drafting team's current roster.
	Team []string
	// Available is the full undrafted pool, candidate included.
	Available []string
}

// Result carries the rounded score and the terms it was built from.
type Result struct {
	Candidate  string
	Score      float64
	Known      bool
	TeamWeight float64
	PoolWeight float64
	PosTeam    float64
	NegTeam    float64
	PosPool    float64
	NegPool    float64
	UniqueChem float64
}

// Scorer computes chemistry scores over an affinity graph. It holds no draft
// state and is safe for concurrent use.
type Scorer struct {
	graph     Relations
	k         float64
	x0        float64
	negWeight float64
}

// NewScorer creates a scorer over graph.
func NewScorer(graph Relations, opts ...Option) *Scorer {
	s := &Scorer{
		graph:     graph,
		k:         DefaultGrowthRate,
		x0:        DefaultMidpoint,
		negWeight: DefaultNegativeWeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TeamWeight returns the weight of chemistry with the current roster for a
// team of the given size. It grows logistically from ~0 to 1 as the roster
// fills; the pool weight is its complement.
func (s *Scorer) TeamWeight(teamSize int) float64 {
	return 1 / (1 + math.Exp(-s.k*(float64(teamSize)-s.x0)))
}

// Score computes the chemistry score of in.Candidate. A candidate with no
// affinity row scores 0 and is reported with Known unset; reporting the gap
// is left to the caller.
func (s *Scorer) Score(_ context.Context, in Input) Result {
	if !s.graph.Has(in.Candidate) {
		return Result{Candidate: in.Candidate}
	}

	others := make([]string, 0, len(in.Available))
	for _, c := range in.Available {
		if c != in.Candidate {
			others = append(others, c)
		}
	}

	pos := s.graph.PositiveOf(in.Candidate)
	neg := s.graph.NegativeOf(in.Candidate)

	r := Result{Candidate: in.Candidate, Known: true}
	r.TeamWeight = s.TeamWeight(len(in.Team))
	r.PoolWeight = 1 - r.TeamWeight
	r.PosTeam = float64(pos.CountIn(in.Team))
	r.NegTeam = float64(neg.CountIn(in.Team)) * s.negWeight
	r.PosPool = float64(pos.CountIn(others))
	r.NegPool = float64(neg.CountIn(others)) * s.negWeight
	r.UniqueChem = float64(s.uniqueChem(pos, in.Team))

	raw := r.TeamWeight*(r.PosTeam-r.NegTeam) +
		r.PoolWeight*(r.PosPool-r.NegPool) +
		r.PoolWeight*r.UniqueChem
	r.Score = model.Round2(raw)
	return r
}

// uniqueChem counts the candidate's chemistry links that no teammate already
// brings to the roster.
func (s *Scorer) uniqueChem(pos affinity.Set, team []string) int {
	if len(team) == 0 {
		return pos.Len()
	}
	covered := make(map[string]struct{})
	for _, m := range team {
		for _, c := range s.graph.PositiveOf(m).Slice() {
			covered[c] = struct{}{}
		}
	}
	n := 0
	for _, c := range pos.Slice() {
		if _, ok := covered[c]; !ok {
			n++
		}
	}
	return n
}
