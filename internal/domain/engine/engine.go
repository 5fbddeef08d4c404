// Package engine ties the affinity graph, the chemistry scorer and the stat
// projector into the recommendation pipeline: build raw metric vectors for a
// candidate batch, rescale the batch, rank it.
package engine

import (
	"context"
	"slices"
	"time"

	"github.com/okian/chemdraft/internal/domain/affinity"
	"github.com/okian/chemdraft/internal/domain/chemistry"
	"github.com/okian/chemdraft/internal/domain/model"
	"github.com/okian/chemdraft/internal/domain/normalize"
	"github.com/okian/chemdraft/internal/domain/ranking"
	"github.com/okian/chemdraft/internal/domain/stats"
	"github.com/okian/chemdraft/internal/domain/types"
	"github.com/okian/chemdraft/pkg/logger"
	"github.com/okian/chemdraft/pkg/metrics"
)

// DefaultOutfieldMinSpeed is the speed a candidate needs to be promoted next
// to the designated centre fielder.
const DefaultOutfieldMinSpeed = 50

// Engine is stateless over draft state: every call receives the roster and
// pool it works on. It is safe for concurrent use.
type Engine struct {
	graph     *affinity.Graph
	projector *stats.Projector
	scorer    *chemistry.Scorer
	logger    logger.Logger

	chemOpts         []chemistry.Option
	outfieldMinSpeed float64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithChemistryOptions forwards options to the chemistry scorer.
func WithChemistryOptions(opts ...chemistry.Option) Option {
	return func(e *Engine) {
		e.chemOpts = append(e.chemOpts, opts...)
	}
}

// WithOutfieldMinSpeed sets the speed threshold of the outfield helper.
func WithOutfieldMinSpeed(s float64) Option {
	return func(e *Engine) {
		if s >= 0 {
			e.outfieldMinSpeed = s
		}
	}
}

// New creates an engine over loaded reference data.
func New(graph *affinity.Graph, projector *stats.Projector, opts ...Option) *Engine {
	e := &Engine{
		graph:            graph,
		projector:        projector,
		logger:           logger.Nop(),
		outfieldMinSpeed: DefaultOutfieldMinSpeed,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.scorer = chemistry.NewScorer(graph, e.chemOpts...)
	return e
}

// Recommend ranks every candidate of pool for the team holding roster. The
// pool is deduplicated keeping first occurrences; an empty pool yields an
// empty ranking.
func (e *Engine) Recommend(ctx context.Context, team, pool []string) []types.Recommendation {
	start := time.Now()
	candidates := dedupe(pool)

	entries := make([]ranking.Entry, len(candidates))
	raws := make([]model.MetricVector, len(candidates))
	var noAffinity, noSeasons, noAttributes []string
	for i, c := range candidates {
		chem := e.scorer.Score(ctx, chemistry.Input{Candidate: c, Team: team, Available: candidates})
		if !chem.Known {
			noAffinity = append(noAffinity, c)
		}
		p := e.projector.Project(c)
		if p.SeasonFallback {
			noSeasons = append(noSeasons, c)
		}
		if p.AttributeFallback {
			noAttributes = append(noAttributes, c)
		}
		raws[i] = model.MetricVector{
			ChemScore:       chem.Score,
			Slugging:        p.Slugging,
			ChargeHitPower:  p.ChargeHitPower,
			SlapHitPower:    p.SlapHitPower,
			Speed:           p.Speed,
			HomeRuns:        p.HomeRuns,
			PitchingStamina: p.PitchingStamina,
		}
	}
	e.reportMissing(ctx, noAffinity, noSeasons, noAttributes)

	scaled := normalize.Batch(raws)
	for i, c := range candidates {
		entries[i] = ranking.Entry{Candidate: c, Raw: raws[i], Scaled: scaled[i]}
	}
	recs := ranking.Rank(entries)

	metrics.RecordRecommendation(float64(time.Since(start).Microseconds())/1000, len(candidates))
	return recs
}

// reportMissing logs and counts the reference gaps of one ranked batch: one
// warning for candidates without affinity rows, one debug line for the
// performance fallbacks, and at most one metric increment per table.
func (e *Engine) reportMissing(ctx context.Context, noAffinity, noSeasons, noAttributes []string) {
	if len(noAffinity) > 0 {
		metrics.RecordMissingData("affinity")
		e.logger.Warn(ctx, "candidates missing from affinity table; chemistry defaults to 0",
			logger.Strings("candidates", noAffinity))
	}
	if len(noSeasons) > 0 {
		metrics.RecordMissingData("seasons")
	}
	if len(noAttributes) > 0 {
		metrics.RecordMissingData("attributes")
	}
	if len(noSeasons) > 0 || len(noAttributes) > 0 {
		e.logger.Debug(ctx, "performance data substituted with league fallback",
			logger.Strings("no_seasons", noSeasons),
			logger.Strings("no_attributes", noAttributes))
	}
}

// Annotate describes how candidate relates to the members of team.
func (e *Engine) Annotate(team []string, candidate string) types.Annotation {
	a := types.Annotation{
		ChemistryWith: e.graph.PositiveOf(candidate).Members(team),
		Hates:         e.graph.NegativeOf(candidate).Members(team),
		HatedBy:       []string{},
	}
	for _, m := range team {
		if e.graph.NegativeOf(m).Has(candidate) {
			a.HatedBy = append(a.HatedBy, m)
		}
	}
	return a
}

// RecommendAnnotated ranks pool for team and annotates the first limit
// entries accepted by eligible (nil accepts all). A non-positive limit keeps
// the whole ranking.
func (e *Engine) RecommendAnnotated(ctx context.Context, team, pool []string, limit int, eligible func(string) bool) []types.AnnotatedRecommendation {
	recs := e.Recommend(ctx, team, pool)
	if eligible != nil {
		recs = slices.DeleteFunc(recs, func(r types.Recommendation) bool { return !eligible(r.Candidate) })
	}
	recs = ranking.Top(recs, limit)
	out := make([]types.AnnotatedRecommendation, len(recs))
	for i, r := range recs {
		out[i] = types.AnnotatedRecommendation{Recommendation: r, Annotation: e.Annotate(team, r.Candidate)}
	}
	return out
}

// Outfielders lists pool candidates for the corner outfield by speed. When cf
// names a centre fielder, fast candidates with chemistry toward cf lead.
func (e *Engine) Outfielders(pool []string, cf string, limit int) []types.OutfieldPick {
	candidates := dedupe(pool)
	entries := make([]ranking.SpeedEntry, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, ranking.SpeedEntry{
			Candidate:  c,
			Speed:      e.projector.Project(c).Speed,
			LinkedToCF: cf != "" && e.graph.PositiveOf(c).Has(cf),
		})
	}
	return ranking.Outfield(entries, cf, e.outfieldMinSpeed, limit)
}

// Affinity returns the relationship sets of character.
func (e *Engine) Affinity(character string) types.Affinity {
	return types.Affinity{
		Character: character,
		Known:     e.graph.Has(character),
		Chemistry: e.graph.PositiveOf(character).Slice(),
		Hate:      e.graph.NegativeOf(character).Slice(),
	}
}

// TeamWeight exposes the scorer's roster weight for a team of size n.
func (e *Engine) TeamWeight(n int) float64 {
	return e.scorer.TeamWeight(n)
}

func dedupe(pool []string) []string {
	seen := make(map[string]struct{}, len(pool))
	out := make([]string, 0, len(pool))
	for _, c := range pool {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
