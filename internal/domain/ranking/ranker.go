// Package ranking orders draft candidates by the sum of their scaled metrics.
package ranking

import (
	"sort"

	"github.com/okian/chemdraft/internal/domain/model"
	"github.com/okian/chemdraft/internal/domain/types"
)

// Entry is one candidate of a ranking batch.
type Entry struct {
	Candidate string
	Raw       model.MetricVector
	Scaled    model.MetricVector
}

// Rank scores every entry with the unit-weighted sum of its scaled metrics and
// orders them by total descending, then by candidate name ascending. Ranks are
// 1-based. An empty batch yields an empty, non-nil slice.
func Rank(entries []Entry) []types.Recommendation {
	out := make([]types.Recommendation, 0, len(entries))
	for _, e := range entries {
		out = append(out, types.Recommendation{
			Candidate:  e.Candidate,
			TotalScore: model.Round2(e.Scaled.Sum()),
			Scaled:     e.Scaled,
			Raw:        e.Raw,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].Candidate < out[j].Candidate
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Top returns the first n recommendations. A non-positive n returns all of them.
func Top(recs []types.Recommendation, n int) []types.Recommendation {
	if n <= 0 || n >= len(recs) {
		return recs
	}
	return recs[:n]
}
