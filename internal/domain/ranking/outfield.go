package ranking

import (
	"sort"

	"github.com/okian/chemdraft/internal/domain/types"
)

// SpeedEntry is a candidate considered for the outfield.
type SpeedEntry struct {
	Candidate string
	Speed     float64
	// LinkedToCF is set when the candidate has chemistry with the designated
	// centre fielder.
	LinkedToCF bool
}

// Outfield orders candidates by speed descending, name ascending. When cf is
// not empty, linked candidates at or above minSpeed come first and are
// flagged with cf. The result is truncated to limit when limit is positive.
func Outfield(entries []SpeedEntry, cf string, minSpeed float64, limit int) []types.OutfieldPick {
	sorted := make([]SpeedEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Speed != sorted[j].Speed {
			return sorted[i].Speed > sorted[j].Speed
		}
		return sorted[i].Candidate < sorted[j].Candidate
	})

	out := make([]types.OutfieldPick, 0, len(sorted))
	if cf != "" {
		for _, e := range sorted {
			if e.LinkedToCF && e.Speed >= minSpeed {
				out = append(out, types.OutfieldPick{Candidate: e.Candidate, Speed: e.Speed, ChemistryWith: cf})
			}
		}
	}
	for _, e := range sorted {
		if cf != "" && e.LinkedToCF && e.Speed >= minSpeed {
			continue
		}
		out = append(out, types.OutfieldPick{Candidate: e.Candidate, Speed: e.Speed})
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
