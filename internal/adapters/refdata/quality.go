package refdata

import "sort"

// Quality lists the gaps between the reference tables.
type Quality struct {
	Universe int `json:"universe"`
	// MissingAffinity are draftable characters without an affinity row; their
	// chemistry score is always 0.
	MissingAffinity []string `json:"missing_affinity"`
	// MissingSeasons are draftable characters without season rows; they get
	// the league fallback.
	MissingSeasons []string `json:"missing_seasons"`
	// UnknownReferences are names used in chemistry or hate lists that are not
	// in the universe, sorted.
	UnknownReferences []string `json:"unknown_references"`
}

// Quality reports which draftable characters rely on defaults.
func (t *Tables) Quality() Quality {
	universe := t.Universe()
	inUniverse := make(map[string]struct{}, len(universe))
	for _, n := range universe {
		inUniverse[n] = struct{}{}
	}
	hasAffinity := make(map[string]struct{}, len(t.Affinity))
	unknown := make(map[string]struct{})
	for _, r := range t.Affinity {
		hasAffinity[r.Name] = struct{}{}
		for _, l := range [][]string{r.Chemistry, r.Hate} {
			for _, n := range l {
				if _, ok := inUniverse[n]; !ok {
					unknown[n] = struct{}{}
				}
			}
		}
	}
	hasSeasons := make(map[string]struct{}, len(t.Seasons))
	for _, r := range t.Seasons {
		hasSeasons[r.Name] = struct{}{}
	}

	q := Quality{
		Universe:          len(universe),
		MissingAffinity:   []string{},
		MissingSeasons:    []string{},
		UnknownReferences: make([]string, 0, len(unknown)),
	}
	for _, n := range universe {
		if _, ok := hasAffinity[n]; !ok {
			q.MissingAffinity = append(q.MissingAffinity, n)
		}
		if _, ok := hasSeasons[n]; !ok {
			q.MissingSeasons = append(q.MissingSeasons, n)
		}
	}
	for n := range unknown {
		q.UnknownReferences = append(q.UnknownReferences, n)
	}
	sort.Strings(q.UnknownReferences)
	return q
}
