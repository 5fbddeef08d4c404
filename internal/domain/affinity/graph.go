// Package affinity indexes the chemistry reference table: for every character
// the set of characters it has chemistry with and the set it hates.
package affinity

import (
	"context"

	"github.com/okian/chemdraft/internal/domain/model"
	"github.com/okian/chemdraft/pkg/logger"
)

type entry struct {
	positive Set
	negative Set
}

// Graph is a read-only name -> relationship index, built once at load time.
type Graph struct {
	index map[string]entry
	names []string
}

// NewGraph indexes records. Repeated rows for the same character are merged.
func NewGraph(ctx context.Context, records []model.AffinityRecord, log logger.Logger) *Graph {
	if log == nil {
		log = logger.Nop()
	}
	g := &Graph{index: make(map[string]entry, len(records))}
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		prev, dup := g.index[r.Name]
		if dup {
			log.Warn(ctx, "duplicate affinity row merged", logger.String("character", r.Name))
			g.index[r.Name] = entry{
				positive: prev.positive.union(r.Chemistry),
				negative: prev.negative.union(r.Hate),
			}
			continue
		}
		g.index[r.Name] = entry{positive: NewSet(r.Chemistry...), negative: NewSet(r.Hate...)}
		g.names = append(g.names, r.Name)
	}
	return g
}

// PositiveOf returns the characters c has chemistry with. Unknown characters
// yield the empty set.
func (g *Graph) PositiveOf(c string) Set {
	return g.index[c].positive
}

// NegativeOf returns the characters c hates. Unknown characters yield the
// empty set.
func (g *Graph) NegativeOf(c string) Set {
	return g.index[c].negative
}

// Has reports whether c has a row in the reference table.
func (g *Graph) Has(c string) bool {
	_, ok := g.index[c]
	return ok
}

// Names lists known characters in load order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Len returns the number of indexed characters.
func (g *Graph) Len() int { return len(g.names) }
