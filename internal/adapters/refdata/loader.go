// Package refdata loads the chemistry, attribute and season reference tables
// from YAML files.
package refdata

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/chemdraft/internal/domain/model"
	"github.com/okian/chemdraft/pkg/logger"
	"github.com/okian/chemdraft/pkg/metrics"
)

// Top-level keys of the reference files.
const (
	affinityKey   = "characters"
	attributesKey = "players"
	seasonsKey    = "seasons"
)

// Paths locates the three reference files.
type Paths struct {
	Affinity   string
	Attributes string
	Seasons    string
}

// Tables holds the loaded reference rows in file order.
type Tables struct {
	Affinity   []model.AffinityRecord
	Attributes []model.AttributeRecord
	Seasons    []model.SeasonRecord
}

// Universe returns the distinct character names of the attribute table in
// load order. It is the full draftable pool.
func (t *Tables) Universe() []string {
	seen := make(map[string]struct{}, len(t.Attributes))
	out := make([]string, 0, len(t.Attributes))
	for _, a := range t.Attributes {
		if _, dup := seen[a.Name]; dup {
			continue
		}
		seen[a.Name] = struct{}{}
		out = append(out, a.Name)
	}
	return out
}

// Option applies a configuration option to Load.
type Option func(*loader)

type loader struct {
	logger logger.Logger
}

// WithLogger sets the logger used while loading.
func WithLogger(l logger.Logger) Option {
	return func(ld *loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// Load reads and validates the three reference tables. The attribute table
// defines the character universe and must not be empty; the other two may be.
func Load(ctx context.Context, paths Paths, opts ...Option) (*Tables, error) {
	ld := &loader{logger: logger.Nop()}
	for _, opt := range opts {
		opt(ld)
	}

	t := &Tables{}
	if err := readTable(paths.Affinity, affinityKey, &t.Affinity); err != nil {
		return nil, err
	}
	if err := readTable(paths.Attributes, attributesKey, &t.Attributes); err != nil {
		return nil, err
	}
	if err := readTable(paths.Seasons, seasonsKey, &t.Seasons); err != nil {
		return nil, err
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	metrics.UpdateReferenceRows("affinity", len(t.Affinity))
	metrics.UpdateReferenceRows("attributes", len(t.Attributes))
	metrics.UpdateReferenceRows("seasons", len(t.Seasons))

	ld.logger.Info(ctx, "reference data loaded",
		logger.Int("affinity_rows", len(t.Affinity)),
		logger.Int("attribute_rows", len(t.Attributes)),
		logger.Int("season_rows", len(t.Seasons)),
		logger.Int("universe", len(t.Universe())))
	return t, nil
}

func readTable(path, key string, out any) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoadTable, path, err)
	}
	if err := k.UnmarshalWithConf(key, out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoadTable, path, err)
	}
	return nil
}

func (t *Tables) validate() error {
	if len(t.Attributes) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyTable, attributesKey)
	}
	for i, r := range t.Affinity {
		if r.Name == "" {
			return fmt.Errorf("%w: %s[%d]: empty name", ErrInvalidRow, affinityKey, i)
		}
	}
	for i, r := range t.Attributes {
		if r.Name == "" {
			return fmt.Errorf("%w: %s[%d]: empty name", ErrInvalidRow, attributesKey, i)
		}
	}
	for i, r := range t.Seasons {
		if r.Name == "" {
			return fmt.Errorf("%w: %s[%d]: empty name", ErrInvalidRow, seasonsKey, i)
		}
	}
	return nil
}
