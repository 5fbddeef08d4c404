// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config holding every default.
// - Load layers a YAML file and environment variables on top of New().
// - Load failures are wrapped with this package's sentinel errors.
package config

import "slices"

var defaultCaptains = []string{
	"Mario", "Luigi", "Peach", "Daisy", "Yoshi", "Birdo",
	"Wario", "Waluigi", "Donkey Kong", "Diddy Kong", "Bowser", "Bowser Jr",
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"omitempty,oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Teams lists the default drafting teams of a new session, in draft order.
	Teams []string `koanf:"teams" validate:"min=2,unique,dive,required"`

	// Captains lists the characters that may captain a team. Empty turns the
	// captain rule off.
	Captains []string `koanf:"captains" validate:"unique,dive,required"`

	// DefaultLimit is the recommendation count when a request sets none.
	DefaultLimit int `koanf:"default_limit" validate:"gte=1"`

	// MaxLimit caps ?limit on the recommendation endpoints.
	MaxLimit int `koanf:"max_limit" validate:"gtefield=DefaultLimit"`

	// OutfieldLimit is the outfield list length when a request sets none.
	OutfieldLimit int `koanf:"outfield_limit" validate:"gte=1"`

	// OutfieldMinSpeed is the speed needed to be listed next to a centre fielder.
	OutfieldMinSpeed float64 `koanf:"outfield_min_speed" validate:"gte=0"`

	// DedupeSize bounds the number of remembered pick ids.
	DedupeSize int `koanf:"dedupe_size" validate:"gte=0"`

	// MaxSessions bounds the in-memory session store; 0 means unbounded.
	MaxSessions int `koanf:"max_sessions" validate:"gte=0"`

	// ChemK and ChemX0 shape the logistic team weight of the chemistry score.
	ChemK  float64 `koanf:"chem_k" validate:"gt=0"`
	ChemX0 float64 `koanf:"chem_x0"`

	// ChemNegativeWeight is the multiplier applied to hate links.
	ChemNegativeWeight float64 `koanf:"chem_negative_weight" validate:"gte=0"`

	// FallbackFactor scales league means for characters without stats.
	FallbackFactor float64 `koanf:"fallback_factor" validate:"gte=0,lte=1"`

	// Reference data files.
	AffinityPath   string `koanf:"affinity_path" validate:"required"`
	AttributesPath string `koanf:"attributes_path" validate:"required"`
	SeasonsPath    string `koanf:"seasons_path" validate:"required"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		Teams:              []string{"BenR", "Julian", "Tom", "Harry", "Kircher", "BenT", "Carbone", "Jmo"},
		Captains:           slices.Clone(defaultCaptains),
		DefaultLimit:       5,
		MaxLimit:           50,
		OutfieldLimit:      10,
		OutfieldMinSpeed:   50,
		DedupeSize:         100_000,
		MaxSessions:        1_000,
		ChemK:              0.9,
		ChemX0:             4.5,
		ChemNegativeWeight: 0.5,
		FallbackFactor:     0.25,
		AffinityPath:       "data/affinity.yaml",
		AttributesPath:     "data/attributes.yaml",
		SeasonsPath:        "data/seasons.yaml",
	}
}
