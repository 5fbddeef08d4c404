// Package stats resolves the performance attributes of a draft candidate from
// the attribute and season tables, substituting a penalized league mean when a
// character has no data.
package stats

import (
	"github.com/okian/chemdraft/internal/domain/model"
)

// DefaultFallbackFactor scales the league mean used for characters with no
// data, so that unknown players rank below average rather than at it.
const DefaultFallbackFactor = 0.25

// Projection is the resolved stat line of one character.
type Projection struct {
	Slugging        float64
	HomeRuns        float64
	ChargeHitPower  float64
	SlapHitPower    float64
	Speed           float64
	PitchingStamina float64

	// SeasonFallback is set when the character had no season rows.
	SeasonFallback bool
	// AttributeFallback is set when the character had no attribute row.
	AttributeFallback bool
}

type seasonTotals struct {
	sluggingSum float64
	homeRuns    float64
	rows        int
}

// Projector is an immutable index over the stat tables.
type Projector struct {
	attributes map[string]model.AttributeRecord
	seasons    map[string]seasonTotals

	fallbackFactor    float64
	meanSlugging      float64
	meanHomeRuns      float64
	meanChargeHit     float64
	meanSlapHit       float64
	meanSpeed         float64
	meanPitchStamina  float64
	seasonRowCount    int
	attributeRowCount int
}

// Option applies a configuration option to the Projector.
type Option func(*Projector)

// WithFallbackFactor sets the multiplier applied to league means for
// characters with no data. Values outside [0,1] are ignored.
func WithFallbackFactor(f float64) Option {
	return func(p *Projector) {
		if f >= 0 && f <= 1 {
			p.fallbackFactor = f
		}
	}
}

// NewProjector indexes the attribute and season tables. When a character has
// more than one attribute row the first one wins.
func NewProjector(attributes []model.AttributeRecord, seasons []model.SeasonRecord, opts ...Option) *Projector {
	p := &Projector{
		attributes:     make(map[string]model.AttributeRecord, len(attributes)),
		seasons:        make(map[string]seasonTotals),
		fallbackFactor: DefaultFallbackFactor,
	}
	for _, opt := range opts {
		opt(p)
	}

	var charge, slap, speed, stamina float64
	for _, a := range attributes {
		charge += a.ChargeHitPower
		slap += a.SlapHitPower
		speed += a.Speed
		stamina += a.PitchingStamina
		p.attributeRowCount++
		if _, dup := p.attributes[a.Name]; !dup {
			p.attributes[a.Name] = a
		}
	}
	p.meanChargeHit = mean(charge, p.attributeRowCount)
	p.meanSlapHit = mean(slap, p.attributeRowCount)
	p.meanSpeed = mean(speed, p.attributeRowCount)
	p.meanPitchStamina = mean(stamina, p.attributeRowCount)

	var slugging, homeRuns float64
	for _, s := range seasons {
		slugging += s.SluggingPercentage
		homeRuns += s.HomeRuns
		p.seasonRowCount++
		t := p.seasons[s.Name]
		t.sluggingSum += s.SluggingPercentage
		t.homeRuns += s.HomeRuns
		t.rows++
		p.seasons[s.Name] = t
	}
	p.meanSlugging = mean(slugging, p.seasonRowCount)
	p.meanHomeRuns = mean(homeRuns, p.seasonRowCount)

	return p
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Project resolves the stat line of name.
func (p *Projector) Project(name string) Projection {
	var out Projection

	if t, ok := p.seasons[name]; ok {
		out.Slugging = t.sluggingSum / float64(t.rows)
		out.HomeRuns = t.homeRuns
	} else {
		out.SeasonFallback = true
		out.Slugging = p.fallbackFactor * p.meanSlugging
		out.HomeRuns = p.fallbackFactor * p.meanHomeRuns
	}

	if a, ok := p.attributes[name]; ok {
		out.ChargeHitPower = a.ChargeHitPower
		out.SlapHitPower = a.SlapHitPower
		out.Speed = a.Speed
		out.PitchingStamina = a.PitchingStamina
	} else {
		out.AttributeFallback = true
		out.ChargeHitPower = p.fallbackFactor * p.meanChargeHit
		out.SlapHitPower = p.fallbackFactor * p.meanSlapHit
		out.Speed = p.fallbackFactor * p.meanSpeed
		out.PitchingStamina = p.fallbackFactor * p.meanPitchStamina
	}
	return out
}

// HasSeasons reports whether name has at least one season row.
func (p *Projector) HasSeasons(name string) bool {
	_, ok := p.seasons[name]
	return ok
}

// HasAttributes reports whether name has an attribute row.
func (p *Projector) HasAttributes(name string) bool {
	_, ok := p.attributes[name]
	return ok
}

// Rows returns the number of attribute and season rows indexed.
func (p *Projector) Rows() (attributes, seasons int) {
	return p.attributeRowCount, p.seasonRowCount
}
