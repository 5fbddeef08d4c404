// Package model contains the reference records and metric shapes shared by
// the draft engine and its collaborators.
package model

import "math"

// AffinityRecord is one row of the chemistry reference table.
type AffinityRecord struct {
	Name      string   `koanf:"name"`
	Chemistry []string `koanf:"chemistry"`
	Hate      []string `koanf:"hate"`
}

// AttributeRecord is one row of the player attribute table.
type AttributeRecord struct {
	Name            string  `koanf:"name"`
	ChargeHitPower  float64 `koanf:"charge_hit_power"`
	SlapHitPower    float64 `koanf:"slap_hit_power"`
	Speed           float64 `koanf:"speed"`
	PitchingStamina float64 `koanf:"pitching_stamina"`
}

// SeasonRecord is one season line of batting performance for a character.
// A character may have zero or more of them.
type SeasonRecord struct {
	Name               string  `koanf:"name"`
	SluggingPercentage float64 `koanf:"slugging_percentage"`
	HomeRuns           float64 `koanf:"home_runs"`
}

// MetricVector holds the per-candidate metrics that feed the ranking. The
// same shape carries raw values and their [0,1] rescaled counterparts.
type MetricVector struct {
	ChemScore       float64 `json:"chem_score"`
	Slugging        float64 `json:"slugging"`
	ChargeHitPower  float64 `json:"charge_hit_power"`
	SlapHitPower    float64 `json:"slap_hit_power"`
	Speed           float64 `json:"speed"`
	HomeRuns        float64 `json:"home_runs"`
	PitchingStamina float64 `json:"pitching_stamina"`
}

// Metric addresses a single field of a MetricVector.
type Metric struct {
	Name string
	Ref  func(v *MetricVector) *float64
}

// Metrics enumerates every MetricVector field in display order.
var Metrics = []Metric{
	{Name: "chem_score", Ref: func(v *MetricVector) *float64 { return &v.ChemScore }},
	{Name: "slugging", Ref: func(v *MetricVector) *float64 { return &v.Slugging }},
	{Name: "charge_hit_power", Ref: func(v *MetricVector) *float64 { return &v.ChargeHitPower }},
	{Name: "slap_hit_power", Ref: func(v *MetricVector) *float64 { return &v.SlapHitPower }},
	{Name: "speed", Ref: func(v *MetricVector) *float64 { return &v.Speed }},
	{Name: "home_runs", Ref: func(v *MetricVector) *float64 { return &v.HomeRuns }},
	{Name: "pitching_stamina", Ref: func(v *MetricVector) *float64 { return &v.PitchingStamina }},
}

// Sum returns the unit-weighted sum of all metrics.
func (v MetricVector) Sum() float64 {
	return v.ChemScore + v.Slugging + v.ChargeHitPower + v.SlapHitPower + v.Speed + v.HomeRuns + v.PitchingStamina
}

// Round2 rounds x half away from zero to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
