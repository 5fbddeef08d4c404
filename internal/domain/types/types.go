// Package types contains the read shapes returned by the engine and the API.
package types

import "github.com/okian/chemdraft/internal/domain/model"

// Recommendation is one ranked candidate.
type Recommendation struct {
	Rank       int                `json:"rank"`
	Candidate  string             `json:"candidate"`
	TotalScore float64            `json:"total_score"`
	Scaled     model.MetricVector `json:"scaled"`
	Raw        model.MetricVector `json:"raw"`
}

// Annotation describes a candidate's links to a roster for display.
type Annotation struct {
	ChemistryWith []string `json:"chemistry_with"`
	Hates         []string `json:"hates"`
	HatedBy       []string `json:"hated_by"`
	Captain       bool     `json:"captain"`
}

// AnnotatedRecommendation pairs a recommendation with its roster annotation.
type AnnotatedRecommendation struct {
	Recommendation
	Annotation Annotation `json:"annotation"`
}

// TeamRecommendations is a team's ranked list together with its standing
// under the captain rule.
type TeamRecommendations struct {
	Team            string                    `json:"team"`
	HasCaptain      bool                      `json:"has_captain"`
	MustPickCaptain bool                      `json:"must_pick_captain"`
	Recommendations []AnnotatedRecommendation `json:"recommendations"`
}

// OutfieldPick is one entry of the outfield helper list.
type OutfieldPick struct {
	Candidate string  `json:"candidate"`
	Speed     float64 `json:"speed"`
	// ChemistryWith names the designated centre fielder when the candidate has
	// chemistry with them and clears the speed threshold.
	ChemistryWith string `json:"chemistry_with,omitempty"`
}

// Affinity is the public view of a character's relationship sets.
type Affinity struct {
	Character string   `json:"character"`
	Known     bool     `json:"known"`
	Chemistry []string `json:"chemistry"`
	Hate      []string `json:"hate"`
}

// BoardRound lists the character each team took in one round. Teams that
// have not picked in the round yet are absent.
type BoardRound struct {
	Round int               `json:"round"`
	Picks map[string]string `json:"picks"`
}

// Board is the round-by-round view of a draft.
type Board struct {
	Teams  []string     `json:"teams"`
	Rounds []BoardRound `json:"rounds"`
}
