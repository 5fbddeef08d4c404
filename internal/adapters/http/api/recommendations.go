package api

import (
	"net/http"

	"github.com/okian/chemdraft/internal/domain/types"
)

type outfieldResponse struct {
	Team        string               `json:"team"`
	CenterField string               `json:"center_field,omitempty"`
	Candidates  []types.OutfieldPick `json:"candidates"`
}

// RecommendationHandler serves ranked candidate lists for a team.
type RecommendationHandler struct {
	deps RecommendationDependencies
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(deps RecommendationDependencies) *RecommendationHandler {
	return &RecommendationHandler{deps: deps}
}

// HandleRecommendations handles GET /sessions/{id}/teams/{team}/recommendations?limit=N.
// While the captain rule binds, only candidates the team may draft are listed.
func (h *RecommendationHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommendations"
	limit, err := queryLimit(r, op, "limit")
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	recs, err := h.deps.Recommend(r.Context(), r.PathValue("id"), r.PathValue("team"), limit)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if recs.Recommendations == nil {
		recs.Recommendations = []types.AnnotatedRecommendation{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// HandleOutfield handles GET /sessions/{id}/teams/{team}/outfield?cf=NAME&limit=N.
func (h *RecommendationHandler) HandleOutfield(w http.ResponseWriter, r *http.Request) {
	const op = "api.outfield"
	limit, err := queryLimit(r, op, "limit")
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	team, cf := r.PathValue("team"), r.URL.Query().Get("cf")
	picks, err := h.deps.Outfielders(r.Context(), r.PathValue("id"), team, cf, limit)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if picks == nil {
		picks = []types.OutfieldPick{}
	}
	writeJSON(w, http.StatusOK, outfieldResponse{Team: team, CenterField: cf, Candidates: picks})
}
