package api

import (
	"net/http"
)

// ReferenceHandler exposes the loaded reference tables.
type ReferenceHandler struct {
	deps ReferenceDependencies
}

// NewReferenceHandler creates a new reference data handler.
func NewReferenceHandler(deps ReferenceDependencies) *ReferenceHandler {
	return &ReferenceHandler{deps: deps}
}

// HandleAffinity handles GET /characters/{name}/affinity. Unknown characters
// answer 200 with known=false and empty sets.
func (h *ReferenceHandler) HandleAffinity(w http.ResponseWriter, r *http.Request) {
	const op = "api.affinity"
	aff, err := h.deps.Affinity(r.Context(), r.PathValue("name"))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, aff)
}

// HandleQuality handles GET /data/quality.
func (h *ReferenceHandler) HandleQuality(w http.ResponseWriter, r *http.Request) {
	const op = "api.data_quality"
	q, err := h.deps.DataQuality(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
