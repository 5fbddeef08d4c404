package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/chemdraft/internal/adapters/repository"
	service "github.com/okian/chemdraft/internal/app"
)

type pickRequest struct {
	Team      string `json:"team" validate:"required"`
	Character string `json:"character" validate:"required"`
	PickID    string `json:"pick_id,omitempty" validate:"omitempty,max=128"`
}

type pickResponse struct {
	Status string           `json:"status"`
	Pick   *repository.Pick `json:"pick,omitempty"`
}

// PicksHandler applies draft picks.
type PicksHandler struct {
	deps     PickDependencies
	validate *validator.Validate
}

// NewPicksHandler creates a new picks handler.
func NewPicksHandler(deps PickDependencies, v *validator.Validate) *PicksHandler {
	return &PicksHandler{deps: deps, validate: v}
}

// HandlePostPick handles POST /sessions/{id}/picks.
// Accepted picks answer 201. A replayed pick_id answers 200 with status
// "duplicate" and the recorded pick, or 409 when it names another pick.
func (h *PicksHandler) HandlePostPick(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_pick"
	var req pickRequest
	if err := decodeJSON(w, r, op, h.validate, &req); err != nil {
		writeDomainError(w, op, err)
		return
	}

	res, err := h.deps.Pick(r.Context(), r.PathValue("id"), service.PickRequest{
		Team:      req.Team,
		Character: req.Character,
		PickID:    req.PickID,
	})
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if res.Duplicate {
		writeJSON(w, http.StatusOK, pickResponse{Status: "duplicate", Pick: &res.Pick})
		return
	}
	writeJSON(w, http.StatusCreated, pickResponse{Status: "accepted", Pick: &res.Pick})
}
