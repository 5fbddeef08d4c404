package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

type createSessionRequest struct {
	Teams []string `json:"teams" validate:"omitempty,unique,dive,required"`
}

// SessionsHandler serves the draft session lifecycle.
type SessionsHandler struct {
	deps     SessionDependencies
	validate *validator.Validate
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies, v *validator.Validate) *SessionsHandler {
	return &SessionsHandler{deps: deps, validate: v}
}

// HandleCreate handles POST /sessions. An empty body uses the configured teams.
func (h *SessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_session"
	var req createSessionRequest
	if err := decodeJSON(w, r, op, h.validate, &req); err != nil {
		writeDomainError(w, op, err)
		return
	}
	sess, err := h.deps.CreateSession(r.Context(), req.Teams)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, sess)
}

// HandleGet handles GET /sessions/{id}.
func (h *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_session"
	sess, err := h.deps.Session(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// HandleDelete handles DELETE /sessions/{id}.
func (h *SessionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_session"
	if err := h.deps.DeleteSession(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReset handles POST /sessions/{id}/reset.
func (h *SessionsHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset_session"
	sess, err := h.deps.Reset(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// HandleBoard handles GET /sessions/{id}/board.
func (h *SessionsHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	const op = "api.board"
	board, err := h.deps.Board(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}
