// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/okian/chemdraft/internal/adapters/refdata"
	"github.com/okian/chemdraft/internal/adapters/repository"
	service "github.com/okian/chemdraft/internal/app"
	"github.com/okian/chemdraft/internal/domain/types"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SessionDependencies
	PickDependencies
	RecommendationDependencies
	ReferenceDependencies
}

// SessionDependencies covers the session lifecycle.
type SessionDependencies interface {
	CreateSession(ctx context.Context, teams []string) (repository.Session, error)
	Session(ctx context.Context, id string) (repository.Session, error)
	Reset(ctx context.Context, id string) (repository.Session, error)
	DeleteSession(ctx context.Context, id string) error
	Board(ctx context.Context, id string) (types.Board, error)
}

// PickDependencies applies picks.
type PickDependencies interface {
	Pick(ctx context.Context, id string, req service.PickRequest) (service.PickResult, error)
}

// RecommendationDependencies ranks the undrafted pool.
type RecommendationDependencies interface {
	Recommend(ctx context.Context, id, team string, limit int) (types.TeamRecommendations, error)
	Outfielders(ctx context.Context, id, team, cf string, limit int) ([]types.OutfieldPick, error)
}

// ReferenceDependencies exposes the reference data.
type ReferenceDependencies interface {
	Affinity(ctx context.Context, character string) (types.Affinity, error)
	DataQuality(ctx context.Context) (refdata.Quality, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler         *HealthHandler
	statsHandler          *StatsHandler
	sessionsHandler       *SessionsHandler
	picksHandler          *PicksHandler
	recommendationHandler *RecommendationHandler
	referenceHandler      *ReferenceHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	return &Server{
		healthHandler:         NewHealthHandler(),
		statsHandler:          NewStatsHandler(statsProvider),
		sessionsHandler:       NewSessionsHandler(deps, v),
		picksHandler:          NewPicksHandler(deps, v),
		recommendationHandler: NewRecommendationHandler(deps),
		referenceHandler:      NewReferenceHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /sessions", MetricsMiddleware(s.sessionsHandler.HandleCreate, "sessions"))
	mux.HandleFunc("GET /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleGet, "session"))
	mux.HandleFunc("DELETE /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleDelete, "session"))
	mux.HandleFunc("POST /sessions/{id}/reset", MetricsMiddleware(s.sessionsHandler.HandleReset, "reset"))
	mux.HandleFunc("GET /sessions/{id}/board", MetricsMiddleware(s.sessionsHandler.HandleBoard, "board"))
	mux.HandleFunc("POST /sessions/{id}/picks", MetricsMiddleware(s.picksHandler.HandlePostPick, "picks"))

	mux.HandleFunc("GET /sessions/{id}/teams/{team}/recommendations",
		MetricsMiddleware(s.recommendationHandler.HandleRecommendations, "recommendations"))
	mux.HandleFunc("GET /sessions/{id}/teams/{team}/outfield",
		MetricsMiddleware(s.recommendationHandler.HandleOutfield, "outfield"))

	mux.HandleFunc("GET /characters/{name}/affinity", MetricsMiddleware(s.referenceHandler.HandleAffinity, "affinity"))
	mux.HandleFunc("GET /data/quality", MetricsMiddleware(s.referenceHandler.HandleQuality, "quality"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates service and store errors into HTTP statuses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	err = tag(op, err)
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, repository.ErrInvalidTeams):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, repository.ErrSessionNotFound), errors.Is(err, repository.ErrUnknownTeam):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrInvalidPick):
		writeError(w, http.StatusConflict, "invalid_pick", err)
	case errors.Is(err, repository.ErrPickIDConflict):
		writeError(w, http.StatusConflict, "pick_id_conflict", err)
	case errors.Is(err, repository.ErrCaptainRequired), errors.Is(err, repository.ErrSecondCaptain):
		writeError(w, http.StatusConflict, "captain_rule", err)
	case errors.Is(err, repository.ErrTooManySessions):
		writeError(w, http.StatusTooManyRequests, "too_many_sessions", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// tag wraps err with op unless a handler helper already did.
func tag(op string, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return err
	}
	return Wrap(op, err)
}

// decodeJSON reads a bounded JSON body into dst and validates it. An empty
// body leaves dst untouched. Failures are ErrBadRequest raised by op.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, v *validator.Validate, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return WrapKind(op, ErrBadRequest, err)
	}
	if err := v.Struct(dst); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}

// queryLimit parses ?<name>=N. A missing value yields 0.
func queryLimit(r *http.Request, op, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, WrapKind(op, ErrBadRequest, fmt.Errorf("%s must be a non-negative integer, got %q", name, raw))
	}
	return n, nil
}
