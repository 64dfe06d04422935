// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	repository "github.com/hireloop/evalboard/internal/adapters/repository"
	"github.com/hireloop/evalboard/internal/app"
	"github.com/hireloop/evalboard/internal/auth"
	"github.com/hireloop/evalboard/internal/domain/model"
	"github.com/hireloop/evalboard/internal/domain/scoring"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Dashboard and candidate-facing reads.
	Dashboard(ctx context.Context, ident auth.Identity, search string) (app.DashboardView, error)
	History(ctx context.Context, ident auth.Identity) ([]app.HistoryEntry, error)

	// Session and quiz flows.
	StartSession(ctx context.Context, ident auth.Identity, evaluationID int) (model.Attempt, error)
	Quiz(ctx context.Context, evaluationID int) (model.Evaluation, error)
	Submit(ctx context.Context, evaluationID int, answers []scoring.Answer) (scoring.Result, error)

	// Evaluation administration.
	ListEvaluations(ctx context.Context) ([]model.Evaluation, error)
	GetEvaluation(ctx context.Context, id int) (model.Evaluation, error)
	CreateEvaluation(ctx context.Context, in app.EvaluationInput) (model.Evaluation, error)
	UpdateEvaluation(ctx context.Context, pathID int, in app.EvaluationInput) (model.Evaluation, error)
	DeleteEvaluation(ctx context.Context, id int) error

	// Interview scheduling.
	ScheduleInterview(ctx context.Context, candidateID int, scheduledAt time.Time) (model.Interview, error)
	ListInterviews(ctx context.Context, limit int) ([]model.Interview, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	dashboardHandler   *DashboardHandler
	sessionsHandler    *SessionsHandler
	historyHandler     *HistoryHandler
	evaluationsHandler *EvaluationsHandler
	interviewsHandler  *InterviewsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, resolver auth.Resolver, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		dashboardHandler:   NewDashboardHandler(deps, resolver),
		sessionsHandler:    NewSessionsHandler(deps, resolver),
		historyHandler:     NewHistoryHandler(deps, resolver),
		evaluationsHandler: NewEvaluationsHandler(deps),
		interviewsHandler:  NewInterviewsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleGetDashboard, "dashboard"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandlePostSession, "sessions"))
	mux.HandleFunc("/history", MetricsMiddleware(s.historyHandler.HandleGetHistory, "history"))
	mux.HandleFunc("/evaluations", MetricsMiddleware(s.evaluationsHandler.HandleCollection, "evaluations"))
	mux.HandleFunc("/evaluations/", MetricsMiddleware(s.evaluationsHandler.HandleItem, "evaluations"))
	mux.HandleFunc("/interviews", MetricsMiddleware(s.interviewsHandler.HandleInterviews, "interviews"))
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	resp := errorResponse{Code: code}
	if err != nil {
		msg = err.Error()
		var verr *app.ValidationError
		if errors.As(err, &verr) {
			resp.Fields = verr.Fields
		}
	}
	resp.Message = msg
	writeJSON(w, status, resp)
}

// writeAppError translates the service error taxonomy to HTTP statuses.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, app.ErrIDMismatch):
		writeError(w, http.StatusBadRequest, "id_mismatch", err)
	case isValidation(err):
		writeError(w, http.StatusBadRequest, "validation_failed", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

func isValidation(err error) bool {
	var verr *app.ValidationError
	return errors.As(err, &verr)
}

// writeUnauthenticated issues the bearer challenge expected by API clients.
func writeUnauthenticated(w http.ResponseWriter, err error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="evalboard"`)
	writeError(w, http.StatusUnauthorized, "unauthenticated", err)
}
