package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/hireloop/evalboard/internal/domain/model"
)

// InterviewDependencies defines the interface for interview scheduling.
type InterviewDependencies interface {
	ScheduleInterview(ctx context.Context, candidateID int, scheduledAt time.Time) (model.Interview, error)
	ListInterviews(ctx context.Context, limit int) ([]model.Interview, error)
}

// InterviewsHandler handles interview requests.
type InterviewsHandler struct {
	deps InterviewDependencies
}

// NewInterviewsHandler creates a new interviews handler.
func NewInterviewsHandler(deps InterviewDependencies) *InterviewsHandler {
	return &InterviewsHandler{deps: deps}
}

// interviewRequest mirrors the OpenAPI schema for POST /interviews.
type interviewRequest struct {
	CandidateID int       `json:"candidate_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

func (i interviewRequest) validate() error {
	switch {
	case i.CandidateID <= 0:
		return errors.New("missing candidate_id")
	case i.ScheduledAt.IsZero():
		return errors.New("missing scheduled_at")
	}
	return nil
}

// HandleInterviews handles GET and POST on /interviews.
func (h *InterviewsHandler) HandleInterviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
				return
			}
			limit = n
		}
		interviews, err := h.deps.ListInterviews(r.Context(), limit)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, interviews)
	case http.MethodPost:
		var req interviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		iv, err := h.deps.ScheduleInterview(r.Context(), req.CandidateID, req.ScheduledAt)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, iv)
	default:
		http.NotFound(w, r)
	}
}
