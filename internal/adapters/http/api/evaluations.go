package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/hireloop/evalboard/internal/app"
	"github.com/hireloop/evalboard/internal/domain/model"
	"github.com/hireloop/evalboard/internal/domain/scoring"
)

// EvaluationDependencies defines the interface for evaluation administration
// and the quiz flows hanging off a single evaluation.
type EvaluationDependencies interface {
	ListEvaluations(ctx context.Context) ([]model.Evaluation, error)
	GetEvaluation(ctx context.Context, id int) (model.Evaluation, error)
	CreateEvaluation(ctx context.Context, in app.EvaluationInput) (model.Evaluation, error)
	UpdateEvaluation(ctx context.Context, pathID int, in app.EvaluationInput) (model.Evaluation, error)
	DeleteEvaluation(ctx context.Context, id int) error
	Quiz(ctx context.Context, evaluationID int) (model.Evaluation, error)
	Submit(ctx context.Context, evaluationID int, answers []scoring.Answer) (scoring.Result, error)
}

// EvaluationsHandler handles the evaluation collection and item routes.
type EvaluationsHandler struct {
	deps EvaluationDependencies
}

// NewEvaluationsHandler creates a new evaluations handler.
func NewEvaluationsHandler(deps EvaluationDependencies) *EvaluationsHandler {
	return &EvaluationsHandler{deps: deps}
}

// submitRequest mirrors the OpenAPI schema for POST /evaluations/{id}/submit.
type submitRequest struct {
	Answers []answerInput `json:"answers"`
}

type answerInput struct {
	QuestionID       int  `json:"question_id"`
	SelectedOptionID *int `json:"selected_option_id"`
}

func (r submitRequest) toAnswers() []scoring.Answer {
	out := make([]scoring.Answer, 0, len(r.Answers))
	for _, a := range r.Answers {
		out = append(out, scoring.Answer{QuestionID: a.QuestionID, SelectedOptionID: a.SelectedOptionID})
	}
	return out
}

// HandleCollection handles GET and POST on /evaluations.
func (h *EvaluationsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		evals, err := h.deps.ListEvaluations(r.Context())
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, evals)
	case http.MethodPost:
		var in app.EvaluationInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		created, err := h.deps.CreateEvaluation(r.Context(), in)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		http.NotFound(w, r)
	}
}

// HandleItem dispatches /evaluations/{id} and its quiz and submit subpaths.
func (h *EvaluationsHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	// Extract path parameters after /evaluations/
	rest := strings.TrimPrefix(r.URL.Path, "/evaluations/")
	idPart, sub, _ := strings.Cut(rest, "/")
	id, err := strconv.Atoi(idPart)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	switch sub {
	case "":
		h.handleEvaluation(w, r, id)
	case "quiz":
		h.handleQuiz(w, r, id)
	case "submit":
		h.handleSubmit(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *EvaluationsHandler) handleEvaluation(w http.ResponseWriter, r *http.Request, id int) {
	switch r.Method {
	case http.MethodGet:
		eval, err := h.deps.GetEvaluation(r.Context(), id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, eval)
	case http.MethodPut:
		var in app.EvaluationInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		updated, err := h.deps.UpdateEvaluation(r.Context(), id, in)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := h.deps.DeleteEvaluation(r.Context(), id); err != nil {
			writeAppError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

// handleQuiz handles GET /evaluations/{id}/quiz requests. The response
// carries the full question graph, correctness flags included; the flow
// trusts its clients the same way the admin screens do.
func (h *EvaluationsHandler) handleQuiz(w http.ResponseWriter, r *http.Request, id int) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	eval, err := h.deps.Quiz(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

// handleSubmit handles POST /evaluations/{id}/submit requests.
func (h *EvaluationsHandler) handleSubmit(w http.ResponseWriter, r *http.Request, id int) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	result, err := h.deps.Submit(r.Context(), id, req.toAnswers())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
