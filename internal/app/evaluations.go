package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	repository "github.com/hireloop/evalboard/internal/adapters/repository"
	"github.com/hireloop/evalboard/internal/domain/model"
	"github.com/hireloop/evalboard/internal/domain/scoring"
	"github.com/hireloop/evalboard/pkg/logger"
	"github.com/hireloop/evalboard/pkg/metrics"
)

// EvaluationInput is the allow-listed field set accepted by create and
// edit. Anything outside it (and outside the optional question graph on
// create) is never bound from a request.
type EvaluationInput struct {
	ID              int             `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"duration_minutes"`
	CreatedAt       time.Time       `json:"created_at"`
	Questions       []QuestionInput `json:"questions,omitempty"`
}

// QuestionInput carries a question with its options on evaluation create.
type QuestionInput struct {
	Text    string        `json:"text"`
	Type    string        `json:"type"`
	Points  int           `json:"points"`
	Options []OptionInput `json:"options"`
}

// OptionInput carries one answer option.
type OptionInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

func (in EvaluationInput) validate() error {
	v := NewValidationError()
	if strings.TrimSpace(in.Title) == "" {
		v.Add("title", "title is required")
	}
	if in.DurationMinutes < 0 {
		v.Add("duration_minutes", "duration must not be negative")
	}
	for i, q := range in.Questions {
		if strings.TrimSpace(q.Text) == "" {
			v.Add(fmt.Sprintf("questions[%d].text", i), "question text is required")
		}
		correct := 0
		for _, o := range q.Options {
			if o.IsCorrect {
				correct++
			}
		}
		if correct > 1 {
			v.Add(fmt.Sprintf("questions[%d]", i), "at most one option may be flagged correct")
		}
	}
	return v.OrNil()
}

func (in EvaluationInput) toModel() model.Evaluation {
	e := model.Evaluation{
		ID:              in.ID,
		Title:           in.Title,
		Description:     in.Description,
		DurationMinutes: in.DurationMinutes,
		CreatedAt:       in.CreatedAt,
	}
	for _, q := range in.Questions {
		question := model.Question{Text: q.Text, Type: q.Type, Points: q.Points}
		for _, o := range q.Options {
			question.Options = append(question.Options, model.AnswerOption{Text: o.Text, IsCorrect: o.IsCorrect})
		}
		e.Questions = append(e.Questions, question)
	}
	return e
}

// ListEvaluations returns the flat admin list.
func (s *Service) ListEvaluations(ctx context.Context) ([]model.Evaluation, error) {
	return s.store.ListEvaluations(ctx)
}

// GetEvaluation returns the summary read used by the admin detail view.
func (s *Service) GetEvaluation(ctx context.Context, id int) (model.Evaluation, error) {
	return s.store.Evaluation(ctx, id)
}

// CreateEvaluation validates and persists a new evaluation, optionally with
// its question graph.
func (s *Service) CreateEvaluation(ctx context.Context, in EvaluationInput) (model.Evaluation, error) {
	if err := in.validate(); err != nil {
		return model.Evaluation{}, err
	}
	e := in.toModel()
	e.ID = 0 // the store assigns identity
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	if err := s.store.CreateEvaluation(ctx, &e); err != nil {
		return model.Evaluation{}, fmt.Errorf("create evaluation: %w", err)
	}
	metrics.RecordEvaluationCreated()
	s.logger.Info(ctx, "evaluation created", logger.Int("evaluation_id", e.ID), logger.String("title", e.Title))
	return e, nil
}

// UpdateEvaluation writes the allow-listed fields. The path id and body id
// must agree; a row that vanished between load and save reports not-found,
// any other stale-write condition surfaces as-is.
func (s *Service) UpdateEvaluation(ctx context.Context, pathID int, in EvaluationInput) (model.Evaluation, error) {
	if pathID != in.ID {
		return model.Evaluation{}, ErrIDMismatch
	}
	if err := in.validate(); err != nil {
		return model.Evaluation{}, err
	}
	e := in.toModel()
	e.Questions = nil // edit never rewrites the graph
	if err := s.store.UpdateEvaluation(ctx, &e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Evaluation{}, repository.ErrNotFound
		}
		return model.Evaluation{}, fmt.Errorf("update evaluation: %w", err)
	}
	metrics.RecordEvaluationUpdated()
	return e, nil
}

// DeleteEvaluation removes an evaluation. Deleting an absent id is a
// success no-op so the caller's redirect flow never breaks.
func (s *Service) DeleteEvaluation(ctx context.Context, id int) error {
	if err := s.store.DeleteEvaluation(ctx, id); err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}
	metrics.RecordEvaluationDeleted()
	return nil
}

// Quiz loads the evaluation with its full question graph for quiz
// rendering. This read contract is deliberately separate from the flat
// admin read.
func (s *Service) Quiz(ctx context.Context, evaluationID int) (model.Evaluation, error) {
	return s.store.EvaluationFull(ctx, evaluationID)
}

// Submit grades a submission against the stored correct answers. It has no
// side effects on the attempt; persisting a score is a separate concern.
func (s *Service) Submit(ctx context.Context, evaluationID int, answers []scoring.Answer) (scoring.Result, error) {
	if len(answers) == 0 {
		v := NewValidationError()
		v.Add("answers", "no answers submitted")
		return scoring.Result{}, v.OrNil()
	}
	if exists, err := s.store.EvaluationExists(ctx, evaluationID); err != nil {
		return scoring.Result{}, fmt.Errorf("check evaluation: %w", err)
	} else if !exists {
		return scoring.Result{}, repository.ErrNotFound
	}
	res, err := s.grader.Grade(ctx, answers)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("grade submission: %w", err)
	}
	metrics.RecordSubmissionGraded(res.Score)
	s.logger.Info(ctx, "submission graded",
		logger.Int("evaluation_id", evaluationID),
		logger.Int("score", res.Score),
		logger.Int("total", res.Total))
	return res, nil
}

// ScheduleInterview records an interview between the HR team and a
// candidate; its creation feeds the dashboard activity stream.
func (s *Service) ScheduleInterview(ctx context.Context, candidateID int, scheduledAt time.Time) (model.Interview, error) {
	iv := model.Interview{
		CandidateID: candidateID,
		ScheduledAt: scheduledAt,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.CreateInterview(ctx, &iv); err != nil {
		return model.Interview{}, fmt.Errorf("create interview: %w", err)
	}
	return iv, nil
}

// ListInterviews returns the most recently created interviews.
func (s *Service) ListInterviews(ctx context.Context, limit int) ([]model.Interview, error) {
	if limit <= 0 {
		limit = s.recentInterviewLimit
	}
	return s.store.RecentInterviews(ctx, limit)
}
