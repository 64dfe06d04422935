// Package repository defines the evaluation store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/hireloop/evalboard/internal/domain/model"
)

// AttemptQuery bounds and filters the recent-attempts read.
type AttemptQuery struct {
	// Search filters by substring against candidate last name, first name,
	// or evaluation title (any of the three). Empty means no filter.
	Search string
	// CaseSensitive controls how Search matches.
	CaseSensitive bool
	// Limit caps the number of returned rows.
	Limit int
}

// Store provides durable access to the evaluation domain. Implementations
// are selected at process start (in-memory or relational); the core never
// opens transactions spanning multiple calls, so reads taken for one view
// may observe slightly different snapshots under concurrent writes.
type Store interface {
	// Candidates
	CandidateByUserID(ctx context.Context, userID string) (model.Candidate, error)
	CandidateByEmail(ctx context.Context, email string) (model.Candidate, error)
	CreateCandidate(ctx context.Context, c *model.Candidate) error
	SaveCandidate(ctx context.Context, c *model.Candidate) error
	CountCandidates(ctx context.Context) (int64, error)

	// Evaluations. Evaluation is the flat summary read used by the admin
	// CRUD views; EvaluationFull eagerly loads the Question→AnswerOption
	// graph for quiz rendering. The two are deliberately distinct contracts.
	ListEvaluations(ctx context.Context) ([]model.Evaluation, error)
	Evaluation(ctx context.Context, id int) (model.Evaluation, error)
	EvaluationFull(ctx context.Context, id int) (model.Evaluation, error)
	CreateEvaluation(ctx context.Context, e *model.Evaluation) error
	// UpdateEvaluation returns ErrNotFound when the row no longer exists.
	UpdateEvaluation(ctx context.Context, e *model.Evaluation) error
	// DeleteEvaluation is idempotent: deleting an absent id succeeds.
	DeleteEvaluation(ctx context.Context, id int) error
	EvaluationExists(ctx context.Context, id int) (bool, error)

	// CorrectOptionID returns the id of the first option flagged correct
	// for the question; ok is false when none exists.
	CorrectOptionID(ctx context.Context, questionID int) (optionID int, ok bool, err error)

	// Attempts
	CreateAttempt(ctx context.Context, a *model.Attempt) error
	RecentAttempts(ctx context.Context, q AttemptQuery) ([]model.Attempt, error)
	AttemptsForCandidate(ctx context.Context, candidateID int) ([]model.Attempt, error)
	CountAttempts(ctx context.Context) (int64, error)
	CountCompletedAttempts(ctx context.Context) (int64, error)
	CountCompletedAttemptsSince(ctx context.Context, since time.Time) (int64, error)
	CountPendingAttempts(ctx context.Context) (int64, error)
	// AverageCompletedScore averages over attempts with score > 0 and
	// returns 0 when none exist.
	AverageCompletedScore(ctx context.Context) (float64, error)

	// Interviews
	CreateInterview(ctx context.Context, iv *model.Interview) error
	RecentInterviews(ctx context.Context, limit int) ([]model.Interview, error)
}
