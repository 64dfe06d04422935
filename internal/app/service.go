// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	repository "github.com/hireloop/evalboard/internal/adapters/repository"
	"github.com/hireloop/evalboard/internal/auth"
	"github.com/hireloop/evalboard/internal/domain/dashboard"
	"github.com/hireloop/evalboard/internal/domain/model"
	"github.com/hireloop/evalboard/internal/domain/scoring"
	"github.com/hireloop/evalboard/pkg/logger"
	"github.com/hireloop/evalboard/pkg/metrics"
)

// Service implements the evaluation platform operations behind the HTTP API.
// All collaborators are injected; the service holds no ambient globals and
// no in-process state between requests beyond its configuration.
type Service struct {
	store  repository.Store
	grader *scoring.Grader
	logger logger.Logger
	now    func() time.Time

	searchCaseSensitive  bool
	recentAttemptLimit   int
	activityFeedLimit    int
	recentInterviewLimit int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the persistence store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source. Tests use this to pin "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSearchCaseSensitive controls dashboard search matching.
func WithSearchCaseSensitive(sensitive bool) Option {
	return func(s *Service) {
		s.searchCaseSensitive = sensitive
	}
}

// WithRecentAttemptLimit bounds the dashboard recent-attempts list.
func WithRecentAttemptLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recentAttemptLimit = n
		}
	}
}

// WithActivityFeedLimit bounds the merged recent-activity feed.
func WithActivityFeedLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.activityFeedLimit = n
		}
	}
}

// WithRecentInterviewLimit bounds the interviews drawn into the feed.
func WithRecentInterviewLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recentInterviewLimit = n
		}
	}
}

// New constructs a Service. A store must be provided via WithStore.
func New(opts ...Option) *Service {
	s := &Service{
		now:                  time.Now,
		recentAttemptLimit:   dashboard.RecentAttemptLimit,
		activityFeedLimit:    dashboard.ActivityFeedLimit,
		recentInterviewLimit: dashboard.RecentInterviewLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		panic("app: store is required")
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.grader = scoring.NewGrader(s.store)
	return s
}

// AttemptSummary is a recent attempt joined with candidate and evaluation
// summaries for display.
type AttemptSummary struct {
	ID         int       `json:"id"`
	Candidate  string    `json:"candidate"`
	Evaluation string    `json:"evaluation"`
	TakenAt    time.Time `json:"taken_at"`
	Score      int       `json:"score"`
}

// DashboardView is the aggregate handed to the dashboard rendering layer.
type DashboardView struct {
	UserName       string               `json:"user_name"`
	Stats          dashboard.Stats      `json:"stats"`
	RecentAttempts []AttemptSummary     `json:"recent_attempts"`
	RecentActivity []dashboard.Activity `json:"recent_activity"`
}

// Dashboard aggregates the statistics, recent attempts, and activity feed
// for the authenticated user. Reads are not wrapped in a transaction; the
// individual queries may observe slightly different snapshots under
// concurrent writes, which is accepted.
func (s *Service) Dashboard(ctx context.Context, ident auth.Identity, search string) (DashboardView, error) {
	recent, err := s.store.RecentAttempts(ctx, repository.AttemptQuery{
		Search:        strings.TrimSpace(search),
		CaseSensitive: s.searchCaseSensitive,
		Limit:         s.recentAttemptLimit,
	})
	if err != nil {
		return DashboardView{}, fmt.Errorf("load recent attempts: %w", err)
	}

	stats, err := s.collectStats(ctx)
	if err != nil {
		return DashboardView{}, err
	}

	interviews, err := s.store.RecentInterviews(ctx, s.recentInterviewLimit)
	if err != nil {
		return DashboardView{}, fmt.Errorf("load recent interviews: %w", err)
	}

	userName := s.resolveDisplayName(ctx, ident)

	view := DashboardView{
		UserName:       userName,
		Stats:          stats,
		RecentAttempts: summarizeAttempts(recent),
		RecentActivity: dashboard.MergeActivities(
			attemptActivities(recent),
			interviewActivities(interviews),
			s.activityFeedLimit,
		),
	}
	return view, nil
}

// collectStats runs the scalar statistic queries over the attempt table.
func (s *Service) collectStats(ctx context.Context) (dashboard.Stats, error) {
	var stats dashboard.Stats
	var err error

	if stats.TotalCandidates, err = s.store.CountCandidates(ctx); err != nil {
		return stats, fmt.Errorf("count candidates: %w", err)
	}
	if stats.TotalCompleted, err = s.store.CountCompletedAttempts(ctx); err != nil {
		return stats, fmt.Errorf("count completed attempts: %w", err)
	}
	weekStart := dashboard.StartOfWeek(s.now())
	if stats.CompletedThisWeek, err = s.store.CountCompletedAttemptsSince(ctx, weekStart); err != nil {
		return stats, fmt.Errorf("count completed attempts this week: %w", err)
	}
	avg, err := s.store.AverageCompletedScore(ctx)
	if err != nil {
		return stats, fmt.Errorf("average completed score: %w", err)
	}
	stats.AverageScore = dashboard.RoundAverage(avg)
	// The two fields below share one predicate but are queried twice on
	// purpose; both names are part of the dashboard contract.
	if stats.InProgressCount, err = s.store.CountPendingAttempts(ctx); err != nil {
		return stats, fmt.Errorf("count in-progress attempts: %w", err)
	}
	if stats.PendingAttempts, err = s.store.CountPendingAttempts(ctx); err != nil {
		return stats, fmt.Errorf("count pending attempts: %w", err)
	}
	return stats, nil
}

func (s *Service) resolveDisplayName(ctx context.Context, ident auth.Identity) string {
	var fullName string
	cand, err := s.findCandidate(ctx, ident)
	if err == nil {
		fullName = cand.FullName()
	}
	return dashboard.DisplayName(fullName, ident.Username)
}

func summarizeAttempts(attempts []model.Attempt) []AttemptSummary {
	out := make([]AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		sum := AttemptSummary{ID: a.ID, TakenAt: a.TakenAt, Score: a.Score}
		if a.Candidate != nil {
			sum.Candidate = a.Candidate.FullName()
		}
		if a.Evaluation != nil {
			sum.Evaluation = a.Evaluation.Title
		}
		out = append(out, sum)
	}
	return out
}

func attemptActivities(attempts []model.Attempt) []dashboard.Activity {
	out := make([]dashboard.Activity, 0, len(attempts))
	for _, a := range attempts {
		actor := "Candidate"
		if a.Candidate != nil {
			actor = a.Candidate.FullName()
		}
		target := "Evaluation"
		if a.Evaluation != nil {
			target = a.Evaluation.Title
		}
		out = append(out, dashboard.Activity{
			Type:       dashboard.ActivityEvaluation,
			ActionBy:   actor,
			ActionText: "completed the evaluation",
			TargetName: target,
			Date:       a.TakenAt,
			Badge:      dashboard.ActivityEvaluation,
		})
	}
	return out
}

func interviewActivities(interviews []model.Interview) []dashboard.Activity {
	out := make([]dashboard.Activity, 0, len(interviews))
	for _, iv := range interviews {
		target := "Candidate"
		if iv.Candidate != nil {
			target = iv.Candidate.FullName()
		}
		out = append(out, dashboard.Activity{
			Type:       dashboard.ActivityInterview,
			ActionBy:   dashboard.HRTeamActor,
			ActionText: "scheduled an interview with",
			TargetName: target,
			Date:       iv.CreatedAt,
			Badge:      dashboard.ActivityInterview,
		})
	}
	return out
}

// findCandidate applies the canonical matching policy: identity id first,
// email fallback.
func (s *Service) findCandidate(ctx context.Context, ident auth.Identity) (model.Candidate, error) {
	cand, err := s.store.CandidateByUserID(ctx, ident.UserID)
	if err == nil {
		return cand, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.Candidate{}, err
	}
	return s.store.CandidateByEmail(ctx, candidateEmail(ident))
}

func candidateEmail(ident auth.Identity) string {
	if ident.Email != "" {
		return ident.Email
	}
	return ident.Username
}

// StartSession resolves or creates the Candidate for the identity and opens
// a new Attempt with score 0 on the requested evaluation. Two concurrent
// calls for a brand-new identity can race and create duplicate candidates;
// the store takes no cross-statement transaction and this is accepted.
func (s *Service) StartSession(ctx context.Context, ident auth.Identity, evaluationID int) (model.Attempt, error) {
	if exists, err := s.store.EvaluationExists(ctx, evaluationID); err != nil {
		return model.Attempt{}, fmt.Errorf("check evaluation: %w", err)
	} else if !exists {
		return model.Attempt{}, repository.ErrNotFound
	}

	cand, err := s.findCandidate(ctx, ident)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		cand = model.Candidate{
			Email:    candidateEmail(ident),
			LastName: ident.Username,
			UserID:   ident.UserID,
		}
		if err := s.store.CreateCandidate(ctx, &cand); err != nil {
			return model.Attempt{}, fmt.Errorf("create candidate: %w", err)
		}
		metrics.RecordCandidateCreated()
		s.logger.Info(ctx, "candidate created on first session",
			logger.Int("candidate_id", cand.ID), logger.String("email", cand.Email))
	case err != nil:
		return model.Attempt{}, fmt.Errorf("resolve candidate: %w", err)
	default:
		// Backfill the identity link on rows matched by email only.
		if cand.UserID == "" && ident.UserID != "" {
			cand.UserID = ident.UserID
			if err := s.store.SaveCandidate(ctx, &cand); err != nil {
				return model.Attempt{}, fmt.Errorf("link candidate identity: %w", err)
			}
		}
	}

	attempt := model.Attempt{
		CandidateID:  cand.ID,
		EvaluationID: evaluationID,
		TakenAt:      s.now().UTC(),
		Score:        0,
	}
	if err := s.store.CreateAttempt(ctx, &attempt); err != nil {
		return model.Attempt{}, fmt.Errorf("create attempt: %w", err)
	}
	metrics.RecordSessionStarted()
	s.logger.Info(ctx, "session started",
		logger.Int("attempt_id", attempt.ID),
		logger.Int("candidate_id", cand.ID),
		logger.Int("evaluation_id", evaluationID))
	return attempt, nil
}

// HistoryEntry is one row of a candidate's attempt history.
type HistoryEntry struct {
	AttemptID  int       `json:"attempt_id"`
	Evaluation string    `json:"evaluation"`
	TakenAt    time.Time `json:"taken_at"`
	Score      int       `json:"score"`
}

// History lists the current user's attempts newest-first. A user with no
// candidate row has an empty history.
func (s *Service) History(ctx context.Context, ident auth.Identity) ([]HistoryEntry, error) {
	cand, err := s.findCandidate(ctx, ident)
	if errors.Is(err, repository.ErrNotFound) {
		return []HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve candidate: %w", err)
	}
	attempts, err := s.store.AttemptsForCandidate(ctx, cand.ID)
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}
	out := make([]HistoryEntry, 0, len(attempts))
	for _, a := range attempts {
		entry := HistoryEntry{AttemptID: a.ID, TakenAt: a.TakenAt, Score: a.Score}
		if a.Evaluation != nil {
			entry.Evaluation = a.Evaluation.Title
		}
		out = append(out, entry)
	}
	return out, nil
}

// GetStats returns operational counters for the /stats endpoint and the
// metrics updater.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	stats := make(map[string]interface{})
	if n, err := s.store.CountCandidates(ctx); err == nil {
		stats["totalCandidates"] = int(n)
		metrics.UpdateTotalCandidates(int(n))
	}
	if n, err := s.store.CountAttempts(ctx); err == nil {
		stats["totalAttempts"] = int(n)
		metrics.UpdateTotalAttempts(int(n))
	}
	if n, err := s.store.CountCompletedAttempts(ctx); err == nil {
		stats["completedAttempts"] = int(n)
	}
	if n, err := s.store.CountPendingAttempts(ctx); err == nil {
		stats["pendingAttempts"] = int(n)
	}
	return stats
}
