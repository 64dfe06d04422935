package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hireloop/evalboard/internal/domain/model"
	"github.com/hireloop/evalboard/pkg/metrics"
)

// MemStore is a mutex-guarded, in-memory Store implementation. It backs the
// development store_backend and serves as the test substrate. Ids are
// auto-incremented per entity, mirroring relational identity columns.
type MemStore struct {
	mu sync.RWMutex

	candidates  map[int]model.Candidate
	evaluations map[int]model.Evaluation
	attempts    map[int]model.Attempt
	interviews  map[int]model.Interview

	nextCandidate  int
	nextEvaluation int
	nextQuestion   int
	nextOption     int
	nextAttempt    int
	nextInterview  int
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		candidates:  make(map[int]model.Candidate),
		evaluations: make(map[int]model.Evaluation),
		attempts:    make(map[int]model.Attempt),
		interviews:  make(map[int]model.Interview),
	}
}

// observe records the latency of a store operation.
func observe(op string, start time.Time) {
	metrics.RecordStoreQueryLatency(op, float64(time.Since(start).Milliseconds()))
}

func (s *MemStore) CandidateByUserID(_ context.Context, userID string) (model.Candidate, error) {
	defer observe("candidate_by_user_id", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	if userID == "" {
		return model.Candidate{}, ErrNotFound
	}
	for _, c := range s.candidates {
		if c.UserID == userID {
			return c, nil
		}
	}
	return model.Candidate{}, ErrNotFound
}

func (s *MemStore) CandidateByEmail(_ context.Context, email string) (model.Candidate, error) {
	defer observe("candidate_by_email", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	if email == "" {
		return model.Candidate{}, ErrNotFound
	}
	for _, c := range s.candidates {
		if c.Email == email {
			return c, nil
		}
	}
	return model.Candidate{}, ErrNotFound
}

func (s *MemStore) CreateCandidate(_ context.Context, c *model.Candidate) error {
	defer observe("create_candidate", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCandidate++
	c.ID = s.nextCandidate
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.candidates[c.ID] = *c
	return nil
}

func (s *MemStore) SaveCandidate(_ context.Context, c *model.Candidate) error {
	defer observe("save_candidate", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[c.ID]; !ok {
		return ErrNotFound
	}
	s.candidates[c.ID] = *c
	return nil
}

func (s *MemStore) CountCandidates(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.candidates)), nil
}

func (s *MemStore) ListEvaluations(_ context.Context) ([]model.Evaluation, error) {
	defer observe("list_evaluations", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Evaluation, 0, len(s.evaluations))
	for _, e := range s.evaluations {
		e.Questions = nil // summary read omits the nested graph
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Evaluation(_ context.Context, id int) (model.Evaluation, error) {
	defer observe("evaluation", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.evaluations[id]
	if !ok {
		return model.Evaluation{}, ErrNotFound
	}
	e.Questions = nil
	return e, nil
}

func (s *MemStore) EvaluationFull(_ context.Context, id int) (model.Evaluation, error) {
	defer observe("evaluation_full", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.evaluations[id]
	if !ok {
		return model.Evaluation{}, ErrNotFound
	}
	// Deep-copy the question graph so callers cannot mutate the store.
	questions := make([]model.Question, len(e.Questions))
	copy(questions, e.Questions)
	for i := range questions {
		options := make([]model.AnswerOption, len(questions[i].Options))
		copy(options, questions[i].Options)
		questions[i].Options = options
	}
	e.Questions = questions
	return e, nil
}

func (s *MemStore) CreateEvaluation(_ context.Context, e *model.Evaluation) error {
	defer observe("create_evaluation", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEvaluation++
	e.ID = s.nextEvaluation
	for i := range e.Questions {
		s.nextQuestion++
		e.Questions[i].ID = s.nextQuestion
		e.Questions[i].EvaluationID = e.ID
		for j := range e.Questions[i].Options {
			s.nextOption++
			e.Questions[i].Options[j].ID = s.nextOption
			e.Questions[i].Options[j].QuestionID = e.Questions[i].ID
		}
	}
	s.evaluations[e.ID] = *e
	return nil
}

func (s *MemStore) UpdateEvaluation(_ context.Context, e *model.Evaluation) error {
	defer observe("update_evaluation", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.evaluations[e.ID]
	if !ok {
		return ErrNotFound
	}
	// Allow-listed field set only; the question graph is not replaced here.
	current.Title = e.Title
	current.Description = e.Description
	current.DurationMinutes = e.DurationMinutes
	current.CreatedAt = e.CreatedAt
	s.evaluations[e.ID] = current
	return nil
}

func (s *MemStore) DeleteEvaluation(_ context.Context, id int) error {
	defer observe("delete_evaluation", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	// Absent id is a no-op success.
	delete(s.evaluations, id)
	return nil
}

func (s *MemStore) EvaluationExists(_ context.Context, id int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.evaluations[id]
	return ok, nil
}

func (s *MemStore) CorrectOptionID(_ context.Context, questionID int) (int, bool, error) {
	defer observe("correct_option", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.evaluations {
		for _, q := range e.Questions {
			if q.ID != questionID {
				continue
			}
			for _, o := range q.Options {
				if o.IsCorrect {
					return o.ID, true, nil
				}
			}
			return 0, false, nil
		}
	}
	return 0, false, nil
}

func (s *MemStore) CreateAttempt(_ context.Context, a *model.Attempt) error {
	defer observe("create_attempt", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAttempt++
	a.ID = s.nextAttempt
	stored := *a
	stored.Candidate = nil
	stored.Evaluation = nil
	s.attempts[a.ID] = stored
	return nil
}

func (s *MemStore) RecentAttempts(_ context.Context, q AttemptQuery) ([]model.Attempt, error) {
	defer observe("recent_attempts", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Attempt, 0, len(s.attempts))
	for _, a := range s.attempts {
		cand, okC := s.candidates[a.CandidateID]
		eval, okE := s.evaluations[a.EvaluationID]
		if okC {
			c := cand
			a.Candidate = &c
		}
		if okE {
			e := eval
			e.Questions = nil
			a.Evaluation = &e
		}
		if q.Search != "" && !attemptMatches(a, q) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TakenAt.Equal(out[j].TakenAt) {
			return out[i].TakenAt.After(out[j].TakenAt)
		}
		return out[i].ID > out[j].ID
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// attemptMatches applies the dashboard search filter: substring match against
// candidate last name, first name, or evaluation title.
func attemptMatches(a model.Attempt, q AttemptQuery) bool {
	fields := make([]string, 0, 3)
	if a.Candidate != nil {
		fields = append(fields, a.Candidate.LastName, a.Candidate.FirstName)
	}
	if a.Evaluation != nil {
		fields = append(fields, a.Evaluation.Title)
	}
	needle := q.Search
	if !q.CaseSensitive {
		needle = strings.ToLower(needle)
	}
	for _, f := range fields {
		if !q.CaseSensitive {
			f = strings.ToLower(f)
		}
		if strings.Contains(f, needle) {
			return true
		}
	}
	return false
}

func (s *MemStore) AttemptsForCandidate(_ context.Context, candidateID int) ([]model.Attempt, error) {
	defer observe("attempts_for_candidate", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Attempt
	for _, a := range s.attempts {
		if a.CandidateID != candidateID {
			continue
		}
		if eval, ok := s.evaluations[a.EvaluationID]; ok {
			e := eval
			e.Questions = nil
			a.Evaluation = &e
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TakenAt.Equal(out[j].TakenAt) {
			return out[i].TakenAt.After(out[j].TakenAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *MemStore) CountAttempts(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.attempts)), nil
}

func (s *MemStore) CountCompletedAttempts(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, a := range s.attempts {
		if a.Score > 0 {
			n++
		}
	}
	return n, nil
}

func (s *MemStore) CountCompletedAttemptsSince(_ context.Context, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, a := range s.attempts {
		if a.Score > 0 && !a.TakenAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *MemStore) CountPendingAttempts(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, a := range s.attempts {
		if a.Score == 0 {
			n++
		}
	}
	return n, nil
}

func (s *MemStore) AverageCompletedScore(_ context.Context) (float64, error) {
	defer observe("average_completed_score", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum, n int
	for _, a := range s.attempts {
		if a.Score > 0 {
			sum += a.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (s *MemStore) CreateInterview(_ context.Context, iv *model.Interview) error {
	defer observe("create_interview", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextInterview++
	iv.ID = s.nextInterview
	if iv.CreatedAt.IsZero() {
		iv.CreatedAt = time.Now().UTC()
	}
	stored := *iv
	stored.Candidate = nil
	s.interviews[iv.ID] = stored
	return nil
}

func (s *MemStore) RecentInterviews(_ context.Context, limit int) ([]model.Interview, error) {
	defer observe("recent_interviews", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Interview, 0, len(s.interviews))
	for _, iv := range s.interviews {
		if cand, ok := s.candidates[iv.CandidateID]; ok {
			c := cand
			iv.Candidate = &c
		}
		out = append(out, iv)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
