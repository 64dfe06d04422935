package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hireloop/evalboard/internal/domain/model"
)

// GormStore is the relational Store implementation backed by PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

// OpenGormStore connects to PostgreSQL with the given DSN and migrates the
// schema for all domain entities.
func OpenGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(
		&model.Candidate{},
		&model.Application{},
		&model.Evaluation{},
		&model.Question{},
		&model.AnswerOption{},
		&model.Attempt{},
		&model.CandidateAnswer{},
		&model.Interview{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

// NewGormStore wraps an existing gorm handle. Useful for tests that supply
// their own dialector.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) CandidateByUserID(ctx context.Context, userID string) (model.Candidate, error) {
	defer observe("candidate_by_user_id", time.Now())
	if userID == "" {
		return model.Candidate{}, ErrNotFound
	}
	var c model.Candidate
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	return c, translate(err)
}

func (s *GormStore) CandidateByEmail(ctx context.Context, email string) (model.Candidate, error) {
	defer observe("candidate_by_email", time.Now())
	if email == "" {
		return model.Candidate{}, ErrNotFound
	}
	var c model.Candidate
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	return c, translate(err)
}

func (s *GormStore) CreateCandidate(ctx context.Context, c *model.Candidate) error {
	defer observe("create_candidate", time.Now())
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *GormStore) SaveCandidate(ctx context.Context, c *model.Candidate) error {
	defer observe("save_candidate", time.Now())
	res := s.db.WithContext(ctx).Model(&model.Candidate{}).Where("id = ?", c.ID).
		Updates(map[string]any{
			"last_name":  c.LastName,
			"first_name": c.FirstName,
			"email":      c.Email,
			"user_id":    c.UserID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CountCandidates(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Candidate{}).Count(&n).Error
	return n, err
}

func (s *GormStore) ListEvaluations(ctx context.Context) ([]model.Evaluation, error) {
	defer observe("list_evaluations", time.Now())
	var out []model.Evaluation
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *GormStore) Evaluation(ctx context.Context, id int) (model.Evaluation, error) {
	defer observe("evaluation", time.Now())
	var e model.Evaluation
	err := s.db.WithContext(ctx).First(&e, id).Error
	return e, translate(err)
}

func (s *GormStore) EvaluationFull(ctx context.Context, id int) (model.Evaluation, error) {
	defer observe("evaluation_full", time.Now())
	var e model.Evaluation
	err := s.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id") }).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB { return db.Order("answer_options.id") }).
		First(&e, id).Error
	return e, translate(err)
}

func (s *GormStore) CreateEvaluation(ctx context.Context, e *model.Evaluation) error {
	defer observe("create_evaluation", time.Now())
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *GormStore) UpdateEvaluation(ctx context.Context, e *model.Evaluation) error {
	defer observe("update_evaluation", time.Now())
	// Allow-listed column set; nested questions are never written here.
	res := s.db.WithContext(ctx).Model(&model.Evaluation{}).Where("id = ?", e.ID).
		Updates(map[string]any{
			"title":            e.Title,
			"description":      e.Description,
			"duration_minutes": e.DurationMinutes,
			"created_at":       e.CreatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteEvaluation(ctx context.Context, id int) error {
	defer observe("delete_evaluation", time.Now())
	// Zero rows affected is a no-op success.
	return s.db.WithContext(ctx).Delete(&model.Evaluation{}, id).Error
}

func (s *GormStore) EvaluationExists(ctx context.Context, id int) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Evaluation{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (s *GormStore) CorrectOptionID(ctx context.Context, questionID int) (int, bool, error) {
	defer observe("correct_option", time.Now())
	var o model.AnswerOption
	err := s.db.WithContext(ctx).
		Where("question_id = ? AND is_correct = ?", questionID, true).
		Order("id").
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return o.ID, true, nil
}

func (s *GormStore) CreateAttempt(ctx context.Context, a *model.Attempt) error {
	defer observe("create_attempt", time.Now())
	return s.db.WithContext(ctx).Omit("Candidate", "Evaluation").Create(a).Error
}

func (s *GormStore) RecentAttempts(ctx context.Context, q AttemptQuery) ([]model.Attempt, error) {
	defer observe("recent_attempts", time.Now())
	tx := s.db.WithContext(ctx).Model(&model.Attempt{}).
		Preload("Candidate").
		Preload("Evaluation")
	if q.Search != "" {
		like := "LIKE"
		if !q.CaseSensitive {
			like = "ILIKE"
		}
		pattern := "%" + q.Search + "%"
		tx = tx.
			Joins("JOIN candidates ON candidates.id = attempts.candidate_id").
			Joins("JOIN evaluations ON evaluations.id = attempts.evaluation_id").
			Where(fmt.Sprintf("candidates.last_name %[1]s ? OR candidates.first_name %[1]s ? OR evaluations.title %[1]s ?", like),
				pattern, pattern, pattern)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	var out []model.Attempt
	err := tx.Order("taken_at DESC").Find(&out).Error
	return out, err
}

func (s *GormStore) AttemptsForCandidate(ctx context.Context, candidateID int) ([]model.Attempt, error) {
	defer observe("attempts_for_candidate", time.Now())
	var out []model.Attempt
	err := s.db.WithContext(ctx).
		Preload("Evaluation").
		Where("candidate_id = ?", candidateID).
		Order("taken_at DESC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) CountAttempts(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Attempt{}).Count(&n).Error
	return n, err
}

func (s *GormStore) CountCompletedAttempts(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Attempt{}).Where("score > 0").Count(&n).Error
	return n, err
}

func (s *GormStore) CountCompletedAttemptsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("score > 0 AND taken_at >= ?", since).Count(&n).Error
	return n, err
}

func (s *GormStore) CountPendingAttempts(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Attempt{}).Where("score = 0").Count(&n).Error
	return n, err
}

func (s *GormStore) AverageCompletedScore(ctx context.Context) (float64, error) {
	defer observe("average_completed_score", time.Now())
	var avg *float64
	err := s.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("score > 0").
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (s *GormStore) CreateInterview(ctx context.Context, iv *model.Interview) error {
	defer observe("create_interview", time.Now())
	return s.db.WithContext(ctx).Omit("Candidate").Create(iv).Error
}

func (s *GormStore) RecentInterviews(ctx context.Context, limit int) ([]model.Interview, error) {
	defer observe("recent_interviews", time.Now())
	tx := s.db.WithContext(ctx).Preload("Candidate").Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var out []model.Interview
	err := tx.Find(&out).Error
	return out, err
}
