// Package seed loads demo data into a running evalboard instance over its
// HTTP API. It exists for local development and smoke testing, not for
// production use.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/hireloop/evalboard/internal/auth"
	"github.com/hireloop/evalboard/internal/domain/model"
)

// Config controls a seeding run.
type Config struct {
	BaseURL     string
	JWTSecret   string
	Evaluations int
	Sessions    int
	Timeout     time.Duration
}

// Runner drives the seeding flow against one server.
type Runner struct {
	cfg    Config
	client *HTTPClient
}

// NewRunner creates a runner. The bearer token is minted locally from the
// shared secret, the same way the identity provider would.
func NewRunner(cfg Config) (*Runner, error) {
	token, err := auth.SignToken(cfg.JWTSecret, auth.Identity{
		UserID:   "seed-user",
		Username: "seeder",
		Email:    "seed@example.com",
	})
	if err != nil {
		return nil, fmt.Errorf("mint seed token: %w", err)
	}
	return &Runner{
		cfg:    cfg,
		client: newHTTPClient(cfg.BaseURL, token, cfg.Timeout),
	}, nil
}

type sessionPayload struct {
	EvaluationID int `json:"evaluation_id"`
}

// Run creates the configured number of evaluations, then opens sessions on
// them round-robin. It stops at the first error so a misconfigured target
// fails fast.
func (r *Runner) Run(ctx context.Context) error {
	created := make([]model.Evaluation, 0, r.cfg.Evaluations)
	for i := 0; i < r.cfg.Evaluations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		var eval model.Evaluation
		if err := r.client.Post("/evaluations", generateEvaluation(i), &eval); err != nil {
			return fmt.Errorf("create evaluation %d: %w", i+1, err)
		}
		created = append(created, eval)
	}

	for i := 0; i < r.cfg.Sessions; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(created) == 0 {
			break
		}
		target := created[i%len(created)]
		if err := r.client.Post("/sessions", sessionPayload{EvaluationID: target.ID}, nil); err != nil {
			return fmt.Errorf("start session on evaluation %d: %w", target.ID, err)
		}
	}

	fmt.Printf("seeded %d evaluations and %d sessions against %s\n",
		len(created), r.cfg.Sessions, r.cfg.BaseURL)
	return nil
}
