package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hireloop/evalboard/internal/seed"
)

// Default configuration constants.
const (
	defaultEvaluations = 6
	defaultSessions    = 12
	defaultTimeout     = 30 * time.Second
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		secret      = flag.String("secret", "dev-secret", "JWT secret shared with the server")
		evaluations = flag.Int("evaluations", defaultEvaluations, "Number of evaluations to create")
		sessions    = flag.Int("sessions", defaultSessions, "Number of quiz sessions to open")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := seed.NewRunner(seed.Config{
		BaseURL:     *baseURL,
		JWTSecret:   *secret,
		Evaluations: *evaluations,
		Sessions:    *sessions,
		Timeout:     *timeout,
	})
	if err != nil {
		os.Stderr.WriteString("seed setup failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := runner.Run(ctx); err != nil {
		os.Stderr.WriteString("seed run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
