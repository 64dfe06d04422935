package seed

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/hireloop/evalboard/internal/app"
)

// Catalog of sample content the generator draws from.
var (
	sampleTopics = []string{
		"Go Fundamentals",
		"SQL and Data Modeling",
		"HTTP and REST Design",
		"Concurrency Patterns",
		"System Design Basics",
		"Debugging and Observability",
	}
	sampleQuestions = []string{
		"What is the zero value of a pointer?",
		"Which statement acquires a write lock?",
		"What does a nil map lookup return?",
		"Which index type speeds up prefix search?",
		"What status code fits a validation failure?",
		"When does a deferred call run?",
	}
	sampleOptions = []string{"always", "never", "nil", "it depends", "a panic", "zero"}
)

const (
	questionsPerEvaluation = 4
	optionsPerQuestion     = 3
	durationStepMinutes    = 15
	maxDurationSteps       = 4
)

// randomInt returns a random int in [0, max) using crypto/rand.
func randomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// generateEvaluation builds one randomized evaluation payload. Each question
// gets exactly one correct option so graded submissions stay meaningful.
func generateEvaluation(seq int) app.EvaluationInput {
	topic := sampleTopics[seq%len(sampleTopics)]
	in := app.EvaluationInput{
		Title:           fmt.Sprintf("%s (screening %d)", topic, seq+1),
		Description:     fmt.Sprintf("Auto-generated screening round for %s.", topic),
		DurationMinutes: (randomInt(maxDurationSteps) + 1) * durationStepMinutes,
	}
	for q := 0; q < questionsPerEvaluation; q++ {
		question := app.QuestionInput{
			Text:   sampleQuestions[randomInt(len(sampleQuestions))],
			Type:   "single",
			Points: 1,
		}
		correct := randomInt(optionsPerQuestion)
		for o := 0; o < optionsPerQuestion; o++ {
			question.Options = append(question.Options, app.OptionInput{
				Text:      sampleOptions[randomInt(len(sampleOptions))],
				IsCorrect: o == correct,
			})
		}
		in.Questions = append(in.Questions, question)
	}
	return in
}
