// Package scoring computes a submission's score against stored correct answers.
package scoring

import (
	"context"
	"fmt"
)

// Answer is one submitted (question, selected option) pair. A nil
// SelectedOptionID means the candidate left the question unanswered.
type Answer struct {
	QuestionID       int
	SelectedOptionID *int
}

// Result contains the computed score for a submission.
type Result struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// CorrectOptionSource resolves the id of the option flagged correct for a
// question. ok is false when the question has no correct option or is
// unknown; such questions can never contribute to the score.
type CorrectOptionSource interface {
	CorrectOptionID(ctx context.Context, questionID int) (optionID int, ok bool, err error)
}

// Grader scores submissions. Grading has no side effects; persisting the
// resulting score is the caller's responsibility.
type Grader struct {
	src CorrectOptionSource
}

// NewGrader creates a Grader backed by the given correct-option source.
func NewGrader(src CorrectOptionSource) *Grader {
	return &Grader{src: src}
}

// Grade counts the answers whose selected option matches the correct option
// for their question. Unanswered pairs never match, unknown question ids
// simply find no correct option, and Total is the number of submitted pairs.
func (g *Grader) Grade(ctx context.Context, answers []Answer) (Result, error) {
	res := Result{Total: len(answers)}
	for _, a := range answers {
		if a.SelectedOptionID == nil {
			continue
		}
		correctID, ok, err := g.src.CorrectOptionID(ctx, a.QuestionID)
		if err != nil {
			return Result{}, fmt.Errorf("look up correct option for question %d: %w", a.QuestionID, err)
		}
		if !ok {
			continue
		}
		if *a.SelectedOptionID == correctID {
			res.Score++
		}
	}
	return res, nil
}
