package model

import "time"

// Attempt is one candidate's single pass at one evaluation.
//
// Score carries a known ambiguity inherited from the schema: 0 means both
// "not yet completed" and "genuinely scored zero". The dashboard statistics
// treat score > 0 as completed and score == 0 as in progress.
type Attempt struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	CandidateID  int       `json:"candidate_id" gorm:"not null;index"`
	EvaluationID int       `json:"evaluation_id" gorm:"not null;index"`
	TakenAt      time.Time `json:"taken_at" gorm:"index"`
	Score        int       `json:"score"`

	Candidate  *Candidate  `json:"candidate,omitempty" gorm:"foreignKey:CandidateID"`
	Evaluation *Evaluation `json:"evaluation,omitempty" gorm:"foreignKey:EvaluationID"`
}

// Completed reports whether this attempt counts as finished for
// dashboard statistics.
func (a Attempt) Completed() bool { return a.Score > 0 }

// CandidateAnswer links an attempt's question to the option the candidate
// selected. Declared and migrated; the grading flow does not populate it.
type CandidateAnswer struct {
	ID             int `json:"id" gorm:"primaryKey"`
	AttemptID      int `json:"attempt_id" gorm:"not null;index"`
	QuestionID     int `json:"question_id" gorm:"not null"`
	AnswerOptionID int `json:"answer_option_id" gorm:"not null"`
}
