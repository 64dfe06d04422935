package model

import (
	"strings"
	"time"
)

// Evaluation is a named assessment composed of ordered questions.
type Evaluation struct {
	ID              int       `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`

	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:EvaluationID;constraint:OnDelete:CASCADE"`
}

// Question belongs to exactly one evaluation and owns its answer options.
type Question struct {
	ID           int    `json:"id" gorm:"primaryKey"`
	EvaluationID int    `json:"evaluation_id" gorm:"not null;index"`
	Text         string `json:"text" gorm:"not null"`
	Type         string `json:"type"`
	Points       int    `json:"points"`

	Options []AnswerOption `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

// AnswerOption is one selectable choice for a question.
type AnswerOption struct {
	ID         int    `json:"id" gorm:"primaryKey"`
	QuestionID int    `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"is_correct" gorm:"not null;default:false"`
}

// trimJoin joins two name parts with a single space, trimming the result.
func trimJoin(a, b string) string {
	return strings.TrimSpace(strings.TrimSpace(a) + " " + strings.TrimSpace(b))
}
