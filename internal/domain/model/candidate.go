// Package model contains the GORM-mapped entities of the evaluation domain.
package model

import "time"

// Candidate is the person taking evaluations, optionally linked to an
// authenticated identity via UserID. A row is created on first login or
// first evaluation start when no match exists by identity id or email.
type Candidate struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	LastName  string    `json:"last_name" gorm:"not null"`
	FirstName string    `json:"first_name"`
	Email     string    `json:"email" gorm:"index;not null"`
	UserID    string    `json:"user_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`

	Attempts     []Attempt     `json:"attempts,omitempty" gorm:"foreignKey:CandidateID"`
	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:CandidateID"`
}

// FullName returns "{first} {last}" with surrounding whitespace trimmed.
func (c Candidate) FullName() string {
	return trimJoin(c.FirstName, c.LastName)
}

// Application records a candidate applying for a position. Declared for
// schema completeness; no flow in this service populates it yet.
type Application struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	CandidateID int       `json:"candidate_id" gorm:"not null;index"`
	Position    string    `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

// Interview is a scheduled meeting between the HR team and a candidate.
// Its creation date feeds the dashboard recent-activity stream.
type Interview struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	CandidateID int       `json:"candidate_id" gorm:"not null;index"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`

	Candidate *Candidate `json:"candidate,omitempty" gorm:"foreignKey:CandidateID"`
}
