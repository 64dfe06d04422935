// Package dashboard holds the aggregation logic behind the dashboard view:
// week bucketing, score averaging, and the merged recent-activity feed.
package dashboard

import (
	"math"
	"sort"
	"time"
)

// Feed and query bounds used by the dashboard view.
const (
	RecentAttemptLimit   = 10
	ActivityFeedLimit    = 5
	RecentInterviewLimit = 5
)

// Activity item types.
const (
	ActivityEvaluation = "evaluation"
	ActivityInterview  = "interview"
)

// HRTeamActor is the fixed actor for interview-scheduled activity items.
const HRTeamActor = "HR team"

// FallbackDisplayName is shown when neither a candidate nor an identity
// username is available.
const FallbackDisplayName = "User"

// Stats carries the scalar statistics shown on the dashboard.
//
// InProgressCount and PendingAttempts are the same score == 0 predicate
// computed twice under two names. The duplication is inherited from the
// dashboard contract and both fields are populated independently.
type Stats struct {
	TotalCandidates   int64   `json:"total_candidates"`
	TotalCompleted    int64   `json:"total_completed"`
	CompletedThisWeek int64   `json:"completed_this_week"`
	AverageScore      float64 `json:"average_score"`
	InProgressCount   int64   `json:"in_progress_count"`
	PendingAttempts   int64   `json:"pending_attempts"`
}

// Activity is one entry of the merged recent-activity feed.
type Activity struct {
	Type       string    `json:"type"`
	ActionBy   string    `json:"action_by"`
	ActionText string    `json:"action_text"`
	TargetName string    `json:"target_name"`
	Date       time.Time `json:"date"`
	Badge      string    `json:"badge"`
}

// StartOfWeek returns the most recent Monday at or before t, truncated to
// midnight in t's location. A Monday maps to itself.
func StartOfWeek(t time.Time) time.Time {
	today := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	diff := (7 + int(today.Weekday()-time.Monday)) % 7
	return today.AddDate(0, 0, -diff)
}

// RoundAverage rounds an average score to 2 decimal places.
func RoundAverage(avg float64) float64 {
	return math.Round(avg*100) / 100
}

// MergeActivities concatenates the two activity streams, orders the result
// by date descending, and truncates it to limit. Sorting is stable so
// same-timestamp items keep their stream order.
func MergeActivities(completed, scheduled []Activity, limit int) []Activity {
	merged := make([]Activity, 0, len(completed)+len(scheduled))
	merged = append(merged, completed...)
	merged = append(merged, scheduled...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})
	if limit >= 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// DisplayName resolves the name shown for the current user: the candidate's
// full name when a candidate row exists, else the identity username, else a
// fixed placeholder.
func DisplayName(candidateFullName, username string) string {
	if candidateFullName != "" {
		return candidateFullName
	}
	if username != "" {
		return username
	}
	return FallbackDisplayName
}
