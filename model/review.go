// model/review.go
package model

import "time"

// ReviewCadence is the configured interval after which a user's permissions
// must be re-examined by an administrator.
type ReviewCadence string

const (
	CadenceWeekly    ReviewCadence = "weekly"
	CadenceMonthly   ReviewCadence = "monthly"
	CadenceQuarterly ReviewCadence = "quarterly"
	CadenceYearly    ReviewCadence = "yearly"
)

// Days returns the cadence length in days, or 0 for an unknown cadence.
func (c ReviewCadence) Days() int {
	switch c {
	case CadenceWeekly:
		return 7
	case CadenceMonthly:
		return 30
	case CadenceQuarterly:
		return 90
	case CadenceYearly:
		return 365
	}
	return 0
}

// Valid reports whether the cadence is one of the enumerated settings.
func (c ReviewCadence) Valid() bool {
	return c.Days() > 0
}

// ReviewHistoryEntry records one completed review pass.
type ReviewHistoryEntry struct {
	ID                string    `json:"id"`
	ReviewerID        string    `json:"reviewer_id"`
	ReviewedCount     int       `json:"reviewed_count"`
	PermissionChanges int       `json:"permission_changes"`
	Timestamp         time.Time `json:"timestamp"`
}
