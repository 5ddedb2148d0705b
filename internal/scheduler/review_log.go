package scheduler

import "time"

// ReviewLog is an immutable record of one completed review. Logs are
// append-only: the scheduler creates exactly one per review and never
// changes it afterwards.
type ReviewLog struct {
	ID          string
	CardID      string
	ReviewedAt  time.Time
	Rating      Rating
	ElapsedDays float64 // days since the previous review, 0 for the first
	Stability   float64 // memory state immediately after this review
	Difficulty  float64
}
