package scheduler

import "errors"

// Sentinel errors returned by the scheduling core. Check with errors.Is.
var (
	// ErrInvalidRating is returned when a rating is outside Again..Easy.
	ErrInvalidRating = errors.New("scheduler: invalid rating")

	// ErrInvalidState is returned when a card's fields are inconsistent,
	// e.g. a reviewed card without memory state. This signals data
	// corruption on the caller's side; the scheduler never produces such
	// cards itself.
	ErrInvalidState = errors.New("scheduler: inconsistent card state")

	// ErrInvalidWeights is returned when a weight vector is outside its
	// documented bounds.
	ErrInvalidWeights = errors.New("scheduler: weights out of bounds")

	// ErrNumericDomain is returned when a memory update produces a
	// non-finite stability or difficulty. This indicates a weight-vector
	// or input bug, not a recoverable condition.
	ErrNumericDomain = errors.New("scheduler: memory state is not finite")

	// ErrCardMismatch is returned when a review log does not belong to the
	// card being replayed.
	ErrCardMismatch = errors.New("scheduler: review log belongs to a different card")
)
