// Package scheduler implements the spaced-repetition core: a power-law
// forgetting curve, the per-review memory-state update, and the four-state
// card lifecycle that turns memory state into concrete due dates.
//
// Everything in this package is a pure value-in/value-out computation.
// Reviews for different cards may run concurrently; reviews for the same
// card must be serialized by the caller, since Review takes the prior card
// by value and concurrent calls on stale state would diverge silently.
package scheduler

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultDesiredRetention is the recall probability the next review is
	// scheduled at.
	DefaultDesiredRetention = 0.9

	// DefaultMaximumInterval caps review intervals at roughly a century to
	// avoid pathological due dates from extreme stability values.
	DefaultMaximumInterval = 36500
)

// Config configures a Scheduler. Zero values are replaced with defaults.
type Config struct {
	Weights          Weights         // zero vector: DefaultWeights
	DesiredRetention float64         // zero: 0.9
	LearningSteps    []time.Duration // nil: [10m]; empty: no learning steps
	RelearningSteps  []time.Duration // nil: [10m]; empty: no relearning steps
	MaximumInterval  int             // zero: 36500 days
}

// Scheduler schedules card reviews. It is immutable after construction: a
// newly fitted weight vector requires constructing a new Scheduler.
type Scheduler struct {
	weights          Weights
	desiredRetention float64
	learningSteps    []time.Duration
	relearningSteps  []time.Duration
	maximumInterval  int
}

// New creates a Scheduler from the given config.
func New(cfg Config) (*Scheduler, error) {
	weights := cfg.Weights
	if weights == (Weights{}) {
		weights = DefaultWeights
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	retention := cfg.DesiredRetention
	if retention == 0 {
		retention = DefaultDesiredRetention
	}
	if retention <= 0 || retention >= 1 {
		return nil, fmt.Errorf("desired retention %v out of range (0, 1)", retention)
	}

	maxInterval := cfg.MaximumInterval
	if maxInterval == 0 {
		maxInterval = DefaultMaximumInterval
	}
	if maxInterval < 1 {
		return nil, fmt.Errorf("maximum interval %d must be at least 1 day", maxInterval)
	}

	learningSteps := cfg.LearningSteps
	if learningSteps == nil {
		learningSteps = []time.Duration{10 * time.Minute}
	}
	relearningSteps := cfg.RelearningSteps
	if relearningSteps == nil {
		relearningSteps = []time.Duration{10 * time.Minute}
	}

	return &Scheduler{
		weights:          weights,
		desiredRetention: retention,
		learningSteps:    learningSteps,
		relearningSteps:  relearningSteps,
		maximumInterval:  maxInterval,
	}, nil
}

// Weights returns the parameter vector the scheduler was constructed with.
func (s *Scheduler) Weights() Weights {
	return s.weights
}

// DesiredRetention returns the configured target recall probability.
func (s *Scheduler) DesiredRetention() float64 {
	return s.desiredRetention
}

// Review processes one review of the card at the given time. It returns the
// updated card and an immutable review log; the input card is not mutated
// and nothing is persisted. On error the caller must discard the returned
// values and keep the original card.
func (s *Scheduler) Review(card Card, rating Rating, now time.Time) (Card, ReviewLog, error) {
	if !rating.IsValid() {
		return Card{}, ReviewLog{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}
	if err := card.validate(); err != nil {
		return Card{}, ReviewLog{}, err
	}

	c := card.clone()

	var elapsedDays float64
	if c.LastReviewedAt != nil {
		elapsedDays = math.Max(0, now.Sub(*c.LastReviewedAt).Hours()/24)
	}

	memory, err := s.weights.UpdateMemory(c.Memory, elapsedDays, rating)
	if err != nil {
		return Card{}, ReviewLog{}, err
	}
	c.Memory = &memory

	interval := s.transition(&c, rating)

	c.Due = now.Add(interval)
	reviewedAt := now
	c.LastReviewedAt = &reviewedAt
	c.ReviewCount++

	log := ReviewLog{
		// Deterministic per (card, review ordinal) so that replaying an
		// identical history reproduces identical logs.
		ID:          fmt.Sprintf("%s/%d", c.ID, c.ReviewCount),
		CardID:      c.ID,
		ReviewedAt:  now,
		Rating:      rating,
		ElapsedDays: elapsedDays,
		Stability:   memory.Stability,
		Difficulty:  memory.Difficulty,
	}
	return c, log, nil
}

// Preview returns the card that would result from each possible rating,
// without committing to any of them.
func (s *Scheduler) Preview(card Card, now time.Time) (map[Rating]Card, error) {
	result := make(map[Rating]Card, 4)
	for _, rating := range []Rating{RatingAgain, RatingHard, RatingGood, RatingEasy} {
		c, _, err := s.Review(card, rating, now)
		if err != nil {
			return nil, err
		}
		result[rating] = c
	}
	return result, nil
}

// Replay rebuilds a card's scheduling state from its chronological review
// logs, starting from the card's creation state.
func (s *Scheduler) Replay(card Card, logs []ReviewLog) (Card, error) {
	c := NewCard(card.Word, card.Sentence, card.CreatedAt)
	c.ID = card.ID
	c.OriginalSentence = card.OriginalSentence

	for _, log := range logs {
		if log.CardID != card.ID {
			return Card{}, fmt.Errorf("%w: card %s, log %s", ErrCardMismatch, card.ID, log.CardID)
		}
		var err error
		c, _, err = s.Review(c, log.Rating, log.ReviewedAt)
		if err != nil {
			return Card{}, err
		}
	}
	return c, nil
}

// Retrievability returns the card's estimated recall probability at the
// given time, or 0 for a card that has never been reviewed.
func (s *Scheduler) Retrievability(card Card, now time.Time) float64 {
	if card.Memory == nil || card.LastReviewedAt == nil {
		return 0
	}
	elapsedDays := math.Max(0, now.Sub(*card.LastReviewedAt).Hours()/24)
	return card.Memory.Retrievability(elapsedDays)
}

// transition advances the card's state machine and returns the interval
// until the next review. The card's memory state is already updated.
func (s *Scheduler) transition(c *Card, rating Rating) time.Duration {
	switch c.State {
	case StateNew:
		if rating == RatingEasy || len(s.learningSteps) == 0 {
			return s.graduate(c)
		}
		c.State = StateLearning
		c.Step = 1
		return s.learningSteps[0]

	case StateLearning:
		return s.stepThrough(c, rating, s.learningSteps)

	case StateRelearning:
		return s.stepThrough(c, rating, s.relearningSteps)

	default: // StateReview
		if rating == RatingAgain && len(s.relearningSteps) > 0 {
			c.State = StateRelearning
			c.Step = 1
			return s.relearningSteps[0]
		}
		return s.reviewInterval(c)
	}
}

// stepThrough advances a card within its learning or relearning steps:
// Again restarts the ladder, Hard and Good climb it, Easy or climbing past
// the last step graduates to Review.
func (s *Scheduler) stepThrough(c *Card, rating Rating, steps []time.Duration) time.Duration {
	if len(steps) == 0 || rating == RatingEasy {
		return s.graduate(c)
	}

	if rating == RatingAgain {
		c.Step = 1
		return steps[0]
	}

	next := c.Step + 1
	if next > len(steps) {
		return s.graduate(c)
	}
	c.Step = next
	return steps[next-1]
}

func (s *Scheduler) graduate(c *Card) time.Duration {
	c.State = StateReview
	c.Step = 0
	return s.reviewInterval(c)
}

// reviewInterval back-solves the forgetting curve for the desired retention
// and clamps the result to [1 day, maximum interval].
func (s *Scheduler) reviewInterval(c *Card) time.Duration {
	days := int(math.Round(nextIntervalDays(c.Memory.Stability, s.desiredRetention)))
	if days < 1 {
		days = 1
	}
	if days > s.maximumInterval {
		days = s.maximumInterval
	}
	return time.Duration(days) * 24 * time.Hour
}
