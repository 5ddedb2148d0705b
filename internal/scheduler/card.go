package scheduler

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MemoryState holds the two memory-model parameters of a card. Both values
// are assigned together on the first review; a card that has never been
// reviewed carries no MemoryState at all, which rules out the
// stability-without-difficulty class of corruption by construction.
type MemoryState struct {
	Stability  float64 // expected days until recall probability decays to 90%
	Difficulty float64 // in [1, 10]
}

// Retrievability estimates the probability of successful recall after
// elapsedDays without a review.
func (m MemoryState) Retrievability(elapsedDays float64) float64 {
	return retrievability(elapsedDays, m.Stability)
}

// Card is a vocabulary word under study together with its scheduling state.
type Card struct {
	ID               string
	Word             string
	Sentence         string // current display sentence, regenerated over time
	OriginalSentence string // sentence the card was created with
	State            State
	Step             int // position in the learning/relearning steps, 0 outside them
	Memory           *MemoryState
	Due              time.Time
	CreatedAt        time.Time
	LastReviewedAt   *time.Time
	ReviewCount      int
}

// NewCard creates a card in the New state, due immediately.
func NewCard(word, sentence string, now time.Time) Card {
	return Card{
		ID:               uuid.NewString(),
		Word:             word,
		Sentence:         sentence,
		OriginalSentence: sentence,
		State:            StateNew,
		Due:              now,
		CreatedAt:        now,
	}
}

func (c Card) clone() Card {
	out := c
	if c.Memory != nil {
		m := *c.Memory
		out.Memory = &m
	}
	if c.LastReviewedAt != nil {
		t := *c.LastReviewedAt
		out.LastReviewedAt = &t
	}
	return out
}

// validate checks the invariants the scheduler relies on: the New state,
// a zero review count and an absent memory state always coincide.
func (c Card) validate() error {
	if !c.State.IsValid() {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidState, string(c.State))
	}
	isNew := c.State == StateNew
	if isNew != (c.ReviewCount == 0) {
		return fmt.Errorf("%w: state %s with review count %d", ErrInvalidState, c.State, c.ReviewCount)
	}
	if isNew != (c.Memory == nil) {
		return fmt.Errorf("%w: state %s with memory state present=%t", ErrInvalidState, c.State, c.Memory != nil)
	}
	if isNew != (c.LastReviewedAt == nil) {
		return fmt.Errorf("%w: state %s with last reviewed at present=%t", ErrInvalidState, c.State, c.LastReviewedAt != nil)
	}
	return nil
}
