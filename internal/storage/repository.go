// Package storage persists cards, review logs and the learned vocabulary.
package storage

import (
	"context"
	"time"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

// CardRepository defines operations for managing cards.
type CardRepository interface {
	Create(ctx context.Context, card scheduler.Card) error
	FindByID(ctx context.Context, id string) (*scheduler.Card, error)
	FindAll(ctx context.Context) ([]scheduler.Card, error)
	FindDue(ctx context.Context, now time.Time) ([]scheduler.Card, error)
	Update(ctx context.Context, card scheduler.Card) error
}

// ReviewLogRepository defines operations for managing review logs.
type ReviewLogRepository interface {
	Create(ctx context.Context, log scheduler.ReviewLog) error
	FindByCard(ctx context.Context, cardID string) ([]scheduler.ReviewLog, error)
	FindAll(ctx context.Context) ([]scheduler.ReviewLog, error)
}

// VocabularyRepository tracks the words a learner has been exposed to. The
// learned vocabulary feeds sentence generation, which may only use words the
// learner has already seen.
type VocabularyRepository interface {
	EnsureWord(ctx context.Context, word string, firstSeen time.Time) error
	RecordReview(ctx context.Context, word string, reviewedAt time.Time) error
	LearnedWords(ctx context.Context) ([]string, error)
}
